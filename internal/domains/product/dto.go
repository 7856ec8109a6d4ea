package product

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateProductReq carries the form fields of POST /api/products.
// Price arrives as a form string and is parsed by the service.
type CreateProductReq struct {
	Name        string `json:"name" form:"name"`
	Price       string `json:"price" form:"price"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
}

func (r CreateProductReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("product name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validation.Required.Error("price is required"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, 5000),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			is.UUID.Error("category must be a valid id"),
		),
	)
}

// UpdateProductReq carries the form fields of PUT /api/products/:id.
// Nil fields are left untouched; uploaded files, when present, replace
// the product's images wholesale.
type UpdateProductReq struct {
	Name        *string `json:"name" form:"name"`
	Price       *string `json:"price" form:"price"`
	Description *string `json:"description" form:"description"`
	Category    *string `json:"category" form:"category"`
}

func (r UpdateProductReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("product name cannot be empty"),
		),
		validation.Field(&r.Description,
			validation.NilOrNotEmpty.Error("description cannot be empty"),
		),
		validation.Field(&r.Category,
			validation.NilOrNotEmpty, is.UUID.Error("category must be a valid id"),
		),
	)
}

// UploadedFile is one in-memory multipart upload handed to the service.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

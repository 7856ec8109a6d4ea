package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCategoryReq is the request body for POST /api/categories.
type CreateCategoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("category name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
	)
}

// UpdateCategoryReq is the request body for PUT /api/categories/:id.
// Nil fields are left untouched.
type UpdateCategoryReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.NilOrNotEmpty.Error("category name cannot be empty"),
		),
	)
}

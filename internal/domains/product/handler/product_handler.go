package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"jewelry-backend/internal/domains/product"
	"jewelry-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the product HTTP endpoints, including the multipart
// upload surface.
type Handler struct {
	service      product.ProductService
	maxFileSize  int64
	maxFileCount int
}

func NewHandler(service product.ProductService, maxFileSize int64, maxFileCount int) *Handler {
	return &Handler{
		service:      service,
		maxFileSize:  maxFileSize,
		maxFileCount: maxFileCount,
	}
}

// List handles GET /api/products (public). An optional ?category=<id>
// query filters by category.
func (h *Handler) List(c *gin.Context) {
	if raw := c.Query("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid category id")
			return
		}
		products, err := h.service.GetByCategory(c.Request.Context(), categoryID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, products)
		return
	}

	products, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, products)
}

// Get handles GET /api/products/:id (public).
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entity)
}

// Create handles POST /api/products (admin, multipart/form-data).
func (h *Handler) Create(c *gin.Context) {
	var req product.CreateProductReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	files, err := h.readUploads(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entity, err := h.service.Create(c.Request.Context(), &req, files)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entity)
}

// Update handles PUT /api/products/:id (admin, multipart/form-data).
// Form fields not present in the request leave the stored value alone;
// uploaded files replace the product's images.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	req := readUpdateForm(c)
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	files, err := h.readUploads(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entity, err := h.service.Update(c.Request.Context(), id, req, files)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entity)
}

// Delete handles DELETE /api/products/:id (admin).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// readUploads pulls the "images" multipart files into memory. The count
// limit is enforced before any file content is read, and each file is
// checked against the size limit before its bytes are touched.
func (h *Handler) readUploads(c *gin.Context) ([]product.UploadedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid multipart form")
	}

	headers := form.File["images"]
	if len(headers) > h.maxFileCount {
		return nil, product.ErrTooManyImages
	}

	files := make([]product.UploadedFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > h.maxFileSize {
			return nil, fmt.Errorf("file %s exceeds the %d MB limit", header.Filename, h.maxFileSize/(1<<20))
		}

		data, err := readFile(header)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s", header.Filename)
		}

		files = append(files, product.UploadedFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return files, nil
}

func readFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// readUpdateForm distinguishes absent form fields from empty ones so
// partial updates only touch what the client sent.
func readUpdateForm(c *gin.Context) *product.UpdateProductReq {
	req := &product.UpdateProductReq{}
	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		req.Price = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		req.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		req.Category = &v
	}
	return req
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := product.GetHTTPStatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	response.ErrorResponse(c, status, product.GetErrorCode(err), message)
}

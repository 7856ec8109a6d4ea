package handler

import (
	"net/http"

	"jewelry-backend/internal/domains/category"
	"jewelry-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the category HTTP endpoints.
type Handler struct {
	service category.CategoryService
}

func NewHandler(service category.CategoryService) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/categories (public).
func (h *Handler) List(c *gin.Context) {
	categories, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// Get handles GET /api/categories/:id (public).
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	entity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entity)
}

// Create handles POST /api/categories (admin).
func (h *Handler) Create(c *gin.Context) {
	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entity, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entity)
}

// Update handles PUT /api/categories/:id (admin).
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	var req category.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entity, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entity)
}

// Delete handles DELETE /api/categories/:id (admin).
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid category id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := category.GetHTTPStatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	response.ErrorResponse(c, status, category.GetErrorCode(err), message)
}

package handler

import (
	"net/http"

	"jewelry-backend/internal/domains/message"
	"jewelry-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the contact-message endpoints.
type Handler struct {
	service message.MessageService
}

func NewHandler(service message.MessageService) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/messages (public contact form).
func (h *Handler) Create(c *gin.Context) {
	var req message.CreateMessageReq
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
		response.InternalServerError(c, "internal server error")
		return
	}
	response.Success(c, http.StatusCreated, entity)
}

// List handles GET /api/messages (admin inbox, newest first).
func (h *Handler) List(c *gin.Context) {
	messages, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "internal server error")
		return
	}
	response.Success(c, http.StatusOK, messages)
}

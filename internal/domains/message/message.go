package message

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Message is one contact-form submission. Immutable after creation:
// it is only ever appended (public) or listed (admin).
type Message struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateMessageReq is the request body for POST /api/messages.
type CreateMessageReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (r CreateMessageReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be a valid address"),
		),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, 5000),
		),
	)
}

// MessageRepository is the data-access contract. Messages are append
// and list only.
type MessageRepository interface {
	Create(ctx context.Context, entity *Message) error
	GetAll(ctx context.Context) ([]*Message, error)
}

// MessageService is the business-logic contract consumed by the handler.
type MessageService interface {
	Create(ctx context.Context, req *CreateMessageReq) (*Message, error)
	// GetAll returns messages newest first.
	GetAll(ctx context.Context) ([]*Message, error)
}

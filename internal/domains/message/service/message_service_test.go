package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"jewelry-backend/internal/domains/message"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMessageRepo struct {
	items []*message.Message
}

func (r *stubMessageRepo) Create(ctx context.Context, entity *message.Message) error {
	clone := *entity
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubMessageRepo) GetAll(ctx context.Context) ([]*message.Message, error) {
	out := make([]*message.Message, len(r.items))
	copy(out, r.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func TestCreateMessageTrimsFields(t *testing.T) {
	repo := &stubMessageRepo{}
	svc := NewMessageService(repo)

	created, err := svc.Create(context.Background(), &message.CreateMessageReq{
		Name:    "  Alex  ",
		Email:   " alex@example.com ",
		Message: " Interested in the gold ring. ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alex", created.Name)
	assert.Equal(t, "alex@example.com", created.Email)
	assert.Equal(t, "Interested in the gold ring.", created.Message)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestGetAllReturnsNewestFirst(t *testing.T) {
	repo := &stubMessageRepo{}
	svc := NewMessageService(repo)

	base := time.Now().UTC()
	for i, name := range []string{"first", "second", "third"} {
		clone := &message.Message{
			Name:      name,
			Email:     name + "@example.com",
			Message:   "hello",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		repo.items = append(repo.items, clone)
	}

	listed, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 3)

	assert.Equal(t, "third", listed[0].Name)
	assert.Equal(t, "second", listed[1].Name)
	assert.Equal(t, "first", listed[2].Name)
}

func TestCreateMessageValidation(t *testing.T) {
	req := message.CreateMessageReq{Name: "Alex", Email: "not-an-email", Message: "hi"}
	assert.Error(t, req.Validate())

	req = message.CreateMessageReq{Name: "Alex", Email: "alex@example.com", Message: "hi"}
	assert.NoError(t, req.Validate())

	req = message.CreateMessageReq{Email: "alex@example.com", Message: "hi"}
	assert.Error(t, req.Validate())
}

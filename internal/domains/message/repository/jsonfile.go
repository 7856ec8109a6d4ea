package repository

import (
	"context"
	"sort"

	"jewelry-backend/internal/domains/message"
	"jewelry-backend/internal/infrastructure/jsonstore"
)

type jsonFileRepository struct {
	collection *jsonstore.Collection[message.Message]
}

// NewJSONFileRepository builds the flat-file message repository on top of
// <dataDir>/messages.json.
func NewJSONFileRepository(dataDir string) (message.MessageRepository, error) {
	collection, err := jsonstore.NewCollection[message.Message](dataDir, "messages")
	if err != nil {
		return nil, err
	}
	return &jsonFileRepository{collection: collection}, nil
}

func (r *jsonFileRepository) Create(ctx context.Context, entity *message.Message) error {
	return r.collection.Mutate(func(items []message.Message) ([]message.Message, error) {
		return append(items, *entity), nil
	})
}

func (r *jsonFileRepository) GetAll(ctx context.Context) ([]*message.Message, error) {
	items, err := r.collection.All()
	if err != nil {
		return nil, err
	}

	entities := make([]*message.Message, 0, len(items))
	for i := range items {
		entities = append(entities, &items[i])
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].CreatedAt.After(entities[j].CreatedAt)
	})

	return entities, nil
}

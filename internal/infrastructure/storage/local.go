package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"jewelry-backend/pkg/logger"
)

// LocalPublisher stores assets as plain files in a directory served
// under /uploads. The deletion handle is the file name.
type LocalPublisher struct {
	dir     string
	baseURL string // prefix for public URLs, may be empty for relative URLs
}

func NewLocalPublisher(dir, baseURL string) (*LocalPublisher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalPublisher{dir: dir, baseURL: baseURL}, nil
}

func (p *LocalPublisher) Publish(ctx context.Context, data []byte, suggestedName, folder string) (*Asset, error) {
	name := uniqueName(suggestedName)

	path := filepath.Join(p.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write asset %s: %w", name, err)
	}

	url := fmt.Sprintf("%s/uploads/%s", p.baseURL, name)
	width, height := dimensions(data)

	return &Asset{
		URL:            url,
		ThumbnailURL:   url,
		DeletionHandle: name,
		Width:          width,
		Height:         height,
		Size:           int64(len(data)),
	}, nil
}

func (p *LocalPublisher) Unpublish(ctx context.Context, handle string) error {
	// Handles are bare file names; Base strips anything that would
	// escape the uploads directory.
	path := filepath.Join(p.dir, filepath.Base(handle))

	err := os.Remove(path)
	if os.IsNotExist(err) {
		logger.Warn("asset already absent, treating unpublish as success", map[string]interface{}{
			"handle": handle,
		})
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove asset %s: %w", handle, err)
	}
	return nil
}

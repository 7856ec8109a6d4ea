package storage

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

// Asset is the durable result of publishing one image: where it can be
// fetched from, and the handle needed to delete it again.
type Asset struct {
	URL            string `json:"url"`
	ThumbnailURL   string `json:"thumbnailUrl"`
	DeletionHandle string `json:"deletionHandle"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Size           int64  `json:"size"`
}

// AssetPublisher stores image bytes on a backend and returns a stable
// reference. The upload orchestrator is agnostic to which backend is
// behind this interface.
//
// Unpublish must be safe to call on an already-deleted handle: not-found
// is treated as success (logged distinctly), so compensation and
// best-effort cleanup never fail on double deletes.
type AssetPublisher interface {
	Publish(ctx context.Context, data []byte, suggestedName, folder string) (*Asset, error)
	Unpublish(ctx context.Context, handle string) error
}

// uniqueName de-duplicates published file names with a timestamp and a
// random suffix, keeping the original extension.
func uniqueName(suggestedName string) string {
	ext := strings.ToLower(filepath.Ext(suggestedName))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%d-%d%s", time.Now().UnixNano(), rand.Intn(1_000_000_000), ext)
}

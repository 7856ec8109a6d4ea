package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"jewelry-backend/internal/config"
	"jewelry-backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStorePublisher publishes assets to an S3-compatible object host.
// Alongside each image it stores a pre-rendered 300px thumbnail object.
// The deletion handle is the object key; the thumbnail key is derived
// from it, so one handle covers both objects.
type ObjectStorePublisher struct {
	client    *minio.Client
	bucket    string
	processor *ImageProcessor
}

func NewObjectStorePublisher(cfg config.AssetsConfig, processor *ImageProcessor) (*ObjectStorePublisher, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &ObjectStorePublisher{
		client:    client,
		bucket:    cfg.Bucket,
		processor: processor,
	}, nil
}

func (p *ObjectStorePublisher) Publish(ctx context.Context, data []byte, suggestedName, folder string) (*Asset, error) {
	key := uniqueName(suggestedName)
	if folder != "" {
		key = strings.Trim(folder, "/") + "/" + key
	}

	if err := p.put(ctx, key, data); err != nil {
		return nil, fmt.Errorf("publish %s: %w", key, err)
	}

	thumbnailURL := p.objectURL(key)
	if thumb := p.processor.Thumbnail(data); thumb != nil {
		thumbKey := thumbKeyFor(key)
		if err := p.put(ctx, thumbKey, thumb); err != nil {
			// The main object is up; a missing thumbnail is not worth
			// failing the upload over.
			logger.Warn("thumbnail upload failed", map[string]interface{}{
				"key":   thumbKey,
				"error": err.Error(),
			})
		} else {
			thumbnailURL = p.objectURL(thumbKey)
		}
	}

	width, height := dimensions(data)

	return &Asset{
		URL:            p.objectURL(key),
		ThumbnailURL:   thumbnailURL,
		DeletionHandle: key,
		Width:          width,
		Height:         height,
		Size:           int64(len(data)),
	}, nil
}

func (p *ObjectStorePublisher) Unpublish(ctx context.Context, handle string) error {
	// Stat first so an already-deleted asset is reported distinctly
	// instead of silently passing through the idempotent S3 delete.
	_, err := p.client.StatObject(ctx, p.bucket, handle, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			logger.Warn("asset already absent, treating unpublish as success", map[string]interface{}{
				"handle": handle,
			})
			return nil
		}
		return fmt.Errorf("stat asset %s: %w", handle, err)
	}

	if err := p.client.RemoveObject(ctx, p.bucket, handle, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove asset %s: %w", handle, err)
	}

	// Thumbnail is best-effort on the way out too.
	thumbKey := thumbKeyFor(handle)
	if err := p.client.RemoveObject(ctx, p.bucket, thumbKey, minio.RemoveObjectOptions{}); err != nil {
		logger.Warn("thumbnail removal failed", map[string]interface{}{
			"key":   thumbKey,
			"error": err.Error(),
		})
	}

	return nil
}

func (p *ObjectStorePublisher) put(ctx context.Context, key string, data []byte) error {
	_, err := p.client.PutObject(
		ctx,
		p.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"},
	)
	return err
}

func (p *ObjectStorePublisher) objectURL(key string) string {
	scheme := "http"
	if p.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, p.client.EndpointURL().Host, p.bucket, key)
}

// thumbKeyFor derives the thumbnail object key from the main key:
// products/123.jpg -> products/123_thumb.jpg
func thumbKeyFor(key string) string {
	if i := strings.LastIndex(key, "."); i > strings.LastIndex(key, "/") {
		return key[:i] + "_thumb" + key[i:]
	}
	return key + "_thumb"
}

package storage

import (
	"context"
	"fmt"
	"log"

	"asperda-backend/internal/config"

	"github.com/go-resty/resty/v2"
)

// Client uploads files to an S3-compatible object endpoint over HTTP and
// returns the public URL of the stored object.
type Client struct {
	http      *resty.Client
	bucket    string
	publicURL string
}

// New creates a storage client from config. Returns nil when no endpoint is
// configured; callers treat a nil uploader as "attachments disabled".
func New(cfg config.StorageConfig) *Client {
	if cfg.Endpoint == "" {
		log.Println("⚠️ No storage endpoint configured, attachments disabled")
		return nil
	}

	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = cfg.Endpoint
	}

	return &Client{
		http:      client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
	}
}

// Upload stores an object and returns its public URL
func (c *Client) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Put(fmt.Sprintf("/%s/%s", c.bucket, objectName))
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("storage upload: %s (%s)", resp.Status(), resp.String())
	}

	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, objectName), nil
}

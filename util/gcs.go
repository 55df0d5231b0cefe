// util/gcs.go
// Copyright(c) 2024-2026 aircheck contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GCSClient downloads objects from a Google Cloud Storage bucket using
// the JSON API.
type GCSClient struct {
	httpClient *http.Client
	bucket     string
}

// GCSClientConfig holds configuration options for creating a GCS client
type GCSClientConfig struct {
	Credentials []byte        // Optional: service account JSON; if nil, creates unauthenticated client
	Timeout     time.Duration // Optional: HTTP client timeout; defaults to 30 seconds
}

// MakeGCSClient creates a GCS client with the given bucket and configuration.
// If Credentials is nil, creates an unauthenticated client that can only
// access public objects.
func MakeGCSClient(ctx context.Context, bucket string, config GCSClientConfig) (*GCSClient, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket name cannot be empty")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	if config.Credentials == nil {
		return &GCSClient{
			httpClient: &http.Client{Timeout: timeout},
			bucket:     bucket,
		}, nil
	}

	jwtConfig, err := google.JWTConfigFromJSON(
		config.Credentials,
		"https://www.googleapis.com/auth/devstorage.read_only",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	httpClient.Timeout = timeout

	return &GCSClient{
		httpClient: httpClient,
		bucket:     bucket,
	}, nil
}

// GetReader returns a ReadCloser for downloading an object from the Google Cloud Storage bucket.
// The caller is responsible for closing the returned ReadCloser.
func (g *GCSClient) GetReader(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if objectName == "" {
		return nil, fmt.Errorf("object name cannot be empty")
	}

	apiURL := fmt.Sprintf("https://storage.googleapis.com/storage/v1/b/%s/o/%s?alt=media",
		g.bucket, url.QueryEscape(objectName))

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to download %s from bucket %s: status %d", objectName, g.bucket, resp.StatusCode)
	}

	return resp.Body, nil
}

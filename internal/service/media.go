package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	neturl "net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/recipe-saver/backend/config"
)

// MediaService archives extraction thumbnails into object storage so saved
// recipes do not depend on volatile platform CDN URLs.
type MediaService struct {
	s3Config *config.S3Config
	client   *http.Client
}

// NewMediaService creates a new MediaService instance. A nil s3Config
// disables archival; ArchiveThumbnail then returns URLs unchanged.
func NewMediaService(s3Config *config.S3Config) *MediaService {
	return &MediaService{
		s3Config: s3Config,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ArchiveThumbnail downloads the thumbnail and stores a copy under
// recipe-thumbnails/<recipe-id>.<ext>, returning the stored copy's URL. On
// any failure the original URL is returned; a thumbnail is never worth
// failing an extraction over.
func (s *MediaService) ArchiveThumbnail(ctx context.Context, recipeID uuid.UUID, thumbnailURL string) string {
	if s == nil || s.s3Config == nil || thumbnailURL == "" {
		return thumbnailURL
	}

	stored, err := s.archive(ctx, recipeID, thumbnailURL)
	if err != nil {
		log.Printf("[MediaService] thumbnail archive failed, keeping original URL: %v", err)
		return thumbnailURL
	}
	return stored
}

func (s *MediaService) archive(ctx context.Context, recipeID uuid.UUID, thumbnailURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnailURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download thumbnail: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download thumbnail, status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail data: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	key := fmt.Sprintf("recipe-thumbnails/%s%s", recipeID, extensionFor(contentType, thumbnailURL))

	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(imageContentType(contentType)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[MediaService] archived thumbnail to %s", publicURL)

	return publicURL, nil
}

// PresignThumbnail returns a time-limited GET URL for a stored thumbnail key,
// for deployments that keep the bucket private.
func (s *MediaService) PresignThumbnail(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	if s == nil || s.s3Config == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	return s.s3Config.GeneratePresignedURL(ctx, objectKey, expiration)
}

func imageContentType(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return contentType
	}
	return "image/jpeg"
}

func extensionFor(contentType, rawURL string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}

	if u, err := neturl.Parse(rawURL); err == nil {
		switch ext := strings.ToLower(path.Ext(u.Path)); ext {
		case ".jpg", ".jpeg", ".png", ".webp", ".gif":
			return ext
		}
	}
	return ".jpg"
}

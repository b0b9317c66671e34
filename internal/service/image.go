package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/foodgram/backend/config"
)

// ImageService stores base64-encoded recipe images. Images land in the
// local media directory by default, or in S3 when a bucket is configured.
type ImageService struct {
	mediaDir string
	s3Config *config.S3Config
}

func NewImageService(mediaDir string, s3Config *config.S3Config) *ImageService {
	return &ImageService{
		mediaDir: mediaDir,
		s3Config: s3Config,
	}
}

// Store decodes a base64 payload (either a bare string or a data URI like
// "data:image/png;base64,....") and persists it under a generated
// filename. It returns the URL/path recorded on the recipe.
func (s *ImageService) Store(ctx context.Context, payload string) (string, error) {
	data, ext, err := decodeBase64Image(payload)
	if err != nil {
		return "", validationErr("image", err.Error())
	}

	fileName := fmt.Sprintf("recipes/images/%s.%s", uuid.New().String(), ext)

	if s.s3Config != nil {
		return s.uploadToS3(ctx, data, fileName, ext)
	}

	path := filepath.Join(s.mediaDir, filepath.FromSlash(fileName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return "/media/" + fileName, nil
}

func (s *ImageService) uploadToS3(ctx context.Context, data []byte, fileName, ext string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/" + ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName), nil
}

func decodeBase64Image(payload string) ([]byte, string, error) {
	if payload == "" {
		return nil, "", fmt.Errorf("image payload is empty")
	}

	ext := "png"
	encoded := payload
	if strings.HasPrefix(payload, "data:") {
		header, rest, found := strings.Cut(payload, ",")
		if !found {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		encoded = rest
		// header looks like "data:image/png;base64"
		if mime, _, ok := strings.Cut(strings.TrimPrefix(header, "data:"), ";"); ok {
			if sub, found := strings.CutPrefix(mime, "image/"); found && sub != "" {
				ext = sub
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image data")
	}
	return data, ext, nil
}

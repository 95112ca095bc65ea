package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	client    *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService creates a StorageService backed by the given Cloudinary client.
func NewStorageService(client *cloudinary.Cloudinary, cloudName string) StorageService {
	return &CloudinaryStorageService{client: client, cloudName: cloudName}
}

// UploadFile uploads a local file to Cloudinary and returns its secure URL.
// ResourceType "auto" lets Cloudinary route images, videos and raw documents
// to the right delivery pipeline.
func (s *CloudinaryStorageService) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder:       destFolder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload %s: %w", filepath.Base(localFilePath), err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("storage: upload of %s returned no URL", filepath.Base(localFilePath))
	}
	return resp.SecureURL, nil
}

// DeleteFile removes an uploaded asset by public ID.
func (s *CloudinaryStorageService) DeleteFile(ctx context.Context, publicID string) error {
	resp, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("storage: failed to delete %s: %w", publicID, err)
	}
	if !strings.EqualFold(resp.Result, "ok") && !strings.EqualFold(resp.Result, "not found") {
		return fmt.Errorf("storage: delete of %s returned %q", publicID, resp.Result)
	}
	return nil
}

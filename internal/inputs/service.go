package inputs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"geovision-backend/internal/shared/storage/object"
	"geovision-backend/internal/shared/telemetry"
	"geovision-backend/internal/shared/util"
)

// Service owns the I/O side of input management: persisting uploaded files,
// deriving image previews, and releasing stored objects when attachments
// leave the store. The Store itself stays a pure state container.
type Service struct {
	Objects object.ObjectStore
}

// NewService constructs a Service backed by the given object store.
func NewService(objects object.ObjectStore) *Service {
	return &Service{Objects: objects}
}

// AddAttachment persists the upload, classifies it, derives a preview object
// for images, and registers the attachment in the session store. The declared
// mime type wins over the sniffed one when present.
func (s *Service) AddAttachment(ctx context.Context, ownerKey string, store *Store, c Category, fileName, declaredMime string, r io.Reader) (Attachment, error) {
	storageKey, size, sniffedMime, err := s.Objects.Save(ctx, ownerKey, fileName, r)
	if err != nil {
		return Attachment{}, fmt.Errorf("save attachment: %w", err)
	}

	mimeType := strings.TrimSpace(declaredMime)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = sniffedMime
	}

	att := Attachment{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		Kind:       ClassifyKind(mimeType, fileName),
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if att.Kind == KindImage {
		previewKey, err := s.savePreview(ctx, ownerKey, att)
		if err != nil {
			// A failed preview is not fatal: the attachment still encodes
			// from its original object.
			telemetry.Warn("inputs.preview_failed", map[string]any{
				"attachment_id": att.ID,
				"file_name":     att.FileName,
				"error":         err.Error(),
			})
		} else {
			att.PreviewKey = previewKey
		}
	}

	store.Add(c, att)
	return att, nil
}

// RemoveAttachment removes an attachment from the store and releases its
// stored objects. Each object is deleted at most once because Remove yields
// the attachment only on the first call.
func (s *Service) RemoveAttachment(ctx context.Context, store *Store, c Category, id string) bool {
	att, ok := store.Remove(c, id)
	if !ok {
		return false
	}
	s.release(ctx, att)
	return true
}

// ClearInputs resets the store and releases every stored object it held.
func (s *Service) ClearInputs(ctx context.Context, store *Store) {
	for _, att := range store.Clear() {
		s.release(ctx, att)
	}
}

// OpenPreview streams the preview object for an image attachment, falling
// back to the original object when no preview exists.
func (s *Service) OpenPreview(ctx context.Context, att Attachment) (io.ReadCloser, error) {
	key := att.PreviewKey
	if key == "" {
		key = att.StorageKey
	}
	return s.Objects.Open(ctx, key)
}

func (s *Service) savePreview(ctx context.Context, ownerKey string, att Attachment) (string, error) {
	src, err := s.Objects.Open(ctx, att.StorageKey)
	if err != nil {
		return "", fmt.Errorf("open original: %w", err)
	}
	defer src.Close()

	previewKey := fmt.Sprintf("previews/%s/%s", util.HashOwnerKey(ownerKey), att.ID)
	if _, err := s.Objects.SaveWithKey(ctx, previewKey, att.MimeType, src); err != nil {
		return "", fmt.Errorf("save preview: %w", err)
	}
	return previewKey, nil
}

func (s *Service) release(ctx context.Context, att Attachment) {
	if att.PreviewKey != "" {
		if err := s.Objects.Delete(ctx, att.PreviewKey); err != nil {
			telemetry.Warn("inputs.release_preview_failed", map[string]any{
				"attachment_id": att.ID,
				"error":         err.Error(),
			})
		}
	}
	if att.StorageKey != "" {
		if err := s.Objects.Delete(ctx, att.StorageKey); err != nil {
			telemetry.Warn("inputs.release_object_failed", map[string]any{
				"attachment_id": att.ID,
				"error":         err.Error(),
			})
		}
	}
}

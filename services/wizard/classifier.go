package wizard

import (
	"strings"

	"estatedesk/models"
	"estatedesk/utils"
)

// The classifier maintains the association between uploaded blobs and their
// labels on the draft's single media list. All bookkeeping (categories,
// required-document types, the cover role) lives on that one list, so
// attach/remove can never desynchronize a flat view from a category view.

// AttachMedia adds a classified file to the draft, enforcing the per-file
// size ceiling and the classification rules for its kind. The draft is left
// untouched when an error is returned.
func AttachMedia(draft *models.PropertyDraft, file models.MediaFile) error {
	if !models.ValidMediaKind(file.Kind) {
		return ErrUnknownMediaKind
	}
	if file.Size > utils.MaxUploadBytes {
		return ErrFileTooLarge
	}

	switch file.Kind {
	case models.MediaRequiredDocument:
		file.DocumentType = strings.TrimSpace(file.DocumentType)
		if file.DocumentType == "" {
			return ErrMissingDocumentType
		}
		if !utils.KnownRequiredDocumentType(file.DocumentType) {
			file.CustomType = true
		}
		// A type may back at most one document per draft; a second upload
		// under the same label is rejected, not merged.
		if draft.HasRequiredDocumentType(file.DocumentType) {
			return ErrDuplicateDocumentType
		}
	case models.MediaImage:
		// First image takes the cover role.
		if len(draft.Images()) == 0 {
			file.Cover = true
		}
	case models.MediaBrochure:
		// A draft carries at most one brochure; a new upload replaces it.
		if existing := draft.Brochure(); existing != nil {
			removeByID(draft, existing.ID)
		}
	}

	draft.Media = append(draft.Media, file)
	return nil
}

// SetCoverImage assigns the cover role to the given image. The previous cover
// is demoted to a normal entry; it is not removed.
func SetCoverImage(draft *models.PropertyDraft, fileID string) error {
	target := draft.FindMedia(fileID)
	if target == nil {
		return ErrUnknownMedia
	}
	if target.Kind != models.MediaImage {
		return ErrNotAnImage
	}

	for i := range draft.Media {
		draft.Media[i].Cover = false
	}
	target.Cover = true
	return nil
}

// RemoveMedia removes a file from the draft. Removing the designated cover
// clears the role without touching the other images.
func RemoveMedia(draft *models.PropertyDraft, fileID string) error {
	if draft.FindMedia(fileID) == nil {
		return ErrUnknownMedia
	}
	removeByID(draft, fileID)
	return nil
}

func removeByID(draft *models.PropertyDraft, fileID string) {
	out := draft.Media[:0]
	for _, f := range draft.Media {
		if f.ID != fileID {
			out = append(out, f)
		}
	}
	draft.Media = out
}

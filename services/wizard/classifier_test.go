package wizard

import (
	"errors"
	"testing"

	"estatedesk/models"
	"estatedesk/utils"
)

func TestAttachMediaSizeCeiling(t *testing.T) {
	draft := models.PropertyDraft{
		Media: []models.MediaFile{{ID: "existing", Kind: models.MediaImage, Cover: true}},
	}

	err := AttachMedia(&draft, models.MediaFile{
		ID:   "big",
		Name: "tour.mp4",
		Size: utils.MaxUploadBytes + 1,
		Kind: models.MediaVideo,
	})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
	if len(draft.Media) != 1 {
		t.Errorf("media list changed on rejected attach: %d entries", len(draft.Media))
	}

	// A file exactly at the ceiling is accepted.
	err = AttachMedia(&draft, models.MediaFile{
		ID:   "ok",
		Size: utils.MaxUploadBytes,
		Kind: models.MediaVideo,
	})
	if err != nil {
		t.Fatalf("attach at size ceiling: %v", err)
	}
}

func TestAttachMediaUnknownKind(t *testing.T) {
	var draft models.PropertyDraft
	err := AttachMedia(&draft, models.MediaFile{ID: "x", Kind: "poster"})
	if !errors.Is(err, ErrUnknownMediaKind) {
		t.Fatalf("err = %v, want ErrUnknownMediaKind", err)
	}
}

func TestAttachRequiredDocument(t *testing.T) {
	var draft models.PropertyDraft

	err := AttachMedia(&draft, models.MediaFile{
		ID:           "d1",
		Kind:         models.MediaRequiredDocument,
		DocumentType: "Property tax receipts",
	})
	if err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if draft.Media[0].CustomType {
		t.Error("fixed-vocabulary type flagged as custom")
	}

	// Same type again is rejected and leaves the list unchanged.
	err = AttachMedia(&draft, models.MediaFile{
		ID:           "d2",
		Kind:         models.MediaRequiredDocument,
		DocumentType: "Property tax receipts",
	})
	if !errors.Is(err, ErrDuplicateDocumentType) {
		t.Fatalf("err = %v, want ErrDuplicateDocumentType", err)
	}
	if len(draft.Media) != 1 {
		t.Errorf("media list changed on duplicate type: %d entries", len(draft.Media))
	}

	// A label outside the fixed vocabulary is kept and flagged custom.
	err = AttachMedia(&draft, models.MediaFile{
		ID:           "d3",
		Kind:         models.MediaRequiredDocument,
		DocumentType: "Khata certificate",
	})
	if err != nil {
		t.Fatalf("custom type attach: %v", err)
	}
	if got := draft.FindMedia("d3"); got == nil || !got.CustomType {
		t.Error("out-of-vocabulary type not flagged as custom")
	}

	// Missing type is rejected outright.
	err = AttachMedia(&draft, models.MediaFile{ID: "d4", Kind: models.MediaRequiredDocument, DocumentType: "  "})
	if !errors.Is(err, ErrMissingDocumentType) {
		t.Fatalf("err = %v, want ErrMissingDocumentType", err)
	}
}

func TestFirstImageBecomesCover(t *testing.T) {
	var draft models.PropertyDraft

	if err := AttachMedia(&draft, models.MediaFile{ID: "i1", Kind: models.MediaImage}); err != nil {
		t.Fatal(err)
	}
	if err := AttachMedia(&draft, models.MediaFile{ID: "i2", Kind: models.MediaImage}); err != nil {
		t.Fatal(err)
	}

	cover := draft.CoverImage()
	if cover == nil || cover.ID != "i1" {
		t.Fatalf("cover = %+v, want first image", cover)
	}
	if draft.FindMedia("i2").Cover {
		t.Error("second image should not carry the cover role")
	}
}

func TestSetCoverImageSupersedes(t *testing.T) {
	var draft models.PropertyDraft
	for _, id := range []string{"i1", "i2", "i3"} {
		if err := AttachMedia(&draft, models.MediaFile{ID: id, Kind: models.MediaImage}); err != nil {
			t.Fatal(err)
		}
	}

	if err := SetCoverImage(&draft, "i3"); err != nil {
		t.Fatalf("SetCoverImage: %v", err)
	}
	if cover := draft.CoverImage(); cover == nil || cover.ID != "i3" {
		t.Fatalf("cover = %+v, want i3", cover)
	}
	// The old cover is demoted, not removed.
	if old := draft.FindMedia("i1"); old == nil {
		t.Fatal("old cover removed")
	} else if old.Cover {
		t.Error("old cover still carries the role")
	}

	if err := SetCoverImage(&draft, "missing"); !errors.Is(err, ErrUnknownMedia) {
		t.Errorf("err = %v, want ErrUnknownMedia", err)
	}

	if err := AttachMedia(&draft, models.MediaFile{ID: "v1", Kind: models.MediaVideo}); err != nil {
		t.Fatal(err)
	}
	if err := SetCoverImage(&draft, "v1"); !errors.Is(err, ErrNotAnImage) {
		t.Errorf("err = %v, want ErrNotAnImage", err)
	}
}

func TestRemoveCoverFallsBackToFirstImage(t *testing.T) {
	var draft models.PropertyDraft
	for _, id := range []string{"i1", "i2"} {
		if err := AttachMedia(&draft, models.MediaFile{ID: id, Kind: models.MediaImage}); err != nil {
			t.Fatal(err)
		}
	}

	if err := RemoveMedia(&draft, "i1"); err != nil {
		t.Fatalf("RemoveMedia: %v", err)
	}
	if len(draft.Images()) != 1 {
		t.Fatalf("images = %d, want 1", len(draft.Images()))
	}
	// No image carries the role any more; the derived view falls back to the
	// first remaining upload.
	if cover := draft.CoverImage(); cover == nil || cover.ID != "i2" {
		t.Errorf("cover = %+v, want fallback to i2", cover)
	}
}

func TestRemoveMediaClearsCategoryView(t *testing.T) {
	var draft models.PropertyDraft
	if err := AttachMedia(&draft, models.MediaFile{ID: "i1", Kind: models.MediaImage, Category: "Kitchen"}); err != nil {
		t.Fatal(err)
	}
	if err := RemoveMedia(&draft, "i1"); err != nil {
		t.Fatal(err)
	}
	if byCat := draft.ImagesByCategory(); len(byCat) != 0 {
		t.Errorf("category view still holds entries after removal: %v", byCat)
	}
	if err := RemoveMedia(&draft, "i1"); !errors.Is(err, ErrUnknownMedia) {
		t.Errorf("err = %v, want ErrUnknownMedia", err)
	}
}

func TestBrochureReplace(t *testing.T) {
	var draft models.PropertyDraft
	if err := AttachMedia(&draft, models.MediaFile{ID: "b1", Name: "old.pdf", Kind: models.MediaBrochure}); err != nil {
		t.Fatal(err)
	}
	if err := AttachMedia(&draft, models.MediaFile{ID: "b2", Name: "new.pdf", Kind: models.MediaBrochure}); err != nil {
		t.Fatal(err)
	}

	brochure := draft.Brochure()
	if brochure == nil || brochure.ID != "b2" {
		t.Fatalf("brochure = %+v, want the replacement", brochure)
	}
	if draft.FindMedia("b1") != nil {
		t.Error("replaced brochure still on the media list")
	}
}

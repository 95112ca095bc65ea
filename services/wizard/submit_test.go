package wizard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"estatedesk/models"
	"estatedesk/services/draft"
	"estatedesk/services/media"
)

type fakeListingRepo struct {
	listings  map[string]*models.Listing
	created   []*models.Listing
	updated   []*models.Listing
	createErr error
	updateErr error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*models.Listing)}
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeListingRepo) List(ctx context.Context, filters models.ListingFilters) ([]models.Listing, error) {
	var out []models.Listing
	for _, l := range r.listings {
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *listing
	r.created = append(r.created, &cp)
	r.listings[listing.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *models.Listing) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *listing
	r.updated = append(r.updated, &cp)
	r.listings[listing.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) IncrementViews(ctx context.Context, id string) error { return nil }

type fakeStorage struct {
	uploads   int
	uploadErr error
}

func (s *fakeStorage) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads++
	return "https://cdn.test/" + destFolder + "/" + filepath.Base(localFilePath), nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID string) error { return nil }

type fakeTasks struct {
	purged  []string
	flushes int
}

func (t *fakeTasks) EnqueueStagingPurge(fileIDs []string) { t.purged = append(t.purged, fileIDs...) }
func (t *fakeTasks) EnqueueListingCacheFlush()            { t.flushes++ }

func newTestService(t *testing.T) (*DefaultWizardService, *fakeListingRepo, *fakeStorage, *fakeTasks) {
	t.Helper()
	staging, err := media.NewStagingStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStagingStore: %v", err)
	}
	repo := newFakeListingRepo()
	store := &fakeStorage{}
	tasks := &fakeTasks{}
	svc := &DefaultWizardService{
		Drafts:   draft.NewMemoryStore(),
		Staging:  staging,
		Storage:  store,
		Listings: repo,
		Tasks:    tasks,
	}
	return svc, repo, store, tasks
}

// seedReviewSession persists a session parked on the review step whose media
// entries are backed by real staged files.
func seedReviewSession(t *testing.T, svc *DefaultWizardService, sessionID string) *models.WizardSession {
	t.Helper()
	ctx := context.Background()

	d := completeDraft()
	d.Media = nil
	for i, docType := range []string{
		"Property ownership documents",
		"Property tax receipts",
		"NOC certificates",
	} {
		staged, err := svc.Staging.Put(strings.NewReader("doc-content"), fmt.Sprintf("doc%d.pdf", i), "application/pdf")
		if err != nil {
			t.Fatalf("stage document: %v", err)
		}
		d.Media = append(d.Media, models.MediaFile{
			ID:           staged.ID,
			Name:         staged.Name,
			Size:         staged.Size,
			Kind:         models.MediaRequiredDocument,
			DocumentType: docType,
		})
	}
	staged, err := svc.Staging.Put(strings.NewReader("jpeg-bytes"), "front.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("stage image: %v", err)
	}
	d.Media = append(d.Media, models.MediaFile{
		ID:       staged.ID,
		Name:     staged.Name,
		Size:     staged.Size,
		Kind:     models.MediaImage,
		Category: "Exterior",
		Cover:    true,
	})

	now := time.Now()
	sess := &models.WizardSession{
		SessionID: sessionID,
		Draft:     d,
		StepIndex: len(models.WizardSteps) - 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.Drafts.Save(ctx, draftKey(sessionID), sess); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sess
}

func TestSubmitCreatesListingAndClearsDraft(t *testing.T) {
	svc, repo, store, tasks := newTestService(t)
	ctx := context.Background()
	seedReviewSession(t, svc, "s1")

	listing, err := svc.Submit(ctx, "s1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if listing.ID == "" {
		t.Error("listing has no id")
	}
	if listing.Status != models.StatusActive {
		t.Errorf("Status = %s, want active", listing.Status)
	}
	if listing.Price != 8500000 {
		t.Errorf("Price = %v, want 8500000", listing.Price)
	}
	if listing.CreatedAt.IsZero() || listing.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
	if len(listing.RequiredDocuments) != 3 {
		t.Fatalf("RequiredDocuments = %d, want 3", len(listing.RequiredDocuments))
	}
	for _, doc := range listing.RequiredDocuments {
		if !strings.HasPrefix(doc.URL, "https://cdn.test/listings/documents/") {
			t.Errorf("document URL = %q, not a persisted URI", doc.URL)
		}
	}
	if len(listing.Images) != 1 || !strings.HasPrefix(listing.Images[0], "https://cdn.test/listings/images/") {
		t.Errorf("Images = %v, want one persisted URI", listing.Images)
	}
	if listing.CoverImage != listing.Images[0] {
		t.Errorf("CoverImage = %q, want %q", listing.CoverImage, listing.Images[0])
	}
	if got := listing.ImageCategories["Exterior"]; len(got) != 1 {
		t.Errorf("ImageCategories[Exterior] = %v, want the image", got)
	}
	if store.uploads != 4 {
		t.Errorf("uploads = %d, want 4", store.uploads)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created = %d listings, want 1", len(repo.created))
	}

	// Success is the only path that clears the draft.
	if sess, _ := svc.Drafts.Load(ctx, draftKey("s1")); sess != nil {
		t.Error("draft snapshot survived a successful submission")
	}
	if len(tasks.purged) != 4 {
		t.Errorf("staging purge enqueued %d handles, want 4", len(tasks.purged))
	}
	if tasks.flushes != 1 {
		t.Errorf("cache flushes = %d, want 1", tasks.flushes)
	}
}

func TestSubmitRejectsUnacceptedTerms(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()
	sess := seedReviewSession(t, svc, "s1")
	sess.Draft.TermsAccepted = false
	if err := svc.Drafts.Save(ctx, draftKey("s1"), sess); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Submit(ctx, "s1")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if _, ok := verr.Fields["termsAccepted"]; !ok {
		t.Errorf("Fields = %v, want termsAccepted", verr.Fields)
	}
	if len(repo.created) != 0 {
		t.Error("listing created despite failed review validation")
	}
	if sess, _ := svc.Drafts.Load(ctx, draftKey("s1")); sess == nil {
		t.Error("draft cleared on a failed submission")
	}
}

func TestSubmitOnlyReachableFromReview(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	sess := seedReviewSession(t, svc, "s1")
	sess.StepIndex = 0
	if err := svc.Drafts.Save(ctx, draftKey("s1"), sess); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Submit(ctx, "s1"); !errors.Is(err, ErrNotOnReview) {
		t.Errorf("err = %v, want ErrNotOnReview", err)
	}
}

func TestSubmitSingleInFlight(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	sess := seedReviewSession(t, svc, "s1")
	sess.Submitting = true
	if err := svc.Drafts.Save(ctx, draftKey("s1"), sess); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Submit(ctx, "s1"); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("err = %v, want ErrSubmissionInFlight", err)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	if _, err := svc.Submit(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSubmitRepositoryFailurePreservesDraft(t *testing.T) {
	svc, repo, _, tasks := newTestService(t)
	ctx := context.Background()
	seedReviewSession(t, svc, "s1")
	repo.createErr = errors.New("mongo unavailable")

	if _, err := svc.Submit(ctx, "s1"); err == nil {
		t.Fatal("expected submission to fail")
	}

	sess, err := svc.Drafts.Load(ctx, draftKey("s1"))
	if err != nil || sess == nil {
		t.Fatalf("draft lost after failed submission (sess=%v, err=%v)", sess, err)
	}
	if sess.Submitting {
		t.Error("submitting flag not re-armed after failure")
	}
	if tasks.flushes != 0 || len(tasks.purged) != 0 {
		t.Error("housekeeping enqueued despite failed submission")
	}

	// The retry succeeds once the repository recovers.
	repo.createErr = nil
	if _, err := svc.Submit(ctx, "s1"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestSubmitStorageFailurePreservesDraft(t *testing.T) {
	svc, repo, store, _ := newTestService(t)
	ctx := context.Background()
	seedReviewSession(t, svc, "s1")
	store.uploadErr = errors.New("cloudinary timeout")

	if _, err := svc.Submit(ctx, "s1"); err == nil {
		t.Fatal("expected submission to fail")
	}
	if len(repo.created) != 0 {
		t.Error("listing created despite storage failure")
	}
	sess, _ := svc.Drafts.Load(ctx, draftKey("s1"))
	if sess == nil {
		t.Fatal("draft lost after storage failure")
	}
	if sess.Submitting {
		t.Error("submitting flag not re-armed after failure")
	}
}

func TestSubmitEditKeepsIdentityAndPrice(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	created := time.Now().Add(-48 * time.Hour)
	repo.listings["existing-1"] = &models.Listing{
		ID:        "existing-1",
		Title:     "Old title",
		Price:     12000000,
		Status:    models.StatusActive,
		Views:     57,
		Inquiries: 4,
		CreatedAt: created,
	}

	sess := seedReviewSession(t, svc, "s1")
	sess.EditListingID = "existing-1"
	sess.Draft.Price = 12000000
	sess.Draft.Title = "Refreshed title"
	if err := svc.Drafts.Save(ctx, draftKey("s1"), sess); err != nil {
		t.Fatal(err)
	}

	listing, err := svc.Submit(ctx, "s1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if listing.ID != "existing-1" {
		t.Errorf("ID = %q, want the original identity", listing.ID)
	}
	if listing.Price != 12000000 {
		t.Errorf("Price = %v, want the original price", listing.Price)
	}
	if listing.Views != 57 || listing.Inquiries != 4 {
		t.Errorf("counters = %d/%d, want 57/4", listing.Views, listing.Inquiries)
	}
	if !listing.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want original %v", listing.CreatedAt, created)
	}
	if listing.Title != "Refreshed title" {
		t.Errorf("Title = %q, edits not applied", listing.Title)
	}
	if len(repo.updated) != 1 || len(repo.created) != 0 {
		t.Errorf("updated=%d created=%d, want an update", len(repo.updated), len(repo.created))
	}
}

func TestUpdateDraftPriceLockedForEditSessions(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	sess := seedReviewSession(t, svc, "s1")
	sess.EditListingID = "existing-1"
	if err := svc.Drafts.Save(ctx, draftKey("s1"), sess); err != nil {
		t.Fatal(err)
	}

	newPrice := 9000000.0
	if _, err := svc.UpdateDraft(ctx, "s1", DraftPatch{Price: &newPrice}); !errors.Is(err, ErrPriceImmutable) {
		t.Errorf("err = %v, want ErrPriceImmutable", err)
	}

	// Re-sending the unchanged price is not a change and passes.
	samePrice := sess.Draft.Price
	if _, err := svc.UpdateDraft(ctx, "s1", DraftPatch{Price: &samePrice}); err != nil {
		t.Errorf("unchanged price rejected: %v", err)
	}
}

func TestUpdateDraftNormalizesAndFilters(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.StartSession(ctx, "s1"); err != nil {
		t.Fatal(err)
	}

	bhk := "3bhk"
	amenities := []string{"Gym", "Helipad", "Parking"}
	sess, err := svc.UpdateDraft(ctx, "s1", DraftPatch{BHK: &bhk, Amenities: &amenities})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	if sess.Draft.BHK != "3BHK" {
		t.Errorf("BHK = %q, want normalized 3BHK", sess.Draft.BHK)
	}
	if len(sess.Draft.Amenities) != 2 {
		t.Errorf("Amenities = %v, want only the fixed vocabulary", sess.Draft.Amenities)
	}
}

func TestStartSessionRestoresPersistedState(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.StartSession(ctx, "")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if first.SessionID == "" {
		t.Fatal("no session id generated")
	}

	title := "Sea-facing villa"
	if _, err := svc.UpdateDraft(ctx, first.SessionID, DraftPatch{Title: &title}); err != nil {
		t.Fatal(err)
	}

	restored, err := svc.StartSession(ctx, first.SessionID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Draft.Title != title {
		t.Errorf("restored Title = %q, want %q", restored.Draft.Title, title)
	}
}

func TestAttachFileRollsBackRejectedUpload(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.StartSession(ctx, "s1"); err != nil {
		t.Fatal(err)
	}

	attach := func(docType string) error {
		_, err := svc.AttachFile(ctx, "s1", FileUpload{
			Reader:       strings.NewReader("pdf-bytes"),
			Name:         "deed.pdf",
			Size:         9,
			ContentType:  "application/pdf",
			Kind:         models.MediaRequiredDocument,
			DocumentType: docType,
		})
		return err
	}

	if err := attach("Property ownership documents"); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if err := attach("Property ownership documents"); !errors.Is(err, ErrDuplicateDocumentType) {
		t.Fatalf("err = %v, want ErrDuplicateDocumentType", err)
	}

	// The rejected copy must not linger in the staging area.
	sess, err := svc.GetSession(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(sess.Draft.Media) != 1 {
		t.Fatalf("media = %d entries, want 1", len(sess.Draft.Media))
	}
	entries, err := os.ReadDir(filepath.Dir(mustStagedPath(t, svc, sess.Draft.Media[0].ID)))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("staging dir holds %d files, want 1", len(entries))
	}
}

func TestDiscardDropsSnapshotAndStagedFiles(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()
	sess := seedReviewSession(t, svc, "s1")

	if err := svc.Discard(ctx, "s1"); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if snap, _ := svc.Drafts.Load(ctx, draftKey("s1")); snap != nil {
		t.Error("snapshot survived discard")
	}
	for _, f := range sess.Draft.Media {
		if _, ok := svc.Staging.Get(f.ID); ok {
			t.Errorf("staged file %s survived discard", f.ID)
		}
	}
}

func mustStagedPath(t *testing.T, svc *DefaultWizardService, id string) string {
	t.Helper()
	staged, ok := svc.Staging.Get(id)
	if !ok {
		t.Fatalf("staged file %s missing", id)
	}
	return staged.Path
}

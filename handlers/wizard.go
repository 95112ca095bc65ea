package handlers

import (
	"errors"
	"net/http"

	"estatedesk/models"
	"estatedesk/services/wizard"
	"estatedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the listing wizard's session endpoints.
type WizardHandler struct {
	Svc wizard.WizardService
}

// NewWizardHandler creates a new WizardHandler instance.
func NewWizardHandler(svc wizard.WizardService) *WizardHandler {
	return &WizardHandler{Svc: svc}
}

// StartSessionHandler opens a new session or restores a saved one. An edit
// session is requested with {"listingId": "..."} in the body.
func (h *WizardHandler) StartSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	var body struct {
		SessionID string `json:"sessionId"`
		ListingID string `json:"listingId"`
	}
	// An empty body starts a fresh session.
	_ = c.ShouldBindJSON(&body)

	var (
		sess *models.WizardSession
		err  error
	)
	if body.ListingID != "" {
		sess, err = h.Svc.BeginEdit(c.Request.Context(), body.ListingID)
	} else {
		sess, err = h.Svc.StartSession(c.Request.Context(), body.SessionID)
	}
	if err != nil {
		logger.Error("Failed to start wizard session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start session", err.Error())
		return
	}
	c.JSON(http.StatusOK, sess)
}

// GetSessionHandler returns the persisted session.
func (h *WizardHandler) GetSessionHandler(c *gin.Context) {
	sess, err := h.Svc.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdateDraftHandler applies a partial draft update and autosaves.
func (h *WizardHandler) UpdateDraftHandler(c *gin.Context) {
	var patch wizard.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	sess, err := h.Svc.UpdateDraft(c.Request.Context(), c.Param("sessionID"), patch)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// AdvanceHandler validates the current step and moves forward when valid.
// An invalid step responds 200 with the field errors for inline rendering:
// failed validation is an expected outcome, not an API error.
func (h *WizardHandler) AdvanceHandler(c *gin.Context) {
	sess, result, err := h.Svc.Advance(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess, "validation": result})
}

// RetreatHandler moves back one step.
func (h *WizardHandler) RetreatHandler(c *gin.Context) {
	sess, err := h.Svc.Retreat(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// AttachFileHandler stages a multipart upload and classifies it onto the
// draft. Classification comes from the form fields kind, category and
// documentType.
func (h *WizardHandler) AttachFileHandler(c *gin.Context) {
	kind := models.MediaKind(c.PostForm("kind"))
	if !models.ValidMediaKind(kind) {
		utils.JSONError(c, http.StatusBadRequest, "Unknown media kind", c.PostForm("kind"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "File not provided", err.Error())
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read file", err.Error())
		return
	}
	defer src.Close()

	file, err := h.Svc.AttachFile(c.Request.Context(), c.Param("sessionID"), wizard.FileUpload{
		Reader:       src,
		Name:         fileHeader.Filename,
		Size:         fileHeader.Size,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Kind:         kind,
		Category:     c.PostForm("category"),
		DocumentType: c.PostForm("documentType"),
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

// RemoveFileHandler removes a classified file from the draft.
func (h *WizardHandler) RemoveFileHandler(c *gin.Context) {
	if err := h.Svc.RemoveFile(c.Request.Context(), c.Param("sessionID"), c.Param("fileID")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File removed"})
}

// SetCoverHandler designates an image as the cover photo.
func (h *WizardHandler) SetCoverHandler(c *gin.Context) {
	if err := h.Svc.SetCover(c.Request.Context(), c.Param("sessionID"), c.Param("fileID")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cover image set"})
}

// SubmitHandler assembles and persists the listing.
func (h *WizardHandler) SubmitHandler(c *gin.Context) {
	logger := getLogger(c)

	l, err := h.Svc.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		var vErr *wizard.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message": "Submission rejected",
				"errors":  vErr.Fields,
			})
			return
		}
		if h.renderKnownError(c, err) {
			return
		}
		logger.Error("Failed to submit listing", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to submit listing", err.Error())
		return
	}
	c.JSON(http.StatusCreated, l)
}

// DiscardSessionHandler drops the session and its staged files.
func (h *WizardHandler) DiscardSessionHandler(c *gin.Context) {
	if err := h.Svc.Discard(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft discarded"})
}

// renderError maps wizard errors onto HTTP responses; unexpected errors
// become 500s.
func (h *WizardHandler) renderError(c *gin.Context, err error) {
	if h.renderKnownError(c, err) {
		return
	}
	getLogger(c).Error("Wizard operation failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "Wizard operation failed", err.Error())
}

func (h *WizardHandler) renderKnownError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Session not found", "")
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		utils.JSONError(c, http.StatusConflict, "Submission already in progress", "")
	case errors.Is(err, wizard.ErrNotOnReview):
		utils.JSONError(c, http.StatusConflict, "Submission is only available from the review step", "")
	case errors.Is(err, wizard.ErrPriceImmutable):
		utils.JSONError(c, http.StatusConflict, "Price cannot be changed", "Listing price is fixed at creation")
	case errors.Is(err, wizard.ErrFileTooLarge):
		utils.JSONError(c, http.StatusBadRequest, "File too large", "Files must be 10 MB or smaller")
	case errors.Is(err, wizard.ErrDuplicateDocumentType):
		utils.JSONError(c, http.StatusBadRequest, "Duplicate document type", "This document type is already covered")
	case errors.Is(err, wizard.ErrMissingDocumentType):
		utils.JSONError(c, http.StatusBadRequest, "Missing document type", "Required documents need a document type")
	case errors.Is(err, wizard.ErrUnknownMedia):
		utils.JSONError(c, http.StatusNotFound, "File not found on draft", "")
	case errors.Is(err, wizard.ErrNotAnImage):
		utils.JSONError(c, http.StatusBadRequest, "Not an image", "Only images can be the cover photo")
	case errors.Is(err, wizard.ErrUnknownMediaKind):
		utils.JSONError(c, http.StatusBadRequest, "Unknown media kind", "")
	default:
		return false
	}
	return true
}

package handlers

import (
	"errors"
	"net/http"

	"estatedesk/models"
	"estatedesk/services/listing"
	"estatedesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListingHandler exposes the dashboard's listing endpoints.
type ListingHandler struct {
	Svc listing.ListingService
}

// NewListingHandler creates a new ListingHandler instance.
func NewListingHandler(svc listing.ListingService) *ListingHandler {
	return &ListingHandler{Svc: svc}
}

// BrowseListingsHandler returns listings matching the dashboard filters.
func (h *ListingHandler) BrowseListingsHandler(c *gin.Context) {
	logger := getLogger(c)

	var filters models.ListingFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid filters", err.Error())
		return
	}

	listings, err := h.Svc.Browse(c.Request.Context(), filters)
	if err != nil {
		logger.Error("Failed to browse listings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get listings", err.Error())
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// GetListingByIDHandler returns one listing and records the view.
func (h *ListingHandler) GetListingByIDHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	l, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "Listing not found", id)
			return
		}
		logger.Error("Failed to get listing", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get listing", err.Error())
		return
	}
	c.JSON(http.StatusOK, l)
}

// UpdateListingHandler applies a partial edit to a listing.
func (h *ListingHandler) UpdateListingHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var patch listing.ListingUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	l, err := h.Svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "Listing not found", id)
		case errors.Is(err, listing.ErrPriceImmutable):
			utils.JSONError(c, http.StatusConflict, "Price cannot be changed", "Listing price is fixed at creation")
		default:
			logger.Error("Failed to update listing", zap.String("id", id), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update listing", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, l)
}

// UpdateListingStatusHandler moves a listing through its lifecycle.
func (h *ListingHandler) UpdateListingStatusHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	var body struct {
		Status models.ListingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	l, err := h.Svc.SetStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "Listing not found", id)
		case errors.Is(err, listing.ErrInvalidStatus):
			utils.JSONError(c, http.StatusBadRequest, "Invalid status", string(body.Status))
		default:
			logger.Error("Failed to update listing status", zap.String("id", id), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update status", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, l)
}

// DeleteListingHandler removes a listing.
func (h *ListingHandler) DeleteListingHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete listing", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete listing", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

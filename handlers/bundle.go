package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates the handlers wired up in main so route
// registration takes a single dependency.
type HandlerBundle struct {
	// Listing dashboard endpoints.
	BrowseListingsHandler      gin.HandlerFunc
	GetListingByIDHandler      gin.HandlerFunc
	UpdateListingHandler       gin.HandlerFunc
	UpdateListingStatusHandler gin.HandlerFunc
	DeleteListingHandler       gin.HandlerFunc

	// Listing wizard endpoints.
	StartSessionHandler   gin.HandlerFunc
	GetSessionHandler     gin.HandlerFunc
	UpdateDraftHandler    gin.HandlerFunc
	AdvanceHandler        gin.HandlerFunc
	RetreatHandler        gin.HandlerFunc
	AttachFileHandler     gin.HandlerFunc
	RemoveFileHandler     gin.HandlerFunc
	SetCoverHandler       gin.HandlerFunc
	SubmitHandler         gin.HandlerFunc
	DiscardSessionHandler gin.HandlerFunc

	// Form metadata endpoints.
	VocabulariesHandler gin.HandlerFunc
}

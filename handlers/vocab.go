package handlers

import (
	"net/http"

	"estatedesk/utils"

	"github.com/gin-gonic/gin"
)

// VocabulariesHandler returns the fixed vocabularies the listing form offers:
// amenities, required-document types and image categories.
func VocabulariesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"amenities":             utils.Amenities,
		"requiredDocumentTypes": utils.RequiredDocumentTypes,
		"imageCategories":       utils.ImageCategories,
		"customDocumentType":    utils.CustomDocumentType,
	})
}

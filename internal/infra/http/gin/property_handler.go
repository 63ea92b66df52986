package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	"staybook/internal/app/facade"
	domainlisting "staybook/internal/domain/listing"
)

// PropertyHandler serves the read side of the property module through the
// facade, the same seam the booking flow uses.
type PropertyHandler struct {
	Facade      facade.PropertyModule
	ListingRepo domainlisting.Repository
}

func (h PropertyHandler) Get(c *gin.Context) {
	view, err := h.Facade.FindProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h PropertyHandler) Listings(c *gin.Context) {
	exists, err := h.Facade.PropertyExists(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	items, err := h.ListingRepo.ByProperty(c.Request.Context(), domainlisting.PropertyID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]dto.ListingDTO, 0, len(items))
	for _, l := range items {
		views = append(views, dto.NewListingDTO(l))
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}

var _ PropertyHTTP = PropertyHandler{}

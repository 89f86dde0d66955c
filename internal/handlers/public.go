package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rajendranagar-portal/internal/config"
	"rajendranagar-portal/internal/listings"
	"rajendranagar-portal/internal/models"
	"rajendranagar-portal/internal/ratelimit"
	"rajendranagar-portal/internal/tiers"
)

// PublicHandler serves the browse/post/manage endpoints used by the site.
type PublicHandler struct {
	service *listings.Service
	limiter *ratelimit.PostLimiter
	contact config.ContactConfig
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(service *listings.Service, limiter *ratelimit.PostLimiter, contact config.ContactConfig) *PublicHandler {
	return &PublicHandler{
		service: service,
		limiter: limiter,
		contact: contact,
	}
}

// respondError maps the domain error taxonomy onto HTTP responses.
// Persistence failures get a generic retry message; validation and quota
// messages are safe to show verbatim.
func respondError(c *gin.Context, err error) {
	var validationErr *listings.ValidationError
	var quotaErr *listings.QuotaExceededError
	var persistenceErr *listings.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &quotaErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":   quotaErr.Error(),
			"tier":    quotaErr.TierName,
			"limit":   quotaErr.Limit,
			"current": quotaErr.Current,
		})
	case errors.As(err, &persistenceErr):
		log.Printf("Storage error: %v", persistenceErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	default:
		log.Printf("Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}

// RateLimitMiddleware bounces submission bursts on the posting endpoint.
func (h *PublicHandler) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many submissions. Please wait a minute and try again.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetProperties returns all active listings (cached view).
func (h *PublicHandler) GetProperties(c *gin.Context) {
	properties, err := h.service.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetProperty returns one listing by id, regardless of age.
func (h *PublicHandler) GetProperty(c *gin.Context) {
	property, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// GetPropertiesByArea returns active listings for one locality.
func (h *PublicHandler) GetPropertiesByArea(c *gin.Context) {
	area := c.Param("area")
	if !models.ValidArea(area) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown area"})
		return
	}

	properties, err := h.service.ListActiveByArea(area)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetMyProperties returns all listings for an owner's mobile number,
// expired ones included so they can still be managed.
func (h *PublicHandler) GetMyProperties(c *gin.Context) {
	mobile := c.Query("mobile")
	if mobile == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mobile query parameter required"})
		return
	}

	properties, err := h.service.ListByOwnerPhone(mobile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, properties)
}

// CreateProperty accepts a self-service listing submission.
func (h *PublicHandler) CreateProperty(c *gin.Context) {
	var data models.PropertyData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.service.Create(&data, false)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Listing created: %s (%s, %s)", property.ID, property.Area, property.Contact.Phone)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Property saved successfully!",
		"property": property,
	})
}

// DeleteProperty removes an owner's listing. The response never says
// whether the id existed or merely belonged to someone else.
func (h *PublicHandler) DeleteProperty(c *gin.Context) {
	id := c.Param("id")
	mobile := c.Query("mobile")

	deleted, err := h.service.Delete(id, mobile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// GetAreas lists the fixed localities.
func (h *PublicHandler) GetAreas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"areas": models.Areas})
}

// GetAmenities lists the suggested amenities for the posting form.
func (h *PublicHandler) GetAmenities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"amenities": models.AmenitiesList})
}

// GetTiers lists the fixed tier plan table.
func (h *PublicHandler) GetTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": tiers.Plans})
}

// GetSiteContact returns the site-wide contact used by default-contact
// listings.
func (h *PublicHandler) GetSiteContact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"phone":    h.contact.Phone,
		"whatsapp": h.contact.Whatsapp,
	})
}

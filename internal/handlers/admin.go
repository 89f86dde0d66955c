package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rajendranagar-portal/internal/cleanup"
	"rajendranagar-portal/internal/listings"
	"rajendranagar-portal/internal/models"
	"rajendranagar-portal/internal/ratelimit"
)

// AdminHandler handles admin-related requests
type AdminHandler struct {
	service        *listings.Service
	cleanupService *cleanup.Service
	limiter        *ratelimit.PostLimiter
	adminKey       string
}

// NewAdminHandler creates a new admin handler. cleanupService may be nil
// when the backend is not GORM-based; the purge endpoint then reports
// unavailable.
func NewAdminHandler(service *listings.Service, cleanupService *cleanup.Service, limiter *ratelimit.PostLimiter, adminKey string) *AdminHandler {
	return &AdminHandler{
		service:        service,
		cleanupService: cleanupService,
		limiter:        limiter,
		adminKey:       adminKey,
	}
}

// KeyMiddleware rejects requests without the admin key header.
func (h *AdminHandler) KeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Admin-Key") != h.adminKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetStats returns the dashboard aggregates.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetUserLimit looks up a quota override by mobile number.
func (h *AdminHandler) GetUserLimit(c *gin.Context) {
	limit, err := h.service.UserLimit(c.Param("mobile"))
	if err != nil {
		respondError(c, err)
		return
	}
	if limit == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No limit assigned"})
		return
	}
	c.JSON(http.StatusOK, limit)
}

// PutUserLimit assigns or updates a quota override.
func (h *AdminHandler) PutUserLimit(c *gin.Context) {
	var req struct {
		TierName string `json:"tier_name"`
		MaxPosts int    `json:"max_posts"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mobile := c.Param("mobile")
	if err := h.service.AssignTier(mobile, req.TierName, req.MaxPosts); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Admin: Assigned %s tier (%d posts) to %s", req.TierName, req.MaxPosts, mobile)
	c.JSON(http.StatusOK, gin.H{"message": "Limit updated"})
}

// CreateProperty creates an admin-authored listing, exempt from quota and
// from the mandatory phone number.
func (h *AdminHandler) CreateProperty(c *gin.Context) {
	var data models.PropertyData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.service.Create(&data, true)
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Admin: Listing created: %s (%s)", property.ID, property.Area)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Property saved successfully!",
		"property": property,
	})
}

// DeleteProperty removes any listing regardless of owner or age.
func (h *AdminHandler) DeleteProperty(c *gin.Context) {
	deleted, err := h.service.Delete(c.Param("id"), h.service.AdminKey())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// RunPurge executes physical deletion of long-expired listings.
func (h *AdminHandler) RunPurge(c *gin.Context) {
	if h.cleanupService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Purge not available (MySQL/GORM backend required)",
		})
		return
	}

	var req struct {
		GraceDays        int  `json:"grace_days"`
		MaxDeletionCount int  `json:"max_deletion_count"`
		DryRun           bool `json:"dry_run"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := cleanup.DefaultPurgeConfig()
	if req.GraceDays > 0 {
		cfg.GraceDays = req.GraceDays
	}
	if req.MaxDeletionCount > 0 {
		cfg.MaxDeletionCount = req.MaxDeletionCount
	}
	cfg.DryRun = req.DryRun

	log.Printf("Admin: Running purge (grace: %d days, max: %d, dry-run: %v)",
		cfg.GraceDays, cfg.MaxDeletionCount, cfg.DryRun)

	result, err := h.cleanupService.Purge(cfg)
	if err != nil {
		log.Printf("Admin: Purge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDeleteLogs returns recent purge log entries.
func (h *AdminHandler) GetDeleteLogs(c *gin.Context) {
	if h.cleanupService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Delete logs not available (MySQL/GORM backend required)",
		})
		return
	}

	logs, err := h.cleanupService.RecentDeleteLogs(100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

// GetRateLimitStats returns posting rate limiter statistics.
func (h *AdminHandler) GetRateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.limiter.GetStats())
}

// Package cleanup physically purges listings that have been outside the
// active window for a long time. Expired listings normally stay stored (they
// remain reachable by id and by owner), so purging is strictly an
// admin-triggered operation, never scheduled.
package cleanup

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"rajendranagar-portal/internal/database"
)

// Service handles physical deletion of long-expired listings
type Service struct {
	db *gorm.DB
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// PurgeConfig holds configuration for purge operations
type PurgeConfig struct {
	// GraceDays counts from the end of the 60-day active window; a listing
	// is purgeable only after retention + grace days.
	GraceDays        int
	RetentionDays    int
	MaxDeletionCount int  // Safety limit per run
	DryRun           bool // If true, only log what would be deleted
}

// DefaultPurgeConfig returns default configuration
func DefaultPurgeConfig() PurgeConfig {
	return PurgeConfig{
		GraceDays:        120,
		RetentionDays:    60,
		MaxDeletionCount: 1000,
		DryRun:           true,
	}
}

// PurgeResult holds the result of a purge operation
type PurgeResult struct {
	TargetCount  int       `json:"target_count"`
	DeletedCount int       `json:"deleted_count"`
	ErrorCount   int       `json:"error_count"`
	DryRun       bool      `json:"dry_run"`
	ExecutedAt   time.Time `json:"executed_at"`
	DeletedIDs   []string  `json:"deleted_ids"`
	Errors       []string  `json:"errors,omitempty"`
}

// FindPurgeable finds listings whose created_at is older than
// retention + grace days.
func (s *Service) FindPurgeable(cfg PurgeConfig) ([]database.PropertyRow, error) {
	var rows []database.PropertyRow

	cutoff := time.Now().AddDate(0, 0, -(cfg.RetentionDays + cfg.GraceDays))

	err := s.db.Where("created_at < ?", cutoff).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find purgeable listings: %w", err)
	}

	log.Printf("Cleanup: Found %d listings created before %s", len(rows), cutoff.Format("2006-01-02"))
	return rows, nil
}

// Purge performs physical deletion of long-expired listings
func (s *Service) Purge(cfg PurgeConfig) (*PurgeResult, error) {
	result := &PurgeResult{
		DryRun:     cfg.DryRun,
		ExecutedAt: time.Now(),
	}

	purgeable, err := s.FindPurgeable(cfg)
	if err != nil {
		return nil, err
	}

	result.TargetCount = len(purgeable)

	if result.TargetCount == 0 {
		log.Println("Cleanup: No purgeable listings found")
		return result, nil
	}

	// Safety check: abort if too many rows would be deleted
	if result.TargetCount > cfg.MaxDeletionCount {
		return nil, fmt.Errorf("safety check failed: %d listings exceed max deletion limit of %d",
			result.TargetCount, cfg.MaxDeletionCount)
	}

	log.Printf("Cleanup: Starting purge of %d listings (grace: %d days, dry-run: %v)",
		result.TargetCount, cfg.GraceDays, cfg.DryRun)

	for _, row := range purgeable {
		if cfg.DryRun {
			log.Printf("Cleanup: [DRY-RUN] Would delete listing %s (Title: %s, CreatedAt: %s)",
				row.ID, row.Title, row.CreatedAt.Format("2006-01-02"))
			result.DeletedIDs = append(result.DeletedIDs, row.ID)
			result.DeletedCount++
			continue
		}

		err := s.db.Transaction(func(tx *gorm.DB) error {
			deleteLog := database.DeleteLog{
				PropertyID:   row.ID,
				Title:        row.Title,
				Area:         row.Area,
				ContactPhone: row.ContactPhone,
				PostedAt:     row.CreatedAt,
				Reason:       database.DeleteReasonExpiredPurge,
			}
			if err := tx.Create(&deleteLog).Error; err != nil {
				return err
			}
			return tx.Delete(&database.PropertyRow{}, "id = ?", row.ID).Error
		})

		if err != nil {
			errMsg := fmt.Sprintf("Failed to delete listing %s: %v", row.ID, err)
			log.Printf("Cleanup: ERROR: %s", errMsg)
			result.Errors = append(result.Errors, errMsg)
			result.ErrorCount++
			continue
		}

		log.Printf("Cleanup: Purged listing %s (Title: %s)", row.ID, row.Title)
		result.DeletedIDs = append(result.DeletedIDs, row.ID)
		result.DeletedCount++
	}

	log.Printf("Cleanup: Purge completed: %d/%d deleted, %d errors (dry-run: %v)",
		result.DeletedCount, result.TargetCount, result.ErrorCount, cfg.DryRun)

	return result, nil
}

// RecentDeleteLogs returns recent delete log entries
func (s *Service) RecentDeleteLogs(limit int) ([]database.DeleteLog, error) {
	var logs []database.DeleteLog
	err := s.db.Order("deleted_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

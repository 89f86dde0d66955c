package database

import (
	"time"

	"rajendranagar-portal/internal/models"
)

// Store is the persistence contract for listings and user limits. Two
// interchangeable implementations exist (MySQL via GORM, PostgreSQL via
// database/sql); business logic never branches on the concrete backend.
//
// Read misses are (nil, nil) / empty slices, not errors. The active-window
// cutoff is always supplied by the caller so the retention rule lives in one
// place.
type Store interface {
	InitSchema() error

	// InsertProperty persists a fully mapped row. A missing ID or zero
	// CreatedAt is filled in by the backend at insert time.
	InsertProperty(row *PropertyRow) error

	// ActiveProperties returns listings created after cutoff, newest first.
	ActiveProperties(cutoff time.Time) ([]models.Property, error)

	// ActivePropertiesByArea is ActiveProperties restricted to an exact area.
	ActivePropertiesByArea(area string, cutoff time.Time) ([]models.Property, error)

	// PropertyByID fetches one listing regardless of age.
	PropertyByID(id string) (*models.Property, error)

	// PropertiesByOwner returns every listing, regardless of age, whose
	// stored contact phone ends with the given normalized 10-digit mobile.
	PropertiesByOwner(mobile string) ([]models.Property, error)

	// CountActiveByOwner counts the owner's listings inside the active window.
	CountActiveByOwner(mobile string, cutoff time.Time) (int64, error)

	// DeleteProperty removes a listing. When ownerMobile is non-empty the
	// delete only applies if the stored contact phone matches it by suffix;
	// an empty ownerMobile deletes unconditionally (admin path). Returns
	// whether a row was actually removed.
	DeleteProperty(id, ownerMobile string) (bool, error)

	CountActive(cutoff time.Time) (int64, error)

	// CountCreatedOn counts listings whose created_at rendered as text starts
	// with datePrefix (YYYY-MM-DD in the storage timezone).
	CountCreatedOn(datePrefix string) (int64, error)

	// TopAreas groups active listings by area, descending by count.
	TopAreas(cutoff time.Time, limit int) ([]models.AreaCount, error)

	// UserLimitByMobile looks up a quota override by phone suffix.
	UserLimitByMobile(mobile string) (*models.UserLimit, error)

	// UpsertUserLimit updates the override matched by phone suffix, keeping
	// the originally stored mobile key, or inserts a new row keyed by the
	// normalized mobile.
	UpsertUserLimit(mobile, tierName string, maxPosts int) error

	Close() error
}

// phoneMatchExpr strips spaces, dashes and plus signs from a stored phone
// column so a LIKE '%<10 digits>' suffix match tolerates legacy entries with
// country code prefixes or formatting. Valid MySQL, PostgreSQL and SQLite.
func phoneMatchExpr(column string) string {
	return "REPLACE(REPLACE(REPLACE(" + column + ", ' ', ''), '-', ''), '+', '') LIKE ?"
}

// Package listings implements the listing lifecycle: creation with quota
// enforcement, retention-windowed reads, ownership-gated deletion and the
// dashboard aggregates.
package listings

import (
	"time"

	"rajendranagar-portal/internal/database"
	"rajendranagar-portal/internal/models"
)

// Options configures a listing service.
type Options struct {
	// RetentionDays is the active window; listings older than this are
	// hidden from the list and count paths (they stay stored and directly
	// fetchable).
	RetentionDays int

	// CacheTTL is the freshness window of the all-listings cache.
	CacheTTL time.Duration

	// AdminKey is the delete-bypass sentinel the administrator presents as
	// requester key.
	AdminKey string
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		RetentionDays: 60,
		CacheTTL:      5 * time.Minute,
		AdminKey:      "ADMIN",
	}
}

// Service owns listing reads and writes on top of a pluggable Store.
type Service struct {
	store         database.Store
	retentionDays int
	adminKey      string
	cache         *listingCache
}

// NewService creates a listing service over the given store.
func NewService(store database.Store, opts Options) *Service {
	if opts.RetentionDays <= 0 {
		opts.RetentionDays = 60
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.AdminKey == "" {
		opts.AdminKey = "ADMIN"
	}
	return &Service{
		store:         store,
		retentionDays: opts.RetentionDays,
		adminKey:      opts.AdminKey,
		cache:         newListingCache(opts.CacheTTL),
	}
}

// cutoff is the oldest created_at still inside the active window, evaluated
// at call time. Expiry is purely a query-time filter.
func (s *Service) cutoff() time.Time {
	return time.Now().AddDate(0, 0, -s.retentionDays)
}

// Create validates, quota-checks and persists a new listing, returning it
// with its generated id and creation timestamp. Admin-authored listings skip
// the quota and the mandatory phone; a sentinel phone is stored when the
// admin supplies none.
func (s *Service) Create(data *models.PropertyData, isAdmin bool) (*models.Property, error) {
	if data.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "Title is required."}
	}
	if data.Description == "" {
		return nil, &ValidationError{Field: "description", Message: "Description is required."}
	}
	if data.Price < 0 {
		return nil, &ValidationError{Field: "price", Message: "Price cannot be negative."}
	}
	if data.Size.Value <= 0 {
		return nil, &ValidationError{Field: "size", Message: "Size must be a positive number."}
	}
	if !models.ValidArea(string(data.Area)) {
		return nil, &ValidationError{Field: "area", Message: "Unknown area."}
	}

	mobile := models.NormalizePhone(data.Contact.Phone)

	if !isAdmin {
		if data.Location.GoogleMapsLink == "" {
			return nil, &ValidationError{Field: "location.googleMapsLink", Message: "Google Maps link is required."}
		}
		if err := s.CheckQuota(mobile); err != nil {
			return nil, err
		}
	}

	saveMobile := mobile
	if isAdmin && saveMobile == "" {
		saveMobile = s.adminKey
	}

	row := database.RowFromData(data, saveMobile)
	if err := s.store.InsertProperty(row); err != nil {
		return nil, &PersistenceError{Op: "saving property", Err: err}
	}

	s.cache.invalidate()

	property := database.RowToProperty(row)
	return &property, nil
}

// ListActive returns all listings inside the active window, newest first,
// through the stale-while-revalidate cache.
func (s *Service) ListActive() ([]models.Property, error) {
	properties, err := s.cache.get(func() ([]models.Property, error) {
		return s.store.ActiveProperties(s.cutoff())
	})
	if err != nil {
		return nil, &PersistenceError{Op: "fetching properties", Err: err}
	}
	return properties, nil
}

// ListActiveByArea returns active listings for one locality. Never cached.
func (s *Service) ListActiveByArea(area string) ([]models.Property, error) {
	properties, err := s.store.ActivePropertiesByArea(area, s.cutoff())
	if err != nil {
		return nil, &PersistenceError{Op: "fetching properties by area", Err: err}
	}
	return properties, nil
}

// GetByID fetches one listing regardless of age; nil when absent.
func (s *Service) GetByID(id string) (*models.Property, error) {
	property, err := s.store.PropertyByID(id)
	if err != nil {
		return nil, &PersistenceError{Op: "fetching property", Err: err}
	}
	return property, nil
}

// ListByOwnerPhone returns every listing whose stored phone ends with the
// normalized form of phoneRaw, expired ones included.
func (s *Service) ListByOwnerPhone(phoneRaw string) ([]models.Property, error) {
	mobile := models.NormalizePhone(phoneRaw)
	if mobile == "" {
		return []models.Property{}, nil
	}
	properties, err := s.store.PropertiesByOwner(mobile)
	if err != nil {
		return nil, &PersistenceError{Op: "fetching owner properties", Err: err}
	}
	return properties, nil
}

// Delete removes a listing if the requester key is the admin bypass value or
// matches the phone stored on the listing. A requester key that does not
// normalize to a full 10-digit mobile never matches anything; the store-level
// suffix match must only ever see complete numbers. The false return covers
// both "not found" and "not owned"; callers cannot tell them apart.
func (s *Service) Delete(id, requesterKey string) (bool, error) {
	var deleted bool
	var err error

	if requesterKey == s.adminKey {
		deleted, err = s.store.DeleteProperty(id, "")
	} else {
		mobile := models.NormalizePhone(requesterKey)
		if len(mobile) < 10 {
			return false, nil
		}
		deleted, err = s.store.DeleteProperty(id, mobile)
	}
	if err != nil {
		return false, &PersistenceError{Op: "deleting property", Err: err}
	}

	s.cache.invalidate()
	return deleted, nil
}

// Stats assembles the admin dashboard aggregates.
func (s *Service) Stats() (*models.DashboardStats, error) {
	cutoff := s.cutoff()

	total, err := s.store.CountActive(cutoff)
	if err != nil {
		return nil, &PersistenceError{Op: "counting active listings", Err: err}
	}

	today, err := s.store.CountCreatedOn(time.Now().Format("2006-01-02"))
	if err != nil {
		return nil, &PersistenceError{Op: "counting today's listings", Err: err}
	}

	topAreas, err := s.store.TopAreas(cutoff, 5)
	if err != nil {
		return nil, &PersistenceError{Op: "grouping areas", Err: err}
	}

	return &models.DashboardStats{
		TotalAds:  total,
		TodaysAds: today,
		TopAreas:  topAreas,
	}, nil
}

// AdminKey exposes the configured delete-bypass sentinel.
func (s *Service) AdminKey() string {
	return s.adminKey
}

// WarmCache refreshes the all-listings cache synchronously.
func (s *Service) WarmCache() error {
	_, err := s.cache.refresh(func() ([]models.Property, error) {
		return s.store.ActiveProperties(s.cutoff())
	})
	return err
}

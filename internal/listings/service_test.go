package listings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rajendranagar-portal/internal/database"
	"rajendranagar-portal/internal/models"
)

func setupService(t *testing.T) (*Service, *database.GormDB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "portal.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	store := database.NewGormDBFromDB(db)
	require.NoError(t, store.InitSchema())

	return NewService(store, DefaultOptions()), store
}

func validData(phone string) *models.PropertyData {
	return &models.PropertyData{
		Title:           "2BHK Flat",
		Area:            models.AreaKismatpur,
		PropertyType:    models.PropertyTypeApartment,
		ListingCategory: models.ListingCategorySale,
		Size:            models.Size{Value: 1200, Unit: models.SizeUnitSqFt},
		Price:           4500000,
		Description:     "Ready to move flat near the ORR exit.",
		Amenities:       []string{"Car Parking", "Lift"},
		Location:        models.Location{GoogleMapsLink: "https://maps.google.com/?q=kismatpur"},
		Media:           models.Media{Images: []string{"https://img.example.com/flat.webp"}},
		Contact:         models.Contact{Type: models.ContactTypeCustom, Name: "Ravi", Phone: phone},
	}
}

func backdate(t *testing.T, store *database.GormDB, id string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, store.DB().Model(&database.PropertyRow{}).
		Where("id = ?", id).
		Update("created_at", createdAt).Error)
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	service, _ := setupService(t)

	property, err := service.Create(validData("9123456780"), false)
	require.NoError(t, err)

	assert.NotEmpty(t, property.ID)
	assert.WithinDuration(t, time.Now(), property.CreatedAt, 5*time.Second)
	assert.Equal(t, "9123456780", property.Contact.Phone)

	byArea, err := service.ListActiveByArea(string(models.AreaKismatpur))
	require.NoError(t, err)
	require.Len(t, byArea, 1)
	assert.Equal(t, property.ID, byArea[0].ID)
	assert.Equal(t, int64(4500000), byArea[0].Price)
}

func TestCreateNormalizesPhone(t *testing.T) {
	service, _ := setupService(t)

	property, err := service.Create(validData("+91 91234-56780"), false)
	require.NoError(t, err)
	assert.Equal(t, "9123456780", property.Contact.Phone)
}

func TestCreateValidation(t *testing.T) {
	service, _ := setupService(t)

	cases := []struct {
		name   string
		mutate func(*models.PropertyData)
	}{
		{"missing title", func(d *models.PropertyData) { d.Title = "" }},
		{"missing description", func(d *models.PropertyData) { d.Description = "" }},
		{"missing maps link", func(d *models.PropertyData) { d.Location.GoogleMapsLink = "" }},
		{"missing phone", func(d *models.PropertyData) { d.Contact.Phone = "" }},
		{"short phone", func(d *models.PropertyData) { d.Contact.Phone = "12345" }},
		{"negative price", func(d *models.PropertyData) { d.Price = -1 }},
		{"zero size", func(d *models.PropertyData) { d.Size.Value = 0 }},
		{"unknown area", func(d *models.PropertyData) { d.Area = "Gotham" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := validData("9123456780")
			tc.mutate(data)

			_, err := service.Create(data, false)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestDefaultTierAllowsExactlyOne(t *testing.T) {
	service, _ := setupService(t)

	_, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)

	_, err = service.Create(validData("9000000001"), false)
	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "Free", quotaErr.TierName)
	assert.Equal(t, 1, quotaErr.Limit)
	assert.Equal(t, int64(1), quotaErr.Current)
}

func TestQuotaEnforcementWithOverride(t *testing.T) {
	service, _ := setupService(t)

	require.NoError(t, service.AssignTier("9000000001", "Iron", 2))

	_, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)
	_, err = service.Create(validData("9000000001"), false)
	require.NoError(t, err)

	_, err = service.Create(validData("9000000001"), false)
	var quotaErr *QuotaExceededError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "Iron", quotaErr.TierName)
	assert.Equal(t, 2, quotaErr.Limit)
	assert.Equal(t, int64(2), quotaErr.Current)
}

func TestQuotaFreesUpWhenListingExpires(t *testing.T) {
	service, store := setupService(t)

	property, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)

	// Age the listing past the retention window; the slot opens up again
	backdate(t, store, property.ID, time.Now().AddDate(0, 0, -61))

	_, err = service.Create(validData("9000000001"), false)
	require.NoError(t, err)
}

func TestAdminCreateBypassesQuotaAndPhone(t *testing.T) {
	service, _ := setupService(t)

	// No phone and no maps link at all
	data := validData("")
	data.Location.GoogleMapsLink = ""
	data.Contact.Name = ""

	property, err := service.Create(data, true)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", property.Contact.Phone)

	// Quota never applies on the admin path
	for i := 0; i < 3; i++ {
		_, err := service.Create(validData("9000000009"), true)
		require.NoError(t, err)
	}
}

func TestListByOwnerPhoneNormalization(t *testing.T) {
	service, _ := setupService(t)

	created, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)

	plain, err := service.ListByOwnerPhone("9000000001")
	require.NoError(t, err)
	formatted, err := service.ListByOwnerPhone("+91 90000-00001")
	require.NoError(t, err)

	require.Len(t, plain, 1)
	require.Len(t, formatted, 1)
	assert.Equal(t, created.ID, plain[0].ID)
	assert.Equal(t, created.ID, formatted[0].ID)
}

func TestRetentionAsymmetry(t *testing.T) {
	service, store := setupService(t)

	property, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)
	backdate(t, store, property.ID, time.Now().AddDate(0, 0, -61))

	active, err := service.ListActive()
	require.NoError(t, err)
	assert.Empty(t, active)

	byArea, err := service.ListActiveByArea(string(models.AreaKismatpur))
	require.NoError(t, err)
	assert.Empty(t, byArea)

	byID, err := service.GetByID(property.ID)
	require.NoError(t, err)
	assert.NotNil(t, byID)

	owned, err := service.ListByOwnerPhone("9000000001")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestDeleteOwnershipGate(t *testing.T) {
	service, _ := setupService(t)

	property, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)

	// Wrong owner and missing id are both a plain false
	deleted, err := service.Delete(property.ID, "9999999999")
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = service.Delete("no-such-id", "9000000001")
	require.NoError(t, err)
	assert.False(t, deleted)

	still, err := service.GetByID(property.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)

	// Admin bypass key always wins
	deleted, err = service.Delete(property.ID, "ADMIN")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteRejectsPartialRequesterKey(t *testing.T) {
	service, _ := setupService(t)

	property, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)

	// Keys that don't normalize to a full 10-digit number must never reach
	// the store's suffix match, where "1" would hit this listing.
	for _, key := range []string{"1", "0001", "000001", "+91-1", ""} {
		deleted, err := service.Delete(property.ID, key)
		require.NoError(t, err)
		assert.False(t, deleted, "key %q must not delete", key)
	}

	still, err := service.GetByID(property.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)

	// The real owner still can
	deleted, err := service.Delete(property.ID, "9000000001")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteByOwnerWithFormattedNumber(t *testing.T) {
	service, _ := setupService(t)

	property, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)

	deleted, err := service.Delete(property.ID, "+91 9000000001")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestCacheInvalidatedOnWrite(t *testing.T) {
	service, _ := setupService(t)

	// Prime the cache with an empty view
	active, err := service.ListActive()
	require.NoError(t, err)
	assert.Empty(t, active)

	property, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)

	// The write dropped the cache, so this read sees the new listing
	// even though the prior read was seconds ago
	active, err = service.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, property.ID, active[0].ID)

	deleted, err := service.Delete(property.ID, "9000000001")
	require.NoError(t, err)
	require.True(t, deleted)

	active, err = service.ListActive()
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestStats(t *testing.T) {
	service, store := setupService(t)

	require.NoError(t, service.AssignTier("9000000001", "Gold", 25))

	for i := 0; i < 3; i++ {
		_, err := service.Create(validData("9000000001"), false)
		require.NoError(t, err)
	}
	older, err := service.Create(validData("9000000001"), false)
	require.NoError(t, err)
	backdate(t, store, older.ID, time.Now().AddDate(0, 0, -10))

	data := validData("9000000001")
	data.Area = models.AreaNarsingi
	_, err = service.Create(data, false)
	require.NoError(t, err)

	stats, err := service.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalAds)
	assert.Equal(t, int64(4), stats.TodaysAds)
	require.NotEmpty(t, stats.TopAreas)
	assert.Equal(t, string(models.AreaKismatpur), stats.TopAreas[0].Area)
	assert.Equal(t, int64(4), stats.TopAreas[0].Count)
}

func TestCheckQuotaRequiresTenDigits(t *testing.T) {
	service, _ := setupService(t)

	var validationErr *ValidationError
	require.ErrorAs(t, service.CheckQuota("12345"), &validationErr)
	require.ErrorAs(t, service.CheckQuota(""), &validationErr)

	// Formatting and country codes are fine
	require.NoError(t, service.CheckQuota("+91 90000-00001"))
}

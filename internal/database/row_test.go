package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rajendranagar-portal/internal/models"
)

func sampleData() *models.PropertyData {
	return &models.PropertyData{
		Title:           "3BHK Villa in gated community",
		Area:            models.AreaNarsingi,
		PropertyType:    models.PropertyTypeVilla,
		ListingCategory: models.ListingCategorySale,
		Size:            models.Size{Value: 2400, Unit: models.SizeUnitSqFt},
		Price:           18500000,
		Facing:          "East",
		Description:     "Corner plot villa with club house access.",
		Amenities:       []string{"Gated Community", "Club House", "Swimming Pool"},
		Location:        models.Location{GoogleMapsLink: "https://maps.google.com/?q=narsingi"},
		Media: models.Media{
			YoutubeLink: "https://youtu.be/abc123",
			Images: []string{
				"https://img.example.com/a.webp",
				"https://img.example.com/b.webp",
				"https://img.example.com/c.webp",
				"https://img.example.com/d.webp",
				"https://img.example.com/e.webp",
			},
		},
		Contact: models.Contact{
			Type:     models.ContactTypeCustom,
			Name:     "Ravi Kumar",
			Phone:    "9123456780",
			Whatsapp: "9123456780",
		},
	}
}

func TestRowRoundTrip(t *testing.T) {
	data := sampleData()
	row := RowFromData(data, "9123456780")
	row.ID = "test-id"
	row.CreatedAt = time.Now()

	got := RowToProperty(row)

	assert.Equal(t, data.Title, got.Title)
	assert.Equal(t, data.Area, got.Area)
	assert.Equal(t, data.PropertyType, got.PropertyType)
	assert.Equal(t, data.ListingCategory, got.ListingCategory)
	assert.Equal(t, data.Size, got.Size)
	assert.Equal(t, data.Price, got.Price)
	assert.Equal(t, data.Facing, got.Facing)
	assert.Equal(t, data.Description, got.Description)
	assert.Equal(t, data.Amenities, got.Amenities)
	assert.Equal(t, data.Location, got.Location)
	assert.Equal(t, data.Media.Images, got.Media.Images)
	assert.Equal(t, data.Media.YoutubeLink, got.Media.YoutubeLink)
	assert.Equal(t, data.Contact, got.Contact)
	assert.Equal(t, "0", got.Featured)
}

func TestRowFromDataWritesBothImageFormats(t *testing.T) {
	data := sampleData()
	row := RowFromData(data, "9123456780")

	// JSON array carries all images, the legacy slots only the first four
	assert.Contains(t, row.Images, "e.webp")
	assert.Equal(t, "https://img.example.com/a.webp", row.Img1)
	assert.Equal(t, "https://img.example.com/b.webp", row.Img2)
	assert.Equal(t, "https://img.example.com/c.webp", row.Img3)
	assert.Equal(t, "https://img.example.com/d.webp", row.Img4)
}

func TestRowFromDataTruncatesImages(t *testing.T) {
	data := sampleData()
	data.Media.Images = nil
	for i := 0; i < 15; i++ {
		data.Media.Images = append(data.Media.Images, "https://img.example.com/x.webp")
	}

	row := RowFromData(data, "9123456780")
	got := RowToProperty(row)
	assert.Len(t, got.Media.Images, models.MaxImages)
}

func TestRowToPropertyLegacyImageSlots(t *testing.T) {
	row := &PropertyRow{
		ID:     "legacy-1",
		Title:  "Old listing",
		Images: "",
		Img1:   "https://img.example.com/1.webp",
		Img2:   "https://img.example.com/2.webp",
		Img4:   "https://img.example.com/4.webp",
	}

	got := RowToProperty(row)
	require.Len(t, got.Media.Images, 3)
	assert.Equal(t, "https://img.example.com/1.webp", got.Media.Images[0])
	assert.Equal(t, "https://img.example.com/4.webp", got.Media.Images[2])
}

func TestRowToPropertyMalformedImagesJSON(t *testing.T) {
	// A bad JSON column yields no images; it does not fall back to the
	// legacy slots.
	row := &PropertyRow{
		ID:     "bad-json",
		Images: "{not valid json",
		Img1:   "https://img.example.com/1.webp",
	}

	got := RowToProperty(row)
	assert.Empty(t, got.Media.Images)
}

func TestRowToPropertyMalformedAmenities(t *testing.T) {
	row := &PropertyRow{ID: "bad-amenities", Amenities: "{not valid json"}
	got := RowToProperty(row)
	assert.Equal(t, []string{}, got.Amenities)

	row = &PropertyRow{ID: "wrong-type", Amenities: `{"a": 1}`}
	got = RowToProperty(row)
	assert.Equal(t, []string{}, got.Amenities)
}

func TestRowToPropertyContactTypeDerivation(t *testing.T) {
	withName := &PropertyRow{ID: "a", ContactName: "Ravi", ContactPhone: "9123456780"}
	assert.Equal(t, models.ContactTypeCustom, RowToProperty(withName).Contact.Type)

	// A filled phone with an empty name still derives as default; display
	// logic depends on this.
	phoneOnly := &PropertyRow{ID: "b", ContactPhone: "9123456780"}
	assert.Equal(t, models.ContactTypeDefault, RowToProperty(phoneOnly).Contact.Type)
}

func TestRowToPropertyDefaults(t *testing.T) {
	got := RowToProperty(&PropertyRow{ID: "empty"})

	assert.Equal(t, models.AreaKismatpur, got.Area)
	assert.Equal(t, models.PropertyTypeApartment, got.PropertyType)
	assert.Equal(t, models.ListingCategorySale, got.ListingCategory)
	assert.Equal(t, models.SizeUnitSqFt, got.Size.Unit)
	assert.Equal(t, []string{}, got.Amenities)
	assert.Equal(t, []string{}, got.Media.Images)
}

func TestRowFromDataWhatsappDefaultsToPhone(t *testing.T) {
	data := sampleData()
	data.Contact.Whatsapp = ""

	row := RowFromData(data, "9123456780")
	assert.Equal(t, "9123456780", row.ContactWhatsapp)
}

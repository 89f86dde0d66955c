package database

import (
	"encoding/json"
	"strconv"
	"time"

	"rajendranagar-portal/internal/models"
)

// PropertyRow is the flat storage representation of a listing. The schema
// predates this service and carries two image representations: a JSON array
// column plus four legacy single-image columns kept populated for older
// readers.
type PropertyRow struct {
	ID              string    `gorm:"type:varchar(64);primaryKey"`
	Title           string    `gorm:"type:text"`
	Area            string    `gorm:"type:varchar(50);index"`
	Type            string    `gorm:"type:varchar(30)"`
	ListingCategory string    `gorm:"type:varchar(10);default:'Sale'"`
	Price           int64     `gorm:"type:bigint"`
	Size            float64   `gorm:"type:decimal(12,2)"`
	Unit            string    `gorm:"type:varchar(10)"`
	Facing          string    `gorm:"type:varchar(50)"`
	Description     string    `gorm:"type:text"`
	Amenities       string    `gorm:"type:text"`
	GoogleMap       string    `gorm:"type:text"`
	Youtube         string    `gorm:"type:text"`
	Images          string    `gorm:"type:text"`
	Img1            string    `gorm:"type:text"`
	Img2            string    `gorm:"type:text"`
	Img3            string    `gorm:"type:text"`
	Img4            string    `gorm:"type:text"`
	ContactName     string    `gorm:"type:varchar(100)"`
	ContactPhone    string    `gorm:"type:varchar(20);index"`
	ContactWhatsapp string    `gorm:"type:varchar(20)"`
	Featured        int       `gorm:"type:int;default:0"`
	CreatedAt       time.Time `gorm:"type:datetime;index:idx_properties_created_at,sort:desc"`
}

// TableName pins the legacy table name.
func (PropertyRow) TableName() string {
	return "properties"
}

// parseStringList decodes a JSON-encoded string array, returning an empty
// slice on malformed or wrongly typed input. Legacy rows contain
// uncontrolled data; a bad value must never fail a read.
func parseStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// RowToProperty maps a storage row onto the domain shape.
//
// Images prefer the JSON array column; rows written before that column
// existed fall back to the four fixed slots. Contact type is derived: a
// stored contact name means custom, otherwise the listing defers to the
// site-wide contact. A row with a phone but no name still derives as
// default; existing display logic depends on that derivation.
func RowToProperty(row *PropertyRow) models.Property {
	var images []string
	if row.Images != "" {
		images = parseStringList(row.Images)
	} else {
		images = []string{}
		for _, img := range []string{row.Img1, row.Img2, row.Img3, row.Img4} {
			if img != "" {
				images = append(images, img)
			}
		}
	}

	area := models.Area(row.Area)
	if area == "" {
		area = models.AreaKismatpur
	}
	propertyType := models.PropertyType(row.Type)
	if propertyType == "" {
		propertyType = models.PropertyTypeApartment
	}
	category := models.ListingCategory(row.ListingCategory)
	if category == "" {
		category = models.ListingCategorySale
	}
	unit := models.SizeUnit(row.Unit)
	if unit == "" {
		unit = models.SizeUnitSqFt
	}

	contactType := models.ContactTypeDefault
	if row.ContactName != "" {
		contactType = models.ContactTypeCustom
	}

	return models.Property{
		PropertyData: models.PropertyData{
			Title:           row.Title,
			Area:            area,
			PropertyType:    propertyType,
			ListingCategory: category,
			Size: models.Size{
				Value: row.Size,
				Unit:  unit,
			},
			Price:       row.Price,
			Facing:      row.Facing,
			Description: row.Description,
			Amenities:   parseStringList(row.Amenities),
			Location: models.Location{
				GoogleMapsLink: row.GoogleMap,
			},
			Media: models.Media{
				YoutubeLink: row.Youtube,
				Images:      images,
			},
			Contact: models.Contact{
				Type:     contactType,
				Name:     row.ContactName,
				Phone:    row.ContactPhone,
				Whatsapp: row.ContactWhatsapp,
			},
		},
		ID:        row.ID,
		Featured:  strconv.Itoa(row.Featured),
		CreatedAt: row.CreatedAt,
	}
}

// RowFromData maps seller-supplied data onto a storage row. contactPhone is
// the already normalized (or sentinel) value to store; the image sequence is
// truncated to MaxImages and written both as the JSON array and into the
// four legacy slots.
func RowFromData(data *models.PropertyData, contactPhone string) *PropertyRow {
	images := data.Media.Images
	if len(images) > models.MaxImages {
		images = images[:models.MaxImages]
	}
	imagesJSON, _ := json.Marshal(images)

	amenities := data.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	whatsapp := data.Contact.Whatsapp
	if whatsapp == "" {
		whatsapp = contactPhone
	}

	row := &PropertyRow{
		Title:           data.Title,
		Area:            string(data.Area),
		Type:            string(data.PropertyType),
		ListingCategory: string(data.ListingCategory),
		Price:           data.Price,
		Size:            data.Size.Value,
		Unit:            string(data.Size.Unit),
		Facing:          data.Facing,
		Description:     data.Description,
		Amenities:       string(amenitiesJSON),
		GoogleMap:       data.Location.GoogleMapsLink,
		Youtube:         data.Media.YoutubeLink,
		Images:          string(imagesJSON),
		ContactName:     data.Contact.Name,
		ContactPhone:    contactPhone,
		ContactWhatsapp: whatsapp,
		Featured:        0,
	}

	slots := []*string{&row.Img1, &row.Img2, &row.Img3, &row.Img4}
	for i, img := range images {
		if i >= len(slots) {
			break
		}
		*slots[i] = img
	}

	return row
}

// rowsToProperties maps a result set in order.
func rowsToProperties(rows []PropertyRow) []models.Property {
	properties := make([]models.Property, 0, len(rows))
	for i := range rows {
		properties = append(properties, RowToProperty(&rows[i]))
	}
	return properties
}

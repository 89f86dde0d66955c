package models

import (
	"strings"
	"time"
)

// Area is one of the fixed localities served by the portal.
type Area string

const (
	AreaAirportRoad        Area = "Airport Road"
	AreaAppalappaGuda      Area = "Appalappa Guda"
	AreaArshMahalRoad      Area = "Arsh Mahal Road"
	AreaAttapur            Area = "Attapur"
	AreaBairagiguda        Area = "Bairagiguda"
	AreaBandlagudaJagir    Area = "Bandlaguda Jagir"
	AreaBudvel             Area = "Budvel"
	AreaGaganpahad         Area = "Gaganpahad"
	AreaGandamguda         Area = "Gandamguda"
	AreaGandipet           Area = "Gandipet"
	AreaGungurthy          Area = "Gungurthy"
	AreaHanumanNagar       Area = "Hanuman Nagar"
	AreaHimayathsagar      Area = "Himayathsagar"
	AreaHydershakot        Area = "Hydershakot"
	AreaJanibegum          Area = "Janibegum"
	AreaKattedan           Area = "Kattedan"
	AreaKhanapur           Area = "Khanapur"
	AreaKhayyamNagar       Area = "Khayyam Nagar"
	AreaKismatpur          Area = "Kismatpur"
	AreaKokapet            Area = "Kokapet"
	AreaLakshmiguda        Area = "Lakshmiguda"
	AreaManasaHills        Area = "Manasa Hills"
	AreaManchirevula       Area = "Manchirevula"
	AreaManikondaJagir     Area = "Manikonda Jagir"
	AreaManikondaKhalsa    Area = "Manikonda Khalsa"
	AreaMaqthaKousarali    Area = "Maqtha Kousarali"
	AreaNarsingi           Area = "Narsingi"
	AreaNeknampur          Area = "Neknampur"
	AreaPallecheru         Area = "Pallecheru"
	AreaPanjashajamalBowli Area = "Panjashajamal Bowli"
	AreaPeeramcheru        Area = "Peeramcheru"
	AreaPokkalwada         Area = "Pokkalwada"
	AreaPremavathipet      Area = "Premavathipet"
	AreaPuppalguda         Area = "Puppalguda"
	AreaRajendranagar      Area = "Rajendranagar"
	AreaSatamrai           Area = "Satamrai"
	AreaSikanderguda       Area = "Sikanderguda"
	AreaSivarampalli       Area = "Sivarampalli"
	AreaSogbowli           Area = "Sogbowli"
	AreaSunCity            Area = "Sun City"
	AreaTeachersColony     Area = "Teachers Colony"
	AreaUpparpally         Area = "Upparpally"
	AreaVattinagulapalle   Area = "Vattinagulapalle"
)

// Areas lists every locality in display order.
var Areas = []Area{
	AreaAirportRoad, AreaAppalappaGuda, AreaArshMahalRoad, AreaAttapur,
	AreaBairagiguda, AreaBandlagudaJagir, AreaBudvel, AreaGaganpahad,
	AreaGandamguda, AreaGandipet, AreaGungurthy, AreaHanumanNagar,
	AreaHimayathsagar, AreaHydershakot, AreaJanibegum, AreaKattedan,
	AreaKhanapur, AreaKhayyamNagar, AreaKismatpur, AreaKokapet,
	AreaLakshmiguda, AreaManasaHills, AreaManchirevula, AreaManikondaJagir,
	AreaManikondaKhalsa, AreaMaqthaKousarali, AreaNarsingi, AreaNeknampur,
	AreaPallecheru, AreaPanjashajamalBowli, AreaPeeramcheru, AreaPokkalwada,
	AreaPremavathipet, AreaPuppalguda, AreaRajendranagar, AreaSatamrai,
	AreaSikanderguda, AreaSivarampalli, AreaSogbowli, AreaSunCity,
	AreaTeachersColony, AreaUpparpally, AreaVattinagulapalle,
}

// ValidArea returns true if s names a known locality.
func ValidArea(s string) bool {
	for _, a := range Areas {
		if string(a) == s {
			return true
		}
	}
	return false
}

// PropertyType is the kind of property being listed.
type PropertyType string

const (
	PropertyTypeVilla            PropertyType = "Villa"
	PropertyTypeApartment        PropertyType = "Apartment"
	PropertyTypeIndependentHouse PropertyType = "Independent House"
	PropertyTypeOpenPlot         PropertyType = "Open Plot"
)

// ListingCategory distinguishes sale from rental listings.
type ListingCategory string

const (
	ListingCategorySale ListingCategory = "Sale"
	ListingCategoryRent ListingCategory = "Rent"
)

// SizeUnit is the unit a property size is quoted in.
type SizeUnit string

const (
	SizeUnitSqFt SizeUnit = "Sq Ft"
	SizeUnitSqYd SizeUnit = "Sq Yd"
	SizeUnitGaj  SizeUnit = "Gaj"
)

// ContactType says whether a listing carries its own contact details or
// defers to the site-wide number.
type ContactType string

const (
	ContactTypeDefault ContactType = "default"
	ContactTypeCustom  ContactType = "custom"
)

// Size is a property size with its unit.
type Size struct {
	Value float64  `json:"value"`
	Unit  SizeUnit `json:"unit"`
}

// Location holds the map link supplied by the seller.
type Location struct {
	GoogleMapsLink string `json:"googleMapsLink"`
}

// Media holds hosted image URLs (first entry is the cover image) and an
// optional video link.
type Media struct {
	YoutubeLink string   `json:"youtubeLink,omitempty"`
	Images      []string `json:"images"`
}

// Contact is the contact block for a listing. Type is derived on read:
// custom when a name is stored, default otherwise.
type Contact struct {
	Type     ContactType `json:"type"`
	Name     string      `json:"name,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	Whatsapp string      `json:"whatsapp,omitempty"`
}

// PropertyData is the seller-supplied payload for a new listing.
type PropertyData struct {
	Title           string          `json:"title"`
	Area            Area            `json:"area"`
	PropertyType    PropertyType    `json:"propertyType"`
	ListingCategory ListingCategory `json:"listingCategory"`
	Size            Size            `json:"size"`
	Price           int64           `json:"price"`
	Facing          string          `json:"facing"`
	Description     string          `json:"description"`
	Amenities       []string        `json:"amenities"`
	Location        Location        `json:"location"`
	Media           Media           `json:"media"`
	Contact         Contact         `json:"contact"`
}

// Property is a stored listing.
type Property struct {
	PropertyData
	ID        string    `json:"id"`
	Featured  string    `json:"featured,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxImages caps the ordered image sequence per listing.
const MaxImages = 10

// AmenitiesList is the suggested amenity set shown on the posting form.
// Listings may carry amenities outside this list.
var AmenitiesList = []string{
	"Gated Community",
	"24/7 Security",
	"Water Supply",
	"Power Backup",
	"Car Parking",
	"Lift",
	"Club House",
	"Swimming Pool",
	"Gym",
	"Park / Garden",
	"Vastu Compliant",
}

// NormalizePhone strips every non-digit character and keeps the last 10
// digits. This is the canonical form used for storage, ownership checks and
// quota lookups.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		return digits[len(digits)-10:]
	}
	return digits
}

// Package domain holds the read-only property listing owned by the CMS.
package domain

// Property types the CMS allows.
const (
	TypeFlat      = "piso"
	TypeHouse     = "casa"
	TypeVilla     = "chalet"
	TypePenthouse = "ático"
	TypeGarage    = "garaje"
	TypeStudio    = "estudio"
	TypeShop      = "local"
	TypeOffice    = "oficina"
	TypeLand      = "terreno"
)

// Listing statuses the CMS allows.
const (
	StatusForSale  = "en venta"
	StatusSold     = "vendido"
	StatusReserved = "reservado"
	StatusForRent  = "alquiler"
)

// Slug mirrors the CMS slug object.
type Slug struct {
	Current string `json:"current" yaml:"current"`
}

type ImageAsset struct {
	Ref  string `json:"_ref,omitempty" yaml:"_ref,omitempty"`
	Type string `json:"_type,omitempty" yaml:"_type,omitempty"`
}

type Image struct {
	Asset ImageAsset `json:"asset" yaml:"asset"`
	Alt   string     `json:"alt,omitempty" yaml:"alt,omitempty"`
}

type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Property is a listing as the CMS returns it. Field names keep the CMS
// shape so the public site can render responses unchanged.
type Property struct {
	ID           string    `json:"_id" yaml:"_id"`
	Title        string    `json:"title" yaml:"title"`
	Slug         Slug      `json:"slug" yaml:"slug"`
	MainImage    *Image    `json:"mainImage,omitempty" yaml:"mainImage,omitempty"`
	Gallery      []Image   `json:"gallery,omitempty" yaml:"gallery,omitempty"`
	Price        int64     `json:"price" yaml:"price"`
	Location     string    `json:"location" yaml:"location"`
	Neighborhood string    `json:"neighborhood,omitempty" yaml:"neighborhood,omitempty"`
	GeoLocation  *GeoPoint `json:"geoLocation,omitempty" yaml:"geoLocation,omitempty"`
	Bedrooms     *int      `json:"bedrooms,omitempty" yaml:"bedrooms,omitempty"`
	Bathrooms    *int      `json:"bathrooms,omitempty" yaml:"bathrooms,omitempty"`
	SquareMeters int       `json:"squareMeters" yaml:"squareMeters"`
	// Description is CMS rich text, passed through untouched.
	Description  any      `json:"description,omitempty" yaml:"description,omitempty"`
	Features     []string `json:"features,omitempty" yaml:"features,omitempty"`
	PropertyType string   `json:"propertyType" yaml:"propertyType"`
	Status       string   `json:"status" yaml:"status"`
	IsFeatured   bool     `json:"isFeatured" yaml:"isFeatured"`
	CreatedAt    string   `json:"createdAt" yaml:"createdAt"`
}

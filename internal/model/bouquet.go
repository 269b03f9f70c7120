package model

import "time"

// FlowerType is the enumerated flower category of a bouquet.
type FlowerType string

const (
	FlowerRose   FlowerType = "ROSE"
	FlowerTulip  FlowerType = "TULIP"
	FlowerLily   FlowerType = "LILY"
	FlowerPeony  FlowerType = "PEONY"
	FlowerOrchid FlowerType = "ORCHID"
	FlowerMixed  FlowerType = "MIXED"
)

// FlowerTypes lists all valid flower types.
var FlowerTypes = []FlowerType{
	FlowerRose,
	FlowerTulip,
	FlowerLily,
	FlowerPeony,
	FlowerOrchid,
	FlowerMixed,
}

// BouquetStyle is the enumerated arrangement style of a bouquet.
type BouquetStyle string

const (
	StyleRomantic BouquetStyle = "ROMANTIC"
	StyleModern   BouquetStyle = "MODERN"
	StyleGarden   BouquetStyle = "GARDEN"
	StyleMinimal  BouquetStyle = "MINIMAL"
)

// BouquetStyles lists all valid bouquet styles.
var BouquetStyles = []BouquetStyle{
	StyleRomantic,
	StyleModern,
	StyleGarden,
	StyleMinimal,
}

// ParseFlowerType normalises a raw filter value to a known flower type.
// Returns false for unknown values so callers can ignore bad filters.
func ParseFlowerType(value string) (FlowerType, bool) {
	for _, ft := range FlowerTypes {
		if string(ft) == value {
			return ft, true
		}
	}
	return "", false
}

// ParseBouquetStyle normalises a raw filter value to a known style.
func ParseBouquetStyle(value string) (BouquetStyle, bool) {
	for _, st := range BouquetStyles {
		if string(st) == value {
			return st, true
		}
	}
	return "", false
}

// Bouquet represents a sellable bouquet in the catalogue.
// Prices are integer minor currency units (cents). Colors is the free-text
// comma-separated palette entered by the admin, e.g. "Red,White".
type Bouquet struct {
	ID              string       `json:"id" db:"id"`
	Name            string       `json:"name" db:"name"`
	Description     string       `json:"description" db:"description"`
	PriceCents      int          `json:"priceCents" db:"price_cents"`
	Currency        string       `json:"currency" db:"currency"`
	FlowerType      FlowerType   `json:"flowerType" db:"flower_type"`
	Style           BouquetStyle `json:"style" db:"style"`
	Colors          string       `json:"colors" db:"colors"`
	IsMixed         bool         `json:"isMixed" db:"is_mixed"`
	IsFeatured      bool         `json:"isFeatured" db:"is_featured"`
	IsActive        bool         `json:"isActive" db:"is_active"`
	DiscountPercent int          `json:"discountPercent" db:"discount_percent"`
	DiscountNote    *string      `json:"discountNote,omitempty" db:"discount_note"`
	Image           string       `json:"image" db:"image"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time    `json:"updatedAt" db:"updated_at"`
}

// CatalogFilter holds the AND-combined catalogue listing predicates.
// Zero values mean "no constraint".
type CatalogFilter struct {
	FlowerType    FlowerType
	Style         BouquetStyle
	Mixed         string // "mixed", "mono" or empty
	Color         string
	MinPriceCents *int
	MaxPriceCents *int
	FeaturedOnly  bool
	Limit         int
	Offset        int
}

// Package pricing resolves which discount applies to a bouquet or cart line
// and computes discounted prices. All functions are pure and total: malformed
// input is coerced (clamped percents, fallback notes) rather than rejected.
package pricing

import (
	"math"
	"strings"

	"bloomcart/internal/model"
)

// MaxDiscountPercent is the ceiling enforced on every discount percent.
const MaxDiscountPercent = 90

// DefaultDiscountNote is substituted when a discount carries a blank note.
const DefaultDiscountNote = "Discount"

// DiscountSource identifies which configuration a discount came from.
type DiscountSource string

const (
	SourceBouquet    DiscountSource = "bouquet"
	SourceCategory   DiscountSource = "category"
	SourceGlobal     DiscountSource = "global"
	SourceFirstOrder DiscountSource = "firstOrder"
)

// DiscountInfo describes a resolved discount. Construct it with
// NewDiscountInfo so the note fallback is applied exactly once.
type DiscountInfo struct {
	Percent int            `json:"percent"`
	Note    string         `json:"note"`
	Source  DiscountSource `json:"source"`
}

// NewDiscountInfo builds a DiscountInfo, substituting DefaultDiscountNote
// when note is nil or blank.
func NewDiscountInfo(percent int, note *string, source DiscountSource) *DiscountInfo {
	resolved := DefaultDiscountNote
	if note != nil && strings.TrimSpace(*note) != "" {
		resolved = *note
	}
	return &DiscountInfo{Percent: percent, Note: resolved, Source: source}
}

// Pricing is the resolved price for a single bouquet.
type Pricing struct {
	OriginalPriceCents int           `json:"originalPriceCents"`
	FinalPriceCents    int           `json:"finalPriceCents"`
	Discount           *DiscountInfo `json:"discount"`
}

// ClampPercent rounds value to the nearest integer (ties toward positive
// infinity) and clamps it to [0, MaxDiscountPercent].
func ClampPercent(value float64) int {
	rounded := int(math.Floor(value + 0.5))
	if rounded < 0 {
		return 0
	}
	if rounded > MaxDiscountPercent {
		return MaxDiscountPercent
	}
	return rounded
}

// ApplyPercentDiscount applies a clamped percent discount to a price in
// cents. This is the single rounding point of the price pipeline; the result
// is always a non-negative integer no greater than priceCents.
func ApplyPercentDiscount(priceCents int, percent float64) int {
	clamped := ClampPercent(percent)
	discounted := int(math.Floor(float64(priceCents)*float64(100-clamped)/100 + 0.5))
	if discounted < 0 {
		return 0
	}
	return discounted
}

// categorySubject is the minimal bouquet shape the category filters inspect.
type categorySubject struct {
	flowerType string
	isMixed    bool
	colors     string
	priceCents int
}

func hasCategoryFilters(s model.StoreSettings) bool {
	return (s.CategoryFlowerType != nil && *s.CategoryFlowerType != "") ||
		(s.CategoryMixed != nil && *s.CategoryMixed != "") ||
		(s.CategoryColor != nil && *s.CategoryColor != "") ||
		s.CategoryMinPriceCents != nil ||
		s.CategoryMaxPriceCents != nil
}

// matchesCategory reports whether the category discount applies. A category
// discount with no filters configured never applies, so a half-saved form
// cannot become an accidental blanket discount. Configured filters are
// AND-combined.
func matchesCategory(subject categorySubject, s model.StoreSettings) bool {
	if s.CategoryDiscountPercent <= 0 {
		return false
	}
	if !hasCategoryFilters(s) {
		return false
	}

	if s.CategoryFlowerType != nil && *s.CategoryFlowerType != "" &&
		*s.CategoryFlowerType != subject.flowerType {
		return false
	}

	if s.CategoryMixed != nil {
		if *s.CategoryMixed == "mixed" && !subject.isMixed {
			return false
		}
		if *s.CategoryMixed == "mono" && subject.isMixed {
			return false
		}
	}

	if s.CategoryColor != nil && *s.CategoryColor != "" {
		palette := strings.ToLower(subject.colors)
		if !strings.Contains(palette, strings.ToLower(*s.CategoryColor)) {
			return false
		}
	}

	if s.CategoryMinPriceCents != nil && subject.priceCents < *s.CategoryMinPriceCents {
		return false
	}

	if s.CategoryMaxPriceCents != nil && subject.priceCents > *s.CategoryMaxPriceCents {
		return false
	}

	return true
}

func resolveDiscount(
	itemPercent int,
	itemNote *string,
	subject categorySubject,
	s model.StoreSettings,
) *DiscountInfo {
	if itemPercent > 0 {
		return NewDiscountInfo(itemPercent, itemNote, SourceBouquet)
	}

	if matchesCategory(subject, s) {
		return NewDiscountInfo(s.CategoryDiscountPercent, s.CategoryDiscountNote, SourceCategory)
	}

	if s.GlobalDiscountPercent > 0 {
		return NewDiscountInfo(s.GlobalDiscountPercent, s.GlobalDiscountNote, SourceGlobal)
	}

	return nil
}

// BouquetDiscount resolves the single discount applying to a bouquet, or nil.
// Precedence is strict: bouquet-level, then category, then global.
func BouquetDiscount(b model.Bouquet, s model.StoreSettings) *DiscountInfo {
	return resolveDiscount(b.DiscountPercent, b.DiscountNote, categorySubject{
		flowerType: string(b.FlowerType),
		isMixed:    b.IsMixed,
		colors:     b.Colors,
		priceCents: b.PriceCents,
	}, s)
}

// BouquetPricing composes discount resolution with price application.
func BouquetPricing(b model.Bouquet, s model.StoreSettings) Pricing {
	discount := BouquetDiscount(b, s)
	final := b.PriceCents
	if discount != nil {
		final = ApplyPercentDiscount(b.PriceCents, float64(discount.Percent))
	}
	return Pricing{
		OriginalPriceCents: b.PriceCents,
		FinalPriceCents:    final,
		Discount:           discount,
	}
}

// CartItemDiscount resolves a discount for a denormalised cart line using
// the bouquet attributes cached at add-to-cart time.
func CartItemDiscount(item model.CartItem, s model.StoreSettings) *DiscountInfo {
	return resolveDiscount(item.BouquetDiscountPercent, item.BouquetDiscountNote, categorySubject{
		flowerType: item.FlowerType,
		isMixed:    item.IsMixed,
		colors:     item.Colors,
		priceCents: item.BasePriceCents,
	}, s)
}

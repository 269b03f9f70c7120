package model

// StoreSettings is the single persisted row of store-wide discount
// configuration. It is always passed by value into pricing calls; there is
// no ambient singleton accessor.
//
// Three independent discount configurations live here:
//   - global: applies to everything while GlobalDiscountPercent > 0
//   - category: applies to bouquets matching the configured filters
//   - first order: applies to the subtotal of a customer's first order
//
// The settings-update path guarantees that global and category discounts are
// never simultaneously active and that any percent > 0 carries a note.
type StoreSettings struct {
	ID string `json:"id" db:"id"`

	GlobalDiscountPercent int     `json:"globalDiscountPercent" db:"global_discount_percent"`
	GlobalDiscountNote    *string `json:"globalDiscountNote,omitempty" db:"global_discount_note"`

	CategoryDiscountPercent int     `json:"categoryDiscountPercent" db:"category_discount_percent"`
	CategoryDiscountNote    *string `json:"categoryDiscountNote,omitempty" db:"category_discount_note"`
	CategoryFlowerType      *string `json:"categoryFlowerType,omitempty" db:"category_flower_type"`
	// CategoryStyle is stored for the admin form but takes no part in
	// category matching.
	CategoryStyle         *string `json:"categoryStyle,omitempty" db:"category_style"`
	CategoryMixed         *string `json:"categoryMixed,omitempty" db:"category_mixed"`
	CategoryColor         *string `json:"categoryColor,omitempty" db:"category_color"`
	CategoryMinPriceCents *int    `json:"categoryMinPriceCents,omitempty" db:"category_min_price_cents"`
	CategoryMaxPriceCents *int    `json:"categoryMaxPriceCents,omitempty" db:"category_max_price_cents"`

	FirstOrderDiscountPercent int     `json:"firstOrderDiscountPercent" db:"first_order_discount_percent"`
	FirstOrderDiscountNote    *string `json:"firstOrderDiscountNote,omitempty" db:"first_order_discount_note"`
}

// DefaultStoreSettings returns the settings used before an admin has saved
// the singleton row.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{ID: "default"}
}

// SettingsUpdate is the PATCH payload for the settings row. Nil fields are
// left untouched.
type SettingsUpdate struct {
	GlobalDiscountPercent *int    `json:"globalDiscountPercent,omitempty"`
	GlobalDiscountNote    *string `json:"globalDiscountNote,omitempty"`

	CategoryDiscountPercent *int    `json:"categoryDiscountPercent,omitempty"`
	CategoryDiscountNote    *string `json:"categoryDiscountNote,omitempty"`
	CategoryFlowerType      *string `json:"categoryFlowerType,omitempty"`
	CategoryStyle           *string `json:"categoryStyle,omitempty"`
	CategoryMixed           *string `json:"categoryMixed,omitempty"`
	CategoryColor           *string `json:"categoryColor,omitempty"`
	CategoryMinPriceCents   *int    `json:"categoryMinPriceCents,omitempty"`
	CategoryMaxPriceCents   *int    `json:"categoryMaxPriceCents,omitempty"`

	FirstOrderDiscountPercent *int    `json:"firstOrderDiscountPercent,omitempty"`
	FirstOrderDiscountNote    *string `json:"firstOrderDiscountNote,omitempty"`
}

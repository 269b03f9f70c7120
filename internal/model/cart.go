package model

// CartItem is the denormalised cart line shape. Bouquet attributes are
// captured at add-to-cart time so pricing can be recomputed without
// refetching the bouquet; they may go stale if the catalogue or settings
// change afterwards, which is accepted.
type CartItem struct {
	BouquetID              string  `json:"bouquetId"`
	Name                   string  `json:"name"`
	BasePriceCents         int     `json:"basePriceCents"`
	Quantity               int     `json:"quantity"`
	Image                  string  `json:"image"`
	BouquetDiscountPercent int     `json:"bouquetDiscountPercent,omitempty"`
	BouquetDiscountNote    *string `json:"bouquetDiscountNote,omitempty"`
	FlowerType             string  `json:"flowerType,omitempty"`
	IsMixed                bool    `json:"isMixed,omitempty"`
	Colors                 string  `json:"colors,omitempty"`
}

package pricing

import "bloomcart/internal/model"

// LinePricing is the priced form of one cart line.
type LinePricing struct {
	Item           model.CartItem `json:"item"`
	UnitPriceCents int            `json:"unitPriceCents"`
	LineTotalCents int            `json:"lineTotalCents"`
	Discount       *DiscountInfo  `json:"discount"`
}

// CartTotals is the priced form of a whole cart.
type CartTotals struct {
	Lines         []LinePricing `json:"lines"`
	SubtotalCents int           `json:"subtotalCents"`
	TotalCents    int           `json:"totalCents"`
	FirstOrder    *DiscountInfo `json:"firstOrder"`
}

// FirstOrderDiscount returns the first-order discount if it should apply:
// the customer has no prior orders and no line item already received a
// bouquet, category or global discount. It is never stacked on top of other
// discounts.
func FirstOrderDiscount(s model.StoreSettings, priorOrders int, anyLineDiscounted bool) *DiscountInfo {
	if s.FirstOrderDiscountPercent <= 0 {
		return nil
	}
	if priorOrders > 0 || anyLineDiscounted {
		return nil
	}
	return NewDiscountInfo(s.FirstOrderDiscountPercent, s.FirstOrderDiscountNote, SourceFirstOrder)
}

// PriceCart prices every line, sums the subtotal and applies the first-order
// discount to the subtotal when eligible. Quantities below one contribute
// nothing to the subtotal.
func PriceCart(items []model.CartItem, s model.StoreSettings, priorOrders int) CartTotals {
	lines := make([]LinePricing, 0, len(items))
	subtotal := 0
	anyDiscounted := false

	for _, item := range items {
		discount := CartItemDiscount(item, s)
		unit := item.BasePriceCents
		if discount != nil {
			unit = ApplyPercentDiscount(item.BasePriceCents, float64(discount.Percent))
			anyDiscounted = true
		}

		qty := item.Quantity
		if qty < 1 {
			qty = 0
		}
		lineTotal := unit * qty
		subtotal += lineTotal

		lines = append(lines, LinePricing{
			Item:           item,
			UnitPriceCents: unit,
			LineTotalCents: lineTotal,
			Discount:       discount,
		})
	}

	total := subtotal
	firstOrder := FirstOrderDiscount(s, priorOrders, anyDiscounted)
	if firstOrder != nil {
		total = ApplyPercentDiscount(subtotal, float64(firstOrder.Percent))
	}

	return CartTotals{
		Lines:         lines,
		SubtotalCents: subtotal,
		TotalCents:    total,
		FirstOrder:    firstOrder,
	}
}

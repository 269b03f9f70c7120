// Package format holds display helpers shared by handlers and email text.
package format

import (
	"strings"

	"bloomcart/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Money renders integer cents as a US-style dollar amount with grouping,
// e.g. 123456 -> "$1,234.56".
func Money(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return printer.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Label turns an enum-ish value like "ROSE" or "first_order" into a
// human-readable label ("Rose", "First Order").
func Label(value string) string {
	if value == "" {
		return value
	}
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}

// OrderStatus maps an order status to its customer-facing wording.
func OrderStatus(status model.OrderStatus) string {
	switch status {
	case model.OrderPaid:
		return "Paid"
	case model.OrderPending:
		return "Pending payment"
	case model.OrderFailed:
		return "Payment failed"
	case model.OrderCanceled:
		return "Canceled"
	default:
		return string(status)
	}
}

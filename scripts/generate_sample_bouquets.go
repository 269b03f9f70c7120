package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// generateSampleBouquets writes a SQL seed file with a small catalogue so a
// fresh database has something to show on the storefront.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	bouquets := []struct {
		id, name, flowerType, style, colors string
		priceCents                          int
		isMixed, isFeatured                 bool
		discountPercent                     int
		discountNote                        string
	}{
		{"B001", "Crimson Dozen", "ROSE", "ROMANTIC", "Red", 5999, false, true, 0, ""},
		{"B002", "Spring Meadow", "TULIP", "GARDEN", "Yellow,Pink", 4500, true, false, 0, ""},
		{"B003", "White Whisper", "LILY", "MINIMAL", "White", 7200, false, true, 20, "Weekly pick"},
		{"B004", "Peony Parade", "PEONY", "ROMANTIC", "Pink,White", 8900, true, false, 0, ""},
		{"B005", "Orchid Noir", "ORCHID", "MODERN", "Purple", 10500, false, false, 0, ""},
		{"B006", "Garden Medley", "MIXED", "GARDEN", "Red,Yellow,White", 6400, true, true, 10, "New arrival"},
	}

	slides := []struct {
		id, title, subtitle, link string
		position                  int
	}{
		{"S001", "Mother's Day Preorders", "Reserve before May 5th", "/catalog?featured=true", 1},
		{"S002", "Weekly Picks", "Fresh arrangements at 20% off", "/catalog", 2},
	}

	var sb strings.Builder
	sb.WriteString("-- Sample catalogue seed. Run against a fresh database.\n\n")

	for _, b := range bouquets {
		note := "NULL"
		if b.discountNote != "" {
			note = fmt.Sprintf("'%s'", b.discountNote)
		}
		sb.WriteString(fmt.Sprintf(
			"INSERT INTO bouquets (id, name, description, price_cents, currency, flower_type, style, colors, is_mixed, is_featured, is_active, discount_percent, discount_note, image, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', '', %d, 'usd', '%s', '%s', '%s', %t, %t, TRUE, %d, %s, '', NOW(), NOW());\n",
			b.id, b.name, b.priceCents, b.flowerType, b.style, b.colors,
			b.isMixed, b.isFeatured, b.discountPercent, note,
		))
	}

	sb.WriteString("\n")
	for _, s := range slides {
		sb.WriteString(fmt.Sprintf(
			"INSERT INTO promo_slides (id, title, subtitle, image, link, is_active, position)\n"+
				"VALUES ('%s', '%s', '%s', '', '%s', TRUE, %d);\n",
			s.id, s.title, s.subtitle, s.link, s.position,
		))
	}

	filePath := filepath.Join(dataDir, "seed_catalogue.sql")
	if err := os.WriteFile(filePath, []byte(sb.String()), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d bouquets and %d promo slides\n", filePath, len(bouquets), len(slides))
}

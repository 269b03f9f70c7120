package model

// PromoSlide is a promotional banner shown on the home page carousel.
type PromoSlide struct {
	ID       string  `json:"id" db:"id"`
	Title    string  `json:"title" db:"title"`
	Subtitle *string `json:"subtitle,omitempty" db:"subtitle"`
	Image    string  `json:"image" db:"image"`
	Link     *string `json:"link,omitempty" db:"link"`
	IsActive bool    `json:"isActive" db:"is_active"`
	Position int     `json:"position" db:"position"`
}

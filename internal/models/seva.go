package models

// Seva represents a bookable service offering in the catalog.
// Sevas are loaded once from the seed catalog and are read-only afterwards.
type Seva struct {
	ID              int     `json:"id" gorm:"primaryKey"`
	Code            string  `json:"code" gorm:"uniqueIndex"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Media           string  `json:"media"`
	DiscountedPrice float64 `json:"discountedPrice"`
	MarketPrice     float64 `json:"marketPrice"`
}

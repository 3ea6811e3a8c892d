package domain

import "time"

// MaxProductImages is how many images a product may carry.
const MaxProductImages = 4

type Product struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	Quantity     int
	CategoryID   string
	CategoryName string
	ImageURLs    []string
	Features     []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

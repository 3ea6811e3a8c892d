package domain

import (
	"strings"
	"time"
)

type Category struct {
	ID           string
	Name         string // unique, trimmed
	Description  string
	Image        string // media URL, may be empty
	Icon         string
	Emoji        string
	Slug         string
	ProductCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slugify lowercases name and collapses every run of characters outside
// [a-z0-9] into a single "-". Leading and trailing runs are kept, so
// " Home & Garden" becomes "-home-garden".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	inRun := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('-')
			inRun = true
		}
	}
	return b.String()
}

package domain

import "time"

// Movie represents the canonical movie entity in the catalog.
type Movie struct {
	ID        int64
	Name      string
	Date      time.Time
	Score     float64
	Overview  string
	Status    string
	Budget    float64
	Revenue   float64
	CountryID int64
	Genres    []string
	CreatedAt time.Time
}

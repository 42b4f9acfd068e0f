package domain

// RefKind identifies one of the reference-entity collections that movies
// link to. Each kind is keyed by a natural unique string (a country code
// or a display name).
type RefKind string

const (
	RefCountry  RefKind = "country"
	RefGenre    RefKind = "genre"
	RefActor    RefKind = "actor"
	RefLanguage RefKind = "language"
)

// Reference is a persisted lookup row of some RefKind.
type Reference struct {
	ID  int64
	Key string
}

// UserGroups enumerates the default access groups seeded on first boot,
// in insertion order.
var UserGroups = []string{"user", "moderator", "admin"}

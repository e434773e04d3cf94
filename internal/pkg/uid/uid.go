package uid

// NumberID generates numeric identifiers for database entities.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers (correlation IDs, opaque tokens).
type StringID interface {
	Generate() string
}

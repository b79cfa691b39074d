// Package deck defines the keyword-store capability interface through which
// grid construction consumes a parsed reservoir description, together with a
// map-backed implementation for tests and for callers assembling decks
// programmatically.
//
// A deck is read-only and stringly keyed; numeric payloads are expected to be
// unit-converted to SI before they reach this interface.
package deck

// Deck is a read-only keyword/value store.
type Deck interface {
	// HasKeyword reports whether the deck contains the named keyword.
	HasKeyword(name string) bool

	// Keyword returns the handle for the named keyword. The second return
	// is false when the keyword is absent.
	Keyword(name string) (Keyword, bool)
}

// Keyword is a handle to one deck entry. Long array keywords (ZCORN, COORD,
// ACTNUM, DXV, ...) are consumed through SIDoubleData/IntData; short
// fixed-arity keywords (DIMENS, SPECGRID, MAPAXES) through per-item access on
// record 0.
type Keyword interface {
	// Name returns the keyword name.
	Name() string

	// Size returns the number of data items.
	Size() int

	// SIDoubleData returns the full payload as SI-converted doubles. The
	// returned slice is deck-owned; callers must copy what they retain.
	SIDoubleData() []float64

	// IntData returns the full payload as integers.
	IntData() []int

	// Int returns one item of the given record as an integer.
	Int(record, item int) int

	// SIDouble returns one item of the given record as an SI double.
	SIDouble(record, item int) float64
}

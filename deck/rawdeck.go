package deck

// RawDeck is an in-memory Deck. Keywords are added with Doubles/Ints; both
// return the deck for chaining.
type RawDeck struct {
	kws map[string]*rawKeyword
}

// NewRawDeck returns an empty deck.
func NewRawDeck() *RawDeck {
	return &RawDeck{kws: make(map[string]*rawKeyword)}
}

// Doubles adds a keyword holding SI-converted double data.
func (d *RawDeck) Doubles(name string, vals ...float64) *RawDeck {
	d.kws[name] = &rawKeyword{name: name, doubles: vals}
	return d
}

// Ints adds a keyword holding integer data.
func (d *RawDeck) Ints(name string, vals ...int) *RawDeck {
	d.kws[name] = &rawKeyword{name: name, ints: vals}
	return d
}

func (d *RawDeck) HasKeyword(name string) bool {
	_, ok := d.kws[name]
	return ok
}

func (d *RawDeck) Keyword(name string) (Keyword, bool) {
	kw, ok := d.kws[name]
	return kw, ok
}

// rawKeyword stores a single record of either doubles or ints and converts
// on demand.
type rawKeyword struct {
	name    string
	doubles []float64
	ints    []int
}

func (k *rawKeyword) Name() string { return k.name }

func (k *rawKeyword) Size() int {
	if k.ints != nil {
		return len(k.ints)
	}
	return len(k.doubles)
}

func (k *rawKeyword) SIDoubleData() []float64 {
	if k.doubles != nil {
		return k.doubles
	}
	out := make([]float64, len(k.ints))
	for i, v := range k.ints {
		out[i] = float64(v)
	}
	return out
}

func (k *rawKeyword) IntData() []int {
	if k.ints != nil {
		return k.ints
	}
	out := make([]int, len(k.doubles))
	for i, v := range k.doubles {
		out[i] = int(v)
	}
	return out
}

// A RawDeck keyword always has exactly one record.
func (k *rawKeyword) Int(record, item int) int {
	if record != 0 {
		panic("raw keyword has a single record")
	}
	return k.IntData()[item]
}

func (k *rawKeyword) SIDouble(record, item int) float64 {
	if record != 0 {
		panic("raw keyword has a single record")
	}
	return k.SIDoubleData()[item]
}

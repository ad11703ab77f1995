package types

import "slices"

// Facet names accepted by the search contract. Anything else is ignored.
const (
	FacetDifficulty = "difficulty"
	FacetDuration   = "duration"
	FacetLocation   = "location"
	FacetPrice      = "price"
	FacetOrganiser  = "organiser"
)

// Filters holds the active facet selections. An empty slice means no
// constraint on that facet. Values are opaque tokens, duration and price
// carry range buckets like "4-7" and "500-1000".
type Filters struct {
	Difficulty []string `json:"difficulty,omitempty" schema:"difficulty"`
	Duration   []string `json:"duration,omitempty" schema:"duration"`
	Location   []string `json:"location,omitempty" schema:"location"`
	Price      []string `json:"price,omitempty" schema:"price"`
	Organiser  []string `json:"organiser,omitempty" schema:"organiser"`
}

func (f *Filters) bucket(facet string) *[]string {
	switch facet {
	case FacetDifficulty:
		return &f.Difficulty
	case FacetDuration:
		return &f.Duration
	case FacetLocation:
		return &f.Location
	case FacetPrice:
		return &f.Price
	case FacetOrganiser:
		return &f.Organiser
	}
	return nil
}

// Toggle adds the value to the facet selection or removes it when already
// selected. Returns true when the value is selected after the call.
func (f *Filters) Toggle(facet, value string) bool {
	b := f.bucket(facet)
	if b == nil || value == "" {
		return false
	}
	if i := slices.Index(*b, value); i >= 0 {
		*b = slices.Delete(*b, i, i+1)
		return false
	}
	*b = append(*b, value)
	return true
}

func (f *Filters) Clear(facet string) {
	if b := f.bucket(facet); b != nil {
		*b = nil
	}
}

func (f *Filters) ClearAll() {
	*f = Filters{}
}

func (f *Filters) Selected(facet string) []string {
	if b := f.bucket(facet); b != nil {
		return *b
	}
	return nil
}

// Active reports whether any facet has at least one selected value.
func (f *Filters) Active() bool {
	return len(f.Difficulty) > 0 || len(f.Duration) > 0 || len(f.Location) > 0 ||
		len(f.Price) > 0 || len(f.Organiser) > 0
}

func (f *Filters) Clone() Filters {
	return Filters{
		Difficulty: slices.Clone(f.Difficulty),
		Duration:   slices.Clone(f.Duration),
		Location:   slices.Clone(f.Location),
		Price:      slices.Clone(f.Price),
		Organiser:  slices.Clone(f.Organiser),
	}
}

func (f *Filters) Equal(other *Filters) bool {
	return slices.Equal(f.Difficulty, other.Difficulty) &&
		slices.Equal(f.Duration, other.Duration) &&
		slices.Equal(f.Location, other.Location) &&
		slices.Equal(f.Price, other.Price) &&
		slices.Equal(f.Organiser, other.Organiser)
}

package types

// Difficulty vocabulary used by the catalog service and the local filter engine.
const (
	DifficultyEasy      = "easy"
	DifficultyModerate  = "moderate"
	DifficultyDifficult = "difficult"
	DifficultyExtreme   = "extreme"
)

type Trek struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Difficulty  []string `json:"difficulty"`
	Duration    int      `json:"duration"`
	Price       int      `json:"price"`
	Organiser   string   `json:"organiser"`
	Description string   `json:"description"`
	Elevation   *float64 `json:"elevation,omitempty"`
}

type FacetOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FacetCategory struct {
	Name    string        `json:"name"`
	Options []FacetOption `json:"options"`
}

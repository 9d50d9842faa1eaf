package domain

// FactKind classifies a dish fact by what it talks about.
type FactKind string

const (
	FactHistory    FactKind = "history"
	FactIngredient FactKind = "ingredient"
	FactEvent      FactKind = "event"
	FactCelebrity  FactKind = "celebrity"
)

// ValidFactKind reports whether s is one of the recognized fact kinds.
func ValidFactKind(s string) bool {
	switch FactKind(s) {
	case FactHistory, FactIngredient, FactEvent, FactCelebrity:
		return true
	}
	return false
}

// DishFact is a short textual claim about a dish or its ingredients. Immutable
// once constructed.
type DishFact struct {
	Kind       FactKind
	Text       string
	Sources    []string
	Verified   bool
	Confidence float64
}

// FactBatch is the result of one fact aggregation call. Facts are ordered by
// display priority.
type FactBatch struct {
	Facts               []DishFact
	TotalCandidates     int
	CelebritySuppressed int
}

// NutrientsPer100g holds baseline nutrient values for a catalog dish.
type NutrientsPer100g struct {
	Kcal    float64
	Protein float64
	Fat     float64
	Carbs   float64
	Notes   string
}

// NutrientEstimate is a deterministic projection of a catalog entry onto a
// concrete weight and cooking method.
type NutrientEstimate struct {
	DishName      string
	WeightGrams   int
	CookingMethod string
	Per100g       NutrientsPer100g
	TotalKcal     float64
	TotalProtein  float64
	TotalFat      float64
	TotalCarbs    float64
	Confidence    float64
	Assumptions   []string
}

// Label is one candidate classification from a vision provider.
type Label struct {
	Name        string
	Confidence  float64
	Description string
}

// NutritionEntry is one dish in the bundled nutrition catalog.
type NutritionEntry struct {
	Name        string
	Per100g     NutrientsPer100g
	Ingredients []string
}

// NutritionTable is the nutrition catalog loaded once at startup and shared
// read-only between components.
type NutritionTable struct {
	Dishes      []NutritionEntry
	Multipliers map[string]float64
}

// FactGroup ties a set of facts to the dish names and ingredients they match.
type FactGroup struct {
	DishNames   []string
	Ingredients []string
	Facts       []DishFact
}

// FactTable is the local fact catalog: dish-specific groups plus dish-agnostic
// fallback facts.
type FactTable struct {
	Groups   []FactGroup
	Fallback []DishFact
}

// Quote is a canned saying from a photography or cinema master, used by the
// composition-advice flow.
type Quote struct {
	Category   string
	Text       string
	Author     string
	Profession string
	Context    string
}

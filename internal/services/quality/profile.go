package quality

import (
	"fmt"

	"subsidy-advisor-engine/internal/models"
)

// WeightProfile assigns one weight per check category. Weights must be
// non-negative and sum to 1.0 so the overall score is a convex combination
// of clamped category scores.
type WeightProfile map[models.CheckCategory]float64

// ProfileMonozukuri is the default weighting, tuned for manufacturing and
// general-purpose subsidy applications where logical structure carries the
// most screening weight.
var ProfileMonozukuri = WeightProfile{
	models.CheckGrammar:        0.20,
	models.CheckTerminology:    0.18,
	models.CheckLogicStructure: 0.22,
	models.CheckPersuasiveness: 0.20,
	models.CheckReadability:    0.12,
	models.CheckCompliance:     0.08,
}

// ProfileReconstruction weights persuasiveness and logic more heavily, for
// restructuring-type applications where the case for the new business is
// what screeners scrutinize.
var ProfileReconstruction = WeightProfile{
	models.CheckGrammar:        0.15,
	models.CheckTerminology:    0.15,
	models.CheckLogicStructure: 0.25,
	models.CheckPersuasiveness: 0.25,
	models.CheckReadability:    0.10,
	models.CheckCompliance:     0.10,
}

// ProfileByName resolves a configured profile name. Empty string selects the
// default.
func ProfileByName(name string) (WeightProfile, error) {
	switch name {
	case "", "monozukuri":
		return ProfileMonozukuri, nil
	case "reconstruction":
		return ProfileReconstruction, nil
	default:
		return nil, fmt.Errorf("unknown scoring profile %q", name)
	}
}

// Validate checks the profile covers every category with weights summing
// to 1.0 within floating-point tolerance.
func (p WeightProfile) Validate() error {
	sum := 0.0
	for _, category := range models.AllCheckCategories() {
		w, ok := p[category]
		if !ok {
			return fmt.Errorf("weight profile missing category %s", category)
		}
		if w < 0 {
			return fmt.Errorf("weight profile has negative weight for %s", category)
		}
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("weight profile sums to %.4f, want 1.0", sum)
	}
	return nil
}

// Package match scores a player's transfer profile against a kingdom
// recruiting listing. It is pure computation: no I/O, no shared state,
// safe to call concurrently.
package match

import (
	"fmt"
	"math"
)

// Factor weights. These are relative proportions: the aggregator
// renormalizes over whichever factors are applicable, so a listing with
// only two requirements set is not penalized for the missing ones.
const (
	PowerWeight    = 0.30
	TCLevelWeight  = 0.25
	LanguageWeight = 0.25
	VibeWeight     = 0.20
)

// RecruitingFallbackScore is returned when no factor is applicable but
// the kingdom is still accepting applicants.
const RecruitingFallbackScore = 25

// Listing is the kingdom side of a comparison. Zero values mean "no
// requirement": a zero MinPower or MinTCLevel and an empty MainLanguage
// exclude that factor from scoring entirely.
type Listing struct {
	MinPower           float64  `json:"minPower"` // millions
	PowerRange         string   `json:"powerRange,omitempty"`
	MinTCLevel         int      `json:"minTcLevel"`
	MainLanguage       string   `json:"mainLanguage"`
	SecondaryLanguages []string `json:"secondaryLanguages"`
	KingdomVibe        []string `json:"kingdomVibe"`
	IsRecruiting       bool     `json:"isRecruiting"`
}

// Profile is the player side of a comparison.
type Profile struct {
	Power              float64  `json:"power"` // millions
	TCLevel            int      `json:"tcLevel"`
	MainLanguage       string   `json:"mainLanguage"`
	SecondaryLanguages []string `json:"secondaryLanguages"`
	LookingFor         []string `json:"lookingFor"`
}

// Detail explains one applicable factor's contribution. Label embeds the
// factor's weight percentage so the dashboard can render a weight bar
// without a separate lookup.
type Detail struct {
	Label   string `json:"label"`
	Matched bool   `json:"matched"`
	Detail  string `json:"detail"`
}

// Result is the full scoring output: an integer percentage plus one
// detail per applicable factor, in fixed factor order.
type Result struct {
	Score   int      `json:"score"`
	Details []Detail `json:"details"`
}

// factorScore is the outcome of a single factor scorer. A factor is
// applicable only when both sides supply enough information to compare;
// inapplicable factors are excluded from the weighted average, never
// forced to zero.
type factorScore struct {
	applicable bool
	value      float64
}

func notApplicable() factorScore       { return factorScore{} }
func applicable(v float64) factorScore { return factorScore{applicable: true, value: v} }

// scoredFactor pairs a factor outcome with its weight and explanation
// inputs, in the fixed order the details list uses.
type scoredFactor struct {
	label     string
	weight    float64
	matchedAt float64
	score     factorScore
	explain   string
}

func weightLabel(name string, weight float64) string {
	return fmt.Sprintf("%s (%d%%)", name, int(math.Round(weight*100)))
}

// evaluate runs all four factor scorers. Both aggregators share this so
// the sort-only score is numerically identical to the full one.
func evaluate(listing *Listing, profile *Profile) []scoredFactor {
	minPower := listing.effectiveMinPower()
	power := scorePower(profile.Power, minPower)
	tcLevel := scoreTCLevel(profile.TCLevel, listing.MinTCLevel)
	language := scoreLanguage(profile, listing)
	vibe := scoreVibe(profile.LookingFor, listing.KingdomVibe)

	return []scoredFactor{
		{
			label:     weightLabel("Power", PowerWeight),
			weight:    PowerWeight,
			matchedAt: 0.7,
			score:     power,
			explain:   explainPower(profile.Power, minPower),
		},
		{
			label:     weightLabel("TC Level", TCLevelWeight),
			weight:    TCLevelWeight,
			matchedAt: 0.7,
			score:     tcLevel,
			explain:   explainTCLevel(profile.TCLevel, listing.MinTCLevel),
		},
		{
			label:     weightLabel("Language", LanguageWeight),
			weight:    LanguageWeight,
			matchedAt: 0.6,
			score:     language,
			explain:   explainLanguage(profile, listing),
		},
		{
			label:     weightLabel("Vibe", VibeWeight),
			weight:    VibeWeight,
			matchedAt: 0.5,
			score:     vibe,
			explain:   explainVibe(profile.LookingFor, listing.KingdomVibe),
		},
	}
}

// combine folds the applicable factors into the final integer percentage.
// Returns ok=false when no factor was applicable.
func combine(factors []scoredFactor) (score int, ok bool) {
	var totalWeight, weightedSum float64
	for _, f := range factors {
		if !f.score.applicable {
			continue
		}
		totalWeight += f.weight
		weightedSum += f.score.value * f.weight
	}
	if totalWeight == 0 {
		return 0, false
	}
	return int(math.Round(weightedSum / totalWeight * 100)), true
}

// Score computes the full match result with a per-factor breakdown.
// A nil listing or nil profile yields {0, empty} rather than an error:
// the dashboard renders unanswered comparisons as a plain zero badge.
func Score(listing *Listing, profile *Profile) Result {
	if listing == nil || profile == nil {
		return Result{Score: 0, Details: []Detail{}}
	}

	factors := evaluate(listing, profile)
	score, ok := combine(factors)
	if !ok {
		if listing.IsRecruiting {
			return Result{
				Score: RecruitingFallbackScore,
				Details: []Detail{{
					Label:   "Recruiting",
					Matched: true,
					Detail:  "Kingdom is actively recruiting",
				}},
			}
		}
		return Result{Score: 0, Details: []Detail{}}
	}

	details := make([]Detail, 0, len(factors))
	for _, f := range factors {
		if !f.score.applicable {
			continue
		}
		details = append(details, Detail{
			Label:   f.label,
			Matched: f.score.value >= f.matchedAt,
			Detail:  f.explain,
		})
	}
	return Result{Score: score, Details: details}
}

// SortScore computes only the integer score, skipping all detail
// construction. Used when ordering hundreds of listings in one pass.
// It is numerically identical to Score(listing, profile).Score.
func SortScore(listing *Listing, profile *Profile) int {
	if listing == nil || profile == nil {
		return 0
	}

	minPower := listing.effectiveMinPower()
	factors := [4]struct {
		weight float64
		score  factorScore
	}{
		{PowerWeight, scorePower(profile.Power, minPower)},
		{TCLevelWeight, scoreTCLevel(profile.TCLevel, listing.MinTCLevel)},
		{LanguageWeight, scoreLanguage(profile, listing)},
		{VibeWeight, scoreVibe(profile.LookingFor, listing.KingdomVibe)},
	}

	var totalWeight, weightedSum float64
	for _, f := range factors {
		if !f.score.applicable {
			continue
		}
		totalWeight += f.weight
		weightedSum += f.score.value * f.weight
	}
	if totalWeight == 0 {
		if listing.IsRecruiting {
			return RecruitingFallbackScore
		}
		return 0
	}
	return int(math.Round(weightedSum / totalWeight * 100))
}

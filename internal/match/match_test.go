package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_NilInputs(t *testing.T) {
	listing := &Listing{MinPower: 50, IsRecruiting: true}
	profile := &Profile{Power: 60}

	for _, tc := range []struct {
		name    string
		listing *Listing
		profile *Profile
	}{
		{"nil profile", listing, nil},
		{"nil listing", nil, profile},
		{"both nil", nil, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			result := Score(tc.listing, tc.profile)
			assert.Equal(t, 0, result.Score)
			assert.Empty(t, result.Details)
			assert.Equal(t, 0, SortScore(tc.listing, tc.profile))
		})
	}
}

func TestScore_PowerOnly(t *testing.T) {
	tests := []struct {
		name          string
		playerPower   float64
		minPower      float64
		expectedScore int
		matched       bool
	}{
		{"exact minimum", 50, 50, 100, true},
		{"ratio 0.8 boundary", 40, 50, 50, false},
		{"ratio 0.9", 45, 50, 75, true},
		{"far below", 10, 50, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := &Listing{MinPower: tt.minPower, IsRecruiting: true}
			profile := &Profile{Power: tt.playerPower}

			result := Score(listing, profile)
			assert.Equal(t, tt.expectedScore, result.Score)
			require.Len(t, result.Details, 1)
			assert.Equal(t, "Power (30%)", result.Details[0].Label)
			assert.Equal(t, tt.matched, result.Details[0].Matched)
			assert.NotEmpty(t, result.Details[0].Detail)
		})
	}
}

func TestScore_TCLevelOnly(t *testing.T) {
	listing := &Listing{MinTCLevel: 25, IsRecruiting: true}
	profile := &Profile{TCLevel: 23}

	result := Score(listing, profile)
	assert.Equal(t, 70, result.Score)
	require.Len(t, result.Details, 1)
	assert.Equal(t, "TC Level (25%)", result.Details[0].Label)
	assert.True(t, result.Details[0].Matched)
}

func TestScore_LanguageOnly(t *testing.T) {
	listing := &Listing{
		MainLanguage:       "Spanish",
		SecondaryLanguages: []string{"English"},
	}
	profile := &Profile{MainLanguage: "English"}

	result := Score(listing, profile)
	assert.Equal(t, 80, result.Score)
	require.Len(t, result.Details, 1)
	assert.Equal(t, "Language (25%)", result.Details[0].Label)
	assert.True(t, result.Details[0].Matched)
}

func TestScore_VibeOnly(t *testing.T) {
	listing := &Listing{KingdomVibe: []string{"A", "B", "C", "D", "E"}}
	profile := &Profile{LookingFor: []string{"A"}}

	result := Score(listing, profile)
	assert.Equal(t, 100, result.Score)
	require.Len(t, result.Details, 1)
	assert.Equal(t, "Vibe (20%)", result.Details[0].Label)
	assert.True(t, result.Details[0].Matched)
}

func TestScore_RecruitingFallback(t *testing.T) {
	profile := &Profile{Power: 60, TCLevel: 25}

	recruiting := Score(&Listing{IsRecruiting: true}, profile)
	assert.Equal(t, 25, recruiting.Score)
	require.Len(t, recruiting.Details, 1)
	assert.Equal(t, "Recruiting", recruiting.Details[0].Label)
	assert.True(t, recruiting.Details[0].Matched)
	assert.Equal(t, "Kingdom is actively recruiting", recruiting.Details[0].Detail)

	closed := Score(&Listing{IsRecruiting: false}, profile)
	assert.Equal(t, 0, closed.Score)
	assert.Empty(t, closed.Details)
}

func TestScore_RenormalizesOverApplicableFactors(t *testing.T) {
	// Power and language fully matched, TC and vibe unset: the two
	// applicable weights are rescaled to 100%, not diluted.
	listing := &Listing{MinPower: 50, MainLanguage: "English"}
	profile := &Profile{Power: 60, MainLanguage: "English"}

	result := Score(listing, profile)
	assert.Equal(t, 100, result.Score)
	assert.Len(t, result.Details, 2)
}

func TestScore_MixedFactors(t *testing.T) {
	// Power 1.0*0.30 + TC 0.7*0.25 over total weight 0.55 -> 86.36 -> 86.
	listing := &Listing{MinPower: 50, MinTCLevel: 25}
	profile := &Profile{Power: 50, TCLevel: 23}

	result := Score(listing, profile)
	assert.Equal(t, 86, result.Score)
	require.Len(t, result.Details, 2)
	assert.Equal(t, "Power (30%)", result.Details[0].Label)
	assert.Equal(t, "TC Level (25%)", result.Details[1].Label)
}

func TestScore_ZeroScoreFactorStillExplained(t *testing.T) {
	// Applicable but fully missed factors keep their detail entry.
	listing := &Listing{MinTCLevel: 30}
	profile := &Profile{TCLevel: 20}

	result := Score(listing, profile)
	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Details, 1)
	assert.False(t, result.Details[0].Matched)
	assert.Contains(t, result.Details[0].Detail, "below the minimum")
}

func TestScore_DetailsInFixedFactorOrder(t *testing.T) {
	listing := &Listing{
		MinPower:     50,
		MinTCLevel:   25,
		MainLanguage: "English",
		KingdomVibe:  []string{"Casual"},
	}
	profile := &Profile{
		Power:        60,
		TCLevel:      26,
		MainLanguage: "English",
		LookingFor:   []string{"Casual"},
	}

	result := Score(listing, profile)
	assert.Equal(t, 100, result.Score)
	require.Len(t, result.Details, 4)
	assert.Equal(t, "Power (30%)", result.Details[0].Label)
	assert.Equal(t, "TC Level (25%)", result.Details[1].Label)
	assert.Equal(t, "Language (25%)", result.Details[2].Label)
	assert.Equal(t, "Vibe (20%)", result.Details[3].Label)
}

func TestScore_LegacyPowerRangeFallback(t *testing.T) {
	profile := &Profile{Power: 50}

	parsed := Score(&Listing{PowerRange: "50"}, profile)
	assert.Equal(t, 100, parsed.Score)
	assert.Len(t, parsed.Details, 1)

	// Unparsable legacy value leaves the factor unset; with nothing else
	// applicable the recruiting fallback applies.
	garbage := Score(&Listing{PowerRange: "50M+", IsRecruiting: true}, profile)
	assert.Equal(t, 25, garbage.Score)
}

func TestScore_Deterministic(t *testing.T) {
	listing := &Listing{
		MinPower:           45,
		MinTCLevel:         22,
		MainLanguage:       "Spanish",
		SecondaryLanguages: []string{"English", "Portuguese"},
		KingdomVibe:        []string{"Competitive", "KvK", "Casual"},
		IsRecruiting:       true,
	}
	profile := &Profile{
		Power:              40,
		TCLevel:            21,
		MainLanguage:       "English",
		SecondaryLanguages: []string{"French"},
		LookingFor:         []string{"KvK", "Farming"},
	}

	first := Score(listing, profile)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(listing, profile))
	}
}

func TestSortScore_MatchesFullScore(t *testing.T) {
	listings := []*Listing{
		nil,
		{},
		{IsRecruiting: true},
		{MinPower: 50},
		{PowerRange: "50"},
		{PowerRange: "junk", IsRecruiting: true},
		{MinPower: 50, MinTCLevel: 25},
		{MinTCLevel: 30},
		{MainLanguage: "English"},
		{MainLanguage: "Spanish", SecondaryLanguages: []string{"English"}},
		{KingdomVibe: []string{"Casual", "KvK"}},
		{
			MinPower:           45,
			MinTCLevel:         22,
			MainLanguage:       "Spanish",
			SecondaryLanguages: []string{"English"},
			KingdomVibe:        []string{"Competitive", "KvK"},
			IsRecruiting:       true,
		},
	}
	profiles := []*Profile{
		nil,
		{},
		{Power: 60, TCLevel: 26},
		{Power: 40, TCLevel: 20},
		{MainLanguage: "English"},
		{MainLanguage: "German", SecondaryLanguages: []string{"Spanish"}},
		{LookingFor: []string{"KvK"}},
		{
			Power:              44,
			TCLevel:            19,
			MainLanguage:       "English",
			SecondaryLanguages: []string{"Spanish"},
			LookingFor:         []string{"Casual", "Farming"},
		},
	}

	for _, l := range listings {
		for _, p := range profiles {
			assert.Equal(t, Score(l, p).Score, SortScore(l, p),
				"sort-only score diverged for listing %+v profile %+v", l, p)
		}
	}
}

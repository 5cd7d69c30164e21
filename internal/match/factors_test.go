package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePower(t *testing.T) {
	tests := []struct {
		name          string
		playerPower   float64
		minPower      float64
		expectedNA    bool
		expectedScore float64
	}{
		{
			name:       "no minimum set",
			minPower:   0,
			expectedNA: true,
		},
		{
			name:          "meets minimum exactly",
			playerPower:   50,
			minPower:      50,
			expectedScore: 1.0,
		},
		{
			name:          "above minimum",
			playerPower:   80,
			minPower:      50,
			expectedScore: 1.0,
		},
		{
			name:          "ratio exactly 0.8",
			playerPower:   40,
			minPower:      50,
			expectedScore: 0.5,
		},
		{
			name:          "ratio 0.9 interpolates toward full",
			playerPower:   45,
			minPower:      50,
			expectedScore: 0.75,
		},
		{
			name:          "ratio 0.5",
			playerPower:   25,
			minPower:      50,
			expectedScore: 0.25,
		},
		{
			name:          "zero power",
			playerPower:   0,
			minPower:      50,
			expectedScore: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := scorePower(tt.playerPower, tt.minPower)
			if tt.expectedNA {
				assert.False(t, fs.applicable)
				return
			}
			assert.True(t, fs.applicable)
			assert.InDelta(t, tt.expectedScore, fs.value, 1e-9)
		})
	}
}

func TestScoreTCLevel(t *testing.T) {
	tests := []struct {
		name          string
		playerTC      int
		minTC         int
		expectedNA    bool
		expectedScore float64
	}{
		{name: "no minimum set", minTC: 0, expectedNA: true},
		{name: "meets minimum", playerTC: 25, minTC: 25, expectedScore: 1.0},
		{name: "above minimum", playerTC: 30, minTC: 25, expectedScore: 1.0},
		{name: "one below", playerTC: 24, minTC: 25, expectedScore: 0.7},
		{name: "two below is still near", playerTC: 23, minTC: 25, expectedScore: 0.7},
		{name: "three below is weak", playerTC: 22, minTC: 25, expectedScore: 0.3},
		{name: "five below is weak edge", playerTC: 20, minTC: 25, expectedScore: 0.3},
		{name: "six below is a miss", playerTC: 19, minTC: 25, expectedScore: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := scoreTCLevel(tt.playerTC, tt.minTC)
			if tt.expectedNA {
				assert.False(t, fs.applicable)
				return
			}
			assert.True(t, fs.applicable)
			assert.InDelta(t, tt.expectedScore, fs.value, 1e-9)
		})
	}
}

func TestScoreLanguage(t *testing.T) {
	tests := []struct {
		name          string
		profile       Profile
		listing       Listing
		expectedNA    bool
		expectedScore float64
	}{
		{
			name:       "kingdom language unset",
			profile:    Profile{MainLanguage: "English"},
			listing:    Listing{},
			expectedNA: true,
		},
		{
			name:          "main to main",
			profile:       Profile{MainLanguage: "English"},
			listing:       Listing{MainLanguage: "English"},
			expectedScore: 1.0,
		},
		{
			name:          "player main in kingdom secondaries",
			profile:       Profile{MainLanguage: "English"},
			listing:       Listing{MainLanguage: "Spanish", SecondaryLanguages: []string{"English"}},
			expectedScore: 0.8,
		},
		{
			name:          "kingdom main in player secondaries",
			profile:       Profile{MainLanguage: "English", SecondaryLanguages: []string{"Spanish"}},
			listing:       Listing{MainLanguage: "Spanish"},
			expectedScore: 0.6,
		},
		{
			name: "secondary to secondary only",
			profile: Profile{
				MainLanguage:       "German",
				SecondaryLanguages: []string{"French"},
			},
			listing: Listing{
				MainLanguage:       "Spanish",
				SecondaryLanguages: []string{"French", "Portuguese"},
			},
			expectedScore: 0.3,
		},
		{
			name:          "no common language",
			profile:       Profile{MainLanguage: "German"},
			listing:       Listing{MainLanguage: "Spanish"},
			expectedScore: 0.0,
		},
		{
			name: "cascade stops at first tier even when lower tiers also match",
			profile: Profile{
				MainLanguage:       "English",
				SecondaryLanguages: []string{"Spanish"},
			},
			listing: Listing{
				MainLanguage:       "Spanish",
				SecondaryLanguages: []string{"English"},
			},
			expectedScore: 0.8,
		},
		{
			name:          "empty player main does not match empty secondary entries",
			profile:       Profile{},
			listing:       Listing{MainLanguage: "Spanish", SecondaryLanguages: []string{""}},
			expectedScore: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := scoreLanguage(&tt.profile, &tt.listing)
			if tt.expectedNA {
				assert.False(t, fs.applicable)
				return
			}
			assert.True(t, fs.applicable)
			assert.InDelta(t, tt.expectedScore, fs.value, 1e-9)
		})
	}
}

func TestScoreVibe(t *testing.T) {
	tests := []struct {
		name          string
		lookingFor    []string
		kingdomVibe   []string
		expectedNA    bool
		expectedScore float64
	}{
		{
			name:        "player has no tags",
			lookingFor:  nil,
			kingdomVibe: []string{"Casual"},
			expectedNA:  true,
		},
		{
			name:       "kingdom has no tags",
			lookingFor: []string{"Casual"},
			expectedNA: true,
		},
		{
			name:          "no overlap",
			lookingFor:    []string{"Competitive"},
			kingdomVibe:   []string{"Casual"},
			expectedScore: 0.0,
		},
		{
			name:          "single wanted tag fully covered",
			lookingFor:    []string{"A"},
			kingdomVibe:   []string{"A", "B", "C", "D", "E"},
			expectedScore: 1.0,
		},
		{
			name:          "partial overlap",
			lookingFor:    []string{"A", "B", "C", "D"},
			kingdomVibe:   []string{"A", "B"},
			expectedScore: 1.0, // overlap 2, maxPossible min(4,2)=2
		},
		{
			name:          "half coverage",
			lookingFor:    []string{"A", "B"},
			kingdomVibe:   []string{"A", "C", "D"},
			expectedScore: 0.75, // overlap 1 of maxPossible 2
		},
		{
			name:          "duplicate tags count once",
			lookingFor:    []string{"A", "A", "B"},
			kingdomVibe:   []string{"A", "A"},
			expectedScore: 1.0, // sets {A,B} and {A}: overlap 1, maxPossible 1
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := scoreVibe(tt.lookingFor, tt.kingdomVibe)
			if tt.expectedNA {
				assert.False(t, fs.applicable)
				return
			}
			assert.True(t, fs.applicable)
			assert.InDelta(t, tt.expectedScore, fs.value, 1e-9)
		})
	}
}

func TestEffectiveMinPower(t *testing.T) {
	tests := []struct {
		name     string
		listing  Listing
		expected float64
	}{
		{name: "numeric field wins", listing: Listing{MinPower: 50, PowerRange: "80"}, expected: 50},
		{name: "legacy range parsed when numeric unset", listing: Listing{PowerRange: "80"}, expected: 80},
		{name: "legacy range with whitespace", listing: Listing{PowerRange: " 45 "}, expected: 45},
		{name: "unparsable legacy range is unset", listing: Listing{PowerRange: "50M+"}, expected: 0},
		{name: "zero legacy range is unset", listing: Listing{PowerRange: "0"}, expected: 0},
		{name: "negative legacy range is unset", listing: Listing{PowerRange: "-10"}, expected: 0},
		{name: "nothing set", listing: Listing{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.listing.effectiveMinPower())
		})
	}
}

// internal/workers/matching/rank-listings/handler_test.go
package ranklistings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kingdom-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func createTestConfig() *Config {
	return &Config{
		MaxItems: 100,
		Timeout:  30 * time.Second,
	}
}

func createTestProfile() *PlayerProfile {
	return &PlayerProfile{
		Power:              60,
		TCLevel:            27,
		MainLanguage:       "English",
		SecondaryLanguages: []string{"Spanish"},
		LookingFor:         []string{"competitive"},
	}
}

func TestHandler_Execute_OrdersByScoreDescending(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	input := &Input{
		PlayerProfile: createTestProfile(),
		Listings: []ListingData{
			{ID: "far", KingdomNumber: 1, MinPower: 200},
			{ID: "perfect", KingdomNumber: 2, MinPower: 50, MainLanguage: "English"},
			{ID: "close", KingdomNumber: 3, MinPower: 70},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Len(t, output.RankedListings, 3)
	assert.Equal(t, "perfect", output.RankedListings[0].ID)
	assert.Equal(t, 100, output.RankedListings[0].MatchScore)
	for i := 1; i < len(output.RankedListings); i++ {
		assert.GreaterOrEqual(t,
			output.RankedListings[i-1].MatchScore,
			output.RankedListings[i].MatchScore)
	}
}

func TestHandler_Execute_TieBreaksOnListingID(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	// Identical listings always score the same, so order falls back to ID.
	listing := ListingData{MinPower: 50, MainLanguage: "English"}
	a, b, c := listing, listing, listing
	a.ID = "b-listing"
	b.ID = "a-listing"
	c.ID = "c-listing"

	input := &Input{
		PlayerProfile: createTestProfile(),
		Listings:      []ListingData{a, b, c},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, "a-listing", output.RankedListings[0].ID)
	assert.Equal(t, "b-listing", output.RankedListings[1].ID)
	assert.Equal(t, "c-listing", output.RankedListings[2].ID)
}

func TestHandler_Execute_DeduplicatesListings(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	input := &Input{
		PlayerProfile: createTestProfile(),
		Listings: []ListingData{
			{ID: "dup", MinPower: 50},
			{ID: "dup", MinPower: 50},
			{ID: "other", MinPower: 70},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Len(t, output.RankedListings, 2)
}

func TestHandler_Execute_CapsAtMaxItems(t *testing.T) {
	cfg := createTestConfig()
	cfg.MaxItems = 5
	handler := NewHandler(cfg, logger.NewTestLogger(t))

	var listings []ListingData
	for i := 0; i < 20; i++ {
		listings = append(listings, ListingData{
			ID:       fmt.Sprintf("listing-%02d", i),
			MinPower: float64(10 + i*10),
		})
	}

	output, err := handler.Execute(context.Background(), &Input{
		PlayerProfile: createTestProfile(),
		Listings:      listings,
	})

	assert.NoError(t, err)
	assert.Len(t, output.RankedListings, 5)
}

func TestHandler_Execute_NilProfileScoresZero(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	input := &Input{
		Listings: []ListingData{
			{ID: "a", MinPower: 50, IsRecruiting: true},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Len(t, output.RankedListings, 1)
	assert.Equal(t, 0, output.RankedListings[0].MatchScore)
}

func TestHandler_Execute_EmptyInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	assert.NoError(t, err)
	assert.Empty(t, output.RankedListings)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNilInput)
	assert.Nil(t, output)
}

func TestHandler_Execute_RecruitingFallbackRanksAboveZero(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	input := &Input{
		PlayerProfile: createTestProfile(),
		Listings: []ListingData{
			{ID: "no-reqs-recruiting", IsRecruiting: true},
			{ID: "no-reqs-closed", IsRecruiting: false},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, "no-reqs-recruiting", output.RankedListings[0].ID)
	assert.Equal(t, 25, output.RankedListings[0].MatchScore)
	assert.Equal(t, 0, output.RankedListings[1].MatchScore)
}

func BenchmarkHandler_Execute(b *testing.B) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())

	var listings []ListingData
	for i := 0; i < 100; i++ {
		listings = append(listings, ListingData{
			ID:           fmt.Sprintf("listing-%03d", i),
			MinPower:     float64(10 + i),
			MinTCLevel:   20 + i%15,
			MainLanguage: "English",
		})
	}
	input := &Input{PlayerProfile: createTestProfile(), Listings: listings}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

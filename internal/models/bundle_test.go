package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatusScheduledBecomesActive(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)

	b := Bundle{Status: BundleScheduled, StartDate: &start}
	assert.Equal(t, BundleActive, b.EffectiveStatus(now))

	future := now.Add(time.Hour)
	b.StartDate = &future
	assert.Equal(t, BundleScheduled, b.EffectiveStatus(now))
}

func TestEffectiveStatusActiveExpires(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)

	b := Bundle{Status: BundleActive, EndDate: &past}
	assert.Equal(t, BundleExpired, b.EffectiveStatus(now))
}

func TestEffectiveStatusScheduledCanExpireInOnePass(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-48 * time.Hour)
	end := now.Add(-24 * time.Hour)

	// A scheduled bundle whose whole window has passed reads as expired.
	b := Bundle{Status: BundleScheduled, StartDate: &start, EndDate: &end}
	assert.Equal(t, BundleExpired, b.EffectiveStatus(now))
}

func TestEffectiveStatusLeavesTerminalStatesAlone(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	b := Bundle{Status: BundleArchived, StartDate: &past, EndDate: &past}
	assert.Equal(t, BundleArchived, b.EffectiveStatus(now))

	b.Status = BundleDraft
	assert.Equal(t, BundleDraft, b.EffectiveStatus(now))
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(1, 20, 45)
	assert.True(t, info.HasNext)
	assert.False(t, info.HasPrev)

	info = NewPageInfo(2, 20, 45)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	info = NewPageInfo(3, 20, 45)
	assert.False(t, info.HasNext)
	assert.True(t, info.HasPrev)

	info = NewPageInfo(1, 20, 0)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)
}

func TestFindVariation(t *testing.T) {
	p := Product{Variations: []Variation{{ID: "v1", PriceCents: 100}}}

	assert.NotNil(t, p.FindVariation("v1"))
	assert.Nil(t, p.FindVariation("v2"))
	assert.Equal(t, "", p.FirstImage())
}

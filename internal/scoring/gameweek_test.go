package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpladvisor/advisor-api/internal/models"
)

func TestResolveGameweek(t *testing.T) {
	flaggedGWs := []models.Gameweek{
		{ID: 1, Finished: true},
		{ID: 2, IsCurrent: true},
		{ID: 3, IsNext: true},
		{ID: 4},
	}
	noFlags := []models.Gameweek{
		{ID: 3, Finished: true},
		{ID: 1, Finished: true},
		{ID: 2},
	}
	allFinished := []models.Gameweek{
		{ID: 38, Finished: true},
		{ID: 37, Finished: true},
	}

	tests := []struct {
		name string
		gws  []models.Gameweek
		sel  models.GameweekSelector
		want int
	}{
		{"current", flaggedGWs, models.CurrentGameweek, 2},
		{"next", flaggedGWs, models.NextGameweek, 3},
		{"explicit", flaggedGWs, models.GameweekNumber(17), 17},
		{"no flags first unfinished", noFlags, models.CurrentGameweek, 2},
		{"no flags next", noFlags, models.NextGameweek, 2},
		{"all finished lowest id", allFinished, models.CurrentGameweek, 37},
		{"empty list", nil, models.CurrentGameweek, 1},
		{"next missing falls to current", flaggedGWs[:2], models.NextGameweek, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveGameweek(tt.gws, tt.sel))
		})
	}
}

func TestPicksCandidates(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	gws := []models.Gameweek{
		{ID: 1, Finished: true},
		{ID: 2, Finished: true},
		{ID: 3, IsCurrent: true},
		{ID: 4, IsNext: true},
		{ID: 5},
	}

	t.Run("current", func(t *testing.T) {
		got := PicksCandidates(gws, models.CurrentGameweek, now)
		assert.Equal(t, []PicksCandidate{
			{3, models.SourceCurrent},
			{4, models.SourceNext},
			{2, models.SourceHistory},
			{1, models.SourceHistory},
		}, got)
	})

	t.Run("next", func(t *testing.T) {
		got := PicksCandidates(gws, models.NextGameweek, now)
		assert.Equal(t, 4, got[0].Gameweek)
		assert.Equal(t, models.SourceNext, got[0].Source)
		assert.Equal(t, 3, got[1].Gameweek)
	})

	t.Run("requested", func(t *testing.T) {
		got := PicksCandidates(gws, models.GameweekNumber(2), now)
		assert.Equal(t, PicksCandidate{2, models.SourceRequested}, got[0])
		assert.Equal(t, PicksCandidate{4, models.SourceNext}, got[1])
		assert.Equal(t, PicksCandidate{3, models.SourceCurrent}, got[2])
	})

	t.Run("no flags tries every gameweek", func(t *testing.T) {
		got := PicksCandidates([]models.Gameweek{{ID: 1}, {ID: 2}}, models.CurrentGameweek, now)
		assert.Equal(t, []PicksCandidate{{2, models.SourceHistory}, {1, models.SourceHistory}}, got)
	})

	t.Run("no current flag skips unstarted gameweeks", func(t *testing.T) {
		var season []models.Gameweek
		for id := 1; id <= 38; id++ {
			season = append(season, models.Gameweek{ID: id, Finished: id <= 10, IsNext: id == 11})
		}
		got := PicksCandidates(season, models.CurrentGameweek, now)
		require.GreaterOrEqual(t, len(got), 2)
		assert.Equal(t, PicksCandidate{11, models.SourceNext}, got[0])
		assert.Equal(t, PicksCandidate{10, models.SourceHistory}, got[1])
		assert.Len(t, got, 11)
	})

	t.Run("no flags uses deadlines", func(t *testing.T) {
		past := now.Add(-48 * time.Hour)
		future := now.Add(48 * time.Hour)
		got := PicksCandidates([]models.Gameweek{
			{ID: 1, Finished: true},
			{ID: 2, DeadlineTime: &past},
			{ID: 3, DeadlineTime: &future},
			{ID: 4, DeadlineTime: &future},
		}, models.CurrentGameweek, now)
		assert.Equal(t, []PicksCandidate{{2, models.SourceHistory}, {1, models.SourceHistory}}, got)
	})
}

package logic

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/fpl"
	"github.com/fpladvisor/advisor-api/internal/models"
)

func TestStandings(t *testing.T) {
	var gotPage int
	src := &MockFPLSource{
		LeagueStandingsFunc: func(_ context.Context, leagueID, page int) (*models.LeagueStandings, error) {
			gotPage = page
			switch leagueID {
			case 404:
				return nil, fmt.Errorf("GET /leagues-classic/404/standings/: %w", fpl.ErrNotFound)
			case 500:
				return nil, errors.New("upstream returned 503")
			}
			return &models.LeagueStandings{League: models.League{ID: leagueID, Name: "Office"}}, nil
		},
	}
	svc := NewLeagueService(src, zap.NewNop())

	t.Run("page defaults to one", func(t *testing.T) {
		st, err := svc.Standings(context.Background(), 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, gotPage)
		assert.Equal(t, "Office", st.League.Name)
		assert.NotNil(t, st.Standings.Results)
	})

	tests := []struct {
		name     string
		leagueID int
		check    func(t *testing.T, err error)
	}{
		{"invalid id", 0, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrValidation) }},
		{"missing league", 404, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Contains(t, err.Error(), "private")
		}},
		{"upstream failure", 500, func(t *testing.T, err error) {
			assert.False(t, IsNotFound(err))
			assert.NotErrorIs(t, err, ErrValidation)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Standings(context.Background(), tt.leagueID, 2)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

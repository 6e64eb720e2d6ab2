package scoring

import (
	"sort"
	"time"

	"github.com/fpladvisor/advisor-api/internal/models"
)

// flagged returns the ids of the current and next gameweeks (0 when absent).
func flagged(gws []models.Gameweek) (current, next int) {
	for _, gw := range gws {
		if gw.IsCurrent && current == 0 {
			current = gw.ID
		}
		if gw.IsNext && next == 0 {
			next = gw.ID
		}
	}
	return current, next
}

// ResolveGameweek turns a selector into a gameweek id. It always returns an
// id: flagged gameweeks first, then the first unfinished, then the lowest id,
// then 1 for an empty list.
func ResolveGameweek(gws []models.Gameweek, sel models.GameweekSelector) int {
	if sel.Kind == models.SelectNumber && sel.Number > 0 {
		return sel.Number
	}

	current, next := flagged(gws)
	if sel.Kind == models.SelectNext {
		if next != 0 {
			return next
		}
		if current != 0 {
			return current
		}
	} else {
		if current != 0 {
			return current
		}
		if next != 0 {
			return next
		}
	}
	return fallbackGameweek(gws)
}

func fallbackGameweek(gws []models.Gameweek) int {
	if len(gws) == 0 {
		return 1
	}
	sorted := sortedByID(gws)
	for _, gw := range sorted {
		if !gw.Finished {
			return gw.ID
		}
	}
	return sorted[0].ID
}

func sortedByID(gws []models.Gameweek) []models.Gameweek {
	sorted := make([]models.Gameweek, len(gws))
	copy(sorted, gws)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}

// PicksCandidate is a gameweek to try when looking up a manager's picks.
type PicksCandidate struct {
	Gameweek int
	Source   string
}

// PicksCandidates orders the gameweeks to try for a manager's picks: the
// selected gameweek, then the flagged next one, then started gameweeks from
// most recent. A brand-new gameweek may have no picks recorded yet.
func PicksCandidates(gws []models.Gameweek, sel models.GameweekSelector, now time.Time) []PicksCandidate {
	current, next := flagged(gws)

	var order []int
	seen := map[int]bool{}
	push := func(id int) {
		if id > 0 && !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}

	switch {
	case sel.Kind == models.SelectNumber:
		push(sel.Number)
	case sel.Kind == models.SelectNext && next != 0:
		push(next)
	case current != 0:
		push(current)
	}
	push(next)

	// Only gameweeks that have started can hold picks.
	lastFinished := 0
	for _, gw := range gws {
		if gw.Finished && gw.ID > lastFinished {
			lastFinished = gw.ID
		}
	}
	sorted := sortedByID(gws)
	for i := len(sorted) - 1; i >= 0; i-- {
		if !mayHavePicks(sorted[i], current, next, lastFinished, now) {
			continue
		}
		push(sorted[i].ID)
	}

	out := make([]PicksCandidate, 0, len(order))
	for _, id := range order {
		src := models.SourceHistory
		switch {
		case sel.Kind == models.SelectNumber && id == sel.Number:
			src = models.SourceRequested
		case current != 0 && id == current:
			src = models.SourceCurrent
		case next != 0 && id == next:
			src = models.SourceNext
		}
		out = append(out, PicksCandidate{Gameweek: id, Source: src})
	}
	return out
}

// mayHavePicks reports whether gw can have started. With a current flag the
// flag is the boundary. Without one, a deadline in the future, the next flag
// or the last finished gameweek marks it as not started. A gameweek with no
// usable signal is kept.
func mayHavePicks(gw models.Gameweek, current, next, lastFinished int, now time.Time) bool {
	if gw.Finished {
		return true
	}
	if current != 0 {
		return gw.ID <= current
	}
	if gw.DeadlineTime != nil {
		return !gw.DeadlineTime.After(now)
	}
	if next != 0 && gw.ID >= next {
		return false
	}
	if lastFinished != 0 && gw.ID > lastFinished+1 {
		return false
	}
	return true
}

package logic

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/models"
)

const (
	deadlineUrgent     = 24 * time.Hour
	deadlineSoon       = 48 * time.Hour
	priceAlertLimit    = 10
	injuryAlertLimit   = 15
	injuryMinOwnership = 5.0
	injuryMajorChance  = 50
	formAlertLimit     = 5
	formAlertMin       = 7.0
	formMaxOwnership   = 15.0
	dgwLookahead       = 5
)

// NotificationConfig holds the notification service's dependencies. Now
// defaults to time.Now.
type NotificationConfig struct {
	Source FPLSource
	Logger *zap.Logger
	Now    func() time.Time
}

type notificationService struct {
	source FPLSource
	now    func() time.Time
	logger *zap.SugaredLogger
}

func NewNotificationService(cfg NotificationConfig) NotificationService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &notificationService{source: cfg.Source, now: now, logger: logger.Sugar()}
}

// Notifications builds the alert feed from the bootstrap snapshot and the
// upcoming fixture list. A fixtures failure only drops the double gameweek
// alert.
func (s *notificationService) Notifications(ctx context.Context) (*models.NotificationFeed, error) {
	boot, err := s.source.Bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	now := s.now().UTC()

	var current, next *models.Gameweek
	for i := range boot.Gameweeks {
		gw := &boot.Gameweeks[i]
		if gw.IsCurrent && current == nil {
			current = gw
		}
		if gw.IsNext && next == nil {
			next = gw
		}
	}

	var list []models.Notification
	if n, ok := deadlineAlert(next, now); ok {
		list = append(list, n)
	}
	if n, ok := priceAlert(boot, now); ok {
		list = append(list, n)
	}
	if n, ok := injuryAlert(boot, now); ok {
		list = append(list, n)
	}
	list = append(list, trendAlerts(boot, now)...)
	if n, ok := formAlert(boot, now); ok {
		list = append(list, n)
	}
	if current != nil {
		fixtures, err := s.source.Fixtures(ctx, 0)
		if err != nil {
			s.logger.Warnw("Fixtures unavailable for notifications", "error", err)
		} else if n, ok := doubleGameweekAlert(boot, fixtures, current.ID, now); ok {
			list = append(list, n)
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		a, b := priorityRank(list[i].Priority), priorityRank(list[j].Priority)
		if a != b {
			return a < b
		}
		return list[i].Timestamp.After(list[j].Timestamp)
	})

	feed := &models.NotificationFeed{
		Total:         len(list),
		Notifications: list,
		LastUpdated:   now,
	}
	if feed.Notifications == nil {
		feed.Notifications = []models.Notification{}
	}
	if current != nil {
		feed.CurrentGameweek = current.ID
	}
	for _, n := range list {
		switch n.Priority {
		case models.PriorityHigh:
			feed.Counts.High++
		case models.PriorityMedium:
			feed.Counts.Medium++
		default:
			feed.Counts.Low++
		}
	}
	return feed, nil
}

func priorityRank(p string) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	default:
		return 2
	}
}

func deadlineAlert(next *models.Gameweek, now time.Time) (models.Notification, bool) {
	if next == nil || next.DeadlineTime == nil {
		return models.Notification{}, false
	}
	left := next.DeadlineTime.Sub(now)
	if left <= 0 || left > deadlineSoon {
		return models.Notification{}, false
	}

	n := models.Notification{
		ID:        fmt.Sprintf("deadline-%d", next.ID),
		Type:      models.NotifyDeadline,
		Priority:  models.PriorityMedium,
		Title:     fmt.Sprintf("%s deadline approaching", next.Name),
		Timestamp: now,
		Link:      "/api/v1/fixtures/planner",
		Data: map[string]any{
			"gameweek":  next.ID,
			"deadline":  next.DeadlineTime.UTC(),
			"hoursLeft": int(left.Hours()),
		},
	}
	if left <= deadlineUrgent {
		n.Priority = models.PriorityHigh
		n.Message = fmt.Sprintf("Less than %d hours until the deadline. Make your transfers now!", int(math.Ceil(left.Hours())))
	} else {
		n.Message = fmt.Sprintf("Deadline in %d hours. Plan your transfers.", int(left.Hours()))
	}
	return n, true
}

func priceAlert(boot *models.Bootstrap, now time.Time) (models.Notification, bool) {
	var changed []models.Player
	risers, fallers := 0, 0
	for _, p := range boot.Players {
		switch {
		case p.CostChangeEvent > 0:
			risers++
		case p.CostChangeEvent < 0:
			fallers++
		default:
			continue
		}
		changed = append(changed, p)
	}
	if len(changed) == 0 {
		return models.Notification{}, false
	}
	sort.SliceStable(changed, func(i, j int) bool {
		return abs(changed[i].CostChangeEvent) > abs(changed[j].CostChangeEvent)
	})
	if len(changed) > priceAlertLimit {
		changed = changed[:priceAlertLimit]
	}

	players := make([]map[string]any, 0, len(changed))
	for _, p := range changed {
		players = append(players, map[string]any{
			"id":     p.ID,
			"name":   p.DisplayName(),
			"team":   boot.TeamShort(p.TeamID, ""),
			"change": float64(p.CostChangeEvent) / 10,
			"price":  p.Price(),
		})
	}
	return models.Notification{
		ID:        "price-" + now.Format("2006-01-02"),
		Type:      models.NotifyPrice,
		Priority:  models.PriorityMedium,
		Title:     "Price changes this gameweek",
		Message:   fmt.Sprintf("%d players rose and %d fell in price.", risers, fallers),
		Timestamp: now,
		Link:      "/api/v1/players/prices",
		Data:      map[string]any{"risers": risers, "fallers": fallers, "players": players},
	}, true
}

func injuryAlert(boot *models.Bootstrap, now time.Time) (models.Notification, bool) {
	var flagged []models.Player
	major := false
	for _, p := range boot.Players {
		chance := p.ChanceOfPlayingNextRound
		if p.News == "" || chance == nil || *chance >= 100 || p.SelectedByPercent <= injuryMinOwnership {
			continue
		}
		if *chance < injuryMajorChance {
			major = true
		}
		flagged = append(flagged, p)
	}
	if len(flagged) == 0 {
		return models.Notification{}, false
	}
	if len(flagged) > injuryAlertLimit {
		flagged = flagged[:injuryAlertLimit]
	}

	players := make([]map[string]any, 0, len(flagged))
	for _, p := range flagged {
		players = append(players, map[string]any{
			"id":        p.ID,
			"name":      p.DisplayName(),
			"team":      boot.TeamShort(p.TeamID, ""),
			"news":      p.News,
			"chance":    *p.ChanceOfPlayingNextRound,
			"ownership": p.SelectedByPercent,
		})
	}
	priority := models.PriorityMedium
	if major {
		priority = models.PriorityHigh
	}
	return models.Notification{
		ID:        "injury-" + now.Format("2006-01-02"),
		Type:      models.NotifyInjury,
		Priority:  priority,
		Title:     "Injury updates",
		Message:   fmt.Sprintf("%d popular players have fitness concerns.", len(flagged)),
		Timestamp: now,
		Link:      "/api/v1/players/injuries",
		Data:      map[string]any{"players": players},
	}, true
}

func trendAlerts(boot *models.Bootstrap, now time.Time) []models.Notification {
	var in, out *models.Player
	for i := range boot.Players {
		p := &boot.Players[i]
		if p.TransfersInEvent > 0 && (in == nil || p.TransfersInEvent > in.TransfersInEvent) {
			in = p
		}
		if p.TransfersOutEvent > 0 && (out == nil || p.TransfersOutEvent > out.TransfersOutEvent) {
			out = p
		}
	}

	var list []models.Notification
	if in != nil {
		list = append(list, models.Notification{
			ID:        fmt.Sprintf("transfer-in-%d", in.ID),
			Type:      models.NotifyTransfer,
			Priority:  models.PriorityLow,
			Title:     fmt.Sprintf("%s is the most transferred in", in.DisplayName()),
			Message:   fmt.Sprintf("%s transfers in this gameweek.", groupThousands(in.TransfersInEvent)),
			Timestamp: now,
			Link:      "/api/v1/players/transfers",
			Data:      map[string]any{"playerId": in.ID, "transfersIn": in.TransfersInEvent},
		})
	}
	if out != nil {
		list = append(list, models.Notification{
			ID:        fmt.Sprintf("transfer-out-%d", out.ID),
			Type:      models.NotifyTransfer,
			Priority:  models.PriorityLow,
			Title:     fmt.Sprintf("%s is the most transferred out", out.DisplayName()),
			Message:   fmt.Sprintf("%s transfers out this gameweek.", groupThousands(out.TransfersOutEvent)),
			Timestamp: now,
			Link:      "/api/v1/players/transfers",
			Data:      map[string]any{"playerId": out.ID, "transfersOut": out.TransfersOutEvent},
		})
	}
	return list
}

func formAlert(boot *models.Bootstrap, now time.Time) (models.Notification, bool) {
	var hot []models.Player
	for _, p := range boot.Players {
		if p.Form >= formAlertMin && p.SelectedByPercent < formMaxOwnership {
			hot = append(hot, p)
		}
	}
	if len(hot) == 0 {
		return models.Notification{}, false
	}
	sort.SliceStable(hot, func(i, j int) bool { return hot[i].Form > hot[j].Form })
	if len(hot) > formAlertLimit {
		hot = hot[:formAlertLimit]
	}

	names := make([]string, 0, len(hot))
	ids := make([]int, 0, len(hot))
	for _, p := range hot {
		names = append(names, p.DisplayName())
		ids = append(ids, p.ID)
	}
	return models.Notification{
		ID:        "form-" + now.Format("2006-01-02"),
		Type:      models.NotifyForm,
		Priority:  models.PriorityLow,
		Title:     "In-form differentials",
		Message:   strings.Join(names, ", ") + " are in form and owned by few managers.",
		Timestamp: now,
		Link:      "/api/v1/players/differentials",
		Data:      map[string]any{"playerIds": ids},
	}, true
}

// doubleGameweekAlert flags the first gameweek after current where enough
// teams play twice.
func doubleGameweekAlert(boot *models.Bootstrap, fixtures []models.Fixture, current int, now time.Time) (models.Notification, bool) {
	for gw := current + 1; gw <= current+dgwLookahead; gw++ {
		counts := make(map[int]int)
		for _, f := range fixtures {
			if f.Event == gw {
				counts[f.TeamH]++
				counts[f.TeamA]++
			}
		}
		var teams []string
		for id, c := range counts {
			if c >= 2 {
				teams = append(teams, boot.TeamShort(id, fmt.Sprintf("team %d", id)))
			}
		}
		if len(teams) < dgwTeamThreshold {
			continue
		}
		sort.Strings(teams)
		return models.Notification{
			ID:        fmt.Sprintf("dgw-%d", gw),
			Type:      models.NotifyFixture,
			Priority:  models.PriorityHigh,
			Title:     fmt.Sprintf("Double gameweek %d", gw),
			Message:   fmt.Sprintf("%d teams play twice in gameweek %d. Consider your chips.", len(teams), gw),
			Timestamp: now,
			Link:      "/api/v1/fixtures/planner",
			Data:      map[string]any{"gameweek": gw, "teams": teams},
		}, true
	}
	return models.Notification{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// groupThousands formats 12345 as "12,345".
func groupThousands(v int) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

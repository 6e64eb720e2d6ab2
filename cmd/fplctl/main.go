// Command fplctl runs the advisor services from the command line and prints
// JSON results.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/fpladvisor/advisor-api/internal/app"
	"github.com/fpladvisor/advisor-api/internal/config"
	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

type globalOptions struct {
	Verbose bool `short:"v" long:"verbose" description:"Log upstream calls to stderr"`
	Compact bool `long:"compact" description:"Print JSON on one line"`
}

var opts globalOptions

type entryCommand struct {
	Event string `short:"e" long:"event" default:"current" description:"current, next or a gameweek number"`
	Args  struct {
		EntryID int `positional-arg-name:"entry-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *entryCommand) selector() (models.GameweekSelector, error) {
	if c.Args.EntryID <= 0 {
		return models.GameweekSelector{}, fmt.Errorf("entry id must be positive, got %d", c.Args.EntryID)
	}
	return models.ParseGameweekSelector(c.Event)
}

type lineupCommand entryCommand

func (c *lineupCommand) Execute([]string) error {
	sel, err := (*entryCommand)(c).selector()
	if err != nil {
		return err
	}
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Advisor.GetLineup(ctx, c.Args.EntryID, sel)
	})
}

type transfersCommand entryCommand

func (c *transfersCommand) Execute([]string) error {
	sel, err := (*entryCommand)(c).selector()
	if err != nil {
		return err
	}
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Advisor.SuggestTransfers(ctx, c.Args.EntryID, sel)
	})
}

type captainCommand entryCommand

func (c *captainCommand) Execute([]string) error {
	sel, err := (*entryCommand)(c).selector()
	if err != nil {
		return err
	}
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Advisor.SuggestCaptain(ctx, c.Args.EntryID, sel)
	})
}

type chipsCommand struct {
	Args struct {
		EntryID int `positional-arg-name:"entry-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *chipsCommand) Execute([]string) error {
	if c.Args.EntryID <= 0 {
		return fmt.Errorf("entry id must be positive, got %d", c.Args.EntryID)
	}
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Squads.ChipStrategy(ctx, c.Args.EntryID)
	})
}

type liveCommand chipsCommand

func (c *liveCommand) Execute([]string) error {
	if c.Args.EntryID <= 0 {
		return fmt.Errorf("entry id must be positive, got %d", c.Args.EntryID)
	}
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Live.LiveGameweek(ctx, c.Args.EntryID)
	})
}

type notificationsCommand struct{}

func (c *notificationsCommand) Execute([]string) error {
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Notifications.Notifications(ctx)
	})
}

type plannerCommand struct {
	Horizon int `long:"horizon" default:"8" description:"Gameweeks to plan (1-15)"`
}

func (c *plannerCommand) Execute([]string) error {
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Fixtures.Planner(ctx, c.Horizon)
	})
}

type squadCommand struct {
	Formation string `short:"f" long:"formation" default:"3-4-3" description:"Starting formation"`
}

func (c *squadCommand) Execute([]string) error {
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Squads.OptimalSquad(ctx, c.Formation)
	})
}

type searchCommand struct {
	Position string `short:"p" long:"position" description:"GK, DEF, MID or FWD"`
	Limit    int    `short:"n" long:"limit" default:"10" description:"Result count"`
	Args     struct {
		Query string `positional-arg-name:"query" required:"yes"`
	} `positional-args:"yes"`
}

func (c *searchCommand) Execute([]string) error {
	var pos models.Position
	if c.Position != "" {
		if pos = scoring.NormalizePosition(c.Position); pos == models.PositionUnknown {
			return fmt.Errorf("unknown position %q", c.Position)
		}
	}
	return withApp(func(ctx context.Context, a *app.App) (any, error) {
		return a.Insights.SearchPlayers(ctx, c.Args.Query, pos, c.Limit)
	})
}

// withApp builds the services, runs fn and prints its result to stdout.
func withApp(fn func(ctx context.Context, a *app.App) (any, error)) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := zap.NewNop()
	if opts.Verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := fn(ctx, a)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.AddCommand("lineup", "Show a manager's lineup", "Reconstruct a manager's starting XI and bench for a gameweek.", &lineupCommand{})
	parser.AddCommand("transfers", "Suggest transfers", "Rank affordable one-for-one transfers by expected points gain.", &transfersCommand{})
	parser.AddCommand("captain", "Suggest a captain", "Rank the starting XI as captain options.", &captainCommand{})
	parser.AddCommand("chips", "Plan chip usage", "List remaining chips and the gameweeks to play them.", &chipsCommand{})
	parser.AddCommand("live", "Live gameweek", "Score a manager's squad against the gameweek in progress.", &liveCommand{})
	parser.AddCommand("notifications", "Show alerts", "List deadline, price, injury and fixture alerts.", &notificationsCommand{})
	parser.AddCommand("planner", "Fixture planner", "Show each team's upcoming fixture difficulty.", &plannerCommand{})
	parser.AddCommand("squad", "Build an optimal squad", "Generate a 15-player squad within budget.", &squadCommand{})
	parser.AddCommand("search", "Search players", "Fuzzy-match player names.", &searchCommand{})

	if _, err := parser.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

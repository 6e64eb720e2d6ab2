// Package mcptools exposes the advisor services as Model Context Protocol
// tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fpladvisor/advisor-api/internal/logic"
	"github.com/fpladvisor/advisor-api/internal/models"
	"github.com/fpladvisor/advisor-api/internal/scoring"
)

const (
	serverName    = "fpl-advisor"
	serverVersion = "1.0.0"
)

type EntryArgs struct {
	EntryID int    `json:"entry_id" jsonschema:"FPL entry (manager) id (required)"`
	Event   string `json:"event,omitempty" jsonschema:"current, next or a gameweek number (default current)"`
}

type ChipArgs struct {
	EntryID int `json:"entry_id" jsonschema:"FPL entry (manager) id (required)"`
}

type PlannerArgs struct {
	Horizon int `json:"horizon,omitempty" jsonschema:"Gameweeks to plan, 1-15 (default 8)"`
}

type SearchArgs struct {
	Query    string `json:"query" jsonschema:"Player name fragment (required)"`
	Position string `json:"position,omitempty" jsonschema:"GK, DEF, MID or FWD"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Result count (default 20)"`
}

// Services are the advisor services the tools call.
type Services struct {
	Advisor  logic.AdvisorService
	Squads   logic.SquadService
	Fixtures logic.FixtureService
	Insights logic.PlayerInsightService
	Live     logic.LiveService
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Toolset binds the services to tool handlers.
type Toolset struct {
	svc   Services
	tools []ToolInfo
}

func New(svc Services) *Toolset {
	return &Toolset{svc: svc}
}

// Tools lists the registered tools in registration order.
func (t *Toolset) Tools() []ToolInfo {
	return t.tools
}

// NewServer returns an MCP server with every tool registered.
func (t *Toolset) NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	t.tools = t.tools[:0]

	addTool(t, server, &mcp.Tool{
		Name:        "get_lineup",
		Description: "Manager's squad for a gameweek split into starting XI and bench",
	}, t.GetLineup)
	addTool(t, server, &mcp.Tool{
		Name:        "suggest_transfers",
		Description: "Best affordable one-for-one transfers ranked by expected points gain",
	}, t.SuggestTransfers)
	addTool(t, server, &mcp.Tool{
		Name:        "suggest_captain",
		Description: "Starting XI ranked as captain options with confidence and reasoning",
	}, t.SuggestCaptain)
	addTool(t, server, &mcp.Tool{
		Name:        "chip_strategy",
		Description: "Remaining chips and the gameweeks to play them",
	}, t.ChipStrategy)
	addTool(t, server, &mcp.Tool{
		Name:        "live_gameweek",
		Description: "Manager's live points, top performers and scores for the gameweek in progress",
	}, t.LiveGameweek)
	addTool(t, server, &mcp.Tool{
		Name:        "fixture_planner",
		Description: "Every team's upcoming fixture difficulty run",
	}, t.FixturePlanner)
	addTool(t, server, &mcp.Tool{
		Name:        "search_players",
		Description: "Fuzzy player name search",
	}, t.SearchPlayers)

	return server
}

func addTool[T any](t *Toolset, server *mcp.Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	t.tools = append(t.tools, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func entryArgs(args EntryArgs) (models.GameweekSelector, error) {
	if args.EntryID <= 0 {
		return models.GameweekSelector{}, fmt.Errorf("entry_id is required")
	}
	return models.ParseGameweekSelector(args.Event)
}

func (t *Toolset) GetLineup(ctx context.Context, _ *mcp.CallToolRequest, args EntryArgs) (*mcp.CallToolResult, any, error) {
	sel, err := entryArgs(args)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(t.svc.Advisor.GetLineup(ctx, args.EntryID, sel))
}

func (t *Toolset) SuggestTransfers(ctx context.Context, _ *mcp.CallToolRequest, args EntryArgs) (*mcp.CallToolResult, any, error) {
	sel, err := entryArgs(args)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(t.svc.Advisor.SuggestTransfers(ctx, args.EntryID, sel))
}

func (t *Toolset) SuggestCaptain(ctx context.Context, _ *mcp.CallToolRequest, args EntryArgs) (*mcp.CallToolResult, any, error) {
	sel, err := entryArgs(args)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(t.svc.Advisor.SuggestCaptain(ctx, args.EntryID, sel))
}

func (t *Toolset) ChipStrategy(ctx context.Context, _ *mcp.CallToolRequest, args ChipArgs) (*mcp.CallToolResult, any, error) {
	if args.EntryID <= 0 {
		return toolError(fmt.Errorf("entry_id is required")), nil, nil
	}
	return toolJSON(t.svc.Squads.ChipStrategy(ctx, args.EntryID))
}

func (t *Toolset) LiveGameweek(ctx context.Context, _ *mcp.CallToolRequest, args ChipArgs) (*mcp.CallToolResult, any, error) {
	if args.EntryID <= 0 {
		return toolError(fmt.Errorf("entry_id is required")), nil, nil
	}
	return toolJSON(t.svc.Live.LiveGameweek(ctx, args.EntryID))
}

func (t *Toolset) FixturePlanner(ctx context.Context, _ *mcp.CallToolRequest, args PlannerArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.svc.Fixtures.Planner(ctx, args.Horizon))
}

func (t *Toolset) SearchPlayers(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	q := strings.TrimSpace(args.Query)
	if len(q) < 2 {
		return toolError(fmt.Errorf("query must be at least 2 characters")), nil, nil
	}
	var pos models.Position
	if args.Position != "" {
		if pos = scoring.NormalizePosition(args.Position); pos == models.PositionUnknown {
			return toolError(fmt.Errorf("unknown position %q", args.Position)), nil, nil
		}
	}
	return toolJSON(t.svc.Insights.SearchPlayers(ctx, q, pos, args.Limit))
}

// toolJSON renders a service result as indented JSON text. Service errors
// become tool errors so the model sees them instead of a protocol failure.
func toolJSON(res any, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}

// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate with: swag init -g cmd/server/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["System"], "summary": "Liveness check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["System"], "summary": "Readiness check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/api/v1/entries/{entryId}/lineup": {"get": {"tags": ["Entries"], "summary": "Get Lineup", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "entryId", "in": "path", "required": true}, {"type": "string", "name": "event", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/entries/{entryId}/transfers": {"get": {"tags": ["Entries"], "summary": "Suggest Transfers", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "entryId", "in": "path", "required": true}, {"type": "string", "name": "event", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/entries/{entryId}/captain": {"get": {"tags": ["Entries"], "summary": "Suggest Captain", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "entryId", "in": "path", "required": true}, {"type": "string", "name": "event", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/entries/{entryId}/chips": {"get": {"tags": ["Entries"], "summary": "Chip Strategy", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "entryId", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/entries/{entryId}/live": {"get": {"tags": ["Entries"], "summary": "Live Gameweek", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "entryId", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/players/differentials": {"get": {"tags": ["Players"], "summary": "Differentials", "produces": ["application/json"],
            "parameters": [{"type": "number", "name": "maxOwnership", "in": "query"}, {"type": "number", "name": "minForm", "in": "query"}, {"type": "number", "name": "maxPrice", "in": "query"}, {"type": "string", "name": "position", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/players/value": {"get": {"tags": ["Players"], "summary": "Value Picks", "produces": ["application/json"],
            "parameters": [{"type": "number", "name": "maxPrice", "in": "query"}, {"type": "string", "name": "position", "in": "query"}, {"type": "string", "name": "sortBy", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/players/prices": {"get": {"tags": ["Players"], "summary": "Price Movements", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/players/injuries": {"get": {"tags": ["Players"], "summary": "Injury News", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/players/transfers": {"get": {"tags": ["Players"], "summary": "Transfer Trends", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/players/{playerId}/photo": {"get": {"tags": ["Images"], "summary": "Player Photo", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "playerId", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/players/search": {"get": {"tags": ["Players"], "summary": "Search Players", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}, {"type": "string", "name": "position", "in": "query"}, {"type": "integer", "name": "limit", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/fixtures/planner": {"get": {"tags": ["Fixtures"], "summary": "Fixture Planner", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "horizon", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/fixtures/predictions": {"get": {"tags": ["Fixtures"], "summary": "Match Predictions", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "event", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/leagues/{leagueId}/standings": {"get": {"tags": ["Leagues"], "summary": "League Standings", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "leagueId", "in": "path", "required": true}, {"type": "integer", "name": "page", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/squad/optimal": {"get": {"tags": ["Squad"], "summary": "Optimal Squad", "produces": ["application/json"],
            "parameters": [{"type": "string", "name": "formation", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/v1/notifications": {"get": {"tags": ["Notifications"], "summary": "Notifications", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/teams/{teamId}/crest": {"get": {"tags": ["Images"], "summary": "Team Crest", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "teamId", "in": "path", "required": true}, {"type": "integer", "name": "size", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/api/v1/teams/{teamId}/kit": {"get": {"tags": ["Images"], "summary": "Team Kit", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "teamId", "in": "path", "required": true}, {"type": "boolean", "name": "gk", "in": "query"}, {"type": "integer", "name": "size", "in": "query"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "FPL Advisor API",
	Description:      "Lineup, transfer, captain and insight endpoints over public Fantasy Premier League data.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

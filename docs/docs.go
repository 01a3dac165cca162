// Package docs holds the Swagger document served under /swagger. It follows
// the handler annotations; regenerate it with `go generate` (swag init) after
// changing them. docs_test.go fails when a registered route is missing here.
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
        "/matches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Matches"],
                "summary": "List matches",
                "parameters": [
                    {"type": "string", "description": "upcoming, live, completed or cancelled", "name": "status", "in": "query"},
                    {"type": "string", "description": "Match type", "name": "match_type", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Per page", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Matches"],
                "summary": "Create a match",
                "parameters": [
                    {"description": "Match details", "name": "match", "in": "body", "required": true, "schema": {"$ref": "#/definitions/match.CreateMatchRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/match.MatchResponse"}},
                    "400": {"description": "Validation error"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/matches/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Matches"],
                "summary": "Get a match",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/match.MatchResponse"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Matches"],
                "summary": "Update a match",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "match", "in": "body", "required": true, "schema": {"$ref": "#/definitions/match.UpdateMatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/match.MatchResponse"}},
                    "400": {"description": "Validation error"},
                    "403": {"description": "Forbidden"},
                    "409": {"description": "MatchNotEditable or Conflict"}
                }
            }
        },
        "/matches/{id}/postpone": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Matches"],
                "summary": "Postpone a match",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true},
                    {"description": "New schedule", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/match.RescheduleMatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/match.MatchResponse"}},
                    "409": {"description": "MatchNotEditable"}
                }
            }
        },
        "/matches/{id}/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roster"],
                "summary": "Join a match",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true},
                    {"description": "Team and position", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/match.JoinMatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "TeamFull, PositionTaken, AlreadyJoined or MatchNotJoinable"}
                }
            }
        },
        "/matches/{id}/leave": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roster"],
                "summary": "Leave a match",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/matches/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Lifecycle"],
                "summary": "Cancel a match",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "409": {"description": "InvalidTransition"}
                }
            }
        },
        "/matches/{id}/start": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Lifecycle"],
                "summary": "Start a match",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "InvalidTransition"}}
            }
        },
        "/matches/{id}/complete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Lifecycle"],
                "summary": "Complete a match",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "InvalidTransition"}}
            }
        },
        "/matches/{id}/teams": {
            "get": {
                "tags": ["Roster"],
                "summary": "List teams",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Roster"],
                "summary": "Add a team",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "CapacityExceeded"}}
            }
        },
        "/matches/{id}/teams/{team_id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Roster"],
                "summary": "Rename a team",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Team ID", "name": "team_id", "in": "path", "required": true},
                    {"description": "Team", "name": "team", "in": "body", "required": true, "schema": {"$ref": "#/definitions/match.UpdateTeamRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/matches/{id}/teams/{team_id}/participants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Roster"],
                "summary": "List team participants",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Team ID", "name": "team_id", "in": "path", "required": true},
                    {"type": "boolean", "description": "Include players who left", "name": "include_inactive", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/matches/{id}/umpires": {
            "get": {
                "tags": ["Umpires"],
                "summary": "List umpires",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Umpires"],
                "summary": "Add an umpire",
                "parameters": [{"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/matches/{id}/umpires/{umpire_id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Umpires"],
                "summary": "Update an umpire",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Umpire ID", "name": "umpire_id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "umpire", "in": "body", "required": true, "schema": {"$ref": "#/definitions/match.UpdateUmpireRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Umpires"],
                "summary": "Remove an umpire",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Umpire ID", "name": "umpire_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/teams/{team_id}/reconcile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Reconcile team counter",
                "parameters": [{"type": "integer", "description": "Team ID", "name": "team_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/venues": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["venues"],
                "summary": "Create a new venue",
                "responses": {"201": {"description": "Venue created successfully"}, "409": {"description": "Venue already exists"}}
            }
        },
        "/venues": {
            "get": {
                "tags": ["venues"],
                "summary": "List venues",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "match.CreateMatchRequest": {
            "type": "object",
            "required": ["location", "match_date", "match_time", "match_type", "players_needed", "title"],
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 2000},
                "match_type": {"type": "string", "enum": ["friendly", "tournament", "league", "t20", "odi", "test", "practice"]},
                "location": {"type": "string"},
                "venue": {"type": "string"},
                "match_date": {"type": "string", "example": "2025-06-01"},
                "match_time": {"type": "string", "example": "15:30"},
                "players_needed": {"type": "integer", "maximum": 22, "minimum": 2},
                "entry_fee": {"type": "number", "minimum": 0},
                "is_public": {"type": "boolean"},
                "skill_level": {"type": "string"},
                "equipment_provided": {"type": "boolean"},
                "rules": {"type": "string"}
            }
        },
        "match.JoinMatchRequest": {
            "type": "object",
            "properties": {
                "team_id": {"type": "integer"},
                "position": {"type": "integer", "minimum": 1},
                "role": {"type": "string"}
            }
        },
        "match.UpdateMatchRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 200},
                "description": {"type": "string", "maxLength": 2000},
                "location": {"type": "string", "maxLength": 255},
                "venue": {"type": "string"},
                "match_date": {"type": "string", "example": "2025-06-01"},
                "match_time": {"type": "string", "example": "15:30"},
                "entry_fee": {"type": "number", "minimum": 0},
                "is_public": {"type": "boolean"},
                "skill_level": {"type": "string"},
                "equipment_provided": {"type": "boolean"},
                "rules": {"type": "string"}
            }
        },
        "match.RescheduleMatchRequest": {
            "type": "object",
            "required": ["match_date", "match_time"],
            "properties": {
                "match_date": {"type": "string", "example": "2025-06-01"},
                "match_time": {"type": "string", "example": "15:30"}
            }
        },
        "match.UpdateTeamRequest": {
            "type": "object",
            "required": ["team_name"],
            "properties": {
                "team_name": {"type": "string", "maxLength": 100}
            }
        },
        "match.UpdateUmpireRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "contact": {"type": "string"},
                "experience_level": {"type": "string"},
                "fee": {"type": "number", "minimum": 0}
            }
        },
        "match.MatchResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "slug": {"type": "string"},
                "title": {"type": "string"},
                "match_type": {"type": "string"},
                "match_date": {"type": "string"},
                "match_time": {"type": "string"},
                "players_needed": {"type": "integer"},
                "status": {"type": "string"},
                "version": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8088",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Pitchside REST API",
	Description:      "Cricket match scheduling and roster management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/tours": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Tours"],
                "summary": "List tours",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Tours", "schema": {"$ref": "#/definitions/types.PaginatedTours"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tours"],
                "summary": "Plan a foodie tour",
                "parameters": [
                    {"description": "Cities and optional weather", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.PlanTourRequest"}}
                ],
                "responses": {
                    "201": {"description": "Planned tour", "schema": {"$ref": "#/definitions/types.Tour"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.Response"}},
                    "503": {"description": "Generation Unavailable", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/tours/extract": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tours"],
                "summary": "Extract tours from a narrative",
                "parameters": [
                    {"description": "Narrative and ordered cities", "name": "document", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.NarrativeDocument"}}
                ],
                "responses": {
                    "200": {"description": "Extracted tours", "schema": {"$ref": "#/definitions/types.ExtractToursResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/tours/{tourID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Tours"],
                "summary": "Get a tour",
                "parameters": [{"type": "string", "description": "Tour ID", "name": "tourID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Tour", "schema": {"$ref": "#/definitions/types.Tour"}},
                    "404": {"description": "Tour Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/tours/{tourID}/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Tours"],
                "summary": "Export a tour",
                "parameters": [{"type": "string", "description": "Tour ID", "name": "tourID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Tour export", "schema": {"$ref": "#/definitions/types.TourExport"}},
                    "404": {"description": "Tour Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        }
    },
    "definitions": {
        "types.NarrativeDocument": {
            "type": "object",
            "properties": {
                "narrative": {"type": "string"},
                "cities": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.Itinerary": {
            "type": "object",
            "properties": {
                "morning": {"type": "array", "items": {"type": "string"}},
                "lunch": {"type": "array", "items": {"type": "string"}},
                "dinner": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ExtractionWarning": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "detail": {"type": "string"}
            }
        },
        "types.CityRecord": {
            "type": "object",
            "properties": {
                "dishes": {"type": "array", "items": {"type": "string"}},
                "restaurants": {"type": "array", "items": {"type": "string"}},
                "itinerary": {"$ref": "#/definitions/types.Itinerary"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/types.ExtractionWarning"}}
            }
        },
        "types.CityRecords": {
            "type": "object",
            "additionalProperties": {"$ref": "#/definitions/types.CityRecord"}
        },
        "types.ExtractToursResponse": {
            "type": "object",
            "properties": {
                "tours": {"$ref": "#/definitions/types.CityRecords"}
            }
        },
        "types.TokenUsage": {
            "type": "object",
            "properties": {
                "completion_tokens": {"type": "integer"},
                "prompt_tokens": {"type": "integer"},
                "total_tokens": {"type": "integer"}
            }
        },
        "types.Weather": {
            "type": "object",
            "properties": {
                "condition": {"type": "string"},
                "description": {"type": "string"},
                "temp_c": {"type": "number"}
            }
        },
        "types.PlanTourRequest": {
            "type": "object",
            "properties": {
                "cities": {"type": "array", "items": {"type": "string"}},
                "weather": {"type": "object", "additionalProperties": {"$ref": "#/definitions/types.Weather"}}
            }
        },
        "types.Tour": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cities": {"type": "array", "items": {"type": "string"}},
                "tours": {"$ref": "#/definitions/types.CityRecords"},
                "created_at": {"type": "string"},
                "usage": {"$ref": "#/definitions/types.TokenUsage"},
                "narrative": {"type": "string"}
            }
        },
        "types.TourExport": {
            "type": "object",
            "properties": {
                "cities": {"type": "array", "items": {"type": "string"}},
                "tours": {"$ref": "#/definitions/types.CityRecords"},
                "created_at": {"type": "string"},
                "usage": {"$ref": "#/definitions/types.TokenUsage"}
            }
        },
        "types.TourSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cities": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"},
                "usage": {"$ref": "#/definitions/types.TokenUsage"}
            }
        },
        "types.PaginatedTours": {
            "type": "object",
            "properties": {
                "tours": {"type": "array", "items": {"$ref": "#/definitions/types.TourSummary"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"}
            }
        },
        "types.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "request_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Foodie Tour API",
	Description:      "Plans multi-city foodie tours and extracts dishes, restaurants and itineraries from tour narratives.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Attendance Admin Console",
        "description": "Local console mirroring the attendance backend's admin, help, profile, course and student-share state",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "State", "description": "Store snapshots, retries and error reset"},
        {"name": "Observability", "description": "Liveness, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Observability"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Observability"],
                "summary": "Readiness check covering state storage and the backend",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Observability"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/session": {
            "get": {
                "tags": ["State"],
                "summary": "Describe the stored session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No stored token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/metrics": {
            "get": {
                "tags": ["Observability"],
                "summary": "Console counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/state": {
            "get": {
                "tags": ["State"],
                "summary": "List addressable slices",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/state/{store}": {
            "get": {
                "tags": ["State"],
                "summary": "Snapshot every slice of a store",
                "parameters": [
                    {"name": "store", "in": "path", "required": true, "type": "string", "enum": ["admin", "help", "profile", "course", "share"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown store", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/refresh/{slice}": {
            "post": {
                "tags": ["State"],
                "summary": "Re-run the fetch behind a slice",
                "parameters": [
                    {"name": "slice", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "severity", "in": "query", "type": "string"},
                    {"name": "userId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Store snapshot after the refresh", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid parameters", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "No stored token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Backend unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/errors/{slice}": {
            "delete": {
                "tags": ["State"],
                "summary": "Clear a slice's error",
                "parameters": [
                    {"name": "slice", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Cleared"},
                    "404": {"description": "Unknown slice", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "currentPage": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "totalItems": {"type": "integer"},
                "hasNext": {"type": "boolean"},
                "hasPrev": {"type": "boolean"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

// Package docs holds the OpenAPI description served at /swagger.
//
// This file is maintained by hand, not generated by swag init. Keep it in
// step with the swag annotations on the handlers in internal/handler and
// with the general API info in cmd/server/main.go.
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
        "/validate": {
            "post": {
                "description": "Parse a raw TISS XML guide and return its findings, risk score and derived status.",
                "consumes": ["application/xml"],
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "Validate a guide without storing it",
                "parameters": [
                    {"description": "TISS guide XML", "name": "document", "in": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "Validation outcome", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Empty body", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "Document too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/rules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "List validation rules",
                "responses": {
                    "200": {"description": "Rule catalogue", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/submissions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "List submissions",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Limit for pagination (max 100)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Filter by status", "name": "status", "in": "query"},
                    {"type": "string", "description": "Filter by payer code", "name": "payer_code", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "List of submissions", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid status filter", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            },
            "post": {
                "description": "Register a new guide batch. It starts in needs_review until validated.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Create a submission",
                "parameters": [
                    {"description": "Submission details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateSubmissionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Submission created", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/submissions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Get submission by ID",
                "parameters": [
                    {"type": "string", "description": "Submission ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Submission details", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Submission not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/submissions/{id}/status": {
            "put": {
                "description": "Manual lifecycle transition, e.g. to submitted, approved or denied.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Change submission status",
                "parameters": [
                    {"type": "string", "description": "Submission ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated submission", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID or status", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Submission not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/submissions/{id}/validate": {
            "post": {
                "description": "Parse the XML, replace stored findings and guide, and recompute risk and status.",
                "consumes": ["application/xml"],
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "Validate a submission's guide",
                "parameters": [
                    {"type": "string", "description": "Submission ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "TISS guide XML", "name": "document", "in": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "Validation results", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Submission not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "413": {"description": "Document too large", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/submissions/{id}/validation": {
            "get": {
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "Get stored validation results",
                "parameters": [
                    {"type": "string", "description": "Submission ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Validation results", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Submission not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/submissions/{id}/guide": {
            "patch": {
                "description": "Apply manual corrections and revalidate only the changed fields.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["validation"],
                "summary": "Correct guide fields",
                "parameters": [
                    {"type": "string", "description": "Submission ID (UUID)", "name": "id", "in": "path", "required": true},
                    {"description": "Field path to new value", "name": "request", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                ],
                "responses": {
                    "200": {"description": "Updated validation results", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid ID, body or field", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "404": {"description": "Submission or guide not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "handler.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handler.CreateSubmissionRequest": {
            "type": "object",
            "required": ["payer_code"],
            "properties": {
                "batch_number": {"type": "string", "example": "LOTE-2024-0001"},
                "notes": {"type": "string"},
                "origin": {"type": "string", "enum": ["xml", "ocr"], "example": "xml"},
                "payer_code": {"type": "string", "example": "123456"}
            }
        },
        "handler.UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["ready", "needs_review", "critical", "submitted", "approved", "denied"]}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {"limit": {"type": "integer"}, "offset": {"type": "integer"}, "total": {"type": "integer"}}
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "GlosaGuard API",
	Description:      "TISS billing guide validation and denial risk scoring.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs registers the OpenAPI description of the agency API with
// swag so the Swagger UI under /swagger/ can serve it. Keep it in sync with
// the handler annotations (swag init -g cmd/api/main.go regenerates it).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/token": {
            "post": {
                "tags": ["auth"], "summary": "Obtain a bearer token",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.tokenResponse"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/respond.ErrorBody"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/respond.ErrorBody"}}
                }
            }
        },
        "/topics": {
            "get": {
                "tags": ["topics"], "summary": "List topics",
                "parameters": [
                    {"type": "string", "name": "name", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid page"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["topics"], "summary": "Create a topic",
                "parameters": [{"in": "body", "name": "topic", "required": true, "schema": {"$ref": "#/definitions/topic.writeRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/topic.DTO"}},
                    "400": {"description": "Validation failed"}, "401": {"description": "Authentication required"}, "403": {"description": "Forbidden"}
                }
            }
        },
        "/topics/{id}": {
            "get": {
                "tags": ["topics"], "summary": "Get a topic",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/topic.DTO"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["topics"], "summary": "Update a topic",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "topic", "required": true, "schema": {"$ref": "#/definitions/topic.writeRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["topics"], "summary": "Delete a topic and its newspapers",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content", "headers": {"X-Deleted-Newspapers": {"type": "integer"}}},
                    "401": {"description": "Authentication required"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}
                }
            }
        },
        "/newspapers": {
            "get": {
                "tags": ["newspapers"], "summary": "List newspapers",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "topic_id", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid page or topic_id"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["newspapers"], "summary": "Create a newspaper",
                "parameters": [{"in": "body", "name": "newspaper", "required": true, "schema": {"$ref": "#/definitions/newspaper.writeRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/newspaper.DTO"}},
                    "400": {"description": "Validation failed"}, "401": {"description": "Authentication required"}
                }
            }
        },
        "/newspapers/{id}": {
            "get": {
                "tags": ["newspapers"], "summary": "Get a newspaper",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/newspaper.DTO"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["newspapers"], "summary": "Update a newspaper (publishers only)",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "newspaper", "required": true, "schema": {"$ref": "#/definitions/newspaper.writeRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "403": {"description": "Not a publisher"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["newspapers"], "summary": "Delete a newspaper",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Authentication required"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}
            }
        },
        "/redactors": {
            "get": {
                "tags": ["redactors"], "summary": "List redactors",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid page"}}
            },
            "post": {
                "tags": ["redactors"], "summary": "Register a redactor",
                "parameters": [{"in": "body", "name": "redactor", "required": true, "schema": {"$ref": "#/definitions/redactor.registerRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}, "403": {"description": "Forbidden"}}
            }
        },
        "/redactors/{id}": {
            "get": {
                "tags": ["redactors"], "summary": "Get a redactor with their newspapers",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["redactors"], "summary": "Update your own profile",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation failed"}, "403": {"description": "Not your profile"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["redactors"], "summary": "Delete a redactor",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Authentication required"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}
            }
        }
    },
    "definitions": {
        "auth.loginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "auth.tokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "expires_at": {"type": "string"}, "redactor_id": {"type": "integer"}}
        },
        "respond.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "topic.DTO": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "topic.writeRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
        },
        "newspaper.DTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "title": {"type": "string"}, "content": {"type": "string"},
                "published_date": {"type": "string"}, "topic_id": {"type": "integer"},
                "publishers": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "newspaper.writeRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"}, "content": {"type": "string"}, "topic_id": {"type": "integer"},
                "publishers": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "redactor.registerRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"}, "password": {"type": "string"}, "password_confirm": {"type": "string"},
                "first_name": {"type": "string"}, "last_name": {"type": "string"}, "email": {"type": "string"},
                "years_of_experience": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Newspaper Agency API",
	Description:      "Topics, newspapers and the redactors who publish them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

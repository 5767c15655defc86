// Package docs registers the OpenAPI description of the SkillHub API with swag.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "400": {"description": "Missing field, malformed email or email already exists", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthResponse"}},
                    "400": {"description": "Missing field or malformed email", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Invalid email or password", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/update": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Update profile",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ProfileResponse"}},
                    "400": {"description": "Malformed email or email already exists", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/auth/password": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change password",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password updated", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "400": {"description": "Missing field", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Current password is incorrect", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/progress": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Get completed steps",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ProgressResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/progress/toggle": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Toggle a step",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ToggleStepRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ProgressResponse"}},
                    "400": {"description": "Malformed body or missing stepId", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/content/roadmaps": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List roadmaps",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Content"}}}
                }
            }
        },
        "/content/learning": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List learning items",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Content"}}}
                }
            }
        },
        "/content/reviews": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List reviews",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Review"}}}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "models.RegisterRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "models.UpdateProfileRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "models.ChangePasswordRequest": {
            "type": "object",
            "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string"}}
        },
        "models.ProfileResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "completedSteps": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.AuthResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "completedSteps": {"type": "array", "items": {"type": "string"}},
                "token": {"type": "string"}
            }
        },
        "models.ToggleStepRequest": {
            "type": "object",
            "properties": {"stepId": {"type": "string", "example": "roadmap-web-1"}}
        },
        "models.ProgressResponse": {
            "type": "object",
            "properties": {"completedSteps": {"type": "array", "items": {"type": "string"}}}
        },
        "models.Link": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "url": {"type": "string"}}
        },
        "models.Step": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "resources": {"type": "array", "items": {"$ref": "#/definitions/models.Link"}},
                "assignments": {"type": "array", "items": {"$ref": "#/definitions/models.Link"}}
            }
        },
        "models.Content": {
            "type": "object",
            "properties": {
                "roadmapId": {"type": "string"},
                "learningId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "icon": {"type": "string"},
                "steps": {"type": "array", "items": {"$ref": "#/definitions/models.Step"}}
            }
        },
        "models.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "img": {"type": "string"},
                "course": {"type": "string"},
                "quote": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SkillHub API",
	Description:      "Learning roadmaps, authentication and step-completion tracking",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

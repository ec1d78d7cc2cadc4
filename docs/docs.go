// Package docs registers the OpenAPI document served at /swagger/doc.json
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/register": {"post": {"summary": "Create a student account", "tags": ["auth"], "responses": {"201": {"description": "token and user"}, "400": {"description": "invalid input"}, "409": {"description": "email already registered"}}}},
        "/auth/login": {"post": {"summary": "Log in with email and password", "tags": ["auth"], "responses": {"200": {"description": "token and user"}, "401": {"description": "invalid credentials"}}}},
        "/exams/available": {"get": {"summary": "Catalog with live question availability", "tags": ["exams"], "responses": {"200": {"description": "templates with status complete, partial or unavailable"}}}},
        "/exams/{templateId}/start": {"post": {"summary": "Assemble an exam", "tags": ["exams"], "security": [{"BearerAuth": []}], "parameters": [{"name": "templateId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "sanitized questions"}, "404": {"description": "unknown template"}, "422": {"description": "not enough questions, choose a smaller exam"}, "503": {"description": "question store unavailable"}}}},
        "/exams/{templateId}/finish": {"post": {"summary": "Grade a submission", "tags": ["exams"], "security": [{"BearerAuth": []}], "parameters": [{"name": "templateId", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "grading result"}, "404": {"description": "unknown template or user"}}}},
        "/users/me": {"get": {"summary": "Current user profile", "tags": ["users"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "user"}}}},
        "/users/me/history": {"get": {"summary": "Finished exams, newest first", "tags": ["users"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "exam records"}}}},
        "/ranking": {"get": {"summary": "Global or per-template leaderboard", "tags": ["ranking"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "ranking entries"}}}},
        "/questions": {"post": {"summary": "Submit a question for review", "tags": ["questions"], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "stored question"}, "400": {"description": "invalid question"}}}},
        "/admin/questions": {"get": {"summary": "List the question bank", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "questions"}}}},
        "/admin/questions/{id}/approve": {"post": {"summary": "Approve a question", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "question"}}}},
        "/admin/questions/{id}/reject": {"post": {"summary": "Reject a question", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "question"}}}},
        "/admin/ranking/rebuild": {"post": {"summary": "Rebuild the global leaderboard", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "number of ranked users"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Desafia Brasil API",
	Description:      "ENEM and vestibular practice exams: assembly, grading, ranking and moderation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/analyze": {"post": {"tags": ["Threats"], "summary": "Analyze a traffic flow", "security": [{"BearerAuth": []}], "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/threat.FeatureRecord"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/alert.AlertSummary"}}, "400": {"description": "Invalid input"}, "401": {"description": "Unauthorized"}, "503": {"description": "Model unavailable"}}}},
        "/alerts": {"get": {"tags": ["Alerts"], "summary": "List alerts", "security": [{"BearerAuth": []}], "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "Maximum alerts (default 50)", "name": "limit", "in": "query"}],
            "responses": {"200": {"description": "OK"}}}},
        "/alerts/summary": {"get": {"tags": ["Alerts"], "summary": "Alert summary", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/alerts/{id}": {"get": {"tags": ["Alerts"], "summary": "Get alert by ID", "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Alert not found"}}}},
        "/logs": {"get": {"tags": ["Alerts"], "summary": "Security event feed", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/subscribe": {"post": {"tags": ["Newsletter"], "summary": "Subscribe to the newsletter", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"type": "object", "properties": {"email": {"type": "string"}}}}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}}}},
        "/stats": {"get": {"tags": ["Stats"], "summary": "Dashboard stats", "security": [{"BearerAuth": []}], "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/remediations": {"get": {"tags": ["Remediation"], "summary": "List remediation tasks", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/remediations/execute": {"post": {"tags": ["Remediation"], "summary": "Run a simulated playbook", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/remediations/{id}/action": {"post": {"tags": ["Remediation"], "summary": "Perform remediation action", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true},
                {"in": "body", "name": "request", "required": true, "schema": {"type": "object", "properties": {"action": {"type": "string", "enum": ["Approve", "Retry", "Rollback", "Stop"]}}}}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown action"}, "404": {"description": "Alert not found"}}}},
        "/auth/register": {"post": {"tags": ["Auth"], "summary": "User registration", "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["Auth"], "summary": "User login", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/refresh": {"post": {"tags": ["Auth"], "summary": "Refresh access token", "responses": {"200": {"description": "OK"}}}},
        "/users/me/preferences": {
            "get": {"tags": ["Users"], "summary": "Get notification preferences", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Users"], "summary": "Update notification preferences", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}}
    },
    "definitions": {
        "threat.FeatureRecord": {"type": "object", "required": ["srcip"], "properties": {
            "srcip": {"type": "string"}, "srcport": {"type": "integer"}, "dstip": {"type": "string"}, "dstport": {"type": "integer"},
            "proto": {"type": "string"}, "service": {"type": "string"}, "duration": {"type": "number"}, "bytes": {"type": "integer"}, "packets": {"type": "integer"}}},
        "alert.AlertSummary": {"type": "object", "properties": {
            "id": {"type": "integer"}, "is_threat": {"type": "boolean"}, "confidence": {"type": "number"},
            "severity": {"type": "string", "enum": ["Critical", "High", "Medium", "Low"]}, "timestamp": {"type": "string", "format": "date-time"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ThreatWatch API",
	Description:      "Network threat classification, alerting and remediation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

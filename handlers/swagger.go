package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>manosay API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "manosay", "version": "v1.0.0" },
  "paths": {
    "/api/contact": {
      "post": {
        "summary": "Send a contact form message",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","subject","message"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"subject":{"type":"string"},"message":{"type":"string"}}}}}},
        "responses": { "200": { "description": "message relayed" }, "400": { "description": "invalid input" }, "500": { "description": "relay failed" } }
      }
    },
    "/api/request-quote": {
      "get": { "summary": "Quote request form", "responses": { "200": { "description": "HTML form" } } },
      "post": {
        "summary": "Submit a quote request",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"company":{"type":"string"},"platform":{"type":"string"},"budget":{"type":"string"},"timeline":{"type":"string"},"message":{"type":"string"}}}}}},
        "responses": { "201": { "description": "lead stored" }, "400": { "description": "invalid input" }, "503": { "description": "store unavailable" } }
      }
    },
    "/api/register": {
      "post": {
        "summary": "Register an account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","password"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"password":{"type":"string","minLength":6}}}}}},
        "responses": { "201": { "description": "account created" }, "409": { "description": "email already registered" } }
      }
    },
    "/api/login": {
      "post": {
        "summary": "Exchange credentials for a bearer token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email","password"],"properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token returned" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/health": { "get": { "summary": "Store connectivity", "responses": { "200": { "description": "healthy or degraded" } } } },
    "/admin/upload-image": {
      "post": {
        "summary": "Upload a post image (admin session cookie)",
        "requestBody": { "content": { "multipart/form-data": { "schema": {"type":"object","properties":{"file":{"type":"string","format":"binary"}}}}}},
        "responses": { "200": { "description": "public URL" }, "401": { "description": "not authenticated" }, "413": { "description": "file too large" } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`

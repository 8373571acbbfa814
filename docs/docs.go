// Package docs registers the OpenAPI document served at /swagger/*.
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
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        },
        "/v1/carriers/{carrier_id}/cache": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["carriers"],
                "summary": "Drop cached configuration for a carrier",
                "parameters": [
                    {"type": "string", "description": "Carrier identifier", "name": "carrier_id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/rates/shop": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Prices the shipment for each requested carrier (all enabled carriers when carrier_ids is empty). One carrier's failure is reported on its entry and never fails the whole request.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Quote a shipment across carriers",
                "parameters": [
                    {"description": "Shipment description and optional carrier ids", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.shopRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.shopResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/v1/rates/{carrier_id}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Computes shipment metrics, checks the carrier's eligibility rules, selects the best rate card and returns an itemised quote. Ineligible shipments return 200 with eligible=false and the reasons.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Quote a shipment for one carrier",
                "parameters": [
                    {"type": "string", "description": "Carrier identifier", "name": "carrier_id", "in": "path", "required": true},
                    {"description": "Shipment description", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.shipmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.rateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.coordinatesRequest": {
            "type": "object",
            "properties": {"lat": {"type": "number"}, "lng": {"type": "number"}}
        },
        "handler.addressRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "city": {"type": "string"},
                "postal_code": {"type": "string"},
                "province": {"type": "string"},
                "country": {"type": "string"},
                "coordinates": {"$ref": "#/definitions/handler.coordinatesRequest"}
            }
        },
        "handler.packageRequest": {
            "type": "object",
            "properties": {
                "weight": {"type": "number"},
                "length": {"type": "number"},
                "width": {"type": "number"},
                "height": {"type": "number"},
                "quantity": {"type": "integer"}
            }
        },
        "handler.shipmentRequest": {
            "type": "object",
            "required": ["packages"],
            "properties": {
                "packages": {"type": "array", "items": {"$ref": "#/definitions/handler.packageRequest"}},
                "origin": {"$ref": "#/definitions/handler.addressRequest"},
                "destination": {"$ref": "#/definitions/handler.addressRequest"},
                "unit_system": {"type": "string", "enum": ["imperial", "metric"]},
                "service_level": {"type": "string"},
                "shipment_type": {"type": "string", "enum": ["courier", "ltl"]},
                "additional_services": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.shopRequest": {
            "allOf": [
                {"$ref": "#/definitions/handler.shipmentRequest"},
                {"type": "object", "properties": {"carrier_ids": {"type": "array", "items": {"type": "string"}}}}
            ]
        },
        "handler.rateResponse": {
            "type": "object",
            "properties": {
                "quote_id": {"type": "string"},
                "carrier": {"type": "object"},
                "eligible": {"type": "boolean"},
                "reasons": {"type": "array", "items": {"type": "string"}},
                "rate_card": {"type": "object"},
                "metrics": {"type": "object"},
                "result": {"type": "object"},
                "calculated_at": {"type": "string"}
            }
        },
        "handler.shopResponse": {
            "type": "object",
            "properties": {
                "quote_id": {"type": "string"},
                "calculated_at": {"type": "string"},
                "cheapest_carrier_id": {"type": "string"},
                "quotes": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {"type": "object"}
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
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Carrier Rating API",
	Description:      "Prices shipments against carrier rate cards and eligibility rules.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

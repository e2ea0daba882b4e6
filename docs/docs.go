package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Returns the health status of the service",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/admin/analytics/quality": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Record counts, duplicates, missing values per column and the time range of the loaded dataset",
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Data quality report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QualityResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/analytics/{artifact}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Computes one aggregate table over the loaded dataset",
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Aggregate table",
                "parameters": [
                    {
                        "enum": ["hourly_metrics", "geographic_metrics", "peak_hours", "vehicle_type", "surge_analysis"],
                        "type": "string",
                        "description": "Artifact name",
                        "name": "artifact",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TableResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/pipeline/load": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Re-reads the configured record source and replaces the in-memory dataset",
                "produces": ["application/json"],
                "tags": ["Pipeline"],
                "summary": "Reload the source",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoadResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/admin/pipeline/run": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Loads the source if needed, computes every artifact and writes them to output_dir",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pipeline"],
                "summary": "Run the pipeline",
                "parameters": [
                    {
                        "description": "Output directory override",
                        "name": "request",
                        "in": "body",
                        "schema": {"$ref": "#/definitions/dto.RunPipelineRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RunPipelineResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/ws/pipeline": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Websocket stream of load_started, loaded, exported and failed events",
                "tags": ["Pipeline"],
                "summary": "Pipeline events",
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "dto.MissingValue": {
            "type": "object",
            "properties": {
                "column": {"type": "string"},
                "missing": {"type": "integer"}
            }
        },
        "dto.QualityResponse": {
            "type": "object",
            "properties": {
                "total_records": {"type": "integer"},
                "duplicates": {"type": "integer"},
                "missing_values": {"type": "array", "items": {"$ref": "#/definitions/dto.MissingValue"}},
                "min_timestamp": {"type": "string", "format": "date-time", "x-nullable": true},
                "max_timestamp": {"type": "string", "format": "date-time", "x-nullable": true},
                "completion_rate": {"type": "number", "x-nullable": true},
                "generated_at": {"type": "string", "format": "date-time"}
            }
        },
        "dto.TableResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "row_count": {"type": "integer"},
                "rows": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "dto.LoadResponse": {
            "type": "object",
            "properties": {
                "source": {"type": "string"},
                "row_count": {"type": "integer"},
                "loaded_at": {"type": "string", "format": "date-time"}
            }
        },
        "dto.RunPipelineRequest": {
            "type": "object",
            "properties": {
                "output_dir": {"type": "string", "maxLength": 1024}
            }
        },
        "dto.RunPipelineResponse": {
            "type": "object",
            "properties": {
                "output_dir": {"type": "string"},
                "outputs": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfoanalytics holds exported Swagger Info so clients can modify it
var SwaggerInfoanalytics = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ride Analytics API",
	Description:      "Admin API of the ride analytics engine: data quality report, aggregate tables, pipeline runs and a websocket stream of pipeline events.",
	InfoInstanceName: "analytics",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfoanalytics.InstanceName(), SwaggerInfoanalytics)
}

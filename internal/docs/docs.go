// Package docs registers the OpenAPI document served under /api-docs.
// Keep it in sync with the godoc annotations in internal/handler.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/api/proveedores": {
            "get": {
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Listar proveedores",
                "parameters": [
                    {"type": "integer", "description": "Página (≥1, por defecto 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Tamaño de página (por defecto 50)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProveedorListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Crear proveedor",
                "parameters": [
                    {"description": "Datos del proveedor", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/dto.CrearProveedorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProveedorResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/proveedores/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Obtener proveedor",
                "parameters": [{"type": "string", "description": "ID del proveedor", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProveedorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Actualizar proveedor",
                "description": "Reemplaza cada campo presente en el cuerpo; los ausentes se conservan.",
                "parameters": [
                    {"type": "string", "description": "ID del proveedor", "name": "id", "in": "path", "required": true},
                    {"description": "Campos a reemplazar", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/dto.ActualizarProveedorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProveedorResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Eliminar proveedor",
                "parameters": [{"type": "string", "description": "ID del proveedor", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MensajeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/proveedores/{id}/estadisticas": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Incrementar estadísticas",
                "parameters": [
                    {"type": "string", "description": "ID del proveedor", "name": "id", "in": "path", "required": true},
                    {"description": "Deltas", "name": "body", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/dto.IncrementarEstadisticasRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProveedorResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/proveedores/buscar/{termino}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Buscar proveedores",
                "parameters": [{"type": "string", "description": "Término de búsqueda", "name": "termino", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProveedorResponse"}}}
                }
            }
        },
        "/api/proveedores/estado/{estado}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Proveedores por estado",
                "parameters": [{"type": "string", "description": "ACTIVO, INACTIVO o SUSPENDIDO", "name": "estado", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProveedorResponse"}}}
                }
            }
        },
        "/api/proveedores/entrega/{estadoEntrega}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["proveedores"],
                "summary": "Proveedores por estado de entrega",
                "parameters": [{"type": "string", "description": "p. ej. en-tiempo, RETRASADO", "name": "estadoEntrega", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProveedorResponse"}}}
                }
            }
        }
    },
    "definitions": {
        "apierror.APIError": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "dto.Direccion": {
            "type": "object",
            "properties": {
                "calle": {"type": "string"},
                "ciudad": {"type": "string"},
                "estado": {"type": "string"},
                "pais": {"type": "string"},
                "codigoPostal": {"type": "string"}
            }
        },
        "dto.Contacto": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "cargo": {"type": "string"},
                "telefono": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "dto.CondicionesPago": {
            "type": "object",
            "properties": {
                "diasCredito": {"type": "integer"},
                "metodoPago": {"type": "string", "enum": ["CONTADO", "CREDITO", "TRANSFERENCIA", "CHEQUE"]}
            }
        },
        "dto.Estadisticas": {
            "type": "object",
            "properties": {
                "totalOrdenes": {"type": "integer"},
                "ordenesCompletadas": {"type": "integer"},
                "ordenesPendientes": {"type": "integer"},
                "montoTotal": {"type": "number"}
            }
        },
        "dto.CrearProveedorRequest": {
            "type": "object",
            "required": ["nombre", "ruc", "email"],
            "properties": {
                "nombre": {"type": "string"},
                "ruc": {"type": "string"},
                "email": {"type": "string"},
                "telefono": {"type": "string"},
                "direccion": {"$ref": "#/definitions/dto.Direccion"},
                "contacto": {"$ref": "#/definitions/dto.Contacto"},
                "categorias": {"type": "array", "items": {"type": "string"}},
                "calificacion": {"type": "number", "minimum": 0, "maximum": 5},
                "estado": {"type": "string", "enum": ["ACTIVO", "INACTIVO", "SUSPENDIDO"]},
                "estadoEntrega": {"type": "string", "enum": ["EN_TIEMPO", "RETRASADO", "ADELANTADO", "SIN_ENTREGAS"]},
                "condicionesPago": {"$ref": "#/definitions/dto.CondicionesPago"}
            }
        },
        "dto.ActualizarProveedorRequest": {
            "type": "object",
            "properties": {
                "nombre": {"type": "string"},
                "ruc": {"type": "string"},
                "email": {"type": "string"},
                "telefono": {"type": "string"},
                "direccion": {"$ref": "#/definitions/dto.Direccion"},
                "contacto": {"$ref": "#/definitions/dto.Contacto"},
                "categorias": {"type": "array", "items": {"type": "string"}},
                "calificacion": {"type": "number", "minimum": 0, "maximum": 5},
                "estado": {"type": "string", "enum": ["ACTIVO", "INACTIVO", "SUSPENDIDO"]},
                "estadoEntrega": {"type": "string", "enum": ["EN_TIEMPO", "RETRASADO", "ADELANTADO", "SIN_ENTREGAS"]},
                "condicionesPago": {"$ref": "#/definitions/dto.CondicionesPago"}
            }
        },
        "dto.IncrementarEstadisticasRequest": {
            "$ref": "#/definitions/dto.Estadisticas"
        },
        "dto.ProveedorResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "id": {"type": "string"},
                "nombre": {"type": "string"},
                "ruc": {"type": "string"},
                "email": {"type": "string"},
                "telefono": {"type": "string"},
                "direccion": {"$ref": "#/definitions/dto.Direccion"},
                "contacto": {"$ref": "#/definitions/dto.Contacto"},
                "categorias": {"type": "array", "items": {"type": "string"}},
                "calificacion": {"type": "number"},
                "estado": {"type": "string"},
                "estadoEntrega": {"type": "string"},
                "condicionesPago": {"$ref": "#/definitions/dto.CondicionesPago"},
                "estadisticas": {"$ref": "#/definitions/dto.Estadisticas"},
                "fechaRegistro": {"type": "string", "format": "date-time"},
                "ultimaActualizacion": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "dto.ProveedorListResponse": {
            "type": "object",
            "properties": {
                "proveedores": {"type": "array", "items": {"$ref": "#/definitions/dto.ProveedorResponse"}},
                "currentPage": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "totalItems": {"type": "integer"}
            }
        },
        "dto.MensajeResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "service": {"type": "string"},
                "store": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Proveedores API",
	Description:      "Catálogo de proveedores: CRUD, búsqueda, filtros por estado y estadísticas de órdenes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

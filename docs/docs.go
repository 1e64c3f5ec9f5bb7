// Package docs holds the OpenAPI document served under /swagger, built from
// the handler annotations. swag init -g cmd/api/main.go -o docs rewrites it.
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
        "/auth/crear-usuario": {
            "post": {
                "summary": "Create a user",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Datos del usuario",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.createUserRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "summary": "Login",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Credenciales",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.loginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "summary": "Logout",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "summary": "Current user",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/registro": {
            "post": {
                "summary": "Register a new user",
                "tags": [
                    "auth"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Datos del usuario",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.registerRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/auth/roles": {
            "get": {
                "summary": "List roles",
                "tags": [
                    "auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/beneficiarias": {
            "get": {
                "summary": "List beneficiaries",
                "tags": [
                    "beneficiarias"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a beneficiary",
                "tags": [
                    "beneficiarias"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "DPI front image",
                        "name": "dpi_frente",
                        "in": "formData",
                        "required": false,
                        "type": "file"
                    },
                    {
                        "description": "DPI back image",
                        "name": "dpi_reverso",
                        "in": "formData",
                        "required": false,
                        "type": "file"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/beneficiarias/recientes/lista": {
            "get": {
                "summary": "Recent beneficiaries",
                "tags": [
                    "beneficiarias"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/beneficiarias/{id}": {
            "get": {
                "summary": "Get a beneficiary",
                "tags": [
                    "beneficiarias"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Beneficiary ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a beneficiary",
                "tags": [
                    "beneficiarias"
                ],
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Beneficiary ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "DPI front image",
                        "name": "dpi_frente",
                        "in": "formData",
                        "required": false,
                        "type": "file"
                    },
                    {
                        "description": "DPI back image",
                        "name": "dpi_reverso",
                        "in": "formData",
                        "required": false,
                        "type": "file"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a beneficiary",
                "tags": [
                    "beneficiarias"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Beneficiary ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/beneficiarias/{id}/estado": {
            "patch": {
                "summary": "Change beneficiary status",
                "tags": [
                    "beneficiarias"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Beneficiary ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Nuevo estado",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.statusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/beneficiarias/{id}/imagen/{tipo}": {
            "get": {
                "summary": "DPI image",
                "tags": [
                    "beneficiarias"
                ],
                "produces": [
                    "octet-stream"
                ],
                "parameters": [
                    {
                        "description": "Beneficiary ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "frente or reverso",
                        "name": "tipo",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones": {
            "get": {
                "summary": "List trainings",
                "tags": [
                    "capacitaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a training",
                "tags": [
                    "capacitaciones"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Capacitación",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.capacitacionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones/{id}": {
            "get": {
                "summary": "Get a training",
                "tags": [
                    "capacitaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Training ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a training",
                "tags": [
                    "capacitaciones"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Training ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Capacitación",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.capacitacionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a training",
                "tags": [
                    "capacitaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Training ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones/{id}/beneficiarios": {
            "get": {
                "summary": "Linked beneficiaries or sectors",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones/{id}/beneficiarios-detalle": {
            "get": {
                "summary": "Linked beneficiaries with details",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones/{id}/beneficiarios/cantidad": {
            "get": {
                "summary": "Linked beneficiary count",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones/{id}/beneficiarios/{beneficiarioId}": {
            "post": {
                "summary": "Assign a beneficiary or sector",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Beneficiary ID",
                        "name": "beneficiarioId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones/{id}/estado": {
            "patch": {
                "summary": "Change training status",
                "tags": [
                    "capacitaciones"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Training ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Nuevo estado",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.statusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones/{id}/sectores": {
            "get": {
                "summary": "Linked beneficiaries or sectors",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/capacitaciones/{id}/sectores/{sectorId}": {
            "delete": {
                "summary": "Remove a beneficiary or sector",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Sector ID",
                        "name": "sectorId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/dashboard/actividad-reciente": {
            "get": {
                "summary": "Recent activity",
                "tags": [
                    "dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/dashboard/capacitaciones-estado": {
            "get": {
                "summary": "Trainings by status",
                "tags": [
                    "dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/dashboard/estadisticas": {
            "get": {
                "summary": "Dashboard counters",
                "tags": [
                    "dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/dashboard/proyectos-estado": {
            "get": {
                "summary": "Projects by status",
                "tags": [
                    "dashboard"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos": {
            "get": {
                "summary": "List projects",
                "tags": [
                    "proyectos"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a project",
                "tags": [
                    "proyectos"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Proyecto",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.proyectoRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos/{id}": {
            "get": {
                "summary": "Get a project",
                "tags": [
                    "proyectos"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Project ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a project",
                "tags": [
                    "proyectos"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Project ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Proyecto",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.proyectoRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a project",
                "tags": [
                    "proyectos"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Project ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos/{id}/beneficiarios": {
            "get": {
                "summary": "Linked beneficiaries or sectors",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos/{id}/beneficiarios-detalle": {
            "get": {
                "summary": "Linked beneficiaries with details",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos/{id}/beneficiarios/cantidad": {
            "get": {
                "summary": "Linked beneficiary count",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos/{id}/beneficiarios/{beneficiarioId}": {
            "post": {
                "summary": "Assign a beneficiary or sector",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Beneficiary ID",
                        "name": "beneficiarioId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos/{id}/estado": {
            "patch": {
                "summary": "Change project status",
                "tags": [
                    "proyectos"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Project ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Nuevo estado",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.statusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos/{id}/sectores": {
            "get": {
                "summary": "Linked beneficiaries or sectors",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/proyectos/{id}/sectores/{sectorId}": {
            "delete": {
                "summary": "Remove a beneficiary or sector",
                "tags": [
                    "asignaciones"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Sector ID",
                        "name": "sectorId",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/sectores": {
            "get": {
                "summary": "List sectors",
                "tags": [
                    "sectores"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "post": {
                "summary": "Create a sector",
                "tags": [
                    "sectores"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Sector",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.sectorRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/sectores/beneficiarios": {
            "get": {
                "summary": "Beneficiaries per sector",
                "tags": [
                    "sectores"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/sectores/{id}": {
            "get": {
                "summary": "Get a sector",
                "tags": [
                    "sectores"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Sector ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "put": {
                "summary": "Update a sector",
                "tags": [
                    "sectores"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Sector ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Sector",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.sectorRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            },
            "delete": {
                "summary": "Delete a sector",
                "tags": [
                    "sectores"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Sector ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        },
        "/sectores/{id}/estado": {
            "patch": {
                "summary": "Change sector status",
                "tags": [
                    "sectores"
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Sector ID",
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "description": "Nuevo estado",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handler.statusRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handler.Envelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "nombre": {
                    "type": "string"
                },
                "rol": {
                    "type": "string"
                },
                "usuario": {
                    "type": "string"
                }
            }
        },
        "handler.Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "type": "string"
                },
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                },
                "user": {
                    "$ref": "#/definitions/domain.User"
                }
            }
        },
        "handler.capacitacionRequest": {
            "type": "object",
            "properties": {
                "alcance": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "estado": {
                    "type": "string"
                },
                "fecha_fin": {
                    "type": "string"
                },
                "fecha_inicio": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                },
                "observaciones": {
                    "type": "string"
                },
                "poblacion_meta": {
                    "type": "string"
                },
                "recursos_economicos": {
                    "type": "string"
                },
                "recursos_materiales": {
                    "type": "string"
                },
                "tipo_capacitacion": {
                    "type": "string"
                }
            }
        },
        "handler.createUserRequest": {
            "type": "object",
            "properties": {
                "contrasena": {
                    "type": "string"
                },
                "id_rol": {
                    "type": "integer"
                },
                "id_usuario": {
                    "type": "integer"
                },
                "nombre": {
                    "type": "string"
                },
                "usuario": {
                    "type": "string"
                }
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "contrasena": {
                    "type": "string"
                },
                "usuario": {
                    "type": "string"
                }
            }
        },
        "handler.proyectoRequest": {
            "type": "object",
            "properties": {
                "alcance": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "estado": {
                    "type": "string"
                },
                "fecha_fin": {
                    "type": "string"
                },
                "fecha_inicio": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                },
                "objetivos_especificos": {
                    "type": "string"
                },
                "objetivos_generales": {
                    "type": "string"
                },
                "observaciones": {
                    "type": "string"
                },
                "planteamiento_problema": {
                    "type": "string"
                },
                "poblacion_meta": {
                    "type": "string"
                },
                "recursos_economicos": {
                    "type": "string"
                },
                "recursos_materiales": {
                    "type": "string"
                },
                "tipo_proyecto": {
                    "type": "string"
                }
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {
                "contrasena": {
                    "type": "string"
                },
                "id_rol": {
                    "type": "integer"
                },
                "id_usuario": {
                    "type": "integer"
                },
                "nombre": {
                    "type": "string"
                },
                "usuario": {
                    "type": "string"
                }
            }
        },
        "handler.sectorRequest": {
            "type": "object",
            "properties": {
                "estado": {
                    "type": "string"
                },
                "nombre": {
                    "type": "string"
                }
            }
        },
        "handler.statusRequest": {
            "type": "object",
            "properties": {
                "estado": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "DMM API",
	Description:      "Case management for beneficiaries, projects, trainings and sectors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

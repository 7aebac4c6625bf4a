package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ShopKit API",
        "description": "Multi-tenant shop management API",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Signup, signin and token refresh"},
        {"name": "Shops", "description": "Shop management"},
        {"name": "Categories", "description": "Product categories"},
        {"name": "Products", "description": "Product catalog"},
        {"name": "Orders", "description": "Orders, exports and invoices"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "tags": ["Auth"],
                "summary": "Exchange credentials for a token pair",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid or expired refresh token"}
                }
            }
        },
        "/auth/signout": {
            "post": {
                "tags": ["Auth"],
                "security": [{"BearerAuth": []}],
                "summary": "Revoke a refresh token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SignoutRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unknown refresh token or missing bearer token"},
                    "403": {"description": "Refresh token belongs to another user"}
                }
            }
        },
        "/shops": {
            "get": {
                "tags": ["Shops"],
                "security": [{"BearerAuth": []}],
                "summary": "List shops owned by the caller",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"}
                }
            },
            "post": {
                "tags": ["Shops"],
                "security": [{"BearerAuth": []}],
                "summary": "Create shop",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateShopRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "409": {"description": "Slug already taken"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/shops/{id}": {
            "get": {
                "tags": ["Shops"],
                "summary": "Get shop by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Shops"],
                "security": [{"BearerAuth": []}],
                "summary": "Update shop",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateShopRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Shops"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete shop",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted shop", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/categories": {
            "get": {
                "tags": ["Categories"],
                "summary": "List categories of a shop",
                "parameters": [
                    {"name": "shopId", "in": "query", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Missing shopId"}
                }
            },
            "post": {
                "tags": ["Categories"],
                "security": [{"BearerAuth": []}],
                "summary": "Create category",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCategoryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "409": {"description": "Slug already taken in this shop"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/categories/{id}": {
            "get": {
                "tags": ["Categories"],
                "summary": "Get category by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "shopId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Categories"],
                "security": [{"BearerAuth": []}],
                "summary": "Update category",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCategoryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Categories"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete category",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "shopId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted category", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/products": {
            "get": {
                "tags": ["Products"],
                "summary": "List products of a shop",
                "parameters": [
                    {"name": "shopId", "in": "query", "required": true, "type": "string"},
                    {"name": "categoryId", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "featured", "in": "query", "type": "boolean"},
                    {"name": "archived", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Missing shopId"}
                }
            },
            "post": {
                "tags": ["Products"],
                "security": [{"BearerAuth": []}],
                "summary": "Create product",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "409": {"description": "Slug already taken in this shop"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["Products"],
                "summary": "Get product by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "shopId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Products"],
                "security": [{"BearerAuth": []}],
                "summary": "Update product",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Products"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete product",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "shopId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted product", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/orders": {
            "get": {
                "tags": ["Orders"],
                "security": [{"BearerAuth": []}],
                "summary": "List orders of a shop",
                "parameters": [
                    {"name": "shopId", "in": "query", "required": true, "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Orders"],
                "security": [{"BearerAuth": []}],
                "summary": "Record a manual order",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Authentication required"},
                    "403": {"description": "Caller does not own this shop"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/orders/export": {
            "get": {
                "tags": ["Orders"],
                "security": [{"BearerAuth": []}],
                "summary": "Export a shop's orders as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "shopId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV payload"},
                    "403": {"description": "Caller does not own this shop"}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "tags": ["Orders"],
                "security": [{"BearerAuth": []}],
                "summary": "Get order by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "shopId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Orders"],
                "security": [{"BearerAuth": []}],
                "summary": "Transition order status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Caller does not own this shop"},
                    "422": {"description": "Unknown status"}
                }
            },
            "delete": {
                "tags": ["Orders"],
                "security": [{"BearerAuth": []}],
                "summary": "Delete order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "shopId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Deleted order", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Caller does not own this shop"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/orders/{id}/invoice": {
            "get": {
                "tags": ["Orders"],
                "security": [{"BearerAuth": []}],
                "summary": "Render a PDF invoice for an order",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "shopId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF payload"},
                    "403": {"description": "Caller does not own this shop"},
                    "404": {"description": "Not found"}
                }
            }
        }
    },
    "definitions": {
        "SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "name": {"type": "string"}
            },
            "required": ["email", "password", "name"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RefreshTokenRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "SignoutRequest": {
            "type": "object",
            "properties": {
                "refresh_token": {"type": "string"}
            },
            "required": ["refresh_token"]
        },
        "CreateShopRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"}
            },
            "required": ["name", "slug"]
        },
        "UpdateShopRequest": {
            "type": "object",
            "properties": {
                "shopId": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"}
            },
            "required": ["shopId"]
        },
        "CreateCategoryRequest": {
            "type": "object",
            "properties": {
                "shopId": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["shopId", "name", "slug"]
        },
        "UpdateCategoryRequest": {
            "type": "object",
            "properties": {
                "shopId": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["shopId"]
        },
        "CreateProductRequest": {
            "type": "object",
            "properties": {
                "shopId": {"type": "string"},
                "categoryId": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"},
                "description": {"type": "string"},
                "priceCents": {"type": "integer"},
                "images": {"type": "array", "items": {"type": "string"}},
                "featured": {"type": "boolean"}
            },
            "required": ["shopId", "name", "slug", "priceCents"]
        },
        "UpdateProductRequest": {
            "type": "object",
            "properties": {
                "shopId": {"type": "string"},
                "categoryId": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "priceCents": {"type": "integer"},
                "images": {"type": "array", "items": {"type": "string"}},
                "featured": {"type": "boolean"},
                "archived": {"type": "boolean"}
            },
            "required": ["shopId"]
        },
        "OrderItemInput": {
            "type": "object",
            "properties": {
                "productId": {"type": "string"},
                "quantity": {"type": "integer"}
            },
            "required": ["productId", "quantity"]
        },
        "CreateOrderRequest": {
            "type": "object",
            "properties": {
                "shopId": {"type": "string"},
                "customerName": {"type": "string"},
                "customerEmail": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/OrderItemInput"}}
            },
            "required": ["shopId", "customerName", "customerEmail", "items"]
        },
        "UpdateOrderRequest": {
            "type": "object",
            "properties": {
                "shopId": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "PAID", "SHIPPED", "CANCELLED"]}
            },
            "required": ["shopId", "status"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "field": {"type": "string"},
                            "rule": {"type": "string"},
                            "message": {"type": "string"}
                        }
                    }
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

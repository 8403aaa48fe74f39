// Package classification of Menu Product API
//
// # Documentation for Menu Product API
//
// Schemes: http
// BasePath: /
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import "github.com/kahvecikaan/buildingMicroservices/menu-api/internal/domain"

// NOTE: the wrapper types below only exist for the swagger generator

// Generic error message
// swagger:response errorResponse
type errorResponseWrapper struct {
	// Description of the error
	// in: body
	Body ErrorResponse
}

// A list of products
// swagger:response productsResponse
type productsResponseWrapper struct {
	// All current products
	// in: body
	Body []domain.Product
}

// Data structure representing a single product
// swagger:response productResponse
type productResponseWrapper struct {
	// A single product
	// in: body
	Body domain.Product
}

// Id of the created product
// swagger:response createdResponse
type createdResponseWrapper struct {
	// in: body
	Body CreatedResponse
}

// Confirmation of a change
// swagger:response messageResponse
type messageResponseWrapper struct {
	// in: body
	Body MessageResponse
}

// swagger:parameters listProducts createProduct
type restaurantIDParamsWrapper struct {
	// The restaurant the products belong to
	// in: path
	// required: true
	RestaurantID int `json:"restaurant_id"`
}

// swagger:parameters getProduct updateProduct deleteProduct
type productIDParamsWrapper struct {
	// The ID of the product
	// in: path
	// required: true
	ID int `json:"product_id"`
}

// swagger:parameters createProduct updateProduct
type productBodyParamsWrapper struct {
	// Name, description and price of the product, all optional
	// in: body
	Body domain.ProductInput
}

// ErrorResponse defines the structure for API error responses
//
// swagger:model
type ErrorResponse struct {
	// The error message
	//
	// required: true
	Error string `json:"error"`
}

// CreatedResponse is returned after a product has been created
//
// swagger:model
type CreatedResponse struct {
	// required: true
	ID int `json:"id"`

	// required: true
	Message string `json:"message"`
}

// MessageResponse carries a confirmation message
//
// swagger:model
type MessageResponse struct {
	// required: true
	Message string `json:"message"`
}

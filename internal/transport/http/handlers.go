package http

import (
	"encoding/json"
	"errors"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/domain"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/service"
	"net/http"
	"strconv"
)

// Confirmation messages returned by the mutating endpoints
const (
	MsgCreated = "Created successfully!"
	MsgUpdated = "Updated!"
	MsgDeleted = "Deleted!"

	MsgProductNotFound = "Product not found"
)

type ProductHandler struct {
	productService service.ProductService
	logger         hclog.Logger
}

func NewProductHandler(ps service.ProductService, log hclog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: ps,
		logger:         log,
	}
}

// ListProducts handles GET /restaurants/{restaurant_id}/products
//
// swagger:route GET /restaurants/{restaurant_id}/products products listProducts
//
// Returns the products of the menu.
//
// Responses:
//
//	200: productsResponse
//	500: errorResponse
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.pathInt(w, r, "restaurant_id")
	if !ok {
		return
	}

	products, err := h.productService.ListProducts(r.Context(), restaurantID)
	if err != nil {
		h.serverError(w, "Error listing products", err)
		return
	}

	h.writeJSON(w, http.StatusOK, products)
}

// CreateProduct handles POST /restaurants/{restaurant_id}/products
//
// swagger:route POST /restaurants/{restaurant_id}/products products createProduct
//
// Adds a product to the menu of a restaurant.
//
// Responses:
//
//	201: createdResponse
//	400: errorResponse
//	500: errorResponse
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := h.pathInt(w, r, "restaurant_id")
	if !ok {
		return
	}

	input, ok := productInputFromContext(r)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), restaurantID, input)
	if err != nil {
		h.serverError(w, "Error creating product", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, CreatedResponse{ID: product.ID, Message: MsgCreated})
}

// GetProduct handles GET /products/{product_id}
//
// swagger:route GET /products/{product_id} products getProduct
//
// Returns a single product.
//
// Responses:
//
//	200: productResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathInt(w, r, "product_id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		h.productError(w, "Error getting product", err)
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /products/{product_id}
//
// swagger:route PUT /products/{product_id} products updateProduct
//
// Replaces name, description and price of a product. Fields left out of
// the body are cleared.
//
// Responses:
//
//	200: messageResponse
//	400: errorResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathInt(w, r, "product_id")
	if !ok {
		return
	}

	input, ok := productInputFromContext(r)
	if !ok {
		h.writeError(w, http.StatusBadRequest, "Invalid product data")
		return
	}

	if err := h.productService.UpdateProduct(r.Context(), id, input); err != nil {
		h.productError(w, "Error updating product", err)
		return
	}

	h.writeJSON(w, http.StatusOK, MessageResponse{Message: MsgUpdated})
}

// DeleteProduct handles DELETE /products/{product_id}
//
// swagger:route DELETE /products/{product_id} products deleteProduct
//
// Removes a product from the menu.
//
// Responses:
//
//	200: messageResponse
//	404: errorResponse
//	500: errorResponse
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathInt(w, r, "product_id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		h.productError(w, "Error deleting product", err)
		return
	}

	h.writeJSON(w, http.StatusOK, MessageResponse{Message: MsgDeleted})
}

// Health handles GET /health
func (h *ProductHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathInt reads an integer path variable. The routes only match digits, so
// the only failure left is a value too large for an int.
func (h *ProductHandler) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return v, true
}

func (h *ProductHandler) productError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		h.writeError(w, http.StatusNotFound, MsgProductNotFound)
		return
	}
	h.serverError(w, msg, err)
}

func (h *ProductHandler) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	h.writeError(w, http.StatusInternalServerError, msg)
}

func (h *ProductHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, ErrorResponse{Error: msg})
}

func (h *ProductHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Error encoding response", "error", err)
	}
}

package http

import (
	_ "embed"
	"github.com/go-chi/cors"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	websocketTransport "github.com/kahvecikaan/buildingMicroservices/menu-api/internal/transport/websocket"
	"net/http"
)

//go:embed swagger.yaml
var swaggerSpec []byte

// RouterOptions configures the outer layers of the HTTP handler
type RouterOptions struct {
	// Debug prints the stack of recovered panics to the log
	Debug bool
}

// NewRouter wires the product routes, websocket stream and docs behind
// CORS and panic recovery
func NewRouter(
	ph *ProductHandler,
	logger hclog.Logger,
	wsh *websocketTransport.Handler,
	opts RouterOptions,
) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowedHandler)

	mw := NewMiddleware(logger)

	router.Use(mw.LoggingMiddleware)
	router.Use(mw.ContentTypeMiddleware)

	router.HandleFunc("/health", ph.Health).Methods(http.MethodGet)
	router.HandleFunc("/restaurants/{restaurant_id:[0-9]+}/products", ph.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{product_id:[0-9]+}", ph.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/products/{product_id:[0-9]+}", ph.DeleteProduct).Methods(http.MethodDelete)
	router.HandleFunc("/ws", wsh.HandleWebSocket).Methods(http.MethodGet)

	// Routes with a product body
	postRouter := router.Methods(http.MethodPost).Subrouter()
	postRouter.HandleFunc("/restaurants/{restaurant_id:[0-9]+}/products", ph.CreateProduct)
	postRouter.Use(mw.ProductInputMiddleware)

	putRouter := router.Methods(http.MethodPut).Subrouter()
	putRouter.HandleFunc("/products/{product_id:[0-9]+}", ph.UpdateProduct)
	putRouter.Use(mw.ProductInputMiddleware)

	// Docs
	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(swaggerSpec)
	}).Methods(http.MethodGet)
	router.Handle("/docs", middleware.Redoc(middleware.RedocOpts{SpecURL: "/swagger.yaml"}, nil)).Methods(http.MethodGet)

	// Any origin, method and header may call the API
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
			http.MethodPatch, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger.StandardLogger(&hclog.StandardLoggerOptions{ForceLevel: hclog.Error})),
		handlers.PrintRecoveryStack(opts.Debug),
	)

	return recovery(corsHandler(router))
}

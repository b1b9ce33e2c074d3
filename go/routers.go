package petcareserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	UserAPI     UserAPI
	CatalogAPI  CatalogAPI
	PetAPI      PetAPI
	OfferingAPI OfferingAPI
	OrderAPI    OrderAPI
	AdoptionAPI AdoptionAPI
	BookingAPI  BookingAPI
	PaymentAPI  PaymentAPI
}

type routerOptions struct {
	authenticator Authenticator
	logger        *slog.Logger
	metrics       *Metrics
	middleware    []gin.HandlerFunc
}

// RouterOption customises NewRouter.
type RouterOption func(*routerOptions)

// WithAuthenticator resolves bearer tokens on every request.
func WithAuthenticator(a Authenticator) RouterOption {
	return func(o *routerOptions) { o.authenticator = a }
}

func WithLogger(logger *slog.Logger) RouterOption {
	return func(o *routerOptions) { o.logger = logger }
}

// WithMetrics records request metrics and exposes them on /metrics.
func WithMetrics(m *Metrics) RouterOption {
	return func(o *routerOptions) { o.metrics = m }
}

// WithMiddleware installs extra middleware ahead of the routes, e.g. tracing.
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(o *routerOptions) { o.middleware = append(o.middleware, mw...) }
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, opts...)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts ...RouterOption) *gin.Engine {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}
	router.Use(gin.Recovery())
	router.Use(o.middleware...)
	router.Use(RequestLogger(o.logger))
	if o.metrics != nil {
		router.Use(o.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.metrics.Registry, promhttp.HandlerOpts{})))
	}
	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := router.Group("", Authentication(o.authenticator))
	for _, route := range getRoutes(handleFunctions) {
		api.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"Register", http.MethodPost, "/api/users", h.UserAPI.Register},
		{"Login", http.MethodPost, "/api/users/login", h.UserAPI.Login},
		{"Logout", http.MethodPost, "/api/users/logout", h.UserAPI.Logout},
		{"Me", http.MethodGet, "/api/users/me", h.UserAPI.Me},
		{"ListUsers", http.MethodGet, "/api/users", h.UserAPI.ListUsers},
		{"SetBlocked", http.MethodPut, "/api/users/:email/block", h.UserAPI.SetBlocked},
		{"DeleteUser", http.MethodDelete, "/api/users/:email", h.UserAPI.DeleteUser},

		{"ListProducts", http.MethodGet, "/api/products", h.CatalogAPI.ListProducts},
		{"CreateProduct", http.MethodPost, "/api/products", h.CatalogAPI.CreateProduct},
		{"GetProduct", http.MethodGet, "/api/products/:productId", h.CatalogAPI.GetProduct},
		{"UpdateProduct", http.MethodPut, "/api/products/:productId", h.CatalogAPI.UpdateProduct},
		{"DeleteProduct", http.MethodDelete, "/api/products/:productId", h.CatalogAPI.DeleteProduct},
		{"ListCategories", http.MethodGet, "/api/category", h.CatalogAPI.ListCategories},
		{"CreateCategory", http.MethodPost, "/api/category", h.CatalogAPI.CreateCategory},
		{"GetCategory", http.MethodGet, "/api/category/:categoryId", h.CatalogAPI.GetCategory},
		{"UpdateCategory", http.MethodPut, "/api/category/:categoryId", h.CatalogAPI.UpdateCategory},
		{"DeleteCategory", http.MethodDelete, "/api/category/:categoryId", h.CatalogAPI.DeleteCategory},

		{"ListPets", http.MethodGet, "/api/pets", h.PetAPI.ListPets},
		{"SubmitPet", http.MethodPost, "/api/pets", h.PetAPI.SubmitPet},
		{"ListPendingPets", http.MethodGet, "/api/pets/pending", h.PetAPI.ListPending},
		{"ListPendingPublicPets", http.MethodGet, "/api/pets/pending/public", h.PetAPI.ListPendingPublic},
		{"GetPet", http.MethodGet, "/api/pets/:petId", h.PetAPI.GetPet},
		{"UpdatePet", http.MethodPut, "/api/pets/:petId", h.PetAPI.UpdatePet},
		{"DeletePet", http.MethodDelete, "/api/pets/:petId", h.PetAPI.DeletePet},
		{"ApprovePet", http.MethodPut, "/api/pets/:petId/approve", h.PetAPI.ApprovePet},
		{"RejectPet", http.MethodPut, "/api/pets/:petId/reject", h.PetAPI.RejectPet},
		{"AddHealthRecord", http.MethodPost, "/api/pets/:petId/health", h.PetAPI.AddHealthRecord},
		{"RemoveHealthRecord", http.MethodDelete, "/api/pets/:petId/health/:index", h.PetAPI.RemoveHealthRecord},

		{"ListOfferings", http.MethodGet, "/api/service", h.OfferingAPI.ListOfferings},
		{"CreateOffering", http.MethodPost, "/api/service", h.OfferingAPI.CreateOffering},
		{"GetOffering", http.MethodGet, "/api/service/:serviceId", h.OfferingAPI.GetOffering},
		{"UpdateOffering", http.MethodPut, "/api/service/:serviceId", h.OfferingAPI.UpdateOffering},
		{"DeleteOffering", http.MethodDelete, "/api/service/:serviceId", h.OfferingAPI.DeleteOffering},

		{"PlaceOrder", http.MethodPost, "/api/orders", h.OrderAPI.PlaceOrder},
		{"ListOrders", http.MethodGet, "/api/orders", h.OrderAPI.ListOrders},
		{"GetOrder", http.MethodGet, "/api/orders/:orderId", h.OrderAPI.GetOrder},
		{"UpdateOrderStatus", http.MethodPut, "/api/orders/:orderId", h.OrderAPI.UpdateOrderStatus},
		{"DeleteOrder", http.MethodDelete, "/api/orders/:orderId", h.OrderAPI.DeleteOrder},

		{"ApplyForAdoption", http.MethodPost, "/api/adoption", h.AdoptionAPI.Apply},
		{"ListAdoptions", http.MethodGet, "/api/adoption", h.AdoptionAPI.ListAll},
		{"ListMyAdoptions", http.MethodGet, "/api/adoption/my", h.AdoptionAPI.ListMine},
		{"GetMyAdoptionForPet", http.MethodGet, "/api/adoption/my/pet/:petId", h.AdoptionAPI.GetMineForPet},
		{"ListAdoptionsForPet", http.MethodGet, "/api/adoption/pet/:petId", h.AdoptionAPI.ListByPet},
		{"GetAdoption", http.MethodGet, "/api/adoption/:id", h.AdoptionAPI.GetAdoption},
		{"UpdateAdoption", http.MethodPut, "/api/adoption/:id", h.AdoptionAPI.UpdateAdoption},
		{"DeleteAdoption", http.MethodDelete, "/api/adoption/:id", h.AdoptionAPI.DeleteAdoption},
		{"UpdateAdoptionStatus", http.MethodPut, "/api/adoption/:id/status", h.AdoptionAPI.UpdateStatus},

		{"CreateBooking", http.MethodPost, "/api/booking", h.BookingAPI.CreateBooking},
		{"ListBookings", http.MethodGet, "/api/booking", h.BookingAPI.ListBookings},
		{"LinkBookingPayment", http.MethodPost, "/api/booking/link-payment", h.BookingAPI.LinkPayment},
		{"GetBooking", http.MethodGet, "/api/booking/:id", h.BookingAPI.GetBooking},
		{"UpdateBookingStatus", http.MethodPut, "/api/booking/:id/status", h.BookingAPI.UpdateStatus},
		{"DeleteBooking", http.MethodDelete, "/api/booking/:id", h.BookingAPI.DeleteBooking},

		{"TestCards", http.MethodGet, "/api/payment/test-cards", h.PaymentAPI.TestCards},
		{"PaymentCheckout", http.MethodGet, "/api/payment/order/:orderId", h.PaymentAPI.Checkout},
		{"ProcessPayment", http.MethodPost, "/api/payment/process", h.PaymentAPI.Process},
		{"ListPayments", http.MethodGet, "/api/payment", h.PaymentAPI.ListPayments},
		{"ListMyPayments", http.MethodGet, "/api/payment/my", h.PaymentAPI.ListMine},
	}
}

package petcareserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/petcare-api/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/Apurer/petcare-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/petcare-api/internal/domains/orders/ports"
)

const idempotencyHeader = "Idempotency-Key"

// OrderAPI serves checkout and order administration.
type OrderAPI struct {
	service ordersports.Service
}

func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /api/orders
// Places an order; a repeated Idempotency-Key replays the first result with 200
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.PlaceOrderRequest
	if !bindJSON(c, &payload) {
		return
	}
	cmd := payload.ToCommand(c.GetHeader(idempotencyHeader))
	result, err := api.service.PlaceOrder(c.Request.Context(), principal(c), cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, ordermapper.PlaceOrderResponse{
		Message:     "Order placed successfully",
		OrderID:     result.OrderID,
		TotalAmount: result.Total,
	})
}

// Get /api/orders
// Admins see every order; customers see their own
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainList(orders))
}

// Get /api/orders/:orderId
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrder(c.Request.Context(), principal(c), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomain(order))
}

// Put /api/orders/:orderId
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	var payload ordermapper.StatusRequest
	if !bindJSON(c, &payload) {
		return
	}
	status, err := ordersdomain.ParseStatus(payload.Status)
	if err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.UpdateOrderStatus(c.Request.Context(), principal(c), c.Param("orderId"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomain(order))
}

// Delete /api/orders/:orderId
func (api *OrderAPI) DeleteOrder(c *gin.Context) {
	if err := api.service.DeleteOrder(c.Request.Context(), principal(c), c.Param("orderId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Order deleted successfully"})
}

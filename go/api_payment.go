package petcareserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paymentmapper "github.com/Apurer/petcare-api/internal/domains/payments/adapters/http/mapper"
	paymentsports "github.com/Apurer/petcare-api/internal/domains/payments/ports"
)

// PaymentAPI serves checkout and the simulated card gateway.
type PaymentAPI struct {
	service paymentsports.Service
}

func NewPaymentAPI(service paymentsports.Service) PaymentAPI {
	return PaymentAPI{service: service}
}

// Get /api/payment/test-cards
func (api *PaymentAPI) TestCards(c *gin.Context) {
	c.JSON(http.StatusOK, paymentmapper.FromTestCards(api.service.TestCards()))
}

// Get /api/payment/order/:orderId
// The order summary rendered on the payment page
func (api *PaymentAPI) Checkout(c *gin.Context) {
	checkout, err := api.service.Checkout(c.Request.Context(), principal(c), c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentmapper.FromCheckout(checkout))
}

// Post /api/payment/process
func (api *PaymentAPI) Process(c *gin.Context) {
	var payload paymentmapper.ProcessRequest
	if !bindJSON(c, &payload) {
		return
	}
	result, err := api.service.Process(c.Request.Context(), principal(c), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentmapper.FromProcess(payload.PaymentMethod, result))
}

// Get /api/payment
func (api *PaymentAPI) ListPayments(c *gin.Context) {
	list, err := api.service.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentmapper.FromDomainList(list))
}

// Get /api/payment/my
func (api *PaymentAPI) ListMine(c *gin.Context) {
	list, err := api.service.ListMine(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, paymentmapper.FromDomainList(list))
}

package petcareserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingmapper "github.com/Apurer/petcare-api/internal/domains/bookings/adapters/http/mapper"
	bookingsdomain "github.com/Apurer/petcare-api/internal/domains/bookings/domain"
	bookingsports "github.com/Apurer/petcare-api/internal/domains/bookings/ports"
)

// BookingAPI serves care-service appointments.
type BookingAPI struct {
	service bookingsports.Service
}

func NewBookingAPI(service bookingsports.Service) BookingAPI {
	return BookingAPI{service: service}
}

// Post /api/booking
func (api *BookingAPI) CreateBooking(c *gin.Context) {
	var payload bookingmapper.CreateRequest
	if !bindJSON(c, &payload) {
		return
	}
	input, err := payload.ToInput()
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := api.service.Create(c.Request.Context(), principal(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookingmapper.FromCreateResult(result))
}

// Get /api/booking
func (api *BookingAPI) ListBookings(c *gin.Context) {
	list, err := api.service.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingmapper.FromDomainList(list))
}

// Post /api/booking/link-payment
// Confirms a booking against a recorded payment
func (api *BookingAPI) LinkPayment(c *gin.Context) {
	var payload bookingmapper.LinkPaymentRequest
	if !bindJSON(c, &payload) {
		return
	}
	booking, err := api.service.LinkPayment(c.Request.Context(), principal(c), payload.BookingID, payload.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingmapper.FromDomain(booking))
}

// Get /api/booking/:id
func (api *BookingAPI) GetBooking(c *gin.Context) {
	booking, err := api.service.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingmapper.FromDomain(booking))
}

// Put /api/booking/:id/status
func (api *BookingAPI) UpdateStatus(c *gin.Context) {
	var payload bookingmapper.StatusRequest
	if !bindJSON(c, &payload) {
		return
	}
	status, err := bookingsdomain.ParseStatus(payload.Status)
	if err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	booking, err := api.service.UpdateStatus(c.Request.Context(), principal(c), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingmapper.FromDomain(booking))
}

// Delete /api/booking/:id
func (api *BookingAPI) DeleteBooking(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Booking deleted successfully"})
}

package petcareserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	offeringmapper "github.com/Apurer/petcare-api/internal/domains/offerings/adapters/http/mapper"
	offeringsports "github.com/Apurer/petcare-api/internal/domains/offerings/ports"
)

// OfferingAPI serves the bookable care services.
type OfferingAPI struct {
	service offeringsports.Service
}

func NewOfferingAPI(service offeringsports.Service) OfferingAPI {
	return OfferingAPI{service: service}
}

// Get /api/service
func (api *OfferingAPI) ListOfferings(c *gin.Context) {
	list, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offeringmapper.FromDomainList(list))
}

// Post /api/service
func (api *OfferingAPI) CreateOffering(c *gin.Context) {
	var payload offeringmapper.OfferingRequest
	if !bindJSON(c, &payload) {
		return
	}
	offering, err := api.service.Create(c.Request.Context(), principal(c), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offeringmapper.FromDomain(offering))
}

// Get /api/service/:serviceId
func (api *OfferingAPI) GetOffering(c *gin.Context) {
	offering, err := api.service.Get(c.Request.Context(), c.Param("serviceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offeringmapper.FromDomain(offering))
}

// Put /api/service/:serviceId
func (api *OfferingAPI) UpdateOffering(c *gin.Context) {
	var payload offeringmapper.OfferingRequest
	if !bindJSON(c, &payload) {
		return
	}
	offering, err := api.service.Update(c.Request.Context(), principal(c), c.Param("serviceId"), payload.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offeringmapper.FromDomain(offering))
}

// Delete /api/service/:serviceId
func (api *OfferingAPI) DeleteOffering(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), principal(c), c.Param("serviceId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Service deleted successfully"})
}

package petcareserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adoptionmapper "github.com/Apurer/petcare-api/internal/domains/adoptions/adapters/http/mapper"
	adoptionsdomain "github.com/Apurer/petcare-api/internal/domains/adoptions/domain"
	adoptionsports "github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
)

// AdoptionAPI serves adoption applications and their review.
type AdoptionAPI struct {
	service adoptionsports.Service
}

func NewAdoptionAPI(service adoptionsports.Service) AdoptionAPI {
	return AdoptionAPI{service: service}
}

// Post /api/adoption
func (api *AdoptionAPI) Apply(c *gin.Context) {
	var payload adoptionmapper.ApplyRequest
	if !bindJSON(c, &payload) {
		return
	}
	result, err := api.service.Apply(c.Request.Context(), principal(c), payload.ToApplication())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adoptionmapper.FromApplyResult(result))
}

// Get /api/adoption
func (api *AdoptionAPI) ListAll(c *gin.Context) {
	list, err := api.service.ListAll(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromDomainList(list))
}

// Get /api/adoption/my
func (api *AdoptionAPI) ListMine(c *gin.Context) {
	list, err := api.service.ListMine(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromDomainList(list))
}

// Get /api/adoption/my/pet/:petId
// The caller's latest request for a pet
func (api *AdoptionAPI) GetMineForPet(c *gin.Context) {
	request, err := api.service.GetMineForPet(c.Request.Context(), principal(c), c.Param("petId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromDomain(request))
}

// Get /api/adoption/pet/:petId
func (api *AdoptionAPI) ListByPet(c *gin.Context) {
	list, err := api.service.ListByPet(c.Request.Context(), principal(c), c.Param("petId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromDomainList(list))
}

// Get /api/adoption/:id
func (api *AdoptionAPI) GetAdoption(c *gin.Context) {
	request, err := api.service.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromDomain(request))
}

// Put /api/adoption/:id
func (api *AdoptionAPI) UpdateAdoption(c *gin.Context) {
	var payload adoptionmapper.UpdateRequest
	if !bindJSON(c, &payload) {
		return
	}
	request, err := api.service.Update(c.Request.Context(), principal(c), c.Param("id"), payload.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromDomain(request))
}

// Delete /api/adoption/:id
// Only pending requests can be withdrawn
func (api *AdoptionAPI) DeleteAdoption(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), principal(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Adoption request deleted successfully"})
}

// Put /api/adoption/:id/status
func (api *AdoptionAPI) UpdateStatus(c *gin.Context) {
	var payload adoptionmapper.StatusRequest
	if !bindJSON(c, &payload) {
		return
	}
	status, err := adoptionsdomain.ParseStatus(payload.AdoptionStatus)
	if err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	request, err := api.service.UpdateStatus(c.Request.Context(), principal(c), c.Param("id"), status, payload.RejectionReason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adoptionmapper.FromDomain(request))
}

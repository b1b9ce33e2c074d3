package petcareserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	petmapper "github.com/Apurer/petcare-api/internal/domains/pets/adapters/http/mapper"
	petsports "github.com/Apurer/petcare-api/internal/domains/pets/ports"
)

// PetAPI wires HTTP transport with the pets bounded context service.
type PetAPI struct {
	service petsports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service) PetAPI {
	return PetAPI{service: service}
}

// Get /api/pets
// Lists approved pets
func (api *PetAPI) ListPets(c *gin.Context) {
	pets, err := api.service.ListApproved(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjections(pets))
}

// Post /api/pets
// Admins list a pet directly; anyone else submits it for approval
func (api *PetAPI) SubmitPet(c *gin.Context) {
	var payload petmapper.PetRequest
	if !bindJSON(c, &payload) {
		return
	}
	saved, err := api.service.Submit(c.Request.Context(), principal(c), payload.ToSubmitInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, petmapper.FromProjection(saved))
}

// Get /api/pets/pending
func (api *PetAPI) ListPending(c *gin.Context) {
	pets, err := api.service.ListPending(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjections(pets))
}

// Get /api/pets/pending/public
// Pending pets submitted by non-admins
func (api *PetAPI) ListPendingPublic(c *gin.Context) {
	pets, err := api.service.ListPendingPublic(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjections(pets))
}

// Get /api/pets/:petId
func (api *PetAPI) GetPet(c *gin.Context) {
	pet, err := api.service.Get(c.Request.Context(), c.Param("petId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjection(pet))
}

// Put /api/pets/:petId
func (api *PetAPI) UpdatePet(c *gin.Context) {
	var payload petmapper.PetRequest
	if !bindJSON(c, &payload) {
		return
	}
	pet, err := api.service.Update(c.Request.Context(), principal(c), c.Param("petId"), payload.ToUpdateInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjection(pet))
}

// Delete /api/pets/:petId
func (api *PetAPI) DeletePet(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), principal(c), c.Param("petId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Pet deleted successfully"})
}

// Put /api/pets/:petId/approve
func (api *PetAPI) ApprovePet(c *gin.Context) {
	pet, err := api.service.Approve(c.Request.Context(), principal(c), c.Param("petId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjection(pet))
}

// Put /api/pets/:petId/reject
// Rejection removes the submission
func (api *PetAPI) RejectPet(c *gin.Context) {
	if err := api.service.Reject(c.Request.Context(), principal(c), c.Param("petId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Pet rejected and removed"})
}

// Post /api/pets/:petId/health
func (api *PetAPI) AddHealthRecord(c *gin.Context) {
	var payload petmapper.HealthRecord
	if !bindJSON(c, &payload) {
		return
	}
	pet, err := api.service.AddHealthRecord(c.Request.Context(), principal(c), c.Param("petId"), payload.ToHealthRecordInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, petmapper.FromProjection(pet))
}

// Delete /api/pets/:petId/health/:index
func (api *PetAPI) RemoveHealthRecord(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		responder.BadRequest(c, "index must be an integer")
		return
	}
	pet, err := api.service.RemoveHealthRecord(c.Request.Context(), principal(c), c.Param("petId"), index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, petmapper.FromProjection(pet))
}

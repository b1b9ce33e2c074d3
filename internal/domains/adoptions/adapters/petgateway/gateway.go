// Package petgateway adapts the pets repository to the adoptions PetGateway port.
package petgateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/petcare-api/internal/domains/adoptions/ports"
	petsdomain "github.com/Apurer/petcare-api/internal/domains/pets/domain"
	petsports "github.com/Apurer/petcare-api/internal/domains/pets/ports"
)

var _ ports.PetGateway = (*Gateway)(nil)

type Gateway struct {
	pets petsports.Repository
}

func New(pets petsports.Repository) *Gateway {
	return &Gateway{pets: pets}
}

func (g *Gateway) Get(ctx context.Context, petID string) (ports.PetSummary, error) {
	proj, err := g.pets.GetByID(ctx, petID)
	if err != nil {
		return ports.PetSummary{}, translate(err, petID)
	}
	pet := proj.Entity
	summary := ports.PetSummary{
		ID:        pet.ID,
		Name:      pet.Name,
		Species:   string(pet.Species),
		Available: pet.Available(),
	}
	if len(pet.Images) > 0 {
		summary.Image = pet.Images[0]
	}
	return summary, nil
}

func (g *Gateway) SetAdopted(ctx context.Context, petID string, adopted bool) error {
	status := petsdomain.StatusAvailable
	if adopted {
		status = petsdomain.StatusAdopted
	}
	return translate(g.pets.SetAdoptionStatus(ctx, petID, status), petID)
}

func translate(err error, petID string) error {
	if errors.Is(err, petsports.ErrNotFound) {
		return fmt.Errorf("%w: %s", ports.ErrPetNotFound, petID)
	}
	return err
}

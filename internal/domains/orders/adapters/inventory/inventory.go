// Package inventory resolves order lines against the catalog, pets, and offerings repositories.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	catalogdomain "github.com/Apurer/petcare-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/petcare-api/internal/domains/catalog/ports"
	offeringsports "github.com/Apurer/petcare-api/internal/domains/offerings/ports"
	"github.com/Apurer/petcare-api/internal/domains/orders/domain"
	"github.com/Apurer/petcare-api/internal/domains/orders/ports"
	petsdomain "github.com/Apurer/petcare-api/internal/domains/pets/domain"
	petsports "github.com/Apurer/petcare-api/internal/domains/pets/ports"
)

var _ ports.Inventory = (*Adapter)(nil)

// Adapter implements ports.Inventory over the owning contexts' repositories.
// Bind the repositories to a transaction to make reservations atomic with the order insert.
type Adapter struct {
	products  catalogports.ProductRepository
	pets      petsports.Repository
	offerings offeringsports.Repository
	journal   *Journal
}

func New(products catalogports.ProductRepository, pets petsports.Repository, offerings offeringsports.Repository) *Adapter {
	return &Adapter{products: products, pets: pets, offerings: offerings}
}

// WithJournal returns a copy that records an undo step for every reservation.
func (a *Adapter) WithJournal(j *Journal) *Adapter {
	clone := *a
	clone.journal = j
	return &clone
}

func (a *Adapter) ReserveProduct(ctx context.Context, id string, quantity int) (ports.Source, error) {
	before, err := a.products.GetByID(ctx, id)
	if err != nil {
		return ports.Source{}, translate(err, "product", id)
	}
	after, err := a.products.Withdraw(ctx, id, quantity)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrInsufficientStock) {
			return ports.Source{}, fmt.Errorf("%w for %s: %d requested", domain.ErrInsufficientStock, before.Name, quantity)
		}
		return ports.Source{}, translate(err, "product", id)
	}
	if a.journal != nil {
		a.journal.record(func(ctx context.Context) error {
			_, err := a.products.Restock(ctx, id, quantity)
			return err
		})
	}
	return ports.Source{ID: after.ID, Name: after.Name, Price: after.Price, Image: after.Image}, nil
}

func (a *Adapter) ReservePet(ctx context.Context, id string) (ports.Source, error) {
	proj, err := a.pets.MarkAdopted(ctx, id)
	if err != nil {
		if errors.Is(err, petsdomain.ErrAlreadyAdopted) {
			return ports.Source{}, fmt.Errorf("%w: %s", domain.ErrPetUnavailable, id)
		}
		return ports.Source{}, translate(err, "pet", id)
	}
	if a.journal != nil {
		a.journal.record(func(ctx context.Context) error {
			return a.pets.SetAdoptionStatus(ctx, id, petsdomain.StatusAvailable)
		})
	}
	pet := proj.Entity
	image := ""
	if len(pet.Images) > 0 {
		image = pet.Images[0]
	}
	return ports.Source{ID: pet.ID, Name: pet.Name, Price: pet.Price, Image: image}, nil
}

func (a *Adapter) LookupService(ctx context.Context, id string) (ports.Source, error) {
	offering, err := a.offerings.GetByID(ctx, id)
	if err != nil {
		return ports.Source{}, translate(err, "service", id)
	}
	return ports.Source{ID: offering.ID, Name: offering.Name, Price: offering.Price, Image: offering.Image}, nil
}

func translate(err error, kind, id string) error {
	if errors.Is(err, catalogports.ErrNotFound) ||
		errors.Is(err, petsports.ErrNotFound) ||
		errors.Is(err, offeringsports.ErrNotFound) {
		return fmt.Errorf("%w: %s %s", ports.ErrItemNotFound, kind, id)
	}
	return err
}

// Journal collects compensating steps for stores without transactions.
type Journal struct {
	mu   sync.Mutex
	undo []func(context.Context) error
}

func (j *Journal) record(step func(context.Context) error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.undo = append(j.undo, step)
}

// Rollback runs the recorded steps newest first and clears the journal.
func (j *Journal) Rollback(ctx context.Context) error {
	j.mu.Lock()
	steps := j.undo
	j.undo = nil
	j.mu.Unlock()

	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		if err := steps[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Package auth models callers and the capabilities their role grants.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthenticated means the caller presented no valid identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller is known but lacks the capability.
	ErrForbidden = errors.New("operation not permitted")
	// ErrUnknownRole is returned when parsing an unsupported role tag.
	ErrUnknownRole = errors.New("unknown role")
)

// Role is the coarse account type carried in tokens.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole normalizes a role tag. An empty tag defaults to customer.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoleCustomer:
		return RoleCustomer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, raw)
	}
}

// Capability names a guarded operation.
type Capability string

const (
	CapPlaceOrder        Capability = "orders.place"
	CapViewAllOrders     Capability = "orders.read_all"
	CapManageOrders      Capability = "orders.manage"
	CapManageCatalog     Capability = "catalog.manage"
	CapManagePets        Capability = "pets.manage"
	CapManageOfferings   Capability = "offerings.manage"
	CapApplyForAdoption  Capability = "adoptions.apply"
	CapReviewAdoptions   Capability = "adoptions.review"
	CapCreateBooking     Capability = "bookings.create"
	CapManageBookings    Capability = "bookings.manage"
	CapViewAllPayments   Capability = "payments.read_all"
	CapManagePayments    Capability = "payments.manage"
	CapCreateAdmin       Capability = "users.create_admin"
	CapManageUsers       Capability = "users.manage"
)

var grants = map[Role]map[Capability]bool{
	RoleCustomer: {
		CapPlaceOrder:       true,
		CapApplyForAdoption: true,
		CapCreateBooking:    true,
	},
	RoleAdmin: {
		CapViewAllOrders:   true,
		CapManageOrders:    true,
		CapManageCatalog:   true,
		CapManagePets:      true,
		CapManageOfferings: true,
		CapReviewAdoptions: true,
		CapCreateBooking:   true,
		CapManageBookings:  true,
		CapViewAllPayments: true,
		CapManagePayments:  true,
		CapCreateAdmin:     true,
		CapManageUsers:     true,
	},
}

// Can reports whether the role grants the capability.
func Can(role Role, capability Capability) bool {
	return grants[role][capability]
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	Email          string
	FirstName      string
	LastName       string
	Role           Role
	Blocked        bool
	ProfilePicture string
	SessionID      string
}

// Anonymous is the zero principal.
var Anonymous = Principal{}

// Authenticated reports whether the principal carries an identity.
func (p Principal) Authenticated() bool {
	return strings.TrimSpace(p.Email) != ""
}

// IsAdmin is shorthand for role checks in read paths.
func (p Principal) IsAdmin() bool {
	return p.Authenticated() && p.Role == RoleAdmin
}

// RequireAuthenticated rejects anonymous and blocked callers.
func RequireAuthenticated(p Principal) error {
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	if p.Blocked {
		return fmt.Errorf("%w: account %s is blocked", ErrForbidden, p.Email)
	}
	return nil
}

// Authorize checks that the principal is signed in, not blocked, and that its role grants capability.
func Authorize(p Principal, capability Capability) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !Can(p.Role, capability) {
		return fmt.Errorf("%w: role %q lacks %s", ErrForbidden, p.Role, capability)
	}
	return nil
}

// AuthorizeOwner admits the resource owner, or any principal whose role grants override.
func AuthorizeOwner(p Principal, ownerEmail string, override Capability) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(ownerEmail), strings.TrimSpace(p.Email)) {
		return nil
	}
	if Can(p.Role, override) {
		return nil
	}
	return fmt.Errorf("%w: %s does not own this resource", ErrForbidden, p.Email)
}

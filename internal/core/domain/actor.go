package domain

import "github.com/google/uuid"

// Role is the kind of party acting on an order.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleSeller        Role = "seller"
	RoleDeliveryStaff Role = "delivery_staff"
	RoleAdmin         Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleDeliveryStaff, RoleAdmin:
		return true
	}
	return false
}

// Actor is an authenticated party. The role is trusted as issued.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

func (a Actor) String() string {
	return string(a.Role) + ":" + a.ID.String()
}

// WalletKind returns the wallet kind that belongs to the actor's role.
func (a Actor) WalletKind() (WalletKind, bool) {
	switch a.Role {
	case RoleCustomer:
		return WalletKindCustomer, true
	case RoleSeller:
		return WalletKindSeller, true
	case RoleDeliveryStaff:
		return WalletKindDeliveryStaff, true
	}
	return "", false
}

package domain

import "time"

type PropertyType string

const (
	TypeHouse     PropertyType = "house"
	TypeApartment PropertyType = "apartment"
	TypeCondo     PropertyType = "condo"
	TypeTownhouse PropertyType = "townhouse"
	TypeLand      PropertyType = "land"
)

// ValidPropertyType reports whether t is one of the recognized listing types.
// The empty string is not valid; callers treat it as "not supplied".
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case TypeHouse, TypeApartment, TypeCondo, TypeTownhouse, TypeLand:
		return true
	}
	return false
}

type Role string

const (
	RoleClient     Role = "client"
	RoleAgent      Role = "agent"
	RoleAgency     Role = "agency"
	RoleSuperAdmin Role = "super_admin"

	// RoleAnonymous is the role of an unauthenticated caller.
	RoleAnonymous Role = ""
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Property struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        PropertyType `json:"type,omitempty"`
	Price       int64        `json:"price"`
	Location    string       `json:"location,omitempty"`
	City        string       `json:"city,omitempty"`
	Bedrooms    int          `json:"bedrooms"`
	Bathrooms   int          `json:"bathrooms"`
	Area        float64      `json:"area"`
	Amenities   []string     `json:"amenities,omitempty"`
	Images      []string     `json:"images,omitempty"`
	Videos      []string     `json:"videos,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	AgentID     string       `json:"agentId"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Favorite is one (user, property) pair. At most one exists per pair;
// the storage layer enforces that with a unique compound index.
type Favorite struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PropertyID string    `json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToggleState is the outcome of a favorite toggle call.
type ToggleState string

const (
	ToggleAdded   ToggleState = "added"
	ToggleRemoved ToggleState = "removed"
)

// User is the slice of the identity model this service reads. Identity
// issuance and authentication live in a separate service.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}

// Actor is the authenticated caller of an operation, as established by
// the HTTP auth middleware from the bearer token.
type Actor struct {
	UserID string
	Role   Role
}

// ValidID reports whether id is a well-formed document identifier
// (24 hex characters). A malformed id is InvalidArgument; a well-formed
// id with no matching record is NotFound.
func ValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	for _, c := range id {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

package domain

// Operation names every action exposed by the service. Authorization is
// decided in one place, by role, so per-handler role checks cannot
// drift apart. Ownership checks stay in the usecases; the policy only
// answers "may this role ever do this".
type Operation string

const (
	OpSearch         Operation = "property.search"
	OpGetProperty    Operation = "property.get"
	OpCreateProperty Operation = "property.create"
	OpUpdateProperty Operation = "property.update"
	OpDeleteProperty Operation = "property.delete"
	OpMyListings     Operation = "property.mine"
	OpAttachPhoto    Operation = "property.attach_photo"
	OpAttachVideo    Operation = "property.attach_video"

	OpToggleFavorite Operation = "favorite.toggle"
	OpListFavorites  Operation = "favorite.list"

	OpAdminListProperties Operation = "admin.properties.list"
	OpAdminSetActive      Operation = "admin.properties.set_active"
	OpAdminStats          Operation = "admin.stats"
)

var policy = map[Operation][]Role{
	OpSearch:      {RoleAnonymous, RoleClient, RoleAgent, RoleAgency, RoleSuperAdmin},
	OpGetProperty: {RoleAnonymous, RoleClient, RoleAgent, RoleAgency, RoleSuperAdmin},

	OpCreateProperty: {RoleAgent},
	OpUpdateProperty: {RoleAgent, RoleSuperAdmin},
	OpDeleteProperty: {RoleAgent},
	OpMyListings:     {RoleAgent},
	OpAttachPhoto:    {RoleAgent},
	OpAttachVideo:    {RoleAgent},

	OpToggleFavorite: {RoleClient},
	OpListFavorites:  {RoleClient},

	OpAdminListProperties: {RoleSuperAdmin},
	OpAdminSetActive:      {RoleSuperAdmin},
	OpAdminStats:          {RoleSuperAdmin},
}

// Allowed reports whether role may invoke op.
func Allowed(op Operation, role Role) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize is the uniform gate used by the usecases: it returns
// ErrUnauthorized when the actor's role may not invoke op.
func Authorize(op Operation, actor Actor) error {
	if !Allowed(op, actor.Role) {
		return ErrUnauthorized
	}
	return nil
}

package user

import "context"

type Role string

const (
	RoleAdmin      Role = "admin"      // Full access, including employee records and quotas
	RoleSupervisor Role = "supervisor" // Approves leave, corrects attendance, manages rotation
	RoleClerk      Role = "clerk"      // Kiosk operator: clock events and leave requests
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// Actor is the authenticated operator behind a request.
type Actor struct {
	UserID string
	Role   Role
}

// Can checks if the actor's role grants permission.
func (a Actor) Can(permission Permission) bool {
	return HasPermission(a.Role, permission)
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

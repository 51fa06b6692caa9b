package rotation

import (
	"context"
	"time"
)

type RotationService interface {
	// SetActiveGroup pins group for service on date and makes it the service default
	SetActiveGroup(ctx context.Context, req SetActiveGroupRequest) (ActiveGroupResponse, error)

	GetActiveGroup(ctx context.Context, service string, date time.Time) (ActiveGroupResponse, error)

	// ActiveGroups resolves the active group of every service in one pass
	ActiveGroups(ctx context.Context, date time.Time) (ActiveGroups, error)

	History(ctx context.Context) ([]OverrideResponse, error)

	// NightStaff lists night-shift employees grouped by service and group
	NightStaff(ctx context.Context, date time.Time) ([]NightStaffGroup, error)
}

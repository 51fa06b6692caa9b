package rotation

import (
	"context"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
)

// RotationRepository - interface for tours_role_nuit and groupes_nuit_par_service
type RotationRepository interface {
	GetOverride(ctx context.Context, service string, date time.Time) (*employee.NightGroup, error)
	GetServiceDefault(ctx context.Context, service string) (*employee.NightGroup, error)
	UpsertOverride(ctx context.Context, override Override) error
	UpsertServiceDefault(ctx context.Context, service string, group employee.NightGroup) error

	// OverridesOn returns every override recorded for date, keyed by service.
	OverridesOn(ctx context.Context, date time.Time) (map[string]employee.NightGroup, error)
	// ServiceDefaults returns every per-service default, keyed by service.
	ServiceDefaults(ctx context.Context) (map[string]employee.NightGroup, error)

	// History returns the most recent overrides, newest first.
	History(ctx context.Context, limit int) ([]Override, error)
}

package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rotationRepositoryImpl struct {
	db *database.DB
}

func NewRotationRepository(db *database.DB) rotation.RotationRepository {
	return &rotationRepositoryImpl{db: db}
}

// GetOverride implements rotation.RotationRepository. It returns nil when no override exists.
func (r *rotationRepositoryImpl) GetOverride(ctx context.Context, service string, date time.Time) (*employee.NightGroup, error) {
	q := GetQuerier(ctx, r.db)

	var group employee.NightGroup
	err := q.QueryRow(ctx, `
		SELECT groupe_actif FROM tours_role_nuit WHERE service = $1 AND date_tour = $2
	`, service, date).Scan(&group)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetServiceDefault implements rotation.RotationRepository. It returns nil when the service has no default.
func (r *rotationRepositoryImpl) GetServiceDefault(ctx context.Context, service string) (*employee.NightGroup, error) {
	q := GetQuerier(ctx, r.db)

	var group employee.NightGroup
	err := q.QueryRow(ctx, `
		SELECT groupe_actif FROM groupes_nuit_par_service WHERE service = $1
	`, service).Scan(&group)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// UpsertOverride implements rotation.RotationRepository.
func (r *rotationRepositoryImpl) UpsertOverride(ctx context.Context, override rotation.Override) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO tours_role_nuit (id, date_tour, service, groupe_actif)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date_tour, service) DO UPDATE SET groupe_actif = EXCLUDED.groupe_actif
	`, override.ID, override.Date, override.Service, override.Group)
	return err
}

// UpsertServiceDefault implements rotation.RotationRepository.
func (r *rotationRepositoryImpl) UpsertServiceDefault(ctx context.Context, service string, group employee.NightGroup) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO groupes_nuit_par_service (service, groupe_actif)
		VALUES ($1, $2)
		ON CONFLICT (service) DO UPDATE SET groupe_actif = EXCLUDED.groupe_actif
	`, service, group)
	return err
}

func (r *rotationRepositoryImpl) groups(ctx context.Context, query string, args ...any) (map[string]employee.NightGroup, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make(map[string]employee.NightGroup)
	for rows.Next() {
		var (
			service string
			group   employee.NightGroup
		)
		if err := rows.Scan(&service, &group); err != nil {
			return nil, err
		}
		groups[service] = group
	}
	return groups, rows.Err()
}

// OverridesOn implements rotation.RotationRepository.
func (r *rotationRepositoryImpl) OverridesOn(ctx context.Context, date time.Time) (map[string]employee.NightGroup, error) {
	return r.groups(ctx, `SELECT service, groupe_actif FROM tours_role_nuit WHERE date_tour = $1`, date)
}

// ServiceDefaults implements rotation.RotationRepository.
func (r *rotationRepositoryImpl) ServiceDefaults(ctx context.Context) (map[string]employee.NightGroup, error) {
	return r.groups(ctx, `SELECT service, groupe_actif FROM groupes_nuit_par_service`)
}

// History implements rotation.RotationRepository.
func (r *rotationRepositoryImpl) History(ctx context.Context, limit int) ([]rotation.Override, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, date_tour, service, groupe_actif
		FROM tours_role_nuit
		ORDER BY date_tour DESC, service
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make([]rotation.Override, 0)
	for rows.Next() {
		var o rotation.Override
		if err := rows.Scan(&o.ID, &o.Date, &o.Service, &o.Group); err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

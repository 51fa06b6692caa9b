package rotation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
)

type RotationServiceImpl struct {
	db           database.Transactor
	rotationRepo rotation.RotationRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
}

func NewRotationService(
	db database.Transactor,
	rotationRepo rotation.RotationRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) rotation.RotationService {
	return &RotationServiceImpl{
		db:           db,
		rotationRepo: rotationRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
	}
}

// SetActiveGroup implements rotation.RotationService.
func (s *RotationServiceImpl) SetActiveGroup(ctx context.Context, req rotation.SetActiveGroupRequest) (rotation.ActiveGroupResponse, error) {
	if err := req.Validate(); err != nil {
		return rotation.ActiveGroupResponse{}, err
	}

	group := employee.NightGroup(req.Group)
	if !group.Valid() {
		return rotation.ActiveGroupResponse{}, rotation.ErrInvalidGroup
	}

	date := clock.Today(s.clock)
	if req.Date != "" {
		parsed, err := clock.ParseDate(req.Date)
		if err != nil {
			return rotation.ActiveGroupResponse{}, err
		}
		date = parsed
	}

	err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
		override := rotation.Override{
			ID:      uuid.Must(uuid.NewV7()).String(),
			Date:    date,
			Service: req.Service,
			Group:   group,
		}
		if err := s.rotationRepo.UpsertOverride(ctx, override); err != nil {
			return fmt.Errorf("failed to save rotation override: %w", err)
		}
		if err := s.rotationRepo.UpsertServiceDefault(ctx, req.Service, group); err != nil {
			return fmt.Errorf("failed to save rotation default: %w", err)
		}
		return nil
	})
	if err != nil {
		return rotation.ActiveGroupResponse{}, err
	}

	actor, _ := user.ActorFromContext(ctx)
	slog.Info("Night group rotated",
		"service", req.Service,
		"group", group,
		"date", date.Format(time.DateOnly),
		"by", actor.UserID)

	return rotation.NewActiveGroupResponse(rotation.Resolution{
		Service: req.Service,
		Date:    date,
		Group:   group,
		Source:  rotation.SourceOverride,
	}), nil
}

// GetActiveGroup implements rotation.RotationService.
func (s *RotationServiceImpl) GetActiveGroup(ctx context.Context, service string, date time.Time) (rotation.ActiveGroupResponse, error) {
	if service == "" {
		return rotation.ActiveGroupResponse{}, rotation.ErrServiceRequired
	}

	override, err := s.rotationRepo.GetOverride(ctx, service, date)
	if err != nil {
		return rotation.ActiveGroupResponse{}, fmt.Errorf("failed to get rotation override: %w", err)
	}

	var serviceDefault *employee.NightGroup
	if override == nil {
		serviceDefault, err = s.rotationRepo.GetServiceDefault(ctx, service)
		if err != nil {
			return rotation.ActiveGroupResponse{}, fmt.Errorf("failed to get rotation default: %w", err)
		}
	}

	return rotation.NewActiveGroupResponse(rotation.Resolve(service, date, override, serviceDefault)), nil
}

// ActiveGroups implements rotation.RotationService.
func (s *RotationServiceImpl) ActiveGroups(ctx context.Context, date time.Time) (rotation.ActiveGroups, error) {
	overrides, err := s.rotationRepo.OverridesOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list rotation overrides: %w", err)
	}
	defaults, err := s.rotationRepo.ServiceDefaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rotation defaults: %w", err)
	}

	groups := make(rotation.ActiveGroups, len(defaults)+len(overrides))
	for service, group := range defaults {
		groups[service] = group
	}
	for service, group := range overrides {
		groups[service] = group
	}
	return groups, nil
}

// History implements rotation.RotationService.
func (s *RotationServiceImpl) History(ctx context.Context) ([]rotation.OverrideResponse, error) {
	overrides, err := s.rotationRepo.History(ctx, rotation.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get rotation history: %w", err)
	}

	resp := make([]rotation.OverrideResponse, 0, len(overrides))
	for _, o := range overrides {
		resp = append(resp, rotation.OverrideResponse{
			Date:    o.Date.Format(time.DateOnly),
			Service: o.Service,
			Group:   string(o.Group),
		})
	}
	return resp, nil
}

// NightStaff implements rotation.RotationService.
func (s *RotationServiceImpl) NightStaff(ctx context.Context, date time.Time) ([]rotation.NightStaffGroup, error) {
	staff, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	active, err := s.ActiveGroups(ctx, date)
	if err != nil {
		return nil, err
	}

	type key struct {
		service string
		group   employee.NightGroup
	}
	index := make(map[key]int)
	var groups []rotation.NightStaffGroup
	for _, e := range staff {
		if e.Shift != employee.ShiftNight {
			continue
		}
		k := key{e.Service, e.NightGroup}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, rotation.NightStaffGroup{
				Service: e.Service,
				Group:   string(e.NightGroup),
				Active:  active.For(e.Service) == e.NightGroup,
			})
		}
		groups[i].Employees = append(groups[i].Employees, employee.NewEmployeeResponse(e))
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Service != groups[j].Service {
			return groups[i].Service < groups[j].Service
		}
		return groups[i].Group < groups[j].Group
	})
	if groups == nil {
		groups = []rotation.NightStaffGroup{}
	}
	return groups, nil
}

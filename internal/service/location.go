package service

import (
	"InvKeeper/internal/model"
	"InvKeeper/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LocationService - создание, смена статуса и удаление мест хранения.
type LocationService struct {
	locations repo.LocationRepository
	items     repo.ItemRepository
	logger    *zap.SugaredLogger
}

// NewLocationService создаёт сервис мест хранения.
func NewLocationService(locations repo.LocationRepository, items repo.ItemRepository, logger *zap.SugaredLogger) *LocationService {
	return &LocationService{locations: locations, items: items, logger: logger}
}

// CreateLocationInput - поля нового места. Пустые MinRole и Status получают значения по умолчанию.
type CreateLocationInput struct {
	Identifier  string
	Type        model.LocationType
	MinRole     model.Role
	MaxCapacity *uint16
	Status      model.LocationStatus
}

// List возвращает места, доступные роли role.
func (s *LocationService) List(ctx context.Context, role model.Role) ([]model.Location, error) {
	all, err := s.locations.List(ctx)
	if err != nil {
		return nil, internalErr("list locations", err)
	}
	out := make([]model.Location, 0, len(all))
	for _, loc := range all {
		if role.Covers(loc.MinRole) {
			out = append(out, loc)
		}
	}
	return out, nil
}

// Create создаёт место. Идентификатор уникален после обрезки пробелов.
func (s *LocationService) Create(ctx context.Context, in CreateLocationInput) (*model.Location, error) {
	identifier := strings.TrimSpace(in.Identifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: location identifier is required", ErrBadRequest)
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown location type %q", ErrBadRequest, in.Type)
	}
	minRole := in.MinRole
	if minRole == "" {
		minRole = model.RoleUser
	}
	if !minRole.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrBadRequest, in.MinRole)
	}
	status := in.Status
	if status == "" {
		status = model.LocationAvailable
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown location status %q", ErrBadRequest, in.Status)
	}

	if _, err := s.locations.GetByIdentifier(ctx, identifier); err == nil {
		return nil, fmt.Errorf("%w: resource already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalErr("find location", err)
	}

	loc := &model.Location{
		ID:          uuid.NewString(),
		Identifier:  identifier,
		MinRole:     minRole,
		Type:        in.Type,
		MaxCapacity: in.MaxCapacity,
		Status:      status,
	}
	created, err := s.locations.CreateIfAbsent(ctx, loc)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: resource already exists", ErrConflict)
		}
		return nil, internalErr("insert location", err)
	}
	if !created {
		return nil, fmt.Errorf("%w: resource already exists", ErrConflict)
	}
	return loc, nil
}

// ChangeStatus выставляет статус места.
func (s *LocationService) ChangeStatus(ctx context.Context, locationID string, status model.LocationStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown location status %q", ErrBadRequest, status)
	}
	id, err := parseID("location id", locationID)
	if err != nil {
		return err
	}
	if _, err := s.locations.GetByID(ctx, id); err != nil {
		return notFoundOr("load location", "location", err)
	}
	matched, err := s.locations.Update(ctx, id, map[string]any{"location_status": status})
	if err != nil {
		return internalErr("update location", err)
	}
	if matched == 0 {
		return fmt.Errorf("%w: no documents found to modify", ErrNotFound)
	}
	return nil
}

// Delete удаляет место. Место, на которое ещё ссылаются предметы, не удаляется (ErrConflict).
func (s *LocationService) Delete(ctx context.Context, locationID string) error {
	id, err := parseID("location id", locationID)
	if err != nil {
		return err
	}
	refs, err := s.items.CountByLocation(ctx, id)
	if err != nil {
		return internalErr("count items in location", err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: location still holds %d item(s)", ErrConflict, refs)
	}
	deleted, err := s.locations.Delete(ctx, id)
	if err != nil {
		return internalErr("delete location", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: location", ErrNotFound)
	}
	s.logger.Infow("location deleted", "location_id", id)
	return nil
}

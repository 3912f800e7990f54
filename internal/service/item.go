package service

import (
	"InvKeeper/internal/model"
	"InvKeeper/internal/repo"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ItemService проверяет связи между коллекциями перед изменением предметов.
//
// Все операции устроены как check-then-commit: проверка и запись - два отдельных
// обращения к хранилищу без общей транзакции. Смена места защищена сравнением версии,
// остальные изменения - по принципу «последняя запись побеждает».
type ItemService struct {
	items     repo.ItemRepository
	locations repo.LocationRepository
	users     repo.UserRepository
	logger    *zap.SugaredLogger
}

// NewItemService создаёт сервис предметов.
func NewItemService(items repo.ItemRepository, locations repo.LocationRepository, users repo.UserRepository, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{items: items, locations: locations, users: users, logger: logger}
}

// LocationChange - результат смены места предмета.
type LocationChange int

const (
	// LocationUnchanged - предмет уже лежит в этом месте, запись не выполнялась.
	LocationUnchanged LocationChange = iota
	// LocationMoved - место изменено.
	LocationMoved
)

// CreateItemInput - данные для создания предмета.
type CreateItemInput struct {
	Name       string
	Status     *model.ItemStatus
	Quantity   int
	ImageURI   *string
	LocationID string
}

// List возвращает все предметы.
func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, internalErr("list items", err)
	}
	return items, nil
}

// Create создаёт предмет. Имя сравнивается и хранится без крайних пробелов;
// статус по умолчанию - Available.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*model.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	if err := validateQuantity(in.Quantity); err != nil {
		return nil, err
	}
	locationID, err := parseID("location id", in.LocationID)
	if err != nil {
		return nil, err
	}
	status := model.ItemAvailable
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown item status %q", ErrBadRequest, *in.Status)
		}
		status = *in.Status
	}
	var image *string
	if in.ImageURI != nil {
		u, err := validateImageURI(*in.ImageURI)
		if err != nil {
			return nil, err
		}
		image = &u
	}

	if _, err := s.items.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: item %q already exists", ErrConflict, name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalErr("find item by name", err)
	}

	it := &model.Item{
		ID:          uuid.NewString(),
		Name:        name,
		Status:      status,
		Quantity:    uint8(in.Quantity),
		ImageURI:    image,
		BorrowerIDs: model.IDList{},
		LocationID:  locationID,
		Version:     1,
	}
	created, err := s.items.CreateIfAbsent(ctx, it)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: item %q already exists", ErrConflict, name)
		}
		return nil, internalErr("insert item", err)
	}
	if !created {
		// параллельный запрос успел вставить то же имя между проверкой и вставкой
		return nil, fmt.Errorf("%w: item %q already exists", ErrConflict, name)
	}
	return it, nil
}

// ChangeStatus выставляет статус. Граф переходов не ограничен.
func (s *ItemService) ChangeStatus(ctx context.Context, itemID string, status model.ItemStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown item status %q", ErrBadRequest, status)
	}
	id, err := s.existingItemID(ctx, itemID)
	if err != nil {
		return err
	}
	return s.update(ctx, id, map[string]any{"status": status})
}

// ChangeLocation переносит предмет в другое существующее место.
// Если место совпадает с текущим, возвращается LocationUnchanged без записи.
func (s *ItemService) ChangeLocation(ctx context.Context, itemID, locationID string) (LocationChange, error) {
	id, err := parseID("item id", itemID)
	if err != nil {
		return LocationUnchanged, err
	}
	target, err := parseID("location id", locationID)
	if err != nil {
		return LocationUnchanged, err
	}

	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return LocationUnchanged, notFoundOr("load item", "item", err)
	}
	if it.LocationID == target {
		return LocationUnchanged, nil
	}

	if _, err := s.locations.GetByID(ctx, target); err != nil {
		return LocationUnchanged, notFoundOr("load location", "new location", err)
	}

	_, err = s.items.UpdateWithVersion(ctx, id, it.Version, map[string]any{"location_id": target})
	if err == nil {
		return LocationMoved, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LocationUnchanged, internalErr("move item", err)
	}
	// версия не совпала: предмет удалён или изменён параллельным запросом
	if _, gerr := s.items.GetByID(ctx, id); errors.Is(gerr, gorm.ErrRecordNotFound) {
		return LocationUnchanged, fmt.Errorf("%w: item", ErrNotFound)
	}
	s.logger.Warnw("item changed concurrently, location not applied", "item_id", id, "expected_version", it.Version)
	return LocationUnchanged, fmt.Errorf("%w: item was modified concurrently", ErrConflict)
}

// AddBorrower дописывает заёмщика в конец списка. Дубликаты допустимы.
// Проверка существования пользователей грубая: коллекция users не должна быть пустой.
func (s *ItemService) AddBorrower(ctx context.Context, itemID, borrowerID string) error {
	id, err := parseID("item id", itemID)
	if err != nil {
		return err
	}
	borrower, err := parseID("borrower id", borrowerID)
	if err != nil {
		return err
	}

	n, err := s.users.Count(ctx)
	if err != nil {
		return internalErr("count users", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no users", ErrNotFound)
	}

	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return notFoundOr("load item", "item", err)
	}
	borrowers := append(model.IDList{}, it.BorrowerIDs...)
	borrowers = append(borrowers, borrower)
	return s.update(ctx, id, map[string]any{"borrower_ids": borrowers})
}

// ChangeQuantity выставляет количество (0..MaxQuantity).
func (s *ItemService) ChangeQuantity(ctx context.Context, itemID string, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	id, err := s.existingItemID(ctx, itemID)
	if err != nil {
		return err
	}
	return s.update(ctx, id, map[string]any{"quantity": uint8(quantity)})
}

// ChangeImage заменяет ссылку на изображение предмета.
func (s *ItemService) ChangeImage(ctx context.Context, itemID, imageURI string) error {
	u, err := validateImageURI(imageURI)
	if err != nil {
		return err
	}
	id, err := s.existingItemID(ctx, itemID)
	if err != nil {
		return err
	}
	return s.update(ctx, id, map[string]any{"image_uri": u})
}

func (s *ItemService) existingItemID(ctx context.Context, itemID string) (string, error) {
	id, err := parseID("item id", itemID)
	if err != nil {
		return "", err
	}
	if _, err := s.items.GetByID(ctx, id); err != nil {
		return "", notFoundOr("load item", "item", err)
	}
	return id, nil
}

// update пишет поля и сообщает NotFound, если запись исчезла между проверкой и обновлением.
func (s *ItemService) update(ctx context.Context, id string, fields map[string]any) error {
	matched, err := s.items.Update(ctx, id, fields)
	if err != nil {
		return internalErr("update item", err)
	}
	if matched == 0 {
		return fmt.Errorf("%w: no documents found to modify", ErrNotFound)
	}
	return nil
}

func validateQuantity(q int) error {
	if q < 0 || q > model.MaxQuantity {
		return fmt.Errorf("%w: quantity must be within 0..%d", ErrBadRequest, model.MaxQuantity)
	}
	return nil
}

func validateImageURI(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: image uri must be an absolute URL", ErrBadRequest)
	}
	return u.String(), nil
}

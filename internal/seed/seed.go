// Package seed заполняет пустую базу пользователями, местами и предметами из YAML-фикстуры.
package seed

import (
	"InvKeeper/internal/model"
	"InvKeeper/internal/repo"
	"InvKeeper/internal/service"
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixture - содержимое файла сидирования.
type Fixture struct {
	Users     []UserSeed     `yaml:"users"`
	Locations []LocationSeed `yaml:"locations"`
	Items     []ItemSeed     `yaml:"items"`
}

type UserSeed struct {
	FullName string     `yaml:"full_name"`
	Username string     `yaml:"username"`
	Passcode string     `yaml:"passcode"`
	Role     model.Role `yaml:"role"`
}

type LocationSeed struct {
	Identifier  string               `yaml:"identifier"`
	Type        model.LocationType   `yaml:"type"`
	MinRole     model.Role           `yaml:"min_role"`
	MaxCapacity *uint16              `yaml:"max_capacity"`
	Status      model.LocationStatus `yaml:"status"`
}

// ItemSeed ссылается на место по его идентификатору, а не по id.
type ItemSeed struct {
	Name     string            `yaml:"name"`
	Status   *model.ItemStatus `yaml:"status"`
	Quantity int               `yaml:"quantity"`
	ImageURI *string           `yaml:"image_uri"`
	Location string            `yaml:"location"`
}

// Load читает фикстуру. Неизвестные ключи считаются ошибкой.
func Load(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &f, nil
}

// Seeder применяет фикстуру. Каждая коллекция заполняется, только если она пуста.
type Seeder struct {
	Auth         *service.AuthService
	Items        *service.ItemService
	Locations    *service.LocationService
	UserRepo     repo.UserRepository
	ItemRepo     repo.ItemRepository
	LocationRepo repo.LocationRepository
	Logger       *zap.SugaredLogger
}

// Apply заводит пользователей, места и предметы фикстуры.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) error {
	n, err := s.UserRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n == 0 {
		for _, u := range f.Users {
			if _, err := s.Auth.Provision(ctx, service.ProvisionInput{
				FullName: u.FullName, Username: u.Username, Passcode: u.Passcode, Role: u.Role,
			}); err != nil {
				return fmt.Errorf("seed user %q: %w", u.Username, err)
			}
		}
		s.Logger.Infow("seeded users", "count", len(f.Users))
	} else {
		s.Logger.Infow("user seeding not required", "existing", n)
	}

	n, err = s.LocationRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count locations: %w", err)
	}
	if n == 0 {
		for _, l := range f.Locations {
			if _, err := s.Locations.Create(ctx, service.CreateLocationInput{
				Identifier: l.Identifier, Type: l.Type, MinRole: l.MinRole, MaxCapacity: l.MaxCapacity, Status: l.Status,
			}); err != nil {
				return fmt.Errorf("seed location %q: %w", l.Identifier, err)
			}
		}
		s.Logger.Infow("seeded locations", "count", len(f.Locations))
	}

	n, err = s.ItemRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		s.Logger.Infow("item seeding not required", "existing", n)
		return nil
	}
	for _, it := range f.Items {
		loc, err := s.LocationRepo.GetByIdentifier(ctx, it.Location)
		if err != nil {
			return fmt.Errorf("seed item %q: location %q: %w", it.Name, it.Location, err)
		}
		if _, err := s.Items.Create(ctx, service.CreateItemInput{
			Name: it.Name, Status: it.Status, Quantity: it.Quantity, ImageURI: it.ImageURI, LocationID: loc.ID,
		}); err != nil {
			return fmt.Errorf("seed item %q: %w", it.Name, err)
		}
	}
	s.Logger.Infow("seeded items", "count", len(f.Items))
	return nil
}

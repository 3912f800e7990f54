package commands

import (
	"InvKeeper/internal/cli/api"
	"InvKeeper/internal/config"
	"InvKeeper/internal/model"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type locationsCmd struct{}

func (locationsCmd) Name() string        { return "locations" }
func (locationsCmd) Description() string { return "Показать доступные места хранения" }
func (locationsCmd) Usage() string       { return "locations" }

func (locationsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodGet, "/locations", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	var list []model.Location
	if err := resp.Decode(&list); err != nil {
		return err
	}
	for _, l := range list {
		capacity := "-"
		if l.MaxCapacity != nil {
			capacity = strconv.Itoa(int(*l.MaxCapacity))
		}
		fmt.Fprintf(Out, "- %s  %s  type=%s  min_role=%s  capacity=%s  status=%s\n",
			l.ID, l.Identifier, l.Type, l.MinRole, capacity, l.Status)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type locationAddCmd struct{}

func (locationAddCmd) Name() string        { return "location-add" }
func (locationAddCmd) Description() string { return "Создать место хранения" }
func (locationAddCmd) Usage() string {
	return "location-add <identifier> <type> [min_role] [max_capacity]"
}

func (locationAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return ErrUsage
	}
	payload := map[string]any{"location_identifier": args[0], "location_type": args[1]}
	if len(args) >= 3 {
		payload["rbac_min_level"] = args[2]
	}
	if len(args) == 4 {
		c, err := strconv.ParseUint(args[3], 10, 16)
		if err != nil {
			return ErrUsage
		}
		payload["max_capacity"] = c
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodPost, "/locations/create", payload)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("location %q already exists", args[0])
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	var loc model.Location
	if err := resp.Decode(&loc); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created location %s\n", loc.ID)
	return nil
}

type locationDeleteCmd struct{}

func (locationDeleteCmd) Name() string        { return "location-delete" }
func (locationDeleteCmd) Description() string { return "Удалить пустое место хранения" }
func (locationDeleteCmd) Usage() string       { return "location-delete <location_id>" }

func (locationDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodDelete, "/locations/"+url.PathEscape(args[0]), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	fmt.Fprintln(Out, "Deleted")
	return nil
}

func init() {
	RegisterCmd(locationsCmd{})
	RegisterCmd(locationAddCmd{})
	RegisterCmd(locationDeleteCmd{})
}

package commands

import (
	"InvKeeper/internal/cli/api"
	"InvKeeper/internal/config"
	"InvKeeper/internal/model"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "Показать все предметы" }
func (itemsCmd) Usage() string       { return "items" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodGet, "/items", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	var list []model.Item
	if err := resp.Decode(&list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет предметов")
		return nil
	}
	for _, it := range list {
		borrowers := ""
		if len(it.BorrowerIDs) > 0 {
			borrowers = "  borrowers=" + strings.Join(it.BorrowerIDs, ",")
		}
		fmt.Fprintf(Out, "- %s  name=%s  status=%s  qty=%d  location=%s%s\n",
			it.ID, it.Name, it.Status, it.Quantity, it.LocationID, borrowers)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Создать предмет" }
func (itemAddCmd) Usage() string       { return "item-add <name> <location_id> [quantity] [status]" }

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return ErrUsage
	}
	payload := map[string]any{"name": args[0], "location_id": args[1], "quantity": 0}
	if len(args) >= 3 {
		q, err := strconv.Atoi(args[2])
		if err != nil {
			return ErrUsage
		}
		payload["quantity"] = q
	}
	if len(args) == 4 {
		payload["status"] = args[3]
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodPost, "/items/create", payload)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("item %q already exists", strings.TrimSpace(args[0]))
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	var it model.Item
	if err := resp.Decode(&it); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created item %s\n", it.ID)
	return nil
}

// patchCmd - общая форма для команд, отправляющих PATCH с двумя полями.
type patchCmd struct {
	name, desc, usage string
	path              string
	fields            [2]string
	convert           func(string) (any, error)
}

func (c patchCmd) Name() string        { return c.name }
func (c patchCmd) Description() string { return c.desc }
func (c patchCmd) Usage() string       { return c.usage }

func (c patchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	var second any = args[1]
	if c.convert != nil {
		v, err := c.convert(args[1])
		if err != nil {
			return ErrUsage
		}
		second = v
	}
	resp, err := newClient(cfg).Do(ctx, http.MethodPatch, c.path, map[string]any{
		c.fields[0]: args[0],
		c.fields[1]: second,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.StatusError(resp)
	}
	if msg := resp.Text(); msg != "" {
		fmt.Fprintln(Out, msg)
	} else {
		fmt.Fprintln(Out, "OK")
	}
	return nil
}

func atoi(s string) (any, error) { return strconv.Atoi(s) }

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemAddCmd{})
	RegisterCmd(patchCmd{
		name: "item-status", desc: "Сменить статус предмета (Available|InUse|Unavailable)",
		usage: "item-status <item_id> <status>", path: "/change-item-status",
		fields: [2]string{"item_id", "new_status"},
	})
	RegisterCmd(patchCmd{
		name: "item-move", desc: "Перенести предмет в другое место",
		usage: "item-move <item_id> <location_id>", path: "/change-item-location",
		fields: [2]string{"item_id", "new_location"},
	})
	RegisterCmd(patchCmd{
		name: "item-quantity", desc: "Изменить количество предмета",
		usage: "item-quantity <item_id> <quantity>", path: "/change-item-quantity",
		fields: [2]string{"item_id", "new_quantity"}, convert: atoi,
	})
	RegisterCmd(patchCmd{
		name: "item-borrow", desc: "Добавить заёмщика предмета",
		usage: "item-borrow <item_id> <user_id>", path: "/add-borrower",
		fields: [2]string{"item_id", "borrower_id"},
	})
	RegisterCmd(patchCmd{
		name: "location-status", desc: "Сменить статус места (Available|Unavailable)",
		usage: "location-status <location_id> <status>", path: "/locations/edit-status",
		fields: [2]string{"location_id", "new_status"},
	})
}

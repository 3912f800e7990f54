package handlers

import (
	"InvKeeper/internal/model"
	"InvKeeper/internal/service"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ItemHandler обрабатывает чтение и изменение предметов.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger}
}

type CreateItemRequest struct {
	Name       string            `json:"name"`
	Status     *model.ItemStatus `json:"status,omitempty"`
	Quantity   int               `json:"quantity"`
	ImageURI   *string           `json:"image_uri,omitempty"`
	LocationID string            `json:"location_id"`
}

type ChangeItemStatusRequest struct {
	ItemID    string           `json:"item_id"`
	NewStatus model.ItemStatus `json:"new_status"`
}

type ChangeItemLocationRequest struct {
	ItemID      string `json:"item_id"`
	NewLocation string `json:"new_location"`
}

type ChangeItemQuantityRequest struct {
	ItemID      string `json:"item_id"`
	NewQuantity int    `json:"new_quantity"`
}

type ChangeItemImageRequest struct {
	ItemID   string `json:"item_id"`
	ImageURI string `json:"image_uri"`
}

type AddBorrowerRequest struct {
	ItemID     string `json:"item_id"`
	BorrowerID string `json:"borrower_id"`
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ItemService.List(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "ListItems", err)
		return
	}
	writeJSON(w, h.Logger, items)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	it, err := h.ItemService.Create(r.Context(), service.CreateItemInput{
		Name:       req.Name,
		Status:     req.Status,
		Quantity:   req.Quantity,
		ImageURI:   req.ImageURI,
		LocationID: req.LocationID,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "CreateItem", err)
		return
	}
	writeJSON(w, h.Logger, it)
}

func (h *ItemHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req ChangeItemStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ItemService.ChangeStatus(r.Context(), req.ItemID, req.NewStatus); err != nil {
		writeServiceError(w, h.Logger, "ChangeItemStatus", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ChangeLocation отвечает 200 и в случае «места не изменилось», отличая его текстом.
func (h *ItemHandler) ChangeLocation(w http.ResponseWriter, r *http.Request) {
	var req ChangeItemLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.ItemService.ChangeLocation(r.Context(), req.ItemID, req.NewLocation)
	if err != nil {
		writeServiceError(w, h.Logger, "ChangeItemLocation", err)
		return
	}
	w.WriteHeader(http.StatusOK)
	if res == service.LocationUnchanged {
		_, _ = w.Write([]byte("Location unchanged"))
		return
	}
	_, _ = fmt.Fprintf(w, "New location set with ID %s", req.NewLocation)
}

func (h *ItemHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req ChangeItemQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ItemService.ChangeQuantity(r.Context(), req.ItemID, req.NewQuantity); err != nil {
		writeServiceError(w, h.Logger, "ChangeItemQuantity", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ItemHandler) ChangeImage(w http.ResponseWriter, r *http.Request) {
	var req ChangeItemImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ItemService.ChangeImage(r.Context(), req.ItemID, req.ImageURI); err != nil {
		writeServiceError(w, h.Logger, "ChangeItemImage", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *ItemHandler) AddBorrower(w http.ResponseWriter, r *http.Request) {
	var req AddBorrowerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.ItemService.AddBorrower(r.Context(), req.ItemID, req.BorrowerID); err != nil {
		writeServiceError(w, h.Logger, "AddBorrower", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

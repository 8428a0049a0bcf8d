package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/maisonlux/storefront/internal/cart"
	"github.com/maisonlux/storefront/internal/errors"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/utils/response"
)

type CartHandler struct {
	cartService *cart.Service
	validator   *validator.Validate
}

func NewCartHandler(service *cart.Service) *CartHandler {
	return &CartHandler{
		cartService: service,
		validator:   validator.New(),
	}
}

type cartView struct {
	Entries    []models.CartEntry `json:"entries"`
	TotalItems int                `json:"total_items"`
	TotalPrice float64            `json:"total_price"`
}

func (h *CartHandler) view() cartView {
	return cartView{
		Entries:    h.cartService.Entries(),
		TotalItems: h.cartService.TotalItems(),
		TotalPrice: h.cartService.TotalPrice(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.view())
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddItemRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		if !h.cartService.AddItem(r.Context(), req.ProductID, req.Quantity, req.Options) {
			response.Error(w, errors.UnauthorizedError("Sign in to add items to your cart"))
			return
		}

		response.Success(w, http.StatusOK, h.view())
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		entryID := r.PathValue("id")
		if entryID == "" {
			response.Error(w, errors.BadRequestError("Entry ID is required"))
			return
		}

		var req models.UpdateQuantityRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		if !h.cartService.UpdateQuantity(r.Context(), entryID, req.Quantity) {
			response.Error(w, errors.NotFoundError("Cart entry not found"))
			return
		}

		response.Success(w, http.StatusOK, h.view())
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		entryID := r.PathValue("id")
		if entryID == "" {
			response.Error(w, errors.BadRequestError("Entry ID is required"))
			return
		}

		if !h.cartService.RemoveAfter(r.Context(), entryID) {
			response.Error(w, errors.NotFoundError("Cart entry not found"))
			return
		}

		response.Success(w, http.StatusAccepted, h.view())
	}
}

func (h *CartHandler) CancelRemoval() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		entryID := r.PathValue("id")
		if entryID == "" {
			response.Error(w, errors.BadRequestError("Entry ID is required"))
			return
		}

		if !h.cartService.CancelRemoval(entryID) {
			response.Error(w, errors.NotFoundError("No pending removal for entry"))
			return
		}

		response.Success(w, http.StatusOK, h.view())
	}
}

func (h *CartHandler) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if !h.cartService.Clear(r.Context()) {
			response.Error(w, errors.BadRequestError("Cart is already empty"))
			return
		}

		response.Success(w, http.StatusAccepted, h.view())
	}
}

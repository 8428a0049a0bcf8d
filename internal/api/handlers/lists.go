package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/maisonlux/storefront/internal/errors"
	"github.com/maisonlux/storefront/internal/lists"
	"github.com/maisonlux/storefront/internal/utils/response"
)

type ListsHandler struct {
	listsService *lists.Service
	validator    *validator.Validate
}

func NewListsHandler(service *lists.Service) *ListsHandler {
	return &ListsHandler{
		listsService: service,
		validator:    validator.New(),
	}
}

type listsView struct {
	Wishlist []string `json:"wishlist"`
	Compare  []string `json:"compare"`
}

type toggleListRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func (h *ListsHandler) GetLists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, listsView{
			Wishlist: h.listsService.Wishlist(),
			Compare:  h.listsService.Compare(),
		})
	}
}

func (h *ListsHandler) ToggleWishlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req toggleListRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		present := h.listsService.ToggleWishlist(r.Context(), req.ProductID)
		response.Success(w, http.StatusOK, map[string]bool{"in_wishlist": present})
	}
}

func (h *ListsHandler) ToggleCompare() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req toggleListRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		present := h.listsService.ToggleCompare(r.Context(), req.ProductID)
		response.Success(w, http.StatusOK, map[string]bool{"in_compare": present})
	}
}

func (h *ListsHandler) requireProductID(w http.ResponseWriter, r *http.Request) (string, bool) {
	productID := r.PathValue("id")
	if productID == "" {
		response.Error(w, errors.BadRequestError("Product ID is required"))
		return "", false
	}

	return productID, true
}

func (h *ListsHandler) GetMembership() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID, ok := h.requireProductID(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{
			"in_wishlist": h.listsService.InWishlist(productID),
			"in_compare":  h.listsService.InCompare(productID),
		})
	}
}

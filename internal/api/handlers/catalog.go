package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/maisonlux/storefront/internal/catalog"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/utils/response"
)

type CatalogHandler struct {
	catalogService *catalog.Service
	validator      *validator.Validate
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: service,
		validator:      validator.New(),
	}
}

type catalogView struct {
	Page models.PageResult `json:"page"`
	Spec models.FilterSpec `json:"spec"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type priceRequest struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type toggleRequest struct {
	Value string `json:"value" validate:"required"`
}

type sortRequest struct {
	Sort models.SortKey `json:"sort" validate:"required"`
}

type viewRequest struct {
	View models.ViewMode `json:"view" validate:"required,oneof=grid list"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type pageRequest struct {
	Page int `json:"page" validate:"required"`
}

type pageSizeRequest struct {
	PageSize int `json:"page_size" validate:"required,gt=0"`
}

func (h *CatalogHandler) GetPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, catalogView{
			Page: h.catalogService.Page(),
			Spec: h.catalogService.Spec(),
		})
	}
}

func (h *CatalogHandler) GetCounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalogService.CategoryCounts())
	}
}

func (h *CatalogHandler) SetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		response.Success(w, http.StatusOK, h.catalogService.SetCategory(req.Category))
	}
}

func (h *CatalogHandler) SetPriceRange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req priceRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		response.Success(w, http.StatusOK, h.catalogService.SetPriceRange(req.Min, req.Max))
	}
}

func (h *CatalogHandler) ToggleBrand() http.HandlerFunc {
	return h.toggle(h.catalogService.ToggleBrand)
}

func (h *CatalogHandler) ToggleColor() http.HandlerFunc {
	return h.toggle(h.catalogService.ToggleColor)
}

func (h *CatalogHandler) ToggleSize() http.HandlerFunc {
	return h.toggle(h.catalogService.ToggleSize)
}

func (h *CatalogHandler) ToggleSpecial() http.HandlerFunc {
	return h.toggle(h.catalogService.ToggleSpecial)
}

func (h *CatalogHandler) toggle(apply func(string) models.PageResult) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		response.Success(w, http.StatusOK, apply(req.Value))
	}
}

func (h *CatalogHandler) SetSort() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sortRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		response.Success(w, http.StatusOK, h.catalogService.SetSort(req.Sort))
	}
}

func (h *CatalogHandler) SetView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req viewRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		h.catalogService.SetView(req.View)
		response.Success(w, http.StatusOK, catalogView{
			Page: h.catalogService.Page(),
			Spec: h.catalogService.Spec(),
		})
	}
}

func (h *CatalogHandler) SetPageSize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageSizeRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		response.Success(w, http.StatusOK, h.catalogService.SetPageSize(req.PageSize))
	}
}

func (h *CatalogHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		response.Success(w, http.StatusOK, h.catalogService.SearchNow(req.Query))
	}
}

func (h *CatalogHandler) GoToPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pageRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		response.Success(w, http.StatusOK, h.catalogService.GoToPage(req.Page))
	}
}

func (h *CatalogHandler) ResetFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalogService.ResetFilters())
	}
}

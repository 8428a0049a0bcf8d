package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/maisonlux/storefront/internal/analytics"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/utils/response"
)

type AnalyticsHandler struct {
	tracker   *analytics.Tracker
	validator *validator.Validate
}

func NewAnalyticsHandler(tracker *analytics.Tracker) *AnalyticsHandler {
	return &AnalyticsHandler{
		tracker:   tracker,
		validator: validator.New(),
	}
}

func (h *AnalyticsHandler) Track() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.TrackEventRequest
		if err := decodeJSONBody(w, r, &req); err != nil {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		h.tracker.Track(r.Context(), req.Category, req.Action, req.Payload)
		response.Success(w, http.StatusAccepted, map[string]int{"pending": h.tracker.PendingCount()})
	}
}

func (h *AnalyticsHandler) Flush() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.tracker.Flush(r.Context())
		response.Success(w, http.StatusOK, map[string]int{"pending": h.tracker.PendingCount()})
	}
}

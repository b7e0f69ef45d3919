package handlers

import (
	"encoding/json"
	"net/http"

	"aitutor/services"

	"github.com/gorilla/mux"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/analytics/dashboard/{course_id}", h.Dashboard).Methods("GET")
}

func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["course_id"]

	dashboard, err := h.service.Dashboard(courseID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, dashboard)
}

func (h *AnalyticsHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *AnalyticsHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

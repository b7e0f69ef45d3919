package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"aitutor/db"
	"aitutor/models"
	"aitutor/services"

	"github.com/gorilla/mux"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/chat/ask", h.Ask).Methods("POST")
	router.HandleFunc("/chat/history/{material_id}", h.History).Methods("GET")
}

func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received chat ask request")

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode chat request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	response, err := h.service.Ask(r.Context(), &req)
	if err != nil {
		if errors.Is(err, db.ErrMaterialNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Material not found")
			return
		}
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	materialID := mux.Vars(r)["material_id"]

	entries, err := h.service.History(materialID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.ChatHistoryResponse{
		MaterialID: materialID,
		History:    entries,
		Count:      len(entries),
	})
}

func (h *ChatHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *ChatHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

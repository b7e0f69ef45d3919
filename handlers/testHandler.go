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

type TestHandler struct {
	service *services.TestService
}

func NewTestHandler(service *services.TestService) *TestHandler {
	return &TestHandler{service: service}
}

func (h *TestHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/tests/generate", h.GenerateTest).Methods("POST")
	router.HandleFunc("/tests/submit-answer", h.SubmitAnswer).Methods("POST")
}

func (h *TestHandler) GenerateTest(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received test generation request")

	var req models.TestGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode test generation request JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	response, err := h.service.GenerateTest(r.Context(), &req)
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

func (h *TestHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received answer submission")

	var req models.AnswerSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[ERROR] Failed to decode answer submission JSON: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	response, err := h.service.SubmitAnswer(&req)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrTestNotFound):
			h.writeErrorResponse(w, http.StatusNotFound, "Test not found")
		case errors.Is(err, services.ErrQuestionOutOfRange):
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

func (h *TestHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *TestHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

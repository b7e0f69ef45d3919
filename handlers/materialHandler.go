package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"aitutor/models"
	"aitutor/services"

	"github.com/gorilla/mux"
)

const maxUploadBytes = 32 << 20

type MaterialHandler struct {
	service *services.MaterialService
}

func NewMaterialHandler(service *services.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: service}
}

func (h *MaterialHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/materials/upload", h.UploadMaterial).Methods("POST")
	router.HandleFunc("/materials/list/{course_id}", h.ListMaterials).Methods("GET")
}

func (h *MaterialHandler) UploadMaterial(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received material upload request")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("[ERROR] Missing file in upload request: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "A file field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[ERROR] Failed to read uploaded file: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	material, err := h.service.UploadMaterial(header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnsupportedType),
			errors.Is(err, services.ErrContentTooShort),
			errors.Is(err, services.ErrExtractionFailed):
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.UploadResponse{
		MaterialID: material.ID,
		Title:      material.Title,
		TextLength: material.ContentLength,
		Message:    "Material uploaded successfully",
	})
}

func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["course_id"]
	search := r.URL.Query().Get("search")

	summaries, err := h.service.ListMaterials(courseID, search)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.MaterialListResponse{
		Materials: summaries,
		Count:     len(summaries),
		CourseID:  courseID,
	})
}

func (h *MaterialHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *MaterialHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

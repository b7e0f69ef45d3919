package services

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"strings"
	"time"
	"unicode/utf8"

	"aitutor/db"
	"aitutor/models"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// DemoCourseID is the single course every upload lands in.
const DemoCourseID = "demo-course"

const minContentLength = 10

var (
	ErrUnsupportedType  = errors.New("only PDF and TXT files are supported")
	ErrContentTooShort  = errors.New("file is too small or empty")
	ErrExtractionFailed = errors.New("failed to extract text")
)

type MaterialService struct {
	store db.Store
}

func NewMaterialService(store db.Store) *MaterialService {
	return &MaterialService{store: store}
}

func (s *MaterialService) UploadMaterial(filename, contentType string, content []byte) (*models.Material, error) {
	log.Printf("[INFO] Starting material upload for %q", filename)

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		log.Printf("[ERROR] Invalid content type %q: %v", contentType, err)
		return nil, ErrUnsupportedType
	}

	if mediaType != ContentTypePDF && mediaType != ContentTypeText {
		log.Printf("[ERROR] Unsupported content type %q for %q", mediaType, filename)
		return nil, ErrUnsupportedType
	}

	text, err := ExtractText(content, mediaType)
	if err != nil {
		log.Printf("[ERROR] Text extraction failed for %q: %v", filename, err)
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	// Length in characters, not bytes.
	length := utf8.RuneCountInString(text)
	if length < minContentLength {
		log.Printf("[ERROR] Extracted content too short for %q: %d characters", filename, length)
		return nil, ErrContentTooShort
	}

	material := &models.Material{
		ID:            uuid.NewString(),
		CourseID:      DemoCourseID,
		Title:         filename,
		Content:       text,
		ContentLength: length,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateMaterial(material); err != nil {
		log.Printf("[ERROR] Failed to store material %q: %v", filename, err)
		return nil, fmt.Errorf("failed to store material: %w", err)
	}

	log.Printf("[INFO] Successfully uploaded material %s (%d characters)", material.ID, length)
	return material, nil
}

func (s *MaterialService) GetMaterialByID(id string) (*models.Material, error) {
	return s.store.GetMaterialByID(id)
}

// ListMaterials returns summaries of a course's materials, optionally
// filtered by a fuzzy search over title and content.
func (s *MaterialService) ListMaterials(courseID, search string) ([]models.MaterialSummary, error) {
	log.Printf("[INFO] Listing materials for course %q", courseID)

	materials, err := s.store.GetAllMaterials()
	if err != nil {
		log.Printf("[ERROR] Failed to get materials: %v", err)
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}

	courseMaterials := lo.Filter(materials, func(material *models.Material, _ int) bool {
		return material.CourseID == courseID
	})

	if terms := strings.Fields(search); len(terms) > 0 {
		courseMaterials = lo.Filter(courseMaterials, func(material *models.Material, _ int) bool {
			return s.materialMatchesSearch(material, terms)
		})
	}

	summaries := lo.Map(courseMaterials, func(material *models.Material, _ int) models.MaterialSummary {
		return models.MaterialSummary{
			ID:            material.ID,
			Title:         material.Title,
			ContentLength: material.ContentLength,
			CreatedAt:     material.CreatedAt,
		}
	})

	log.Printf("[INFO] Found %d materials for course %q", len(summaries), courseID)
	return summaries, nil
}

func (s *MaterialService) materialMatchesSearch(material *models.Material, searchTerms []string) bool {
	haystack := material.Title + " " + material.Content
	words := strings.Fields(strings.ToLower(haystack))

	cleanWords := make([]string, 0, len(words))
	for _, word := range words {
		cleanWord := strings.Trim(word, ".,!?;:()[]{}\"'")
		if len(cleanWord) > 0 {
			cleanWords = append(cleanWords, cleanWord)
		}
	}

	for _, term := range searchTerms {
		if fuzzy.MatchFold(term, haystack) {
			return true
		}

		if matches := fuzzy.Find(term, cleanWords); len(matches) > 0 {
			return true
		}
	}

	return false
}

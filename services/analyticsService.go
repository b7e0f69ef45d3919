package services

import (
	"fmt"
	"log"
	"time"

	"aitutor/db"
	"aitutor/models"

	"github.com/samber/lo"
)

type AnalyticsService struct {
	store db.Store
}

func NewAnalyticsService(store db.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Dashboard rolls up one course's materials. The chat, test and result
// counters are process-wide, not scoped to the course.
func (s *AnalyticsService) Dashboard(courseID string) (*models.AnalyticsDashboard, error) {
	log.Printf("[INFO] Building analytics dashboard for course %q", courseID)

	materials, err := s.store.GetAllMaterials()
	if err != nil {
		log.Printf("[ERROR] Failed to get materials: %v", err)
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}

	courseMaterials := lo.Filter(materials, func(material *models.Material, _ int) bool {
		return material.CourseID == courseID
	})

	totalContentLength := lo.SumBy(courseMaterials, func(material *models.Material) int {
		return material.ContentLength
	})

	summaries := lo.Map(courseMaterials, func(material *models.Material, _ int) models.MaterialSummary {
		return models.MaterialSummary{
			ID:            material.ID,
			Title:         material.Title,
			ContentLength: material.ContentLength,
			CreatedAt:     material.CreatedAt,
		}
	})

	history, err := s.store.GetChatHistory()
	if err != nil {
		log.Printf("[ERROR] Failed to get chat history: %v", err)
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	testsCount, err := s.store.CountTests()
	if err != nil {
		log.Printf("[ERROR] Failed to count tests: %v", err)
		return nil, fmt.Errorf("failed to count tests: %w", err)
	}

	resultsCount, err := s.store.CountTestResults()
	if err != nil {
		log.Printf("[ERROR] Failed to count test results: %v", err)
		return nil, fmt.Errorf("failed to count test results: %w", err)
	}

	log.Printf("[INFO] Dashboard for course %q: %d materials, %d chat entries, %d tests",
		courseID, len(courseMaterials), len(history), testsCount)
	return &models.AnalyticsDashboard{
		CourseID:           courseID,
		TotalMaterials:     len(courseMaterials),
		TotalContentLength: totalContentLength,
		Materials:          summaries,
		ChatHistoryCount:   len(history),
		TestsCount:         testsCount,
		TestResultsCount:   resultsCount,
		LastUpdate:         time.Now(),
	}, nil
}

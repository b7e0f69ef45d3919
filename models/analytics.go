package models

import "time"

// AnalyticsDashboard rolls up one course's materials plus the global
// chat/test counters, which are not scoped to a course.
type AnalyticsDashboard struct {
	CourseID           string            `json:"course_id"`
	TotalMaterials     int               `json:"total_materials"`
	TotalContentLength int               `json:"total_content_length"`
	Materials          []MaterialSummary `json:"materials"`
	ChatHistoryCount   int               `json:"chat_history_count"`
	TestsCount         int               `json:"tests_count"`
	TestResultsCount   int               `json:"test_results_count"`
	LastUpdate         time.Time         `json:"last_update"`
}

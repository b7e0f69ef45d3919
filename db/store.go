package db

import (
	"errors"

	"aitutor/models"
)

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrTestNotFound     = errors.New("test not found")
)

// Store holds the platform's four containers: materials, tests, the chat
// history log and the test result log. Implementations must be safe for
// concurrent use by HTTP handlers.
type Store interface {
	CreateMaterial(material *models.Material) error
	GetMaterialByID(id string) (*models.Material, error)
	GetAllMaterials() ([]*models.Material, error)

	CreateTest(test *models.Test) error
	GetTestByID(id string) (*models.Test, error)
	CountTests() (int, error)

	AppendChatEntry(entry *models.ChatHistoryEntry) error
	GetChatHistory() ([]*models.ChatHistoryEntry, error)

	AppendTestResult(result *models.TestResult) error
	CountTestResults() (int, error)

	Close() error
}

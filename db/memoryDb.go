package db

import (
	"fmt"
	"sync"

	"aitutor/models"
)

// MemoryStore keeps everything in process memory. Records are immutable once
// stored, so reads hand back the stored pointers directly. State is lost on
// process exit and grows without bound.
type MemoryStore struct {
	mu            sync.RWMutex
	materials     map[string]*models.Material
	materialOrder []string
	tests         map[string]*models.Test
	chatHistory   []*models.ChatHistoryEntry
	testResults   []*models.TestResult
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		materials: make(map[string]*models.Material),
		tests:     make(map[string]*models.Test),
	}
}

func (s *MemoryStore) CreateMaterial(material *models.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.materials[material.ID]; exists {
		return fmt.Errorf("material with id %s already exists", material.ID)
	}

	s.materials[material.ID] = material
	s.materialOrder = append(s.materialOrder, material.ID)
	return nil
}

func (s *MemoryStore) GetMaterialByID(id string) (*models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	material, ok := s.materials[id]
	if !ok {
		return nil, fmt.Errorf("material with id %s: %w", id, ErrMaterialNotFound)
	}
	return material, nil
}

func (s *MemoryStore) GetAllMaterials() ([]*models.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	materials := make([]*models.Material, 0, len(s.materialOrder))
	for _, id := range s.materialOrder {
		materials = append(materials, s.materials[id])
	}
	return materials, nil
}

func (s *MemoryStore) CreateTest(test *models.Test) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tests[test.ID]; exists {
		return fmt.Errorf("test with id %s already exists", test.ID)
	}

	s.tests[test.ID] = test
	return nil
}

func (s *MemoryStore) GetTestByID(id string) (*models.Test, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	test, ok := s.tests[id]
	if !ok {
		return nil, fmt.Errorf("test with id %s: %w", id, ErrTestNotFound)
	}
	return test, nil
}

func (s *MemoryStore) CountTests() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tests), nil
}

func (s *MemoryStore) AppendChatEntry(entry *models.ChatHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chatHistory = append(s.chatHistory, entry)
	return nil
}

func (s *MemoryStore) GetChatHistory() ([]*models.ChatHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]*models.ChatHistoryEntry, len(s.chatHistory))
	copy(history, s.chatHistory)
	return history, nil
}

func (s *MemoryStore) AppendTestResult(result *models.TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.testResults = append(s.testResults, result)
	return nil
}

func (s *MemoryStore) CountTestResults() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.testResults), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

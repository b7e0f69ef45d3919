package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"aitutor/models"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS materials (
	id TEXT PRIMARY KEY,
	course_id TEXT NOT NULL,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	content_length INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tests (
	id TEXT PRIMARY KEY,
	material_id TEXT NOT NULL,
	material_title TEXT NOT NULL,
	questions JSONB NOT NULL,
	difficulty TEXT NOT NULL,
	degraded BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS chat_history (
	id SERIAL PRIMARY KEY,
	material_id TEXT NOT NULL,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS test_results (
	id SERIAL PRIMARY KEY,
	test_id TEXT NOT NULL,
	question_id INTEGER NOT NULL,
	selected_answer INTEGER NOT NULL,
	is_correct BOOLEAN NOT NULL,
	time_spent INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);`

// PostgresStore is the durable Store used when DB_URL is configured.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) CreateMaterial(material *models.Material) error {
	query := `
		INSERT INTO materials (id, course_id, title, content, content_length, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.Exec(query, material.ID, material.CourseID, material.Title,
		material.Content, material.ContentLength, material.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetMaterialByID(id string) (*models.Material, error) {
	query := `
		SELECT id, course_id, title, content, content_length, created_at
		FROM materials
		WHERE id = $1`

	material := &models.Material{}
	row := s.db.QueryRow(query, id)

	err := row.Scan(&material.ID, &material.CourseID, &material.Title,
		&material.Content, &material.ContentLength, &material.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("material with id %s: %w", id, ErrMaterialNotFound)
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	return material, nil
}

func (s *PostgresStore) GetAllMaterials() ([]*models.Material, error) {
	query := `
		SELECT id, course_id, title, content, content_length, created_at
		FROM materials
		ORDER BY created_at ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]*models.Material, 0)
	for rows.Next() {
		material := &models.Material{}
		err := rows.Scan(&material.ID, &material.CourseID, &material.Title,
			&material.Content, &material.ContentLength, &material.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, material)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over materials: %w", err)
	}

	return materials, nil
}

func (s *PostgresStore) CreateTest(test *models.Test) error {
	questionsJSON, err := json.Marshal(test.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}

	query := `
		INSERT INTO tests (id, material_id, material_title, questions, difficulty, degraded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.db.Exec(query, test.ID, test.MaterialID, test.MaterialTitle,
		questionsJSON, test.Difficulty, test.Degraded, test.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create test: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetTestByID(id string) (*models.Test, error) {
	query := `
		SELECT id, material_id, material_title, questions, difficulty, degraded, created_at
		FROM tests
		WHERE id = $1`

	test := &models.Test{}
	var questionsJSON []byte
	row := s.db.QueryRow(query, id)

	err := row.Scan(&test.ID, &test.MaterialID, &test.MaterialTitle,
		&questionsJSON, &test.Difficulty, &test.Degraded, &test.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("test with id %s: %w", id, ErrTestNotFound)
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &test.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}

	return test, nil
}

func (s *PostgresStore) CountTests() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tests").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tests: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) AppendChatEntry(entry *models.ChatHistoryEntry) error {
	query := `
		INSERT INTO chat_history (material_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := s.db.Exec(query, entry.MaterialID, entry.Question, entry.Answer, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append chat entry: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetChatHistory() ([]*models.ChatHistoryEntry, error) {
	query := `
		SELECT material_id, question, answer, created_at
		FROM chat_history
		ORDER BY created_at ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	history := make([]*models.ChatHistoryEntry, 0)
	for rows.Next() {
		entry := &models.ChatHistoryEntry{}
		err := rows.Scan(&entry.MaterialID, &entry.Question, &entry.Answer, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat entry: %w", err)
		}
		history = append(history, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over chat history: %w", err)
	}

	return history, nil
}

func (s *PostgresStore) AppendTestResult(result *models.TestResult) error {
	query := `
		INSERT INTO test_results (test_id, question_id, selected_answer, is_correct, time_spent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.Exec(query, result.TestID, result.QuestionID, result.SelectedAnswer,
		result.IsCorrect, result.TimeSpent, result.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append test result: %w", err)
	}

	return nil
}

func (s *PostgresStore) CountTestResults() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM test_results").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count test results: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

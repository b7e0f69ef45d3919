package models

import "time"

type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

type Test struct {
	ID            string     `json:"id"`
	MaterialID    string     `json:"material_id"`
	MaterialTitle string     `json:"material_title"`
	Questions     []Question `json:"questions"`
	Difficulty    string     `json:"difficulty"`
	Degraded      bool       `json:"degraded"`
	CreatedAt     time.Time  `json:"created_at"`
}

type TestGenerationRequest struct {
	MaterialID   string `json:"material_id"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

type TestGenerationResponse struct {
	TestID        string     `json:"test_id"`
	Questions     []Question `json:"questions"`
	Difficulty    string     `json:"difficulty"`
	MaterialTitle string     `json:"material_title"`
	Degraded      bool       `json:"degraded"`
}

// AnswerSubmission references a question by its index within the test.
type AnswerSubmission struct {
	TestID         string `json:"test_id"`
	QuestionID     int    `json:"question_id"`
	SelectedAnswer int    `json:"selected_answer"`
	TimeSpent      int    `json:"time_spent"`
}

type TestResult struct {
	TestID         string    `json:"test_id"`
	QuestionID     int       `json:"question_id"`
	SelectedAnswer int       `json:"selected_answer"`
	IsCorrect      bool      `json:"is_correct"`
	TimeSpent      int       `json:"time_spent"`
	Timestamp      time.Time `json:"timestamp"`
}

type AnswerResponse struct {
	IsCorrect   bool        `json:"is_correct"`
	Feedback    string      `json:"feedback"`
	Explanation string      `json:"explanation"`
	Result      *TestResult `json:"result"`
}

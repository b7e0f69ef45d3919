package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aitutor/db"
	"aitutor/models"

	"github.com/google/uuid"
)

const (
	testContextLimit    = 1500
	defaultNumQuestions = 5
	defaultDifficulty   = "medium"
)

var ErrQuestionOutOfRange = errors.New("question index out of range")

const testGenerationPrompt = `Create %d multiple-choice questions about the following material:
%s...

Response format (strict JSON):
[
    {
        "question": "Question text",
        "options": ["Option A", "Option B", "Option C", "Option D"],
        "correct": 0,
        "explanation": "Explanation of the correct answer"
    }
]
Difficulty: %s`

// fallbackQuestions is the fixed set substituted when the model's output
// cannot be parsed as the expected JSON array.
var fallbackQuestions = []models.Question{
	{
		Question:    "What is the main topic of this material?",
		Options:     []string{"Technology", "Science", "Art", "Sports"},
		Correct:     0,
		Explanation: "The material is about technology and innovation",
	},
	{
		Question:    "Which key concepts are covered?",
		Options:     []string{"Fundamentals", "Advanced topics", "History", "The future"},
		Correct:     1,
		Explanation: "The material covers advanced topics in the field",
	},
}

type TestService struct {
	store      db.Store
	completion *CompletionService
}

func NewTestService(store db.Store, completion *CompletionService) *TestService {
	return &TestService{store: store, completion: completion}
}

// GenerateTest builds a multiple-choice test from a material. When the model
// returns something that is not the requested JSON array, the fixed fallback
// set is stored instead and the test is marked degraded.
func (s *TestService) GenerateTest(ctx context.Context, req *models.TestGenerationRequest) (*models.TestGenerationResponse, error) {
	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = defaultNumQuestions
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = defaultDifficulty
	}

	log.Printf("[INFO] Starting test generation for material %s (%d questions, %s)",
		req.MaterialID, numQuestions, difficulty)

	material, err := s.store.GetMaterialByID(req.MaterialID)
	if err != nil {
		log.Printf("[ERROR] Material lookup failed: %v", err)
		return nil, err
	}

	prompt := fmt.Sprintf(testGenerationPrompt,
		numQuestions, truncateRunes(material.Content, testContextLimit), difficulty)

	responseText, err := s.completion.Complete(ctx, prompt, "")
	if err != nil {
		return nil, err
	}

	degraded := false
	questions, err := parseQuestions(responseText)
	if err != nil {
		log.Printf("[ERROR] Failed to parse generated questions, using fallback set: %v", err)
		questions = fallbackQuestions[:min(numQuestions, len(fallbackQuestions))]
		degraded = true
	}

	test := &models.Test{
		ID:            uuid.NewString(),
		MaterialID:    req.MaterialID,
		MaterialTitle: material.Title,
		Questions:     questions,
		Difficulty:    difficulty,
		Degraded:      degraded,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateTest(test); err != nil {
		log.Printf("[ERROR] Failed to store test: %v", err)
		return nil, fmt.Errorf("failed to store test: %w", err)
	}

	log.Printf("[INFO] Successfully generated test %s with %d questions (degraded=%t)",
		test.ID, len(questions), degraded)
	return &models.TestGenerationResponse{
		TestID:        test.ID,
		Questions:     questions,
		Difficulty:    difficulty,
		MaterialTitle: material.Title,
		Degraded:      degraded,
	}, nil
}

// SubmitAnswer grades a selected option against the stored test's answer key
// and appends the outcome to the result log.
func (s *TestService) SubmitAnswer(req *models.AnswerSubmission) (*models.AnswerResponse, error) {
	log.Printf("[INFO] Grading answer for test %s question %d", req.TestID, req.QuestionID)

	test, err := s.store.GetTestByID(req.TestID)
	if err != nil {
		log.Printf("[ERROR] Test lookup failed: %v", err)
		return nil, err
	}

	if req.QuestionID < 0 || req.QuestionID >= len(test.Questions) {
		log.Printf("[ERROR] Question index %d out of range for test %s", req.QuestionID, req.TestID)
		return nil, fmt.Errorf("%w: test %s has %d questions", ErrQuestionOutOfRange, req.TestID, len(test.Questions))
	}

	question := test.Questions[req.QuestionID]
	isCorrect := req.SelectedAnswer == question.Correct

	result := &models.TestResult{
		TestID:         req.TestID,
		QuestionID:     req.QuestionID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      isCorrect,
		TimeSpent:      req.TimeSpent,
		Timestamp:      time.Now(),
	}

	if err := s.store.AppendTestResult(result); err != nil {
		log.Printf("[ERROR] Failed to append test result: %v", err)
		return nil, fmt.Errorf("failed to append test result: %w", err)
	}

	feedback := "Correct!"
	if !isCorrect {
		feedback = "Incorrect, try again"
	}

	log.Printf("[INFO] Graded answer for test %s question %d: correct=%t", req.TestID, req.QuestionID, isCorrect)
	return &models.AnswerResponse{
		IsCorrect:   isCorrect,
		Feedback:    feedback,
		Explanation: question.Explanation,
		Result:      result,
	}, nil
}

func parseQuestions(responseText string) ([]models.Question, error) {
	var questions []models.Question
	if err := json.Unmarshal([]byte(stripMarkdownFences(responseText)), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions JSON: %w", err)
	}
	return questions, nil
}

// stripMarkdownFences removes a surrounding ```json code block, which models
// frequently wrap JSON output in.
func stripMarkdownFences(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	return strings.TrimSpace(content)
}

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"aitutor/db"
	"aitutor/models"

	"github.com/samber/lo"
)

// chatContextLimit caps how much material content is passed as context.
const chatContextLimit = 2000

type ChatService struct {
	store      db.Store
	completion *CompletionService
}

func NewChatService(store db.Store, completion *CompletionService) *ChatService {
	return &ChatService{store: store, completion: completion}
}

// Ask answers a question about a stored material and appends the exchange to
// the chat history log.
func (s *ChatService) Ask(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	log.Printf("[INFO] Starting chat ask for material %s", req.MaterialID)

	if req.Question == "" {
		return nil, fmt.Errorf("question is required")
	}

	material, err := s.store.GetMaterialByID(req.MaterialID)
	if err != nil {
		log.Printf("[ERROR] Material lookup failed: %v", err)
		return nil, err
	}

	contextBlock := fmt.Sprintf("Based on the following material: %s...",
		truncateRunes(material.Content, chatContextLimit))

	answer, err := s.completion.Complete(ctx, req.Question, contextBlock)
	if err != nil {
		return nil, err
	}

	entry := &models.ChatHistoryEntry{
		MaterialID: req.MaterialID,
		Question:   req.Question,
		Answer:     answer,
		CreatedAt:  time.Now(),
	}

	if err := s.store.AppendChatEntry(entry); err != nil {
		log.Printf("[ERROR] Failed to append chat entry: %v", err)
		return nil, fmt.Errorf("failed to append chat entry: %w", err)
	}

	log.Printf("[INFO] Successfully answered question for material %s", req.MaterialID)
	return &models.ChatResponse{
		Question:  req.Question,
		Answer:    answer,
		Sources:   []string{material.Title},
		Timestamp: entry.CreatedAt,
	}, nil
}

// History returns the chat log entries recorded for one material.
func (s *ChatService) History(materialID string) ([]models.ChatHistoryEntry, error) {
	log.Printf("[INFO] Retrieving chat history for material %s", materialID)

	history, err := s.store.GetChatHistory()
	if err != nil {
		log.Printf("[ERROR] Failed to get chat history: %v", err)
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	entries := lo.FilterMap(history, func(entry *models.ChatHistoryEntry, _ int) (models.ChatHistoryEntry, bool) {
		return *entry, entry.MaterialID == materialID
	})

	log.Printf("[INFO] Found %d chat entries for material %s", len(entries), materialID)
	return entries, nil
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

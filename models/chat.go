package models

import "time"

type ChatRequest struct {
	MaterialID string `json:"material_id"`
	Question   string `json:"question"`
}

type ChatHistoryEntry struct {
	MaterialID string    `json:"material_id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChatResponse struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Sources   []string  `json:"sources"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatHistoryResponse struct {
	MaterialID string             `json:"material_id"`
	History    []ChatHistoryEntry `json:"history"`
	Count      int                `json:"count"`
}

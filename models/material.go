package models

import "time"

type Material struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"course_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ContentLength int       `json:"content_length"`
	CreatedAt     time.Time `json:"created_at"`
}

// MaterialSummary is the listing shape: everything but the content body.
type MaterialSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ContentLength int       `json:"content_length"`
	CreatedAt     time.Time `json:"created_at"`
}

type UploadResponse struct {
	MaterialID string `json:"material_id"`
	Title      string `json:"title"`
	TextLength int    `json:"text_length"`
	Message    string `json:"message"`
}

type MaterialListResponse struct {
	Materials []MaterialSummary `json:"materials"`
	Count     int               `json:"count"`
	CourseID  string            `json:"course_id"`
}

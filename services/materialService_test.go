package services

import (
	"errors"
	"testing"

	"aitutor/db"
	"aitutor/models"
)

func TestUploadMaterialPlainText(t *testing.T) {
	store := db.NewMemoryStore()
	service := NewMaterialService(store)

	content := "Hello world, this is a test document."
	material, err := service.UploadMaterial("notes.txt", "text/plain", []byte(content))
	if err != nil {
		t.Fatalf("UploadMaterial() returned error: %v", err)
	}

	if material.ID == "" {
		t.Error("expected a generated material id")
	}
	if material.CourseID != DemoCourseID {
		t.Errorf("CourseID = %q, expected %q", material.CourseID, DemoCourseID)
	}
	if material.Title != "notes.txt" {
		t.Errorf("Title = %q, expected %q", material.Title, "notes.txt")
	}
	if material.ContentLength != 38 {
		t.Errorf("ContentLength = %d, expected 38", material.ContentLength)
	}

	stored, err := store.GetMaterialByID(material.ID)
	if err != nil {
		t.Fatalf("uploaded material not found in store: %v", err)
	}
	if stored.Content != content {
		t.Errorf("stored content = %q, expected %q", stored.Content, content)
	}
}

func TestUploadMaterialCountsRunes(t *testing.T) {
	store := db.NewMemoryStore()
	service := NewMaterialService(store)

	// 12 characters, more than 12 bytes.
	content := "Привет, мир!"
	material, err := service.UploadMaterial("notes.txt", "text/plain; charset=utf-8", []byte(content))
	if err != nil {
		t.Fatalf("UploadMaterial() returned error: %v", err)
	}
	if material.ContentLength != 12 {
		t.Errorf("ContentLength = %d, expected 12 (runes, not bytes)", material.ContentLength)
	}
}

func TestUploadMaterialGeneratesUniqueIDs(t *testing.T) {
	store := db.NewMemoryStore()
	service := NewMaterialService(store)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		material, err := service.UploadMaterial("notes.txt", "text/plain", []byte("some study material content"))
		if err != nil {
			t.Fatalf("UploadMaterial() returned error: %v", err)
		}
		if seen[material.ID] {
			t.Fatalf("duplicate material id issued: %s", material.ID)
		}
		seen[material.ID] = true
	}
}

func TestUploadMaterialRejections(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		content     []byte
		expectedErr error
	}{
		{
			name:        "unsupported content type",
			filename:    "image.png",
			contentType: "image/png",
			content:     []byte("binary image data here"),
			expectedErr: ErrUnsupportedType,
		},
		{
			name:        "garbage content type",
			filename:    "file.bin",
			contentType: ";;;",
			content:     []byte("data"),
			expectedErr: ErrUnsupportedType,
		},
		{
			name:        "content too short",
			filename:    "tiny.txt",
			contentType: "text/plain",
			content:     []byte("short"),
			expectedErr: ErrContentTooShort,
		},
		{
			name:        "empty content",
			filename:    "empty.txt",
			contentType: "text/plain",
			content:     nil,
			expectedErr: ErrContentTooShort,
		},
		{
			name:        "malformed pdf",
			filename:    "broken.pdf",
			contentType: "application/pdf",
			content:     []byte("this is not a pdf"),
			expectedErr: ErrExtractionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := db.NewMemoryStore()
			service := NewMaterialService(store)

			_, err := service.UploadMaterial(tt.filename, tt.contentType, tt.content)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("UploadMaterial() error = %v, expected %v", err, tt.expectedErr)
			}

			materials, _ := store.GetAllMaterials()
			if len(materials) != 0 {
				t.Errorf("expected no material stored after rejection, found %d", len(materials))
			}
		})
	}
}

func TestListMaterialsFiltersByCourse(t *testing.T) {
	store := db.NewMemoryStore()
	service := NewMaterialService(store)

	if _, err := service.UploadMaterial("a.txt", "text/plain", []byte("first uploaded document")); err != nil {
		t.Fatalf("UploadMaterial() returned error: %v", err)
	}
	if _, err := service.UploadMaterial("b.txt", "text/plain", []byte("second uploaded document")); err != nil {
		t.Fatalf("UploadMaterial() returned error: %v", err)
	}

	summaries, err := service.ListMaterials(DemoCourseID, "")
	if err != nil {
		t.Fatalf("ListMaterials() returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("ListMaterials() returned %d materials, expected 2", len(summaries))
	}
	if summaries[0].Title != "a.txt" || summaries[1].Title != "b.txt" {
		t.Errorf("materials not in upload order: %v", summaries)
	}

	unknown, err := service.ListMaterials("other-course", "")
	if err != nil {
		t.Fatalf("ListMaterials() returned error: %v", err)
	}
	if len(unknown) != 0 {
		t.Errorf("expected empty list for unknown course, got %d", len(unknown))
	}
}

func TestListMaterialsSearch(t *testing.T) {
	store := db.NewMemoryStore()
	service := NewMaterialService(store)

	docs := map[string]string{
		"databases.txt": "Database scalability and performance optimization techniques",
		"frontend.txt":  "Frontend development with component frameworks",
		"caching.txt":   "Caching strategies for distributed systems",
	}
	for title, content := range docs {
		if _, err := service.UploadMaterial(title, "text/plain", []byte(content)); err != nil {
			t.Fatalf("UploadMaterial() returned error: %v", err)
		}
	}

	tests := []struct {
		name          string
		search        string
		expectedCount int
	}{
		{"single term", "database", 1},
		{"term from content", "caching", 1},
		{"multiple terms match any", "frontend caching", 2},
		{"no match", "blockchain", 0},
		{"empty search returns all", "", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries, err := service.ListMaterials(DemoCourseID, tt.search)
			if err != nil {
				t.Fatalf("ListMaterials() returned error: %v", err)
			}
			if len(summaries) != tt.expectedCount {
				t.Errorf("ListMaterials(search=%q) returned %d materials, expected %d",
					tt.search, len(summaries), tt.expectedCount)
			}
		})
	}
}

func TestMaterialMatchesSearch(t *testing.T) {
	service := &MaterialService{}

	tests := []struct {
		name        string
		title       string
		content     string
		searchTerms []string
		expected    bool
	}{
		{
			name:        "exact match in content",
			content:     "This is about scalability and performance",
			searchTerms: []string{"scalability"},
			expected:    true,
		},
		{
			name:        "case insensitive match",
			content:     "This is about SCALABILITY and performance",
			searchTerms: []string{"scalability"},
			expected:    true,
		},
		{
			name:        "match in title",
			title:       "Caching strategies.pdf",
			content:     "Unrelated body text about something else entirely",
			searchTerms: []string{"caching"},
			expected:    true,
		},
		{
			name:        "multiple terms - one matches",
			content:     "This is about microservices architecture",
			searchTerms: []string{"microservices", "nosql"},
			expected:    true,
		},
		{
			name:        "multiple terms - none match",
			content:     "This is about microservices architecture",
			searchTerms: []string{"nosql", "blockchain"},
			expected:    false,
		},
		{
			name:        "punctuation handling",
			content:     "This is about caching, performance, and scalability.",
			searchTerms: []string{"caching"},
			expected:    true,
		},
		{
			name:        "no match",
			content:     "This is about frontend development",
			searchTerms: []string{"backend"},
			expected:    false,
		},
		{
			name:        "empty search terms",
			content:     "This is about anything",
			searchTerms: []string{},
			expected:    false,
		},
		{
			name:        "empty content",
			content:     "",
			searchTerms: []string{"test"},
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			material := &models.Material{
				Title:   tt.title,
				Content: tt.content,
			}

			result := service.materialMatchesSearch(material, tt.searchTerms)
			if result != tt.expected {
				t.Errorf("materialMatchesSearch() = %v, expected %v for content %q with terms %v",
					result, tt.expected, tt.content, tt.searchTerms)
			}
		})
	}
}

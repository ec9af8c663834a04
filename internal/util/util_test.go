package util

import (
	"reflect"
	"testing"
	"time"
)

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("hello"))
	if a != ContentHashString("hello") {
		t.Error("Expected byte and string hashes to match")
	}
	if len(a) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(a))
	}
	if a == ContentHashString("hello!") {
		t.Error("Expected different content to hash differently")
	}
}

func TestGetFrontMatter(t *testing.T) {
	testCases := []struct {
		name          string
		markdown      []byte
		expectError   bool
		expectedTitle string
		expectedDate  time.Time
		expectedTags  []string
	}{
		{
			name: "Valid Front Matter",
			markdown: []byte(`%%%
title = "Hello World"
date = 2025-01-01 00:00:00Z
tags = ["go", "markdown"]
%%%
# Content`),
			expectedTitle: "Hello World",
			expectedDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedTags:  []string{"go", "markdown"},
		},
		{
			name: "Keywords become tags",
			markdown: []byte(`%%%
title = "Keywords"
keyword = ["a", "b"]
%%%
body`),
			expectedTitle: "Keywords",
			expectedTags:  []string{"a", "b"},
		},
		{
			name: "No Front Matter",
			markdown: []byte(`# Just Content
No front matter here.`),
			expectError: true,
		},
		{
			name:        "Empty File",
			markdown:    []byte(""),
			expectError: true,
		},
		{
			name: "Content Before Front Matter",
			markdown: []byte(`
# This should be ignored
%%%
title = "Hello World"
%%%
# Content`),
			expectError: true,
		},
		{
			name: "Unterminated block",
			markdown: []byte(`%%%
title = "Open"
# Content`),
			expectError: true,
		},
		{
			name: "Invalid TOML",
			markdown: []byte(`%%%
title = = "bad"
%%%
`),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info, err := GetFrontMatter(tc.markdown)
			if tc.expectError {
				if err == nil {
					t.Fatalf("Expected error, got %+v", info)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if info.Title != tc.expectedTitle {
				t.Errorf("Expected title %q, got %q", tc.expectedTitle, info.Title)
			}
			if !tc.expectedDate.IsZero() && !info.Date.Equal(tc.expectedDate) {
				t.Errorf("Expected date %v, got %v", tc.expectedDate, info.Date)
			}
			if !reflect.DeepEqual(info.Tags, tc.expectedTags) {
				t.Errorf("Expected tags %v, got %v", tc.expectedTags, info.Tags)
			}
			if info.Language != "en" {
				t.Errorf("Expected default language 'en', got %q", info.Language)
			}
		})
	}
}

func TestSplitFrontMatter(t *testing.T) {
	t.Run("Strips the block", func(t *testing.T) {
		body, info := SplitFrontMatter([]byte("\r\n%%%\r\ntitle = \"T\"\r\n%%%\r\n# Heading\r\ntext"))
		if info == nil || info.Title != "T" {
			t.Fatalf("Expected front matter with title T, got %+v", info)
		}
		if string(body) != "# Heading\ntext" {
			t.Errorf("Unexpected body %q", body)
		}
	})

	t.Run("Keeps plain files", func(t *testing.T) {
		body, info := SplitFrontMatter([]byte("# Plain\n"))
		if info != nil {
			t.Errorf("Expected no front matter, got %+v", info)
		}
		if string(body) != "# Plain\n" {
			t.Errorf("Unexpected body %q", body)
		}
	})
}

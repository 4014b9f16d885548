package entity

import (
	"path/filepath"
	"strings"
	"time"
)

// AllowedUploadExtensions mirrors the file picker filter. The backend makes
// the final decision.
var AllowedUploadExtensions = []string{".pdf", ".txt", ".docx"}

type Document struct {
	Id        string
	Filename  string
	CreatedAt time.Time
	AgentId   *string // nil means the unscoped/general corpus
}

func IsAllowedUpload(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedUploadExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func DocumentIds(docs []*Document) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.Id)
	}
	return ids
}

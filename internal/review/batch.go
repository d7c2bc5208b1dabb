package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/answerlens/internal/analysis"
)

// Batch is one import unit: an assignment and a set of answers to it.
type Batch struct {
	Assignment  analysis.Assignment   `json:"assignment" yaml:"assignment"`
	Submissions []analysis.Submission `json:"submissions" yaml:"submissions"`

	// Replace discards previously imported submissions instead of
	// appending to them.
	Replace bool `json:"replace,omitempty" yaml:"replace,omitempty"`
}

// ParseBatch decodes a batch. format is "json" or "yaml".
func ParseBatch(data []byte, format string) (*Batch, error) {
	var b Batch
	switch strings.ToLower(format) {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("decode json batch: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("decode yaml batch: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported batch format %q", format)
	}
	return &b, nil
}

// ReadBatchFile reads a batch, picking the format from the file extension.
func ReadBatchFile(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	return ParseBatch(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Validate checks the batch is self-consistent.
func (b *Batch) Validate() error {
	if strings.TrimSpace(b.Assignment.Title) == "" {
		return fmt.Errorf("assignment title is required")
	}
	if len(b.Assignment.Questions) == 0 {
		return fmt.Errorf("assignment %q has no questions", b.Assignment.Title)
	}
	for i, s := range b.Submissions {
		if s.StudentID == "" {
			return fmt.Errorf("submission %d: student id is required", i)
		}
		if s.AssignmentID != "" && b.Assignment.ID != "" && s.AssignmentID != b.Assignment.ID {
			return fmt.Errorf("submission %d belongs to assignment %q, not %q", i, s.AssignmentID, b.Assignment.ID)
		}
		if s.Score != nil && (*s.Score < 0 || *s.Score > 100) {
			return fmt.Errorf("submission %d: score %v outside 0-100", i, *s.Score)
		}
	}
	return nil
}

// Package feedback drafts instructor feedback from an analysis report:
// a class summary, one draft per question and one per student. Drafts
// start pending and are approved or rejected individually.
package feedback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the review state of a draft.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus converts a user-supplied status name.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("unknown draft status %q", s)
	}
}

// QuestionDraft is the feedback draft for one question.
type QuestionDraft struct {
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	Draft         string `json:"draft"`
	Status        Status `json:"status"`
}

// StudentDraft is the feedback draft for one student.
type StudentDraft struct {
	StudentID string `json:"studentId"`
	Draft     string `json:"draft"`
	Status    Status `json:"status"`
}

// Package holds every draft generated for one assignment.
type Package struct {
	AssignmentID   string          `json:"assignmentId"`
	Summary        string          `json:"summary"`
	SummaryStatus  Status          `json:"summaryStatus"`
	QuestionDrafts []QuestionDraft `json:"questionDrafts"`
	StudentDrafts  []StudentDraft  `json:"studentDrafts"`
	GeneratedAt    time.Time       `json:"generatedAt"`
}

// ErrUnknownTarget is returned by SetStatus when no draft matches.
var ErrUnknownTarget = errors.New("no feedback draft matches target")

// Draft targets accepted by SetStatus:
//
//	summary
//	question:<index>   zero-based question index
//	student:<id>
const (
	TargetSummary        = "summary"
	targetQuestionPrefix = "question:"
	targetStudentPrefix  = "student:"
)

// QuestionTarget returns the SetStatus target for question qi.
func QuestionTarget(qi int) string {
	return targetQuestionPrefix + strconv.Itoa(qi)
}

// StudentTarget returns the SetStatus target for a student.
func StudentTarget(id string) string {
	return targetStudentPrefix + id
}

// SetStatus updates the status of the draft named by target.
func (p *Package) SetStatus(target string, status Status) error {
	switch {
	case target == TargetSummary:
		p.SummaryStatus = status
		return nil

	case strings.HasPrefix(target, targetQuestionPrefix):
		qi, err := strconv.Atoi(strings.TrimPrefix(target, targetQuestionPrefix))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownTarget, target)
		}
		for i := range p.QuestionDrafts {
			if p.QuestionDrafts[i].QuestionIndex == qi {
				p.QuestionDrafts[i].Status = status
				return nil
			}
		}

	case strings.HasPrefix(target, targetStudentPrefix):
		id := strings.TrimPrefix(target, targetStudentPrefix)
		for i := range p.StudentDrafts {
			if p.StudentDrafts[i].StudentID == id {
				p.StudentDrafts[i].Status = status
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTarget, target)
}

// Counts tallies drafts by status, the summary included.
func (p *Package) Counts() map[Status]int {
	out := map[Status]int{p.SummaryStatus: 1}
	for _, d := range p.QuestionDrafts {
		out[d.Status]++
	}
	for _, d := range p.StudentDrafts {
		out[d.Status]++
	}
	return out
}

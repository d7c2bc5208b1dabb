package review

import (
	"context"
	"fmt"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/store"
)

// DemoAssignmentID identifies the seeded demo assignment.
const DemoAssignmentID = "demo-001"

type demoAnswer struct {
	student string
	qi      int
	text    string
	score   float64
}

// Eight students answering three data-structures questions.
var demoAnswers = []demoAnswer{
	{"S01", 0, "A linked list is a sequence of nodes where each node points to the next.", 90},
	{"S02", 0, "Linked list stores data in arrays", 40},
	{"S03", 0, "It is a data structure with nodes connected by pointers.", 88},
	{"S04", 0, "A linked list is like an array but elements are stored in random memory locations.", 65},
	{"S05", 0, "Nodes with data and next pointer forming a chain.", 92},
	{"S06", 0, "Linked lists store elements in memory directly without pointers", 35},
	{"S07", 0, "A list of elements linked using pointers, first is head.", 85},
	{"S08", 0, "It stores data in arrays and uses index to access", 30},

	{"S01", 1, "Binary search has time complexity O(log n) because it halves the search space each step.", 95},
	{"S02", 1, "Binary search is O(n) because it checks all elements", 20},
	{"S03", 1, "O(log n) - each iteration halves the array.", 93},
	{"S04", 1, "It is O(n log n) because sorting is required", 45},
	{"S05", 1, "O(log n) complexity since we divide by 2 every time.", 91},
	{"S06", 1, "O(n) time complexity searching through the list", 20},
	{"S07", 1, "Binary search is O(log n) as it divides problem in half.", 90},
	{"S08", 1, "O(n log n) because it sorts and searches", 40},

	{"S01", 2, "A hash collision occurs when two keys hash to the same index.", 94},
	{"S02", 2, "Collision is when the hash table is full", 25},
	{"S03", 2, "When two different keys produce the same hash value, it is a collision.", 96},
	{"S04", 2, "Collision means the key is not found in the table", 20},
	{"S05", 2, "Two keys map to same bucket causing a collision, resolved by chaining or probing.", 98},
	{"S06", 2, "Hash collision is when the algorithm crashes", 10},
	{"S07", 2, "Same hash index for different keys; resolved by open addressing.", 90},
	{"S08", 2, "When hash function returns error for duplicate key", 15},
}

// DemoBatch returns the demo assignment with its answers.
func DemoBatch() *Batch {
	b := &Batch{
		Assignment: analysis.Assignment{
			ID:      DemoAssignmentID,
			Title:   "Data Structures: Midterm Q&A",
			Subject: "Computer Science",
			Questions: []string{
				"What is a linked list?",
				"Explain time complexity of binary search.",
				"What is a hash collision?",
			},
			ModelKeywords: [][]string{
				{"nodes", "pointer", "next", "sequence"},
				{"log", "halves", "divide", "sorted"},
				{"keys", "same", "hash", "index", "chaining"},
			},
		},
	}
	for i, d := range demoAnswers {
		b.Submissions = append(b.Submissions, analysis.Submission{
			ID:            fmt.Sprintf("s%d", i+1),
			AssignmentID:  DemoAssignmentID,
			StudentID:     d.student,
			QuestionIndex: d.qi,
			AnswerText:    d.text,
			Score:         analysis.Score(d.score),
		})
	}
	return b
}

// SeedDemo stores the demo assignment unless any assignment exists. It
// reports whether anything was seeded.
func (s *Service) SeedDemo(ctx context.Context) (bool, error) {
	existing, err := s.repos.Assignments.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list assignments: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	b := DemoBatch()
	b.Assignment.CreatedAt = s.now().AddDate(0, 0, -2)
	if _, err := s.ImportBatch(ctx, b); err != nil {
		return false, fmt.Errorf("seed demo: %w", err)
	}
	s.activity(ctx, "Demo data seeded: 8 students, 3 questions", store.ActivitySuccess)
	return true, nil
}

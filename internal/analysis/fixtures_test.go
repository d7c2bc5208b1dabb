package analysis

import "fmt"

// linkedListScores are the question-0 scores of the eight-student fixture.
var linkedListScores = []float64{90, 40, 88, 65, 92, 35, 85, 30}

var linkedListAnswers = []string{
	"A linked list is a sequence of nodes where each node points to the next.",
	"Linked list stores data in arrays",
	"It is a data structure with nodes connected by pointers.",
	"A linked list is like an array but elements are stored in random memory locations.",
	"Nodes with data and next pointer forming a chain.",
	"Linked lists store elements in memory directly without pointers",
	"A list of elements linked using pointers, first is head.",
	"It stores data in arrays and uses index to access",
}

var searchScores = []float64{95, 20, 93, 45, 91, 20, 90, 40}

var searchAnswers = []string{
	"Binary search has time complexity O(log n) because it halves the search space each step.",
	"Binary search is O(n) because it checks all elements",
	"O(log n) - each iteration halves the array.",
	"It is O(n log n) because sorting is required",
	"O(log n) complexity since we divide by 2 every time.",
	"O(n) time complexity searching through the list",
	"Binary search is O(log n) as it divides problem in half.",
	"O(n log n) because it sorts and searches",
}

func fixtureAssignment() *Assignment {
	return &Assignment{
		ID:      "demo-001",
		Title:   "Data Structures Midterm",
		Subject: "Computer Science",
		Questions: []string{
			"What is a linked list?",
			"Explain time complexity of binary search.",
			"What is a hash collision?",
		},
	}
}

// fixtureSubmissions returns the first two questions of the class; the
// third question deliberately has no answers.
func fixtureSubmissions() []Submission {
	var subs []Submission
	add := func(qi int, answers []string, scores []float64) {
		for i, ans := range answers {
			subs = append(subs, Submission{
				ID:            fmt.Sprintf("s%d", len(subs)+1),
				AssignmentID:  "demo-001",
				StudentID:     fmt.Sprintf("S%02d", i+1),
				QuestionIndex: qi,
				AnswerText:    ans,
				Score:         Score(scores[i]),
			})
		}
	}
	add(0, linkedListAnswers, linkedListScores)
	add(1, searchAnswers, searchScores)
	return subs
}

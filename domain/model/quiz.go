package model

import "fmt"

const QuizOptionCount = 4

// Quiz is one generated multiple-choice quiz for a video.
type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Validate checks the quiz against the declared output schema: expectedCount
// questions, four options each, answer index within range. A zero
// expectedCount skips the count check.
func (q *Quiz) Validate(expectedCount int) error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz has no questions")
	}
	if expectedCount > 0 && len(q.Questions) != expectedCount {
		return fmt.Errorf("quiz has %d questions, expected %d", len(q.Questions), expectedCount)
	}
	for i, question := range q.Questions {
		if question.Question == "" {
			return fmt.Errorf("question %d is empty", i)
		}
		if len(question.Options) != QuizOptionCount {
			return fmt.Errorf("question %d has %d options, expected %d", i, len(question.Options), QuizOptionCount)
		}
		if question.CorrectAnswerIndex < 0 || question.CorrectAnswerIndex >= QuizOptionCount {
			return fmt.Errorf("question %d has answer index %d out of range", i, question.CorrectAnswerIndex)
		}
	}
	return nil
}

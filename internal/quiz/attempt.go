package quiz

import (
	"time"

	"learnplatform/internal/domain"
)

// Attempt is the state of one quiz section between the first answer selection
// and submission. The clock for a question starts on its first selection and
// is not restarted when the answer changes.
type Attempt struct {
	Answers map[string]int       `json:"answers"`
	Started map[string]time.Time `json:"started"`
}

func NewAttempt() *Attempt {
	return &Attempt{
		Answers: make(map[string]int),
		Started: make(map[string]time.Time),
	}
}

func (a *Attempt) Select(questionID string, option int, now time.Time) {
	if a.Answers == nil {
		a.Answers = make(map[string]int)
	}
	if a.Started == nil {
		a.Started = make(map[string]time.Time)
	}
	if _, ok := a.Started[questionID]; !ok {
		a.Started[questionID] = now
	}
	a.Answers[questionID] = option
}

// Grade scores every question of the section at time now. Questions that were
// never touched get no answer and zero time spent.
func (a *Attempt) Grade(questions []domain.QuizQuestion, now time.Time) []domain.QuizResult {
	results := make([]domain.QuizResult, 0, len(questions))
	for _, q := range questions {
		var answer *int
		if v, ok := a.Answers[q.ID]; ok {
			answer = &v
		}

		var spent float64
		if start, ok := a.Started[q.ID]; ok {
			spent = now.Sub(start).Seconds()
			if spent < 0 {
				spent = 0
			}
		}

		score := Score(q, answer, spent)
		results = append(results, domain.QuizResult{
			QuestionID: q.ID,
			UserAnswer: answer,
			TimeSpent:  spent,
			IsCorrect:  answer != nil && *answer == q.CorrectAnswer,
			Score:      score,
		})
	}
	return results
}

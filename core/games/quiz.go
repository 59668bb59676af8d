package games

// Grade is the verdict shown after a quiz.
type Grade string

const (
	GradeExcellent    Grade = "excellent"
	GradeGood         Grade = "good"
	GradeKeepLearning Grade = "keep-learning"
)

type QuizResult struct {
	QuizID     string `json:"quiz_id"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Grade      Grade  `json:"grade"`
	Answers    []bool `json:"answers"`
}

func (c *Content) Quiz(id string) (Quiz, bool) {
	for _, q := range c.Quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return Quiz{}, false
}

// GradeQuiz grades answers[i] against question i. Missing or out of range answers are wrong.
// Quizzes award no points.
func (c *Content) GradeQuiz(quizID string, answers []int) (QuizResult, error) {
	q, ok := c.Quiz(quizID)
	if !ok {
		return QuizResult{}, ErrQuizNotFound
	}

	res := QuizResult{QuizID: q.ID, Total: len(q.Questions), Answers: make([]bool, len(q.Questions))}
	for i, qn := range q.Questions {
		if i < len(answers) && answers[i] == qn.Correct {
			res.Answers[i] = true
			res.Correct++
		}
	}
	res.Percentage = res.Correct * 100 / res.Total

	switch {
	case res.Percentage >= 80:
		res.Grade = GradeExcellent
	case res.Percentage >= 60:
		res.Grade = GradeGood
	default:
		res.Grade = GradeKeepLearning
	}
	return res, nil
}

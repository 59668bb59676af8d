package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/growthapp/garden/apps/api/echo"
	"github.com/growthapp/garden/core/games"
)

type (
	coinCounterResponse struct {
		Session games.Session         `json:"session"`
		Result  games.CoinAnswer      `json:"result"`
		Game    games.CoinCounterView `json:"game"`
		Points  *games.Points         `json:"points"`
	}

	budgetBuilderResponse struct {
		Session games.Session           `json:"session"`
		Game    games.BudgetBuilderView `json:"game"`
		Points  *games.Points           `json:"points"`
	}

	savingsSprintResponse struct {
		Session games.Session           `json:"session"`
		Result  games.WeekResult        `json:"result"`
		Game    games.SavingsSprintView `json:"game"`
		Points  *games.Points           `json:"points"`
	}
)

func pileTotal(piles []games.CoinPile) int {
	var total int
	for _, p := range piles {
		total += p.Value * p.Count
	}
	return total
}

func Test_gamesApi_coinCounter(t *testing.T) {
	srv := setup(t)
	_, child, _ := createFamily(t)
	token := getToken(t, child)

	var res coinCounterResponse
	rec := do(t, srv, http.MethodPost, "/v1/games/coin-counter", token, nil, &res)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	assert.Equal(t, games.KindCoinCounter, res.Session.Kind)
	assert.Equal(t, 1, res.Game.Level)
	path := fmt.Sprintf("/v1/games/coin-counter/%s/answer", res.Session.ID)

	// a wrong answer deals a new pile at the same level
	rec = do(t, srv, http.MethodPost, path, token, []byte(`{"answer": "lol"}`), &res)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, res.Result.Correct)
	assert.Equal(t, 1, res.Game.Level)
	assert.Nil(t, res.Points)

	for level := 1; level <= games.CoinCounterMaxLevel; level++ {
		body := marchallObj(t, CoinAnswerRequest{Answer: pileTotal(res.Game.Piles)})
		rec = do(t, srv, http.MethodPost, path, token, body, &res)
		if rec.Code != http.StatusOK {
			t.Fatalf("answer code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		assert.True(t, res.Result.Correct)
		assert.Equal(t, level*2, res.Result.Points)
	}
	assert.True(t, res.Game.Over)
	if assert.NotNil(t, res.Points) {
		assert.Equal(t, 30, res.Points.Total)
		assert.Equal(t, 1, res.Points.GamesPlayed)
		assert.Equal(t, 30, res.Points.BestScores[games.KindCoinCounter])
	}

	// finished games are dropped
	runHttpTests(t, srv, []httpTest{{
		name: "game over", method: http.MethodPost, path: path, token: token, body: []byte(`{"answer": 1}`),
		wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: games.ErrSessionNotFound.Error()}),
	}})
}

func Test_gamesApi_budgetBuilder(t *testing.T) {
	srv := setup(t)
	_, child, _ := createFamily(t)
	token := getToken(t, child)

	var res budgetBuilderResponse
	rec := do(t, srv, http.MethodPost, "/v1/games/budget-builder", token, nil, &res)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	assert.Equal(t, games.BudgetIncome, res.Game.Income)
	assert.Nil(t, res.Game.Scenario)
	sid := res.Session.ID
	allocatePath := "/v1/games/budget-builder/" + sid + "/allocate"
	answerPath := "/v1/games/budget-builder/" + sid + "/answer"

	runHttpTests(t, srv, []httpTest{
		{
			name: "answer before allocating", method: http.MethodPost, path: answerPath, token: token, body: []byte(`{"option": 1}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: games.ErrOutOfTurn.Error()}),
		},
		{
			name: "budget mismatch", method: http.MethodPost, path: allocatePath, token: token,
			body:     marchallObj(t, games.Allocation{Needs: 100, Wants: 60, Savings: 20}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"allocation": "your budget total is $180, but your income is $200"}),
		},
		{
			name: "not a number counts as zero", method: http.MethodPost, path: allocatePath, token: token,
			body:     []byte(`{"needs": "lol", "wants": "60", "savings": 40}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"allocation": "your budget total is $100, but your income is $200"}),
		},
		{
			name: "negative category", method: http.MethodPost, path: allocatePath, token: token,
			body:     marchallObj(t, games.Allocation{Needs: 220, Wants: 0, Savings: -20}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"savings": "cannot be negative"}),
		},
		{
			name: "wrong game", method: http.MethodPost, path: "/v1/games/coin-counter/" + sid + "/answer", token: token,
			body: []byte(`{"answer": 1}`), wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: games.ErrSessionNotFound.Error()}),
		},
	})

	rec = do(t, srv, http.MethodPost, allocatePath, token, marchallObj(t, games.RecommendedBudget), &res)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, res.Game.Score)
	if assert.NotNil(t, res.Game.Scenario) {
		assert.Equal(t, app.Content.Scenarios[0].Title, res.Game.Scenario.Title)
	}

	runHttpTests(t, srv, []httpTest{{
		name: "allocate twice", method: http.MethodPost, path: allocatePath, token: token,
		body:     marchallObj(t, games.RecommendedBudget),
		wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: games.ErrOutOfTurn.Error()}),
	}})

	for _, s := range app.Content.Scenarios {
		body := marchallObj(t, ScenarioAnswerRequest{Option: s.Correct})
		rec = do(t, srv, http.MethodPost, answerPath, token, body, &res)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.True(t, res.Game.Over)
	want := 30 + games.ScenarioPoints*len(app.Content.Scenarios)
	assert.Equal(t, want, res.Game.Score)
	if assert.NotNil(t, res.Points) {
		assert.Equal(t, want, res.Points.Total)
	}

	var points games.Points
	do(t, srv, http.MethodGet, "/v1/games/points", token, nil, &points)
	assert.Equal(t, want, points.Total)
	assert.Equal(t, want, points.BestScores[games.KindBudgetBuilder])
}

func Test_gamesApi_savingsSprint(t *testing.T) {
	srv := setup(t)
	_, child, _ := createFamily(t)
	token := getToken(t, child)

	var res savingsSprintResponse
	rec := do(t, srv, http.MethodPost, "/v1/games/savings-sprint", token, nil, &res)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start code = %v, want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	assert.Equal(t, 1, res.Game.Week)
	assert.Len(t, res.Game.Expenses, games.SprintChoices)
	path := "/v1/games/savings-sprint/" + res.Session.ID + "/week"

	// pay the necessities only
	var score int
	for week := 1; week <= games.SprintWeeks && !res.Game.Over; week++ {
		var selected []string
		for _, e := range res.Game.Expenses {
			if e.Necessary {
				selected = append(selected, e.Name)
			}
		}
		rec = do(t, srv, http.MethodPost, path, token, marchallObj(t, WeekRequest{Selected: selected}), &res)
		if rec.Code != http.StatusOK {
			t.Fatalf("week code = %v, want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		assert.Equal(t, week, res.Result.Week)
		assert.Zero(t, res.Result.Penalty)
		score += res.Result.Points
	}
	assert.True(t, res.Game.Over)
	if assert.NotNil(t, res.Points) {
		assert.Equal(t, score, res.Points.Total)
	}
}

func Test_gamesApi_sessions(t *testing.T) {
	srv := setup(t)
	parent, child, _ := createFamily(t)
	token := getToken(t, child)

	var first, second budgetBuilderResponse
	do(t, srv, http.MethodPost, "/v1/games/budget-builder", token, nil, &first)
	do(t, srv, http.MethodPost, "/v1/games/budget-builder", token, nil, &second)

	var sessions []budgetBuilderResponse
	do(t, srv, http.MethodGet, "/v1/games/sessions", token, nil, &sessions)
	assert.Len(t, sessions, 2)

	notFound := marchallObj(t, httpErr{Error: games.ErrSessionNotFound.Error()})
	runHttpTests(t, srv, []httpTest{
		{name: "no sessions", path: "/v1/games/sessions", token: getToken(t, parent), wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{
			name: "someone else's game", method: http.MethodDelete, path: "/v1/games/sessions/" + first.Session.ID,
			token: getToken(t, parent), wantCode: http.StatusNotFound, wantData: notFound,
		},
		{name: "abandon", method: http.MethodDelete, path: "/v1/games/sessions/" + first.Session.ID, token: token, wantCode: http.StatusNoContent},
		{
			name: "abandon twice", method: http.MethodDelete, path: "/v1/games/sessions/" + first.Session.ID,
			token: token, wantCode: http.StatusNotFound, wantData: notFound,
		},
	})

	do(t, srv, http.MethodGet, "/v1/games/sessions", token, nil, &sessions)
	if assert.Len(t, sessions, 1) {
		assert.Equal(t, second.Session.ID, sessions[0].Session.ID)
	}

	// abandoned games score nothing
	runHttpTests(t, srv, []httpTest{{
		name: "no points", path: "/v1/games/points", token: token, wantCode: http.StatusOK,
		wantData: marchallObj(t, games.Points{}),
	}})
}

func Test_gamesApi_quizzes(t *testing.T) {
	srv := setup(t)
	_, child, _ := createFamily(t)
	token := getToken(t, child)

	quiz, _ := app.Content.Quiz("1")
	correct := make([]int, len(quiz.Questions))
	for i, q := range quiz.Questions {
		correct[i] = q.Correct
	}
	perfect := make([]bool, len(quiz.Questions))
	for i := range perfect {
		perfect[i] = true
	}

	runHttpTests(t, srv, []httpTest{
		{name: "list", path: "/v1/quizzes", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, app.Content.Quizzes)},
		{name: "retrieve", path: "/v1/quizzes/1", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, quiz)},
		{
			name: "unknown", path: "/v1/quizzes/lol", token: token, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: games.ErrQuizNotFound.Error()}),
		},
		{
			name: "submit unknown", method: http.MethodPost, path: "/v1/quizzes/lol/submit", token: token,
			body: []byte(`{"answers": [0]}`), wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: games.ErrQuizNotFound.Error()}),
		},
		{
			name: "perfect", method: http.MethodPost, path: "/v1/quizzes/1/submit", token: token,
			body: marchallObj(t, QuizSubmission{Answers: correct}), wantCode: http.StatusOK,
			wantData: marchallObj(t, games.QuizResult{
				QuizID: "1", Correct: len(correct), Total: len(correct), Percentage: 100,
				Grade: games.GradeExcellent, Answers: perfect,
			}),
		},
		{
			name: "no answers", method: http.MethodPost, path: "/v1/quizzes/1/submit", token: token,
			body: []byte(`{}`), wantCode: http.StatusOK,
			wantData: marchallObj(t, games.QuizResult{
				QuizID: "1", Total: len(correct), Grade: games.GradeKeepLearning, Answers: make([]bool, len(correct)),
			}),
		},
		// quizzes award no points
		{name: "points", path: "/v1/games/points", token: token, wantCode: http.StatusOK, wantData: marchallObj(t, games.Points{})},
	})
}

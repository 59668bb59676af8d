package games

import (
	"fmt"

	"github.com/growthapp/garden/core"
)

const (
	BudgetIncome         = 200
	ScenarioPoints       = 15
	closeAllocationPts   = 10
	roughAllocationPts   = 5
	closeAllocationDelta = 10
	roughAllocationDelta = 20
)

// RecommendedBudget is the 50/30/20 split of BudgetIncome.
var RecommendedBudget = Allocation{
	Needs:   BudgetIncome * 50 / 100,
	Wants:   BudgetIncome * 30 / 100,
	Savings: BudgetIncome * 20 / 100,
}

type (
	Allocation struct {
		Needs   int `json:"needs"`
		Wants   int `json:"wants"`
		Savings int `json:"savings"`
	}

	// BudgetBuilder has the player split an income across needs, wants and savings,
	// then answer a fixed sequence of scenario questions.
	BudgetBuilder struct {
		scenarios  []Scenario
		allocation *Allocation
		step       int // scenarios answered
		score      int
		over       bool
	}

	AllocationResult struct {
		Points      int        `json:"points"`
		Recommended Allocation `json:"recommended"`
	}

	ScenarioAnswer struct {
		Correct       bool   `json:"correct"`
		CorrectOption int    `json:"correct_option"`
		Explanation   string `json:"explanation"`
		Points        int    `json:"points"`
	}

	BudgetBuilderView struct {
		Income     int         `json:"income"`
		Allocation *Allocation `json:"allocation,omitempty"`
		Scenario   *Scenario   `json:"scenario,omitempty"`
		Step       int         `json:"step"`
		Score      int         `json:"score"`
		Over       bool        `json:"over"`
	}
)

func (a Allocation) Total() int { return a.Needs + a.Wants + a.Savings }

func NewBudgetBuilder(content *Content) *BudgetBuilder {
	if content == nil {
		content = DefaultContent()
	}
	return &BudgetBuilder{scenarios: content.Scenarios}
}

func (g *BudgetBuilder) Kind() Kind { return KindBudgetBuilder }
func (g *BudgetBuilder) Score() int { return g.score }
func (g *BudgetBuilder) Over() bool { return g.over }

func (g *BudgetBuilder) View() BudgetBuilderView {
	v := BudgetBuilderView{Income: BudgetIncome, Step: g.step, Score: g.score, Over: g.over}
	if g.allocation != nil {
		a := *g.allocation
		v.Allocation = &a
		if s, ok := g.currentScenario(); ok {
			v.Scenario = &s
		}
	}
	return v
}

func (g *BudgetBuilder) currentScenario() (Scenario, bool) {
	if g.step >= len(g.scenarios) {
		return Scenario{}, false
	}
	return g.scenarios[g.step], true
}

// AllocationPoints scores an allocation against RecommendedBudget, category by category.
func AllocationPoints(a Allocation) int {
	score := func(allocated, recommended int) int {
		switch d := abs(allocated - recommended); {
		case d <= closeAllocationDelta:
			return closeAllocationPts
		case d <= roughAllocationDelta:
			return roughAllocationPts
		}
		return 0
	}
	return score(a.Needs, RecommendedBudget.Needs) +
		score(a.Wants, RecommendedBudget.Wants) +
		score(a.Savings, RecommendedBudget.Savings)
}

// Allocate submits the budget. An allocation that does not add up to BudgetIncome
// is rejected and may be corrected and submitted again.
func (g *BudgetBuilder) Allocate(a Allocation) (AllocationResult, error) {
	if g.over {
		return AllocationResult{}, ErrGameOver
	}
	if g.allocation != nil {
		return AllocationResult{}, ErrOutOfTurn
	}

	var flds []core.FieldError
	for _, c := range []struct {
		name  string
		value int
	}{{"needs", a.Needs}, {"wants", a.Wants}, {"savings", a.Savings}} {
		if c.value < 0 {
			flds = append(flds, core.FieldError{Field: c.name, Error: "cannot be negative"})
		}
	}
	if total := a.Total(); total != BudgetIncome {
		flds = append(flds, core.FieldError{
			Field: "allocation",
			Error: fmt.Sprintf("your budget total is $%d, but your income is $%d", total, BudgetIncome),
		})
	}
	if len(flds) > 0 {
		return AllocationResult{}, core.NewValidationError(ErrBudgetMismatch, flds...)
	}

	points := AllocationPoints(a)
	g.allocation = &a
	g.score += points
	if len(g.scenarios) == 0 {
		g.over = true
	}
	return AllocationResult{Points: points, Recommended: RecommendedBudget}, nil
}

// AnswerScenario answers the current scenario. An out of range option is a wrong answer.
func (g *BudgetBuilder) AnswerScenario(option int) (ScenarioAnswer, error) {
	if g.over {
		return ScenarioAnswer{}, ErrGameOver
	}
	s, ok := g.currentScenario()
	if g.allocation == nil || !ok {
		return ScenarioAnswer{}, ErrOutOfTurn
	}

	res := ScenarioAnswer{Correct: option == s.Correct, CorrectOption: s.Correct, Explanation: s.Explanation}
	if res.Correct {
		res.Points = ScenarioPoints
		g.score += ScenarioPoints
	}
	g.step++
	if g.step >= len(g.scenarios) {
		g.over = true
	}
	return res, nil
}

package games

import "math/rand"

const (
	SprintIncome  = 20
	SprintGoal    = 100
	SprintWeeks   = 10
	SprintChoices = 4

	necessitiesBonus = 5
	smartSaverBonus  = 10
)

type (
	// SavingsSprint is a weekly budgeting loop: every week the player picks which of
	// the offered expenses to pay out of a fixed income and saves the rest.
	SavingsSprint struct {
		expenses []Expense
		rng      *rand.Rand
		week     int
		savings  int
		score    int
		offered  []Expense
		over     bool
	}

	WeekResult struct {
		Week         int  `json:"week"`
		Spent        int  `json:"spent"`
		Penalty      int  `json:"penalty"`
		Savings      int  `json:"savings"` // may be negative
		Bonus        int  `json:"bonus"`
		Points       int  `json:"points"`
		TotalSavings int  `json:"total_savings"`
		GoalReached  bool `json:"goal_reached"`
	}

	SavingsSprintView struct {
		Week     int       `json:"week"`
		Income   int       `json:"income"`
		Goal     int       `json:"goal"`
		Savings  int       `json:"savings"`
		Score    int       `json:"score"`
		Expenses []Expense `json:"expenses"`
		Over     bool      `json:"over"`
	}
)

func NewSavingsSprint(content *Content, rng *rand.Rand) *SavingsSprint {
	if content == nil {
		content = DefaultContent()
	}
	g := &SavingsSprint{expenses: content.Expenses, rng: rng, week: 1}
	g.offer()
	return g
}

func (g *SavingsSprint) Kind() Kind { return KindSavingsSprint }
func (g *SavingsSprint) Score() int { return g.score }
func (g *SavingsSprint) Over() bool { return g.over }

func (g *SavingsSprint) Week() int    { return g.week }
func (g *SavingsSprint) Savings() int { return g.savings }

func (g *SavingsSprint) View() SavingsSprintView {
	offered := make([]Expense, len(g.offered))
	copy(offered, g.offered)
	return SavingsSprintView{
		Week:     g.week,
		Income:   SprintIncome,
		Goal:     SprintGoal,
		Savings:  g.savings,
		Score:    g.score,
		Expenses: offered,
		Over:     g.over,
	}
}

func (g *SavingsSprint) offer() {
	g.offered = g.offered[:0]
	for _, i := range g.rng.Perm(len(g.expenses))[:SprintChoices] {
		g.offered = append(g.offered, g.expenses[i])
	}
}

// PlayWeek pays the named expenses out of this week's income. Names that are not
// on offer this week are ignored. Every unpaid necessary expense costs its price.
func (g *SavingsSprint) PlayWeek(selected []string) (WeekResult, error) {
	if g.over {
		return WeekResult{}, ErrGameOver
	}
	picked := make(map[string]bool, len(selected))
	for _, name := range selected {
		picked[name] = true
	}

	res := WeekResult{Week: g.week}
	var boughtOptional bool
	for _, e := range g.offered {
		switch {
		case picked[e.Name]:
			res.Spent += e.Cost
			if !e.Necessary {
				boughtOptional = true
			}
		case e.Necessary:
			res.Penalty += e.Cost
		}
	}
	res.Savings = SprintIncome - res.Spent - res.Penalty

	if res.Penalty == 0 {
		res.Bonus += necessitiesBonus
	}
	if !boughtOptional && res.Savings > 0 {
		res.Bonus += smartSaverBonus
	}
	res.Points = res.Bonus + max(0, res.Savings)

	g.savings = max(0, g.savings+res.Savings)
	g.score += res.Points
	res.TotalSavings = g.savings
	res.GoalReached = g.savings >= SprintGoal

	if res.GoalReached || g.week >= SprintWeeks {
		g.over = true
	} else {
		g.week++
		g.offer()
	}
	return res, nil
}

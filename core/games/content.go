package games

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embeddedContent []byte

var defaultContent = mustLoadEmbedded()

type (
	// Coin is a denomination shown by the coin counter, valued in cents.
	Coin struct {
		Value int    `json:"value" yaml:"value"`
		Name  string `json:"name" yaml:"name"`
	}

	// Scenario is a multiple choice question asked after a budget is accepted.
	Scenario struct {
		Title       string   `json:"title" yaml:"title"`
		Description string   `json:"description" yaml:"description"`
		Question    string   `json:"question" yaml:"question"`
		Options     []string `json:"options" yaml:"options"`
		Correct     int      `json:"-" yaml:"correct"`
		Explanation string   `json:"-" yaml:"explanation"`
	}

	// Expense is one weekly spending option of the savings sprint.
	Expense struct {
		Name      string `json:"name" yaml:"name"`
		Cost      int    `json:"cost" yaml:"cost"`
		Necessary bool   `json:"necessary" yaml:"necessary"`
	}

	Question struct {
		Question string   `json:"question" yaml:"question"`
		Options  []string `json:"options" yaml:"options"`
		Correct  int      `json:"-" yaml:"correct"`
	}

	Quiz struct {
		ID        string     `json:"id" yaml:"id"`
		Title     string     `json:"title" yaml:"title"`
		Questions []Question `json:"questions" yaml:"questions"`
	}

	// Content holds the static data the games are played with.
	Content struct {
		Coins     []Coin     `yaml:"coins"`
		Scenarios []Scenario `yaml:"scenarios"`
		Expenses  []Expense  `yaml:"expenses"`
		Quizzes   []Quiz     `yaml:"quizzes"`
	}
)

// DefaultContent returns the embedded game content.
func DefaultContent() *Content {
	return defaultContent
}

func mustLoadEmbedded() *Content {
	c, err := LoadContent(embeddedContent)
	if err != nil {
		panic(fmt.Sprintf("games: embedded content: %v", err))
	}
	return c
}

// LoadContent parses and validates YAML game content.
func LoadContent(data []byte) (*Content, error) {
	c := new(Content)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse game content YAML: %w", err)
	}

	if len(c.Coins) == 0 {
		return nil, fmt.Errorf("coins cannot be empty")
	}
	for _, coin := range c.Coins {
		if coin.Value <= 0 {
			return nil, fmt.Errorf("coin %q: value must be positive", coin.Name)
		}
	}
	for i, s := range c.Scenarios {
		if s.Correct < 0 || s.Correct >= len(s.Options) {
			return nil, fmt.Errorf("scenario #%d: correct option out of range", i+1)
		}
	}
	if len(c.Expenses) < SprintChoices {
		return nil, fmt.Errorf("at least %d expenses are required, got %d", SprintChoices, len(c.Expenses))
	}
	seen := make(map[string]bool, len(c.Expenses))
	for _, e := range c.Expenses {
		if e.Name == "" || seen[e.Name] {
			return nil, fmt.Errorf("expense %q: name must be unique and non-empty", e.Name)
		}
		if e.Cost < 0 {
			return nil, fmt.Errorf("expense %q: cost cannot be negative", e.Name)
		}
		seen[e.Name] = true
	}
	ids := make(map[string]bool, len(c.Quizzes))
	for _, q := range c.Quizzes {
		if q.ID == "" || ids[q.ID] {
			return nil, fmt.Errorf("quiz %q: id must be unique and non-empty", q.ID)
		}
		if len(q.Questions) == 0 {
			return nil, fmt.Errorf("quiz %q: no questions", q.ID)
		}
		for i, qn := range q.Questions {
			if qn.Correct < 0 || qn.Correct >= len(qn.Options) {
				return nil, fmt.Errorf("quiz %q question #%d: correct option out of range", q.ID, i+1)
			}
		}
		ids[q.ID] = true
	}
	return c, nil
}

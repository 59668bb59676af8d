package growth

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stage is the growth tier of a plant, derived from its accumulated value.
type Stage string

const (
	StageSeed     Stage = "seed"
	StageSprout   Stage = "sprout"
	StageGrowing  Stage = "growing"
	StageMature   Stage = "mature"
	StageBlooming Stage = "blooming"
)

// Category of a plant definition.
type Category string

const (
	CategoryFlower Category = "flower"
	CategoryTree   Category = "tree"
	CategoryHerb   Category = "herb"
	CategoryFruit  Category = "fruit"
)

func (c Category) valid() bool {
	switch c {
	case CategoryFlower, CategoryTree, CategoryHerb, CategoryFruit:
		return true
	}
	return false
}

// PlantDefinition is a static, read-only catalog entry.
type PlantDefinition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	UnlockLevel int      `json:"unlock_level" yaml:"unlockLevel"`
	Emoji       string   `json:"emoji" yaml:"emoji"`
}

// PlantState is the growth progress of one plant the user has selected at least once.
type PlantState struct {
	PlantID          string          `json:"plant_id"`
	AccumulatedValue decimal.Decimal `json:"accumulated_value"`
	Stage            Stage           `json:"stage"`
}

// DepositEvent is one recorded savings contribution.
// Only Verified and VerifiedBy ever change after creation.
type DepositEvent struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Verified    bool            `json:"verified"`
	VerifiedBy  string          `json:"verified_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"` // UTC
}

// Account holds the state derived from the deposit log.
type Account struct {
	UserID          string          `json:"user_id"`
	TotalSavings    decimal.Decimal `json:"total_savings"`
	Level           int             `json:"level"`
	MatchingBonus   decimal.Decimal `json:"matching_bonus"` // display only, never added to TotalSavings
	SelectedPlantID string          `json:"selected_plant_id,omitempty"`
}

// Snapshot is the checkpointed form of an Engine.
type Snapshot struct {
	Deposits        []DepositEvent `json:"deposits"`
	Plants          []PlantState   `json:"plants"`
	SelectedPlantID string         `json:"selected_plant_id,omitempty"`
}

// Progress describes what a deposit changed, used to detect milestones.
type Progress struct {
	LevelBefore int            `json:"level_before"`
	LevelAfter  int            `json:"level_after"`
	Plant       *PlantProgress `json:"plant,omitempty"`
}

type PlantProgress struct {
	PlantID     string `json:"plant_id"`
	StageBefore Stage  `json:"stage_before"`
	StageAfter  Stage  `json:"stage_after"`
}

func (p Progress) LeveledUp() bool { return p.LevelAfter > p.LevelBefore }

func (p Progress) StageChanged() bool {
	return p.Plant != nil && p.Plant.StageBefore != p.Plant.StageAfter
}

// PlantView is a catalog entry joined with the user's progress on it.
type PlantView struct {
	PlantDefinition
	Unlocked bool        `json:"unlocked"`
	Selected bool        `json:"selected"`
	State    *PlantState `json:"state,omitempty"`
}

// Garden is the full view of a user's progression.
type Garden struct {
	Account Account     `json:"account"`
	Plants  []PlantView `json:"plants"`
}

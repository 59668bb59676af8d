package growth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDepositAmount is the largest amount a single deposit may carry.
var MaxDepositAmount = decimal.NewFromInt(1000000)

var (
	// errors
	ErrInvalidAmount   = errors.New("deposit amount must be greater than zero")
	ErrAmountTooLarge  = errors.New("deposit amount must not exceed 1000000")
	ErrPlantLocked     = errors.New("plant is not unlocked at the current level")
	ErrPlantNotFound   = errors.New("plant not found")
	ErrDepositNotFound = errors.New("deposit not found")
)

// Engine keeps the progression state of a single user.
// Derived values (total, level, stages) are recomputed from the deposit log and
// accumulated values on every read, never cached.
type Engine struct {
	catalog    *Catalog
	deposits   []DepositEvent
	plants     map[string]*PlantState
	plantOrder []string
	selected   string

	nowFunc   func() time.Time
	newIDFunc func() string
}

// NewEngine returns an empty Engine: no deposits, level 1 and no plant selected.
func NewEngine(catalog *Catalog) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Engine{
		catalog:   catalog,
		plants:    make(map[string]*PlantState),
		nowFunc:   time.Now,
		newIDFunc: func() string { return uuid.New().String() },
	}
}

// TotalSavings is the sum of all deposit amounts.
func (e *Engine) TotalSavings() decimal.Decimal {
	return SumDeposits(e.deposits)
}

func (e *Engine) Level() int {
	return ComputeLevel(e.TotalSavings())
}

func (e *Engine) ComputeLevel(totalSavings decimal.Decimal) int {
	return ComputeLevel(totalSavings)
}

func (e *Engine) ComputeMatchingBonus(amount decimal.Decimal) decimal.Decimal {
	return ComputeMatchingBonus(amount)
}

// Account returns the derived account state.
func (e *Engine) Account(userID string) Account {
	total := e.TotalSavings()
	return Account{
		UserID:          userID,
		TotalSavings:    total,
		Level:           ComputeLevel(total),
		MatchingBonus:   ComputeMatchingBonus(total),
		SelectedPlantID: e.selected,
	}
}

// Deposits returns a copy of the deposit log in insertion order.
func (e *Engine) Deposits() []DepositEvent {
	deposits := make([]DepositEvent, len(e.deposits))
	copy(deposits, e.deposits)
	return deposits
}

// RecordDeposit appends a new unverified deposit and grows the selected plant, if any.
// State is left untouched when amount is not positive or above MaxDepositAmount.
func (e *Engine) RecordDeposit(amount decimal.Decimal, description string) (DepositEvent, Progress, error) {
	if !amount.IsPositive() {
		return DepositEvent{}, Progress{}, ErrInvalidAmount
	}
	if amount.GreaterThan(MaxDepositAmount) {
		return DepositEvent{}, Progress{}, ErrAmountTooLarge
	}

	progress := Progress{LevelBefore: e.Level()}
	event := DepositEvent{
		ID:          e.newIDFunc(),
		Amount:      amount,
		Description: description,
		CreatedAt:   e.nowFunc().UTC(),
	}
	e.deposits = append(e.deposits, event)
	progress.LevelAfter = e.Level()

	if state, ok := e.plants[e.selected]; ok {
		before := state.Stage
		state.AccumulatedValue = state.AccumulatedValue.Add(amount)
		state.Stage = StageFor(state.AccumulatedValue)
		progress.Plant = &PlantProgress{PlantID: state.PlantID, StageBefore: before, StageAfter: state.Stage}
	}
	return event, progress, nil
}

// ListAvailablePlants returns the plants unlocked at the current level, in catalog order.
func (e *Engine) ListAvailablePlants() []PlantDefinition {
	return e.catalog.Available(e.Level())
}

// SelectPlant makes plantID the plant grown by future deposits.
// A locked plant is never selected and gets no PlantState.
func (e *Engine) SelectPlant(plantID string) (PlantState, error) {
	def, ok := e.catalog.Get(plantID)
	if !ok {
		return PlantState{}, ErrPlantNotFound
	}
	if def.UnlockLevel > e.Level() {
		return PlantState{}, ErrPlantLocked
	}

	state, ok := e.plants[plantID]
	if !ok {
		state = &PlantState{PlantID: plantID, AccumulatedValue: decimal.Zero, Stage: StageSeed}
		e.plants[plantID] = state
		e.plantOrder = append(e.plantOrder, plantID)
	}
	e.selected = plantID
	return *state, nil
}

// SelectedPlant returns the state of the currently selected plant.
func (e *Engine) SelectedPlant() (PlantState, bool) {
	state, ok := e.plants[e.selected]
	if !ok {
		return PlantState{}, false
	}
	return *state, true
}

// PlantStates returns the state of every plant grown so far, in first-selection order.
func (e *Engine) PlantStates() []PlantState {
	states := make([]PlantState, 0, len(e.plantOrder))
	for _, id := range e.plantOrder {
		states = append(states, *e.plants[id])
	}
	return states
}

// VerifyDeposit marks a deposit as verified by a parent or admin.
func (e *Engine) VerifyDeposit(depositID, verifierID string) (DepositEvent, error) {
	for i := range e.deposits {
		if e.deposits[i].ID == depositID {
			e.deposits[i].Verified = true
			e.deposits[i].VerifiedBy = verifierID
			return e.deposits[i], nil
		}
	}
	return DepositEvent{}, ErrDepositNotFound
}

// Garden joins the catalog with the user's plant states.
func (e *Engine) Garden(userID string) Garden {
	acc := e.Account(userID)
	views := make([]PlantView, 0, len(e.catalog.plants))
	for _, def := range e.catalog.plants {
		view := PlantView{
			PlantDefinition: def,
			Unlocked:        def.UnlockLevel <= acc.Level,
			Selected:        def.ID == e.selected,
		}
		if state, ok := e.plants[def.ID]; ok {
			s := *state
			view.State = &s
		}
		views = append(views, view)
	}
	return Garden{Account: acc, Plants: views}
}

// Snapshot returns the serializable state of the engine.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Deposits:        e.Deposits(),
		Plants:          e.PlantStates(),
		SelectedPlantID: e.selected,
	}
}

// Restore replaces the engine state with the given snapshot.
// Stages are recomputed from the accumulated values.
func (e *Engine) Restore(snap Snapshot) {
	e.deposits = make([]DepositEvent, len(snap.Deposits))
	copy(e.deposits, snap.Deposits)

	e.plants = make(map[string]*PlantState, len(snap.Plants))
	e.plantOrder = e.plantOrder[:0]
	for _, p := range snap.Plants {
		if _, dup := e.plants[p.PlantID]; dup {
			continue
		}
		state := p
		state.Stage = StageFor(state.AccumulatedValue)
		e.plants[p.PlantID] = &state
		e.plantOrder = append(e.plantOrder, p.PlantID)
	}

	e.selected = ""
	if _, ok := e.plants[snap.SelectedPlantID]; ok {
		e.selected = snap.SelectedPlantID
	}
}

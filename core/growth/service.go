package growth

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/growthapp/garden/core"
)

type (
	// Repository checkpoints a user's progression between requests.
	// LoadGarden returns an empty Snapshot for users without saved data.
	Repository interface {
		LoadGarden(userID string) (Snapshot, error)
		SaveGarden(userID string, snap Snapshot) error
	}

	Service struct {
		repo     Repository
		catalog  *Catalog
		notifier core.Notifier
		nowFunc  func() time.Time

		mu    sync.Mutex
		locks map[string]*sync.Mutex
	}

	// DepositResult is the outcome of Service.RecordDeposit.
	DepositResult struct {
		Deposit       DepositEvent    `json:"deposit"`
		MatchingBonus decimal.Decimal `json:"matching_bonus"`
		Account       Account         `json:"account"`
		Progress      Progress        `json:"progress"`
	}
)

func NewService(repo Repository, catalog *Catalog, notifier core.Notifier) *Service {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	return &Service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		nowFunc:  time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (svc *Service) Catalog() *Catalog { return svc.catalog }

// userLock serializes the load-mutate-save cycle of one user.
func (svc *Service) userLock(userID string) *sync.Mutex {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	l, ok := svc.locks[userID]
	if !ok {
		l = new(sync.Mutex)
		svc.locks[userID] = l
	}
	return l
}

func (svc *Service) load(userID string) (*Engine, error) {
	snap, err := svc.repo.LoadGarden(userID)
	if err != nil {
		return nil, errors.Wrap(err, "loading garden")
	}
	eng := NewEngine(svc.catalog)
	eng.nowFunc = svc.nowFunc
	eng.Restore(snap)
	return eng, nil
}

func (svc *Service) view(userID string, fn func(eng *Engine) error) error {
	l := svc.userLock(userID)
	l.Lock()
	defer l.Unlock()

	eng, err := svc.load(userID)
	if err != nil {
		return err
	}
	return fn(eng)
}

func (svc *Service) update(userID string, fn func(eng *Engine) error) error {
	l := svc.userLock(userID)
	l.Lock()
	defer l.Unlock()

	eng, err := svc.load(userID)
	if err != nil {
		return err
	}
	if err = fn(eng); err != nil {
		return err
	}
	return errors.Wrap(svc.repo.SaveGarden(userID, eng.Snapshot()), "saving garden")
}

func (svc *Service) notify(userID string, kind core.NotificationKind, title, msg string) {
	svc.notifier.Notify(core.Notification{
		UserID:    userID,
		Title:     title,
		Message:   msg,
		Kind:      kind,
		CreatedAt: svc.nowFunc().UTC(),
	})
}

func (svc *Service) Account(userID string) (acc Account, err error) {
	err = svc.view(userID, func(eng *Engine) error {
		acc = eng.Account(userID)
		return nil
	})
	return acc, err
}

func (svc *Service) Garden(userID string) (g Garden, err error) {
	err = svc.view(userID, func(eng *Engine) error {
		g = eng.Garden(userID)
		return nil
	})
	return g, err
}

// Deposits returns the user's deposit log, in insertion order unless orderings are given.
// Supported ordering fields: created_at, amount, verified.
func (svc *Service) Deposits(userID string, orderings ...core.Ordering) (deposits []DepositEvent, err error) {
	err = svc.view(userID, func(eng *Engine) error {
		deposits = eng.Deposits()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(orderings) > 0 {
		sortDeposits(deposits, orderings)
	}
	return deposits, nil
}

func (svc *Service) AvailablePlants(userID string) (plants []PlantDefinition, err error) {
	err = svc.view(userID, func(eng *Engine) error {
		plants = eng.ListAvailablePlants()
		return nil
	})
	return plants, err
}

// RecordDeposit records a deposit for userID and reports its outcome through the notifier.
func (svc *Service) RecordDeposit(userID string, amount decimal.Decimal, description string) (res DepositResult, err error) {
	description = core.CleanString(description)

	err = svc.update(userID, func(eng *Engine) error {
		event, progress, err := eng.RecordDeposit(amount, description)
		if err != nil {
			return err
		}
		res = DepositResult{
			Deposit:       event,
			MatchingBonus: ComputeMatchingBonus(amount),
			Account:       eng.Account(userID),
			Progress:      progress,
		}
		return nil
	})
	if err != nil {
		switch errors.Cause(err) {
		case ErrInvalidAmount:
			svc.notify(userID, core.KindError, "Invalid amount", "Please enter an amount greater than zero.")
			return DepositResult{}, core.NewValidationError(err, core.FieldError{Field: "amount", Error: err.Error()})
		case ErrAmountTooLarge:
			svc.notify(userID, core.KindError, "Invalid amount", fmt.Sprintf(
				"A single deposit cannot be more than %s.", core.FormatMoney(MaxDepositAmount),
			))
			return DepositResult{}, core.NewValidationError(err, core.FieldError{Field: "amount", Error: err.Error()})
		}
		return DepositResult{}, err
	}

	svc.notify(userID, core.KindSuccess, "Savings added! 💰", fmt.Sprintf(
		"You saved %s. Matching bonus: %s.", core.FormatMoney(amount), core.FormatMoney(res.MatchingBonus),
	))
	if res.Progress.LeveledUp() {
		svc.notify(userID, core.KindMilestone, "Level up! 🌟", fmt.Sprintf(
			"You reached level %d with %s saved.", res.Progress.LevelAfter, core.FormatMoney(res.Account.TotalSavings),
		))
	}
	if res.Progress.StageChanged() {
		name := res.Progress.Plant.PlantID
		if def, ok := svc.catalog.Get(name); ok {
			name = def.Name
		}
		svc.notify(userID, core.KindMilestone, "Your plant grew! 🌱", fmt.Sprintf(
			"Your %s is now %s.", name, res.Progress.Plant.StageAfter,
		))
	}
	return res, nil
}

// SelectPlant selects the plant grown by the user's next deposits.
func (svc *Service) SelectPlant(userID, plantID string) (state PlantState, err error) {
	err = svc.update(userID, func(eng *Engine) error {
		state, err = eng.SelectPlant(plantID)
		return err
	})
	if err != nil {
		switch errors.Cause(err) {
		case ErrPlantLocked:
			def, _ := svc.catalog.Get(plantID)
			svc.notify(userID, core.KindError, "Plant locked 🔒", fmt.Sprintf(
				"Reach level %d to unlock the %s.", def.UnlockLevel, def.Name,
			))
			return PlantState{}, core.NewValidationError(err, core.FieldError{Field: "plant_id", Error: err.Error()})
		case ErrPlantNotFound:
			svc.notify(userID, core.KindError, "Plant not found", "That plant is not in the garden catalog.")
		}
		return PlantState{}, err
	}

	def, _ := svc.catalog.Get(plantID)
	svc.notify(userID, core.KindSuccess, "Plant selected "+def.Emoji, fmt.Sprintf(
		"Your savings will now grow the %s.", def.Name,
	))
	return state, nil
}

// VerifyDeposit marks one of the user's deposits as verified by verifierID.
// A failed verification is reported to the verifier.
func (svc *Service) VerifyDeposit(userID, depositID, verifierID string) (event DepositEvent, err error) {
	err = svc.update(userID, func(eng *Engine) error {
		event, err = eng.VerifyDeposit(depositID, verifierID)
		return err
	})
	if err != nil {
		if errors.Cause(err) == ErrDepositNotFound {
			svc.notify(verifierID, core.KindError, "Deposit not found", "That deposit does not exist anymore.")
		}
		return DepositEvent{}, err
	}
	svc.notify(userID, core.KindSuccess, "Deposit verified ✓", fmt.Sprintf(
		"Your deposit of %s was verified.", core.FormatMoney(event.Amount),
	))
	return event, nil
}

func sortDeposits(deposits []DepositEvent, orderings []core.Ordering) {
	sort.SliceStable(deposits, func(i, j int) bool {
		a, b := deposits[i], deposits[j]
		for _, ord := range orderings {
			var cmp int
			switch ord.Field {
			case "created_at":
				switch {
				case a.CreatedAt.Before(b.CreatedAt):
					cmp = -1
				case a.CreatedAt.After(b.CreatedAt):
					cmp = 1
				}
			case "amount":
				cmp = a.Amount.Cmp(b.Amount)
			case "verified":
				switch {
				case !a.Verified && b.Verified:
					cmp = -1
				case a.Verified && !b.Verified:
					cmp = 1
				}
			}
			if cmp == 0 {
				continue
			}
			if ord.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return false
	})
}

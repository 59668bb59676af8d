package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/growthapp/garden/core"
	"github.com/growthapp/garden/core/games"
	"github.com/growthapp/garden/storage/database/inmem"
	testutil "github.com/growthapp/garden/tests"
)

func newTestApp(t *testing.T) *App {
	conf := &core.Config{TestMode: true, AppName: "Growth Garden"}
	app, err := NewAppWithStore(conf, testutil.NopLogger{}, inmemdb.NewStore(), nil)
	if err != nil {
		t.Fatalf("NewAppWithStore() failed: %v", err)
	}
	return app
}

func TestApp_SeedDemoData(t *testing.T) {
	app := newTestApp(t)
	defer app.Close()

	created, err := app.SeedDemoData()
	if err != nil {
		t.Fatalf("SeedDemoData() failed: %v", err)
	}
	assert.Len(t, created, 3)

	acc, err := app.GrowthSvc.Account("1")
	if err != nil {
		t.Fatalf("Account() failed: %v", err)
	}
	if want := decimal.RequireFromString("45.50"); !acc.TotalSavings.Equal(want) {
		t.Errorf("Account().TotalSavings = %v, want %v", acc.TotalSavings, want)
	}
	assert.Equal(t, "1", acc.SelectedPlantID)

	deposits, err := app.GrowthSvc.Deposits("1")
	if err != nil {
		t.Fatalf("Deposits() failed: %v", err)
	}
	var verified int
	for _, d := range deposits {
		if d.Verified {
			verified++
			assert.Equal(t, "2", d.VerifiedBy)
		}
	}
	assert.Len(t, deposits, len(demoDeposits))
	assert.Equal(t, 2, verified)

	// seeding is silent
	inbox, err := app.Inbox.List("1")
	if err != nil {
		t.Fatalf("Inbox.List() failed: %v", err)
	}
	assert.Empty(t, inbox)

	// seeding twice does not duplicate anything
	created, err = app.SeedDemoData()
	if err != nil {
		t.Fatalf("SeedDemoData() failed: %v", err)
	}
	assert.Empty(t, created)
	deposits, _ = app.GrowthSvc.Deposits("1")
	assert.Len(t, deposits, len(demoDeposits))
}

func TestApp_creditGame(t *testing.T) {
	app := newTestApp(t)
	defer app.Close()

	app.creditGame("42", games.KindCoinCounter, 30)
	app.creditGame("42", games.KindSavingsSprint, 50)

	p, err := app.Points.Points("42")
	if err != nil {
		t.Fatalf("Points() failed: %v", err)
	}
	assert.Equal(t, 80, p.Total)
	assert.Equal(t, 2, p.GamesPlayed)

	inbox, err := app.Inbox.List("42")
	if err != nil {
		t.Fatalf("Inbox.List() failed: %v", err)
	}
	if assert.Len(t, inbox, 2) {
		assert.Equal(t, core.KindSuccess, inbox[0].Kind)
		assert.Equal(t, "You scored 50 points. Total: 80", inbox[0].Message)
	}
}

func TestApp_depositNotifications(t *testing.T) {
	app := newTestApp(t)
	defer app.Close()

	if _, err := app.GrowthSvc.RecordDeposit("7", decimal.NewFromInt(5), "pocket money"); err != nil {
		t.Fatalf("RecordDeposit() failed: %v", err)
	}
	inbox, err := app.Inbox.List("7")
	if err != nil {
		t.Fatalf("Inbox.List() failed: %v", err)
	}
	if assert.NotEmpty(t, inbox) {
		assert.Equal(t, core.KindSuccess, inbox[len(inbox)-1].Kind)
	}
}

package growth

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	all := c.All()
	if len(all) != 6 {
		t.Fatalf("All() len = %d, want 6", len(all))
	}
	wantOrder := []string{"Sunflower", "Oak Tree", "Mint", "Apple Tree", "Rose", "Pine Tree"}
	for i, p := range all {
		if p.Name != wantOrder[i] {
			t.Errorf("All()[%d] = %s, want %s", i, p.Name, wantOrder[i])
		}
	}

	apple, ok := c.Get("4")
	if !ok || apple.Category != CategoryFruit || apple.UnlockLevel != 3 || apple.Emoji != "🍎" {
		t.Errorf("Get(4) = %+v, %v", apple, ok)
	}
	if _, ok := c.Get("7"); ok {
		t.Errorf("Get(7) found an unknown plant")
	}

	// All returns a copy
	all[0].Name = "Weed"
	if p, _ := c.Get("1"); p.Name != "Sunflower" {
		t.Errorf("All() leaked catalog storage")
	}
}

func TestLoadCatalog_invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "not yaml", yaml: "plants: [", wantErr: "failed to parse"},
		{name: "empty", yaml: "plants: []", wantErr: "cannot be empty"},
		{name: "no id", yaml: "plants:\n  - name: A\n    category: herb\n    unlockLevel: 1", wantErr: "id cannot be empty"},
		{
			name:    "duplicate id",
			yaml:    "plants:\n  - {id: a, name: A, category: herb, unlockLevel: 1}\n  - {id: a, name: B, category: herb, unlockLevel: 1}",
			wantErr: "duplicate id",
		},
		{name: "no name", yaml: "plants:\n  - {id: a, category: herb, unlockLevel: 1}", wantErr: "name cannot be empty"},
		{name: "bad category", yaml: "plants:\n  - {id: a, name: A, category: cactus, unlockLevel: 1}", wantErr: "unknown category"},
		{name: "bad level", yaml: "plants:\n  - {id: a, name: A, category: tree, unlockLevel: 0}", wantErr: "unlock level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadCatalog() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCatalog_Available(t *testing.T) {
	c, err := LoadCatalog([]byte(`
plants:
  - {id: c, name: C, category: tree, unlockLevel: 3}
  - {id: a, name: A, category: herb, unlockLevel: 1}
  - {id: b, name: B, category: fruit, unlockLevel: 2}
  - {id: d, name: D, category: flower, unlockLevel: 1}
`))
	if err != nil {
		t.Fatalf("LoadCatalog() unexpected error = %v", err)
	}

	tests := []struct {
		level int
		want  string
	}{
		{level: 0, want: ""},
		{level: 1, want: "ad"},
		{level: 2, want: "abd"},
		{level: 3, want: "cabd"},
		{level: 99, want: "cabd"},
	}
	for _, tt := range tests {
		var got strings.Builder
		for _, p := range c.Available(tt.level) {
			got.WriteString(p.ID)
		}
		if got.String() != tt.want {
			t.Errorf("Available(%d) = %q, want %q", tt.level, got.String(), tt.want)
		}
	}
}

package growth

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed plants.yaml
var embeddedPlants []byte

var defaultCatalog = mustLoadEmbedded()

// Catalog is the static list of unlockable plants, in declaration order.
type Catalog struct {
	plants []PlantDefinition
	byID   map[string]int
}

type catalogFile struct {
	Plants []PlantDefinition `yaml:"plants"`
}

// DefaultCatalog returns the embedded plant catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func mustLoadEmbedded() *Catalog {
	c, err := LoadCatalog(embeddedPlants)
	if err != nil {
		panic(fmt.Sprintf("growth: embedded plant catalog: %v", err))
	}
	return c
}

// LoadCatalog parses and validates a YAML plant catalog.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse plant catalog YAML: %w", err)
	}
	if len(file.Plants) == 0 {
		return nil, fmt.Errorf("plant catalog cannot be empty")
	}

	c := &Catalog{
		plants: file.Plants,
		byID:   make(map[string]int, len(file.Plants)),
	}
	for i, p := range file.Plants {
		if p.ID == "" {
			return nil, fmt.Errorf("plant #%d: id cannot be empty", i+1)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("plant %q: duplicate id", p.ID)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("plant %q: name cannot be empty", p.ID)
		}
		if !p.Category.valid() {
			return nil, fmt.Errorf("plant %q: unknown category %q", p.ID, p.Category)
		}
		if p.UnlockLevel < 1 {
			return nil, fmt.Errorf("plant %q: unlock level must be at least 1, got %d", p.ID, p.UnlockLevel)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// All returns every plant in catalog order.
func (c *Catalog) All() []PlantDefinition {
	plants := make([]PlantDefinition, len(c.plants))
	copy(plants, c.plants)
	return plants
}

func (c *Catalog) Get(id string) (PlantDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return PlantDefinition{}, false
	}
	return c.plants[i], true
}

// Available returns the plants unlocked at the given level, in catalog order.
func (c *Catalog) Available(level int) []PlantDefinition {
	plants := make([]PlantDefinition, 0, len(c.plants))
	for _, p := range c.plants {
		if p.UnlockLevel <= level {
			plants = append(plants, p)
		}
	}
	return plants
}

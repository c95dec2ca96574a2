// Package catalog holds the system-wide default category tables: the
// description allow-lists used to validate imported and kind-tagged
// transactions, and the starter set seeded for every new user.
//
// A Catalog is a plain value handed to services at construction time. Nothing
// in this package is mutable global state.
package catalog

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"financehub/internal/models"
	"financehub/internal/palette"
)

// Seed is one starter category.
type Seed struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Catalog is the set of system defaults.
type Catalog struct {
	ExpenseDescriptions []string `yaml:"expense_descriptions"`
	IncomeDescriptions  []string `yaml:"income_descriptions"`
	IncomeSeeds         []Seed   `yaml:"income_seeds"`
	ExpenseSeeds        []Seed   `yaml:"expense_seeds"`
}

// Default returns a fresh copy of the built-in tables.
func Default() *Catalog {
	c := &Catalog{
		ExpenseDescriptions: []string{
			"Rent / Mortgage",
			"Groceries / Food",
			"Utilities",
			"Internet & Phone",
			"Transportation",
			"Insurance",
			"Subscriptions",
			"Personal Care",
			"Savings / Investments",
			"Entertainment / Leisure",
		},
		IncomeDescriptions: []string{
			"Salary / Wages",
			"Freelance / Contract Work",
			"Business Income",
			"Investment Returns",
			"Rental Income",
			"Dividends",
			"Government Benefits",
			"Scholarships / Grants",
			"Pensions",
			"Side Hustles / Gigs",
		},
		IncomeSeeds: seeds("Salary", "Freelance", "Investment", "Business Income"),
		ExpenseSeeds: seeds(
			"Food & Dining",
			"Transportation",
			"Healthcare",
			"Shopping",
			"Entertainment",
			"Rent / Mortgage",
			"Utilities",
			"Other",
		),
	}
	return c
}

// Load reads a YAML override file. Any table left empty in the file keeps its
// built-in value.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	c := Default()
	if len(override.ExpenseDescriptions) > 0 {
		c.ExpenseDescriptions = override.ExpenseDescriptions
	}
	if len(override.IncomeDescriptions) > 0 {
		c.IncomeDescriptions = override.IncomeDescriptions
	}
	if len(override.IncomeSeeds) > 0 {
		c.IncomeSeeds = override.IncomeSeeds
	}
	if len(override.ExpenseSeeds) > 0 {
		c.ExpenseSeeds = override.ExpenseSeeds
	}
	c.fillColors()
	return c, nil
}

// Descriptions returns the allow-list for kind.
func (c *Catalog) Descriptions(kind models.Kind) []string {
	switch kind {
	case models.KindExpense:
		return c.ExpenseDescriptions
	case models.KindIncome:
		return c.IncomeDescriptions
	}
	return nil
}

// Allows reports whether description is on the allow-list for kind.
func (c *Catalog) Allows(kind models.Kind, description string) bool {
	return slices.Contains(c.Descriptions(kind), description)
}

// Known reports whether name appears on either allow-list.
func (c *Catalog) Known(name string) bool {
	return c.Allows(models.KindExpense, name) || c.Allows(models.KindIncome, name)
}

// SeedCategories returns the starter rows for userID.
func (c *Catalog) SeedCategories(userID string) []models.UserCategory {
	out := make([]models.UserCategory, 0, len(c.IncomeSeeds)+len(c.ExpenseSeeds))
	for _, s := range c.IncomeSeeds {
		out = append(out, models.UserCategory{UserID: userID, Name: s.Name, Color: s.Color, Type: models.KindIncome})
	}
	for _, s := range c.ExpenseSeeds {
		out = append(out, models.UserCategory{UserID: userID, Name: s.Name, Color: s.Color, Type: models.KindExpense})
	}
	return out
}

func (c *Catalog) fillColors() {
	for i := range c.IncomeSeeds {
		if c.IncomeSeeds[i].Color == "" {
			c.IncomeSeeds[i].Color = palette.ColorFor(c.IncomeSeeds[i].Name)
		}
	}
	for i := range c.ExpenseSeeds {
		if c.ExpenseSeeds[i].Color == "" {
			c.ExpenseSeeds[i].Color = palette.ColorFor(c.ExpenseSeeds[i].Name)
		}
	}
}

func seeds(names ...string) []Seed {
	out := make([]Seed, len(names))
	for i, n := range names {
		out[i] = Seed{Name: n, Color: palette.ColorFor(n)}
	}
	return out
}

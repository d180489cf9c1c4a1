// Package catalog holds the subsidy program registry. A Catalog is built
// once at startup and injected into the services that need it; it is
// read-only after construction.
package catalog

import (
	"fmt"
	"strings"

	"subsidy-advisor-engine/internal/models"
)

// Catalog is an immutable collection of subsidy programs in a fixed order.
type Catalog struct {
	programs []*models.SubsidyProgram
	byID     map[string]*models.SubsidyProgram
}

// New constructs a catalog from a program list. Program order is preserved;
// it is the tie-break order for equal match scores.
func New(programs []*models.SubsidyProgram) (*Catalog, error) {
	byID := make(map[string]*models.SubsidyProgram, len(programs))
	for _, p := range programs {
		if p.ID == "" {
			return nil, fmt.Errorf("program %q has no id", p.Name)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate program id %q", p.ID)
		}
		byID[p.ID] = p
	}

	return &Catalog{
		programs: programs,
		byID:     byID,
	}, nil
}

// MustNew is New but panics on invalid input. Used for the builtin catalog.
func MustNew(programs []*models.SubsidyProgram) *Catalog {
	c, err := New(programs)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of programs.
func (c *Catalog) Len() int {
	return len(c.programs)
}

// All returns the programs in catalog order. The returned slice is a copy;
// the programs themselves are shared and must not be mutated.
func (c *Catalog) All() []*models.SubsidyProgram {
	out := make([]*models.SubsidyProgram, len(c.programs))
	copy(out, c.programs)
	return out
}

// ByID returns the program with the given id, or nil.
func (c *Catalog) ByID(id string) *models.SubsidyProgram {
	return c.byID[id]
}

// ByCategory returns all programs in the given category, in catalog order.
func (c *Catalog) ByCategory(category models.SubsidyCategory) []*models.SubsidyProgram {
	var out []*models.SubsidyProgram
	for _, p := range c.programs {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search returns programs whose name, description, or eligible expense list
// contains the keyword, in catalog order.
func (c *Catalog) Search(keyword string) []*models.SubsidyProgram {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	var out []*models.SubsidyProgram
	for _, p := range c.programs {
		if strings.Contains(p.Name, keyword) || strings.Contains(p.Description, keyword) {
			out = append(out, p)
			continue
		}
		for _, expense := range p.EligibleExpenses {
			if strings.Contains(expense, keyword) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

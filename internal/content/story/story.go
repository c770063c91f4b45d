// Package story holds the day-by-day story scenes shown by the once-daily modal.
package story

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gamttori/gamttori/internal/models"
)

//go:embed days.json
var builtin []byte

type Catalog struct {
	days map[int]models.DayEntry
}

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("story: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse reads a JSON array of day entries. Duplicate days are rejected.
func Parse(data []byte) (*Catalog, error) {
	var entries []models.DayEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing story catalog: %w", err)
	}
	c := &Catalog{days: make(map[int]models.DayEntry, len(entries))}
	for _, e := range entries {
		if e.Day < 1 {
			return nil, fmt.Errorf("story day %d out of range", e.Day)
		}
		if _, dup := c.days[e.Day]; dup {
			return nil, fmt.Errorf("duplicate story day %d", e.Day)
		}
		c.days[e.Day] = e
	}
	return c, nil
}

func (c *Catalog) ForDay(day int) (models.DayEntry, bool) {
	e, ok := c.days[day]
	return e, ok
}

// Days lists the covered days in order.
func (c *Catalog) Days() []int {
	days := make([]int, 0, len(c.days))
	for d := range c.days {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

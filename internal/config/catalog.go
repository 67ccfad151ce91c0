package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/bitcorise/earnbot/internal/domain"
)

// Catalog is the static task configuration, loaded once at startup and
// read-only afterwards. A missing or malformed file is startup-fatal.
type Catalog struct {
	tasks map[string]domain.Task
	order []string
}

// LoadCatalog reads the task definitions from path and validates them.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task catalog: %w", err)
	}

	var raw map[string]domain.Task
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode task catalog: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("task catalog %s is empty", path)
	}

	c := &Catalog{tasks: make(map[string]domain.Task, len(raw))}
	for key, t := range raw {
		t.Key = key
		if t.Name == "" {
			return nil, fmt.Errorf("task %q: missing name", key)
		}
		if !t.Reward.IsPositive() {
			return nil, fmt.Errorf("task %q: reward must be positive", key)
		}
		if t.WaitSeconds <= 0 {
			return nil, fmt.Errorf("task %q: wait must be positive", key)
		}
		c.tasks[key] = t
		c.order = append(c.order, key)
	}
	sort.Strings(c.order)

	return c, nil
}

// Get returns the task for key.
func (c *Catalog) Get(key string) (domain.Task, bool) {
	t, ok := c.tasks[key]
	return t, ok
}

// All returns the tasks in stable menu order.
func (c *Catalog) All() []domain.Task {
	out := make([]domain.Task, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.tasks[key])
	}
	return out
}

// Keys returns the task keys in menu order.
func (c *Catalog) Keys() []string {
	return c.order
}

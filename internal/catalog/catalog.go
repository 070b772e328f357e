package catalog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yildizm/GefSum/internal/model"
)

// Catalog is an in-memory index of soil investigations
type Catalog struct {
	mu             sync.RWMutex
	investigations []model.Investigation
}

// Match is an investigation together with its distance to a search point
type Match struct {
	model.Investigation `yaml:",inline"`
	Distance            float64 `yaml:"distance" json:"distance"`
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{}
}

// Add appends investigations to the catalog
func (c *Catalog) Add(investigations ...model.Investigation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.investigations = append(c.investigations, investigations...)
}

// Len returns the number of investigations
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.investigations)
}

// List returns a copy of all investigations in insertion order
func (c *Catalog) List() []model.Investigation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Investigation, len(c.investigations))
	copy(out, c.investigations)
	return out
}

// Count returns the number of investigations of one kind
func (c *Catalog) Count(kind model.Kind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, inv := range c.investigations {
		if inv.Kind == kind {
			n++
		}
	}
	return n
}

// Closest returns at most n investigations within maxDistance of (x, y),
// nearest first. Equal distances keep catalog order.
func (c *Catalog) Closest(x, y, maxDistance float64, n int) []Match {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matches := make([]Match, 0)
	for _, inv := range c.investigations {
		d := inv.DistanceTo(x, y)
		if d <= maxDistance {
			matches = append(matches, Match{Investigation: inv, Distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if n >= 0 && n < len(matches) {
		matches = matches[:n]
	}
	return matches
}

type catalogFile struct {
	Investigations []model.Investigation `yaml:"investigations"`
}

// WriteTo writes the catalog as YAML
func (c *Catalog) WriteTo(w io.Writer) (int64, error) {
	data, err := yaml.Marshal(catalogFile{Investigations: c.List()})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// SaveToFile persists the catalog so that later runs can skip the directory scan
func (c *Catalog) SaveToFile(filename string) error {
	file, err := os.Create(filename) // #nosec G304 - user selected cache file
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer file.Close()

	if _, err := c.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// LoadFromFile reads a catalog written by SaveToFile
func LoadFromFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename) // #nosec G304 - user selected cache file
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	c := New()
	c.Add(cf.Investigations...)
	return c, nil
}

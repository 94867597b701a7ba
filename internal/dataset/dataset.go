// Package dataset reads the authored corpus and writes derived artifacts.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/sky-flux/chrono"
	"github.com/sky-flux/chrono/derive"
)

// ErrInvalidRegistry is returned for a unit registry without a units list
// or with entries lacking a path.
var ErrInvalidRegistry = errors.New("dataset: invalid unit registry")

// RegistryEntry points at one unit file. Relative paths resolve against the
// registry's directory.
type RegistryEntry struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// Registry lists the unit files of a corpus.
type Registry struct {
	Units []RegistryEntry `json:"units"`
}

// FallbackRegistry is used when the registry file does not exist.
var FallbackRegistry = Registry{Units: []RegistryEntry{
	{ID: "unit_french_revolution_napoleon", Path: "french-revolution-napoleon.json"},
	{ID: "unit_industrial_revolution", Path: "industrial-revolution.json"},
}}

const loadConcurrency = 8

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadEvents reads the raw event corpus, a JSON array of events.
func LoadEvents(path string) ([]chrono.Event, error) {
	var events []chrono.Event
	if err := readJSON(path, &events); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	if events == nil {
		return nil, fmt.Errorf("load events: %s must be an array", path)
	}
	return events, nil
}

// ReadRegistry reads the unit registry at path. It reports fallback=true and
// returns FallbackRegistry when the file does not exist.
func ReadRegistry(path string) (reg Registry, fallback bool, err error) {
	var raw struct {
		Units *[]RegistryEntry `json:"units"`
	}
	err = readJSON(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return FallbackRegistry, true, nil
	}
	if err != nil {
		return Registry{}, false, fmt.Errorf("read registry: %w", err)
	}
	if raw.Units == nil {
		return Registry{}, false, fmt.Errorf("%w: %s must contain { units: [] }", ErrInvalidRegistry, path)
	}
	for _, e := range *raw.Units {
		if e.Path == "" {
			return Registry{}, false, fmt.Errorf("%w: entry %q must include a path", ErrInvalidRegistry, e.ID)
		}
	}
	return Registry{Units: *raw.Units}, false, nil
}

// LoadUnit reads and validates one unit file.
func LoadUnit(path string) (chrono.Unit, error) {
	var u chrono.Unit
	if err := readJSON(path, &u); err != nil {
		return chrono.Unit{}, fmt.Errorf("load unit: %w", err)
	}
	if err := derive.ValidateUnit(u); err != nil {
		return chrono.Unit{}, fmt.Errorf("%s: %w", path, err)
	}
	if u.EventIDs == nil {
		return chrono.Unit{}, fmt.Errorf("%s: %w: event_ids must be an array of strings", path, derive.ErrInvalidUnit)
	}
	return u, nil
}

// LoadUnits reads every unit listed in the registry at registryPath,
// concurrently, and returns them in registry order.
func LoadUnits(ctx context.Context, registryPath string) (units []chrono.Unit, fallback bool, err error) {
	reg, fallback, err := ReadRegistry(registryPath)
	if err != nil {
		return nil, false, err
	}
	base := filepath.Dir(registryPath)

	units = make([]chrono.Unit, len(reg.Units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, entry := range reg.Units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := entry.Path
			if !filepath.IsAbs(p) {
				p = filepath.Join(base, p)
			}
			u, err := LoadUnit(p)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fallback, err
	}
	return units, fallback, nil
}

// WriteArtifacts encodes every artifact into dir, creating it if needed.
func WriteArtifacts(ctx context.Context, dir string, a derive.Artifacts) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range a.Files() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := derive.EncodeJSON(f.Value)
			if err != nil {
				return fmt.Errorf("encode %s: %w", f.Name, err)
			}
			if err := os.WriteFile(filepath.Join(dir, f.Name), data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", f.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Derived is the part of the derived output a quiz needs.
type Derived struct {
	Events []derive.NormalizedEvent
	Units  []chrono.Unit
}

// LoadDerived reads the normalized events and the units index from dir.
func LoadDerived(dir string) (Derived, error) {
	var d Derived
	if err := readJSON(filepath.Join(dir, derive.FileEventsNormalized), &d.Events); err != nil {
		return Derived{}, fmt.Errorf("load derived events: %w", err)
	}
	if err := readJSON(filepath.Join(dir, derive.FileUnits), &d.Units); err != nil {
		return Derived{}, fmt.Errorf("load derived units: %w", err)
	}
	return d, nil
}

// Unit returns the unit with the given id.
func (d Derived) Unit(id string) (chrono.Unit, bool) {
	for _, u := range d.Units {
		if u.ID == id {
			return u, true
		}
	}
	return chrono.Unit{}, false
}

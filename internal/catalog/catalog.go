package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"PAIBot/internal/model"
)

// Catalog is the read-only set of investment tracks and SDG reference data.
type Catalog struct {
	version string
	tracks  []model.Track
	byID    map[string]int
}

// file is the on-disk layout of a catalog override.
type file struct {
	Version string        `yaml:"version"`
	Tracks  []model.Track `yaml:"tracks"`
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := New(DefaultVersion, defaultTracks)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

// New validates tracks and builds a catalog from a private copy of them.
func New(version string, tracks []model.Track) (*Catalog, error) {
	c := &Catalog{version: version, byID: make(map[string]int, len(tracks))}
	for i, t := range tracks {
		if err := validateTrack(t); err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("track %d: duplicate id %q", i, t.ID)
		}
		c.byID[t.ID] = i
		c.tracks = append(c.tracks, cloneTrack(t))
	}
	return c, nil
}

// Load reads a YAML catalog file. An empty path returns the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if f.Version == "" {
		f.Version = "custom"
	}
	return New(f.Version, f.Tracks)
}

// Version identifies the catalog revision.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of tracks.
func (c *Catalog) Len() int { return len(c.tracks) }

// Tracks returns a copy of the tracks in catalog order.
func (c *Catalog) Tracks() []model.Track {
	out := make([]model.Track, len(c.tracks))
	for i, t := range c.tracks {
		out[i] = cloneTrack(t)
	}
	return out
}

// Get returns the track with the given id.
func (c *Catalog) Get(id string) (model.Track, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Track{}, false
	}
	return cloneTrack(c.tracks[i]), true
}

func validateTrack(t model.Track) error {
	if t.ID == "" {
		return fmt.Errorf("id is required")
	}
	if t.Name.En == "" && t.Name.Zh == "" {
		return fmt.Errorf("%s: name is required", t.ID)
	}
	for name, v := range map[string]float64{
		"risk_level":    t.RiskLevel,
		"time_horizon":  t.TimeHorizon,
		"esg_profile.e": t.ESGProfile.E,
		"esg_profile.s": t.ESGProfile.S,
		"esg_profile.g": t.ESGProfile.G,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s: %s must be within 0-100, got %v", t.ID, name, v)
		}
	}
	for _, s := range t.SDGs {
		if s < 1 || s > 17 {
			return fmt.Errorf("%s: sdg %d out of range 1-17", t.ID, s)
		}
	}
	return nil
}

func cloneTrack(t model.Track) model.Track {
	t.SDGs = append([]int(nil), t.SDGs...)
	t.Sectors = append([]model.Localized(nil), t.Sectors...)
	t.Examples = append([]model.Localized(nil), t.Examples...)
	return t
}

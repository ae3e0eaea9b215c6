package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/griffincancode/refreshrated/internal/refreshrate"
)

// CatalogDocument is the on-disk YAML shape for a display's mode catalog
// and its initial display-manager policy.
type CatalogDocument struct {
	Modes               []ModeDocument `yaml:"modes"`
	CurrentMode         int64          `yaml:"currentMode"`
	DefaultMode         int64          `yaml:"defaultMode"`
	PrimaryRange        RangeDocument  `yaml:"primaryRange"`
	AppRange            RangeDocument  `yaml:"appRange"`
	AllowGroupSwitching bool           `yaml:"allowGroupSwitching"`
}

// ModeDocument is a single display mode entry in the catalog document.
type ModeDocument struct {
	ID            int64   `yaml:"id"`
	Rate          float64 `yaml:"rate"`
	Group         int     `yaml:"group"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	VsyncPeriodNs int64   `yaml:"vsyncPeriodNs"`
}

// RangeDocument is a [lo, hi] rate range in the catalog document.
type RangeDocument struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// LoadCatalog reads and parses a CatalogDocument from path.
func LoadCatalog(path string) (CatalogDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CatalogDocument{}, fmt.Errorf("reading catalog file %q: %w", path, err)
	}
	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return CatalogDocument{}, fmt.Errorf("parsing catalog file %q: %w", path, err)
	}
	return doc, nil
}

// Catalog converts the document into a refreshrate.Catalog.
func (d CatalogDocument) Catalog() (refreshrate.Catalog, error) {
	modes := make([]refreshrate.DisplayMode, len(d.Modes))
	for i, m := range d.Modes {
		modes[i] = refreshrate.DisplayMode{
			ID:            refreshrate.ModeID(m.ID),
			Rate:          refreshrate.Fps(m.Rate),
			Group:         m.Group,
			Resolution:    refreshrate.Resolution{Width: m.Width, Height: m.Height},
			VsyncPeriodNs: m.VsyncPeriodNs,
		}
	}
	return refreshrate.NewCatalog(modes)
}

// Policy converts the document's ranges into a refreshrate.Policy.
func (d CatalogDocument) Policy() refreshrate.Policy {
	return refreshrate.Policy{
		DefaultMode:         refreshrate.ModeID(d.DefaultMode),
		PrimaryRange:        refreshrate.Range{Lo: refreshrate.Fps(d.PrimaryRange.Lo), Hi: refreshrate.Fps(d.PrimaryRange.Hi)},
		AppRange:            refreshrate.Range{Lo: refreshrate.Fps(d.AppRange.Lo), Hi: refreshrate.Fps(d.AppRange.Hi)},
		AllowGroupSwitching: d.AllowGroupSwitching,
	}
}

// DefaultCatalogDocument returns a small built-in catalog used when no
// catalog file is present, so the server can start without external
// configuration.
func DefaultCatalogDocument() CatalogDocument {
	return CatalogDocument{
		Modes: []ModeDocument{
			{ID: 1, Rate: 60, Group: 0, Width: 1920, Height: 1080, VsyncPeriodNs: 16666667},
			{ID: 2, Rate: 90, Group: 0, Width: 1920, Height: 1080, VsyncPeriodNs: 11111111},
			{ID: 3, Rate: 120, Group: 0, Width: 1920, Height: 1080, VsyncPeriodNs: 8333333},
		},
		CurrentMode:  1,
		DefaultMode:  1,
		PrimaryRange: RangeDocument{Lo: 60, Hi: 120},
		AppRange:     RangeDocument{Lo: 60, Hi: 120},
	}
}

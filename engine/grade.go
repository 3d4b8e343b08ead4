package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ChemistryElement is one element/percent pair in a SteelGrade's chemistry.
type ChemistryElement struct {
	ElementName string  `json:"ElementName"`
	Percentage  float64 `json:"Percentage"`
}

// SteelGrade is a read-only catalog entry (spec.md §3).
type SteelGrade struct {
	SteelGradeID           string             `json:"SteelGradeId"`
	SteelGradeGroup        string             `json:"SteelGradeGroup"`
	LiquidusTemperatureC   float64            `json:"LiquidusTemperatureC"`
	Description            string             `json:"Description"`
	TargetSuperheatC       float64            `json:"TargetSuperheatC"`
	Chemistry              []ChemistryElement `json:"Chemistry"`
}

// Catalog is the immutable, process-wide steel-grade lookup table, loaded
// once at start-up. LoadCatalog reads the file with os.ReadFile and decodes
// it with json.Unmarshal (unknown JSON fields are ignored); a failure is
// logged at Error level and returned, and the caller decides whether it is
// fatal (spec.md §6).
type Catalog struct {
	grades map[string]SteelGrade
	ids    []string
}

// LoadCatalog reads a steel-grade catalog from a JSON file. A read or parse
// failure is a ConfigLoadFailureError (fatal at start-up per spec.md §7).
func LoadCatalog(path string) (*Catalog, error) {
	loadID := uuid.NewString()
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithField("catalog_load_id", loadID).Errorf("failed to read steel-grade catalog %q: %v", path, err)
		return nil, &ConfigLoadFailureError{Path: path, Err: err}
	}
	var entries []SteelGrade
	if err := json.Unmarshal(data, &entries); err != nil {
		logrus.WithField("catalog_load_id", loadID).Errorf("failed to parse steel-grade catalog %q: %v", path, err)
		return nil, &ConfigLoadFailureError{Path: path, Err: err}
	}
	c := &Catalog{grades: make(map[string]SteelGrade, len(entries))}
	for _, g := range entries {
		c.grades[g.SteelGradeID] = g
		c.ids = append(c.ids, g.SteelGradeID)
	}
	logrus.WithField("catalog_load_id", loadID).Infof("loaded steel-grade catalog: %d grades from %s", len(c.ids), path)
	return c, nil
}

// Lookup returns the grade with the given id.
func (c *Catalog) Lookup(id string) (SteelGrade, bool) {
	g, ok := c.grades[id]
	return g, ok
}

// IDs returns every grade id in the catalog, in load order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// MustLookup returns the grade with the given id or a formatted error
// (not a typed error kind). Tracking.StartNextHeat calls it when it loads a
// heat's ladle, so a dangling grade id surfaces there as an error instead
// of reaching Tundish/Heat arithmetic.
func (c *Catalog) MustLookup(id string) (SteelGrade, error) {
	g, ok := c.Lookup(id)
	if !ok {
		return SteelGrade{}, fmt.Errorf("steel grade %q not found in catalog", id)
	}
	return g, nil
}

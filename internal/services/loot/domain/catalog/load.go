package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
)

// document is the JSON shape of a catalog file.
type document struct {
	Templates  []Template `json:"templates"`
	Categories []Category `json:"categories"`
	Supplies   []Supply   `json:"supplies"`
	Presets    []Preset   `json:"presets"`
}

// LoadJSON reads and validates a catalog document.
func LoadJSON(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeCatalogInvalid, "decode catalog", map[string]string{
			"Reason": err.Error(),
		}, err)
	}
	return New(doc.Templates, doc.Categories, doc.Supplies, doc.Presets)
}

// LoadFile reads a catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	c, err := LoadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// MarshalJSON writes the catalog in the document shape LoadJSON reads.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	doc := document{Categories: c.Categories()}
	for _, id := range c.templateOrder {
		t, _ := c.Template(id)
		doc.Templates = append(doc.Templates, t)
	}
	for _, id := range c.supplyOrder {
		s, _ := c.Supply(id)
		doc.Supplies = append(doc.Supplies, s)
	}
	for _, p := range c.presets {
		p.Counts = cloneCounts(p.Counts)
		doc.Presets = append(doc.Presets, p)
	}
	return json.Marshal(doc)
}

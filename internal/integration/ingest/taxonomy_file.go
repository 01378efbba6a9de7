package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finance-tracker/pnl/internal/application/adapter"
)

type taxonomyFile struct {
	Categories []taxonomyFileCategory `yaml:"categories"`
}

type taxonomyFileCategory struct {
	Name     string   `yaml:"name"`
	Section  string   `yaml:"section"`
	Keywords []string `yaml:"keywords"`
}

// builtinTaxonomy is offered when no seed file is configured.
var builtinTaxonomy = []adapter.TaxonomySeed{
	{Name: "Sales", Section: "Revenue", Keywords: []string{"sale", "invoice", "subscription"}},
	{Name: "Services", Section: "Revenue", Keywords: []string{"consulting", "service fee"}},
	{Name: "Payroll", Section: "Expenses", Keywords: []string{"salary", "payroll", "wage"}},
	{Name: "Rent", Section: "Expenses", Keywords: []string{"rent", "lease"}},
	{Name: "Utilities", Section: "Expenses", Keywords: []string{"electric", "water", "internet", "utility"}},
	{Name: "Software", Section: "Expenses", Keywords: []string{"software", "saas", "license"}},
	{Name: "Marketing", Section: "Expenses", Keywords: []string{"marketing", "advertising", "ads"}},
}

// taxonomySeedFile implements adapter.TaxonomySeedSource over a YAML file.
type taxonomySeedFile struct {
	path string
}

// NewTaxonomySeedFile creates a seed source reading path. An empty path
// serves the built-in default taxonomy.
func NewTaxonomySeedFile(path string) adapter.TaxonomySeedSource {
	return &taxonomySeedFile{path: path}
}

// Load reads the seed file on every call so edits apply without a restart.
func (s *taxonomySeedFile) Load(ctx context.Context) ([]adapter.TaxonomySeed, error) {
	if s.path == "" {
		seeds := make([]adapter.TaxonomySeed, len(builtinTaxonomy))
		copy(seeds, builtinTaxonomy)
		return seeds, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not read taxonomy seed file: %w", err)
	}

	return ParseTaxonomySeeds(data)
}

// ParseTaxonomySeeds decodes a YAML taxonomy document, keeping file order.
func ParseTaxonomySeeds(data []byte) ([]adapter.TaxonomySeed, error) {
	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("could not parse taxonomy seed file: %w", err)
	}

	seeds := make([]adapter.TaxonomySeed, 0, len(file.Categories))
	for _, c := range file.Categories {
		seeds = append(seeds, adapter.TaxonomySeed{
			Name:     c.Name,
			Keywords: c.Keywords,
			Section:  c.Section,
		})
	}

	slog.Debug("Loaded taxonomy seeds", "count", len(seeds))
	return seeds, nil
}

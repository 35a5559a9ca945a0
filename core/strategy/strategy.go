// Package strategy holds the catalog of teaching strategies and renders their documents.
package strategy

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pedagogyradar/radar/core"
	appfs "github.com/pedagogyradar/radar/fs"
)

var ErrNotFound = errors.New("strategy not found")

// partialsFile, when present next to the strategy templates, is parsed along with each of them.
const partialsFile = "_common.md.tmpl"

var funcs = template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": strings.Join,
}

// Strategy is a teaching strategy an activity can follow.
type Strategy struct {
	ID                  string   `yaml:"id" json:"id"`
	DisplayName         string   `yaml:"display_name" json:"display_name"`
	Description         string   `yaml:"description" json:"description"`
	Taxonomies          []string `yaml:"taxonomies" json:"taxonomies"`
	NSMMetrics          []string `yaml:"nsm_metrics" json:"nsm_metrics"`
	Evidence            []string `yaml:"evidence" json:"evidence"`
	ImplementationNotes string   `yaml:"implementation_notes" json:"implementation_notes"`
	References          []string `yaml:"references" json:"references"`
	Template            string   `yaml:"template" json:"-"`
}

type catalogDoc struct {
	Strategies []Strategy `yaml:"strategies"`
}

// Catalog is an immutable, ordered set of strategies with their parsed templates.
type Catalog struct {
	strategies []Strategy
	index      map[string]int
	tmpls      map[string]*template.Template
}

// Load parses a YAML catalog. Strategy templates are read from `dir` in `fsys`.
func Load(data []byte, fsys fs.FS, dir string) (*Catalog, error) {
	var doc catalogDoc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding strategies")
	}

	var partials []string
	if _, err := fs.Stat(fsys, path.Join(dir, partialsFile)); err == nil {
		partials = append(partials, path.Join(dir, partialsFile))
	}

	c := &Catalog{
		strategies: make([]Strategy, 0, len(doc.Strategies)),
		index:      make(map[string]int, len(doc.Strategies)),
		tmpls:      make(map[string]*template.Template, len(doc.Strategies)),
	}
	for _, s := range doc.Strategies {
		s.ID = core.CleanString(s.ID)
		switch {
		case s.ID == "":
			return nil, errors.New("strategy without id")
		case s.Template == "":
			return nil, errors.Errorf("strategy %q: no template", s.ID)
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, errors.Errorf("strategy %q: duplicate id", s.ID)
		}
		if s.DisplayName == "" {
			s.DisplayName = s.ID
		}

		files := append(append([]string(nil), partials...), path.Join(dir, s.Template))
		tmpl, err := template.New(path.Base(s.Template)).Funcs(funcs).ParseFS(fsys, files...)
		if err != nil {
			return nil, errors.Wrapf(err, "strategy %q: parsing template", s.ID)
		}

		c.index[s.ID] = len(c.strategies)
		c.strategies = append(c.strategies, s)
		c.tmpls[s.ID] = tmpl
	}
	return c, nil
}

// LoadDefault loads the embedded catalog.
func LoadDefault() (*Catalog, error) {
	data, err := appfs.FS.ReadFile(appfs.StrategiesFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading embedded strategies")
	}
	return Load(data, appfs.FS, appfs.StrategyTemplates)
}

// LoadFile loads a catalog from disk. Its templates sit in the same directory.
func LoadFile(fp string) (*Catalog, error) {
	data, err := os.ReadFile(fp)
	if err != nil {
		return nil, errors.Wrap(err, "reading strategies")
	}
	return Load(data, os.DirFS(filepath.Dir(fp)), ".")
}

// NewCatalog loads the catalog configured by conf.StrategiesPath, or the embedded one.
func NewCatalog(conf *core.Config) (*Catalog, error) {
	if conf.StrategiesPath != "" {
		return LoadFile(conf.StrategiesPath)
	}
	return LoadDefault()
}

// All returns the strategies in catalog order.
func (c *Catalog) All() []Strategy {
	return append([]Strategy(nil), c.strategies...)
}

func (c *Catalog) Get(id string) (Strategy, error) {
	i, ok := c.index[id]
	if !ok {
		return Strategy{}, ErrNotFound
	}
	return c.strategies[i], nil
}

// Render executes the template of strategy `id` with `data`.
func (c *Catalog) Render(id string, data interface{}) (string, error) {
	tmpl, ok := c.tmpls[id]
	if !ok {
		return "", ErrNotFound
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "rendering strategy %q", id)
	}
	return buf.String(), nil
}

package data

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/summoner"
	"gopkg.in/yaml.v3"
)

//go:embed portfolios/*.yaml
var bundled embed.FS

// PortfolioTypes lists every portfolio the loader resolves.
var PortfolioTypes = []summoner.PortfolioType{
	summoner.PortfolioDemon,
	summoner.PortfolioElemental,
	summoner.PortfolioFey,
	summoner.PortfolioUndead,
}

// Loader handles reading portfolio records from the data directories, falling back to the bundled set.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a new Data Loader with the given data directory fallback hierarchy
func NewLoader(dataDirs []string) *Loader {
	return &Loader{
		dataDirs: dataDirs,
	}
}

// LoadPortfolio reads and validates one portfolio.
func (l *Loader) LoadPortfolio(t summoner.PortfolioType) (*summoner.Portfolio, error) {
	var f PortfolioFile
	ref := path.Join("portfolios", fmt.Sprintf("%s.yaml", t))
	if err := l.load(ref, &f); err != nil {
		return nil, err
	}
	if f.Type == "" {
		f.Type = string(t)
	}
	if f.Type != string(t) {
		return nil, fmt.Errorf("%s declares portfolio type %q", ref, f.Type)
	}
	return f.Portfolio()
}

// LoadCatalog loads every portfolio. When reg is set, unlock expressions are compiled up front.
func (l *Loader) LoadCatalog(reg *rules.Registry) (*Catalog, error) {
	cat := &Catalog{portfolios: make(map[summoner.PortfolioType]*summoner.Portfolio)}
	for _, t := range PortfolioTypes {
		p, err := l.LoadPortfolio(t)
		if err != nil {
			return nil, err
		}
		if reg != nil {
			for _, tmpl := range p.Templates() {
				if tmpl.Unlock == "" {
					continue
				}
				if err := reg.Compile(tmpl.Unlock); err != nil {
					return nil, fmt.Errorf("%s: invalid unlock expression: %w", tmpl.ID, err)
				}
			}
		}
		cat.portfolios[t] = p
	}
	return cat, nil
}

func (l *Loader) load(ref string, target interface{}) error {
	for _, dir := range l.dataDirs {
		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(ref)))
		if err != nil {
			continue
		}
		defer f.Close()
		return decode(ref, f, target)
	}

	f, err := bundled.Open(ref)
	if err != nil {
		return fmt.Errorf("could not find or open reference %s in any available data directory", ref)
	}
	defer f.Close()
	return decode(ref, f, target)
}

func decode(ref string, r io.Reader, target interface{}) error {
	if err := yaml.NewDecoder(r).Decode(target); err != nil {
		return fmt.Errorf("failed to decode yaml reference %s: %w", ref, err)
	}
	return nil
}

// Bundled returns the embedded portfolio files keyed by their relative path.
func Bundled() (map[string][]byte, []string, error) {
	files := make(map[string][]byte)
	var names []string
	err := fs.WalkDir(bundled, "portfolios", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := bundled.ReadFile(p)
		if err != nil {
			return err
		}
		files[p] = b
		names = append(names, p)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read bundled data: %w", err)
	}
	sort.Strings(names)
	return files, names, nil
}

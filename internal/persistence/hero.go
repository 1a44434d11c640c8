package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const logFile = "log.jsonl"

// HeroManager maps hero ids onto directories under HeroesDir.
type HeroManager struct {
	HeroesDir string
}

// NewHeroManager returns a manager rooted at heroesDir.
func NewHeroManager(heroesDir string) *HeroManager {
	return &HeroManager{HeroesDir: heroesDir}
}

// HeroPath produces the directory holding a hero's log.
func (h *HeroManager) HeroPath(id string) string {
	return filepath.Join(h.HeroesDir, id)
}

// Exists reports whether a hero directory with a log is present.
func (h *HeroManager) Exists(id string) bool {
	_, err := os.Stat(filepath.Join(h.HeroPath(id), logFile))
	return err == nil
}

// Create makes the hero directory and opens an empty log.
func (h *HeroManager) Create(id string) (*Store, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	if h.Exists(id) {
		return nil, fmt.Errorf("hero %s already exists", id)
	}
	path := h.HeroPath(id)
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return NewStore(filepath.Join(path, logFile))
}

// Load opens an existing hero log.
func (h *HeroManager) Load(id string) (*Store, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	path := h.HeroPath(id)
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("hero folder not found: %s", path)
	}
	return NewStore(filepath.Join(path, logFile))
}

// List returns the ids of every hero with a log, sorted.
func (h *HeroManager) List() ([]string, error) {
	entries, err := os.ReadDir(h.HeroesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read heroes dir: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() && h.Exists(e.Name()) {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func validID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("hero id is required")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid hero id %q", id)
	}
	return nil
}

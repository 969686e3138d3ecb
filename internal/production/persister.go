// Package production provides production integrations: file persistence and
// the text projection of an automaton.
package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/comalice/dfax"
)

// JSONPersister stores each automaton as <dir>/<name>.json.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

// Path returns the file that holds the named automaton.
func (p *JSONPersister) Path(name string) string {
	return filepath.Join(p.dir, name+".json")
}

func (p *JSONPersister) Save(ctx context.Context, snapshot dfax.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeFile(p.Path(snapshot.Name), data)
}

func (p *JSONPersister) Load(ctx context.Context, name string) (dfax.Snapshot, error) {
	data, err := readFile(p.Path(name), name)
	if err != nil {
		return dfax.Snapshot{}, err
	}

	var snapshot dfax.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return dfax.Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.Name = name // Ensure name

	return snapshot, nil
}

// YAMLPersister stores each automaton as <dir>/<name>.yaml.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

// Path returns the file that holds the named automaton.
func (p *YAMLPersister) Path(name string) string {
	return filepath.Join(p.dir, name+".yaml")
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot dfax.Snapshot) error {
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return writeFile(p.Path(snapshot.Name), data)
}

func (p *YAMLPersister) Load(ctx context.Context, name string) (dfax.Snapshot, error) {
	data, err := readFile(p.Path(name), name)
	if err != nil {
		return dfax.Snapshot{}, err
	}

	var snapshot dfax.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return dfax.Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.Name = name // Ensure name

	return snapshot, nil
}

// writeFile replaces fn through a temp file so a failed write never leaves a
// truncated save behind.
func writeFile(fn string, data []byte) error {
	tmp := fn + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, fn); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func readFile(fn, name string) ([]byte, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("automaton %q: %w", name, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}

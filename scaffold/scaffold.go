// Package scaffold writes a starter contract workspace: a shared
// vocabulary document, an example contract, and a project config.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// File name constants for a scaffolded workspace.
const (
	PrimitivesFile = "primitives.md"
	ContractsDir   = "contracts"
	ExampleFile    = "orders.md"
	ConfigFile     = "contractspec.yaml"
)

// Manager writes scaffold files under a workspace root.
type Manager struct {
	root string
}

// NewManager creates a scaffold manager for the given workspace root.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Init writes the starter workspace. Existing files are never
// overwritten; each is skipped with no error so init is safe to re-run.
// Returns the list of files actually created.
func (m *Manager) Init(project string) ([]string, error) {
	if err := os.MkdirAll(filepath.Join(m.root, ContractsDir), 0755); err != nil {
		return nil, fmt.Errorf("create contracts directory: %w", err)
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(m.root, PrimitivesFile), PrimitivesTemplate(project)},
		{filepath.Join(m.root, ContractsDir, ExampleFile), ContractTemplate("Orders")},
		{filepath.Join(m.root, ConfigFile), ConfigTemplate()},
	}

	var created []string
	for _, f := range files {
		if fileExists(f.path) {
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return created, fmt.Errorf("write %s: %w", f.path, err)
		}
		created = append(created, f.path)
	}
	return created, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

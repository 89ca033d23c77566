package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glidepath/glidepath/internal/domain"
	"gopkg.in/yaml.v3"
)

// ScenarioStore saves and loads named scenarios as YAML files in a
// directory. It is an external collaborator to the engine: a store failure
// never corrupts a calculation that already succeeded.
type ScenarioStore struct {
	dir string
}

// NewScenarioStore opens a store rooted at dir, creating it if needed.
func NewScenarioStore(dir string) (*ScenarioStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scenario directory %s: %w", dir, err)
	}
	return &ScenarioStore{dir: dir}, nil
}

// Save writes the scenario under the given name, overwriting any previous
// version.
func (s *ScenarioStore) Save(name string, scenario *domain.ScenarioInput) error {
	if err := validateName(name); err != nil {
		return err
	}
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario %s: %w", name, err)
	}
	return nil
}

// Load reads the scenario saved under the given name.
func (s *ScenarioStore) Load(name string) (*domain.ScenarioInput, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", name, err)
	}
	var scenario domain.ScenarioInput
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", name, err)
	}
	return &scenario, nil
}

// Delete removes a saved scenario.
func (s *ScenarioStore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", name, err)
	}
	return nil
}

// List returns the names of all saved scenarios, sorted.
func (s *ScenarioStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

func (s *ScenarioStore) path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("scenario name %q contains invalid characters", name)
	}
	return nil
}

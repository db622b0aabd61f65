package model

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// json is the codec used for model files. Sorted map keys keep written
// output stable across runs.
var json = sonic.Config{SortMapKeys: true}.Froze()

// FromJSON reads and decodes a JSON model file, applying defaults.
func FromJSON(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model file %s: %w", path, err)
	}

	m.applyDefaults()
	return &m, nil
}

// ToJSON writes the model back out as indented JSON, so a definition loaded
// from either format can be round-tripped through the interchange format.
func (m *Model) ToJSON(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write model file %s: %w", path, err)
	}
	return nil
}

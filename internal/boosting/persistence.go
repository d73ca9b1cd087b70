package boosting

import (
	"encoding/json"
	"os"

	bcerrors "bikecast/pkg/errors"
)

// ToJSON serializes the model.
func (m *Model) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, bcerrors.Wrap(err, "failed to serialize model")
	}
	return data, nil
}

// SaveToFile writes the model as JSON.
func (m *Model) SaveToFile(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return bcerrors.Wrapf(err, "failed to write model to %s", path)
	}
	return nil
}

// LoadFromJSON deserializes a model.
func LoadFromJSON(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, bcerrors.Wrap(err, "failed to parse model JSON")
	}
	if m.NumFeatures <= 0 {
		return nil, bcerrors.NewValueError("LoadFromJSON", "model has no features")
	}
	return &m, nil
}

// LoadFromFile reads a JSON model written by SaveToFile.
func LoadFromFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, bcerrors.Wrapf(err, "failed to read model from %s", path)
	}
	return LoadFromJSON(data)
}

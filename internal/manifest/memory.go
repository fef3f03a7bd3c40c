package manifest

import "fmt"

// Memory is an in-memory Store. A nil Data means the manifest is absent.
type Memory struct {
	Data *Data
	// Create allows Write on an absent manifest.
	Create bool
	// Writes counts successful writes.
	Writes int
}

// Read implements Store.
func (m *Memory) Read() (Data, error) {
	if m.Data == nil {
		return Data{}, fmt.Errorf("%w: in-memory manifest", ErrNotFound)
	}
	return *m.Data, nil
}

// Write implements Store.
func (m *Memory) Write(d Data) error {
	if m.Data == nil {
		if !m.Create {
			return &WriteError{Path: "<memory>", Err: ErrNotFound}
		}
		m.Data = &Data{}
	}
	m.Data.Version = d.Version
	if d.Build != "" {
		m.Data.Build = d.Build
	}
	m.Writes++
	return nil
}

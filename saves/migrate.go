package saves

import "encoding/json"

// Migration rewrites a decoded save document from one version to the next.
// Migrations run as a chain: a version-1 file needs steps registered for 1,
// then 2, and so on up to Version-1.
type Migration func(doc map[string]any) (map[string]any, error)

// RegisterMigration installs the step that lifts version `from` to `from+1`.
func (m *Manager) RegisterMigration(from int, fn Migration) {
	if m == nil || fn == nil || from <= 0 || from >= Version {
		return
	}
	m.migrations[from] = fn
}

func (m *Manager) migrate(data []byte, from int) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	for v := from; v < Version; v++ {
		fn, ok := m.migrations[v]
		if !ok {
			return nil, &VersionError{Version: from}
		}
		next, err := fn(doc)
		if err != nil {
			return nil, &VersionError{Version: from, Err: err}
		}
		next["version"] = v + 1
		doc = next
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, &SerializeError{Err: err}
	}
	return out, nil
}

// Package registry maps template identifiers to project files and the
// per-record values injected into their layouts. It stands in for a real
// land-records database: built once at startup, read-only afterwards.
package registry

import (
	"fmt"
	"strings"
)

// Record is one set of item-id -> value pairs injected into a layout
// before export. The Key identifies the record and names its document.
type Record struct {
	Key    string            `yaml:"key"`
	Values map[string]string `yaml:"values"`
}

// ProjectInfo binds a template identifier to a project file and its records.
// Records keep their declaration order.
type ProjectInfo struct {
	ID      string   `yaml:"id"`
	Path    string   `yaml:"path"`
	Layout  string   `yaml:"layout"`
	Records []Record `yaml:"records"`
}

// Registry is a read-only lookup of ProjectInfo entries by template id.
// Template ids are case-sensitive.
type Registry struct {
	entries map[string]*ProjectInfo
	order   []string
}

// New builds a Registry from the given entries. Empty or duplicate ids and
// empty paths are rejected.
func New(infos ...ProjectInfo) (*Registry, error) {
	r := &Registry{entries: make(map[string]*ProjectInfo, len(infos))}
	for i := range infos {
		info := infos[i]
		if info.ID == "" {
			return nil, fmt.Errorf("template entry %d has an empty id", i)
		}
		if info.Path == "" {
			return nil, fmt.Errorf("template %q has an empty project path", info.ID)
		}
		if _, exists := r.entries[info.ID]; exists {
			return nil, fmt.Errorf("duplicate template id %q", info.ID)
		}
		keys := make(map[string]struct{}, len(info.Records))
		for j, rec := range info.Records {
			if rec.Key == "" {
				return nil, fmt.Errorf("template %q record %d has an empty key", info.ID, j)
			}
			if _, dup := keys[rec.Key]; dup {
				return nil, fmt.Errorf("template %q has duplicate record key %q", info.ID, rec.Key)
			}
			keys[rec.Key] = struct{}{}
		}
		r.entries[info.ID] = &info
		r.order = append(r.order, info.ID)
	}
	return r, nil
}

// Lookup returns the entry for the given template id. The second return
// value reports whether the id is registered; callers decide how to handle
// a miss.
func (r *Registry) Lookup(id string) (*ProjectInfo, bool) {
	info, ok := r.entries[id]
	return info, ok
}

// IDs returns the registered template ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.order)
}

// String lists the registered ids, for log messages.
func (r *Registry) String() string {
	return strings.Join(r.order, ", ")
}

// Package renderer populates a project layout with per-record values and
// exports it to a PDF document.
package renderer

import (
	"github.com/gkahiu/fltsd/pkg/project"
)

// Naming selects the document file naming convention.
type Naming int

// Naming conventions: the record key, or an auto-generated UUID.
const (
	NamingRecordKey Naming = iota
	NamingAuto
)

// DefaultLayoutName is used when a context does not name a layout.
const DefaultLayoutName = "Main"

// DefaultAuthor is stamped into documents when the project metadata has none.
const DefaultAuthor = "FLTS Main Author"

// Context carries everything one render needs: the loaded project, the
// target layout, the values injected into named items and the document
// metadata. A Context is built per request and discarded after export.
type Context struct {
	Project    *project.Project
	LayoutName string

	// RecordKey identifies the record being rendered and names the
	// document under NamingRecordKey.
	RecordKey string

	// ItemValues maps layout item ids to the values set on them before
	// export. Non-string values are coerced to text.
	ItemValues map[string]any

	// DocumentDir is where the exported file is written. Empty means the
	// OS temp directory.
	DocumentDir string

	Naming Naming

	// Document metadata. Empty fields fall back to the project metadata.
	Title    string
	Author   string
	Abstract string
}

// NewContext returns a Context for the given project with the default
// layout name and metadata taken from the project file.
func NewContext(p *project.Project) *Context {
	author := p.Metadata.Author
	if author == "" {
		author = DefaultAuthor
	}
	return &Context{
		Project:    p,
		LayoutName: DefaultLayoutName,
		ItemValues: make(map[string]any),
		Title:      p.Metadata.Title,
		Author:     author,
		Abstract:   p.Metadata.Abstract,
	}
}

// SetItemValue sets the value for a layout item, overriding any previous
// value for the same id.
func (c *Context) SetItemValue(itemID string, value any) {
	if c.ItemValues == nil {
		c.ItemValues = make(map[string]any)
	}
	c.ItemValues[itemID] = value
}

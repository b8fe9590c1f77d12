// Package project models FLTS project files: named print layouts with
// positioned items, plus document metadata carried into exported files.
package project

import (
	"strings"
	"time"
)

// Item kinds understood by the renderer. Other kinds are preserved on load
// but skipped during export.
const (
	KindLabel   = "label"
	KindPicture = "picture"
	KindMap     = "map"
)

// Metadata holds project-level properties cascaded into exported documents.
type Metadata struct {
	Title    string
	Author   string
	Abstract string
	Created  time.Time
}

// Item is a positioned element inside a layout. Coordinates and sizes are
// in millimetres relative to the page origin.
type Item struct {
	Kind     string
	ID       string
	Text     string
	Page     int
	X        float64
	Y        float64
	Width    float64
	Height   float64
	FontSize float64
	Align    string // left, center or right
}

// SetText replaces the item text. Only meaningful for label items.
func (it *Item) SetText(text string) {
	it.Text = text
}

// Page is a single layout page with its size in millimetres.
type Page struct {
	WidthMM  float64
	HeightMM float64
}

// Layout is a named template of positioned items.
type Layout struct {
	Name  string
	Pages []Page
	Items []*Item
}

// PageCount returns the number of pages in the layout.
func (l *Layout) PageCount() int {
	return len(l.Pages)
}

// ItemByID returns the item with the given id, or nil when absent.
func (l *Layout) ItemByID(id string) *Item {
	for _, it := range l.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Project is a loaded project file.
type Project struct {
	Path     string
	Metadata Metadata
	Layouts  []*Layout
}

// LayoutByName returns the layout with the given name, or nil when absent.
// Names are matched case-insensitively, following the host-server convention
// for layout lookups.
func (p *Project) LayoutByName(name string) *Layout {
	for _, l := range p.Layouts {
		if strings.EqualFold(l.Name, name) {
			return l
		}
	}
	return nil
}

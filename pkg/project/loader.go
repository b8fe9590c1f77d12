package project

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/beevik/etree"
)

// Common errors for project loading.
var (
	ErrProjectNotFound = errors.New("project file not found")
	ErrInvalidProject  = errors.New("invalid project file")
)

// Load reads and parses a project file from disk.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, path)
		}
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	p.Path = path
	return p, nil
}

// Parse parses project XML.
//
// The document root is <project> with optional title, author and abstract
// attributes, containing one or more <layout name="..."> elements. A layout
// holds <page width="..." height="..."/> elements and <item kind="..."
// id="..."> elements positioned with x/y/width/height attributes in
// millimetres.
func Parse(data []byte) (*Project, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProject, err)
	}

	root := doc.SelectElement("project")
	if root == nil {
		return nil, fmt.Errorf("%w: missing <project> root element", ErrInvalidProject)
	}

	p := &Project{
		Metadata: Metadata{
			Title:    root.SelectAttrValue("title", ""),
			Author:   root.SelectAttrValue("author", ""),
			Abstract: root.SelectAttrValue("abstract", ""),
		},
	}

	for _, le := range root.SelectElements("layout") {
		layout, err := parseLayout(le)
		if err != nil {
			return nil, err
		}
		if existing := p.LayoutByName(layout.Name); existing != nil {
			return nil, fmt.Errorf("%w: duplicate layout %q", ErrInvalidProject, layout.Name)
		}
		p.Layouts = append(p.Layouts, layout)
	}

	if len(p.Layouts) == 0 {
		return nil, fmt.Errorf("%w: no layouts defined", ErrInvalidProject)
	}
	return p, nil
}

func parseLayout(le *etree.Element) (*Layout, error) {
	name := le.SelectAttrValue("name", "")
	if name == "" {
		return nil, fmt.Errorf("%w: layout without a name", ErrInvalidProject)
	}
	layout := &Layout{Name: name}

	for _, pe := range le.SelectElements("page") {
		w := floatAttr(pe, "width", 210)
		h := floatAttr(pe, "height", 297)
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("%w: layout %q has a page with non-positive size", ErrInvalidProject, name)
		}
		layout.Pages = append(layout.Pages, Page{WidthMM: w, HeightMM: h})
	}

	for _, ie := range le.SelectElements("item") {
		item, err := parseItem(ie, layout)
		if err != nil {
			return nil, err
		}
		layout.Items = append(layout.Items, item)
	}
	return layout, nil
}

func parseItem(ie *etree.Element, layout *Layout) (*Item, error) {
	id := ie.SelectAttrValue("id", "")
	if id == "" {
		return nil, fmt.Errorf("%w: layout %q has an item without an id", ErrInvalidProject, layout.Name)
	}
	if layout.ItemByID(id) != nil {
		return nil, fmt.Errorf("%w: layout %q has duplicate item id %q", ErrInvalidProject, layout.Name, id)
	}

	page, err := strconv.Atoi(ie.SelectAttrValue("page", "0"))
	if err != nil || page < 0 {
		return nil, fmt.Errorf("%w: item %q has an invalid page index", ErrInvalidProject, id)
	}

	return &Item{
		Kind:     ie.SelectAttrValue("kind", KindLabel),
		ID:       id,
		Text:     ie.Text(),
		Page:     page,
		X:        floatAttr(ie, "x", 0),
		Y:        floatAttr(ie, "y", 0),
		Width:    floatAttr(ie, "width", 0),
		Height:   floatAttr(ie, "height", 0),
		FontSize: floatAttr(ie, "fontSize", 10),
		Align:    ie.SelectAttrValue("align", "left"),
	}, nil
}

func floatAttr(e *etree.Element, name string, def float64) float64 {
	v := e.SelectAttrValue(name, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

package font

import (
	"errors"
	"fmt"
)

// ErrUnknownFamily is returned when no face is registered for a
// requested family and style.
var ErrUnknownFamily = errors.New("unknown font family")

// Collection is the font registry a document resolves faces from. A
// new collection starts with the Standard 14 faces registered under
// their usual family names, so "Helvetica" with the bold style
// resolves out of the box.
type Collection struct {
	faces    map[string]Face
	families map[string]map[Style]string
}

// NewCollection creates a collection preloaded with the Standard 14
// faces.
func NewCollection() *Collection {
	c := &Collection{
		faces:    make(map[string]Face),
		families: make(map[string]map[Style]string),
	}

	for name, widths := range standardWidths {
		winANSI := name != "Symbol" && name != "ZapfDingbats"
		c.faces[name] = newBuiltinFace(name, metricsFamilyOf(name), widths, winANSI)
	}

	c.registerFamily("Helvetica", map[Style]string{
		Regular:       "Helvetica",
		Bold:          "Helvetica-Bold",
		Italic:        "Helvetica-Oblique",
		Bold | Italic: "Helvetica-BoldOblique",
	})
	c.registerFamily("Courier", map[Style]string{
		Regular:       "Courier",
		Bold:          "Courier-Bold",
		Italic:        "Courier-Oblique",
		Bold | Italic: "Courier-BoldOblique",
	})
	times := map[Style]string{
		Regular:       "Times-Roman",
		Bold:          "Times-Bold",
		Italic:        "Times-Italic",
		Bold | Italic: "Times-BoldItalic",
	}
	c.registerFamily("Times-Roman", times)
	c.registerFamily("Times", times)
	c.registerFamily("Symbol", map[Style]string{Regular: "Symbol"})
	c.registerFamily("ZapfDingbats", map[Style]string{Regular: "ZapfDingbats"})

	return c
}

func (c *Collection) registerFamily(family string, variants map[Style]string) {
	c.families[family] = variants
}

// Register adds a face under a family name and style. Registering the
// first face of a family creates the family.
func (c *Collection) Register(family string, style Style, face Face) {
	c.faces[face.Name()] = face
	if _, ok := c.families[family]; !ok {
		c.families[family] = make(map[Style]string)
	}
	c.families[family][style] = face.Name()
}

// RegisterTrueType parses font program data and registers it under a
// family name and style. The face name is the family name for the
// regular style, or family-style otherwise.
func (c *Collection) RegisterTrueType(family string, style Style, data []byte) error {
	name := family
	if style != Regular {
		name = fmt.Sprintf("%s-%s", family, style)
	}

	face, err := ParseTrueType(name, data)
	if err != nil {
		return err
	}

	c.Register(family, style, face)
	return nil
}

// Face looks up a face by its exact name.
func (c *Collection) Face(name string) (Face, error) {
	if f, ok := c.faces[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// Resolve returns the face for a family and style. A concrete face
// name (such as "Helvetica-Bold") also resolves directly when asked
// for with the regular style.
func (c *Collection) Resolve(family string, style Style) (Face, error) {
	if variants, ok := c.families[family]; ok {
		if name, ok := variants[style]; ok {
			return c.faces[name], nil
		}
		return nil, fmt.Errorf("%w: %q has no %s variant", ErrUnknownFamily, family, style)
	}

	if style == Regular {
		if f, ok := c.faces[family]; ok {
			return f, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
}

// Known reports whether a family or exact face name is registered.
func (c *Collection) Known(family string) bool {
	if _, ok := c.families[family]; ok {
		return true
	}
	_, ok := c.faces[family]
	return ok
}

// Package docx reads and writes Office Open XML word processing
// documents. The reader extracts body text and embedded review comments
// together with the passages they anchor to; the writer produces the
// analysis and verification reports as .docx packages built from
// scratch.
package docx

import "github.com/beevik/etree"

// WordprocessingML namespace URIs.
const (
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNS        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	packageRelNS = "http://schemas.openxmlformats.org/package/2006/relationships"
	typesNS      = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Paragraph style IDs defined in the generated styles part.
const (
	styleTitle      = "Title"
	styleHeading1   = "Heading1"
	styleHeading2   = "Heading2"
	styleHeading3   = "Heading3"
	styleListBullet = "ListBullet"
	styleListNumber = "ListNumber"
)

// Tag helpers match on local element names so documents parse the same
// whatever namespace prefix the producing application chose.

func firstByTag(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

func childrenByTag(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}

func descendantsByTag(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if child.Tag == tag {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(el)
	return out
}

func attrByKey(el *etree.Element, key string) string {
	for _, a := range el.Attr {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

package textutil

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is a generic XML element.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []Node     `xml:",any"`
}

// ParseXML parses text into a document node whose only child is the root
// element. The text must already be UTF-8; any declared encoding is ignored.
func ParseXML(text string) (*Node, error) {
	d := xml.NewDecoder(strings.NewReader(text))
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var root Node
	if err := d.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parsing xml: %w", io.ErrUnexpectedEOF)
		}
		return nil, fmt.Errorf("parsing xml: %w", err)
	}

	// Only whitespace, comments and processing instructions may follow the root.
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}
		switch tok := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) != 0 {
				return nil, errors.New("parsing xml: text after root element")
			}
		default:
			return nil, errors.New("parsing xml: content after root element")
		}
	}

	return &Node{Nodes: []Node{root}}, nil
}

// FindAll returns the descendants of n named tag, in document order.
func (n *Node) FindAll(tag string) []*Node {
	var found []*Node
	n.walk(func(c *Node) bool {
		if c.XMLName.Local == tag {
			found = append(found, c)
		}
		return true
	})
	return found
}

// FirstText returns the text of the first descendant named tag, trimmed of the
// characters in cutset, or of surrounding whitespace when cutset is empty. It
// reports false when no such descendant exists.
func (n *Node) FirstText(tag, cutset string) (string, bool) {
	var (
		text  string
		found bool
	)

	n.walk(func(c *Node) bool {
		if c.XMLName.Local != tag {
			return true
		}
		text, found = c.Text, true
		return false
	})

	if cutset == "" {
		return strings.TrimSpace(text), found
	}
	return strings.Trim(text, cutset), found
}

// Attr returns the value of the attribute named name, or "".
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// walk visits the descendants of n depth-first until visit returns false.
func (n *Node) walk(visit func(*Node) bool) bool {
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if !visit(c) || !c.walk(visit) {
			return false
		}
	}
	return true
}

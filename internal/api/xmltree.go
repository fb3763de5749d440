package api

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// element is a minimal in-memory XML node. Lookups match the local name
// within the Trading API namespace only.
type element struct {
	name     xml.Name
	text     string
	children []*element
}

const xmlPrefixNamespace = "http://www.w3.org/XML/1998/namespace"

// openElement is an element still waiting for its end tag, with the
// prefix bindings visible inside it.
type openElement struct {
	el    *element
	raw   xml.Name
	scope map[string]string
}

// parseTree builds the element tree. Prefixes are resolved here rather than
// by the decoder so that an undeclared prefix is an error instead of
// silently becoming the namespace.
func parseTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		root  *element
		stack []openElement
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parentScope := map[string]string{}
			if len(stack) > 0 {
				parentScope = stack[len(stack)-1].scope
			}
			scope := bindPrefixes(parentScope, t.Attr)

			name, err := resolve(scope, t.Name)
			if err != nil {
				return nil, err
			}
			for _, a := range t.Attr {
				if a.Name.Space == "" || a.Name.Space == "xmlns" {
					continue
				}
				if _, err := resolve(scope, a.Name); err != nil {
					return nil, err
				}
			}

			el := &element{name: name}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1].el
				parent.children = append(parent.children, el)
			}
			stack = append(stack, openElement{el: el, raw: t.Name, scope: scope})
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parse xml: unexpected end element </%s>", qualified(t.Name))
			}
			top := stack[len(stack)-1]
			if top.raw != t.Name {
				return nil, fmt.Errorf("parse xml: element <%s> closed by </%s>", qualified(top.raw), qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("parse xml: text outside root element")
				}
				continue
			}
			// text before the first child, as the upstream only puts values in leaves
			cur := stack[len(stack)-1].el
			if len(cur.children) == 0 {
				cur.text += string(t)
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("parse xml: unexpected EOF inside <%s>", qualified(stack[len(stack)-1].raw))
	}
	if root == nil {
		return nil, fmt.Errorf("parse xml: empty document")
	}
	return root, nil
}

// bindPrefixes returns the scope for an element, copying the parent's only
// when the element declares namespaces of its own.
func bindPrefixes(parent map[string]string, attrs []xml.Attr) map[string]string {
	scope := parent
	copied := false
	for _, a := range attrs {
		var prefix string
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = ""
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		default:
			continue
		}
		if !copied {
			scope = make(map[string]string, len(parent)+1)
			for k, v := range parent {
				scope[k] = v
			}
			copied = true
		}
		scope[prefix] = a.Value
	}
	return scope
}

func resolve(scope map[string]string, raw xml.Name) (xml.Name, error) {
	switch raw.Space {
	case "":
		return xml.Name{Space: scope[""], Local: raw.Local}, nil
	case "xml":
		return xml.Name{Space: xmlPrefixNamespace, Local: raw.Local}, nil
	}
	uri, ok := scope[raw.Space]
	if !ok {
		return xml.Name{}, fmt.Errorf("parse xml: unbound prefix %q in <%s>", raw.Space, qualified(raw))
	}
	return xml.Name{Space: uri, Local: raw.Local}, nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func (e *element) is(local string) bool {
	return e.name.Space == tradingNamespace && e.name.Local == local
}

// child returns the first direct child named local.
func (e *element) child(local string) *element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.is(local) {
			return c
		}
	}
	return nil
}

// childrenNamed returns every direct child named local.
func (e *element) childrenNamed(local string) []*element {
	if e == nil {
		return nil
	}
	var out []*element
	for _, c := range e.children {
		if c.is(local) {
			out = append(out, c)
		}
	}
	return out
}

// descendant returns the first element below e named local, in document order.
func (e *element) descendant(local string) *element {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.is(local) {
			return c
		}
		if d := c.descendant(local); d != nil {
			return d
		}
	}
	return nil
}

// descendants returns every element below e named local, in document order.
func (e *element) descendants(local string) []*element {
	var out []*element
	e.walk(func(el *element) {
		if el.is(local) {
			out = append(out, el)
		}
	})
	return out
}

func (e *element) walk(fn func(*element)) {
	if e == nil {
		return
	}
	for _, c := range e.children {
		fn(c)
		c.walk(fn)
	}
}

// textOrNA returns the element text, or NotAvailable when the element is absent or empty.
func textOrNA(e *element) string {
	if e == nil || e.text == "" {
		return NotAvailable
	}
	return e.text
}

package txml

import (
	"github.com/ZocoLini/mk-template/pkg/errors"
	"github.com/beevik/etree"
)

// allowedChildren lists the element children each element may hold
var allowedChildren = map[string]map[string]bool{
	"Root":      {"Metadata": true, "Variable": true, "Directory": true, "File": true},
	"Directory": {"Directory": true, "File": true},
	"File":      {},
	"Metadata":  {},
	"Variable":  {},
}

// allowedAttrs lists the attributes each element may carry
var allowedAttrs = map[string]map[string]bool{
	"Root":      {"renamable": true},
	"Metadata":  {"author": true, "date": true, "version": true, "description": true},
	"Variable":  {"name": true, "value": true},
	"Directory": {"name": true, "in_command": true, "out_command": true},
	"File":      {"name": true, "extension": true, "command": true},
}

// ValidateStrict checks a document against the TXML grammar: the document
// element is Root, elements only hold the children and attributes their kind
// allows, and Directory and File are named. Namespaced attributes are
// accepted on Root only.
func ValidateStrict(text string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return errors.Wrap(err, errors.ErrUnknownParse, "failed to load markup")
	}

	root := doc.Root()
	if root == nil {
		return errors.New(errors.ErrInvalidTag, "document has no root element")
	}
	if root.FullTag() != "Root" {
		return invalidTag(root, "document element must be <Root>")
	}
	return checkElement(root)
}

func checkElement(el *etree.Element) error {
	tag := el.FullTag()

	for _, attr := range el.Attr {
		if attr.Space != "" {
			if tag == "Root" {
				continue
			}
			return invalidTag(el, "namespaced attribute "+attr.FullKey()+" is not allowed")
		}
		if !allowedAttrs[tag][attr.Key] {
			return invalidTag(el, "unknown attribute "+attr.Key)
		}
	}

	if tag == "Directory" || tag == "File" {
		if el.SelectAttrValue("name", "") == "" {
			return invalidTag(el, "missing name attribute")
		}
	}

	for _, child := range el.ChildElements() {
		if !allowedChildren[tag][child.FullTag()] {
			return invalidTag(child, "<"+child.FullTag()+"> is not allowed inside <"+tag+">")
		}
		if err := checkElement(child); err != nil {
			return err
		}
	}
	return nil
}

func invalidTag(el *etree.Element, msg string) error {
	return errors.Newf(errors.ErrInvalidTag, "%s: %s", el.GetPath(), msg).
		WithDetail("tag", el.FullTag()).
		WithDetail("path", el.GetPath())
}

package entity

import "fmt"

type SelectorKind string

const (
	// SelectorCSS is a plain CSS selector.
	SelectorCSS SelectorKind = "css"
	// SelectorText matches the first element of Scope whose text contains Value.
	SelectorText SelectorKind = "text"
	// SelectorAttr matches an element whose attribute Scope equals Value.
	SelectorAttr SelectorKind = "attr"
)

// Selector is one locator candidate. Candidate lists are tried in order and
// the first that resolves wins.
type Selector struct {
	Kind  SelectorKind
	Value string
	Scope string
}

func CSS(selector string) Selector {
	return Selector{Kind: SelectorCSS, Value: selector}
}

// Text builds a text-contains locator, e.g. Text("button", "Sign Up").
func Text(scope, substring string) Selector {
	if scope == "" {
		scope = "*"
	}
	return Selector{Kind: SelectorText, Value: substring, Scope: scope}
}

// Attr builds an attribute locator, e.g. Attr("name", "first_name").
func Attr(name, value string) Selector {
	return Selector{Kind: SelectorAttr, Value: value, Scope: name}
}

// CSSQuery renders the selector as CSS. Text selectors return their scope,
// which the session narrows by text.
func (s Selector) CSSQuery() string {
	switch s.Kind {
	case SelectorAttr:
		return fmt.Sprintf("[%s=%q]", s.Scope, s.Value)
	case SelectorText:
		return s.Scope
	default:
		return s.Value
	}
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectorText:
		return fmt.Sprintf("%s:contains(%q)", s.Scope, s.Value)
	case SelectorAttr:
		return fmt.Sprintf("@%s=%s", s.Scope, s.Value)
	default:
		return s.Value
	}
}

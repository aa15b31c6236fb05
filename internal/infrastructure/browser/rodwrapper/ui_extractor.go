package rodwrapper

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod"
)

type ExtractConfig struct {
	MaxElements int
}

var DefaultExtractConfig = ExtractConfig{
	MaxElements: 200,
}

// FormControl is one interactive element of a page, described well enough
// to write a selector candidate for it.
type FormControl struct {
	Kind        string `json:"kind"`
	Tag         string `json:"tag"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	ID          string `json:"id,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Text        string `json:"text,omitempty"`
	Selector    string `json:"selector"`
}

// ExtractControls lists the visible inputs, checkboxes and buttons of page in
// document order.
func ExtractControls(page *rod.Page, cfg *ExtractConfig) ([]FormControl, error) {
	if cfg == nil {
		cfg = &DefaultExtractConfig
	}

	var result []FormControl
	seen := make(map[string]bool)

	add := func(el *rod.Element, kind string) {
		if el == nil || len(result) >= cfg.MaxElements {
			return
		}
		visible, err := el.Visible()
		if err != nil || !visible {
			return
		}

		c := FormControl{
			Kind:        kind,
			Type:        attr(el, "type"),
			Name:        attr(el, "name"),
			ID:          attr(el, "id"),
			Placeholder: attr(el, "placeholder"),
		}
		if tag, err := el.Eval(`() => this.tagName.toLowerCase()`); err == nil {
			c.Tag = tag.Value.Str()
		}
		if kind == "button" {
			text, _ := el.Text()
			c.Text = strings.TrimSpace(text)
		}
		c.Selector = suggestSelector(c)

		if seen[c.Selector] {
			return
		}
		seen[c.Selector] = true
		result = append(result, c)
	}

	groups := []struct {
		css  string
		kind string
	}{
		{"input:not([type='checkbox']):not([type='hidden']):not([type='submit']), textarea", "input"},
		{"input[type='checkbox'], [role='checkbox']", "checkbox"},
		{"button, input[type='submit'], [role='button']", "button"},
	}
	for _, g := range groups {
		elements, err := page.Elements(g.css)
		if err != nil {
			return result, fmt.Errorf("query %s: %w", g.kind, err)
		}
		for _, el := range elements {
			add(el, g.kind)
		}
	}

	return result, nil
}

// suggestSelector prefers id, then name, then visible text.
func suggestSelector(c FormControl) string {
	tag := c.Tag
	if tag == "" {
		tag = "*"
	}
	switch {
	case c.ID != "":
		return "#" + c.ID
	case c.Name != "":
		return fmt.Sprintf("@name=%s", c.Name)
	case c.Text != "":
		return fmt.Sprintf("%s:contains(%q)", tag, c.Text)
	case c.Placeholder != "":
		return fmt.Sprintf("%s[placeholder=%q]", tag, c.Placeholder)
	case c.Type != "":
		return fmt.Sprintf("%s[type=%q]", tag, c.Type)
	}
	return tag
}

func attr(el *rod.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Section is one outline entry shown under a revealed answer.
type Section struct {
	Name   string
	Knows  []string // knowledge points
	Skills []string // skill points
}

// Outline is the exam outline reference data, keyed "<main>" -> "<sub>".
// The zero value is an empty outline.
type Outline struct {
	raw []byte
}

// ParseOutline wraps an outline document. The document must be a JSON object.
func ParseOutline(data []byte) (*Outline, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse outline: invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("parse outline: expected a JSON object")
	}
	return &Outline{raw: data}, nil
}

// LoadOutline reads an outline from source using the same rules as Load.
func LoadOutline(ctx context.Context, source string) (*Outline, error) {
	data, err := readSource(ctx, source, "sample/outline.json")
	if err != nil {
		return nil, fmt.Errorf("load outline: %w", err)
	}
	return ParseOutline(data)
}

// Lookup resolves a question's field reference. Fields name the main and
// sub sections separated by a dot; anything after the second component is
// ignored. Missing entries report false.
func (o *Outline) Lookup(field string) (Section, bool) {
	if o == nil || len(o.raw) == 0 {
		return Section{}, false
	}
	parts := strings.Split(field, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Section{}, false
	}

	entry := gjson.GetBytes(o.raw, gjson.Escape(parts[0])+"."+gjson.Escape(parts[1]))
	if !entry.IsObject() {
		return Section{}, false
	}

	return Section{
		Name:   entry.Get("name").String(),
		Knows:  stringList(entry.Get("knows")),
		Skills: stringList(entry.Get("skills")),
	}, true
}

func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	items := r.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}

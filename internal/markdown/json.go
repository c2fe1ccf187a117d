package markdown

import (
	"encoding/json"
)

// jsonElement is the wire shape shared by every element variant.
type jsonElement struct {
	Kind     string        `json:"kind"`
	Text     string        `json:"text,omitempty"`
	Level    int           `json:"level,omitempty"`
	Target   string        `json:"target,omitempty"`
	Marker   string        `json:"marker,omitempty"`
	Position string        `json:"position,omitempty"`
	Children []jsonElement `json:"children,omitempty"`
}

func toJSONElement(el Element) jsonElement {
	out := jsonElement{Kind: el.Kind().String(), Text: el.Text()}
	switch e := el.(type) {
	case Header:
		out.Level = e.Level
	case Link:
		out.Target = e.Target
	case OrderedListItem:
		out.Marker = e.Marker
	case BlockCode:
		out.Position = e.Type.String()
	}
	for _, child := range el.Children() {
		out.Children = append(out.Children, toJSONElement(child))
	}
	return out
}

// MarshalJSON encodes the document as an array of elements, each carrying its
// kind, text, variant attributes and children.
func (d Document) MarshalJSON() ([]byte, error) {
	elements := make([]jsonElement, 0, len(d.Elements))
	for _, el := range d.Elements {
		elements = append(elements, toJSONElement(el))
	}
	return json.Marshal(elements)
}

package tiledmap

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/younwookim/tilehop/internal/domain/tiled"
)

// Normalize converts a raw object into a PlacedObject whose custom fields are
// merged into Attributes.
//
// Properties may be an ordered list of {name, value} pairs (Tiled 1.3+), a flat
// object (older Tiled), or absent. The form is detected from the JSON itself.
// Anything else, including malformed JSON, is treated as no custom fields.
// Custom "type", "name", "x", "y", "width" and "height" fields shadow the
// base fields of the same name.
func Normalize(o ObjectFile) tiled.PlacedObject {
	obj := tiled.PlacedObject{
		ID:     o.ID,
		Name:   o.Name,
		Type:   o.Type,
		X:      o.X,
		Y:      o.Y,
		Width:  o.Width,
		Height: o.Height,
	}
	if obj.Type == "" {
		obj.Type = o.Class
	}

	props := decodeProperties(o.Properties)
	if len(props) == 0 {
		return obj
	}

	obj.Attributes = make(tiled.Attributes, len(props))
	for _, p := range props {
		obj.Attributes[p.Name] = p.Value
		shadowBaseField(&obj, p.Name, p.Value)
	}
	return obj
}

func shadowBaseField(obj *tiled.PlacedObject, name string, value any) {
	switch name {
	case "type":
		if s, ok := value.(string); ok {
			obj.Type = s
		}
	case "name":
		if s, ok := value.(string); ok {
			obj.Name = s
		}
	case "x", "y", "width", "height":
		f, ok := value.(float64)
		if !ok {
			return
		}
		switch name {
		case "x":
			obj.X = f
		case "y":
			obj.Y = f
		case "width":
			obj.Width = f
		case "height":
			obj.Height = f
		}
	}
}

// decodeProperties returns properties in application order.
func decodeProperties(raw json.RawMessage) []propertyFile {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []propertyFile
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil
		}
		out := list[:0]
		for _, p := range list {
			if p.Name != "" {
				out = append(out, p)
			}
		}
		return out
	case '{':
		var m map[string]any
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil
		}
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]propertyFile, 0, len(names))
		for _, name := range names {
			out = append(out, propertyFile{Name: name, Value: m[name]})
		}
		return out
	}
	return nil
}

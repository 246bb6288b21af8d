// Package tiledmap decodes Tiled JSON maps into tiled.Map values.
package tiledmap

import "encoding/json"

// MapFile is the root of a Tiled JSON map.
type MapFile struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	TileWidth   int           `json:"tilewidth"`
	TileHeight  int           `json:"tileheight"`
	Orientation string        `json:"orientation"`
	Infinite    bool          `json:"infinite"`
	Layers      []LayerFile   `json:"layers"`
	Tilesets    []TilesetFile `json:"tilesets"`
}

// LayerFile is a tile layer, object group or group layer.
type LayerFile struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"` // "tilelayer" | "objectgroup" | "group" | "imagelayer"
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Data     json.RawMessage `json:"data,omitempty"`
	Encoding string          `json:"encoding,omitempty"`
	Objects  []ObjectFile    `json:"objects,omitempty"`
	Layers   []LayerFile     `json:"layers,omitempty"`
	Visible  *bool           `json:"visible,omitempty"`
}

// ObjectFile is a placed object as written by Tiled.
// Properties is kept raw because its shape depends on the editor version.
type ObjectFile struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Class      string          `json:"class,omitempty"` // Tiled 1.9+ writes "class" instead of "type"
	X          float64         `json:"x"`
	Y          float64         `json:"y"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Rotation   float64         `json:"rotation,omitempty"`
	GID        uint32          `json:"gid,omitempty"`
	Visible    bool            `json:"visible"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

// TilesetFile is an embedded tileset reference.
type TilesetFile struct {
	FirstGID  int    `json:"firstgid"`
	Source    string `json:"source,omitempty"`
	Name      string `json:"name,omitempty"`
	Columns   int    `json:"columns,omitempty"`
	TileCount int    `json:"tilecount,omitempty"`
	Image     string `json:"image,omitempty"`
}

// propertyFile is one entry of the list form of custom properties.
type propertyFile struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value"`
}

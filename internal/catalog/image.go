package catalog

import "photojson/internal/palette"

// Color is one palette entry.
type Color = palette.Color

// Image is the catalog record for one successfully inspected file.
type Image struct {
	Path     string  `json:"path"`
	FileName string  `json:"file_name"`
	Kind     Kind    `json:"kind"`
	Width    uint32  `json:"width"`
	Height   uint32  `json:"height"`
	Colors   []Color `json:"colors"`
}

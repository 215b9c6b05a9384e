package model

// Color is an RGB debug colour.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	ColorGreen  = Color{R: 0, G: 255, B: 0}
	ColorRed    = Color{R: 255, G: 0, B: 0}
	ColorYellow = Color{R: 255, G: 255, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
)

// Marker is one transient debug point.
type Marker struct {
	Location Vec3  `json:"location"`
	Color    Color `json:"color"`
}

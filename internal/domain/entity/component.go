package entity

import (
	"encoding/json"
	"time"
)

// Variantes de componente colocables en un layout.
const (
	ComponentBin     = "bin"
	ComponentPillar  = "pillar"
	ComponentMarker  = "marker"
	ComponentMachine = "machine"
)

// Geometría por defecto de un componente nuevo.
const (
	DefaultComponentWidth  = 100
	DefaultComponentHeight = 100
)

// ValidComponentType indica si t es una variante conocida.
func ValidComponentType(t string) bool {
	switch t {
	case ComponentBin, ComponentPillar, ComponentMarker, ComponentMachine:
		return true
	}
	return false
}

// Point vértice de un contorno libre.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Component es una figura colocada en un Layout. La geometría rectangular siempre está presente,
// aun cuando ShapePoints define un polígono.
type Component struct {
	ID          string
	LayoutID    string
	Type        string
	X           float64
	Y           float64
	Width       float64
	Height      float64
	Rotation    float64
	ShapePoints []Point
	Code        string // obligatorio en bins; clave de unión con los datos de ocupación
	Props       json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

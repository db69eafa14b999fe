package entity

import "time"

// Dimensiones por defecto de un lienzo nuevo.
const (
	DefaultLayoutWidth  = 800
	DefaultLayoutHeight = 600
)

// Layout es un plano 2D con dimensiones fijas; agrupa componentes por piso/área.
type Layout struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Floor     string
	Area      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

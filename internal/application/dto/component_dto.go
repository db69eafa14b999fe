package dto

import (
	"encoding/json"

	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
)

// CreateComponentRequest entrada para colocar un componente en un layout.
// Los punteros nil toman los valores por defecto de geometría.
type CreateComponentRequest struct {
	Type        string          `json:"type" validate:"required,oneof=bin pillar marker machine"`
	X           *float64        `json:"x"`
	Y           *float64        `json:"y"`
	Width       *float64        `json:"width"`
	Height      *float64        `json:"height"`
	Rotation    *float64        `json:"rotation"`
	ShapePoints []entity.Point  `json:"shapePoints"`
	Code        string          `json:"code"`
	Props       json.RawMessage `json:"props"`
}

// UpdateComponentRequest parche parcial. ShapePoints vacío (no nil) borra el contorno.
// Type y LayoutID son inmutables.
type UpdateComponentRequest struct {
	X           *float64        `json:"x"`
	Y           *float64        `json:"y"`
	Width       *float64        `json:"width"`
	Height      *float64        `json:"height"`
	Rotation    *float64        `json:"rotation"`
	ShapePoints *[]entity.Point `json:"shapePoints"`
	Code        *string         `json:"code"`
	Props       json.RawMessage `json:"props"`
}

// ComponentResponse salida de un componente.
type ComponentResponse struct {
	ID          string          `json:"id"`
	LayoutID    string          `json:"layoutId"`
	Type        string          `json:"type"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Rotation    float64         `json:"rotation"`
	ShapePoints []entity.Point  `json:"shapePoints"`
	Code        *string         `json:"code"`
	Props       json.RawMessage `json:"props"`
}

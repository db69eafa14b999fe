package dto

// CreateLayoutRequest entrada para crear un layout. Width/Height cero toman el valor por defecto.
type CreateLayoutRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Floor  string `json:"floor"`
	Area   string `json:"area"`
}

// UpdateLayoutRequest actualización parcial: solo se aplican los campos presentes.
type UpdateLayoutRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Width  *int    `json:"width"`
	Height *int    `json:"height"`
	Floor  *string `json:"floor"`
	Area   *string `json:"area"`
}

// LayoutResponse salida de un layout (metadatos).
type LayoutResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Floor  string `json:"floor,omitempty"`
	Area   string `json:"area,omitempty"`
}

// LayoutDetailResponse layout con sus componentes anidados.
type LayoutDetailResponse struct {
	LayoutResponse
	Components []ComponentResponse `json:"components"`
}

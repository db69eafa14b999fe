package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Eddiexian/AI-Pr/internal/application/dto"
	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/internal/domain/bincode"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

var emptyProps = json.RawMessage(`{}`)

// ComponentUseCase casos de uso para componentes colocados en un layout.
type ComponentUseCase struct {
	layoutRepo repository.LayoutRepository
	repo       repository.ComponentRepository
}

// NewComponentUseCase construye el caso de uso.
func NewComponentUseCase(layoutRepo repository.LayoutRepository, repo repository.ComponentRepository) *ComponentUseCase {
	return &ComponentUseCase{layoutRepo: layoutRepo, repo: repo}
}

// Create coloca un componente en el layout. Geometría ausente toma los valores por defecto;
// un bin sin código es inválido.
func (uc *ComponentUseCase) Create(ctx context.Context, layoutID string, in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	if !entity.ValidComponentType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	code := bincode.Normalize(in.Code)
	if in.Type == entity.ComponentBin && code == "" {
		return nil, domain.ErrInvalidInput
	}
	props, err := normalizeProps(in.Props)
	if err != nil {
		return nil, err
	}
	layout, err := uc.layoutRepo.GetByID(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	c := &entity.Component{
		ID:          uuid.New().String(),
		LayoutID:    layoutID,
		Type:        in.Type,
		X:           valueOr(in.X, 0),
		Y:           valueOr(in.Y, 0),
		Width:       valueOr(in.Width, entity.DefaultComponentWidth),
		Height:      valueOr(in.Height, entity.DefaultComponentHeight),
		Rotation:    valueOr(in.Rotation, 0),
		ShapePoints: in.ShapePoints,
		Code:        code,
		Props:       props,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(c.ShapePoints) == 0 {
		c.ShapePoints = nil
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toComponentResponse(c), nil
}

// Update aplica el parche campo a campo; los campos ausentes no cambian.
func (uc *ComponentUseCase) Update(ctx context.Context, id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.X != nil {
		c.X = *in.X
	}
	if in.Y != nil {
		c.Y = *in.Y
	}
	if in.Width != nil {
		if *in.Width <= 0 {
			return nil, domain.ErrInvalidInput
		}
		c.Width = *in.Width
	}
	if in.Height != nil {
		if *in.Height <= 0 {
			return nil, domain.ErrInvalidInput
		}
		c.Height = *in.Height
	}
	if in.Rotation != nil {
		c.Rotation = *in.Rotation
	}
	if in.ShapePoints != nil {
		c.ShapePoints = *in.ShapePoints
		if len(c.ShapePoints) == 0 {
			c.ShapePoints = nil
		}
	}
	if in.Code != nil {
		code := bincode.Normalize(*in.Code)
		if c.Type == entity.ComponentBin && code == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Code = code
	}
	if in.Props != nil {
		props, err := normalizeProps(in.Props)
		if err != nil {
			return nil, err
		}
		c.Props = props
	}
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toComponentResponse(c), nil
}

// Delete elimina un componente; ErrNotFound si no existe.
func (uc *ComponentUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// normalizeProps acepta ausente/null como {} y exige un objeto JSON.
func normalizeProps(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return emptyProps, nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, domain.ErrInvalidInput
	}
	return json.RawMessage(trimmed), nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func toComponentResponse(c *entity.Component) *dto.ComponentResponse {
	if c == nil {
		return nil
	}
	out := &dto.ComponentResponse{
		ID:          c.ID,
		LayoutID:    c.LayoutID,
		Type:        c.Type,
		X:           c.X,
		Y:           c.Y,
		Width:       c.Width,
		Height:      c.Height,
		Rotation:    c.Rotation,
		ShapePoints: c.ShapePoints,
		Props:       c.Props,
	}
	if c.Code != "" {
		code := c.Code
		out.Code = &code
	}
	if len(out.Props) == 0 {
		out.Props = emptyProps
	}
	return out
}

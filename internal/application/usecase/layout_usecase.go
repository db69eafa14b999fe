package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Eddiexian/AI-Pr/internal/application/dto"
	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
)

// LayoutUseCase casos de uso CRUD para layouts.
type LayoutUseCase struct {
	repo     repository.LayoutRepository
	compRepo repository.ComponentRepository
}

// NewLayoutUseCase construye el caso de uso.
func NewLayoutUseCase(repo repository.LayoutRepository, compRepo repository.ComponentRepository) *LayoutUseCase {
	return &LayoutUseCase{repo: repo, compRepo: compRepo}
}

// Create crea un layout nuevo; width/height cero toman 800x600.
func (uc *LayoutUseCase) Create(ctx context.Context, in dto.CreateLayoutRequest) (*dto.LayoutResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Width < 0 || in.Height < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Width == 0 {
		in.Width = entity.DefaultLayoutWidth
	}
	if in.Height == 0 {
		in.Height = entity.DefaultLayoutHeight
	}
	now := time.Now().UTC()
	layout := &entity.Layout{
		ID:        uuid.New().String(),
		Name:      name,
		Width:     in.Width,
		Height:    in.Height,
		Floor:     strings.TrimSpace(in.Floor),
		Area:      strings.TrimSpace(in.Area),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, layout); err != nil {
		return nil, err
	}
	return toLayoutResponse(layout), nil
}

// List devuelve todos los layouts en orden de creación (sin paginación).
func (uc *LayoutUseCase) List(ctx context.Context) ([]dto.LayoutResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LayoutResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLayoutResponse(l))
	}
	return out, nil
}

// GetDetail devuelve el layout con sus componentes; ErrNotFound si no existe.
func (uc *LayoutUseCase) GetDetail(ctx context.Context, id string) (*dto.LayoutDetailResponse, error) {
	layout, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, domain.ErrNotFound
	}
	comps, err := uc.compRepo.ListByLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.LayoutDetailResponse{
		LayoutResponse: *toLayoutResponse(layout),
		Components:     make([]dto.ComponentResponse, 0, len(comps)),
	}
	for _, c := range comps {
		out.Components = append(out.Components, *toComponentResponse(c))
	}
	return out, nil
}

// Update aplica solo los campos presentes; width/height deben ser positivos.
func (uc *LayoutUseCase) Update(ctx context.Context, id string, in dto.UpdateLayoutRequest) (*dto.LayoutResponse, error) {
	layout, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		layout.Name = name
	}
	if in.Width != nil {
		if *in.Width <= 0 {
			return nil, domain.ErrInvalidInput
		}
		layout.Width = *in.Width
	}
	if in.Height != nil {
		if *in.Height <= 0 {
			return nil, domain.ErrInvalidInput
		}
		layout.Height = *in.Height
	}
	if in.Floor != nil {
		layout.Floor = strings.TrimSpace(*in.Floor)
	}
	if in.Area != nil {
		layout.Area = strings.TrimSpace(*in.Area)
	}
	layout.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, layout); err != nil {
		return nil, err
	}
	return toLayoutResponse(layout), nil
}

// Delete elimina el layout y, en cascada, sus componentes.
func (uc *LayoutUseCase) Delete(ctx context.Context, id string) error {
	layout, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if layout == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toLayoutResponse(l *entity.Layout) *dto.LayoutResponse {
	if l == nil {
		return nil
	}
	return &dto.LayoutResponse{
		ID:     l.ID,
		Name:   l.Name,
		Width:  l.Width,
		Height: l.Height,
		Floor:  l.Floor,
		Area:   l.Area,
	}
}

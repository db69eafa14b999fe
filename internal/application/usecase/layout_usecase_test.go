package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eddiexian/AI-Pr/internal/application/dto"
	"github.com/Eddiexian/AI-Pr/internal/application/usecase"
	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/testutil"
)

func newUseCases() (*testutil.MemStore, *usecase.LayoutUseCase, *usecase.ComponentUseCase) {
	store := testutil.NewMemStore()
	layouts := usecase.NewLayoutUseCase(store.Layouts(), store.Components())
	comps := usecase.NewComponentUseCase(store.Layouts(), store.Components())
	return store, layouts, comps
}

func ptr[T any](v T) *T { return &v }

func TestLayoutCreate_AplicaDimensionesPorDefecto(t *testing.T) {
	_, layouts, _ := newUseCases()

	out, err := layouts.Create(context.Background(), dto.CreateLayoutRequest{Name: "  Bodega A  ", Floor: "3F"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Bodega A", out.Name)
	assert.Equal(t, 800, out.Width)
	assert.Equal(t, 600, out.Height)
	assert.Equal(t, "3F", out.Floor)
}

func TestLayoutCreate_NombreVacioInvalido(t *testing.T) {
	_, layouts, _ := newUseCases()

	_, err := layouts.Create(context.Background(), dto.CreateLayoutRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = layouts.Create(context.Background(), dto.CreateLayoutRequest{Name: "x", Width: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLayoutList_OrdenDeCreacion(t *testing.T) {
	_, layouts, _ := newUseCases()
	ctx := context.Background()
	for _, name := range []string{"uno", "dos", "tres"} {
		_, err := layouts.Create(ctx, dto.CreateLayoutRequest{Name: name})
		require.NoError(t, err)
	}

	list, err := layouts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "uno", list[0].Name)
	assert.Equal(t, "tres", list[2].Name)
}

func TestLayoutUpdate_ParcheParcial(t *testing.T) {
	_, layouts, _ := newUseCases()
	ctx := context.Background()
	created, err := layouts.Create(ctx, dto.CreateLayoutRequest{Name: "A", Width: 1000, Height: 500, Area: "North"})
	require.NoError(t, err)

	out, err := layouts.Update(ctx, created.ID, dto.UpdateLayoutRequest{Name: ptr("B")})
	require.NoError(t, err)
	assert.Equal(t, "B", out.Name)
	assert.Equal(t, 1000, out.Width, "los campos ausentes no cambian")
	assert.Equal(t, "North", out.Area)

	_, err = layouts.Update(ctx, created.ID, dto.UpdateLayoutRequest{Width: ptr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = layouts.Update(ctx, "no-existe", dto.UpdateLayoutRequest{Name: ptr("C")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLayoutDelete_EliminaComponentesEnCascada(t *testing.T) {
	store, layouts, comps := newUseCases()
	ctx := context.Background()
	l, err := layouts.Create(ctx, dto.CreateLayoutRequest{Name: "A"})
	require.NoError(t, err)
	_, err = comps.Create(ctx, l.ID, dto.CreateComponentRequest{Type: "bin", Code: "A-01"})
	require.NoError(t, err)
	_, err = comps.Create(ctx, l.ID, dto.CreateComponentRequest{Type: "pillar"})
	require.NoError(t, err)
	require.Equal(t, 2, store.ComponentCount())

	require.NoError(t, layouts.Delete(ctx, l.ID))
	assert.Equal(t, 0, store.ComponentCount())

	_, err = layouts.GetDetail(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, layouts.Delete(ctx, l.ID), domain.ErrNotFound)
}

func TestLayoutGetDetail_IncluyeComponentes(t *testing.T) {
	_, layouts, comps := newUseCases()
	ctx := context.Background()
	l, err := layouts.Create(ctx, dto.CreateLayoutRequest{Name: "A"})
	require.NoError(t, err)
	_, err = comps.Create(ctx, l.ID, dto.CreateComponentRequest{Type: "bin", Code: "a-01"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = comps.Create(ctx, l.ID, dto.CreateComponentRequest{Type: "marker"})
	require.NoError(t, err)

	detail, err := layouts.GetDetail(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, detail.ID)
	require.Len(t, detail.Components, 2)
	require.NotNil(t, detail.Components[0].Code)
	assert.Equal(t, "A-01", *detail.Components[0].Code)
	assert.Nil(t, detail.Components[1].Code)
	assert.JSONEq(t, `{}`, string(detail.Components[1].Props))
}

func TestComponentCreate_Validaciones(t *testing.T) {
	_, layouts, comps := newUseCases()
	ctx := context.Background()
	l, err := layouts.Create(ctx, dto.CreateLayoutRequest{Name: "A"})
	require.NoError(t, err)

	_, err = comps.Create(ctx, l.ID, dto.CreateComponentRequest{Type: "door"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = comps.Create(ctx, l.ID, dto.CreateComponentRequest{Type: "bin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "bin sin código")

	_, err = comps.Create(ctx, l.ID, dto.CreateComponentRequest{Type: "pillar", Props: json.RawMessage(`[1,2]`)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "props debe ser objeto")

	_, err = comps.Create(ctx, "no-existe", dto.CreateComponentRequest{Type: "pillar"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComponentCreate_GeometriaPorDefectoYCodigoNormalizado(t *testing.T) {
	_, layouts, comps := newUseCases()
	ctx := context.Background()
	l, err := layouts.Create(ctx, dto.CreateLayoutRequest{Name: "A"})
	require.NoError(t, err)

	out, err := comps.Create(ctx, l.ID, dto.CreateComponentRequest{
		Type: "bin",
		X:    ptr(40.0),
		Code: " ｂ-０２ ",
	})
	require.NoError(t, err)
	assert.Equal(t, l.ID, out.LayoutID)
	assert.Equal(t, 40.0, out.X)
	assert.Equal(t, 100.0, out.Width)
	assert.Equal(t, 100.0, out.Height)
	require.NotNil(t, out.Code)
	assert.Equal(t, "B-02", *out.Code)
	assert.Nil(t, out.ShapePoints)
}

func TestComponentUpdate_ParcheYBorradoDeContorno(t *testing.T) {
	_, layouts, comps := newUseCases()
	ctx := context.Background()
	l, err := layouts.Create(ctx, dto.CreateLayoutRequest{Name: "A"})
	require.NoError(t, err)
	created, err := comps.Create(ctx, l.ID, dto.CreateComponentRequest{
		Type:  "bin",
		Code:  "A-01",
		Props: json.RawMessage(`{"color":"red"}`),
	})
	require.NoError(t, err)

	hex := []entity.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 15, Y: 8}}
	out, err := comps.Update(ctx, created.ID, dto.UpdateComponentRequest{
		X:           ptr(120.0),
		ShapePoints: &hex,
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, out.X)
	assert.Len(t, out.ShapePoints, 3)
	assert.JSONEq(t, `{"color":"red"}`, string(out.Props), "props ausente no cambia")

	out, err = comps.Update(ctx, created.ID, dto.UpdateComponentRequest{ShapePoints: &[]entity.Point{}})
	require.NoError(t, err)
	assert.Nil(t, out.ShapePoints, "lista vacía borra el contorno")

	_, err = comps.Update(ctx, created.ID, dto.UpdateComponentRequest{Code: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un bin no puede quedar sin código")

	_, err = comps.Update(ctx, "no-existe", dto.UpdateComponentRequest{X: ptr(1.0)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComponentDelete_NoExiste(t *testing.T) {
	_, _, comps := newUseCases()
	assert.ErrorIs(t, comps.Delete(context.Background(), "no-existe"), domain.ErrNotFound)
}

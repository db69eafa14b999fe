package sqlite_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eddiexian/AI-Pr/internal/domain"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/internal/domain/repository"
	"github.com/Eddiexian/AI-Pr/internal/infrastructure/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newLayout(id string, at time.Time) *entity.Layout {
	return &entity.Layout{ID: id, Name: "L " + id, Width: 800, Height: 600, CreatedAt: at, UpdatedAt: at}
}

func TestUserRepo_CreateYUsernameDuplicado(t *testing.T) {
	db := openDB(t)
	repo := sqlite.NewUserRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	u := &entity.User{ID: "u1", Username: "ana", PasswordHash: "h", Role: "worker", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, u))

	err := repo.Create(ctx, &entity.User{ID: "u2", Username: "ana", PasswordHash: "h", Role: "worker", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	got, err := repo.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	require.NoError(t, repo.UpdateRole(ctx, "u1", "admin"))
	got, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role)

	assert.ErrorIs(t, repo.UpdateRole(ctx, "nadie", "admin"), domain.ErrNotFound)

	missing, err := repo.GetByID(ctx, "nadie")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLayoutRepo_CRUDYCascada(t *testing.T) {
	db := openDB(t)
	layouts := sqlite.NewLayoutRepository(db)
	comps := sqlite.NewComponentRepository(db)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, layouts.Create(ctx, newLayout("a", base)))
	require.NoError(t, layouts.Create(ctx, newLayout("b", base.Add(time.Second))))

	list, err := layouts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)

	l := list[0]
	l.Name = "renombrado"
	l.Floor = "2F"
	require.NoError(t, layouts.Update(ctx, l))
	got, err := layouts.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "renombrado", got.Name)
	assert.Equal(t, "2F", got.Floor)

	c := &entity.Component{
		ID: "c1", LayoutID: "a", Type: entity.ComponentBin, Width: 80, Height: 80,
		Code: "A-01", Props: json.RawMessage(`{"color":"#334155"}`), CreatedAt: base, UpdatedAt: base,
	}
	require.NoError(t, comps.Create(ctx, c))

	require.NoError(t, layouts.Delete(ctx, "a"))
	gone, err := comps.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, gone, "los componentes se eliminan en cascada")
}

func TestComponentRepo_ContornoYProps(t *testing.T) {
	db := openDB(t)
	layouts := sqlite.NewLayoutRepository(db)
	comps := sqlite.NewComponentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, layouts.Create(ctx, newLayout("a", now)))

	hex := []entity.Point{{X: 40, Y: 0}, {X: 80, Y: 20}, {X: 80, Y: 60}, {X: 40, Y: 80}, {X: 0, Y: 60}, {X: 0, Y: 20}}
	c := &entity.Component{
		ID: "hex", LayoutID: "a", Type: entity.ComponentBin, X: 100, Y: 600, Width: 100, Height: 100,
		ShapePoints: hex, Code: "1F-HEX-01", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, comps.Create(ctx, c))

	got, err := comps.GetByID(ctx, "hex")
	require.NoError(t, err)
	assert.Equal(t, hex, got.ShapePoints)
	assert.JSONEq(t, `{}`, string(got.Props))

	got.ShapePoints = nil
	got.Props = json.RawMessage(`{"label":"x"}`)
	require.NoError(t, comps.Update(ctx, got))
	got, err = comps.GetByID(ctx, "hex")
	require.NoError(t, err)
	assert.Nil(t, got.ShapePoints)
	assert.JSONEq(t, `{"label":"x"}`, string(got.Props))

	list, err := comps.ListByLayout(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	err = comps.Create(ctx, &entity.Component{ID: "x", LayoutID: "nope", Type: "pillar", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOccupancyRepo_ConteosContenidoYLocate(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	writer := sqlite.NewContainerWriter(db)
	require.NoError(t, writer.PutContainer(ctx, "A-01", entity.Container{
		ID: "CST-2", Position: 2, Units: []entity.WorkItem{{ID: "W-3", Model: "NM-100"}},
	}))
	require.NoError(t, writer.PutContainer(ctx, "A-01", entity.Container{
		ID: "CST-1", Position: 1, Units: []entity.WorkItem{{ID: "W-2", Grade: "B"}, {ID: "W-1", Grade: "A"}},
	}))
	require.NoError(t, writer.PutContainer(ctx, "B-02", entity.Container{ID: "CST-9", Position: 1}))

	repo := sqlite.NewOccupancyRepository(db)
	counts, err := repo.ContainerCounts(ctx, []string{"A-01", "B-02", "C-03"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A-01": 2, "B-02": 1}, counts)

	contents, err := repo.ContentsByBins(ctx, []string{"A-01", "B-02"})
	require.NoError(t, err)
	require.Len(t, contents["A-01"], 2)
	assert.Equal(t, "CST-1", contents["A-01"][0].ID)
	assert.Equal(t, []string{"W-1", "W-2"}, []string{contents["A-01"][0].Units[0].ID, contents["A-01"][0].Units[1].ID})
	require.Len(t, contents["B-02"], 1)
	assert.Empty(t, contents["B-02"][0].Units)

	loc, err := repo.LocateWorkItem(ctx, "W-3")
	require.NoError(t, err)
	assert.Equal(t, entity.Location{BinCode: "A-01", ContainerID: "CST-2", WorkItemID: "W-3"}, loc)

	loc, err = repo.LocateContainer(ctx, "CST-9")
	require.NoError(t, err)
	assert.Equal(t, "B-02", loc.BinCode)

	loc, err = repo.LocateWorkItem(ctx, "nada")
	require.NoError(t, err)
	assert.True(t, loc.Empty())
}

func TestOccupancyRepo_LotesGrandesDeCodigos(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	writer := sqlite.NewContainerWriter(db)
	require.NoError(t, writer.PutContainer(ctx, "BIN-0000", entity.Container{ID: "CST-A", Position: 1}))
	require.NoError(t, writer.PutContainer(ctx, "BIN-1999", entity.Container{
		ID: "CST-B", Position: 1, Units: []entity.WorkItem{{ID: "W-1"}},
	}))

	codes := make([]string, 0, 2001)
	for i := 0; i < 2000; i++ {
		codes = append(codes, fmt.Sprintf("BIN-%04d", i))
	}
	codes = append(codes, "BIN-1999")

	repo := sqlite.NewOccupancyRepository(db)
	counts, err := repo.ContainerCounts(ctx, codes)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"BIN-0000": 1, "BIN-1999": 1}, counts)

	contents, err := repo.ContentsByBins(ctx, codes)
	require.NoError(t, err)
	require.Len(t, contents, 2)
	require.Len(t, contents["BIN-1999"], 1, "un código repetido no duplica contenedores")
	assert.Len(t, contents["BIN-1999"][0].Units, 1)
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	runner := sqlite.NewTxRunner(db)
	boom := errors.New("boom")

	err := runner.Run(ctx, func(repos repository.Repositories) error {
		require.NoError(t, repos.Layouts.Create(ctx, newLayout("tmp", time.Now().UTC())))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := sqlite.NewLayoutRepository(db).GetByID(ctx, "tmp")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = runner.Run(ctx, func(repos repository.Repositories) error {
		return repos.Layouts.Create(ctx, newLayout("ok", time.Now().UTC()))
	})
	require.NoError(t, err)
	got, err = sqlite.NewLayoutRepository(db).GetByID(ctx, "ok")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/internal/client/remote"
)

type fakeCreds struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (f *fakeCreds) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCreds) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.invalidated++
}

func newClient(t *testing.T, h http.HandlerFunc) (*remote.Client, *fakeCreds) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := remote.New(srv.URL+"/api", 2*time.Second, nil)
	creds := &fakeCreds{token: "tok-1"}
	c.UseCredentials(creds)
	return c, creds
}

func TestClient_AdjuntaBearerYRequestID(t *testing.T) {
	var gotAuth, gotReqID, gotPath string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(remote.HeaderRequestID)
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[{"id":"l1","name":"A","width":800,"height":600}]`))
	})

	list, err := c.ListLayouts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "l1", list[0].ID)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Len(t, gotReqID, 26, "ULID en texto")
	assert.Equal(t, "/api/layouts", gotPath)
}

func TestClient_401InvalidaSesion(t *testing.T) {
	c, creds := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"INVALID_TOKEN","message":"token inválido o expirado"}`))
	})

	_, err := c.Counts(context.Background(), []string{"A-01"})
	assert.ErrorIs(t, err, remote.ErrUnauthorized)
	assert.Equal(t, 1, creds.invalidated)
	assert.Empty(t, creds.Token())
}

func TestClient_LoginNoInvalidaNiAdjuntaBearer(t *testing.T) {
	var gotAuth string
	c, creds := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Login(context.Background(), "admin", "mal")
	assert.ErrorIs(t, err, remote.ErrUnauthorized)
	assert.Empty(t, gotAuth)
	assert.Equal(t, 0, creds.invalidated)
}

func TestClient_StatusErrorConCuerpo(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"NOT_FOUND","message":"recurso no encontrado"}`))
	})

	_, err := c.GetLayout(context.Background(), "nope")
	require.Error(t, err)
	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Equal(t, "NOT_FOUND", se.Code)
	assert.True(t, remote.IsNotFound(err))
}

func TestClient_StatusErrorSinJSON(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	err := c.DeleteComponent(context.Background(), "c1")
	var se *remote.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "boom", se.Message)
	assert.False(t, remote.IsNotFound(err))
}

func TestClient_CuerposDeData(t *testing.T) {
	var body map[string]any
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		body = nil
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.URL.Path {
		case "/api/data/wip":
			_, _ = w.Write([]byte(`{"A-01":[{"containerId":"CST-0001","position":1,"units":[{"workItemId":"S01-CH001","model":"TX-2024","grade":"A","operatorId":"OP-1"}]}]}`))
		case "/api/data/locate":
			_, _ = w.Write([]byte(`{}`))
		default:
			_, _ = w.Write([]byte(`{"A-01":3}`))
		}
	})
	ctx := context.Background()

	counts, err := c.CassetteCounts(ctx, []string{"A-01", "A-02"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A-01": 3}, counts)
	assert.Equal(t, []any{"A-01", "A-02"}, body["binCodes"])

	wip, err := c.WIP(ctx, []string{"A-01"})
	require.NoError(t, err)
	require.Len(t, wip["A-01"], 1)
	assert.Equal(t, "S01-CH001", wip["A-01"][0].Units[0].WorkItemID)

	loc, err := c.Locate(ctx, model.LocateQuery{ContainerID: "CST-9"})
	require.NoError(t, err)
	assert.False(t, loc.Found())
	assert.Equal(t, map[string]any{"containerId": "CST-9"}, body)
}

func TestClient_PatchSoloEnviaCamposPresentes(t *testing.T) {
	var body map[string]any
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body = nil
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"id":"c1","layoutId":"l1","type":"bin","x":1,"y":0,"width":10,"height":10,"rotation":0,"shapePoints":null,"code":"B-1","props":{}}`))
	})

	x := 1.0
	comp, err := c.UpdateComponent(context.Background(), "c1", model.ComponentPatch{X: &x})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1.0}, body)
	assert.Equal(t, "B-1", comp.CodeOrEmpty())
}

func TestClient_ErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := remote.New(srv.URL, time.Second, nil)

	_, err := c.ListLayouts(context.Background())
	require.Error(t, err)
	var se *remote.StatusError
	assert.NotErrorAs(t, err, &se)
}

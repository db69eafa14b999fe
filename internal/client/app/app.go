// Package app contexto explícito del cliente: arma sesión, capa remota, directorio,
// componentes, overlay y localizador, y los expone a quien los use (CLI, tests).
package app

import (
	"context"
	"fmt"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/internal/client/remote"
	"github.com/Eddiexian/AI-Pr/internal/client/session"
	"github.com/Eddiexian/AI-Pr/internal/client/warehouse"
	"github.com/Eddiexian/AI-Pr/internal/domain/bincode"
	"github.com/Eddiexian/AI-Pr/pkg/config"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

// Options dependencias inyectables; los stores nil usan la variante en memoria.
type Options struct {
	Remote        *remote.Client
	SessionStore  session.Store
	SnapshotStore warehouse.SnapshotStore
	Logger        *logger.Logger
}

// App handle único del cliente.
type App struct {
	Session    *session.Gate
	Remote     *remote.Client
	Workspace  *warehouse.Workspace
	Directory  *warehouse.Directory
	Components *warehouse.Components
	Overlay    *warehouse.Overlay
	Locator    *warehouse.Locator

	log *logger.Logger
}

// New arma la app y restaura el snapshot persistido. Un snapshot ilegible se registra y
// la app arranca vacía.
func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	rc := opts.Remote
	if rc == nil {
		rc = remote.New("http://localhost:5000/api", 0, log)
	}

	gate := session.NewGate(rc, opts.SessionStore, log)
	ws := warehouse.NewWorkspace(opts.SnapshotStore, log)
	_ = ws.Restore()
	rc.UseCredentials(credentials{gate: gate, ws: ws})

	a := &App{
		Session:    gate,
		Remote:     rc,
		Workspace:  ws,
		Directory:  warehouse.NewDirectory(ws, rc, log),
		Components: warehouse.NewComponents(ws, rc, log),
		Overlay:    warehouse.NewOverlay(ws, rc, log),
		Locator:    warehouse.NewLocator(rc, log),
		log:        log.Component("app"),
	}
	a.Directory.OnDetailLoaded(a.Overlay.OnDetailLoaded)
	return a
}

// NewFromConfig usa las rutas de CLIENT_* para los stores en disco.
func NewFromConfig(cfg config.ClientConfig, log *logger.Logger) *App {
	return New(Options{
		Remote:        remote.New(cfg.BaseURL, cfg.Timeout, log),
		SessionStore:  session.NewFileStore(cfg.SessionFile),
		SnapshotStore: warehouse.NewFileSnapshotStore(cfg.SnapshotFile),
		Logger:        log,
	})
}

// Init revalida la sesión persistida; si queda anónima se descarta el workspace local,
// que pertenecía a la sesión anterior.
func (a *App) Init(ctx context.Context) error {
	err := a.Session.Init(ctx)
	if !a.Session.Authenticated() {
		a.Workspace.Reset()
	}
	return err
}

func (a *App) Login(ctx context.Context, username, password string) (bool, error) {
	return a.Session.Login(ctx, username, password)
}

// Logout cierra la sesión y limpia el workspace.
func (a *App) Logout() {
	a.Session.Logout()
	a.Workspace.Reset()
}

// credentials fuente del bearer para la capa remota. Un 401 hace la misma transición que
// Logout: sesión anónima y workspace vacío.
type credentials struct {
	gate *session.Gate
	ws   *warehouse.Workspace
}

func (c credentials) Token() string { return c.gate.Token() }

func (c credentials) Invalidate() {
	c.gate.Invalidate()
	c.ws.Reset()
}

// Open carga el detalle del layout; los conteos de sus bins llegan en segundo plano.
func (a *App) Open(ctx context.Context, id string) (model.LayoutDetail, error) {
	return a.Directory.Open(ctx, id)
}

// InspectBin trae el WIP de un bin y lo adjunta al componente correspondiente del layout
// actual. Devuelve el contenido aunque el bin no esté en el layout.
func (a *App) InspectBin(ctx context.Context, code string) ([]model.Container, error) {
	code = bincode.Normalize(code)
	if code == "" {
		return nil, fmt.Errorf("inspect: código de bin vacío")
	}
	wip, err := a.Overlay.FetchWipData(ctx, []string{code})
	if err != nil {
		return nil, err
	}
	contents := wip[code]
	if n := a.Components.Attach(code, contents); n == 0 {
		a.log.Debug().Str("bin_code", code).Msg("bin fuera del layout actual")
	}
	return contents, nil
}

// Locate atajo al localizador.
func (a *App) Locate(ctx context.Context, q model.LocateQuery) model.Location {
	return a.Locator.Locate(ctx, q)
}

// Wait espera los trabajos en segundo plano (conteos tras Open).
func (a *App) Wait() { a.Directory.Wait() }

// Package session identidad del operador: estado de autenticación, rol y bearer.
// El Gate es el único escritor del registro de sesión; el resto del cliente solo lo lee.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
	"github.com/Eddiexian/AI-Pr/internal/client/remote"
	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

// State estado de la máquina de sesión.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// ErrSuperseded un logout ocurrió mientras la llamada estaba en vuelo; su resultado se descarta.
var ErrSuperseded = errors.New("session: operación reemplazada por logout")

// Authenticator llamadas remotas que necesita el Gate.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (model.LoginResult, error)
	Verify(ctx context.Context) (model.User, error)
}

// Gate máquina de estados anonymous -> authenticating -> authenticated.
// Nunca mantiene el lock durante una llamada remota; epoch descarta resultados que
// llegan después de un logout.
type Gate struct {
	auth  Authenticator
	store Store
	log   *logger.Logger

	mu    sync.RWMutex
	state State
	rec   Record
	epoch uint64
}

// NewGate construye el gate en estado anónimo. store nil = MemoryStore.
func NewGate(auth Authenticator, store Store, log *logger.Logger) *Gate {
	if store == nil {
		store = NewMemoryStore()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Gate{
		auth:  auth,
		store: store,
		log:   log.Component("session"),
		rec:   Record{Role: model.DefaultRole},
	}
}

// Login autentica al operador. Credenciales rechazadas devuelven (false, nil) para que el
// llamador muestre el mensaje; un error solo indica fallo de red/backend.
func (g *Gate) Login(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}

	g.mu.Lock()
	g.epoch++
	epoch := g.epoch
	g.state = Authenticating
	g.rec = Record{Role: model.DefaultRole}
	g.mu.Unlock()

	res, err := g.auth.Login(ctx, username, password)

	g.mu.Lock()
	if g.epoch != epoch {
		g.mu.Unlock()
		return false, ErrSuperseded
	}
	if err != nil || res.Token == "" {
		g.state = Anonymous
		g.rec = Record{Role: model.DefaultRole}
		g.mu.Unlock()
		if clearErr := g.store.Clear(); clearErr != nil {
			g.log.Error().Err(clearErr).Msg("borrar sesión persistida")
		}
		if err == nil || rejected(err) {
			g.log.Info().Str("username", username).Msg("login rechazado")
			return false, nil
		}
		g.log.Error().Err(err).Str("username", username).Msg("login fallido")
		return false, err
	}
	rec := Record{Username: res.User.Username, Role: normalizeRole(res.User.Role), Token: res.Token}
	if rec.Username == "" {
		rec.Username = username
	}
	g.rec = rec
	g.state = Authenticated
	g.mu.Unlock()

	g.save(rec)
	g.log.Info().Str("username", rec.Username).Str("role", rec.Role).Msg("sesión iniciada")
	return true, nil
}

// Init revalida la credencial persistida contra el backend. Sin credencial queda anónimo;
// cualquier fallo de verificación fuerza Logout y se devuelve.
func (g *Gate) Init(ctx context.Context) error {
	rec, ok, err := g.store.Load()
	if err != nil {
		g.log.Error().Err(err).Msg("leer sesión persistida")
	}
	if err != nil || !ok || rec.Token == "" {
		g.Logout()
		return err
	}

	g.mu.Lock()
	g.epoch++
	epoch := g.epoch
	g.state = Authenticating
	g.rec = Record{Username: rec.Username, Role: model.DefaultRole, Token: rec.Token}
	g.mu.Unlock()

	user, err := g.auth.Verify(ctx)

	g.mu.Lock()
	if g.epoch != epoch {
		g.mu.Unlock()
		if err != nil {
			return err
		}
		return ErrSuperseded
	}
	if err != nil {
		g.mu.Unlock()
		g.log.Warn().Err(err).Msg("credencial persistida rechazada")
		g.Logout()
		return err
	}
	next := Record{Username: user.Username, Role: normalizeRole(user.Role), Token: rec.Token}
	if next.Username == "" {
		next.Username = rec.Username
	}
	g.rec = next
	g.state = Authenticated
	g.mu.Unlock()

	g.save(next)
	return nil
}

// Logout limpia credencial y rol sin condiciones.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.epoch++
	g.state = Anonymous
	g.rec = Record{Role: model.DefaultRole}
	g.mu.Unlock()

	if err := g.store.Clear(); err != nil {
		g.log.Error().Err(err).Msg("borrar sesión persistida")
	}
}

// Invalidate lo invoca la capa remota ante un 401 en cualquier endpoint.
func (g *Gate) Invalidate() {
	g.log.Warn().Msg("credencial rechazada por el backend, cerrando sesión")
	g.Logout()
}

// Token bearer vigente; "" si no hay sesión.
func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state == Anonymous {
		return ""
	}
	return g.rec.Token
}

func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Gate) Authenticated() bool {
	return g.State() == Authenticated
}

// Role rol actual; el rol por defecto si no hay sesión.
func (g *Gate) Role() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state != Authenticated {
		return model.DefaultRole
	}
	return g.rec.Role
}

// Principal identidad autenticada, si la hay.
func (g *Gate) Principal() (model.Principal, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state != Authenticated {
		return model.Principal{Role: model.DefaultRole}, false
	}
	return model.Principal{Username: g.rec.Username, Role: g.rec.Role}, true
}

// HasRole chequeo jerárquico: autenticado y con rol >= minRole.
func (g *Gate) HasRole(minRole string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state == Authenticated && model.RoleLevel(g.rec.Role) >= model.RoleLevel(minRole)
}

func (g *Gate) save(rec Record) {
	if err := g.store.Save(rec); err != nil {
		g.log.Error().Err(err).Msg("persistir sesión")
	}
}

func normalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return model.DefaultRole
	}
	return role
}

// rejected distingue credenciales inválidas (401, usuario inexistente) de fallos de red.
func rejected(err error) bool {
	if errors.Is(err, remote.ErrUnauthorized) || remote.IsNotFound(err) {
		return true
	}
	var se *remote.StatusError
	return errors.As(err, &se) && se.Status == http.StatusBadRequest
}

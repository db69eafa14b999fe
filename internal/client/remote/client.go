// Package remote canal único entre el núcleo del cliente y el backend autoritativo.
// Adjunta el bearer de la sesión en cada llamada y, ante un 401 en cualquier endpoint,
// invalida la sesión antes de devolver el error.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Eddiexian/AI-Pr/pkg/logger"
)

// HeaderRequestID cabecera con el id de correlación de cada petición.
const HeaderRequestID = "X-Request-ID"

const maxBody = 4 << 20

// ErrUnauthorized el backend rechazó la credencial; la sesión ya fue invalidada.
var ErrUnauthorized = errors.New("remote: no autorizado")

// StatusError respuesta no exitosa distinta de 401.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote: HTTP %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("remote: HTTP %d: %s", e.Status, e.Message)
}

// IsNotFound indica si err es un 404 del backend.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// CredentialSource fuente del bearer; la app la arma sobre la sesión y el workspace.
type CredentialSource interface {
	Token() string
	Invalidate()
}

// Client cliente HTTP JSON del backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialSource
	log        *logger.Logger
}

// New construye el cliente. baseURL incluye el prefijo /api.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("remote"),
	}
}

// UseCredentials conecta la fuente del bearer (se hace una vez al armar la app).
func (c *Client) UseCredentials(src CredentialSource) {
	c.creds = src
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do ejecuta una petición autenticada; in nil = sin cuerpo, out nil = se descarta la respuesta.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	return c.send(ctx, method, path, in, out, true)
}

// send con authed=false no adjunta bearer ni invalida la sesión ante un 401 (login).
func (c *Client) send(ctx context.Context, method, path string, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: serializar %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("remote: crear request %s %s: %w", method, path, err)
	}
	reqID := ulid.Make().String()
	req.Header.Set(HeaderRequestID, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.creds != nil {
		if tok := c.creds.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("remote: %s %s cancelado: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("remote: leer respuesta %s %s: %w", method, path, err)
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("remote call")

	if resp.StatusCode == http.StatusUnauthorized {
		if authed && c.creds != nil {
			c.creds.Invalidate()
		}
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Status: resp.StatusCode}
		var eb errorBody
		if jsonErr := json.Unmarshal(raw, &eb); jsonErr == nil && (eb.Code != "" || eb.Message != "") {
			se.Code, se.Message = eb.Code, eb.Message
		} else {
			se.Message = strings.TrimSpace(string(raw))
		}
		return se
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("remote: deserializar %s %s: %w", method, path, err)
	}
	return nil
}

package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Eddiexian/AI-Pr/internal/client/model"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyResponse struct {
	User model.User `json:"user"`
}

type binCodesRequest struct {
	BinCodes []string `json:"binCodes"`
}

// Login POST /auth/login. Password incorrecto llega como ErrUnauthorized y usuario
// inexistente como StatusError 404.
func (c *Client) Login(ctx context.Context, username, password string) (model.LoginResult, error) {
	var out model.LoginResult
	err := c.send(ctx, http.MethodPost, "/auth/login", credentials{Username: username, Password: password}, &out, false)
	return out, err
}

// Verify GET /auth/verify: devuelve el usuario con el rol almacenado en el servidor.
func (c *Client) Verify(ctx context.Context) (model.User, error) {
	var out verifyResponse
	err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &out)
	return out.User, err
}

func (c *Client) ListLayouts(ctx context.Context) ([]model.Layout, error) {
	var out []model.Layout
	if err := c.do(ctx, http.MethodGet, "/layouts", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Layout{}
	}
	return out, nil
}

func (c *Client) CreateLayout(ctx context.Context, in model.LayoutDraft) (model.Layout, error) {
	var out model.Layout
	err := c.do(ctx, http.MethodPost, "/layouts", in, &out)
	return out, err
}

func (c *Client) GetLayout(ctx context.Context, id string) (model.LayoutDetail, error) {
	var out model.LayoutDetail
	err := c.do(ctx, http.MethodGet, "/layouts/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) UpdateLayout(ctx context.Context, id string, in model.LayoutPatch) (model.Layout, error) {
	var out model.Layout
	err := c.do(ctx, http.MethodPut, "/layouts/"+url.PathEscape(id), in, &out)
	return out, err
}

func (c *Client) DeleteLayout(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/layouts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AddComponent(ctx context.Context, layoutID string, in model.ComponentDraft) (model.Component, error) {
	var out model.Component
	err := c.do(ctx, http.MethodPost, "/layouts/"+url.PathEscape(layoutID)+"/components", in, &out)
	return out, err
}

func (c *Client) UpdateComponent(ctx context.Context, id string, in model.ComponentPatch) (model.Component, error) {
	var out model.Component
	err := c.do(ctx, http.MethodPut, "/components/"+url.PathEscape(id), in, &out)
	return out, err
}

func (c *Client) DeleteComponent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/components/"+url.PathEscape(id), nil, nil)
}

// Counts POST /data/counts.
func (c *Client) Counts(ctx context.Context, binCodes []string) (map[string]int, error) {
	var out map[string]int
	err := c.do(ctx, http.MethodPost, "/data/counts", binCodesRequest{BinCodes: binCodes}, &out)
	return out, err
}

// CassetteCounts POST /data/cassette-counts.
func (c *Client) CassetteCounts(ctx context.Context, binCodes []string) (map[string]int, error) {
	var out map[string]int
	err := c.do(ctx, http.MethodPost, "/data/cassette-counts", binCodesRequest{BinCodes: binCodes}, &out)
	return out, err
}

// WIP POST /data/wip.
func (c *Client) WIP(ctx context.Context, binCodes []string) (map[string][]model.Container, error) {
	var out map[string][]model.Container
	err := c.do(ctx, http.MethodPost, "/data/wip", binCodesRequest{BinCodes: binCodes}, &out)
	return out, err
}

// Locate POST /data/locate; sin coincidencia el servidor responde {}.
func (c *Client) Locate(ctx context.Context, q model.LocateQuery) (model.Location, error) {
	var out model.Location
	err := c.do(ctx, http.MethodPost, "/data/locate", q, &out)
	return out, err
}

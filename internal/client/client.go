// Package client is a typed consumer of the supplier API, for sibling
// services and tools. Calls go through a circuit breaker so a dead service
// fails fast.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"proveedores/internal/dto"
	"proveedores/internal/infra"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("proveedor no encontrado")

// Error is a non-2xx answer other than 404, carrying the server's message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("proveedores api: %d %s", e.Status, e.Message)
}

// Client calls the supplier API at BaseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cb         *infra.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCircuitBreaker replaces the default breaker.
func WithCircuitBreaker(cb *infra.CircuitBreaker) Option {
	return func(c *Client) { c.cb = cb }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cb == nil {
		cfg := infra.DefaultCBConfig()
		cfg.IsFailure = IsUnavailable
		c.cb = infra.NewCircuitBreaker(cfg)
	}
	return c
}

// IsUnavailable reports whether err means the service could not answer:
// transport failures and 5xx. 4xx answers prove the service is up.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return err != nil
}

// BreakerState exposes the breaker state for health reporting.
func (c *Client) BreakerState() infra.CBState { return c.cb.State() }

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	return c.cb.Execute(func() error {
		var body io.Reader
		if in != nil {
			raw, err := json.Marshal(in)
			if err != nil {
				return fmt.Errorf("proveedores api: marshal request: %w", err)
			}
			body = bytes.NewReader(raw)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return fmt.Errorf("proveedores api: create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("proveedores api: unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			var e struct {
				Error string `json:"error"`
			}
			_ = json.NewDecoder(resp.Body).Decode(&e)
			if e.Error == "" {
				e.Error = http.StatusText(resp.StatusCode)
			}
			return &Error{Status: resp.StatusCode, Message: e.Error}
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("proveedores api: decode response: %w", err)
		}
		return nil
	})
}

func proveedorPath(id string) string {
	return "/api/proveedores/" + url.PathEscape(id)
}

// Listar GET /api/proveedores?page=&limit=. Values < 1 are left to the server default.
func (c *Client) Listar(ctx context.Context, page, limit int) (*dto.ProveedorListResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/api/proveedores"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out dto.ProveedorListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Obtener(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	var out dto.ProveedorResponse
	if err := c.do(ctx, http.MethodGet, proveedorPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	var out dto.ProveedorResponse
	if err := c.do(ctx, http.MethodPost, "/api/proveedores", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Actualizar(ctx context.Context, id string, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	var out dto.ProveedorResponse
	if err := c.do(ctx, http.MethodPut, proveedorPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Eliminar(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, proveedorPath(id), nil, nil)
}

func (c *Client) list(ctx context.Context, path string) ([]dto.ProveedorResponse, error) {
	out := []dto.ProveedorResponse{}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Buscar uses the query form so any term (slashes included) is accepted.
func (c *Client) Buscar(ctx context.Context, termino string) ([]dto.ProveedorResponse, error) {
	return c.list(ctx, "/api/proveedores/buscar?q="+url.QueryEscape(termino))
}

func (c *Client) PorEstado(ctx context.Context, estado string) ([]dto.ProveedorResponse, error) {
	return c.list(ctx, "/api/proveedores/estado/"+url.PathEscape(estado))
}

func (c *Client) PorEstadoEntrega(ctx context.Context, estadoEntrega string) ([]dto.ProveedorResponse, error) {
	return c.list(ctx, "/api/proveedores/entrega/"+url.PathEscape(estadoEntrega))
}

func (c *Client) IncrementarEstadisticas(ctx context.Context, id string, req dto.IncrementarEstadisticasRequest) (*dto.ProveedorResponse, error) {
	var out dto.ProveedorResponse
	if err := c.do(ctx, http.MethodPatch, proveedorPath(id)+"/estadisticas", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var out dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

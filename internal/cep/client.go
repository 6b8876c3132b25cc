// Package cep resolves Brazilian postal codes into structured addresses via
// the public ViaCEP API.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mdesouza/encomendas/internal/domain"
)

// Endereco is the structured address returned to clients, field-mapped from
// the ViaCEP schema. It is transient and never persisted.
type Endereco struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Resolver translates a postal code into a structured address.
type Resolver interface {
	Lookup(ctx context.Context, code string) (*Endereco, error)
}

// Client is a ViaCEP HTTP client. Every lookup runs under a bounded deadline
// and transient failures are retried a few times with backoff.
type Client struct {
	baseURL string
	timeout time.Duration
	session *http.Client
}

// Compile-time check to ensure Client implements Resolver.
var _ Resolver = (*Client)(nil)

// NewClient creates a ViaCEP client. baseURL has no trailing slash
// (e.g. "https://viacep.com.br"); timeout bounds the whole lookup including
// retries.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		session: &http.Client{},
	}
}

// viaCEPResponse mirrors the upstream payload. Erro stays raw because ViaCEP
// has reported it both as the string "true" and as a boolean; its presence is
// the not-found marker either way.
type viaCEPResponse struct {
	Cep        string          `json:"cep"`
	Logradouro string          `json:"logradouro"`
	Bairro     string          `json:"bairro"`
	Localidade string          `json:"localidade"`
	Uf         string          `json:"uf"`
	Erro       json.RawMessage `json:"erro"`
}

// Lookup strips hyphens and surrounding whitespace from code and queries
// ViaCEP for the matching address.
func (c *Client) Lookup(ctx context.Context, code string) (*Endereco, error) {
	const op = "cep.lookup"

	code = strings.ReplaceAll(strings.TrimSpace(code), "-", "")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, url.PathEscape(code))

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, domain.Upstream(err, op, "Erro ao consultar o endereço")
	}
	defer resp.Body.Close()

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.Upstream(err, op, "Erro ao consultar o endereço")
	}

	if len(payload.Erro) > 0 {
		return nil, domain.NotFound(op, "CEP não encontrado")
	}

	return &Endereco{
		PostalCode:   payload.Cep,
		Street:       payload.Logradouro,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.Uf,
	}, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff while respecting context cancellation.
func (c *Client) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case 429, 500, 502, 503, 504:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

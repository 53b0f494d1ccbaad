// Package viacep resolves Brazilian postal codes through the ViaCEP JSON API.
package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"time"

	"rental/internal/core/domain/model/kernel"
	"rental/internal/pkg/errs"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://viacep.com.br"
	DefaultTimeout = 5 * time.Second
)

// Client implements ports.AddressLookup.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// response mirrors the ViaCEP payload. Erro is true, or the string "true",
// when the postal code is well formed but unknown.
type response struct {
	UF         string `json:"uf"`
	Localidade string `json:"localidade"`
	GIA        string `json:"gia"`
	Erro       any    `json:"erro,omitempty"`
}

func (r response) unknown() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// NewClient validates baseURL and applies DefaultTimeout when timeout is not positive.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse address lookup url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, errors.New("address lookup url must be absolute")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("component", "viacep_client")),
	}, nil
}

// Resolve returns the region, city and fee coefficient of postalCode. Every
// failure is an errs.AddressResolutionError.
func (c *Client) Resolve(ctx context.Context, postalCode kernel.PostalCode) (kernel.Address, error) {
	if err := postalCode.Validate(); err != nil {
		return kernel.Address{}, err
	}

	data, err := c.fetch(ctx, postalCode)
	if err != nil {
		if isTimeout(err) {
			err = errors.Join(errs.ErrAddressLookupTimeout, err)
		}
		c.logger.Warn("postal code lookup failed",
			zap.String("postalCode", postalCode.String()),
			zap.Error(err),
		)
		return kernel.Address{}, errs.NewAddressResolutionError(postalCode.String(), err)
	}

	if data.unknown() {
		return kernel.Address{}, errs.NewAddressResolutionError(postalCode.String(), errs.ErrUnknownPostalCode)
	}

	addr, err := kernel.NewAddress(postalCode, data.UF, data.Localidade, data.GIA)
	if err != nil {
		return kernel.Address{}, errs.NewAddressResolutionError(postalCode.String(), err)
	}
	return addr, nil
}

func (c *Client) fetch(ctx context.Context, postalCode kernel.PostalCode) (response, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/ws/", postalCode.Digits(), "/json/") + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return response{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var data response
		if err = json.Unmarshal(body, &data); err != nil {
			return response{}, fmt.Errorf("decode address lookup response: %w", err)
		}
		return data, nil
	case http.StatusBadRequest, http.StatusNotFound:
		return response{}, errs.ErrUnknownPostalCode
	default:
		return response{}, fmt.Errorf("address lookup returned %s", resp.Status)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

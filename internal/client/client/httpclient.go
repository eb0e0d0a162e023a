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
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/dto"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) setTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

func (c *HTTPClient) LoggedIn() bool {
	access, _ := c.tokens()
	return access != ""
}

// do sends body as JSON and decodes the envelope's data into out.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		if len(env.Data) > 0 {
			_ = json.Unmarshal(env.Data, &apiErr.Fields)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return errors.Join(ErrUnauthorized, apiErr)
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// doAuthorized calls a protected route. A 401 triggers one refresh and retry.
func (c *HTTPClient) doAuthorized(ctx context.Context, method, path string, body, out any) error {
	access, refresh := c.tokens()
	if access == "" {
		return ErrNotLoggedIn
	}

	err := c.do(ctx, method, path, access, body, out)
	if !errors.Is(err, ErrUnauthorized) || refresh == "" {
		return err
	}

	if err := c.refresh(ctx, refresh); err != nil {
		return err
	}

	access, _ = c.tokens()
	return c.do(ctx, method, path, access, body, out)
}

func (c *HTTPClient) refresh(ctx context.Context, refreshToken string) error {
	var resp dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", "", dto.RefreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.setTokens("", "")
		}
		return err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return &resp, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.SignUpResponse, error) {
	path := "/auth/signup?role=" + url.QueryEscape(strings.ToLower(string(req.Role())))

	var resp dto.SignUpResponse
	if err := c.do(ctx, http.MethodPost, path, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*dto.MeResponse, error) {
	var resp dto.MeResponse
	if err := c.doAuthorized(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout forgets the local tokens even when the server call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.doAuthorized(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.setTokens("", "")
	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

// Package gateway is the HTTP client for the remote expense API. Every data
// operation is a fresh round trip: no retry, no backoff, no caching. Each
// call is bounded by the configured client timeout.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kharcha/internal/core"
	"kharcha/internal/log"
)

// Credentials supplies the bearer token for authenticated calls and is told
// to expire itself when the server answers 401. The forced-logout policy
// lives here so no individual view has to remember it.
type Credentials interface {
	Token(ctx context.Context) (string, bool, error)
	Expire(ctx context.Context) error
}

type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	logger  *log.Logger
}

// Attachment is one optional multipart file on an expense submission.
type Attachment struct {
	Field    string // "transaction_image" or "bill_image"
	Filename string
	Reader   io.Reader
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the payload of a successful POST /login/.
type LoginResult struct {
	Token string    `json:"access"`
	User  core.User `json:"user"`
}

type addFundsRequest struct {
	Email string     `json:"email"`
	Funds core.Money `json:"funds"`
}

func New(baseURL string, timeout time.Duration, creds Credentials, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		logger:  logger.WithComponent(log.ComponentGateway),
	}
}

// Login exchanges credentials for a bearer token and profile. It does not
// persist anything; that is the session store's job. Any non-2xx response
// reads as invalid credentials to the caller, with the underlying status
// kept in the log.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return LoginResult{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login/", bytes.NewReader(body))
	if err != nil {
		return LoginResult{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "Login rejected",
			log.FieldOperation, log.OpLogin,
			log.FieldStatusCode, resp.StatusCode)
		return LoginResult{}, fmt.Errorf("%w (status %d)", ErrInvalidCredentials, resp.StatusCode)
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return LoginResult{}, fmt.Errorf("decode login response: %w", err)
	}
	return result, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	var categories []core.Category
	if err := c.get(ctx, "/categories/", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	var expenses []core.Expense
	if err := c.get(ctx, "/expenses/", &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (c *Client) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	var expense core.Expense
	if err := c.get(ctx, "/expenses/"+strconv.FormatInt(id, 10)+"/", &expense); err != nil {
		return core.Expense{}, err
	}
	return expense, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := c.get(ctx, "/user/details/getall/", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddFunds credits an amount to the user identified by email. Admin only on
// the server side; the shell additionally gates the view client-side.
func (c *Client) AddFunds(ctx context.Context, fr core.FundsRequest) error {
	body, err := json.Marshal(addFundsRequest{Email: fr.Email, Funds: fr.Amount})
	if err != nil {
		return fmt.Errorf("encode add-funds request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/add-funds/", bytes.NewReader(body), "application/json", nil)
}

// CreateExpense submits a draft as a single multipart request with up to two
// optional image attachments.
func (c *Client) CreateExpense(ctx context.Context, draft core.ExpenseDraft, attachments []Attachment) (core.Expense, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"description":    draft.Description,
		"price":          draft.Price.String(),
		"quantity":       strconv.Itoa(draft.Quantity),
		"payment_mode":   string(draft.PaymentMode),
		"category_id":    strconv.FormatInt(draft.CategoryID, 10),
		"subcategory_id": strconv.FormatInt(draft.SubcategoryID, 10),
		"expense_date":   draft.Date.Format(time.RFC3339),
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return core.Expense{}, fmt.Errorf("write field %s: %w", name, err)
		}
	}
	for _, a := range attachments {
		part, err := mw.CreateFormFile(a.Field, a.Filename)
		if err != nil {
			return core.Expense{}, fmt.Errorf("create form file %s: %w", a.Field, err)
		}
		if _, err := io.Copy(part, a.Reader); err != nil {
			return core.Expense{}, fmt.Errorf("copy attachment %s: %w", a.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return core.Expense{}, fmt.Errorf("finalize multipart body: %w", err)
	}

	var created core.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses/", &buf, mw.FormDataContentType(), &created); err != nil {
		return core.Expense{}, err
	}
	return created, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// do issues one authenticated round trip. A 401 expires the session before
// the error reaches the caller, so the forced-logout policy holds no matter
// which view made the call.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	token, ok, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Round trip",
		log.FieldMethod, method,
		log.FieldURL, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.WarnContext(ctx, "Unauthorized response, expiring session",
			log.FieldMethod, method, log.FieldURL, path)
		if expireErr := c.creds.Expire(ctx); expireErr != nil {
			c.logger.ErrorContext(ctx, "Failed to expire session", log.FieldError, expireErr)
		}
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

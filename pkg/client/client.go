// Package client is a typed Go client for the JobHive HTTP API.
// It keeps the issued token pair and attaches the access token to
// every authenticated call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

// Option настраивает клиент при создании
type Option func(*Client)

// WithHTTPClient подменяет транспорт (таймауты, прокси, тесты)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken задает готовый access-токен без логина
func WithToken(token string) Option {
	return func(c *Client) { c.accessToken = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError - ошибка, возвращенная сервером
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Типизированные ответы API

type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Location    string   `json:"location"`
	Bio         string   `json:"bio"`
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	SavedJobs   []string `json:"savedJobs"`
	AppliedJobs []string `json:"appliedJobs"`
}

type Owner struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Salary      float64   `json:"salary"`
	SalaryType  string    `json:"salaryType"`
	Negotiable  bool      `json:"negotiable"`
	JobType     string    `json:"jobType"`
	Tags        []string  `json:"tags"`
	Skills      []string  `json:"skills"`
	Status      string    `json:"status"`
	PostedBy    Owner     `json:"postedBy"`
	Likes       []string  `json:"likes"`
	Applicants  []string  `json:"applicants"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	ResumeURL   string    `json:"resumeUrl"`
	PhoneNumber string    `json:"phoneNumber"`
	CoverLetter string    `json:"coverLetter"`
	AppliedAt   time.Time `json:"appliedAt"`
	Status      string    `json:"status"`
}

type authResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Login аутентифицирует клиента, токены запоминаются
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return nil, err
	}

	c.setTokens(resp.Token, resp.RefreshToken)
	return resp.User, nil
}

// Register создает аккаунт и сразу аутентифицирует клиента
func (c *Client) Register(ctx context.Context, name, email, password, role string) (*User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	if role != "" {
		body["role"] = role
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &resp); err != nil {
		return nil, err
	}

	c.setTokens(resp.Token, resp.RefreshToken)
	return resp.User, nil
}

// Refresh обменивает refresh-токен на новую пару
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	refresh := c.refreshToken
	c.mu.RUnlock()

	if refresh == "" {
		return &APIError{StatusCode: http.StatusUnauthorized, Message: "no refresh token"}
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", map[string]string{"refreshToken": refresh}, &resp); err != nil {
		return err
	}

	c.setTokens(resp.Token, resp.RefreshToken)
	return nil
}

// Logout гасит refresh-токен и сбрасывает состояние клиента
func (c *Client) Logout(ctx context.Context) error {
	c.mu.RLock()
	refresh := c.refreshToken
	c.mu.RUnlock()

	if refresh != "" {
		if err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", map[string]string{"refreshToken": refresh}, nil); err != nil {
			return err
		}
	}

	c.setTokens("", "")
	return nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListJobs возвращает открытые вакансии
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var resp struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// SearchJobs ищет по тегам (любой из), локации и заголовку
func (c *Client) SearchJobs(ctx context.Context, tags []string, location, title string) ([]Job, error) {
	query := url.Values{}
	if len(tags) > 0 {
		query.Set("tags", strings.Join(tags, ","))
	}
	if location != "" {
		query.Set("location", location)
	}
	if title != "" {
		query.Set("title", title)
	}

	path := "/api/v1/jobs/search"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// GetJob возвращает карточку вакансии
func (c *Client) GetJob(ctx context.Context, jobID string) (*Job, error) {
	var resp struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/jobs/"+jobID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

// LikeJob переключает лайк, возвращает обновленную вакансию
func (c *Client) LikeJob(ctx context.Context, jobID string) (*Job, error) {
	var resp struct {
		Job Job `json:"job"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/v1/jobs/"+jobID+"/like", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

// Apply отправляет отклик с файлом резюме multipart-формой
func (c *Client) Apply(ctx context.Context, jobID, phoneNumber, coverLetter, resumeName string, resume io.Reader) (*Application, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("phoneNumber", phoneNumber); err != nil {
		return nil, err
	}
	if coverLetter != "" {
		if err := writer.WriteField("coverLetter", coverLetter); err != nil {
			return nil, err
		}
	}

	part, err := writer.CreateFormFile("resume", filepath.Base(resumeName))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, resume); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/v1/jobs/"+jobID+"/apply", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	var resp struct {
		Application Application `json:"application"`
	}
	if err := c.send(req, &resp); err != nil {
		return nil, err
	}
	return &resp.Application, nil
}

func (c *Client) setTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

func (c *Client) authorize(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var wrapped struct {
			Error *APIError `json:"error"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Error != nil {
			apiErr.Code = wrapped.Error.Code
			apiErr.Message = wrapped.Error.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

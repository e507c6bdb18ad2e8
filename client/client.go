// Package client talks to the subscription API the way the storefront app
// does: it prices channels, gates terms screens, uploads the ID document and
// submits registrations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
)

const uploadField = "file"

var (
	ErrFileTooLarge     = errors.New("file exceeds size limit")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrInvalidUpload    = errors.New("invalid upload request")
	ErrServer           = errors.New("server error, retry")
	ErrTermsNotAccepted = errors.New("terms must be accepted before registering")
	ErrMissingUploadURL = errors.New("upload response did not include a url")
)

// APIError is a non-2xx response outside the upload status translations.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	inFlight   atomic.Int32
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Busy reports whether a call is in flight. The triggering control stays
// disabled while it is true.
func (c *Client) Busy() bool {
	return c.inFlight.Load() > 0
}

func (c *Client) begin() func() {
	c.inFlight.Add(1)
	return func() { c.inFlight.Add(-1) }
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadDocument sends payload to the ID document endpoint and returns the
// stored URL. Failures are never retried.
func (c *Client) UploadDocument(ctx context.Context, payload FilePayload) (string, error) {
	defer c.begin()()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := payload.AttachTo(ctx, mw, uploadField); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploads/id-document", &body)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusRequestEntityTooLarge:
		return "", ErrFileTooLarge
	case http.StatusUnsupportedMediaType:
		return "", ErrUnsupportedType
	case http.StatusBadRequest:
		return "", ErrInvalidUpload
	case http.StatusInternalServerError:
		return "", ErrServer
	default:
		return "", fmt.Errorf("upload failed: %w", readAPIError(resp))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("upload failed: %w", ErrMissingUploadURL)
	}
	return out.URL, nil
}

// RegistrationForm is what the subscriber filled in on a channel screen.
type RegistrationForm struct {
	Name                 string
	Email                string
	TelegramUsername     string
	ChannelType          string
	SubscriptionDuration string
	Terms                *TermsGate
}

type registrationRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	TelegramUsername     string `json:"telegram_username"`
	ChannelType          string `json:"channel_type,omitempty"`
	SubscriptionDuration string `json:"subscription_duration,omitempty"`
	PlanAmount           string `json:"plan_amount,omitempty"`
	IDDocumentURL        string `json:"id_document_url"`
	TermsAccepted        bool   `json:"terms_accepted"`
}

// Register uploads the document and then submits the registration with the
// returned URL. The submission is never sent if the upload fails.
func (c *Client) Register(ctx context.Context, form RegistrationForm, document FilePayload) (*models.Subscription, error) {
	return c.register(ctx, "/api/subscriptions", form.Terms, document, registrationRequest{
		Name:                 form.Name,
		Email:                form.Email,
		TelegramUsername:     form.TelegramUsername,
		ChannelType:          form.ChannelType,
		SubscriptionDuration: form.SubscriptionDuration,
	})
}

// ProfitPlanForm is the profit-plan program registration.
type ProfitPlanForm struct {
	Name             string
	Email            string
	TelegramUsername string
	PlanAmount       string
	Terms            *TermsGate
}

// RegisterProfitPlan is Register for the profit-plan program.
func (c *Client) RegisterProfitPlan(ctx context.Context, form ProfitPlanForm, document FilePayload) (*models.Subscription, error) {
	return c.register(ctx, "/api/profit-plans/register", form.Terms, document, registrationRequest{
		Name:             form.Name,
		Email:            form.Email,
		TelegramUsername: form.TelegramUsername,
		PlanAmount:       form.PlanAmount,
	})
}

func (c *Client) register(ctx context.Context, path string, terms *TermsGate, document FilePayload, body registrationRequest) (*models.Subscription, error) {
	if terms == nil || !terms.Accepted() {
		return nil, ErrTermsNotAccepted
	}
	defer c.begin()()

	url, err := c.UploadDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	body.IDDocumentURL = url
	body.TermsAccepted = true

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit registration: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, readAPIError(resp)
	}

	var sub models.Subscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("decode registration: %w", err)
	}
	return &sub, nil
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

// Package identity calls the document verification service that extracts and
// checks the details on a renter's identity document.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gearshare-backend/internal/domain"
	"gearshare-backend/internal/logger"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

const analyzePath = "/v1/documents/analyze"

type analyzeRequest struct {
	DocumentURL  string `json:"document_url"`
	ExpectedName string `json:"expected_name"`
}

type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *fasthttp.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "gearshare-backend",
			MaxIdleConnDuration: time.Minute,
		},
	}
}

// Analyze submits the document for verification. A flagged document is a
// successful call; only transport and service failures return an error.
func (c *Client) Analyze(ctx context.Context, documentURL, expectedName string) (*domain.IdentityAnalysisResult, error) {
	body, err := json.Marshal(analyzeRequest{DocumentURL: documentURL, ExpectedName: expectedName})
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + analyzePath)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.SetBody(body)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	logger.ExternalServiceCall("identity", "Analyze", "document", documentURL)
	err = c.http.DoDeadline(req, resp, deadline)
	if err == nil && resp.StatusCode() != fasthttp.StatusOK {
		err = fmt.Errorf("verification service returned %d: %s", resp.StatusCode(), truncate(resp.Body(), 200))
	}
	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			err = fmt.Errorf("verification service timed out: %w", err)
		}
		logger.ExternalServiceResult("identity", "Analyze", err)
		return nil, err
	}

	result := &domain.IdentityAnalysisResult{}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		err = fmt.Errorf("decode verification result: %w", err)
		logger.ExternalServiceResult("identity", "Analyze", err)
		return nil, err
	}
	if err := validate(result); err != nil {
		logger.ExternalServiceResult("identity", "Analyze", err)
		return nil, err
	}

	logger.ExternalServiceResult("identity", "Analyze", nil, "status", result.VerificationStatus)
	return result, nil
}

func validate(r *domain.IdentityAnalysisResult) error {
	switch r.VerificationStatus {
	case domain.VerificationVerified, domain.VerificationFlagged, domain.VerificationManualCheck:
		return nil
	}
	return fmt.Errorf("verification service returned unknown status %q", r.VerificationStatus)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

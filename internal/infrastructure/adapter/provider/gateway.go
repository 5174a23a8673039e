package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-processor/internal/domain/port/core"
)

// Gateway executes signed deposit requests against the provider over HTTP
// and classifies the outcome. Connect and read timeouts are explicit so a
// slow or silent provider cannot hold a request indefinitely. No retries
// are performed here.
type Gateway struct {
	client     *http.Client
	depositURL string
	logger     coreport.Logger
}

// NewGateway creates a provider gateway with explicit timeouts
func NewGateway(depositURL string, connectTimeout, readTimeout time.Duration, logger coreport.Logger) *Gateway {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
	}

	return &Gateway{
		client: &http.Client{
			Transport: transport,
			Timeout:   connectTimeout + readTimeout,
		},
		depositURL: depositURL,
		logger:     logger,
	}
}

// responseEnvelope is the wire shape of a provider success answer
type responseEnvelope struct {
	Version string `json:"version"`
	Result  *struct {
		UUID      string                     `json:"uuid"`
		Method    string                     `json:"method"`
		Signature string                     `json:"signature"`
		Data      entity.DepositResponseData `json:"data"`
	} `json:"result"`
}

// Deposit sends the envelope and classifies the HTTP outcome per the
// gateway contract
func (g *Gateway) Deposit(ctx context.Context, envelope *entity.Envelope) (*entity.DepositResult, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, errs.NewGenericError(err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, g.depositURL, bytes.NewReader(body))
	if err != nil {
		return nil, errs.NewGenericError(err)
	}
	request.Header.Set("Content-Type", "application/json")

	g.logger.Info("Calling deposit provider", map[string]any{
		"url": g.depositURL,
	})

	response, err := g.client.Do(request)
	if err != nil {
		g.logger.Error("Provider call failed at transport level", map[string]any{
			"url":   g.depositURL,
			"error": err.Error(),
		})
		return nil, errs.NewProviderUnavailableError(err)
	}
	defer func() { _ = response.Body.Close() }()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errs.NewProviderUnavailableError(err)
	}

	// 503/504 normalize to provider-unavailable regardless of body content
	if response.StatusCode == http.StatusServiceUnavailable ||
		response.StatusCode == http.StatusGatewayTimeout {
		g.logger.Error("Provider unavailable", map[string]any{
			"status": response.StatusCode,
		})
		return nil, errs.NewProviderUnavailableError(
			fmt.Errorf("provider answered status %d", response.StatusCode))
	}

	if response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices {
		return g.parseSuccess(responseBody)
	}

	if response.StatusCode >= http.StatusBadRequest {
		return nil, g.parseError(responseBody, response.StatusCode)
	}

	g.logger.Error("Unexpected provider response", map[string]any{
		"status": response.StatusCode,
		"body":   string(responseBody),
	})
	return nil, errs.NewInvalidResponseError(
		fmt.Errorf("unexpected provider status %d", response.StatusCode))
}

// parseSuccess parses a 2xx body. A successful result must contain both the
// provider order identifier and the redirect URL; absence of either is an
// invalid-response error even though the HTTP layer reported success.
func (g *Gateway) parseSuccess(body []byte) (*entity.DepositResult, error) {
	var parsed responseEnvelope
	if err := json.Unmarshal(body, &parsed); err != nil {
		g.logger.Error("Cannot parse provider success body", map[string]any{
			"error": err.Error(),
		})
		return nil, errs.NewInvalidResponseError(err)
	}

	if parsed.Result == nil || parsed.Result.Data.OrderID == "" || parsed.Result.Data.URL == "" {
		g.logger.Error("Provider success response is structurally incomplete", map[string]any{
			"body": string(body),
		})
		return nil, errs.NewInvalidResponseError(
			fmt.Errorf("missing order id or redirect URL in provider response"))
	}

	return &entity.DepositResult{
		UUID:      parsed.Result.UUID,
		Method:    parsed.Result.Method,
		Signature: parsed.Result.Signature,
		Data:      parsed.Result.Data,
	}, nil
}

// parseError surfaces the provider's own error code and message from a
// 4xx/5xx body, preserving the HTTP status. An unparseable error body falls
// back to the invalid-response classification.
func (g *Gateway) parseError(body []byte, httpStatus int) error {
	var parsed entity.Envelope
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Code != "" {
		g.logger.Error("Provider answered with error envelope", map[string]any{
			"status":        httpStatus,
			"error_code":    parsed.Error.Code,
			"error_message": parsed.Error.Message,
		})
		return errs.NewProviderError(parsed.Error.Code, parsed.Error.Message, httpStatus)
	}

	g.logger.Error("Provider error body is unparseable", map[string]any{
		"status": httpStatus,
		"body":   string(body),
	})
	return errs.NewInvalidResponseError(
		fmt.Errorf("unparseable provider error body, status %d", httpStatus))
}

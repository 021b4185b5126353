// Package client implements the authenticated-fetch layer over the
// BTrust customer-data API. Every call goes out with the bearer token
// held by the session store; the error mapping decides whether a failure
// invalidates the session.
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
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Team-SMDRS/customer-dashboard/internal/domain"
	"github.com/Team-SMDRS/customer-dashboard/internal/infra/observability"
	"github.com/Team-SMDRS/customer-dashboard/internal/session"
)

var tracer = otel.Tracer("bankclient")

const (
	loginPath    = "/customer_data/login"
	detailsPath  = "/customer_data/customers_details"
	txReportPath = "/api/pdf-reports/customers/my_transactions_report/pdf"
)

// Bank wraps HTTP calls to the bank API. The session store is an
// explicit dependency: the client reads the credential from it on every
// authenticated call and clears it when the backend rejects the token.
type Bank struct {
	httpClient *http.Client
	baseURL    string
	session    *session.Store
	cb         *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewBank creates a bank API client.
func NewBank(httpClient *http.Client, baseURL string, sess *session.Store, cb *gobreaker.CircuitBreaker, metrics *observability.Metrics, logger *zap.Logger) *Bank {
	return &Bank{
		httpClient: httpClient,
		baseURL:    baseURL,
		session:    sess,
		cb:         cb,
		metrics:    metrics,
		logger:     logger,
	}
}

// Login exchanges credentials for a bearer token and stores it in the
// session. A rejected login surfaces the backend's detail message
// verbatim; a transport failure is reported as transient.
func (c *Bank) Login(ctx context.Context, username, password string) (*domain.LoginResponse, error) {
	ctx, span := tracer.Start(ctx, "Bank.Login")
	defer span.End()
	span.SetAttributes(attribute.String("username", username))

	start := time.Now()
	defer func() { c.metrics.RecordRequestDuration("login", time.Since(start)) }()

	payload, err := json.Marshal(domain.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, body, err := c.execute(req)
	if err != nil {
		c.metrics.IncrRequest("login", "transient")
		return nil, &domain.ErrTransient{Op: "login", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncrRequest("login", "auth_error")
		detail := "Login failed"
		var apiErr domain.APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Detail != "" {
			detail = apiErr.Detail
		}
		c.logger.Warn("login rejected",
			zap.String("username", username),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &domain.ErrAuth{Message: detail}
	}

	var loginResp domain.LoginResponse
	if err := json.Unmarshal(body, &loginResp); err != nil {
		c.metrics.IncrRequest("login", "error")
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if loginResp.AccessToken == "" {
		c.metrics.IncrRequest("login", "error")
		return nil, fmt.Errorf("login response carried no access token")
	}

	if err := c.session.Set(loginResp.AccessToken); err != nil {
		return nil, fmt.Errorf("store session credential: %w", err)
	}

	c.metrics.IncrRequest("login", "success")
	c.logger.Info("customer logged in", zap.String("username", username))
	return &loginResp, nil
}

// GetCustomerDetails fetches the full dashboard aggregate. A rejected
// token clears the session before the error is returned.
func (c *Bank) GetCustomerDetails(ctx context.Context) (*domain.CustomerData, error) {
	ctx, span := tracer.Start(ctx, "Bank.GetCustomerDetails")
	defer span.End()

	body, err := c.doAuthenticated(ctx, "customer_data", detailsPath, nil, true)
	if err != nil {
		return nil, err
	}

	var data domain.CustomerData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode customer data: %w", err)
	}
	data.Normalize()
	return &data, nil
}

// GetTransactionsReport fetches the PDF transaction report for the given
// date range. Unlike GetCustomerDetails, a rejection here never clears
// the session: a failed report is a local error, not a logout.
func (c *Bank) GetTransactionsReport(ctx context.Context, startDate, endDate string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Bank.GetTransactionsReport")
	defer span.End()
	span.SetAttributes(
		attribute.String("report.start_date", startDate),
		attribute.String("report.end_date", endDate),
	)

	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	return c.doAuthenticated(ctx, "report", txReportPath, query, false)
}

// doAuthenticated executes a GET with the bearer header and maps the
// outcome to the domain error taxonomy. invalidate controls whether a
// 401/403 clears the session.
func (c *Bank) doAuthenticated(ctx context.Context, operation, path string, query url.Values, invalidate bool) ([]byte, error) {
	start := time.Now()
	defer func() { c.metrics.RecordRequestDuration(operation, time.Since(start)) }()

	token, ok := c.session.Get()
	if !ok {
		// No credential means no network call at all.
		c.metrics.IncrRequest(operation, "missing_credential")
		return nil, &domain.ErrMissingCredential{}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("accept", "application/json")

	requestID := uuid.NewString()
	resp, body, err := c.execute(req)
	if err != nil {
		c.metrics.IncrRequest(operation, "transient")
		c.logger.Error("bank api: request failed",
			zap.String("operation", operation),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, &domain.ErrTransient{Op: operation, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.metrics.IncrRequest(operation, "auth_error")
		c.logger.Warn("bank api: token rejected",
			zap.String("operation", operation),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
		)
		if invalidate {
			if clearErr := c.session.Clear(); clearErr != nil {
				c.logger.Error("bank api: failed to clear session", zap.Error(clearErr))
			}
			c.metrics.IncrSessionClear()
		}
		detail := ""
		var apiErr domain.APIError
		if json.Unmarshal(body, &apiErr) == nil {
			detail = apiErr.Detail
		}
		return nil, &domain.ErrAuth{Message: detail}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncrRequest(operation, "error")
		c.logger.Warn("bank api: non-2xx response",
			zap.String("operation", operation),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(body, 512)),
		)
		return nil, &domain.ErrExternalService{
			Service: "bank-api/" + operation,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("status %d", resp.StatusCode),
		}
	}

	c.metrics.IncrRequest(operation, "success")
	c.logger.Debug("bank api: request OK",
		zap.String("operation", operation),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return body, nil
}

// execute runs the request through the circuit breaker and reads the
// full response body. An open breaker is reported like any other
// transport failure.
func (c *Bank) execute(req *http.Request) (*http.Response, []byte, error) {
	result, err := c.cb.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &response{resp: resp, body: body}, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, nil, fmt.Errorf("bank api unavailable: %w", err)
		}
		return nil, nil, err
	}

	r := result.(*response)
	return r.resp, r.body, nil
}

type response struct {
	resp *http.Response
	body []byte
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testbuddy-checkout/internal/config"
	"testbuddy-checkout/internal/model"
	"time"
)

type ErrorKind string

const (
	KindTransport ErrorKind = "transport" // request never got a response
	KindStatus    ErrorKind = "status"    // non-2xx response
	KindDecode    ErrorKind = "decode"    // body was not the expected JSON
	KindEmpty     ErrorKind = "empty"     // 2xx but a required field was missing
)

// APIError is returned by every TestBuddyClient call that fails.
type APIError struct {
	Op         string
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("testbuddy %s: status=%d body=%s", e.Op, e.StatusCode, e.Body)
	case KindEmpty:
		return fmt.Sprintf("testbuddy %s: empty response", e.Op)
	}
	return fmt.Sprintf("testbuddy %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

var ErrEmptyResponse = errors.New("empty response")

type TestBuddyClient interface {
	VerifyOTP(ctx context.Context, mobile, otp string) (string, error)
	GetPaymentKey(ctx context.Context, token string) (string, error)
	CreateOrder(ctx context.Context, token string, req *model.CreateOrderRequest) (*model.OrderRecord, error)
	VerifyOrder(ctx context.Context, token string, req *model.VerifyOrderRequest) (*model.VerificationResult, error)
}

type testBuddyClientImpl struct {
	httpClient *http.Client
	baseApiURL string
}

func NewTestBuddyClient(cfg *config.TestBuddy) TestBuddyClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &testBuddyClientImpl{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseApiURL: cfg.BaseApiURL,
	}
}

func (c *testBuddyClientImpl) VerifyOTP(ctx context.Context, mobile, otp string) (string, error) {
	var res model.VerifyOTPResponse
	err := c.post(ctx, "verify otp", "/auth/verifyotp", "", &model.VerifyOTPRequest{
		Mobile: mobile,
		OTP:    otp,
	}, &res)
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", &APIError{Op: "verify otp", Kind: KindEmpty, Err: ErrEmptyResponse}
	}

	return res.Token, nil
}

func (c *testBuddyClientImpl) GetPaymentKey(ctx context.Context, token string) (string, error) {
	var res model.PaymentKeyResponse
	if err := c.post(ctx, "payment key", "/payment/key", token, struct{}{}, &res); err != nil {
		return "", err
	}
	if res.Key == "" {
		return "", &APIError{Op: "payment key", Kind: KindEmpty, Err: ErrEmptyResponse}
	}

	return res.Key, nil
}

func (c *testBuddyClientImpl) CreateOrder(ctx context.Context, token string, req *model.CreateOrderRequest) (*model.OrderRecord, error) {
	var res model.OrderRecord
	if err := c.post(ctx, "create order", "/order/create", token, req, &res); err != nil {
		return nil, err
	}
	// a missing amount decodes to zero
	if res.RazorpayOrderID == "" || res.TransactionID == "" || !res.Amount.IsPositive() {
		return nil, &APIError{Op: "create order", Kind: KindEmpty, Err: ErrEmptyResponse}
	}

	return &res, nil
}

func (c *testBuddyClientImpl) VerifyOrder(ctx context.Context, token string, req *model.VerifyOrderRequest) (*model.VerificationResult, error) {
	var res model.VerificationResult
	if err := c.post(ctx, "verify order", "/order/verify", token, req, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *testBuddyClientImpl) post(ctx context.Context, op, path, token string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseApiURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Op: op, Kind: KindTransport, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Op: op, Kind: KindStatus, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Op: op, Kind: KindDecode, StatusCode: resp.StatusCode, Body: string(raw), Err: err}
	}

	return nil
}

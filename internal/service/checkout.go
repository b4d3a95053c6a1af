package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testbuddy-checkout/internal/client"
	"testbuddy-checkout/internal/config"
	"testbuddy-checkout/internal/model"
	"testbuddy-checkout/internal/repository"
	"testbuddy-checkout/internal/sdk"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Checkout is what the widget needs to open, plus the session to report back to.
type Checkout struct {
	SessionID string
	AttemptID string
	Options   *model.CheckoutOptions
	ExpiresAt time.Time
}

type CheckoutService interface {
	// Begin runs verify-OTP, fetch-key and create-order, and returns the widget options.
	Begin(ctx context.Context, form *model.FormState, n Notifier) (*Checkout, error)
	// Complete submits the widget's payment result for server-side verification.
	Complete(ctx context.Context, sessionID string, result *model.PaymentResult, n Notifier) (*model.VerificationResult, error)
}

type checkoutServiceImpl struct {
	testBuddyClient client.TestBuddyClient
	loader          sdk.Loader
	attemptRepo     repository.AttemptRepository
	sessions        SessionStore
	validate        *validator.Validate
	log             *zap.SugaredLogger

	backend   config.TestBuddy
	checkout  config.Checkout
	scriptURL string
	keySecret string
	now       func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewCheckoutService(
	cfg *config.Config,
	testBuddyClient client.TestBuddyClient,
	loader sdk.Loader,
	attemptRepo repository.AttemptRepository,
	sessions SessionStore,
	log *zap.SugaredLogger,
) CheckoutService {
	return &checkoutServiceImpl{
		testBuddyClient: testBuddyClient,
		loader:          loader,
		attemptRepo:     attemptRepo,
		sessions:        sessions,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		log:             log,
		backend:         cfg.TestBuddy,
		checkout:        cfg.Checkout,
		scriptURL:       cfg.SDK.ScriptURL,
		keySecret:       cfg.Razorpay.KeySecret,
		now:             time.Now,
		inflight:        make(map[string]struct{}),
	}
}

type payerForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

func (s *checkoutServiceImpl) Begin(ctx context.Context, form *model.FormState, n Notifier) (*Checkout, error) {
	payer, err := s.validateForm(form)
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			n.Error(MsgInvalidEmail)
		} else {
			n.Error(MsgMissingFields)
		}
		return nil, err
	}

	if !s.loader.Load(ctx, s.scriptURL) {
		n.Error(MsgSDKUnavailable)
		return nil, ErrSDKUnavailable
	}

	if !form.SetLoading(true) {
		n.Error(MsgInFlight)
		return nil, ErrInFlight
	}
	defer form.SetLoading(false)

	payerKey := strings.ToLower(payer.Email)
	if !s.acquire(payerKey) {
		n.Error(MsgInFlight)
		return nil, ErrInFlight
	}
	defer s.release(payerKey)

	attempt := s.startAttempt(ctx, payer, form.IsGift)

	token, err := s.verifyOTP(ctx, form)
	if err != nil {
		s.logStepFailure(err)
		n.Error(MsgOTPError)
		n.Error(MsgNoToken)
		s.failAttempt(ctx, attempt, StepVerifyOTP, MsgNoToken)
		return nil, fmt.Errorf("%w: %w", ErrNoToken, err)
	}

	key, order, err := s.setupPayment(ctx, token)
	if err != nil {
		s.logStepFailure(err)
		step := StepPaymentKey
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			step = stepErr.Step
		}
		n.Error(stepMessage(step))
		n.Error(MsgPaymentInit)
		s.failAttempt(ctx, attempt, step, MsgPaymentInit)
		return nil, fmt.Errorf("%w: %w", ErrPaymentInit, err)
	}

	opts := s.buildOptions(key, order, payer)

	session := &Session{
		ID:              uuid.NewString(),
		AttemptID:       attempt,
		Token:           token,
		TransactionID:   order.TransactionID,
		RazorpayOrderID: order.RazorpayOrderID,
		Amount:          opts.Amount,
		Email:           payer.Email,
		ExpiresAt:       s.sessionExpiry(token),
	}
	s.sessions.Put(session)

	if attempt != "" {
		if err := s.attemptRepo.MarkOpened(ctx, attempt, order.TransactionID, order.RazorpayOrderID, opts.Amount); err != nil {
			s.log.Warnw("mark attempt opened", "attempt_id", attempt, "error", err)
		}
	}

	s.log.Infow("checkout opened",
		"attempt_id", attempt,
		"transaction_id", order.TransactionID,
		"razorpay_order_id", order.RazorpayOrderID,
		"amount", opts.Amount,
	)

	return &Checkout{
		SessionID: session.ID,
		AttemptID: attempt,
		Options:   opts,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *checkoutServiceImpl) Complete(ctx context.Context, sessionID string, result *model.PaymentResult, n Notifier) (*model.VerificationResult, error) {
	session, ok := s.sessions.Peek(sessionID)
	if !ok {
		n.Error(MsgSessionNotFound)
		return nil, ErrSessionNotFound
	}

	// a malformed callback leaves the session in place so the widget can report again
	if result == nil || result.PaymentID == "" || result.Signature == "" ||
		(result.OrderID != "" && result.OrderID != session.RazorpayOrderID) {
		n.Error(MsgVerificationFailed)
		return nil, ErrInvalidPaymentResult
	}

	if session, ok = s.sessions.Take(sessionID); !ok {
		n.Error(MsgSessionNotFound)
		return nil, ErrSessionNotFound
	}

	if s.keySecret != "" {
		payload := session.RazorpayOrderID + "|" + result.PaymentID
		if !utils.VerifyWebhookSignature(payload, result.Signature, s.keySecret) {
			s.log.Warnw("payment signature mismatch", "attempt_id", session.AttemptID, "razorpay_order_id", session.RazorpayOrderID)
			n.Error(MsgVerificationFailed)
			s.failAttempt(ctx, session.AttemptID, StepVerifyOrder, MsgVerificationFailed)
			return nil, ErrSignatureMismatch
		}
	}

	res, err := s.testBuddyClient.VerifyOrder(ctx, session.Token, &model.VerifyOrderRequest{
		TransactionID:     session.TransactionID,
		RazorpayPaymentID: result.PaymentID,
		RazorpaySignature: result.Signature,
	})
	if err != nil {
		stepErr := &StepError{Step: StepVerifyOrder, Err: err}
		s.logStepFailure(stepErr)
		n.Error(MsgVerificationFailed)
		s.failAttempt(ctx, session.AttemptID, StepVerifyOrder, MsgVerificationFailed)
		return nil, fmt.Errorf("%w: %w", ErrVerification, stepErr)
	}

	if res.Message == "" {
		res.Message = MsgPaymentVerified
	}
	n.Success(res.Message)

	if session.AttemptID != "" {
		if err := s.attemptRepo.MarkVerified(ctx, session.AttemptID, result.PaymentID, res.Message); err != nil {
			s.log.Warnw("mark attempt verified", "attempt_id", session.AttemptID, "error", err)
		}
	}

	return res, nil
}

func (s *checkoutServiceImpl) validateForm(form *model.FormState) (*payerForm, error) {
	if form == nil {
		return nil, ErrMissingFields
	}

	payer := &payerForm{
		Name:  strings.TrimSpace(form.Name),
		Email: strings.TrimSpace(form.Email),
	}

	if err := s.validate.Struct(payer); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, ErrMissingFields
		}
		return nil, fmt.Errorf("validate form: %w", err)
	}

	if s.checkout.StrictEmail {
		if err := s.validate.Var(payer.Email, "email"); err != nil {
			return nil, ErrInvalidEmail
		}
	}

	return payer, nil
}

func (s *checkoutServiceImpl) verifyOTP(ctx context.Context, form *model.FormState) (string, error) {
	mobile, otp := s.backend.Mobile, s.backend.OTP
	if form.Mobile != "" && form.OTP != "" {
		mobile, otp = form.Mobile, form.OTP
	}

	token, err := s.testBuddyClient.VerifyOTP(ctx, mobile, otp)
	if err != nil {
		return "", &StepError{Step: StepVerifyOTP, Err: err}
	}
	return token, nil
}

// setupPayment fetches the gateway key and creates the order. The two calls do not
// depend on each other, so they may run concurrently when configured.
func (s *checkoutServiceImpl) setupPayment(ctx context.Context, token string) (string, *model.OrderRecord, error) {
	orderReq := &model.CreateOrderRequest{
		PackageID:   s.backend.PackageID,
		PricingID:   s.backend.PricingID,
		FinalAmount: s.backend.FinalAmount,
		CouponCode:  s.backend.CouponCode,
	}

	fetchKey := func(ctx context.Context) (string, error) {
		key, err := s.testBuddyClient.GetPaymentKey(ctx, token)
		if err != nil {
			return "", &StepError{Step: StepPaymentKey, Err: err}
		}
		return key, nil
	}
	createOrder := func(ctx context.Context) (*model.OrderRecord, error) {
		order, err := s.testBuddyClient.CreateOrder(ctx, token, orderReq)
		if err != nil {
			return nil, &StepError{Step: StepCreateOrder, Err: err}
		}
		return order, nil
	}

	if !s.checkout.ParallelSetup {
		key, err := fetchKey(ctx)
		if err != nil {
			return "", nil, err
		}
		order, err := createOrder(ctx)
		if err != nil {
			return "", nil, err
		}
		return key, order, nil
	}

	var (
		key   string
		order *model.OrderRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		key, err = fetchKey(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		order, err = createOrder(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", nil, err
	}

	return key, order, nil
}

func (s *checkoutServiceImpl) buildOptions(key string, order *model.OrderRecord, payer *payerForm) *model.CheckoutOptions {
	return &model.CheckoutOptions{
		Key:         key,
		Amount:      order.Amount.String(),
		Currency:    s.checkout.Currency,
		Name:        s.checkout.MerchantName,
		Description: s.checkout.Description,
		OrderID:     order.RazorpayOrderID,
		Prefill: model.Prefill{
			Name:    payer.Name,
			Email:   payer.Email,
			Contact: s.checkout.Contact,
		},
		Theme: model.Theme{
			Color: s.checkout.ThemeColor,
		},
	}
}

// sessionExpiry caps the session TTL at the token's exp claim when the token is a JWT.
func (s *checkoutServiceImpl) sessionExpiry(token string) time.Time {
	ttl := s.checkout.SessionTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	expiresAt := s.now().Add(ttl)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return expiresAt
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return expiresAt
	}
	if exp.Time.Before(expiresAt) {
		return exp.Time
	}
	return expiresAt
}

func (s *checkoutServiceImpl) acquire(payerKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[payerKey]; busy {
		return false
	}
	s.inflight[payerKey] = struct{}{}
	return true
}

func (s *checkoutServiceImpl) release(payerKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, payerKey)
}

// startAttempt records the attempt. A ledger failure never blocks the checkout.
func (s *checkoutServiceImpl) startAttempt(ctx context.Context, payer *payerForm, isGift bool) string {
	attempt := &model.CheckoutAttempt{
		ID:         uuid.NewString(),
		PayerName:  payer.Name,
		PayerEmail: payer.Email,
		IsGift:     isGift,
		Status:     model.AttemptStarted,
	}
	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		s.log.Warnw("record checkout attempt", "error", err)
		return ""
	}
	return attempt.ID
}

func (s *checkoutServiceImpl) failAttempt(ctx context.Context, attemptID string, step Step, message string) {
	if attemptID == "" {
		return
	}
	if err := s.attemptRepo.MarkFailed(ctx, attemptID, string(step), message); err != nil {
		s.log.Warnw("mark attempt failed", "attempt_id", attemptID, "error", err)
	}
}

func (s *checkoutServiceImpl) logStepFailure(err error) {
	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		s.log.Errorw("checkout step failed", "error", err)
		return
	}
	s.log.Errorw("checkout step failed",
		"step", stepErr.Step,
		"kind", stepErr.Kind(),
		"status", stepErr.StatusCode(),
		"error", stepErr.Err,
	)
}

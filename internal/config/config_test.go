package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
)

func TestParseDefaults(t *testing.T) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}}); err != nil {
		t.Fatalf("did not expect error, got: %s", err)
	}

	if cfg.TestBuddy.BaseApiURL != "https://api.testbuddy.live/v1" {
		t.Errorf("unexpected base api url %q", cfg.TestBuddy.BaseApiURL)
	}
	if cfg.TestBuddy.Mobile != "+919098989999" || cfg.TestBuddy.OTP != "8899" {
		t.Errorf("unexpected default credentials %q/%q", cfg.TestBuddy.Mobile, cfg.TestBuddy.OTP)
	}
	if cfg.Checkout.Currency != "INR" {
		t.Errorf("expected currency INR, got %q", cfg.Checkout.Currency)
	}
	if cfg.Checkout.SessionTTL != 15*time.Minute {
		t.Errorf("expected 15m session ttl, got %s", cfg.Checkout.SessionTTL)
	}
	if cfg.SDK.ScriptURL != "https://checkout.razorpay.com/v1/checkout.js" {
		t.Errorf("unexpected script url %q", cfg.SDK.ScriptURL)
	}
	if cfg.Checkout.StrictEmail {
		t.Error("expected email format check to be off by default")
	}
}

func TestParseOverrides(t *testing.T) {
	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{
		"TESTBUDDY_BASE_API_URL":  "http://backend.local/v1",
		"TESTBUDDY_FINAL_AMOUNT":  "999",
		"CHECKOUT_PARALLEL_SETUP": "true",
		"RAZORPAY_KEY_SECRET":     "shh",
		"RATE_LIMIT_BURST":        "10",
		"HTTP_PORT":               "9090",
		"CHECKOUT_STRICT_EMAIL":   "true",
		"BASE_URL":                "https://pay.testbuddy.live",
	}})
	if err != nil {
		t.Fatalf("did not expect error, got: %s", err)
	}

	if cfg.TestBuddy.BaseApiURL != "http://backend.local/v1" {
		t.Errorf("unexpected base api url %q", cfg.TestBuddy.BaseApiURL)
	}
	if cfg.TestBuddy.FinalAmount != "999" {
		t.Errorf("unexpected final amount %q", cfg.TestBuddy.FinalAmount)
	}
	if !cfg.Checkout.ParallelSetup {
		t.Error("expected parallel setup to be enabled")
	}
	if !cfg.Checkout.StrictEmail {
		t.Error("expected strict email to be enabled")
	}
	if cfg.BaseURL != "https://pay.testbuddy.live" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Razorpay.KeySecret != "shh" {
		t.Errorf("unexpected key secret %q", cfg.Razorpay.KeySecret)
	}
	if cfg.RateLimit.Burst != 10 {
		t.Errorf("expected burst 10, got %d", cfg.RateLimit.Burst)
	}
	if cfg.HTTP.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.HTTP.Port)
	}
}

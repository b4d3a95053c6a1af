package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"checkout.db"`

	TestBuddy TestBuddy `envPrefix:"TESTBUDDY_"`
	Checkout  Checkout  `envPrefix:"CHECKOUT_"`
	Razorpay  Razorpay  `envPrefix:"RAZORPAY_"`
	SDK       SDK       `envPrefix:"SDK_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
}

type TestBuddy struct {
	BaseApiURL string        `env:"BASE_API_URL" envDefault:"https://api.testbuddy.live/v1"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// placeholder credentials used when the form carries none
	Mobile string `env:"MOBILE" envDefault:"+919098989999"`
	OTP    string `env:"OTP" envDefault:"8899"`

	PackageID   string `env:"PACKAGE_ID" envDefault:"6613d6fbbf1afca9aa1b519e"`
	PricingID   string `env:"PRICING_ID" envDefault:"662caa2d50bf43b5cef75232"`
	FinalAmount string `env:"FINAL_AMOUNT" envDefault:"441"`
	CouponCode  string `env:"COUPON_CODE" envDefault:"NEET25"`
}

type Checkout struct {
	MerchantName  string        `env:"MERCHANT_NAME" envDefault:"TestBuddy"`
	Description   string        `env:"DESCRIPTION" envDefault:"Test Transaction"`
	Currency      string        `env:"CURRENCY" envDefault:"INR"`
	Contact       string        `env:"CONTACT" envDefault:"9999999999"`
	ThemeColor    string        `env:"THEME_COLOR" envDefault:"#3399cc"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"15m"`
	ParallelSetup bool          `env:"PARALLEL_SETUP" envDefault:"false"`
	StrictEmail   bool          `env:"STRICT_EMAIL" envDefault:"false"`
}

type Razorpay struct {
	// optional; enables a local signature check before calling /order/verify
	KeySecret string `env:"KEY_SECRET"`
}

type SDK struct {
	ScriptURL string        `env:"SCRIPT_URL" envDefault:"https://checkout.razorpay.com/v1/checkout.js"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type RateLimit struct {
	Enabled bool    `env:"ENABLED" envDefault:"true"`
	Rate    float64 `env:"RATE" envDefault:"1"`
	Burst   int     `env:"BURST" envDefault:"5"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the sms-prompt CLI.
type Config struct {
	App        AppConfig
	Twilio     TwilioConfig
	Retry      RetryConfig
	Validation ValidationConfig
	Templates  TemplateConfig
	Timeouts   TimeoutConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// TwilioConfig stores the Twilio credentials and the origin number used for
// all outbound messages.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// RetryConfig controls the send-with-retry behaviour. PolicyFile optionally
// points to a YAML file overriding the built-in cause classification.
type RetryConfig struct {
	MaxAttempts      int
	BaseDelaySeconds int
	PolicyFile       string
}

// ValidationConfig holds the limits applied while collecting a message.
// BodyWarn is advisory (warn and confirm); BodyMax is a hard stop.
type ValidationConfig struct {
	BodyWarn int
	BodyMax  int
}

// TemplateConfig locates the message template directory.
type TemplateConfig struct {
	Dir string
}

// TimeoutConfig contains timeout thresholds for the remote provider call.
type TimeoutConfig struct {
	ProviderTimeoutSeconds int
}

// Load reads environment variables (optionally seeded from a .env file),
// applies defaults, validates required values and returns a populated
// Config. All missing required keys are reported in a single error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development", false)
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info", false)

	cfg.Twilio.AccountSID = ldr.getString("TWILIO_ACCOUNT_SID", "", true)
	cfg.Twilio.AuthToken = ldr.getString("TWILIO_AUTH_TOKEN", "", true)
	cfg.Twilio.FromNumber = ldr.getString("TWILIO_PHONE_NUMBER", "", true)

	cfg.Retry.MaxAttempts = ldr.getInt("MAX_ATTEMPTS", 3, false)
	cfg.Retry.BaseDelaySeconds = ldr.getInt("BASE_DELAY_SECONDS", 2, false)
	cfg.Retry.PolicyFile = ldr.getString("RETRY_POLICY_FILE", "", false)

	cfg.Validation.BodyWarn = ldr.getInt("SMS_BODY_WARN", 160, false)
	cfg.Validation.BodyMax = ldr.getInt("SMS_BODY_MAX", 1600, false)

	cfg.Templates.Dir = ldr.getString("TEMPLATES_DIR", defaultTemplatesDir(), false)

	cfg.Timeouts.ProviderTimeoutSeconds = ldr.getInt("PROVIDER_TIMEOUT_SECONDS", 30, false)

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultTemplatesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".sms-prompt", "templates")
	}
	return filepath.Join(home, ".sms-prompt", "templates")
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string, required bool) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		return val
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			l.addError(fmt.Sprintf("%s must be a valid integer", key))
			return def
		}
		return i
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}

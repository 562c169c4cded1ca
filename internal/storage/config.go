package storage

import (
	"fmt"
	"strings"
)

// Environment variables holding R2 credentials. All four must be present for
// storage to count as configured; a partial set means unconfigured.
const (
	EnvAccountID       = "R2_ACCOUNT_ID"
	EnvAccessKeyID     = "R2_ACCESS_KEY_ID"
	EnvSecretAccessKey = "R2_SECRET_ACCESS_KEY"
	EnvBucket          = "R2_BUCKET_NAME"
)

// Config holds object-store credentials, constructed once at process start
// and passed explicitly rather than read from globals.
type Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// ConfigFromEnv reads credentials using the given environment getter.
func ConfigFromEnv(getenv func(string) string) Config {
	return Config{
		AccountID:       getenv(EnvAccountID),
		AccessKeyID:     getenv(EnvAccessKeyID),
		SecretAccessKey: getenv(EnvSecretAccessKey),
		Bucket:          getenv(EnvBucket),
	}
}

// Complete reports whether all credential values are present.
func (c Config) Complete() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.Bucket != ""
}

// Validate returns ErrNotConfigured naming the missing variables, or nil
// when the config is complete.
func (c Config) Validate() error {
	var missing []string
	if c.AccountID == "" {
		missing = append(missing, EnvAccountID)
	}
	if c.AccessKeyID == "" {
		missing = append(missing, EnvAccessKeyID)
	}
	if c.SecretAccessKey == "" {
		missing = append(missing, EnvSecretAccessKey)
	}
	if c.Bucket == "" {
		missing = append(missing, EnvBucket)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// Endpoint returns the account-scoped R2 endpoint URL.
func (c Config) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

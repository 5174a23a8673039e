package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment  string             `mapstructure:"environment"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Provider     ProviderConfig     `mapstructure:"provider"`
	Signing      SigningConfig      `mapstructure:"signing"`
	Merchant     MerchantConfig     `mapstructure:"merchant"`
	Validation   ValidationConfig   `mapstructure:"validation"`
	ProviderMock ProviderMockConfig `mapstructure:"providerMock"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// ProviderConfig contains the payment provider connection settings
type ProviderConfig struct {
	DepositURL     string        `mapstructure:"depositUrl"`
	ConnectTimeout time.Duration `mapstructure:"connectTimeout"` // seconds
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`    // seconds
}

// SigningConfig contains the RSA key material paths. The private key signs
// outbound requests, the public key verifies the counterparty's signatures.
type SigningConfig struct {
	PrivateKeyPath string `mapstructure:"privateKeyPath"`
	PublicKeyPath  string `mapstructure:"publicKeyPath"`
}

// MerchantConfig contains the merchant credentials presented to the provider
type MerchantConfig struct {
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	NotificationBaseURL string `mapstructure:"notificationBaseUrl"`
}

// ValidationConfig lists the validation rules applied to payment creation,
// in order. Unknown rule names are skipped with a warning.
type ValidationConfig struct {
	Rules []string `mapstructure:"rules"`
}

// ProviderMockConfig contains settings for the provider mock binary
type ProviderMockConfig struct {
	Port                int           `mapstructure:"port"`
	RedirectBaseURL     string        `mapstructure:"redirectBaseUrl"`
	PrivateKeyPath      string        `mapstructure:"privateKeyPath"`
	PublicKeyPath       string        `mapstructure:"publicKeyPath"`
	NotificationTimeout time.Duration `mapstructure:"notificationTimeout"` // seconds
}

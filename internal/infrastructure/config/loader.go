package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Environment variables override config file values
	v.SetEnvPrefix("PP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env

	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 2) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("provider.connectTimeout", 5) // seconds
	v.SetDefault("provider.readTimeout", 30)   // seconds

	v.SetDefault("validation.rules", []string{"CUSTOMER_ID_RULE", "MOBILE_NUMBER_RULE"})

	v.SetDefault("providerMock.port", 9090)
	v.SetDefault("providerMock.redirectBaseUrl", "http://localhost:9090/checkout/")
	v.SetDefault("providerMock.notificationTimeout", 10) // seconds
}

// getEnvironment determines the environment to use based on PP_ENV
func getEnvironment() string {
	env := os.Getenv("PP_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values
// for sensitive settings
func processEnvOverrides(v *viper.Viper) {
	if dbHost := os.Getenv("PP_DB_HOST"); dbHost != "" {
		v.Set("database.host", dbHost)
	}
	if dbPort := os.Getenv("PP_DB_PORT"); dbPort != "" {
		v.Set("database.port", dbPort)
	}
	if dbUser := os.Getenv("PP_DB_USERNAME"); dbUser != "" {
		v.Set("database.username", dbUser)
	}
	if dbPass := os.Getenv("PP_DB_PASSWORD"); dbPass != "" {
		v.Set("database.password", dbPass)
	}
	if dbName := os.Getenv("PP_DB_NAME"); dbName != "" {
		v.Set("database.database", dbName)
	}
	if sslMode := os.Getenv("PP_DB_SSL_MODE"); sslMode != "" {
		v.Set("database.sslMode", sslMode)
	}

	if serverHost := os.Getenv("PP_SERVER_HOST"); serverHost != "" {
		v.Set("server.host", serverHost)
	}
	if serverPort := os.Getenv("PP_SERVER_PORT"); serverPort != "" {
		v.Set("server.port", serverPort)
	}

	if logLevel := os.Getenv("PP_LOGGER_LEVEL"); logLevel != "" {
		v.Set("logger.level", logLevel)
	}

	if depositURL := os.Getenv("PP_PROVIDER_DEPOSIT_URL"); depositURL != "" {
		v.Set("provider.depositUrl", depositURL)
	}

	if username := os.Getenv("PP_MERCHANT_USERNAME"); username != "" {
		v.Set("merchant.username", username)
	}
	if password := os.Getenv("PP_MERCHANT_PASSWORD"); password != "" {
		v.Set("merchant.password", password)
	}
	if callbackURL := os.Getenv("PP_MERCHANT_NOTIFICATION_BASE_URL"); callbackURL != "" {
		v.Set("merchant.notificationBaseUrl", callbackURL)
	}

	if privateKey := os.Getenv("PP_SIGNING_PRIVATE_KEY_PATH"); privateKey != "" {
		v.Set("signing.privateKeyPath", privateKey)
	}
	if publicKey := os.Getenv("PP_SIGNING_PUBLIC_KEY_PATH"); publicKey != "" {
		v.Set("signing.publicKeyPath", publicKey)
	}
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Provider.ConnectTimeout = time.Duration(config.Provider.ConnectTimeout) * time.Second
	config.Provider.ReadTimeout = time.Duration(config.Provider.ReadTimeout) * time.Second

	config.ProviderMock.NotificationTimeout = time.Duration(config.ProviderMock.NotificationTimeout) * time.Second
}

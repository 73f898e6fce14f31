package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	Oracle OracleConfig
	OCR    OCRConfig
	CORS   CORSConfig
	Export ExportConfig
	Batch  BatchConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OracleProviderConfig holds settings for a single completion model provider.
type OracleProviderConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// OracleConfig holds completion model settings with multi-provider fallback.
type OracleConfig struct {
	Primary   OracleProviderConfig `mapstructure:"primary"`
	Secondary OracleProviderConfig `mapstructure:"secondary"`
	Tertiary  OracleProviderConfig `mapstructure:"tertiary"`

	// RequestsPerMinute throttles completion calls; 0 disables throttling.
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

// Chain returns the configured providers in fallback order. The primary is
// always included; secondary and tertiary only when their provider is set.
func (o *OracleConfig) Chain() []*OracleProviderConfig {
	chain := []*OracleProviderConfig{&o.Primary}
	if o.Secondary.Provider != "" {
		chain = append(chain, &o.Secondary)
	}
	if o.Tertiary.Provider != "" {
		chain = append(chain, &o.Tertiary)
	}
	return chain
}

// OCRConfig holds settings for the scanned-page fallback.
type OCRConfig struct {
	Pdftoppm    string `mapstructure:"pdftoppm"`
	Tesseract   string `mapstructure:"tesseract"`
	Lang        string `mapstructure:"lang"`
	TessdataDir string `mapstructure:"tessdata_dir"`
	DPI         int    `mapstructure:"dpi"`
	MaxPages    int    `mapstructure:"max_pages"`
}

// ExportConfig holds the on-disk summary export settings. An empty
// JSONPath disables the export.
type ExportConfig struct {
	JSONPath string `mapstructure:"json_path"`
}

// BatchConfig holds settings for the batch CLI.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	Environment        string        `mapstructure:"environment"`
	SuccessRedirectURL string        `mapstructure:"success_redirect_url"`
	MaxUploadSizeMB    int64         `mapstructure:"max_upload_size_mb"`
}

// DBConfig holds relational store settings. Driver is "postgres" or "sqlite".
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// AutoMigrate applies pending migrations from MigrationsPath at startup.
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// DSN returns the connection string for the configured driver.
func (d *DBConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// MigrateURL returns the golang-migrate database URL.
func (d *DBConfig) MigrateURL() string {
	if d.Driver == "sqlite" {
		return "sqlite://" + d.Path
	}
	return d.DSN()
}

// S3Config holds AWS S3 settings. An empty Bucket disables archiving.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BILLSCAN_
// prefix. A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.success_redirect_url", "http://localhost:3000/home")
	v.SetDefault("server.max_upload_size_mb", 25)

	// DB defaults
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billscan")
	v.SetDefault("db.password", "billscan_secret")
	v.SetDefault("db.name", "billscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "billscan.db")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.migrations_path", "db/migrations")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "bills")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Oracle defaults
	v.SetDefault("oracle.primary.provider", "gemini")
	v.SetDefault("oracle.primary.api_key", "")
	v.SetDefault("oracle.primary.model", "")
	v.SetDefault("oracle.primary.timeout_secs", 120)
	v.SetDefault("oracle.secondary.provider", "")
	v.SetDefault("oracle.secondary.api_key", "")
	v.SetDefault("oracle.secondary.model", "")
	v.SetDefault("oracle.secondary.timeout_secs", 120)
	v.SetDefault("oracle.tertiary.provider", "")
	v.SetDefault("oracle.tertiary.api_key", "")
	v.SetDefault("oracle.tertiary.model", "")
	v.SetDefault("oracle.tertiary.timeout_secs", 120)
	v.SetDefault("oracle.requests_per_minute", 0)

	// OCR defaults
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.lang", "eng")
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.max_pages", 0)

	v.SetDefault("export.json_path", "bill_summaries.json")
	v.SetDefault("batch.concurrency", 4)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string][]string{
		"server.port":                 {"BILLSCAN_SERVER_PORT"},
		"server.read_timeout":         {"BILLSCAN_SERVER_READ_TIMEOUT"},
		"server.write_timeout":        {"BILLSCAN_SERVER_WRITE_TIMEOUT"},
		"server.environment":          {"BILLSCAN_SERVER_ENVIRONMENT"},
		"server.success_redirect_url": {"BILLSCAN_SERVER_SUCCESS_REDIRECT_URL"},
		"server.max_upload_size_mb":   {"BILLSCAN_SERVER_MAX_UPLOAD_SIZE_MB"},
		"db.driver":                   {"BILLSCAN_DB_DRIVER"},
		"db.host":                     {"BILLSCAN_DB_HOST"},
		"db.port":                     {"BILLSCAN_DB_PORT"},
		"db.user":                     {"BILLSCAN_DB_USER"},
		"db.password":                 {"BILLSCAN_DB_PASSWORD"},
		"db.name":                     {"BILLSCAN_DB_NAME"},
		"db.sslmode":                  {"BILLSCAN_DB_SSLMODE"},
		"db.path":                     {"BILLSCAN_DB_PATH"},
		"db.max_open":                 {"BILLSCAN_DB_MAX_OPEN"},
		"db.max_idle":                 {"BILLSCAN_DB_MAX_IDLE"},
		"db.auto_migrate":             {"BILLSCAN_DB_AUTO_MIGRATE"},
		"db.migrations_path":          {"BILLSCAN_DB_MIGRATIONS_PATH"},
		"s3.region":                   {"BILLSCAN_S3_REGION"},
		"s3.bucket":                   {"BILLSCAN_S3_BUCKET"},
		"s3.endpoint":                 {"BILLSCAN_S3_ENDPOINT"},
		"s3.access_key":               {"BILLSCAN_S3_ACCESS_KEY"},
		"s3.secret_key":               {"BILLSCAN_S3_SECRET_KEY"},
		"s3.prefix":                   {"BILLSCAN_S3_PREFIX"},
		"log.level":                   {"BILLSCAN_LOG_LEVEL"},
		"log.format":                  {"BILLSCAN_LOG_FORMAT"},
		"cors.allowed_origins":        {"BILLSCAN_CORS_ALLOWED_ORIGINS"},
		"oracle.primary.provider":     {"BILLSCAN_ORACLE_PRIMARY_PROVIDER"},
		// GOOGLE_GENAI_API_KEY is honored for existing deployments.
		"oracle.primary.api_key":        {"BILLSCAN_ORACLE_PRIMARY_API_KEY", "GOOGLE_GENAI_API_KEY"},
		"oracle.primary.model":          {"BILLSCAN_ORACLE_PRIMARY_MODEL"},
		"oracle.primary.timeout_secs":   {"BILLSCAN_ORACLE_PRIMARY_TIMEOUT_SECS"},
		"oracle.secondary.provider":     {"BILLSCAN_ORACLE_SECONDARY_PROVIDER"},
		"oracle.secondary.api_key":      {"BILLSCAN_ORACLE_SECONDARY_API_KEY"},
		"oracle.secondary.model":        {"BILLSCAN_ORACLE_SECONDARY_MODEL"},
		"oracle.secondary.timeout_secs": {"BILLSCAN_ORACLE_SECONDARY_TIMEOUT_SECS"},
		"oracle.tertiary.provider":      {"BILLSCAN_ORACLE_TERTIARY_PROVIDER"},
		"oracle.tertiary.api_key":       {"BILLSCAN_ORACLE_TERTIARY_API_KEY"},
		"oracle.tertiary.model":         {"BILLSCAN_ORACLE_TERTIARY_MODEL"},
		"oracle.tertiary.timeout_secs":  {"BILLSCAN_ORACLE_TERTIARY_TIMEOUT_SECS"},
		"oracle.requests_per_minute":    {"BILLSCAN_ORACLE_REQUESTS_PER_MINUTE"},
		"ocr.pdftoppm":                  {"BILLSCAN_OCR_PDFTOPPM"},
		"ocr.tesseract":                 {"BILLSCAN_OCR_TESSERACT"},
		"ocr.lang":                      {"BILLSCAN_OCR_LANG"},
		"ocr.tessdata_dir":              {"BILLSCAN_OCR_TESSDATA_DIR", "TESSDATA_PREFIX"},
		"ocr.dpi":                       {"BILLSCAN_OCR_DPI"},
		"ocr.max_pages":                 {"BILLSCAN_OCR_MAX_PAGES"},
		"export.json_path":              {"BILLSCAN_EXPORT_JSON_PATH"},
		"batch.concurrency":             {"BILLSCAN_BATCH_CONCURRENCY"},
	}
	for key, envs := range envBindings {
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:               serverPort,
		ReadTimeout:        v.GetDuration("server.read_timeout"),
		WriteTimeout:       v.GetDuration("server.write_timeout"),
		Environment:        v.GetString("server.environment"),
		SuccessRedirectURL: v.GetString("server.success_redirect_url"),
		MaxUploadSizeMB:    v.GetInt64("server.max_upload_size_mb"),
	}
	cfg.DB = DBConfig{
		Driver:   strings.ToLower(v.GetString("db.driver")),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		Path:     v.GetString("db.path"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		AutoMigrate:    v.GetBool("db.auto_migrate"),
		MigrationsPath: v.GetString("db.migrations_path"),
	}
	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported db.driver %q (want postgres or sqlite)", cfg.DB.Driver)
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		Prefix:    v.GetString("s3.prefix"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Oracle = OracleConfig{
		Primary:           providerConfig(v, "oracle.primary"),
		Secondary:         providerConfig(v, "oracle.secondary"),
		Tertiary:          providerConfig(v, "oracle.tertiary"),
		RequestsPerMinute: v.GetInt("oracle.requests_per_minute"),
	}

	cfg.OCR = OCRConfig{
		Pdftoppm:    v.GetString("ocr.pdftoppm"),
		Tesseract:   v.GetString("ocr.tesseract"),
		Lang:        v.GetString("ocr.lang"),
		TessdataDir: v.GetString("ocr.tessdata_dir"),
		DPI:         v.GetInt("ocr.dpi"),
		MaxPages:    v.GetInt("ocr.max_pages"),
	}

	cfg.Export = ExportConfig{JSONPath: v.GetString("export.json_path")}
	cfg.Batch = BatchConfig{Concurrency: v.GetInt("batch.concurrency")}

	return cfg, nil
}

func providerConfig(v *viper.Viper, prefix string) OracleProviderConfig {
	return OracleProviderConfig{
		Provider:    strings.ToLower(v.GetString(prefix + ".provider")),
		APIKey:      v.GetString(prefix + ".api_key"),
		Model:       v.GetString(prefix + ".model"),
		TimeoutSecs: v.GetInt(prefix + ".timeout_secs"),
	}
}

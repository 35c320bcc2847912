package indserver

import (
	"log"
	"os"
	"strconv"

	"stockdash/internal/indicator"
)

// Config holds all env-parsed configuration for the indicator server.
type Config struct {
	HTTPAddr      string
	RedisAddr     string // empty disables the frame cache
	RedisPassword string
	RedisDB       int
	SQLitePath    string // empty disables the history store
	CacheTTLSec   int
	WebhookURL    string // empty routes alerts to the log
	LogLevel      string
	Params        indicator.Params
}

// LoadConfig reads all environment variables and returns a Config.
func LoadConfig() Config {
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_SEC", "300"))
	if cacheTTL <= 0 {
		cacheTTL = 300
	}
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return Config{
		HTTPAddr:      getEnv("INDSERVER_HTTP_ADDR", ":9090"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		SQLitePath:    getEnv("SQLITE_PATH", "data/history.db"),
		CacheTTLSec:   cacheTTL,
		WebhookURL:    getEnv("ALERT_WEBHOOK_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Params:        loadParams(),
	}
}

// loadParams reads indicator periods from env, falling back to the
// dashboard defaults per field. Invalid values are logged and replaced.
func loadParams() indicator.Params {
	p := indicator.DefaultParams()
	p.SMAPeriod = envInt("SMA_PERIOD", p.SMAPeriod)
	p.BBPeriod = envInt("BB_PERIOD", p.BBPeriod)
	p.BBWidth = envFloat("BB_WIDTH", p.BBWidth)
	p.MACDFast = envInt("MACD_FAST", p.MACDFast)
	p.MACDSlow = envInt("MACD_SLOW", p.MACDSlow)
	p.MACDSignal = envInt("MACD_SIGNAL", p.MACDSignal)
	p.RSIPeriod = envInt("RSI_PERIOD", p.RSIPeriod)
	p.ADXPeriod = envInt("ADX_PERIOD", p.ADXPeriod)

	if err := p.Validate(); err != nil {
		log.Printf("[indserver] WARNING: invalid indicator params from env (%v), using defaults", err)
		return indicator.DefaultParams()
	}
	return p
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[indserver] skipping invalid %s=%q", key, v)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("[indserver] skipping invalid %s=%q", key, v)
		return fallback
	}
	return f
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

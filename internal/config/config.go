package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=protezlab port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Entity store'un toptan yenileme aralığı.
	RefreshInterval time.Duration

	// Bağlantı testi zaman aşımı.
	ProbeTimeout time.Duration

	// Gelirin döneme hangi tarihe göre sayılacağı: "arrival" | "delivery".
	RevenueBasis string
}

func Load() *Config {
	// .env varsa yükle; yoksa sessizce ortam değişkenleriyle devam et.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		RefreshInterval: time.Duration(getEnvInt("REFRESH_INTERVAL_SECONDS", 30)) * time.Second,
		ProbeTimeout:    time.Duration(getEnvInt("PROBE_TIMEOUT_SECONDS", 15)) * time.Second,
		RevenueBasis:    getEnv("REVENUE_DATE_BASIS", "arrival"),
	}

	// Yapılandırma hataları açılışta ölümcüldür: geçersiz backend'e karşı
	// çalışmak yerine süreç durur.
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if hasPlaceholderDSN(cfg.DatabaseDSN) {
		log.Fatal("[FATAL] DATABASE_DSN placeholder değerler içeriyor! Gerçek bağlantı bilgisini tanımla.")
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için mutlaka kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.RevenueBasis != "arrival" && cfg.RevenueBasis != "delivery" {
		log.Fatalf("[FATAL] REVENUE_DATE_BASIS 'arrival' veya 'delivery' olmalı, '%s' geçersiz.", cfg.RevenueBasis)
	}

	// URL biçiminde DSN verildiyse sözdizimini doğrula.
	if strings.HasPrefix(cfg.DatabaseDSN, "postgres://") || strings.HasPrefix(cfg.DatabaseDSN, "postgresql://") {
		if _, err := url.Parse(cfg.DatabaseDSN); err != nil {
			log.Fatalf("[FATAL] DATABASE_DSN geçersiz URL formatında: %v", err)
		}
	}

	return cfg
}

func hasPlaceholderDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.Contains(lower, "your-project") ||
		strings.Contains(lower, "your-password") ||
		strings.Contains(lower, "<password>") ||
		strings.Contains(lower, "changeme")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("[WARN] %s geçersiz, varsayılan %d kullanılıyor", key, def)
	}
	return def
}

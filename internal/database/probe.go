package database

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrorCategory: düşük seviyeli bağlantı hatalarının kullanıcıya
// gösterilebilir küçük bir sınıflandırması. Çekirdek hesaplama katmanı bu
// kategorileri hiç görmez; yalnızca sağlık ucu ve yenileme logları kullanır.
type ErrorCategory string

const (
	ErrTimeout          ErrorCategory = "timeout"
	ErrUnreachable      ErrorCategory = "unreachable"
	ErrInvalidCredentials ErrorCategory = "invalid_credentials"
	ErrMissingSchema    ErrorCategory = "missing_schema"
	ErrPermissionDenied ErrorCategory = "permission_denied"
	ErrUnknown          ErrorCategory = "unknown"
)

// Probe: veritabanına zaman aşımı sınırlı bağlantı testi. Sıradan CRUD
// çağrılarında zaman aşımı yoktur; tek açık zaman aşımı burasıdır.
func Probe(ctx context.Context, timeout time.Duration) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Classify, bir bağlantı/sorgu hatasını insan okunur kategoriye indirger.
func Classify(err error) ErrorCategory {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return ErrTimeout
	case strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "network is unreachable"):
		return ErrUnreachable
	case strings.Contains(msg, "password authentication failed") ||
		strings.Contains(msg, "authentication"):
		return ErrInvalidCredentials
	case strings.Contains(msg, "does not exist") &&
		(strings.Contains(msg, "relation") || strings.Contains(msg, "database")):
		return ErrMissingSchema
	case strings.Contains(msg, "permission denied"):
		return ErrPermissionDenied
	}
	return ErrUnknown
}

// Describe: kategori için kullanıcıya gösterilecek Türkçe mesaj.
func Describe(cat ErrorCategory) string {
	switch cat {
	case ErrTimeout:
		return "Bağlantı zaman aşımına uğradı. Veritabanı adresini ve ağ bağlantısını kontrol edin."
	case ErrUnreachable:
		return "Veritabanı sunucusuna erişilemiyor. Bağlantı bilgilerini kontrol edin."
	case ErrInvalidCredentials:
		return "Veritabanı kimlik bilgileri geçersiz."
	case ErrMissingSchema:
		return "Veritabanı tabloları henüz oluşturulmamış. Migration'ları çalıştırın."
	case ErrPermissionDenied:
		return "Veritabanı erişim izni hatası."
	default:
		return "Bilinmeyen bağlantı hatası oluştu."
	}
}

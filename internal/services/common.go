package services

import (
	"dropxhub/internal/storage/interfaces"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

// Storage keys. Payloads stay compatible with the browser build.
const (
	KeyListings       = "dropx_hub_apps"
	KeyCategories     = "dropx_hub_categories"
	KeyRecentlyViewed = "dropx_hub_recently_viewed"
	KeyFavorites      = "dropx_hub_favorites"
	KeyNotifications  = "dropx_hub_notifications"
	KeyTheme          = "dropx_hub_theme"
	KeyAdminSettings  = "dropx_hub_admin_settings"
	KeyAdminAuth      = "admin_authenticated"
	KeyAdminAccount   = "dropx_hub_admin_account"
	KeyAdminPassword  = "dropx_hub_admin_password_hash"
)

const maxRecentlyViewed = 10

var (
	ErrListingNotFound      = errors.New("listing not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidTheme         = errors.New("invalid theme")
	ErrInvalidSeverity      = errors.New("invalid notification type")
	ErrInvalidCredentials   = errors.New("invalid password")
)

// ValidationError reports rejected form input. Nothing is committed when
// it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		for _, msg := range e.Fields {
			return "validation failed: " + msg
		}
	}
	return fmt.Sprintf("validation failed: %d invalid fields", len(e.Fields))
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// validateStruct runs the validate tags of v and collects one message per field.
func validateStruct(v any) error {
	vd := validate.Struct(v)
	if vd.Validate() {
		return nil
	}
	fields := make(map[string]string)
	for field := range vd.Errors.All() {
		fields[field] = vd.Errors.FieldOne(field)
	}
	return &ValidationError{Fields: fields}
}

// Clock is swapped in tests.
type Clock func() time.Time

// isoTime formats like a browser Date.toISOString.
func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// parseTime accepts full timestamps and bare dates; anything else is zero.
func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return time.Time{}
}

// loadJSON decodes key into v. found is false when the key is absent.
func loadJSON(storage interfaces.KeyValueStorage, key string, v any) (bool, error) {
	raw, ok, err := storage.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func saveJSON(storage interfaces.KeyValueStorage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := storage.Set(key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func limitOf[T any](items []T, limit int) []T {
	if limit <= 0 {
		return []T{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

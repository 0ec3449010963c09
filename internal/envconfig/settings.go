package envconfig

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

// Settings maps wp-config.php constants to their values. Values are limited
// to string, bool and numbers.
type Settings map[string]any

func (s Settings) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// String returns the value under key when it is a string.
func (s Settings) String(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

func (s Settings) Clone() Settings {
	if s == nil {
		return Settings{}
	}
	return maps.Clone(s)
}

// checkValue reports whether v is one of the supported setting kinds.
func checkValue(v any) error {
	switch v.(type) {
	case string, bool, int, int32, int64, float32, float64, json.Number:
		return nil
	case nil:
		return fmt.Errorf("value is nil")
	default:
		return fmt.Errorf("unsupported value type %T", v)
	}
}

// FormatValue renders a setting the way it is passed to WP-CLI.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

// stringSetting fetches key and insists the value is a string.
func stringSetting(s Settings, env EnvName, key string) (string, bool, error) {
	raw, ok := s[key]
	if !ok {
		return "", false, nil
	}
	v, isString := raw.(string)
	if !isString {
		return "", true, &SettingError{Env: env, Key: key, Reason: fmt.Sprintf("expected a string, got %T", raw)}
	}
	return v, true, nil
}

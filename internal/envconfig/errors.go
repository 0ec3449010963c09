package envconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOverride is returned for malformed CLI override maps.
	ErrInvalidOverride = errors.New("invalid override")
	// ErrInvalidSetting is returned when a setting the correction pass or
	// enrichment consults has an impossible value.
	ErrInvalidSetting = errors.New("invalid setting")
	// ErrInvalidConfig is returned when a built config breaks a structural invariant.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNoInputSource is returned by prompters that can't reach a user.
	ErrNoInputSource = errors.New("no input source available")
	// ErrMissingCredentials is returned when a theme strictly requires
	// credentials that could not be collected.
	ErrMissingCredentials = errors.New("missing theme credentials")
	// ErrPersist is returned when the generated config file can't be written.
	ErrPersist = errors.New("cannot write generated config")
)

// OverrideError describes a rejected entry of the override map.
type OverrideError struct {
	Key    string
	Reason string
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrInvalidOverride, e.Key, e.Reason)
}

func (e *OverrideError) Unwrap() error { return ErrInvalidOverride }

// SettingError describes a setting that can't be corrected or enriched.
type SettingError struct {
	Env    EnvName
	Key    string
	Reason string
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("%v %s in %s environment: %s", ErrInvalidSetting, e.Key, e.Env, e.Reason)
}

func (e *SettingError) Unwrap() error { return ErrInvalidSetting }

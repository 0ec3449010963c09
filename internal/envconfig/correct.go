package envconfig

import (
	"encoding/json"
	"math"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/versions"
)

var schemeRe = regexp.MustCompile(`^https?://`)

// Correct runs the correction pass over one environment. Rules run in a
// fixed order and the pass is idempotent.
//
// Development results for core and PHP land on the root defaults, which the
// tests environment inherits unless it sets its own.
func Correct(cfg *RootConfig, name EnvName) error {
	ec := cfg.Env(name)
	if ec == nil {
		return &SettingError{Env: name, Key: "", Reason: "unknown environment"}
	}

	if err := correctCookieDomain(ec, name); err != nil {
		return err
	}

	core, err := correctCoreVersion(ec, name)
	if err != nil {
		return err
	}
	if core != "" {
		if name == Development {
			cfg.CorePackageRef = core
		} else {
			ec.CoreVersionRef = &core
		}
	}

	php, err := correctPHPVersion(ec, name)
	if err != nil {
		return err
	}
	if php != "" {
		if name == Development {
			cfg.DefaultPHPVersion = php
		} else {
			ec.PHPVersion = &php
		}
	}

	correctSubdomain(ec, name)
	return nil
}

func correctCookieDomain(ec *EnvironmentConfig, name EnvName) error {
	siteURL, ok, err := stringSetting(ec.Settings, name, KeySiteURL)
	if err != nil || !ok {
		return err
	}
	if strings.TrimSuffix(siteURL, "/") == DefaultSiteURL {
		return nil
	}

	host := cookieHost(siteURL)
	if host == "" {
		return &SettingError{Env: name, Key: KeySiteURL, Reason: "no host in " + siteURL}
	}
	ec.Settings[KeyCookieDomain] = "." + host
	logs.Debugf("%s: %s set to .%s from %s", name, KeyCookieDomain, host, KeySiteURL)
	return nil
}

// cookieHost strips the scheme, path and port of a site URL.
func cookieHost(siteURL string) string {
	rest := schemeRe.ReplaceAllString(strings.TrimSpace(siteURL), "")
	host, _, _ := strings.Cut(rest, "/")
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}

// correctCoreVersion consumes WP_VER and returns the derived core reference,
// or "" when the default reference stays.
func correctCoreVersion(ec *EnvironmentConfig, name EnvName) (string, error) {
	wpVer, ok, err := stringSetting(ec.Settings, name, KeyWPVersion)
	if err != nil || !ok {
		return "", err
	}
	if wpVer == LatestVersion {
		return "", nil
	}
	if strings.TrimSpace(wpVer) == "" {
		return "", &SettingError{Env: name, Key: KeyWPVersion, Reason: "empty version"}
	}

	delete(ec.Settings, KeyWPVersion)
	core := CoreRepository + "#" + wpVer
	logs.Debugf("%s: core set to %s", name, core)
	return core, nil
}

// correctPHPVersion consumes PHP_VER and returns it, or "" when absent.
func correctPHPVersion(ec *EnvironmentConfig, name EnvName) (string, error) {
	raw, ok := ec.Settings[KeyPHPVersion]
	if !ok {
		return "", nil
	}
	php := phpVersionValue(raw)
	if !versions.IsPHPVersion(php) {
		return "", &SettingError{Env: name, Key: KeyPHPVersion, Reason: "not a PHP version: " + php}
	}

	if versions.Compare(php, DefaultPHPVersion) < 0 {
		logs.Warnf("%s: PHP %s is older than the supported %s", name, php, DefaultPHPVersion)
	}

	delete(ec.Settings, KeyPHPVersion)
	logs.Debugf("%s: php version set to %s", name, php)
	return php, nil
}

// phpVersionValue formats PHP_VER. Numbers keep at least one decimal place,
// so 8.0 reads as "8.0" rather than "8".
func phpVersionValue(raw any) string {
	var f float64
	switch t := raw.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return t.String()
		}
		f = n
	default:
		return FormatValue(raw)
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func correctSubdomain(ec *EnvironmentConfig, name EnvName) {
	if !ec.Settings.Has(KeyMultiSite) && ec.Settings.Has(KeySubdomain) {
		delete(ec.Settings, KeySubdomain)
		logs.Debugf("%s: %s dropped, %s is not set", name, KeySubdomain, KeyMultiSite)
	}
}

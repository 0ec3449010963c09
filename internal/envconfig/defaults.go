package envconfig

import (
	"maps"
	"strings"
)

const (
	DefaultPHPVersion       = "7.4"
	DefaultWordPressVersion = "6.0.2"
	DefaultMySQLVersion     = "10.9.2"
	DefaultPHPMyAdminTag    = "5.2.0"

	// CoreRepository is the GitHub org/repo WordPress core is installed from.
	CoreRepository = "WordPress/WordPress"

	// DefaultSiteURL is the site URL wp-env serves without overrides.
	DefaultSiteURL = "http://localhost"

	// LatestVersion selects the newest release of WordPress or CAWeb.
	LatestVersion = "latest"
)

// Setting keys the builder reads or derives.
const (
	KeySiteURL      = "WP_SITEURL"
	KeyCookieDomain = "COOKIE_DOMAIN"
	KeyWPVersion    = "WP_VER"
	KeyPHPVersion   = "PHP_VER"
	KeyMultiSite    = "WP_MULTI_SITE"
	KeySubdomain    = "WP_SUBDOMAIN"
	KeyPermalink    = "WP_PERMALINK"
	KeySiteTitle    = "WP_SITE_TITLE"
	KeyDefaultTheme = "WP_DEFAULT_THEME"
	KeyCAWebVersion = "CAWEB_VER"
	KeyCAWebGitUser = "CAWEB_GIT_USER"
	KeyETUsername   = "ET_USERNAME"
	KeyETAPIKey     = "ET_API_KEY"
)

var uploadMimeTypes = []string{
	"jpg", "jpeg", "png", "gif", "webp",
	"mov", "avi", "mpg", "3gp", "3g2", "midi", "mid",
	"pdf", "doc", "ppt", "odt", "pptx", "docx", "pps", "ppsx", "xls", "xlsx", "key",
	"mp3", "ogg", "flac", "m4a", "wav",
	"mp4", "m4v", "webm", "ogv", "flv",
	"ico",
}

var wordpressBaseline = Settings{
	KeyDefaultTheme:       "CAWeb",
	KeySiteTitle:          "CAWeb WordPress Site",
	KeyPermalink:          "/%postname%/",
	"WP_DEBUG":            true,
	"WP_DEBUG_LOG":        true,
	"WP_DEBUG_DISPLAY":    true,
	"FS_METHOD":           "direct",
	"SHOW_ON_FRONT":       "page",
	"PAGE_ON_FRONT":       "2",
	"WP_UPLOAD_FILETYPES": strings.Join(uploadMimeTypes, " "),
}

var cawebBaseline = Settings{
	KeyCAWebVersion:               LatestVersion,
	KeyCAWebGitUser:               "CA-CODE-Works",
	"CAWEB_ORG_LOGO":              "https://www.caweb.cdt.ca.gov/wp-content/uploads/sites/221/2017/12/CAWEB_PUB_Logo-257x90.jpg",
	"CAWEB_ORG_LOGO_ALT_TEXT":     "CAWebPublishing Logo",
	"CAWEB_FAV_ICON":              "https://www.caweb.cdt.ca.gov/wp-content/uploads/sites/221/2017/06/CAWEB-FavIcon-32px.ico",
	"CAWEB_COLORSCHEME":           "oceanside",
	"CAWEB_CONTACT_US_PAGE":       "https://caweb.cdt.ca.gov/contact-us/",
	"CAWEB_UTILITY_LINK1_ENABLED": false,
	"CAWEB_UTILITY_LINK2_ENABLED": false,
	"CAWEB_UTILITY_LINK3_ENABLED": false,
}

var diviBaseline = Settings{
	"ET_CLASSIC_EDITOR":         true,
	"ET_PRODUCT_TOUR":           false,
	"ET_NEW_BUILDER_EXPERIENCE": false,
}

var testsBaseline = Settings{
	KeySiteTitle: "CAWeb WordPress Test Site",
}

// Defaults returns a fresh RootConfig populated with the baseline settings.
// The baseline tables are copied, never shared.
func Defaults() *RootConfig {
	dev := newEnvironmentConfig()
	tests := newEnvironmentConfig()

	for _, table := range []Settings{wordpressBaseline, cawebBaseline, diviBaseline} {
		maps.Copy(dev.Settings, table)
		maps.Copy(tests.Settings, table)
	}
	maps.Copy(tests.Settings, testsBaseline)

	return &RootConfig{
		CorePackageRef:    CoreRepository + "#" + DefaultWordPressVersion,
		DefaultPHPVersion: DefaultPHPVersion,
		Environments: map[EnvName]*EnvironmentConfig{
			Development: dev,
			Tests:       tests,
		},
	}
}

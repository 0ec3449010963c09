package cawebenv

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
)

type optionKind int

const (
	stringOption optionKind = iota
	boolOption
)

type option struct {
	key   string
	kind  optionKind
	usage string
}

// environmentOptions are the settings start and test accept as flags. Each
// one also gets its tests twin, see testsFlagName.
var environmentOptions = []option{
	{"CAWEB_ACCESS_TOKEN", stringOption, "GitHub access token for private CAWeb repositories"},
	{"CAWEB_COLORSCHEME", stringOption, "CAWeb colorscheme"},
	{"CAWEB_DESIGN_SYSTEM_ENABLED", boolOption, "Enable the CAWeb design system"},
	{"CAWEB_FAV_ICON", stringOption, "Fav icon URL"},
	{"CAWEB_GIT_USER", stringOption, "GitHub user or org CAWeb is downloaded from"},
	{"CAWEB_PRIVATE_REPO", boolOption, "The CAWeb repository is private"},
	{"CAWEB_TEMPLATE_VER", stringOption, "State template version"},
	{"CAWEB_VER", stringOption, "CAWeb theme version, branch or 'latest'"},
	{"ET_API_KEY", stringOption, "ElegantThemes API key"},
	{"ET_CLASSIC_EDITOR", boolOption, "Enable the Divi classic editor"},
	{"ET_NEW_BUILDER_EXPERIENCE", boolOption, "Enable the latest Divi builder experience"},
	{"ET_PRODUCT_TOUR", boolOption, "Enable the Divi product tour"},
	{"ET_USERNAME", stringOption, "ElegantThemes username"},
	{"PHP_VER", stringOption, "PHP version"},
	{"WP_ENV_PORT", stringOption, "Port of the WordPress instance"},
	{"WP_HOME", stringOption, "WordPress home URL"},
	{"WP_MULTI_SITE", boolOption, "Deploy a WordPress multisite instance"},
	{"WP_PERMALINK", stringOption, "WordPress permalink structure"},
	{"WP_SITE_TITLE", stringOption, "WordPress site title"},
	{"WP_SITEURL", stringOption, "WordPress site URL"},
	{"WP_SUBDOMAIN", boolOption, "Use subdomains for the multisite instance"},
	{"WP_UPLOAD_FILETYPES", stringOption, "Allowed upload file types, space separated"},
	{"WP_VER", stringOption, "WordPress version"},
}

// testsFlagName inserts the tests marker after the first segment of key:
// CAWEB_VER becomes CAWEB_TESTS_VER, WP_ENV_PORT becomes WP_TESTS_ENV_PORT.
func testsFlagName(key string) string {
	domain, rest, ok := strings.Cut(key, "_")
	if !ok {
		return envconfig.TestsMarker + key
	}
	return domain + "_" + envconfig.TestsMarker + rest
}

// overrideFlags collects the environment option flags of a command.
type overrideFlags struct {
	strings map[string]*string
	bools   map[string]*bool
}

func attachOverrideFlags(cmd *cobra.Command) *overrideFlags {
	of := &overrideFlags{
		strings: map[string]*string{},
		bools:   map[string]*bool{},
	}

	flags := cmd.Flags()
	for _, opt := range environmentOptions {
		for _, name := range []string{opt.key, testsFlagName(opt.key)} {
			usage := opt.usage
			if name != opt.key {
				usage += " (tests environment)"
			}
			switch opt.kind {
			case boolOption:
				of.bools[name] = flags.Bool(name, false, usage)
			default:
				of.strings[name] = flags.String(name, "", usage)
			}
		}
	}
	return of
}

// UserConfig returns the flat override map: only the flags the user set.
func (of *overrideFlags) UserConfig(cmd *cobra.Command) map[string]any {
	out := map[string]any{}
	flags := cmd.Flags()
	for name, v := range of.strings {
		if flags.Changed(name) {
			out[name] = *v
		}
	}
	for name, v := range of.bools {
		if flags.Changed(name) {
			out[name] = *v
		}
	}
	return out
}

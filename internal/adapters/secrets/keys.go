package secrets

import (
	"strings"
	"unicode"
)

const Scheme = "boardroom://"

// ProviderAPIKey is the reference under which the judgment provider key is
// stored unless provider.api_key_ref says otherwise.
const ProviderAPIKey = Scheme + "provider/api_key"

// Path turns a secret reference into a slash separated relative path,
// dropping the boardroom:// scheme.
func Path(key string) string {
	trimmed := strings.TrimSpace(key)
	trimmed = strings.TrimPrefix(trimmed, Scheme)
	return strings.TrimRight(trimmed, "/")
}

// EnvName maps a secret reference to the environment variable that may hold
// it: boardroom://provider/api_key becomes BOARDROOM_PROVIDER_API_KEY.
func EnvName(key string) string {
	path := Path(key)
	if path == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("BOARDROOM_")
	for _, r := range path {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

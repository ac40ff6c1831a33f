package github

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/siteworks/deploy/constants"
)

// APIRoot canonicalises the API URL override
// so for public github:
//
//	an empty override returns https://api.github.com
//
// and for enterprise github:
//
//	https://github.my-domain/api/v3/ returns https://github.my-domain/api/v3
func APIRoot(override string) (apiURL string, err error) {
	if override == "" {
		apiURL = constants.PublicAPIURL
		return
	}

	parsed, err := url.Parse(override)
	if err != nil {
		err = fmt.Errorf("cannot parse API URL: %v", err)
		return
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		err = fmt.Errorf("API URL scheme must be http or https, got %q", parsed.Scheme)
		return
	}
	if parsed.Host == "" {
		err = fmt.Errorf("API URL %q has no host", override)
		return
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	apiURL = parsed.String()
	return
}

// Package portal builds links to the external CABL license portal.
package portal

import "strings"

// DefaultBaseURL is the public CABL license portal.
const DefaultBaseURL = "https://cabl.riverside-software.fr"

const requestPath = "/#/licenses?licenseRequest="

// Links builds portal URLs relative to BaseURL.
type Links struct {
	BaseURL string
}

// NewLinks returns Links for base, falling back to DefaultBaseURL.
func NewLinks(base string) Links {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Links{BaseURL: base}
}

// Landing is the portal's landing page.
func (l Links) Landing() string {
	return l.BaseURL
}

// LicenseRequest is the page that acquires or renews a license for the
// server described by serialized.
func (l Links) LicenseRequest(serialized string) string {
	return l.BaseURL + requestPath + EncodeURI(serialized)
}

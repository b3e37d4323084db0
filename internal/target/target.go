// Package target decides which URLs the scraper accepts.
package target

import "regexp"

// urlPattern accepts https URLs on bazos.sk or any of its subdomains. The
// subdomain may hold any Unicode letters or digits.
var urlPattern = regexp.MustCompile(`^https://[\p{L}\p{N}_]*\.bazos\.sk.*$`)

// Valid reports whether rawURL is a non-empty https bazos.sk address.
func Valid(rawURL string) bool {
	if len(rawURL) == 0 {
		return false
	}
	return urlPattern.MatchString(rawURL)
}

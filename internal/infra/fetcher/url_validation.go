// Package fetcher provides full-content fetching for article enhancement.
package fetcher

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrPrivateIP indicates the hostname resolved to a private address.
var ErrPrivateIP = errors.New("URL resolves to a private IP")

// validateURL checks a URL before any HTTP request is made. Only http and
// https schemes are accepted, and when denyPrivateIPs is set the hostname is
// resolved so requests cannot be steered at the internal network.
func validateURL(urlStr string, denyPrivateIPs bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: hostname '%s' resolves to %s", ErrPrivateIP, hostname, ip.String())
		}
	}

	return nil
}

// isPrivateIP reports whether an IP is loopback, private, or link-local.
// Covers both IPv4 and IPv6 ranges.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

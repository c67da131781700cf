// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import "strings"

// RequestURL returns the URL to request for target. When a relaying proxy is
// configured the full target URL is appended to the proxy base, which is how
// pass-through proxies expect it. An empty proxy base means direct access.
func RequestURL(proxyBase, target string) string {
	if proxyBase == "" {
		return target
	}
	return strings.TrimSuffix(proxyBase, "/") + "/" + target
}

// UnlockURL returns the proxy's manual unlock page. The relaying proxy
// refuses requests after a quota is spent; visiting this page in a browser
// grants temporary access again. Returns "" when no proxy is configured.
func UnlockURL(proxyBase string) string {
	if proxyBase == "" {
		return ""
	}
	return strings.TrimSuffix(proxyBase, "/") + "/corsdemo"
}

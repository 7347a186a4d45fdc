package util

import (
	"net/url"
	"strings"
)

// NormalizeURL completes a URL missing a scheme with https://
// NormalizeURL 为缺少协议的URL补全 https:// 前缀
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// ParseDomain extracts the hostname from a URL, stripping a leading www.
// Returns "unknown" when the URL cannot be parsed.
// ParseDomain 从URL中提取主机名并去掉 www. 前缀，解析失败时返回 "unknown"
func ParseDomain(raw string) string {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

package utils

import (
	"fmt"
	"strings"
)

// 已知协议前缀：带有这些前缀的输入不再按 host:port 兜底处理。
var knownProtocolPrefixes = []string{"http://", "https://", "ftp://", "file://"}

// NormalizeURL 规范化用户输入的 URL，保证携带受支持的协议。
// 规则：去除首尾空白；无协议时补全 https://；http/https 原样通过；
// 形如 host:port 的裸地址补全 https://；其余协议返回错误。
func NormalizeURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	scheme := extractScheme(u)
	switch {
	case scheme == "":
		return "https://" + u, nil
	case scheme == "http" || scheme == "https":
		return u, nil
	default:
		// 形如 example.com:8080 的输入会被误判为 scheme:path，
		// 只要不带已知协议前缀就按裸 host:port 处理。
		if strings.Contains(u, ":") && !hasKnownProtocolPrefix(u) {
			return "https://" + u, nil
		}
		return "", fmt.Errorf("unsupported protocol: %s", scheme)
	}
}

// extractScheme 返回首个 ':' 之前的合法 scheme（RFC 3986 字符集），否则返回空串。
func extractScheme(u string) string {
	idx := strings.Index(u, ":")
	if idx <= 0 {
		return ""
	}
	candidate := u[:idx]
	for i := 0; i < len(candidate); i++ {
		c := candidate[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return ""
		}
	}
	return strings.ToLower(candidate)
}

func hasKnownProtocolPrefix(u string) bool {
	for _, p := range knownProtocolPrefixes {
		if strings.HasPrefix(u, p) {
			return true
		}
	}
	return false
}

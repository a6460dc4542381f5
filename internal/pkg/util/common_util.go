package util

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseID 解析路径中的正整数 id
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// LoginRedirectURL 生成 <loginURL>?next=<target>，target 中的 / 不转义
func LoginRedirectURL(loginURL, target string) string {
	next := strings.ReplaceAll(url.QueryEscape(target), "%2F", "/")
	sep := "?"
	if strings.Contains(loginURL, "?") {
		sep = "&"
	}
	return loginURL + sep + "next=" + next
}

// SafeNext 只允许跳转到站内路径，否则返回 fallback
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

// FormatID 拼接 URL 用
func FormatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

package utils

import "regexp"

// 浏览器检查器复制 HTML 时附带的引用标记（如 `== $3`）。
// 先处理紧跟引号的形式以保住引号本身，再清除裸后缀。
var (
	quotedArtifactRe = regexp.MustCompile(`"\s*==\s*\$\d+`)
	bareArtifactRe   = regexp.MustCompile(`\s*==\s*\$\d+`)
)

// CleanScrapedHTML 去除抓取结果中常见的调试/模板残留。
func CleanScrapedHTML(html string) string {
	html = quotedArtifactRe.ReplaceAllString(html, `"`)
	html = bareArtifactRe.ReplaceAllString(html, "")
	return html
}

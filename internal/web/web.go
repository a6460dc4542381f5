package web

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// DateTimeLayout 页面统一的时间格式
const DateTimeLayout = "Jan 2, 2006 15:04"

// Templates 解析全部内嵌模板，页面名与文件名一致
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"datetime": formatTime,
		"lines":    lines,
	}
}

func formatTime(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.Local().Format(DateTimeLayout)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Local().Format(DateTimeLayout)
	}
	return ""
}

// lines 按行拆分帖子内容，模板中逐段输出
func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

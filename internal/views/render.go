package views

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/araddon/dateparse"
	"github.com/yuin/goldmark"
)

const tableTimeLayout = "2006-01-02 15:04"

var (
	markdown = goldmark.New()
	tokyo    = loadTokyo()
)

func loadTokyo() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// RenderMarkdown converts a chat reply to HTML. Raw HTML in the reply is
// dropped by goldmark's default renderer, so the result is safe to embed.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

// FormatTokyo renders a backend timestamp in Asia/Tokyo as
// yyyy-MM-dd HH:mm. Timestamps without an offset are read as UTC;
// anything unparseable is returned unchanged.
func FormatTokyo(raw string) string {
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return raw
	}
	return t.In(tokyo).Format(tableTimeLayout)
}

// FormatScore prints a score the way the backend encoded it.
func FormatScore(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	chatTitle  = "Copilot Chatbot"
	adminTitle = "管理ダッシュボード"
)

// page renders one of the HTML templates with the fields every layout
// expects.
func page(c *gin.Context, code int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if _, ok := data["Refresh"]; !ok {
		data["Refresh"] = false
		data["RefreshURL"] = ""
	}
	c.HTML(code, name, data)
}

func statusPage(c *gin.Context, code int, title, message string) {
	page(c, code, "status.tmpl", title, gin.H{"Message": message})
}

// NotFound is the fallback for unmatched paths.
func NotFound(c *gin.Context) {
	statusPage(c, http.StatusNotFound, "404 Not Found", "ページが見つかりません")
}

// TooManyRequests answers a rate-limited form post.
func TooManyRequests(c *gin.Context) {
	statusPage(c, http.StatusTooManyRequests, "429 Too Many Requests", "リクエストが多すぎます。しばらくしてから再度お試しください。")
}

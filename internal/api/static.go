package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// StaticHandler serves the client from dir. Paths that do not match a file
// get index.html so client-side routes keep working; unknown /api paths get
// a JSON 404 instead.
func StaticHandler(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if strings.HasPrefix(urlPath, "/api/") || urlPath == "/api" {
			abortWithError(c, http.StatusNotFound, "Not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			abortWithError(c, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		// path.Clean on a rooted path drops any "..", keeping us inside dir.
		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}

		index := filepath.Join(dir, indexFile)
		if _, err := os.Stat(index); err != nil {
			abortWithError(c, http.StatusNotFound, "Not found")
			return
		}
		c.File(index)
	}
}

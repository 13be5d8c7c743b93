package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizxmentor-backend/internal/response"
)

// StaticHandler serves the browser front-end from a directory.
type StaticHandler struct {
	dir string
}

// NewStaticHandler creates a StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// Available reports whether the front-end directory holds an index.html.
// The API works without it; only "/" and asset paths answer 404.
func (h *StaticHandler) Available() bool {
	info, err := os.Stat(filepath.Join(h.dir, "index.html"))
	return err == nil && !info.IsDir()
}

// Serve godoc
// GET /, GET /<path>
// Serves a file under the static directory; "/" and directories map to
// index.html. Unknown API paths get a JSON 404.
func (h *StaticHandler) Serve(c *gin.Context) {
	reqPath := c.Request.URL.Path
	if strings.HasPrefix(reqPath, "/api/") || strings.HasPrefix(reqPath, "/ws/") ||
		(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	// path.Clean on a rooted path cannot climb above the root.
	name := filepath.Join(h.dir, filepath.FromSlash(path.Clean("/"+reqPath)))

	info, err := os.Stat(name)
	if err == nil && info.IsDir() {
		name = filepath.Join(name, "index.html")
		info, err = os.Stat(name)
	}
	if err != nil || info.IsDir() {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	c.File(name)
}

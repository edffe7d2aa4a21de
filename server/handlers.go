package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// hello returns a fixed greeting. The double log line exercises both the
// default and debug severities of the installed pipeline.
func (s *Service) hello(c *gin.Context) {
	s.log.Info("Saying hello")
	s.log.Debug("Saying hello for debug level only")
	c.String(http.StatusOK, "Hello, world!")
}

// message reads the single seeded row from the messages table.
func (s *Service) message(c *gin.Context) {
	s.log.Info("Getting a message from the database")

	var msg string
	row := s.pool.QueryRow(c.Request.Context(), "SELECT message FROM messages LIMIT 1")
	if err := row.Scan(&msg); err != nil {
		s.log.Error("Failed to read message", map[string]interface{}{
			"error": err.Error(),
		})
		body := "internal server error"
		if s.config.MessageErrorDetail == DetailInBody {
			body = err.Error()
		}
		c.String(http.StatusInternalServerError, body)
		return
	}

	s.log.Info("Got message from database", map[string]interface{}{
		"message": msg,
	})
	c.String(http.StatusOK, msg)
}

// serveStatic serves files from the static directory for every path no
// explicit route handles. Read failures always log the underlying error and
// return a fixed body; filesystem detail never reaches the client.
func (s *Service) serveStatic(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reqPath := path.Clean("/" + c.Request.URL.Path)
	name := filepath.Join(s.staticDir, filepath.FromSlash(reqPath))

	info, err := os.Stat(name)
	if err == nil && info.IsDir() {
		name = filepath.Join(name, "index.html")
		info, err = os.Stat(name)
	}
	if err != nil {
		if os.IsNotExist(err) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		s.staticError(c, err)
		return
	}

	f, err := os.Open(name)
	if err != nil {
		s.staticError(c, err)
		return
	}
	defer f.Close()

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

func (s *Service) staticError(c *gin.Context, err error) {
	s.log.Error("Error serving static file", map[string]interface{}{
		"error": err.Error(),
		"path":  c.Request.URL.Path,
	})
	c.String(http.StatusInternalServerError, staticErrorMessage)
}

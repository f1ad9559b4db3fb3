// Package control exposes the task manager's live state and pause/resume/
// cancel controls over a small JSON HTTP API — the "external interface"
// contract of spec §6, distinct from the explicitly out-of-scope GUI.
// Grounded on AdoptOpenJDK-jlink.online's gin route-registration style
// (r.GET/r.POST, responses via c.JSON).
package control

import (
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/wrenfield/pickaxe/internal/resolver"
	"github.com/wrenfield/pickaxe/internal/source"
	"github.com/wrenfield/pickaxe/internal/tasks"
)

// Server is a thin gin router over a tasks.Manager.
type Server struct {
	mgr    *tasks.Manager[resolver.Resolved]
	engine *gin.Engine
}

// New builds a Server wrapping mgr.
func New(mgr *tasks.Manager[resolver.Resolved]) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{mgr: mgr, engine: r}
	r.GET("/tasks", s.listTasks)
	r.GET("/tasks/:id", s.getTask)
	r.POST("/tasks/:id/pause", s.pauseTask)
	r.POST("/tasks/:id/resume", s.resumeTask)
	r.POST("/tasks/:id/cancel", s.cancelTask)
	return s
}

// Run starts the HTTP server on addr (e.g. "127.0.0.1:8787"), blocking.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Handler returns the underlying http.Handler, for embedding in a larger
// server or for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

type taskJSON struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	State string `json:"state"`
	Bytes string `json:"bytes,omitempty"`
}

func toJSON(h *tasks.Handle[resolver.Resolved]) taskJSON {
	id, kind := "", ""
	if src, ok := h.Metadata().(source.Source); ok {
		id = src.Key()
		kind = src.Kind.Kind.String()
	}
	out := taskJSON{ID: id, Kind: kind, State: h.State().String()}
	if val, _, ok := h.Result(); ok {
		out.Bytes = humanize.Bytes(uint64(len(val.Data)))
	}
	return out
}

func (s *Server) listTasks(c *gin.Context) {
	handles := s.mgr.Handles()
	out := make([]taskJSON, 0, len(handles))
	for _, h := range handles {
		out = append(out, toJSON(h))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) findByKey(key string) *tasks.Handle[resolver.Resolved] {
	for _, h := range s.mgr.Handles() {
		if src, ok := h.Metadata().(source.Source); ok && src.Key() == key {
			return h
		}
	}
	return nil
}

func (s *Server) getTask(c *gin.Context) {
	h := s.findByKey(c.Param("id"))
	if h == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, toJSON(h))
}

func (s *Server) pauseTask(c *gin.Context) {
	s.control(c, (*tasks.Handle[resolver.Resolved]).Pause)
}

func (s *Server) resumeTask(c *gin.Context) {
	s.control(c, (*tasks.Handle[resolver.Resolved]).Resume)
}

func (s *Server) cancelTask(c *gin.Context) {
	s.control(c, (*tasks.Handle[resolver.Resolved]).Cancel)
}

func (s *Server) control(c *gin.Context, op func(*tasks.Handle[resolver.Resolved])) {
	h := s.findByKey(c.Param("id"))
	if h == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	op(h)
	c.JSON(http.StatusOK, toJSON(h))
}

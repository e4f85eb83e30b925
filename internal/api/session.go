package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yakov100/recipe-book-sub000/internal/viewstate"
)

// SessionHandler tracks which recipe view each UI session has open, so the
// open/editing/creating state lives in one validated state machine instead
// of scattered booleans.
type SessionHandler struct {
	mu       sync.Mutex
	machines map[string]*viewstate.Machine
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{machines: make(map[string]*viewstate.Machine)}
}

// RegisterRoutes registers the session view routes.
func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	session := router.Group("/session/:session")
	{
		session.GET("/view", h.GetView)
		session.POST("/view", h.Transition)
	}
}

func (h *SessionHandler) machine(sessionID string) *viewstate.Machine {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.machines[sessionID]
	if !ok {
		m = viewstate.NewMachine()
		h.machines[sessionID] = m
	}
	return m
}

// GetView returns the session's current view state.
func (h *SessionHandler) GetView(c *gin.Context) {
	m := h.machine(c.Param("session"))
	c.JSON(http.StatusOK, m.State())
}

// Transition applies one view action: open, edit, done, create or close.
func (h *SessionHandler) Transition(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m := h.machine(c.Param("session"))

	var err error
	switch req.Action {
	case "open":
		var id uuid.UUID
		id, err = uuid.Parse(req.RecipeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
			return
		}
		err = m.Open(id)
	case "edit":
		err = m.Edit()
	case "done":
		err = m.Done()
	case "create":
		err = m.Create()
	case "close":
		m.Close()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown action %q", req.Action)})
		return
	}

	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m.State())
}

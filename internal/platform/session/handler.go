package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the current selection so clients can show it.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/session", h.Get)
	g.DELETE("/session", h.Clear)
}

func (h *Handler) Get(c echo.Context) error {
	sess := FromContext(c)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":    sess.ID,
		"state": sess.State,
	})
}

// Clear forgets every selection. The session id stays valid.
func (h *Handler) Clear(c echo.Context) error {
	sess := FromContext(c)
	sess.Update(func(st *State) { *st = State{} })
	if err := h.store.Delete(c.Request().Context(), sess.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear session")
	}
	return c.NoContent(http.StatusNoContent)
}

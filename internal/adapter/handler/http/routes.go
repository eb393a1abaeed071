package http

import "github.com/labstack/echo/v4"

// Handlers bundles the API handlers.
type Handlers struct {
	Requests *RequestHandler
	Items    *ItemHandler
	Files    *FileHandler
}

// Register mounts every API route on g, normally the /api/v1 group.
func (h *Handlers) Register(g *echo.Group) {
	requests := g.Group("/requests")
	requests.POST("", h.Requests.Create)
	requests.GET("", h.Requests.List)
	requests.GET("/:id", h.Requests.Get)
	requests.PATCH("/:id", h.Requests.Update)
	requests.DELETE("/:id", h.Requests.Delete)
	requests.POST("/:id/submit", h.Requests.Submit)
	requests.POST("/:id/recalculate", h.Requests.Recalculate)
	requests.GET("/:id/export", h.Requests.Export)

	requests.GET("/:id/items", h.Items.ListByRequest)
	requests.POST("/:id/items", h.Items.Create)
	g.GET("/items/:id", h.Items.Get)
	g.PATCH("/items/:id", h.Items.Update)
	g.DELETE("/items/:id", h.Items.Delete)

	requests.GET("/:id/files", h.Files.ListByRequest)
	requests.POST("/:id/files", h.Files.Upload)
	g.GET("/files/:id", h.Files.Get)
	g.DELETE("/files/:id", h.Files.Delete)
}

package handlers

import (
	"context"
	"net/http"
	"postindex/pkg/models"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Lister is the listing backend the handlers serve.
type Lister interface {
	Paths(ctx context.Context) ([]string, error)
	Posts(ctx context.Context, ordered bool) ([]models.PostSummary, error)
}

type API struct {
	Lister Lister
	Logger *log.Logger
}

// Register mounts the listing routes on r.
func (a *API) Register(r gin.IRouter) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	{
		api.GET("/posts", a.ListPosts)
		api.GET("/paths", a.ListPaths)
	}
}

// ListPosts serves the post summaries, newest first unless ordered=false.
func (a *API) ListPosts(c *gin.Context) {
	ordered := true
	if raw := c.Query("ordered"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ordered parameter"})
			return
		}
		ordered = v
	}

	posts, err := a.Lister.Posts(c.Request.Context(), ordered)
	if err != nil {
		a.Logger.Error("list posts failed", "ordered", ordered, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (a *API) ListPaths(c *gin.Context) {
	paths, err := a.Lister.Paths(c.Request.Context())
	if err != nil {
		a.Logger.Error("list paths failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list paths"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"paths": paths})
}

package projects

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sitegenio/sitegen-backend/internal/auth"
	"github.com/sitegenio/sitegen-backend/internal/hosting"
	"github.com/sitegenio/sitegen-backend/internal/logging"
)

type Handler struct {
	repo    *Repo
	hosting *hosting.Client
}

func Register(rg *gin.RouterGroup, repo *Repo, hostingClient *hosting.Client) {
	h := &Handler{repo: repo, hosting: hostingClient}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:project_id", h.get)
	rg.DELETE("/:project_id", h.delete)
}

type createReq struct {
	Name      string `json:"name"`
	Framework string `json:"framework"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	framework := req.Framework
	if framework == "" {
		framework = "nextjs"
	}

	provider, raw, err := h.hosting.CreateProject(c.Request.Context(), strings.TrimSpace(req.Name), framework)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	p := &Project{
		VercelID:     provider.ID,
		Name:         provider.Name,
		Framework:    framework,
		ResponseData: raw,
	}
	p, err = h.repo.Create(c.Request.Context(), auth.UserDBID(c), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), auth.UserDBID(c), c.Param("project_id"))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	userID := auth.UserDBID(c)
	logger := logging.NewLogger(c.Request.Context())

	p, err := h.repo.Get(c.Request.Context(), userID, c.Param("project_id"))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// Provider deletion is best effort; the local mirror goes regardless so
	// the dashboard stays usable. The split result lets callers detect drift.
	providerDeleted := false
	if p.VercelID != "" {
		if err := h.hosting.DeleteProject(c.Request.Context(), p.VercelID); err != nil {
			logger.LogWarnf("delete_project", "provider deletion failed: %v", err)
		} else {
			providerDeleted = true
		}
	}

	ok, err := h.repo.Delete(c.Request.Context(), userID, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "local_deleted": ok, "provider_deleted": providerDeleted})
}

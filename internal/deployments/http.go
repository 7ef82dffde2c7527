package deployments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitegenio/sitegen-backend/internal/auth"
	"github.com/sitegenio/sitegen-backend/internal/logging"
	"github.com/sitegenio/sitegen-backend/internal/projects"
)

type Handler struct {
	service *Service
}

// Register mounts deployment routes. Listing hangs off the project resource,
// everything else off /deployments.
func Register(api *gin.RouterGroup, projectsGroup *gin.RouterGroup, service *Service) {
	h := &Handler{service: service}

	dep := api.Group("/deployments")
	dep.POST("", h.create)
	dep.GET("/:deployment_id", h.get)
	dep.DELETE("/:deployment_id", h.delete)

	projectsGroup.GET("/:project_id/deployments", h.listForProject)
}

type createReq struct {
	ProjectID string `json:"project_id"`
	DesignID  string `json:"design_id"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" || req.DesignID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "project_id and design_id are required"})
		return
	}

	d, err := h.service.Deploy(c.Request.Context(), auth.UserDBID(c), req.ProjectID, req.DesignID)
	if err != nil {
		switch {
		case errors.Is(err, projects.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, ErrNoCode):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "design has no stored code to deploy"})
		default:
			logging.NewLogger(c.Request.Context()).LogError("create_deployment", err)
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "deployment": d})
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.service.Get(c.Request.Context(), auth.UserDBID(c), c.Param("deployment_id"))
	if err != nil {
		if errors.Is(err, ErrDeploymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "deployment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deployment": d})
}

func (h *Handler) listForProject(c *gin.Context) {
	items, err := h.service.ListForProject(c.Request.Context(), auth.UserDBID(c), c.Param("project_id"))
	if err != nil {
		if errors.Is(err, projects.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "deployments": items})
}

func (h *Handler) delete(c *gin.Context) {
	res, err := h.service.Remove(c.Request.Context(), auth.UserDBID(c), c.Param("deployment_id"))
	if err != nil {
		if errors.Is(err, ErrDeploymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "deployment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":               true,
		"local_deleted":    res.LocalDeleted,
		"provider_deleted": res.ProviderDeleted,
	})
}

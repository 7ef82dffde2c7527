package domains

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitegenio/sitegen-backend/internal/auth"
	"github.com/sitegenio/sitegen-backend/internal/deployments"
	"github.com/sitegenio/sitegen-backend/internal/projects"
)

type Handler struct {
	service *Service
}

// Register mounts domain routes. Adding and listing hang off the project
// resource, everything else off /domains.
func Register(api *gin.RouterGroup, projectsGroup *gin.RouterGroup, service *Service) {
	h := &Handler{service: service}

	projectsGroup.POST("/:project_id/domains", h.add)
	projectsGroup.GET("/:project_id/domains", h.listForProject)

	dom := api.Group("/domains")
	dom.POST("/:domain_id/verify", h.verify)
	dom.POST("/:domain_id/assign", h.assign)
	dom.DELETE("/:domain_id", h.delete)
}

type addReq struct {
	Name         string `json:"name"`
	DeploymentID string `json:"deployment_id"`
}

func (h *Handler) add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name is required"})
		return
	}

	d, err := h.service.Add(c.Request.Context(), auth.UserDBID(c), c.Param("project_id"), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid domain name"})
		case errors.Is(err, projects.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	if req.DeploymentID != "" {
		d, err = h.service.Assign(c.Request.Context(), auth.UserDBID(c), d.ID, req.DeploymentID)
		if err != nil {
			switch {
			case errors.Is(err, deployments.ErrDeploymentNotFound):
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "deployment not found"})
			case errors.Is(err, ErrProjectMismatch):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "deployment belongs to a different project"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
			}
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "domain": d})
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
	c.JSON(http.StatusOK, gin.H{"ok": true, "domains": items})
}

func (h *Handler) verify(c *gin.Context) {
	d, err := h.service.Verify(c.Request.Context(), auth.UserDBID(c), c.Param("domain_id"))
	if err != nil {
		if errors.Is(err, ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "domain not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "domain": d, "verified": d.Verified})
}

type assignReq struct {
	DeploymentID string `json:"deployment_id"`
}

func (h *Handler) assign(c *gin.Context) {
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil || req.DeploymentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "deployment_id is required"})
		return
	}

	d, err := h.service.Assign(c.Request.Context(), auth.UserDBID(c), c.Param("domain_id"), req.DeploymentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrDomainNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "domain not found"})
		case errors.Is(err, deployments.ErrDeploymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "deployment not found"})
		case errors.Is(err, ErrProjectMismatch):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "deployment belongs to a different project"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "domain": d})
}

func (h *Handler) delete(c *gin.Context) {
	res, err := h.service.Remove(c.Request.Context(), auth.UserDBID(c), c.Param("domain_id"))
	if err != nil {
		if errors.Is(err, ErrDomainNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "domain not found"})
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

package sitecode

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitegenio/sitegen-backend/internal/auth"
	"github.com/sitegenio/sitegen-backend/internal/designs"
)

type Handler struct {
	repo       *Repo
	designRepo *designs.Repo
	generator  *Generator
}

func NewHandler(repo *Repo, designRepo *designs.Repo, generator *Generator) *Handler {
	return &Handler{repo: repo, designRepo: designRepo, generator: generator}
}

// RegisterDesignCodeRoutes mounts the per-design code routes on the designs
// group and the version deletion route on the api root.
func RegisterDesignCodeRoutes(designsGroup, api *gin.RouterGroup, h *Handler) {
	designsGroup.POST("/:design_id/code/generate", h.generate)
	designsGroup.PUT("/:design_id/code", h.upsert)
	designsGroup.GET("/:design_id/code", h.getCurrent)
	designsGroup.GET("/:design_id/code/versions", h.listVersions)
	designsGroup.DELETE("/:design_id/code", h.deleteCurrent)

	api.DELETE("/code/versions/:version_id", h.deleteVersion)
}

// loadOwnedDesign resolves the design and enforces ownership in one step.
func (h *Handler) loadOwnedDesign(c *gin.Context) (*designs.Design, bool) {
	d, err := h.designRepo.Get(c.Request.Context(), auth.UserDBID(c), c.Param("design_id"))
	if err != nil {
		if errors.Is(err, designs.ErrDesignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "design not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return nil, false
	}
	return d, true
}

func (h *Handler) generate(c *gin.Context) {
	d, ok := h.loadOwnedDesign(c)
	if !ok {
		return
	}

	// Generation has no persistence side effect; saving is an explicit PUT.
	artifact := h.generator.Generate(c.Request.Context(), *d)
	c.JSON(http.StatusOK, gin.H{"ok": true, "code": artifact})
}

type upsertReq struct {
	HTML       string         `json:"html"`
	CSS        string         `json:"css"`
	JavaScript string         `json:"javascript"`
	Framework  FrameworkFiles `json:"framework"`
}

func (h *Handler) upsert(c *gin.Context) {
	d, ok := h.loadOwnedDesign(c)
	if !ok {
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.HTML == "" || req.CSS == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "html and css are required"})
		return
	}

	artifact := Artifact{
		DesignID:   d.ID,
		HTML:       req.HTML,
		CSS:        req.CSS,
		JavaScript: req.JavaScript,
		Framework:  req.Framework,
	}

	id, err := h.repo.Upsert(c.Request.Context(), d.ID, &artifact)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id, "code": artifact})
}

func (h *Handler) getCurrent(c *gin.Context) {
	d, ok := h.loadOwnedDesign(c)
	if !ok {
		return
	}

	artifact, err := h.repo.GetCurrent(c.Request.Context(), d.ID)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no code saved for design"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "code": artifact})
}

func (h *Handler) listVersions(c *gin.Context) {
	d, ok := h.loadOwnedDesign(c)
	if !ok {
		return
	}

	versions, err := h.repo.ListVersions(c.Request.Context(), d.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "versions": versions})
}

func (h *Handler) deleteCurrent(c *gin.Context) {
	d, ok := h.loadOwnedDesign(c)
	if !ok {
		return
	}

	// Deleting code that was never saved is a no-op, not an error.
	if _, err := h.repo.DeleteCurrentForDesign(c.Request.Context(), d.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) deleteVersion(c *gin.Context) {
	versionID := c.Param("version_id")

	designID, err := h.repo.VersionDesignID(c.Request.Context(), versionID)
	if err != nil {
		if errors.Is(err, ErrVersionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "version not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if _, err := h.designRepo.Get(c.Request.Context(), auth.UserDBID(c), designID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "version not found"})
		return
	}

	ok, err := h.repo.DeleteVersion(c.Request.Context(), versionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "version not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

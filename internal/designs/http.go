package designs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitegenio/sitegen-backend/internal/auth"
)

type Handler struct {
	repo       *Repo
	generator  *Generator
	candidates *CandidateStore
}

func NewHandler(repo *Repo, generator *Generator, candidates *CandidateStore) *Handler {
	return &Handler{repo: repo, generator: generator, candidates: candidates}
}

func Register(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/generate", h.generate)
	rg.POST("", h.save)
	rg.GET("", h.list)
	rg.GET("/:design_id", h.get)
	rg.DELETE("/:design_id", h.delete)
}

func (h *Handler) generate(c *gin.Context) {
	var sub OnboardingSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if err := sub.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	batch := h.generator.Generate(c.Request.Context(), sub)

	sessionID := ""
	if h.candidates != nil {
		id, err := h.candidates.Put(c.Request.Context(), auth.UserDBID(c), batch)
		if err == nil {
			sessionID = id
		}
		// A failed stash is not fatal: the client still gets the designs and
		// can save them by sending the full payload.
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "session_id": sessionID, "designs": batch})
}

type saveReq struct {
	Design         *Design `json:"design"`
	SessionID      string  `json:"session_id"`
	CandidateIndex *int    `json:"candidate_index"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)

	design := req.Design
	if design == nil {
		if h.candidates == nil || req.SessionID == "" || req.CandidateIndex == nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "design or session_id and candidate_index required"})
			return
		}
		d, err := h.candidates.Get(c.Request.Context(), userID, req.SessionID, *req.CandidateIndex)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrCandidatesExpired) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"ok": false, "error": err.Error()})
			return
		}
		design = d
	}

	if design.DesignName == "" || design.CompanyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "design_name and company_name required"})
		return
	}

	saved, err := h.repo.Save(c.Request.Context(), userID, design)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "design": saved})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), auth.UserDBID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "designs": items})
}

func (h *Handler) get(c *gin.Context) {
	d, err := h.repo.Get(c.Request.Context(), auth.UserDBID(c), c.Param("design_id"))
	if err != nil {
		if errors.Is(err, ErrDesignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "design not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "design": d})
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.repo.Delete(c.Request.Context(), auth.UserDBID(c), c.Param("design_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "design not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

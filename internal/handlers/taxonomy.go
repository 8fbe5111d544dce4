package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/services"
	"github.com/lrmsph/lrms-backend/internal/types"
)

type TaxonomyHandler struct {
	log             *logger.Logger
	taxonomyService services.TaxonomyService
}

func NewTaxonomyHandler(baseLog *logger.Logger, taxonomyService services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		log:             baseLog.With("handler", "TaxonomyHandler"),
		taxonomyService: taxonomyService,
	}
}

func (h *TaxonomyHandler) respond(c *gin.Context, result services.Result) {
	if !result.Success {
		c.JSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "An error occurred.",
			Error:   result.Error,
		})
		return
	}
	RespondSuccess(c, http.StatusCreated, "Created successfully", result.Data)
}

// POST /create-grade-levels
func (h *TaxonomyHandler) CreateGradeLevel(c *gin.Context) {
	var entry types.GradeLevel
	if err := c.ShouldBindJSON(&entry); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.respond(c, h.taxonomyService.CreateGradeLevel(c.Request.Context(), &entry))
}

// POST /create-learning-areas
func (h *TaxonomyHandler) CreateLearningArea(c *gin.Context) {
	var entry types.LearningArea
	if err := c.ShouldBindJSON(&entry); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.respond(c, h.taxonomyService.CreateLearningArea(c.Request.Context(), &entry))
}

// POST /create-tracks
func (h *TaxonomyHandler) CreateTrack(c *gin.Context) {
	var entry types.Track
	if err := c.ShouldBindJSON(&entry); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.respond(c, h.taxonomyService.CreateTrack(c.Request.Context(), &entry))
}

// POST /create-components
func (h *TaxonomyHandler) CreateComponent(c *gin.Context) {
	var entry types.Component
	if err := c.ShouldBindJSON(&entry); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.respond(c, h.taxonomyService.CreateComponent(c.Request.Context(), &entry))
}

// POST /create-strands
func (h *TaxonomyHandler) CreateStrand(c *gin.Context) {
	var entry types.Strand
	if err := c.ShouldBindJSON(&entry); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.respond(c, h.taxonomyService.CreateStrand(c.Request.Context(), &entry))
}

// POST /create-types
func (h *TaxonomyHandler) CreateType(c *gin.Context) {
	var entry types.Type
	if err := c.ShouldBindJSON(&entry); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.respond(c, h.taxonomyService.CreateType(c.Request.Context(), &entry))
}

// POST /create-subject-types
func (h *TaxonomyHandler) CreateSubjectType(c *gin.Context) {
	var entry types.SubjectType
	if err := c.ShouldBindJSON(&entry); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.respond(c, h.taxonomyService.CreateSubjectType(c.Request.Context(), &entry))
}

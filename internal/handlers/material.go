package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/services"
	"github.com/lrmsph/lrms-backend/internal/sse"
)

type MaterialHandler struct {
	log             *logger.Logger
	ingestService   services.IngestService
	materialService services.MaterialService
	hub             *sse.Hub
	uploadDir       string
}

func NewMaterialHandler(baseLog *logger.Logger, ingestService services.IngestService, materialService services.MaterialService, hub *sse.Hub, uploadDir string) *MaterialHandler {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &MaterialHandler{
		log:             baseLog.With("handler", "MaterialHandler"),
		ingestService:   ingestService,
		materialService: materialService,
		hub:             hub,
		uploadDir:       uploadDir,
	}
}

// POST /upload-materials
// Multipart upload with the spreadsheet under the "excelFile" field. The
// file is spooled to a temporary path which the pipeline always removes.
func (h *MaterialHandler) UploadMaterials(c *gin.Context) {
	file, err := c.FormFile("excelFile")
	if err != nil {
		RespondFailure(c, http.StatusBadRequest, "No file uploaded.")
		return
	}

	tempPath := filepath.Join(h.uploadDir, uuid.New().String()+"-"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		h.log.Error("Failed to save uploaded spreadsheet", "error", err)
		RespondError(c, http.StatusInternalServerError, "An error occurred during file processing.", err)
		return
	}

	result := h.ingestService.ParseExcelFile(c.Request.Context(), tempPath)
	if !result.Success {
		c.JSON(http.StatusInternalServerError, Envelope{
			Success: false,
			Message: result.Message,
			Error:   result.Error,
		})
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(sse.Message{Event: sse.EventMaterialsIngested, Data: gin.H{"count": result.Count}})
	}

	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Message: result.Message,
		Data:    gin.H{"count": result.Count},
	})
}

// POST /upload-material-file/:materialId
// Attaches a binary asset to an existing material. The asset keeps its
// original file name under uploads/materials/.
func (h *MaterialHandler) UploadMaterialFile(c *gin.Context) {
	materialID, err := strconv.ParseUint(c.Param("materialId"), 10, 64)
	if err != nil {
		RespondFailure(c, http.StatusBadRequest, "Invalid material ID provided.")
		return
	}

	file, err := c.FormFile("materialFile")
	if err != nil {
		RespondFailure(c, http.StatusBadRequest, "No file uploaded.")
		return
	}

	destPath := filepath.Join(h.uploadDir, "materials", filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, destPath); err != nil {
		h.log.Error("Failed to save material file", "material_id", materialID, "error", err)
		RespondError(c, http.StatusInternalServerError, "An error occurred during file upload and processing.", err)
		return
	}

	view, err := h.materialService.UpdateMaterialWithFile(c.Request.Context(), uint(materialID), destPath, filepath.Base(file.Filename))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RespondFailure(c, http.StatusNotFound, "Material not found.")
			return
		}
		RespondError(c, http.StatusInternalServerError, "An error occurred during file upload and processing.", err)
		return
	}

	RespondSuccess(c, http.StatusOK, "File attached successfully", view)
}

// GET /getAllMaterials
func (h *MaterialHandler) GetAllMaterials(c *gin.Context) {
	views, err := h.materialService.FetchAllMaterials(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Failed to fetch materials", err)
		return
	}
	RespondSuccess(c, http.StatusOK, "Materials fetched successfully", views)
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/users-generator-api/internal/config"
	"github.com/users-generator-api/internal/models"
	"github.com/users-generator-api/internal/service"
)

// UserHandler handles the /users endpoints
type UserHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// Generate handles GET /users/generate?count=N and returns the profiles as
// a downloadable JSON file.
func (h *UserHandler) Generate(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("count"))
	if raw == "" {
		respondValidation(c, models.NewValidationError("count", "is required"))
		return
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		respondValidation(c, models.NewValidationError("count", "must be an integer"))
		return
	}

	profiles, err := h.services.Generator.Generate(c.Request.Context(), count)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	body, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		respondError(c, h.log, fmt.Errorf("failed to encode profiles: %w", err))
		return
	}

	filename := fmt.Sprintf("users_%d.json", time.Now().Unix())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/json", body)
}

// BatchImport handles POST /users/batch with a multipart "file" field
func (h *UserHandler) BatchImport(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, models.NewValidationError("file", "is required"))
		return
	}

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".json" {
		respondValidation(c, models.NewValidationError("file", "must be a file of type: json"))
		return
	}

	maxSize := h.cfg.Import.MaxUploadSize
	if header.Size > maxSize {
		respondValidation(c, models.NewValidationError("file",
			fmt.Sprintf("must not be greater than %d kilobytes", maxSize/1024)))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.log, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	outcome, err := h.services.Import.ImportFile(c.Request.Context(), file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Int("total", outcome.Total).
		Int("imported", outcome.Imported).
		Int("failed", outcome.Failed).
		Msg("Batch import finished")

	c.JSON(http.StatusOK, outcome)
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		respondError(c, h.log, models.ErrUnauthenticated)
		return
	}

	user, err := h.services.User.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Show handles GET /users/:username
func (h *UserHandler) Show(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		respondError(c, h.log, models.ErrUnauthenticated)
		return
	}

	user, err := h.services.User.ViewProfile(c.Request.Context(), claims.UserID, c.Param("username"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

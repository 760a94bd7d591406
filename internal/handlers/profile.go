package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workout-api/internal/dto"
	apierrors "github.com/yukikurage/workout-api/internal/errors"
	"github.com/yukikurage/workout-api/internal/logger"
	"github.com/yukikurage/workout-api/internal/services"
)

// ProfileHandler serves the caller's profile and its change history.
type ProfileHandler struct {
	profileService *services.ProfileService
	log            *logger.Logger
}

func NewProfileHandler(profileService *services.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		log:            log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	user, err := h.profileService.GetProfile(p)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateProfile applies the changed fields and appends a history record
// describing them.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	type UpdateProfileRequest struct {
		FullName *string `json:"full_name" binding:"omitempty,max=255"`
		Weight   *int    `json:"weight"`
		Height   *int    `json:"height"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestFromBinding(c, err)
		return
	}

	record, err := h.profileService.ApplyProfileChange(p, services.ProfilePatch{
		FullName: req.FullName,
		Weight:   req.Weight,
		Height:   req.Height,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryDTO(*record))
}

// RecordMetric appends a metric history record for the path value.
func (h *ProfileHandler) RecordMetric(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	value, err := strconv.ParseFloat(c.Param("value"), 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid metric value")
		return
	}

	record, err := h.profileService.RecordMetric(p, value)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHistoryDTO(*record))
}

func (h *ProfileHandler) ListHistory(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	records, err := h.profileService.ListHistory(p)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToHistoryDTOs(records))
}

func (h *ProfileHandler) DeleteHistory(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	recordID, ok := resourceIDOrAbort(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteHistory(p, recordID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "History record deleted successfully",
	})
}

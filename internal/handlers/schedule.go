package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workout-api/internal/dto"
	apierrors "github.com/yukikurage/workout-api/internal/errors"
	"github.com/yukikurage/workout-api/internal/logger"
	"github.com/yukikurage/workout-api/internal/services"
)

// ScheduleHandler coordinates schedule-related HTTP handlers.
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	log             *logger.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *services.ScheduleService, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		log:             log,
	}
}

type createScheduleRequest struct {
	GoalID              *uint64    `json:"goal_id"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	SelectedExerciseIDs []uint64   `json:"selected_exercise_ids"`
	Note                string     `json:"note" binding:"max=255"`
	ExtendedNote        string     `json:"extended_note"`
	RecurrenceExpr      string     `json:"recurrence_expr" binding:"omitempty,crontab"`
}

type updateScheduleRequest struct {
	GoalID              *uint64    `json:"goal_id"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	SelectedExerciseIDs []uint64   `json:"selected_exercise_ids"`
	Note                *string    `json:"note" binding:"omitempty,max=255"`
	ExtendedNote        *string    `json:"extended_note"`
	RecurrenceExpr      *string    `json:"recurrence_expr" binding:"omitempty,crontab"`
}

// ListSchedules returns the caller's schedules with reconciled exercise sets.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	schedules, err := h.scheduleService.ListSchedules(p)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleDTOs(schedules))
}

func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	scheduleID, ok := resourceIDOrAbort(c)
	if !ok {
		return
	}

	schedule, err := h.scheduleService.GetSchedule(p, scheduleID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleDTO(*schedule))
}

func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestFromBinding(c, err)
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(p, services.CreateScheduleInput{
		GoalID:              req.GoalID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		SelectedExerciseIDs: req.SelectedExerciseIDs,
		Note:                req.Note,
		ExtendedNote:        req.ExtendedNote,
		RecurrenceExpr:      req.RecurrenceExpr,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToScheduleDTO(*schedule))
}

// UpdateSchedule applies a partial update and re-reconciles against the
// linked goal.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	scheduleID, ok := resourceIDOrAbort(c)
	if !ok {
		return
	}

	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestFromBinding(c, err)
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(p, scheduleID, services.SchedulePatch{
		GoalID:              req.GoalID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		SelectedExerciseIDs: req.SelectedExerciseIDs,
		Note:                req.Note,
		ExtendedNote:        req.ExtendedNote,
		RecurrenceExpr:      req.RecurrenceExpr,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToScheduleDTO(*schedule))
}

func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	scheduleID, ok := resourceIDOrAbort(c)
	if !ok {
		return
	}

	if err := h.scheduleService.DeleteSchedule(p, scheduleID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Schedule deleted successfully",
	})
}

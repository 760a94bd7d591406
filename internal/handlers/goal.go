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

// GoalHandler coordinates goal-related HTTP handlers.
type GoalHandler struct {
	goalService       *services.GoalService
	suggestionService *services.SuggestionService
	log               *logger.Logger
}

// NewGoalHandler creates a new GoalHandler. suggestionService may be nil.
func NewGoalHandler(goalService *services.GoalService, suggestionService *services.SuggestionService, log *logger.Logger) *GoalHandler {
	return &GoalHandler{
		goalService:       goalService,
		suggestionService: suggestionService,
		log:               log,
	}
}

type createGoalRequest struct {
	Name                string     `json:"name" binding:"required,max=255"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	RangeMin            *int       `json:"range_min" binding:"omitempty,min=0"`
	RangeMax            *int       `json:"range_max" binding:"omitempty,min=0"`
	SelectedExerciseIDs []uint64   `json:"selected_exercise_ids"`
	Completed           bool       `json:"completed"`
	GoalTypeID          uint64     `json:"goal_type_id" binding:"required"`
}

type updateGoalRequest struct {
	Name                *string    `json:"name" binding:"omitempty,max=255"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	RangeMin            *int       `json:"range_min" binding:"omitempty,min=0"`
	RangeMax            *int       `json:"range_max" binding:"omitempty,min=0"`
	SelectedExerciseIDs []uint64   `json:"selected_exercise_ids"`
	Completed           *bool      `json:"completed"`
	GoalTypeID          *uint64    `json:"goal_type_id"`
}

// ListGoals returns the caller's goals with their exercises.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(p)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	out := make([]dto.GoalDTO, 0, len(goals))
	for _, g := range goals {
		out = append(out, dto.ToGoalDTO(g.Goal, g.Exercises))
	}
	c.JSON(http.StatusOK, out)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	goalID, ok := resourceIDOrAbort(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(p, goalID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalDTO(goal.Goal, goal.Exercises))
}

// CreateGoal creates a goal owned by the caller.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestFromBinding(c, err)
		return
	}

	goal, err := h.goalService.CreateGoal(p, services.CreateGoalInput{
		Name:                req.Name,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		RangeMin:            req.RangeMin,
		RangeMax:            req.RangeMax,
		SelectedExerciseIDs: req.SelectedExerciseIDs,
		Completed:           req.Completed,
		GoalTypeID:          req.GoalTypeID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGoalDTO(*goal, nil))
}

// UpdateGoal applies a partial update. Omitted fields keep their value.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	goalID, ok := resourceIDOrAbort(c)
	if !ok {
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestFromBinding(c, err)
		return
	}

	goal, err := h.goalService.UpdateGoal(p, goalID, services.GoalPatch{
		Name:                req.Name,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		RangeMin:            req.RangeMin,
		RangeMax:            req.RangeMax,
		SelectedExerciseIDs: req.SelectedExerciseIDs,
		Completed:           req.Completed,
		GoalTypeID:          req.GoalTypeID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGoalDTO(*goal, nil))
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}
	goalID, ok := resourceIDOrAbort(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(p, goalID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Goal deleted successfully",
	})
}

// SuggestExercises asks the language model for catalog exercises matching a
// free-text goal description.
func (h *GoalHandler) SuggestExercises(c *gin.Context) {
	p, ok := principalOrAbort(c)
	if !ok {
		return
	}

	type SuggestRequest struct {
		Text       string  `json:"text" binding:"required,max=1000"`
		GoalTypeID *uint64 `json:"goal_type_id"`
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestFromBinding(c, err)
		return
	}

	if h.suggestionService == nil {
		respondServiceError(c, h.log, services.ErrAIUnavailable)
		return
	}

	exercises, err := h.suggestionService.SuggestExercises(c.Request.Context(), p, services.SuggestInput{
		Text:       req.Text,
		GoalTypeID: req.GoalTypeID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	ids := make([]uint64, 0, len(exercises))
	for _, e := range exercises {
		ids = append(ids, e.ID)
	}
	c.JSON(http.StatusOK, gin.H{
		"exercise_ids": ids,
		"exercises":    dto.ToExerciseDTOs(exercises),
	})
}

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

// CatalogHandler serves the public reference data.
type CatalogHandler struct {
	catalog *services.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(catalog *services.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// ListExercises returns the exercise catalog, optionally filtered by goal_type_id.
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	var goalTypeID *uint64
	if raw := c.Query("goal_type_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid goal_type_id")
			return
		}
		goalTypeID = &id
	}

	exercises, err := h.catalog.ListExercises(goalTypeID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExerciseDTOs(exercises))
}

func (h *CatalogHandler) GetExercise(c *gin.Context) {
	id, ok := resourceIDOrAbort(c)
	if !ok {
		return
	}

	exercise, err := h.catalog.GetExercise(id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExerciseDTO(*exercise))
}

func (h *CatalogHandler) ListGoalTypes(c *gin.Context) {
	goalTypes, err := h.catalog.ListGoalTypes()
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalTypeDTOs(goalTypes))
}

func (h *CatalogHandler) ListExerciseTypes(c *gin.Context) {
	exerciseTypes, err := h.catalog.ListExerciseTypes()
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExerciseTypeDTOs(exerciseTypes))
}

func (h *CatalogHandler) ListExerciseUnits(c *gin.Context) {
	units, err := h.catalog.ListExerciseUnits()
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExerciseUnitDTOs(units))
}

package dto

import (
	"time"

	"github.com/yukikurage/workout-api/internal/models"
)

// HistoryDTO is one audit record. Fields that did not change are omitted.
type HistoryDTO struct {
	ID             uint64    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	FullNameChange *string   `json:"full_name_change,omitempty"`
	WeightChange   *int      `json:"weight_change,omitempty"`
	HeightChange   *int      `json:"height_change,omitempty"`
	MetricValue    *float64  `json:"metric_value,omitempty"`
}

func ToHistoryDTO(h models.History) HistoryDTO {
	return HistoryDTO{
		ID:             h.ID,
		CreatedAt:      h.CreatedAt,
		FullNameChange: h.FullNameChange,
		WeightChange:   h.WeightChange,
		HeightChange:   h.HeightChange,
		MetricValue:    h.MetricValue,
	}
}

func ToHistoryDTOs(records []models.History) []HistoryDTO {
	out := make([]HistoryDTO, 0, len(records))
	for _, h := range records {
		out = append(out, ToHistoryDTO(h))
	}
	return out
}

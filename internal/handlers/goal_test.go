package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/dto"
)

type GoalHandlerTestSuite struct {
	suite.Suite
	env        *testEnv
	alice      auth.Principal
	aliceToken string
	bobToken   string
}

func (s *GoalHandlerTestSuite) SetupTest() {
	s.env = setupTestEnv(s.T())
	s.env.seedCatalog(s.T())
	s.alice, s.aliceToken = s.env.createUser(s.T(), "alice")
	_, s.bobToken = s.env.createUser(s.T(), "bob")
}

func (s *GoalHandlerTestSuite) createGoal(token string, body map[string]any) dto.GoalDTO {
	w := s.env.do(s.T(), http.MethodPost, "/user/goals", token, body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.GoalDTO](s.T(), w)
}

func (s *GoalHandlerTestSuite) TestCreateGoal() {
	goal := s.createGoal(s.aliceToken, map[string]any{
		"name":                  "Leg day",
		"start_date":            "2024-01-01T00:00:00Z",
		"end_date":              "2024-03-01T00:00:00Z",
		"range_min":             5,
		"range_max":             10,
		"selected_exercise_ids": []uint64{2, 1, 2},
		"goal_type_id":          1,
	})

	s.Equal("Leg day", goal.Name)
	s.Equal(s.alice.ID, goal.UserID)
	s.Equal([]uint64{1, 2}, goal.SelectedExerciseIDs)
	s.Equal("strength", goal.GoalTarget)
	s.False(goal.Completed)
}

func (s *GoalHandlerTestSuite) TestCreateGoalValidation() {
	w := s.env.do(s.T(), http.MethodPost, "/user/goals", s.aliceToken, map[string]any{
		"goal_type_id": 1,
		"range_min":    -1,
	})
	s.Equal(http.StatusBadRequest, w.Code)
	body := decode[errorBody](s.T(), w)
	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	s.ElementsMatch([]string{"name", "range_min"}, fields)
}

func (s *GoalHandlerTestSuite) TestCreateGoalRejectsInvertedRanges() {
	w := s.env.do(s.T(), http.MethodPost, "/user/goals", s.aliceToken, map[string]any{
		"name":         "Backwards",
		"start_date":   "2024-03-01T00:00:00Z",
		"end_date":     "2024-01-01T00:00:00Z",
		"goal_type_id": 1,
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.env.do(s.T(), http.MethodPost, "/user/goals", s.aliceToken, map[string]any{
		"name":         "Backwards",
		"range_min":    10,
		"range_max":    5,
		"goal_type_id": 1,
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *GoalHandlerTestSuite) TestCreateGoalUnknownGoalType() {
	w := s.env.do(s.T(), http.MethodPost, "/user/goals", s.aliceToken, map[string]any{
		"name":         "Mystery",
		"goal_type_id": 42,
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *GoalHandlerTestSuite) TestListGoalsHydratesExercises() {
	w := s.env.do(s.T(), http.MethodGet, "/user/goals", s.aliceToken, nil)
	s.Equal(http.StatusNotFound, w.Code)

	s.createGoal(s.aliceToken, map[string]any{
		"name":                  "Strength",
		"selected_exercise_ids": []uint64{1, 99},
		"goal_type_id":          1,
	})

	w = s.env.do(s.T(), http.MethodGet, "/user/goals", s.aliceToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	goals := decode[[]dto.GoalDTO](s.T(), w)
	s.Require().Len(goals, 1)
	s.Equal([]uint64{1, 99}, goals[0].SelectedExerciseIDs)
	s.Require().Len(goals[0].Exercises, 1)
	s.Equal("Squat", goals[0].Exercises[0].Name)
	s.Equal("reps", goals[0].Exercises[0].PrimaryUnit)

	w = s.env.do(s.T(), http.MethodGet, "/user/goals", s.bobToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *GoalHandlerTestSuite) TestGetGoalOwnership() {
	goal := s.createGoal(s.aliceToken, map[string]any{"name": "Mine", "goal_type_id": 1})
	path := fmt.Sprintf("/user/goals/%d", goal.ID)

	w := s.env.do(s.T(), http.MethodGet, path, s.aliceToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Mine", decode[dto.GoalDTO](s.T(), w).Name)

	w = s.env.do(s.T(), http.MethodGet, path, s.bobToken, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.env.do(s.T(), http.MethodGet, path, "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *GoalHandlerTestSuite) TestUpdateGoalPartial() {
	goal := s.createGoal(s.aliceToken, map[string]any{
		"name":                  "Original",
		"selected_exercise_ids": []uint64{1},
		"goal_type_id":          1,
	})
	path := fmt.Sprintf("/user/goals/%d", goal.ID)

	w := s.env.do(s.T(), http.MethodPut, path, s.aliceToken, map[string]any{"completed": true})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.GoalDTO](s.T(), w)
	s.Equal("Original", updated.Name)
	s.True(updated.Completed)
	s.Equal([]uint64{1}, updated.SelectedExerciseIDs)

	w = s.env.do(s.T(), http.MethodPut, path, s.aliceToken, map[string]any{
		"selected_exercise_ids": []uint64{},
		"goal_type_id":          2,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	updated = decode[dto.GoalDTO](s.T(), w)
	s.Empty(updated.SelectedExerciseIDs)
	s.Equal("endurance", updated.GoalTarget)

	w = s.env.do(s.T(), http.MethodPut, path, s.bobToken, map[string]any{"name": "Stolen"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *GoalHandlerTestSuite) TestDeleteGoal() {
	goal := s.createGoal(s.aliceToken, map[string]any{"name": "Temporary", "goal_type_id": 1})
	path := fmt.Sprintf("/user/goals/%d", goal.ID)

	w := s.env.do(s.T(), http.MethodDelete, path, s.bobToken, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.env.do(s.T(), http.MethodDelete, path, s.aliceToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.env.do(s.T(), http.MethodDelete, path, s.aliceToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *GoalHandlerTestSuite) TestInvalidGoalID() {
	w := s.env.do(s.T(), http.MethodGet, "/user/goals/abc", s.aliceToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *GoalHandlerTestSuite) TestSuggestWithoutModel() {
	w := s.env.do(s.T(), http.MethodPost, "/user/goals/suggest", s.aliceToken, map[string]any{"text": "run a marathon"})
	s.Equal(http.StatusServiceUnavailable, w.Code)
	s.Equal("SERVICE_UNAVAILABLE", decode[errorBody](s.T(), w).Code)
}

func TestGoalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GoalHandlerTestSuite))
}


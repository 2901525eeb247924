package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hosteldada/backend/internal/assignment"
	"hosteldada/backend/internal/matching"
	"hosteldada/backend/internal/storage"
	"hosteldada/backend/internal/survey"
)

// Handler exposes the matching core over HTTP.
type Handler struct {
	Matches     *matching.Service
	Assignments *assignment.Service
	Surveys     *survey.Service
	Storage     *storage.Service
}

func NewHandler(matches *matching.Service, assignments *assignment.Service, surveys *survey.Service, s *storage.Service) *Handler {
	return &Handler{
		Matches:     matches,
		Assignments: assignments,
		Surveys:     surveys,
		Storage:     s,
	}
}

// respondError maps the core's error taxonomy onto HTTP statuses. Everything
// in the taxonomy is a local validation failure the caller should see, not a
// retryable fault.
func respondError(c *gin.Context, err error) {
	var (
		incomplete *matching.IncompleteSurveyError
		badTime    *matching.InvalidTimeFormatError
		notFound   *matching.SurveyNotFoundError
		noData     *matching.InsufficientDataError
		planWrite  *matching.PlanWriteError
		badMove    *assignment.InvalidTransitionError
		overCap    *storage.CapacityExceededError
	)
	switch {
	case errors.As(err, &incomplete), errors.As(err, &badTime), errors.As(err, &noData):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &badMove), errors.As(err, &overCap), errors.Is(err, matching.ErrTermPlanInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &planWrite):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hosteldada/backend/internal/matching"
	"hosteldada/backend/internal/models"
)

// SubmitSurvey creates or updates a student's survey for a term.
func (h *Handler) SubmitSurvey(c *gin.Context) {
	var survey models.Survey
	if err := c.ShouldBindJSON(&survey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid survey payload"})
		return
	}
	if survey.StudentID == "" || survey.Term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id and term are required"})
		return
	}
	if err := h.Surveys.Submit(&survey); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"survey": survey, "complete": survey.IsComplete()})
}

// GetSurvey returns one student's survey for the term in the query.
func (h *Handler) GetSurvey(c *gin.Context) {
	survey, err := h.Surveys.Get(c.Param("studentID"), c.Query("term"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// ScorePair scores two students identified by the a, b and term query params.
func (h *Handler) ScorePair(c *gin.Context) {
	a, b, term := c.Query("a"), c.Query("b"), c.Query("term")
	if a == "" || b == "" || term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a, b and term query params are required"})
		return
	}
	score, err := h.Matches.ScorePair(a, b, term)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// TopMatches returns the student's best matches for a term, best first.
func (h *Handler) TopMatches(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term query param is required"})
		return
	}
	k, _ := strconv.Atoi(c.DefaultQuery("k", "0"))
	matches, err := h.Matches.TopMatches(c.Param("studentID"), term, k)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// AutoAssign runs the greedy planner for a term. On a partial failure the
// response still lists the assignments that were created before the failing
// pair, so the administrator can reconcile instead of guessing.
func (h *Handler) AutoAssign(c *gin.Context) {
	term := c.Param("term")
	created, err := h.Matches.AutoAssignTerm(c.Request.Context(), term)
	if err != nil {
		var planWrite *matching.PlanWriteError
		if errors.As(err, &planWrite) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":       planWrite.Error(),
				"failed_pair": []string{planWrite.StudentAID, planWrite.StudentBID},
				"created":     created,
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assignments": created})
}

// ListAssignments returns every assignment for a term.
func (h *Handler) ListAssignments(c *gin.Context) {
	assignments, err := h.Storage.ListAssignments(c.Param("term"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

// TransitionAssignment moves an assignment through its lifecycle. The
// authenticated admin becomes the approver on approval.
func (h *Handler) TransitionAssignment(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	actor := c.GetString("admin_id")
	updated, err := h.Assignments.Transition(c.Param("id"), body.Status, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

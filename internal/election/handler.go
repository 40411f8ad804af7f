package election

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID reads a numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps the package's sentinel errors onto status codes.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "you cannot edit a closed election"})
	case errors.Is(err, ErrHasVotes):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrAlreadyCandidate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ListElections handles GET /api/elections.
func ListElections(c *gin.Context) {
	elections, err := List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list elections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"elections": elections})
}

// CreateElectionHandler handles POST /api/admin/elections.
func CreateElectionHandler(c *gin.Context) {
	var in ElectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	e, err := CreateElection(in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// UpdateElectionHandler handles PUT /api/admin/elections/:id.
func UpdateElectionHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in ElectionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	e, err := UpdateElection(id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// CloseElectionHandler handles POST /api/admin/elections/:id/close.
func CloseElectionHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	e, err := CloseElection(id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "the election '" + e.Name + "' has been closed",
		"election": e,
	})
}

// DeleteElectionHandler handles DELETE /api/admin/elections/:id.
func DeleteElectionHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := DeleteElection(id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "election deleted"})
}

// AddCandidateHandler handles POST /api/admin/elections/:id/candidates.
func AddCandidateHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in CandidateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	cand, err := AddCandidate(id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cand)
}

// UpdateCandidateHandler handles PUT /api/admin/candidates/:id.
func UpdateCandidateHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in CandidateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	cand, err := UpdateCandidate(id, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

// DeleteCandidateHandler handles DELETE /api/admin/candidates/:id.
func DeleteCandidateHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := DeleteCandidate(id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "candidate deleted"})
}

// FieldInput is the JSON body for adding a candidate profile field.
type FieldInput struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// AddFieldHandler handles POST /api/admin/candidates/:id/fields.
func AddFieldHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in FieldInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	f, err := AddField(id, in.Name, in.Value)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// DeleteFieldHandler handles DELETE /api/admin/fields/:id.
func DeleteFieldHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := DeleteField(id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "field deleted"})
}

package report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/authz"
	"github.com/campuspolls/election-backend/internal/user"
)

// GetResults handles GET /api/elections/:id/results. Admins may always look;
// students only once the election is closed, matching the visibility rule of
// the results page.
func GetResults(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid election id"})
		return
	}
	u, ok := user.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	e, results, err := Results(uint(id))
	if err != nil {
		if errors.Is(err, election.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "election not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
		return
	}

	if !authz.Allow(u, authz.ActionViewResults, e) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "the results for this election are not yet available",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"election": gin.H{"id": e.ID, "name": e.Name, "is_closed": e.IsClosed},
		"results":  results,
	})
}

// ReconcileHandler handles GET /api/admin/elections/:id/reconcile.
func ReconcileHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid election id"})
		return
	}

	mismatches, err := Reconcile(uint(id))
	if err != nil {
		if errors.Is(err, election.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "election not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"consistent": len(mismatches) == 0,
		"mismatches": mismatches,
	})
}

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary      Current Selection
// @Description  Snapshot of the selected demo, customer and date
// @Tags         selection
// @Produce      json
// @Success      200  {object}  selection.Snapshot
// @Router       /selection [get]
func (s *Server) CurrentSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.selection.Current()})
}

// @Summary      Select Demo
// @Description  Selects a demo and synchronously resolves its customer
// @Tags         selection
// @Produce      json
// @Param        id   path      string  true  "Demo ID"
// @Success      200  {object}  selection.Snapshot
// @Router       /demos/{id}/select [put]
func (s *Server) SelectDemo(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if err := s.selection.SelectDemo(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.selection.Current()})
}

// @Summary      Clear Demo Selection
// @Description  Clears both the demo and customer selection
// @Tags         selection
// @Produce      json
// @Success      200  {object}  selection.Snapshot
// @Router       /selection/demo [delete]
func (s *Server) ClearDemoSelection(c *gin.Context) {
	s.selection.ClearDemo()
	c.JSON(http.StatusOK, gin.H{"data": s.selection.Current()})
}

type selectDateRequest struct {
	Date string `json:"date"`
}

// @Summary      Select Date
// @Description  Sets the calendar day used to filter bookings
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        request body selectDateRequest true "Select Date Request"
// @Success      200  {object}  selection.Snapshot
// @Router       /selection/date [put]
func (s *Server) SelectDate(c *gin.Context) {
	var req selectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
			return
		}
		date = parsed
	} else {
		date = time.Now().UTC()
	}

	s.selection.SelectDate(date)
	c.JSON(http.StatusOK, gin.H{"data": s.selection.Current()})
}

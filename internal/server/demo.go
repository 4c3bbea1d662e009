package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	"github.com/gin-gonic/gin"
)

type createDemoRequest struct {
	Time            string    `json:"time"`
	Company         string    `json:"company"`
	Type            string    `json:"type"`
	Location        string    `json:"location"`
	LocationDetails string    `json:"location_details"`
	Attendees       int       `json:"attendees"`
	Date            time.Time `json:"date"`
	CustomerID      string    `json:"customer_id"`
}

// @Summary      Create Demo
// @Description  Books a demo; revenue is derived and attributed atomically
// @Tags         demos
// @Accept       json
// @Produce      json
// @Param        request body createDemoRequest true "Create Demo Request"
// @Success      200  {object}  demodomain.Demo
// @Router       /demos [post]
func (s *Server) CreateDemo(c *gin.Context) {
	var req createDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer id"))
		return
	}

	resp, err := s.demoSvc.Create(c.Request.Context(), demodomain.CreateDemoRequest{
		Time:            req.Time,
		Company:         req.Company,
		Type:            req.Type,
		Location:        demodomain.Location(strings.ToLower(strings.TrimSpace(req.Location))),
		LocationDetails: req.LocationDetails,
		Attendees:       req.Attendees,
		Date:            req.Date,
		CustomerID:      customerID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Demos
// @Description  Lists all demos, or only those on ?date= (RFC 3339 or YYYY-MM-DD)
// @Tags         demos
// @Produce      json
// @Param        date  query     string  false  "Calendar day filter"
// @Success      200  {object}  []demodomain.Demo
// @Router       /demos [get]
func (s *Server) ListDemos(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		resp, err := s.demoSvc.List(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": resp})
		return
	}

	date, err := parseDate(raw)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "invalid date"))
		return
	}
	resp, err := s.demoSvc.ListForDate(c.Request.Context(), date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Demo
// @Tags         demos
// @Produce      json
// @Param        id   path      string  true  "Demo ID"
// @Success      200  {object}  demodomain.Demo
// @Router       /demos/{id} [get]
func (s *Server) GetDemoByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	resp, err := s.demoSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Location Types
// @Description  Static reference catalog of bookable locations
// @Tags         demos
// @Produce      json
// @Success      200  {object}  []demodomain.LocationType
// @Router       /locations [get]
func (s *Server) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": demodomain.CatalogList()})
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, demodomain.ErrInvalidDate
}

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	"github.com/gin-gonic/gin"
)

type stakeholderRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Influence string `json:"influence"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

type createCustomerRequest struct {
	Company         string               `json:"company"`
	Industry        string               `json:"industry"`
	Size            string               `json:"size"`
	Budget          string               `json:"budget"`
	Website         string               `json:"website"`
	Status          string               `json:"status"`
	PainPoints      []string             `json:"pain_points"`
	Requirements    []string             `json:"requirements"`
	Stakeholders    []stakeholderRequest `json:"stakeholders"`
	CurrentSolution string               `json:"current_solution"`
	Timeline        string               `json:"timeline"`
	Notes           string               `json:"notes"`
	LastContact     *time.Time           `json:"last_contact"`
}

// @Summary      Create Customer
// @Description  Create a new customer profile with zeroed revenue aggregates
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body createCustomerRequest true "Create Customer Request"
// @Success      200  {object}  customerdomain.CustomerProfile
// @Router       /customers [post]
func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq := customerdomain.CreateCustomerRequest{
		Company:         strings.TrimSpace(req.Company),
		Industry:        req.Industry,
		Size:            req.Size,
		Budget:          req.Budget,
		Website:         req.Website,
		Status:          customerdomain.CustomerStatus(strings.ToLower(strings.TrimSpace(req.Status))),
		PainPoints:      req.PainPoints,
		Requirements:    req.Requirements,
		CurrentSolution: req.CurrentSolution,
		Timeline:        req.Timeline,
		Notes:           req.Notes,
	}
	if req.LastContact != nil {
		domainReq.LastContact = *req.LastContact
	}
	for _, sh := range req.Stakeholders {
		domainReq.Stakeholders = append(domainReq.Stakeholders, customerdomain.StakeholderInput{
			Name:      sh.Name,
			Role:      sh.Role,
			Influence: customerdomain.StakeholderInfluence(strings.ToLower(strings.TrimSpace(sh.Influence))),
			Email:     sh.Email,
			Phone:     sh.Phone,
			Notes:     sh.Notes,
		})
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Customers
// @Tags         customers
// @Produce      json
// @Success      200  {object}  []customerdomain.CustomerProfile
// @Router       /customers [get]
func (s *Server) ListCustomers(c *gin.Context) {
	resp, err := s.customerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Customer
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  customerdomain.CustomerProfile
// @Router       /customers/{id} [get]
func (s *Server) GetCustomerByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	resp, err := s.customerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCustomerRequest struct {
	Company         *string    `json:"company"`
	Industry        *string    `json:"industry"`
	Size            *string    `json:"size"`
	Budget          *string    `json:"budget"`
	Website         *string    `json:"website"`
	Status          *string    `json:"status"`
	PainPoints      []string   `json:"pain_points"`
	Requirements    []string   `json:"requirements"`
	CurrentSolution *string    `json:"current_solution"`
	Timeline        *string    `json:"timeline"`
	Notes           *string    `json:"notes"`
	LastContact     *time.Time `json:"last_contact"`
}

// @Summary      Update Customer
// @Description  Partial update; revenue aggregates cannot be changed here
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id      path  string                true  "Customer ID"
// @Param        request body  updateCustomerRequest true  "Update Customer Request"
// @Success      200  {object}  map[string]bool
// @Router       /customers/{id} [patch]
func (s *Server) UpdateCustomer(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq := customerdomain.UpdateCustomerRequest{
		Company:         req.Company,
		Industry:        req.Industry,
		Size:            req.Size,
		Budget:          req.Budget,
		Website:         req.Website,
		PainPoints:      req.PainPoints,
		Requirements:    req.Requirements,
		CurrentSolution: req.CurrentSolution,
		Timeline:        req.Timeline,
		Notes:           req.Notes,
		LastContact:     req.LastContact,
	}
	if req.Status != nil {
		status := customerdomain.CustomerStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		domainReq.Status = &status
	}

	updated, err := s.customerSvc.Update(c.Request.Context(), id, domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

type updateRevenueRequest struct {
	ExpectedRevenue  int64 `json:"expected_revenue"`
	ActualRevenue    int64 `json:"actual_revenue"`
	RecurringRevenue int64 `json:"recurring_revenue"`
}

// @Summary      Update Customer Revenue
// @Description  Absolute overwrite of the three revenue aggregates
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id      path  string               true  "Customer ID"
// @Param        request body  updateRevenueRequest true  "Revenue Request"
// @Success      200  {object}  map[string]bool
// @Router       /customers/{id}/revenue [put]
func (s *Server) UpdateCustomerRevenue(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.customerSvc.UpdateRevenue(c.Request.Context(), id, req.ExpectedRevenue, req.ActualRevenue, req.RecurringRevenue)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// @Summary      Select Customer
// @Description  Sets the selected customer; does not touch the demo selection
// @Tags         selection
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  selection.Snapshot
// @Router       /customers/{id}/select [put]
func (s *Server) SelectCustomer(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	profile, err := s.customerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.selection.SelectCustomer(profile)
	c.JSON(http.StatusOK, gin.H{"data": s.selection.Current()})
}

func parseIDParam(c *gin.Context) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

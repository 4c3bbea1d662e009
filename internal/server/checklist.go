package server

import (
	"net/http"
	"strings"
	"time"

	checklistdomain "github.com/bigdino44/DemoManagerPro/internal/checklist/domain"
	"github.com/gin-gonic/gin"
)

type createChecklistItemRequest struct {
	Task     string     `json:"task"`
	Status   string     `json:"status"`
	Category string     `json:"category"`
	Priority string     `json:"priority"`
	Assignee string     `json:"assignee"`
	DueDate  *time.Time `json:"due_date"`
	Notes    string     `json:"notes"`
}

// @Summary      Create Checklist Item
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        request body createChecklistItemRequest true "Create Item Request"
// @Success      200  {object}  checklistdomain.ChecklistItem
// @Router       /checklist [post]
func (s *Server) CreateChecklistItem(c *gin.Context) {
	var req createChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.checklistSvc.Create(c.Request.Context(), checklistdomain.CreateItemRequest{
		Task:     req.Task,
		Status:   checklistdomain.ItemStatus(strings.ToLower(strings.TrimSpace(req.Status))),
		Category: req.Category,
		Priority: checklistdomain.ItemPriority(strings.ToLower(strings.TrimSpace(req.Priority))),
		Assignee: req.Assignee,
		DueDate:  req.DueDate,
		Notes:    req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Checklist
// @Description  Items grouped by category in first-seen order
// @Tags         checklist
// @Produce      json
// @Success      200  {object}  []checklistdomain.CategoryGroup
// @Router       /checklist [get]
func (s *Server) ListChecklist(c *gin.Context) {
	resp, err := s.checklistSvc.ListGrouped(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateChecklistItemRequest struct {
	Task     *string    `json:"task"`
	Status   *string    `json:"status"`
	Category *string    `json:"category"`
	Priority *string    `json:"priority"`
	Assignee *string    `json:"assignee"`
	DueDate  *time.Time `json:"due_date"`
	Notes    *string    `json:"notes"`
}

// @Summary      Update Checklist Item
// @Tags         checklist
// @Accept       json
// @Produce      json
// @Param        id      path  string                     true  "Item ID"
// @Param        request body  updateChecklistItemRequest true  "Update Item Request"
// @Success      200  {object}  map[string]bool
// @Router       /checklist/{id} [patch]
func (s *Server) UpdateChecklistItem(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	domainReq := checklistdomain.UpdateItemRequest{
		Task:     req.Task,
		Category: req.Category,
		Assignee: req.Assignee,
		DueDate:  req.DueDate,
		Notes:    req.Notes,
	}
	if req.Status != nil {
		status := checklistdomain.ItemStatus(strings.ToLower(strings.TrimSpace(*req.Status)))
		domainReq.Status = &status
	}
	if req.Priority != nil {
		priority := checklistdomain.ItemPriority(strings.ToLower(strings.TrimSpace(*req.Priority)))
		domainReq.Priority = &priority
	}

	updated, err := s.checklistSvc.Update(c.Request.Context(), id, domainReq)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// @Summary      Toggle Checklist Item
// @Description  Advances the status one step through the cycle
// @Tags         checklist
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  map[string]string
// @Router       /checklist/{id}/toggle [post]
func (s *Server) ToggleChecklistItem(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	status, err := s.checklistSvc.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// @Summary      Delete Checklist Item
// @Tags         checklist
// @Produce      json
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  map[string]bool
// @Router       /checklist/{id} [delete]
func (s *Server) DeleteChecklistItem(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	deleted, err := s.checklistSvc.Delete(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Package seed bootstraps a sample dataset for local development.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	checklistdomain "github.com/bigdino44/DemoManagerPro/internal/checklist/domain"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureSampleData inserts the demo dataset once. A second run is a
// no-op: presence of any customer row short-circuits.
func EnsureSampleData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&customerdomain.CustomerProfile{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		techCorp, globalSolutions := sampleCustomers(node, now)
		if err := tx.Create(&techCorp).Error; err != nil {
			return err
		}
		if err := tx.Create(&globalSolutions).Error; err != nil {
			return err
		}

		demos := sampleDemos(node, now, techCorp.ID, globalSolutions.ID)
		if err := tx.Create(&demos).Error; err != nil {
			return err
		}

		// Backfill the aggregates the bookings would have produced.
		for _, demo := range demos {
			values := map[string]any{
				"actual_revenue": gorm.Expr("actual_revenue + ?", demo.Revenue),
			}
			if customerdomain.IsRecurringLocation(string(demo.Location)) {
				values["recurring_revenue"] = gorm.Expr("recurring_revenue + ?", demo.Revenue)
			}
			if err := tx.Model(&customerdomain.CustomerProfile{}).
				Where("id = ?", demo.CustomerID).
				Updates(values).Error; err != nil {
				return err
			}
		}

		items := sampleChecklist(node, now)
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		welcome := notificationdomain.Notification{
			ID:        node.Generate(),
			Title:     "New Demo Request",
			Message:   "TechCorp Industries requested a product demo",
			Type:      notificationdomain.KindInfo,
			Read:      false,
			Timestamp: now,
		}
		return tx.Create(&welcome).Error
	})
}

func sampleCustomers(node *snowflake.Node, now time.Time) (customerdomain.CustomerProfile, customerdomain.CustomerProfile) {
	techCorp := customerdomain.CustomerProfile{
		ID:       node.Generate(),
		Company:  "TechCorp Industries",
		Industry: "Manufacturing",
		Size:     "1000-5000",
		Budget:   "$100k-500k",
		Website:  "techcorp.com",
		Status:   customerdomain.CustomerStatusActive,
		PainPoints: datatypes.NewJSONSlice([]string{
			"Legacy system integration issues",
			"Scalability challenges",
			"Data security concerns",
		}),
		Requirements: datatypes.NewJSONSlice([]string{
			"Cloud deployment",
			"Real-time analytics",
			"Mobile access",
			"Enterprise-grade security",
		}),
		Stakeholders: []customerdomain.Stakeholder{
			{
				ID:        node.Generate(),
				Name:      "John Smith",
				Role:      "CTO",
				Influence: customerdomain.InfluenceDecisionMaker,
				Email:     "john.smith@techcorp.com",
				Phone:     "(555) 123-4567",
				Notes:     "Primary technical contact",
			},
		},
		CurrentSolution: "Legacy on-premise system",
		Timeline:        "Q2 2024",
		Notes:           "High-priority prospect with immediate needs",
		LastContact:     now.AddDate(0, 0, -3),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	globalSolutions := customerdomain.CustomerProfile{
		ID:       node.Generate(),
		Company:  "Global Solutions Ltd",
		Industry: "Technology",
		Size:     "500-1000",
		Budget:   "$50k-100k",
		Website:  "globalsolutions.io",
		Status:   customerdomain.CustomerStatusProspect,
		PainPoints: datatypes.NewJSONSlice([]string{
			"High operational costs",
			"Manual process inefficiencies",
			"Limited visibility into metrics",
		}),
		Requirements: datatypes.NewJSONSlice([]string{
			"Cost optimization tools",
			"Process automation",
			"Advanced reporting",
		}),
		Stakeholders: []customerdomain.Stakeholder{
			{
				ID:        node.Generate(),
				Name:      "Michael Chang",
				Role:      "COO",
				Influence: customerdomain.InfluenceDecisionMaker,
				Email:     "m.chang@globalsolutions.io",
				Phone:     "(555) 987-6543",
			},
		},
		CurrentSolution: "Multiple disconnected tools",
		Timeline:        "Q3 2024",
		Notes:           "Looking for comprehensive solution",
		LastContact:     now.AddDate(0, 0, -8),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return techCorp, globalSolutions
}

func sampleDemos(node *snowflake.Node, now time.Time, techCorpID, globalSolutionsID snowflake.ID) []demodomain.Demo {
	return []demodomain.Demo{
		{
			ID:         node.Generate(),
			Time:       "10:00 AM",
			Company:    "TechCorp Industries",
			Type:       "Product Demo",
			Location:   demodomain.LocationVirtual,
			Attendees:  4,
			Date:       now,
			CustomerID: techCorpID,
			Revenue:    1000,
			CreatedAt:  now,
		},
		{
			ID:              node.Generate(),
			Time:            "2:00 PM",
			Company:         "Global Solutions Ltd",
			Type:            "Technical Deep Dive",
			Location:        demodomain.LocationNexus,
			LocationDetails: "Atlanta Innovation Hub",
			Attendees:       6,
			Date:            now,
			CustomerID:      globalSolutionsID,
			Revenue:         5100,
			CreatedAt:       now,
		},
	}
}

func sampleChecklist(node *snowflake.Node, now time.Time) []checklistdomain.ChecklistItem {
	due := func(days int) *time.Time {
		t := now.AddDate(0, 0, days)
		return &t
	}
	item := func(task string, status checklistdomain.ItemStatus, category string, priority checklistdomain.ItemPriority, assignee string, dueDate *time.Time, notes string) checklistdomain.ChecklistItem {
		return checklistdomain.ChecklistItem{
			ID:        node.Generate(),
			Task:      task,
			Status:    status,
			Category:  category,
			Priority:  priority,
			Assignee:  assignee,
			DueDate:   dueDate,
			Notes:     notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return []checklistdomain.ChecklistItem{
		item("Environment configuration", checklistdomain.StatusCompleted, "Technical Setup", checklistdomain.PriorityHigh, "David Chen", nil, "All systems verified and ready"),
		item("Network connectivity check", checklistdomain.StatusInProgress, "Technical Setup", checklistdomain.PriorityHigh, "Sarah Johnson", due(2), ""),
		item("Demo account setup", checklistdomain.StatusCompleted, "Technical Setup", checklistdomain.PriorityMedium, "Mike Wilson", nil, ""),
		item("Custom demo script", checklistdomain.StatusCompleted, "Content Preparation", checklistdomain.PriorityHigh, "Emily Brown", nil, ""),
		item("ROI calculator setup", checklistdomain.StatusCompleted, "Content Preparation", checklistdomain.PriorityMedium, "John Smith", nil, ""),
		item("Competitor comparison", checklistdomain.StatusPending, "Content Preparation", checklistdomain.PriorityMedium, "", due(4), ""),
		item("Risk assessment", checklistdomain.StatusCompleted, "Safety Protocols", checklistdomain.PriorityHigh, "Lisa Anderson", nil, ""),
		item("Backup system check", checklistdomain.StatusPending, "Safety Protocols", checklistdomain.PriorityHigh, "", due(3), ""),
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	"github.com/bigdino44/DemoManagerPro/internal/events"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCreateZeroesRevenueAggregates(t *testing.T) {
	svc := setupCustomerService(t)

	profile, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		Company:    "  TechCorp Industries  ",
		Industry:   "Manufacturing",
		PainPoints: []string{"manual reporting"},
		Stakeholders: []customerdomain.StakeholderInput{
			{Name: "Sarah Lee", Role: "CTO", Influence: customerdomain.InfluenceDecisionMaker},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if profile.Company != "TechCorp Industries" {
		t.Fatalf("expected trimmed company, got %q", profile.Company)
	}
	if profile.Status != customerdomain.CustomerStatusProspect {
		t.Fatalf("expected default prospect status, got %q", profile.Status)
	}
	if profile.ExpectedRevenue != 0 || profile.ActualRevenue != 0 || profile.RecurringRevenue != 0 {
		t.Fatalf("expected zeroed aggregates, got %d/%d/%d",
			profile.ExpectedRevenue, profile.ActualRevenue, profile.RecurringRevenue)
	}

	loaded, err := svc.GetByID(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(loaded.Stakeholders) != 1 || loaded.Stakeholders[0].Name != "Sarah Lee" {
		t.Fatalf("expected preloaded stakeholder, got %+v", loaded.Stakeholders)
	}
}

func TestCreateRejectsEmptyCompany(t *testing.T) {
	svc := setupCustomerService(t)

	_, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{Company: "   "})
	if !errors.Is(err, customerdomain.ErrInvalidCompany) {
		t.Fatalf("expected invalid company, got %v", err)
	}
}

func TestCreateRejectsUnknownInfluence(t *testing.T) {
	svc := setupCustomerService(t)

	_, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		Company: "Acme",
		Stakeholders: []customerdomain.StakeholderInput{
			{Name: "Pat", Influence: customerdomain.StakeholderInfluence("celebrity")},
		},
	})
	if !errors.Is(err, customerdomain.ErrInvalidInfluence) {
		t.Fatalf("expected invalid influence, got %v", err)
	}
}

func TestUpdateUnknownCustomerIsNoOp(t *testing.T) {
	svc := setupCustomerService(t)

	company := "Ghost Corp"
	updated, err := svc.Update(context.Background(), snowflake.ID(999), customerdomain.UpdateCustomerRequest{
		Company: &company,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated {
		t.Fatal("expected no-op for unknown customer")
	}
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc := setupCustomerService(t)
	profile := mustCreateCustomer(t, svc, "Acme")

	status := customerdomain.CustomerStatusClosedWon
	updated, err := svc.Update(context.Background(), profile.ID, customerdomain.UpdateCustomerRequest{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated {
		t.Fatal("expected update to apply")
	}

	loaded, err := svc.GetByID(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Status != customerdomain.CustomerStatusClosedWon {
		t.Fatalf("expected closed_won, got %q", loaded.Status)
	}
	if loaded.Company != "Acme" {
		t.Fatalf("expected untouched company, got %q", loaded.Company)
	}
}

func TestUpdateRevenueRejectsNegative(t *testing.T) {
	svc := setupCustomerService(t)
	profile := mustCreateCustomer(t, svc, "Acme")

	_, err := svc.UpdateRevenue(context.Background(), profile.ID, -1, 0, 0)
	if !errors.Is(err, customerdomain.ErrNegativeRevenue) {
		t.Fatalf("expected negative revenue error, got %v", err)
	}
}

func TestUpdateRevenueOverwritesAggregates(t *testing.T) {
	svc := setupCustomerService(t)
	profile := mustCreateCustomer(t, svc, "Acme")

	updated, err := svc.UpdateRevenue(context.Background(), profile.ID, 10000, 5000, 2000)
	if err != nil {
		t.Fatalf("update revenue: %v", err)
	}
	if !updated {
		t.Fatal("expected revenue update to apply")
	}

	loaded, err := svc.GetByID(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ExpectedRevenue != 10000 || loaded.ActualRevenue != 5000 || loaded.RecurringRevenue != 2000 {
		t.Fatalf("unexpected aggregates %d/%d/%d",
			loaded.ExpectedRevenue, loaded.ActualRevenue, loaded.RecurringRevenue)
	}
}

func TestAddDemoRevenueNonRecurring(t *testing.T) {
	svc := setupCustomerService(t)
	profile := mustCreateCustomer(t, svc, "Acme")

	err := svc.AddDemoRevenue(context.Background(), nil, profile.ID, svc.genID.Generate(), 1000, "virtual")
	if err != nil {
		t.Fatalf("add demo revenue: %v", err)
	}

	loaded, err := svc.GetByID(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ActualRevenue != 1000 {
		t.Fatalf("expected actual 1000, got %d", loaded.ActualRevenue)
	}
	if loaded.RecurringRevenue != 0 {
		t.Fatalf("expected recurring untouched, got %d", loaded.RecurringRevenue)
	}
}

func TestAddDemoRevenueRecurringLocations(t *testing.T) {
	svc := setupCustomerService(t)
	profile := mustCreateCustomer(t, svc, "Acme")

	if err := svc.AddDemoRevenue(context.Background(), nil, profile.ID, svc.genID.Generate(), 5100, "nexus"); err != nil {
		t.Fatalf("add nexus revenue: %v", err)
	}
	if err := svc.AddDemoRevenue(context.Background(), nil, profile.ID, svc.genID.Generate(), 7500, "on_location"); err != nil {
		t.Fatalf("add on_location revenue: %v", err)
	}

	loaded, err := svc.GetByID(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ActualRevenue != 12600 {
		t.Fatalf("expected actual 12600, got %d", loaded.ActualRevenue)
	}
	if loaded.RecurringRevenue != 12600 {
		t.Fatalf("expected recurring 12600, got %d", loaded.RecurringRevenue)
	}
}

func TestAddDemoRevenueRejectsNegativeAmount(t *testing.T) {
	svc := setupCustomerService(t)
	profile := mustCreateCustomer(t, svc, "Acme")

	err := svc.AddDemoRevenue(context.Background(), nil, profile.ID, svc.genID.Generate(), -50, "virtual")
	if !errors.Is(err, customerdomain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestAddDemoRevenueUnknownCustomerIsNoOp(t *testing.T) {
	svc := setupCustomerService(t)

	err := svc.AddDemoRevenue(context.Background(), nil, snowflake.ID(999), svc.genID.Generate(), 1000, "virtual")
	if err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}

func TestGetByIDUnknownCustomer(t *testing.T) {
	svc := setupCustomerService(t)

	_, err := svc.GetByID(context.Background(), snowflake.ID(999))
	if !errors.Is(err, customerdomain.ErrCustomerNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func mustCreateCustomer(t *testing.T, svc *Service, company string) *customerdomain.CustomerProfile {
	t.Helper()
	profile, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{Company: company})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return profile
}

func setupCustomerService(t *testing.T) *Service {
	t.Helper()
	db := setupCustomerTestDB(t)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	return NewService(ServiceParam{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  node,
		Outbox: events.NewOutbox(db, node),
	})
}

func setupCustomerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&customerdomain.CustomerProfile{}, &customerdomain.Stakeholder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(`CREATE TABLE IF NOT EXISTS crm_events (
		id INTEGER PRIMARY KEY,
		type TEXT NOT NULL,
		payload JSON,
		dedupe_key TEXT UNIQUE,
		created_at TIMESTAMP NOT NULL
	)`).Error; err != nil {
		t.Fatalf("create crm_events: %v", err)
	}
	return db
}

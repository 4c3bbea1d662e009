package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	checklistdomain "github.com/bigdino44/DemoManagerPro/internal/checklist/domain"
	checklistservice "github.com/bigdino44/DemoManagerPro/internal/checklist/service"
	"github.com/bigdino44/DemoManagerPro/internal/clock"
	"github.com/bigdino44/DemoManagerPro/internal/config"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	customerservice "github.com/bigdino44/DemoManagerPro/internal/customer/service"
	demodomain "github.com/bigdino44/DemoManagerPro/internal/demo/domain"
	demoservice "github.com/bigdino44/DemoManagerPro/internal/demo/service"
	"github.com/bigdino44/DemoManagerPro/internal/events"
	notificationdomain "github.com/bigdino44/DemoManagerPro/internal/notification/domain"
	notificationservice "github.com/bigdino44/DemoManagerPro/internal/notification/service"
	"github.com/bigdino44/DemoManagerPro/internal/selection"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCustomerLifecycleOverHTTP(t *testing.T) {
	ts := setupTestServer(t)

	body := `{
		"company": "TechCorp Industries",
		"industry": "Manufacturing",
		"status": "PROSPECT",
		"pain_points": ["manual reporting"],
		"stakeholders": [{"name": "Sarah Lee", "influence": "decision_maker"}]
	}`
	rec := ts.do(t, http.MethodPost, "/api/customers", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("expected customer id in response, got %v", data)
	}
	if data["actual_revenue"].(float64) != 0 {
		t.Fatalf("expected zeroed actual revenue, got %v", data["actual_revenue"])
	}

	rec = ts.do(t, http.MethodGet, "/api/customers/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/customers/424242", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown id: expected 404, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/customers/not-a-snowflake", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: expected 400, got %d", rec.Code)
	}
}

func TestBookDemoAttributesRevenueOverHTTP(t *testing.T) {
	ts := setupTestServer(t)
	customerID := ts.mustCreateCustomer(t, "Global Solutions Ltd")

	body := fmt.Sprintf(`{
		"time": "14:00",
		"company": "Global Solutions Ltd",
		"location": "nexus",
		"location_details": "Atlanta Innovation Hub",
		"attendees": 6,
		"date": "2026-09-04T00:00:00Z",
		"customer_id": %q
	}`, customerID)
	rec := ts.do(t, http.MethodPost, "/api/demos", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("create demo: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	demo := decodeData(t, rec)
	if demo["revenue"].(float64) != 5100 {
		t.Fatalf("expected derived revenue 5100, got %v", demo["revenue"])
	}

	rec = ts.do(t, http.MethodGet, "/api/customers/"+customerID, "")
	customer := decodeData(t, rec)
	if customer["actual_revenue"].(float64) != 5100 {
		t.Fatalf("expected attributed revenue, got %v", customer["actual_revenue"])
	}
	if customer["recurring_revenue"].(float64) != 5100 {
		t.Fatalf("expected recurring revenue for nexus, got %v", customer["recurring_revenue"])
	}
}

func TestCreateDemoValidationOverHTTP(t *testing.T) {
	ts := setupTestServer(t)
	customerID := ts.mustCreateCustomer(t, "Acme")

	body := fmt.Sprintf(`{
		"time": "14:00",
		"location": "rooftop",
		"attendees": 3,
		"date": "2026-09-04T00:00:00Z",
		"customer_id": %q
	}`, customerID)
	rec := ts.do(t, http.MethodPost, "/api/demos", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown location, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodPost, "/api/demos", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestListLocationsOverHTTP(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/locations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data) != 4 {
		t.Fatalf("expected 4 location types, got %d", len(payload.Data))
	}
}

func TestSelectionFlowOverHTTP(t *testing.T) {
	ts := setupTestServer(t)
	customerID := ts.mustCreateCustomer(t, "TechCorp")

	body := fmt.Sprintf(`{
		"time": "10:30",
		"location": "virtual",
		"attendees": 3,
		"date": "2026-09-04T00:00:00Z",
		"customer_id": %q
	}`, customerID)
	rec := ts.do(t, http.MethodPost, "/api/demos", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("create demo: %d: %s", rec.Code, rec.Body.String())
	}
	demoID := decodeData(t, rec)["id"].(string)

	rec = ts.do(t, http.MethodPut, "/api/demos/"+demoID+"/select", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("select demo: expected 200, got %d", rec.Code)
	}
	snap := decodeData(t, rec)
	if snap["demo_id"] != demoID {
		t.Fatalf("expected selected demo %s, got %v", demoID, snap["demo_id"])
	}
	customer, ok := snap["customer"].(map[string]any)
	if !ok || customer["id"] != customerID {
		t.Fatalf("expected owning customer resolved, got %v", snap["customer"])
	}

	rec = ts.do(t, http.MethodDelete, "/api/selection/demo", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear selection: expected 200, got %d", rec.Code)
	}
	snap = decodeData(t, rec)
	if _, present := snap["demo_id"]; present {
		t.Fatalf("expected demo slot cleared, got %v", snap["demo_id"])
	}
	if _, present := snap["customer"]; present {
		t.Fatalf("expected customer slot cleared, got %v", snap["customer"])
	}
}

func TestChecklistToggleOverHTTP(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/checklist", `{"task": "Prepare slide deck", "category": "Content"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create item: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	itemID := decodeData(t, rec)["id"].(string)

	rec = ts.do(t, http.MethodPost, "/api/checklist/"+itemID+"/toggle", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", rec.Code)
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Status != "in_progress" {
		t.Fatalf("expected in_progress, got %q", payload.Status)
	}
}

func TestNotificationsOverHTTP(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/notifications", `{"title": "Demo booked", "type": "success"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	id := decodeData(t, rec)["id"].(string)

	rec = ts.do(t, http.MethodGet, "/api/notifications", "")
	var listPayload struct {
		Data        []map[string]any `json:"data"`
		UnreadCount int64            `json:"unread_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listPayload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listPayload.UnreadCount != 1 {
		t.Fatalf("expected 1 unread, got %d", listPayload.UnreadCount)
	}

	rec = ts.do(t, http.MethodPost, "/api/notifications/"+id+"/read", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read: expected 200, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/notifications", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &listPayload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listPayload.UnreadCount != 0 {
		t.Fatalf("expected 0 unread, got %d", listPayload.UnreadCount)
	}
}

type testServer struct {
	engine *gin.Engine
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) mustCreateCustomer(t *testing.T, company string) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/customers", fmt.Sprintf(`{"company": %q}`, company))
	if rec.Code != http.StatusOK {
		t.Fatalf("create customer: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	return decodeData(t, rec)["id"].(string)
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return payload.Data
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&customerdomain.CustomerProfile{},
		&customerdomain.Stakeholder{},
		&demodomain.Demo{},
		&checklistdomain.ChecklistItem{},
		&notificationdomain.Notification{},
	); err != nil {
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

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()
	outbox := events.NewOutbox(db, node)

	customerSvc := customerservice.NewService(customerservice.ServiceParam{
		DB: db, Log: log, GenID: node, Outbox: outbox,
	})
	demoSvc := demoservice.NewService(demoservice.ServiceParam{
		DB: db, Log: log, GenID: node, Recorder: customerSvc, Outbox: outbox,
	})
	checklistSvc := checklistservice.NewService(checklistservice.ServiceParam{
		DB: db, Log: log, GenID: node,
	})
	notificationSvc := notificationservice.NewService(notificationservice.ServiceParam{
		DB: db, Log: log, GenID: node,
	})
	coordinator := selection.NewCoordinator(selection.Param{
		Log:         log,
		Clock:       clock.SystemClock{},
		DemoSvc:     demoSvc,
		CustomerSvc: customerSvc,
	})

	cfg := config.Config{}
	srv := NewServer(ServerParam{
		Cfg:             cfg,
		DB:              db,
		Log:             log,
		CustomerSvc:     customerSvc,
		DemoSvc:         demoSvc,
		ChecklistSvc:    checklistSvc,
		NotificationSvc: notificationSvc,
		Selection:       coordinator,
	})

	engine := NewEngine(cfg, nil)
	srv.RegisterAPIRoutes(engine)
	return &testServer{engine: engine}
}

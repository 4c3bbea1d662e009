package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/bigdino44/DemoManagerPro/internal/customer/domain"
	"github.com/bigdino44/DemoManagerPro/internal/events"
	"github.com/bigdino44/DemoManagerPro/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Outbox *events.Outbox
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID        *snowflake.Node
	customerrepo repository.Repository[customerdomain.CustomerProfile]
	outbox       *events.Outbox
}

func NewService(p ServiceParam) *Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("customer.service"),

		genID:        p.GenID,
		customerrepo: repository.ProvideStore[customerdomain.CustomerProfile](p.DB),
		outbox:       p.Outbox,
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (*customerdomain.CustomerProfile, error) {
	company := strings.TrimSpace(req.Company)
	if company == "" {
		return nil, customerdomain.ErrInvalidCompany
	}
	status := req.Status
	if status == "" {
		status = customerdomain.CustomerStatusProspect
	}
	if !status.Valid() {
		return nil, customerdomain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	lastContact := req.LastContact
	if lastContact.IsZero() {
		lastContact = now
	}

	profile := &customerdomain.CustomerProfile{
		ID:              s.genID.Generate(),
		Company:         company,
		Industry:        strings.TrimSpace(req.Industry),
		Size:            strings.TrimSpace(req.Size),
		Budget:          strings.TrimSpace(req.Budget),
		Website:         strings.TrimSpace(req.Website),
		Status:          status,
		PainPoints:      datatypes.NewJSONSlice(req.PainPoints),
		Requirements:    datatypes.NewJSONSlice(req.Requirements),
		CurrentSolution: strings.TrimSpace(req.CurrentSolution),
		Timeline:        strings.TrimSpace(req.Timeline),
		Notes:           req.Notes,
		LastContact:     lastContact,

		// Aggregates always start at zero regardless of the intake form.
		ExpectedRevenue:  0,
		ActualRevenue:    0,
		RecurringRevenue: 0,

		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, input := range req.Stakeholders {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			continue
		}
		if input.Influence != "" && !validInfluence(input.Influence) {
			return nil, customerdomain.ErrInvalidInfluence
		}
		profile.Stakeholders = append(profile.Stakeholders, customerdomain.Stakeholder{
			ID:        s.genID.Generate(),
			Name:      name,
			Role:      strings.TrimSpace(input.Role),
			Influence: input.Influence,
			Email:     strings.TrimSpace(input.Email),
			Phone:     strings.TrimSpace(input.Phone),
			Notes:     input.Notes,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type: events.EventCustomerCreated,
			Payload: map[string]any{
				"customer_id": profile.ID.String(),
				"company":     profile.Company,
				"status":      string(profile.Status),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("customer created",
		zap.String("customer_id", profile.ID.String()),
		zap.String("company", profile.Company),
	)
	return profile, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req customerdomain.UpdateCustomerRequest) (bool, error) {
	values := map[string]any{}
	if req.Company != nil {
		company := strings.TrimSpace(*req.Company)
		if company == "" {
			return false, customerdomain.ErrInvalidCompany
		}
		values["company"] = company
	}
	if req.Industry != nil {
		values["industry"] = strings.TrimSpace(*req.Industry)
	}
	if req.Size != nil {
		values["size"] = strings.TrimSpace(*req.Size)
	}
	if req.Budget != nil {
		values["budget"] = strings.TrimSpace(*req.Budget)
	}
	if req.Website != nil {
		values["website"] = strings.TrimSpace(*req.Website)
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return false, customerdomain.ErrInvalidStatus
		}
		values["status"] = *req.Status
	}
	if req.PainPoints != nil {
		values["pain_points"] = datatypes.NewJSONSlice(req.PainPoints)
	}
	if req.Requirements != nil {
		values["requirements"] = datatypes.NewJSONSlice(req.Requirements)
	}
	if req.CurrentSolution != nil {
		values["current_solution"] = strings.TrimSpace(*req.CurrentSolution)
	}
	if req.Timeline != nil {
		values["timeline"] = strings.TrimSpace(*req.Timeline)
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}
	if req.LastContact != nil {
		values["last_contact"] = req.LastContact.UTC()
	}
	if len(values) == 0 {
		return false, nil
	}
	values["updated_at"] = time.Now().UTC()

	affected, err := s.customerrepo.Updates(ctx, int64(id), values)
	if err != nil {
		return false, err
	}
	if affected == 0 {
		// Unknown ids are a silent no-op; log at debug so caller bugs
		// remain diagnosable.
		s.log.Debug("update for unknown customer", zap.String("customer_id", id.String()))
		return false, nil
	}
	return true, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*customerdomain.CustomerProfile, error) {
	var profile customerdomain.CustomerProfile
	err := s.db.WithContext(ctx).
		Preload("Stakeholders").
		Where("id = ?", id).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, customerdomain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Service) List(ctx context.Context) ([]customerdomain.CustomerProfile, error) {
	var profiles []customerdomain.CustomerProfile
	err := s.db.WithContext(ctx).
		Preload("Stakeholders").
		Order("id asc").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *Service) UpdateRevenue(ctx context.Context, id snowflake.ID, expected, actual, recurring int64) (bool, error) {
	if expected < 0 || actual < 0 || recurring < 0 {
		return false, customerdomain.ErrNegativeRevenue
	}

	affected, err := s.customerrepo.Updates(ctx, int64(id), map[string]any{
		"expected_revenue":  expected,
		"actual_revenue":    actual,
		"recurring_revenue": recurring,
		"updated_at":        time.Now().UTC(),
	})
	if err != nil {
		return false, err
	}
	if affected == 0 {
		s.log.Debug("revenue update for unknown customer", zap.String("customer_id", id.String()))
		return false, nil
	}
	return true, nil
}

// AddDemoRevenue additively attributes a booking's derived revenue to the
// customer. It must run inside the booking's transaction; amounts are
// non-negative so the aggregates are monotonically non-decreasing here.
func (s *Service) AddDemoRevenue(ctx context.Context, tx *gorm.DB, customerID, demoID snowflake.ID, amount int64, location string) error {
	if amount < 0 {
		return customerdomain.ErrInvalidAmount
	}
	if tx == nil {
		tx = s.db
	}

	values := map[string]any{
		"actual_revenue": gorm.Expr("actual_revenue + ?", amount),
		"updated_at":     time.Now().UTC(),
	}
	recurring := customerdomain.IsRecurringLocation(location)
	if recurring {
		values["recurring_revenue"] = gorm.Expr("recurring_revenue + ?", amount)
	}

	result := tx.WithContext(ctx).
		Model(&customerdomain.CustomerProfile{}).
		Where("id = ?", customerID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		s.log.Debug("demo revenue for unknown customer",
			zap.String("customer_id", customerID.String()),
			zap.String("demo_id", demoID.String()),
		)
		return nil
	}

	return s.outbox.PublishTx(ctx, tx, events.Event{
		Type: events.EventRevenueAttributed,
		Payload: events.RevenueAttributedPayload{
			DemoID:     demoID.String(),
			CustomerID: customerID.String(),
			Amount:     amount,
			Recurring:  recurring,
		}.ToMap(),
		DedupeKey: "revenue:" + demoID.String(),
	})
}

func validInfluence(influence customerdomain.StakeholderInfluence) bool {
	switch influence {
	case customerdomain.InfluenceDecisionMaker,
		customerdomain.InfluenceTechnicalEvaluator,
		customerdomain.InfluenceEndUser,
		customerdomain.InfluenceFinancialApprover:
		return true
	}
	return false
}

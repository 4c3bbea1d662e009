// Package domain contains the customer ledger models and contracts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// CustomerStatus is the sales lifecycle stage of a customer.
type CustomerStatus string

const (
	CustomerStatusActive     CustomerStatus = "active"
	CustomerStatusProspect   CustomerStatus = "prospect"
	CustomerStatusClosedWon  CustomerStatus = "closed_won"
	CustomerStatusClosedLost CustomerStatus = "closed_lost"
)

// Valid reports whether the status is one of the known stages.
func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusProspect, CustomerStatusClosedWon, CustomerStatusClosedLost:
		return true
	}
	return false
}

// StakeholderInfluence classifies a stakeholder's role in the deal.
type StakeholderInfluence string

const (
	InfluenceDecisionMaker      StakeholderInfluence = "decision_maker"
	InfluenceTechnicalEvaluator StakeholderInfluence = "technical_evaluator"
	InfluenceEndUser            StakeholderInfluence = "end_user"
	InfluenceFinancialApprover  StakeholderInfluence = "financial_approver"
)

// CustomerProfile is the authoritative customer record. The three revenue
// fields are aggregates: they start at zero, grow through demo revenue
// attribution and may only be overwritten by an explicit revenue update.
type CustomerProfile struct {
	ID              snowflake.ID                 `gorm:"primaryKey" json:"id"`
	Company         string                       `gorm:"type:text;not null" json:"company"`
	Industry        string                       `gorm:"type:text" json:"industry"`
	Size            string                       `gorm:"type:text" json:"size"`
	Budget          string                       `gorm:"type:text" json:"budget"`
	Website         string                       `gorm:"type:text" json:"website"`
	Status          CustomerStatus               `gorm:"type:text;not null;default:prospect" json:"status"`
	PainPoints      datatypes.JSONSlice[string]  `gorm:"type:json" json:"pain_points"`
	Requirements    datatypes.JSONSlice[string]  `gorm:"type:json" json:"requirements"`
	Stakeholders    []Stakeholder                `gorm:"foreignKey:CustomerID" json:"stakeholders"`
	CurrentSolution string                       `gorm:"type:text" json:"current_solution,omitempty"`
	Timeline        string                       `gorm:"type:text" json:"timeline"`
	Notes           string                       `gorm:"type:text" json:"notes"`
	LastContact     time.Time                    `json:"last_contact"`

	ExpectedRevenue  int64 `gorm:"not null;default:0" json:"expected_revenue"`
	ActualRevenue    int64 `gorm:"not null;default:0" json:"actual_revenue"`
	RecurringRevenue int64 `gorm:"not null;default:0" json:"recurring_revenue"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (CustomerProfile) TableName() string { return "customers" }

// Stakeholder is owned by exactly one customer and has no independent
// lifecycle.
type Stakeholder struct {
	ID         snowflake.ID         `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID         `gorm:"not null;index" json:"-"`
	Name       string               `gorm:"type:text;not null" json:"name"`
	Role       string               `gorm:"type:text" json:"role"`
	Influence  StakeholderInfluence `gorm:"type:text;not null" json:"influence"`
	Email      string               `gorm:"type:text;not null" json:"email"`
	Phone      string               `gorm:"type:text" json:"phone,omitempty"`
	Notes      string               `gorm:"type:text" json:"notes,omitempty"`
}

// TableName sets the database table name.
func (Stakeholder) TableName() string { return "stakeholders" }

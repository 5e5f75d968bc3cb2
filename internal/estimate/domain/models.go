package domain

import (
	"fmt"
	"time"

	pricingdomain "github.com/smallbiznis/estimator/internal/pricing/domain"
	"gorm.io/datatypes"
)

type Status string

var (
	StatusDraft           Status = "draft"
	StatusSubmitted       Status = "submitted"
	StatusQuoteAvailable  Status = "quote_available"
	StatusPendingApproval Status = "pending_approval"
	StatusFinalised       Status = "finalised"
	StatusRejected        Status = "rejected"
	StatusExpired         Status = "expired"
)

// Estimate is the single working estimate of an employer.
type Estimate struct {
	ID          string                                       `json:"id" gorm:"primaryKey;size:64"`
	EmployerID  string                                       `json:"employer_id" gorm:"column:employer_id;size:64;not null;uniqueIndex:uq_estimates_employer"`
	PlanID      string                                       `json:"plan_id" gorm:"column:plan_id;size:64;not null"`
	Status      Status                                       `json:"status" gorm:"size:32;not null;default:'draft'"`
	Selections  datatypes.JSONType[pricingdomain.Selections] `json:"selections" gorm:"not null"`
	Pricing     datatypes.JSONType[pricingdomain.Pricing]    `json:"pricing" gorm:"not null"`
	SubmittedAt *time.Time                                   `json:"submitted_at,omitempty"`
	FinalisedAt *time.Time                                   `json:"finalised_at,omitempty"`
	CreatedAt   time.Time                                    `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time                                    `json:"updated_at" gorm:"not null"`
}

func (Estimate) TableName() string { return "estimates" }

// Blocker is a persisted validation reason. The set is replaced on every update.
type Blocker struct {
	ID         string    `json:"id" gorm:"primaryKey;size:64"`
	EstimateID string    `json:"estimate_id" gorm:"column:estimate_id;size:64;not null;index"`
	Reason     string    `json:"reason" gorm:"type:text;not null"`
	Position   int       `json:"position" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null"`
}

func (Blocker) TableName() string { return "estimate_blockers" }

func BlockerID(estimateID string, index int) string {
	return fmt.Sprintf("blocker_%s_%d", estimateID, index)
}

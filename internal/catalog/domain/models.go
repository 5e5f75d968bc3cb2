package domain

type ApprovalType string

var (
	ApprovalNone          ApprovalType = "none"
	ApprovalManagerReview ApprovalType = "manager_review"
)

type Provider struct {
	ID       string  `json:"id" gorm:"primaryKey;size:64"`
	Name     string  `json:"name" gorm:"type:text;not null"`
	Location string  `json:"location" gorm:"size:255;not null;default:''"`
	LogoURL  *string `json:"logo_url" gorm:"column:logo_url;type:text"`
}

func (Provider) TableName() string { return "providers" }

type Plan struct {
	ID              string       `json:"id" gorm:"primaryKey;size:64"`
	ProviderID      string       `json:"provider_id" gorm:"column:provider_id;size:64;not null;index"`
	Name            string       `json:"name" gorm:"type:text;not null"`
	Description     string       `json:"description" gorm:"type:text;not null"`
	BasePriceCents  int64        `json:"base_price_cents" gorm:"column:base_price_cents;not null"`
	Currency        string       `json:"currency" gorm:"size:3;not null"`
	ApprovalType    ApprovalType `json:"approval_type" gorm:"column:approval_type;size:32;not null;default:'none'"`
	MinParticipants int          `json:"min_participants" gorm:"column:min_participants;not null;default:0"`
	LeadTimeDays    int          `json:"lead_time_days" gorm:"column:lead_time_days;not null;default:0"`
}

func (Plan) TableName() string { return "plans" }

// OptionGroup is a configurable dimension of a plan. Code is unique within a
// plan. Groups and values are listed by Position, then ID.
type OptionGroup struct {
	ID          string  `json:"id" gorm:"primaryKey;size:64"`
	PlanID      string  `json:"plan_id" gorm:"column:plan_id;size:64;not null;uniqueIndex:uq_plan_option_groups_plan_code"`
	Code        string  `json:"code" gorm:"size:64;not null;uniqueIndex:uq_plan_option_groups_plan_code"`
	Description *string `json:"description" gorm:"type:text"`
	Required    bool    `json:"required" gorm:"not null;default:false"`
	Position    int     `json:"position" gorm:"not null;default:0"`
}

func (OptionGroup) TableName() string { return "plan_option_groups" }

// OptionValue is an allowed value of a group. A nil PriceCents leaves the
// total unchanged.
type OptionValue struct {
	ID            string  `json:"id" gorm:"primaryKey;size:64"`
	OptionGroupID string  `json:"option_group_id" gorm:"column:option_group_id;size:64;not null;index"`
	Value         string  `json:"value" gorm:"type:text;not null"`
	PriceCents    *int64  `json:"price_cents" gorm:"column:price_cents"`
	Currency      *string `json:"currency" gorm:"size:3"`
	Position      int     `json:"position" gorm:"not null;default:0"`
}

func (OptionValue) TableName() string { return "plan_option_values" }

type Addon struct {
	ID         string `json:"id" gorm:"primaryKey;size:64"`
	PlanID     string `json:"plan_id" gorm:"column:plan_id;size:64;not null;index"`
	Name       string `json:"name" gorm:"type:text;not null"`
	PriceCents int64  `json:"price_cents" gorm:"column:price_cents;not null"`
	Currency   string `json:"currency" gorm:"size:3;not null"`
}

func (Addon) TableName() string { return "plan_addons" }

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClientIndustry string

const (
	IndustryRetail        ClientIndustry = "retail"
	IndustryHealthcare    ClientIndustry = "healthcare"
	IndustrySaaS          ClientIndustry = "SaaS"
	IndustryFinance       ClientIndustry = "finance"
	IndustryEducation     ClientIndustry = "education"
	IndustryManufacturing ClientIndustry = "manufacturing"
	IndustryOther         ClientIndustry = "other"
)

func (i ClientIndustry) Valid() bool {
	switch i {
	case IndustryRetail, IndustryHealthcare, IndustrySaaS, IndustryFinance,
		IndustryEducation, IndustryManufacturing, IndustryOther:
		return true
	}
	return false
}

type ClientTier string

const (
	TierRetainer     ClientTier = "retainer"
	TierProjectBased ClientTier = "project-based"
	TierOneTime      ClientTier = "one-time"
)

func (t ClientTier) Valid() bool {
	switch t {
	case TierRetainer, TierProjectBased, TierOneTime:
		return true
	}
	return false
}

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientProspect ClientStatus = "prospect"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientActive, ClientInactive, ClientProspect:
		return true
	}
	return false
}

type Client struct {
	ID                     primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	CompanyName            string              `json:"companyName" bson:"companyName"`
	Industry               ClientIndustry      `json:"industry" bson:"industry"`
	Website                string              `json:"website,omitempty" bson:"website,omitempty"`
	LogoURL                string              `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	Tier                   ClientTier          `json:"tier" bson:"tier"`
	Status                 ClientStatus        `json:"status" bson:"status"`
	AssignedAccountManager *primitive.ObjectID `json:"assignedAccountManager,omitempty" bson:"assignedAccountManager,omitempty"`
	MonthlyRetainerValue   float64             `json:"monthlyRetainerValue" bson:"monthlyRetainerValue"`
	OnboardedDate          *time.Time          `json:"onboardedDate,omitempty" bson:"onboardedDate,omitempty"`
	Notes                  string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt              time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt              time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// ClientView is the read-side shape: the stored manager id is replaced by the
// referenced document when population is requested. A dangling reference
// populates to nothing.
type ClientView struct {
	Client                 `bson:",inline"`
	AssignedAccountManager *TeamMember `json:"assignedAccountManager,omitempty" bson:"-"`
}

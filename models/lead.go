package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeadSource string

const (
	SourceReferral     LeadSource = "referral"
	SourceColdOutreach LeadSource = "cold outreach"
	SourceInbound      LeadSource = "inbound"
	SourceLinkedIn     LeadSource = "LinkedIn"
	SourceEvent        LeadSource = "event"
)

func (s LeadSource) Valid() bool {
	switch s {
	case SourceReferral, SourceColdOutreach, SourceInbound, SourceLinkedIn, SourceEvent:
		return true
	}
	return false
}

type LeadStage string

const (
	StageNew          LeadStage = "new"
	StageContacted    LeadStage = "contacted"
	StageQualified    LeadStage = "qualified"
	StageProposalSent LeadStage = "proposal-sent"
	StageNegotiating  LeadStage = "negotiating"
	StageWon          LeadStage = "won"
	StageLost         LeadStage = "lost"
)

func (s LeadStage) Valid() bool {
	switch s {
	case StageNew, StageContacted, StageQualified, StageProposalSent,
		StageNegotiating, StageWon, StageLost:
		return true
	}
	return false
}

type Lead struct {
	ID                  primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	CompanyName         string              `json:"companyName" bson:"companyName"`
	ContactName         string              `json:"contactName" bson:"contactName"`
	Email               string              `json:"email" bson:"email"`
	Phone               string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Source              LeadSource          `json:"source" bson:"source"`
	ServiceInterestedIn string              `json:"serviceInterestedIn,omitempty" bson:"serviceInterestedIn,omitempty"`
	EstimatedValue      float64             `json:"estimatedValue" bson:"estimatedValue"`
	Stage               LeadStage           `json:"stage" bson:"stage"`
	FollowUpDate        *time.Time          `json:"followUpDate,omitempty" bson:"followUpDate,omitempty"`
	Notes               string              `json:"notes,omitempty" bson:"notes,omitempty"`
	AssignedTo          *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	CreatedAt           time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type LeadView struct {
	Lead       `bson:",inline"`
	AssignedTo *TeamMember `json:"assignedTo,omitempty" bson:"-"`
}

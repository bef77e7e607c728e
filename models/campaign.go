package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignType string

const (
	CampaignGoogleAds  CampaignType = "Google Ads"
	CampaignMetaAds    CampaignType = "Meta Ads"
	CampaignEmail      CampaignType = "Email"
	CampaignSEO        CampaignType = "SEO"
	CampaignInfluencer CampaignType = "Influencer"
)

func (t CampaignType) Valid() bool {
	switch t {
	case CampaignGoogleAds, CampaignMetaAds, CampaignEmail, CampaignSEO, CampaignInfluencer:
		return true
	}
	return false
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted:
		return true
	}
	return false
}

type CampaignGoal string

const (
	GoalAwareness CampaignGoal = "awareness"
	GoalLeads     CampaignGoal = "leads"
	GoalSales     CampaignGoal = "sales"
	GoalTraffic   CampaignGoal = "traffic"
)

func (g CampaignGoal) Valid() bool {
	switch g {
	case GoalAwareness, GoalLeads, GoalSales, GoalTraffic:
		return true
	}
	return false
}

type CampaignKPIs struct {
	Impressions float64 `json:"impressions" bson:"impressions"`
	Clicks      float64 `json:"clicks" bson:"clicks"`
	Conversions float64 `json:"conversions" bson:"conversions"`
	CTR         float64 `json:"ctr" bson:"ctr"`
	ROAS        float64 `json:"roas" bson:"roas"`
}

type Campaign struct {
	ID        primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name      string              `json:"name" bson:"name"`
	Client    *primitive.ObjectID `json:"client,omitempty" bson:"client,omitempty"`
	Type      CampaignType        `json:"type" bson:"type"`
	Status    CampaignStatus      `json:"status" bson:"status"`
	Budget    float64             `json:"budget" bson:"budget"`
	Spend     float64             `json:"spend" bson:"spend"`
	StartDate *time.Time          `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate   *time.Time          `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Platform  string              `json:"platform,omitempty" bson:"platform,omitempty"`
	Goal      CampaignGoal        `json:"goal,omitempty" bson:"goal,omitempty"`
	KPIs      CampaignKPIs        `json:"kpis" bson:"kpis"`
	Notes     string              `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type CampaignView struct {
	Campaign `bson:",inline"`
	Client   *Client `json:"client,omitempty" bson:"-"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectType string

const (
	ProjectSEO            ProjectType = "SEO"
	ProjectSocialMedia    ProjectType = "Social Media"
	ProjectPaidAds        ProjectType = "Paid Ads"
	ProjectBranding       ProjectType = "Branding"
	ProjectWebDesign      ProjectType = "Web Design"
	ProjectEmailMarketing ProjectType = "Email Marketing"
)

func (t ProjectType) Valid() bool {
	switch t {
	case ProjectSEO, ProjectSocialMedia, ProjectPaidAds, ProjectBranding,
		ProjectWebDesign, ProjectEmailMarketing:
		return true
	}
	return false
}

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectOnHold     ProjectStatus = "on-hold"
	ProjectCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

type Project struct {
	ID                  primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Title               string               `json:"title" bson:"title"`
	Type                ProjectType          `json:"type" bson:"type"`
	Client              *primitive.ObjectID  `json:"client,omitempty" bson:"client,omitempty"`
	Status              ProjectStatus        `json:"status" bson:"status"`
	StartDate           *time.Time           `json:"startDate,omitempty" bson:"startDate,omitempty"`
	Deadline            *time.Time           `json:"deadline,omitempty" bson:"deadline,omitempty"`
	Budget              float64              `json:"budget" bson:"budget"`
	ActualSpend         float64              `json:"actualSpend" bson:"actualSpend"`
	AssignedTeamMembers []primitive.ObjectID `json:"assignedTeamMembers" bson:"assignedTeamMembers,omitempty"`
	Deliverables        []string             `json:"deliverables" bson:"deliverables,omitempty"`
	Notes               string               `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt           time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type ProjectView struct {
	Project             `bson:",inline"`
	Client              *Client      `json:"client,omitempty" bson:"-"`
	AssignedTeamMembers []TeamMember `json:"assignedTeamMembers" bson:"-"`
}

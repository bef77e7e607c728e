package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeamRole string

const (
	RoleAccountManager TeamRole = "Account Manager"
	RoleDesigner       TeamRole = "Designer"
	RoleCopywriter     TeamRole = "Copywriter"
	RoleMediaBuyer     TeamRole = "Media Buyer"
	RoleSEOSpecialist  TeamRole = "SEO Specialist"
	RoleDeveloper      TeamRole = "Developer"
)

func (r TeamRole) Valid() bool {
	switch r {
	case RoleAccountManager, RoleDesigner, RoleCopywriter, RoleMediaBuyer,
		RoleSEOSpecialist, RoleDeveloper:
		return true
	}
	return false
}

type TeamMember struct {
	ID             primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name           string               `json:"name" bson:"name"`
	Email          string               `json:"email" bson:"email"`
	Role           TeamRole             `json:"role" bson:"role"`
	Skills         []string             `json:"skills" bson:"skills,omitempty"`
	ActiveProjects []primitive.ObjectID `json:"activeProjects" bson:"activeProjects,omitempty"`
	AvatarURL      string               `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type TeamMemberView struct {
	TeamMember     `bson:",inline"`
	ActiveProjects []Project `json:"activeProjects" bson:"-"`
}

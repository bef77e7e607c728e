package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactMethod string

const (
	ContactByEmail    ContactMethod = "email"
	ContactByPhone    ContactMethod = "phone"
	ContactByWhatsApp ContactMethod = "WhatsApp"
)

func (m ContactMethod) Valid() bool {
	switch m {
	case ContactByEmail, ContactByPhone, ContactByWhatsApp:
		return true
	}
	return false
}

type Contact struct {
	ID               primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	FirstName        string              `json:"firstName" bson:"firstName"`
	LastName         string              `json:"lastName" bson:"lastName"`
	Email            string              `json:"email" bson:"email"`
	Phone            string              `json:"phone,omitempty" bson:"phone,omitempty"`
	JobTitle         string              `json:"jobTitle,omitempty" bson:"jobTitle,omitempty"`
	Client           *primitive.ObjectID `json:"client,omitempty" bson:"client,omitempty"`
	IsPrimary        bool                `json:"isPrimary" bson:"isPrimary"`
	LinkedInURL      string              `json:"linkedInUrl,omitempty" bson:"linkedInUrl,omitempty"`
	PreferredContact ContactMethod       `json:"preferredContact" bson:"preferredContact"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type ContactView struct {
	Contact `bson:",inline"`
	Client  *Client `json:"client,omitempty" bson:"-"`
}

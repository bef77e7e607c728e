package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID              primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Title           string              `json:"title" bson:"title"`
	Description     string              `json:"description,omitempty" bson:"description,omitempty"`
	LinkedToClient  *primitive.ObjectID `json:"linkedToClient,omitempty" bson:"linkedToClient,omitempty"`
	LinkedToProject *primitive.ObjectID `json:"linkedToProject,omitempty" bson:"linkedToProject,omitempty"`
	LinkedToLead    *primitive.ObjectID `json:"linkedToLead,omitempty" bson:"linkedToLead,omitempty"`
	AssignedTo      *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	DueDate         *time.Time          `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Priority        TaskPriority        `json:"priority" bson:"priority"`
	Status          TaskStatus          `json:"status" bson:"status"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type TaskView struct {
	Task            `bson:",inline"`
	LinkedToClient  *Client     `json:"linkedToClient,omitempty" bson:"-"`
	LinkedToProject *Project    `json:"linkedToProject,omitempty" bson:"-"`
	LinkedToLead    *Lead       `json:"linkedToLead,omitempty" bson:"-"`
	AssignedTo      *TeamMember `json:"assignedTo,omitempty" bson:"-"`
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

type LeadService struct {
	leadsCollection *mongo.Collection
	teamCollection  *mongo.Collection
}

func NewLeadService(leads, team *mongo.Collection) *LeadService {
	return &LeadService{
		leadsCollection: leads,
		teamCollection:  team,
	}
}

func (s *LeadService) GetAllLeads(ctx context.Context) ([]models.LeadView, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.leadsCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve leads: %v", err)
	}
	defer cursor.Close(ctx)

	views := []models.LeadView{}
	for cursor.Next(ctx) {
		var lead models.Lead
		if err := cursor.Decode(&lead); err != nil {
			return nil, fmt.Errorf("failed to decode lead: %v", err)
		}
		views = append(views, models.LeadView{
			Lead:       lead,
			AssignedTo: lookupTeamMember(ctx, s.teamCollection, lead.AssignedTo),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return views, nil
}

func (s *LeadService) GetLeadByID(ctx context.Context, id primitive.ObjectID) (*models.LeadView, error) {
	var lead models.Lead
	err := s.leadsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve lead: %v", err)
	}

	return &models.LeadView{
		Lead:       lead,
		AssignedTo: lookupTeamMember(ctx, s.teamCollection, lead.AssignedTo),
	}, nil
}

func (s *LeadService) CreateLead(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	if lead.CompanyName == "" || lead.ContactName == "" || lead.Email == "" || lead.Source == "" {
		return nil, fmt.Errorf("%w: companyName, contactName, email and source are required", ErrValidation)
	}
	if lead.Stage == "" {
		lead.Stage = models.StageNew
	}
	if !lead.Source.Valid() {
		return nil, fmt.Errorf("%w: invalid source %q", ErrValidation, lead.Source)
	}
	if !lead.Stage.Valid() {
		return nil, fmt.Errorf("%w: invalid stage %q", ErrValidation, lead.Stage)
	}

	now := time.Now()
	lead.ID = primitive.NewObjectID()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if _, err := s.leadsCollection.InsertOne(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %v", err)
	}

	return &lead, nil
}

func (s *LeadService) UpdateLead(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Lead, error) {
	var patch models.Lead
	if err := json.Unmarshal(data, &patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	set := bson.M{}
	for field := range fields {
		switch field {
		case "companyName":
			if patch.CompanyName == "" {
				return nil, fmt.Errorf("%w: companyName cannot be empty", ErrValidation)
			}
			set["companyName"] = patch.CompanyName
		case "contactName":
			if patch.ContactName == "" {
				return nil, fmt.Errorf("%w: contactName cannot be empty", ErrValidation)
			}
			set["contactName"] = patch.ContactName
		case "email":
			if patch.Email == "" {
				return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
			}
			set["email"] = patch.Email
		case "phone":
			set["phone"] = patch.Phone
		case "source":
			if !patch.Source.Valid() {
				return nil, fmt.Errorf("%w: invalid source %q", ErrValidation, patch.Source)
			}
			set["source"] = patch.Source
		case "serviceInterestedIn":
			set["serviceInterestedIn"] = patch.ServiceInterestedIn
		case "estimatedValue":
			set["estimatedValue"] = patch.EstimatedValue
		case "stage":
			if !patch.Stage.Valid() {
				return nil, fmt.Errorf("%w: invalid stage %q", ErrValidation, patch.Stage)
			}
			set["stage"] = patch.Stage
		case "followUpDate":
			set["followUpDate"] = patch.FollowUpDate
		case "notes":
			set["notes"] = patch.Notes
		case "assignedTo":
			set["assignedTo"] = patch.AssignedTo
		}
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Lead
	err := s.leadsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update lead: %v", err)
	}

	return &updated, nil
}

func (s *LeadService) DeleteLead(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.leadsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete lead: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

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

type ClientService struct {
	clientsCollection *mongo.Collection
	teamCollection    *mongo.Collection
}

func NewClientService(clients, team *mongo.Collection) *ClientService {
	return &ClientService{
		clientsCollection: clients,
		teamCollection:    team,
	}
}

func (s *ClientService) GetAllClients(ctx context.Context) ([]models.ClientView, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.clientsCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve clients: %v", err)
	}
	defer cursor.Close(ctx)

	views := []models.ClientView{}
	for cursor.Next(ctx) {
		var client models.Client
		if err := cursor.Decode(&client); err != nil {
			return nil, fmt.Errorf("failed to decode client: %v", err)
		}
		views = append(views, models.ClientView{
			Client:                 client,
			AssignedAccountManager: lookupTeamMember(ctx, s.teamCollection, client.AssignedAccountManager),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return views, nil
}

func (s *ClientService) GetClientByID(ctx context.Context, id primitive.ObjectID) (*models.ClientView, error) {
	var client models.Client
	err := s.clientsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve client: %v", err)
	}

	return &models.ClientView{
		Client:                 client,
		AssignedAccountManager: lookupTeamMember(ctx, s.teamCollection, client.AssignedAccountManager),
	}, nil
}

func (s *ClientService) CreateClient(ctx context.Context, client models.Client) (*models.Client, error) {
	if client.CompanyName == "" || client.Tier == "" {
		return nil, fmt.Errorf("%w: companyName and tier are required", ErrValidation)
	}
	if client.Industry == "" {
		client.Industry = models.IndustryOther
	}
	if client.Status == "" {
		client.Status = models.ClientProspect
	}
	if !client.Industry.Valid() {
		return nil, fmt.Errorf("%w: invalid industry %q", ErrValidation, client.Industry)
	}
	if !client.Tier.Valid() {
		return nil, fmt.Errorf("%w: invalid tier %q", ErrValidation, client.Tier)
	}
	if !client.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, client.Status)
	}

	now := time.Now()
	client.ID = primitive.NewObjectID()
	client.CreatedAt = now
	client.UpdatedAt = now

	if _, err := s.clientsCollection.InsertOne(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %v", err)
	}

	return &client, nil
}

// UpdateClient applies a partial patch: only fields present in the payload
// change. The id and createdAt are never touched; updatedAt is always bumped.
func (s *ClientService) UpdateClient(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Client, error) {
	var patch models.Client
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
		case "industry":
			if !patch.Industry.Valid() {
				return nil, fmt.Errorf("%w: invalid industry %q", ErrValidation, patch.Industry)
			}
			set["industry"] = patch.Industry
		case "website":
			set["website"] = patch.Website
		case "logoUrl":
			set["logoUrl"] = patch.LogoURL
		case "tier":
			if !patch.Tier.Valid() {
				return nil, fmt.Errorf("%w: invalid tier %q", ErrValidation, patch.Tier)
			}
			set["tier"] = patch.Tier
		case "status":
			if !patch.Status.Valid() {
				return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, patch.Status)
			}
			set["status"] = patch.Status
		case "assignedAccountManager":
			set["assignedAccountManager"] = patch.AssignedAccountManager
		case "monthlyRetainerValue":
			set["monthlyRetainerValue"] = patch.MonthlyRetainerValue
		case "onboardedDate":
			set["onboardedDate"] = patch.OnboardedDate
		case "notes":
			set["notes"] = patch.Notes
		}
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Client
	err := s.clientsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update client: %v", err)
	}

	return &updated, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.clientsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete client: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	// No cascade: contacts, projects, campaigns and tasks keep their
	// references; population resolves them to nothing from here on.
	return nil
}

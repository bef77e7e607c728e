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

type CampaignService struct {
	campaignsCollection *mongo.Collection
	clientsCollection   *mongo.Collection
}

func NewCampaignService(campaigns, clients *mongo.Collection) *CampaignService {
	return &CampaignService{
		campaignsCollection: campaigns,
		clientsCollection:   clients,
	}
}

func (s *CampaignService) GetAllCampaigns(ctx context.Context) ([]models.CampaignView, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.campaignsCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve campaigns: %v", err)
	}
	defer cursor.Close(ctx)

	views := []models.CampaignView{}
	for cursor.Next(ctx) {
		var campaign models.Campaign
		if err := cursor.Decode(&campaign); err != nil {
			return nil, fmt.Errorf("failed to decode campaign: %v", err)
		}
		views = append(views, models.CampaignView{
			Campaign: campaign,
			Client:   lookupClient(ctx, s.clientsCollection, campaign.Client),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return views, nil
}

func (s *CampaignService) GetCampaignByID(ctx context.Context, id primitive.ObjectID) (*models.CampaignView, error) {
	var campaign models.Campaign
	err := s.campaignsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve campaign: %v", err)
	}

	return &models.CampaignView{
		Campaign: campaign,
		Client:   lookupClient(ctx, s.clientsCollection, campaign.Client),
	}, nil
}

func (s *CampaignService) CreateCampaign(ctx context.Context, campaign models.Campaign) (*models.Campaign, error) {
	if campaign.Name == "" || campaign.Type == "" || campaign.Client == nil {
		return nil, fmt.Errorf("%w: name, type and client are required", ErrValidation)
	}
	if campaign.Status == "" {
		campaign.Status = models.CampaignDraft
	}
	if !campaign.Type.Valid() {
		return nil, fmt.Errorf("%w: invalid type %q", ErrValidation, campaign.Type)
	}
	if !campaign.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, campaign.Status)
	}
	if campaign.Goal != "" && !campaign.Goal.Valid() {
		return nil, fmt.Errorf("%w: invalid goal %q", ErrValidation, campaign.Goal)
	}

	now := time.Now()
	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if _, err := s.campaignsCollection.InsertOne(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %v", err)
	}

	return &campaign, nil
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Campaign, error) {
	var patch models.Campaign
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
		case "name":
			if patch.Name == "" {
				return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
			}
			set["name"] = patch.Name
		case "client":
			set["client"] = patch.Client
		case "type":
			if !patch.Type.Valid() {
				return nil, fmt.Errorf("%w: invalid type %q", ErrValidation, patch.Type)
			}
			set["type"] = patch.Type
		case "status":
			if !patch.Status.Valid() {
				return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, patch.Status)
			}
			set["status"] = patch.Status
		case "budget":
			set["budget"] = patch.Budget
		case "spend":
			set["spend"] = patch.Spend
		case "startDate":
			set["startDate"] = patch.StartDate
		case "endDate":
			set["endDate"] = patch.EndDate
		case "platform":
			set["platform"] = patch.Platform
		case "goal":
			if patch.Goal != "" && !patch.Goal.Valid() {
				return nil, fmt.Errorf("%w: invalid goal %q", ErrValidation, patch.Goal)
			}
			set["goal"] = patch.Goal
		case "kpis":
			set["kpis"] = patch.KPIs
		case "notes":
			set["notes"] = patch.Notes
		}
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Campaign
	err := s.campaignsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update campaign: %v", err)
	}

	return &updated, nil
}

func (s *CampaignService) DeleteCampaign(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.campaignsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

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

type TeamService struct {
	teamCollection     *mongo.Collection
	projectsCollection *mongo.Collection
}

func NewTeamService(team, projects *mongo.Collection) *TeamService {
	return &TeamService{
		teamCollection:     team,
		projectsCollection: projects,
	}
}

func (s *TeamService) GetAllTeamMembers(ctx context.Context) ([]models.TeamMemberView, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.teamCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve team members: %v", err)
	}
	defer cursor.Close(ctx)

	views := []models.TeamMemberView{}
	for cursor.Next(ctx) {
		var member models.TeamMember
		if err := cursor.Decode(&member); err != nil {
			return nil, fmt.Errorf("failed to decode team member: %v", err)
		}
		views = append(views, models.TeamMemberView{
			TeamMember:     member,
			ActiveProjects: lookupProjects(ctx, s.projectsCollection, member.ActiveProjects),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return views, nil
}

func (s *TeamService) GetTeamMemberByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMemberView, error) {
	var member models.TeamMember
	err := s.teamCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve team member: %v", err)
	}

	return &models.TeamMemberView{
		TeamMember:     member,
		ActiveProjects: lookupProjects(ctx, s.projectsCollection, member.ActiveProjects),
	}, nil
}

func (s *TeamService) CreateTeamMember(ctx context.Context, member models.TeamMember) (*models.TeamMember, error) {
	if member.Name == "" || member.Email == "" || member.Role == "" {
		return nil, fmt.Errorf("%w: name, email and role are required", ErrValidation)
	}
	if !member.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, member.Role)
	}

	// Email is unique across the team.
	var existing models.TeamMember
	if err := s.teamCollection.FindOne(ctx, bson.M{"email": member.Email}).Decode(&existing); err == nil {
		return nil, fmt.Errorf("%w: team member with email %s already exists", ErrValidation, member.Email)
	}

	now := time.Now()
	member.ID = primitive.NewObjectID()
	member.CreatedAt = now
	member.UpdatedAt = now

	if _, err := s.teamCollection.InsertOne(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create team member: %v", err)
	}

	return &member, nil
}

func (s *TeamService) UpdateTeamMember(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.TeamMember, error) {
	var patch models.TeamMember
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
		case "email":
			if patch.Email == "" {
				return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
			}
			set["email"] = patch.Email
		case "role":
			if !patch.Role.Valid() {
				return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, patch.Role)
			}
			set["role"] = patch.Role
		case "skills":
			set["skills"] = patch.Skills
		case "activeProjects":
			set["activeProjects"] = patch.ActiveProjects
		case "avatarUrl":
			set["avatarUrl"] = patch.AvatarURL
		}
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.TeamMember
	err := s.teamCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update team member: %v", err)
	}

	return &updated, nil
}

func (s *TeamService) DeleteTeamMember(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.teamCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete team member: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	// Clients, leads and tasks that reference the member keep their ids;
	// population resolves them to nothing from here on.
	return nil
}

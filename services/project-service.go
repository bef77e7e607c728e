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

type ProjectService struct {
	projectsCollection *mongo.Collection
	clientsCollection  *mongo.Collection
	teamCollection     *mongo.Collection
}

func NewProjectService(projects, clients, team *mongo.Collection) *ProjectService {
	return &ProjectService{
		projectsCollection: projects,
		clientsCollection:  clients,
		teamCollection:     team,
	}
}

func (s *ProjectService) view(ctx context.Context, project models.Project) models.ProjectView {
	return models.ProjectView{
		Project:             project,
		Client:              lookupClient(ctx, s.clientsCollection, project.Client),
		AssignedTeamMembers: lookupTeamMembers(ctx, s.teamCollection, project.AssignedTeamMembers),
	}
}

func (s *ProjectService) GetAllProjects(ctx context.Context) ([]models.ProjectView, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.projectsCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	views := []models.ProjectView{}
	for cursor.Next(ctx) {
		var project models.Project
		if err := cursor.Decode(&project); err != nil {
			return nil, fmt.Errorf("failed to decode project: %v", err)
		}
		views = append(views, s.view(ctx, project))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return views, nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectView, error) {
	var project models.Project
	err := s.projectsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve project: %v", err)
	}

	view := s.view(ctx, project)
	return &view, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, project models.Project) (*models.Project, error) {
	if project.Title == "" || project.Type == "" || project.Client == nil {
		return nil, fmt.Errorf("%w: title, type and client are required", ErrValidation)
	}
	if project.Status == "" {
		project.Status = models.ProjectPlanning
	}
	if !project.Type.Valid() {
		return nil, fmt.Errorf("%w: invalid type %q", ErrValidation, project.Type)
	}
	if !project.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, project.Status)
	}

	now := time.Now()
	project.ID = primitive.NewObjectID()
	project.CreatedAt = now
	project.UpdatedAt = now

	if _, err := s.projectsCollection.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %v", err)
	}

	return &project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Project, error) {
	var patch models.Project
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
		case "title":
			if patch.Title == "" {
				return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
			}
			set["title"] = patch.Title
		case "type":
			if !patch.Type.Valid() {
				return nil, fmt.Errorf("%w: invalid type %q", ErrValidation, patch.Type)
			}
			set["type"] = patch.Type
		case "client":
			set["client"] = patch.Client
		case "status":
			if !patch.Status.Valid() {
				return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, patch.Status)
			}
			set["status"] = patch.Status
		case "startDate":
			set["startDate"] = patch.StartDate
		case "deadline":
			set["deadline"] = patch.Deadline
		case "budget":
			set["budget"] = patch.Budget
		case "actualSpend":
			set["actualSpend"] = patch.ActualSpend
		case "assignedTeamMembers":
			set["assignedTeamMembers"] = patch.AssignedTeamMembers
		case "deliverables":
			set["deliverables"] = patch.Deliverables
		case "notes":
			set["notes"] = patch.Notes
		}
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Project
	err := s.projectsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %v", err)
	}

	return &updated, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.projectsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

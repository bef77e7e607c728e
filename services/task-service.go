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

type TaskService struct {
	tasksCollection    *mongo.Collection
	clientsCollection  *mongo.Collection
	projectsCollection *mongo.Collection
	leadsCollection    *mongo.Collection
	teamCollection     *mongo.Collection
}

func NewTaskService(tasks, clients, projects, leads, team *mongo.Collection) *TaskService {
	return &TaskService{
		tasksCollection:    tasks,
		clientsCollection:  clients,
		projectsCollection: projects,
		leadsCollection:    leads,
		teamCollection:     team,
	}
}

func (s *TaskService) view(ctx context.Context, task models.Task) models.TaskView {
	return models.TaskView{
		Task:            task,
		LinkedToClient:  lookupClient(ctx, s.clientsCollection, task.LinkedToClient),
		LinkedToProject: lookupProject(ctx, s.projectsCollection, task.LinkedToProject),
		LinkedToLead:    lookupLead(ctx, s.leadsCollection, task.LinkedToLead),
		AssignedTo:      lookupTeamMember(ctx, s.teamCollection, task.AssignedTo),
	}
}

func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.TaskView, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.tasksCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	views := []models.TaskView{}
	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %v", err)
		}
		views = append(views, s.view(ctx, task))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return views, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id primitive.ObjectID) (*models.TaskView, error) {
	var task models.Task
	err := s.tasksCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve task: %v", err)
	}

	view := s.view(ctx, task)
	return &view, nil
}

func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	if task.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if !task.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, task.Priority)
	}
	if !task.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, task.Status)
	}

	now := time.Now()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := s.tasksCollection.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}

	return &task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Task, error) {
	var patch models.Task
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
		case "description":
			set["description"] = patch.Description
		case "linkedToClient":
			set["linkedToClient"] = patch.LinkedToClient
		case "linkedToProject":
			set["linkedToProject"] = patch.LinkedToProject
		case "linkedToLead":
			set["linkedToLead"] = patch.LinkedToLead
		case "assignedTo":
			set["assignedTo"] = patch.AssignedTo
		case "dueDate":
			set["dueDate"] = patch.DueDate
		case "priority":
			if !patch.Priority.Valid() {
				return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, patch.Priority)
			}
			set["priority"] = patch.Priority
		case "status":
			if !patch.Status.Valid() {
				return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, patch.Status)
			}
			set["status"] = patch.Status
		}
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Task
	err := s.tasksCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %v", err)
	}

	return &updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.tasksCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

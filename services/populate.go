package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

// Reference population. Stored documents keep ids only; reads resolve them
// into embedded copies through id lookups. A dangling or absent reference
// resolves to nothing rather than an error.

func lookupTeamMember(ctx context.Context, coll *mongo.Collection, id *primitive.ObjectID) *models.TeamMember {
	if id == nil {
		return nil
	}
	var member models.TeamMember
	if err := coll.FindOne(ctx, bson.M{"_id": *id}).Decode(&member); err != nil {
		return nil
	}
	return &member
}

func lookupClient(ctx context.Context, coll *mongo.Collection, id *primitive.ObjectID) *models.Client {
	if id == nil {
		return nil
	}
	var client models.Client
	if err := coll.FindOne(ctx, bson.M{"_id": *id}).Decode(&client); err != nil {
		return nil
	}
	return &client
}

func lookupProject(ctx context.Context, coll *mongo.Collection, id *primitive.ObjectID) *models.Project {
	if id == nil {
		return nil
	}
	var project models.Project
	if err := coll.FindOne(ctx, bson.M{"_id": *id}).Decode(&project); err != nil {
		return nil
	}
	return &project
}

func lookupLead(ctx context.Context, coll *mongo.Collection, id *primitive.ObjectID) *models.Lead {
	if id == nil {
		return nil
	}
	var lead models.Lead
	if err := coll.FindOne(ctx, bson.M{"_id": *id}).Decode(&lead); err != nil {
		return nil
	}
	return &lead
}

// lookupTeamMembers resolves a list of member ids, preserving the stored order
// and silently skipping ids that no longer match a document.
func lookupTeamMembers(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID) []models.TeamMember {
	found := map[primitive.ObjectID]models.TeamMember{}
	if len(ids) > 0 {
		cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err == nil {
			defer cursor.Close(ctx)
			for cursor.Next(ctx) {
				var member models.TeamMember
				if err := cursor.Decode(&member); err == nil {
					found[member.ID] = member
				}
			}
		}
	}
	members := []models.TeamMember{}
	for _, id := range ids {
		if member, ok := found[id]; ok {
			members = append(members, member)
		}
	}
	return members
}

func lookupProjects(ctx context.Context, coll *mongo.Collection, ids []primitive.ObjectID) []models.Project {
	found := map[primitive.ObjectID]models.Project{}
	if len(ids) > 0 {
		cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err == nil {
			defer cursor.Close(ctx)
			for cursor.Next(ctx) {
				var project models.Project
				if err := cursor.Decode(&project); err == nil {
					found[project.ID] = project
				}
			}
		}
	}
	projects := []models.Project{}
	for _, id := range ids {
		if project, ok := found[id]; ok {
			projects = append(projects, project)
		}
	}
	return projects
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestProjectService_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("populates client and team members", func(mt *mtest.T) {
		svc := NewProjectService(mt.Coll, mt.Coll, mt.Coll)

		projectID := primitive.NewObjectID()
		clientID := primitive.NewObjectID()
		memberID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: projectID},
				{Key: "title", Value: "Site relaunch"},
				{Key: "type", Value: "Web Design"},
				{Key: "client", Value: clientID},
				{Key: "assignedTeamMembers", Value: bson.A{memberID}},
			}),
			mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: clientID},
				{Key: "companyName", Value: "Acme"},
			}),
			mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: memberID},
				{Key: "name", Value: "Ana"},
			}),
		)

		view, err := svc.GetProjectByID(context.Background(), projectID)
		require.NoError(mt, err)
		require.NotNil(mt, view.Client)
		assert.Equal(mt, "Acme", view.Client.CompanyName)
		require.Len(mt, view.AssignedTeamMembers, 1)
		assert.Equal(mt, "Ana", view.AssignedTeamMembers[0].Name)
	})

	mt.Run("deleted client reference populates to nothing", func(mt *mtest.T) {
		svc := NewProjectService(mt.Coll, mt.Coll, mt.Coll)

		projectID := primitive.NewObjectID()
		clientID := primitive.NewObjectID()
		memberID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: projectID},
				{Key: "title", Value: "Site relaunch"},
				{Key: "type", Value: "Web Design"},
				{Key: "client", Value: clientID},
				{Key: "assignedTeamMembers", Value: bson.A{memberID}},
			}),
			// The referenced client and member were deleted after assignment.
			mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch),
			mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch),
		)

		view, err := svc.GetProjectByID(context.Background(), projectID)
		require.NoError(mt, err)
		assert.Nil(mt, view.Client)
		assert.Empty(mt, view.AssignedTeamMembers)
		assert.Equal(mt, "Site relaunch", view.Project.Title)
	})
}

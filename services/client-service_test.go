package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

func collNS(mt *mtest.T) string {
	return fmt.Sprintf("%s.%s", mt.DB.Name(), mt.Coll.Name())
}

func TestClientService_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("defaults and timestamps stored", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := svc.CreateClient(context.Background(), models.Client{
			CompanyName: "Acme",
			Tier:        models.TierRetainer,
		})
		require.NoError(mt, err)

		assert.False(mt, created.ID.IsZero())
		assert.Equal(mt, models.IndustryOther, created.Industry)
		assert.Equal(mt, models.ClientProspect, created.Status)
		assert.False(mt, created.CreatedAt.IsZero())
		assert.Equal(mt, created.CreatedAt, created.UpdatedAt)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		require.Equal(mt, "insert", evt.CommandName)

		var doc bson.M
		require.NoError(mt, bson.Unmarshal(evt.Command.Lookup("documents", "0").Document(), &doc))
		assert.Equal(mt, "Acme", doc["companyName"])
		assert.Equal(mt, "retainer", doc["tier"])
		assert.Equal(mt, "prospect", doc["status"])
		assert.Contains(mt, doc, "createdAt")
	})

	mt.Run("missing required fields rejected before any write", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)

		_, err := svc.CreateClient(context.Background(), models.Client{CompanyName: "Acme"})
		assert.ErrorIs(mt, err, ErrValidation)
		assert.Nil(mt, mt.GetStartedEvent())
	})
}

func TestClientService_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns stored fields", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)

		id := primitive.NewObjectID()
		created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "companyName", Value: "Acme"},
			{Key: "tier", Value: "retainer"},
			{Key: "status", Value: "active"},
			{Key: "monthlyRetainerValue", Value: 5000.0},
			{Key: "createdAt", Value: created},
		}))

		view, err := svc.GetClientByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, view.Client.ID)
		assert.Equal(mt, "Acme", view.Client.CompanyName)
		assert.Equal(mt, models.TierRetainer, view.Client.Tier)
		assert.Equal(mt, 5000.0, view.Client.MonthlyRetainerValue)
		assert.True(mt, created.Equal(view.Client.CreatedAt))
	})

	mt.Run("dangling manager reference populates to nothing", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)

		id := primitive.NewObjectID()
		managerID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "companyName", Value: "Acme"},
				{Key: "tier", Value: "retainer"},
				{Key: "assignedAccountManager", Value: managerID},
			}),
			// Manager lookup finds nothing: the referenced member was deleted.
			mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch),
		)

		view, err := svc.GetClientByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Nil(mt, view.AssignedAccountManager)
		require.NotNil(mt, view.Client.AssignedAccountManager)
		assert.Equal(mt, managerID, *view.Client.AssignedAccountManager)
	})

	mt.Run("missing document is NotFound", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch))

		_, err := svc.GetClientByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestClientService_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("patch touches only supplied fields and bumps updatedAt", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)

		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "companyName", Value: "Acme"},
			{Key: "tier", Value: "retainer"},
			{Key: "notes", Value: "renewed"},
		}}))

		patch := json.RawMessage(fmt.Sprintf(
			`{"notes": "renewed", "_id": %q, "createdAt": "2020-01-01T00:00:00Z"}`, id.Hex()))
		updated, err := svc.UpdateClient(context.Background(), id, patch)
		require.NoError(mt, err)
		assert.Equal(mt, "renewed", updated.Notes)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		require.Equal(mt, "findAndModify", evt.CommandName)

		var set bson.M
		require.NoError(mt, bson.Unmarshal(evt.Command.Lookup("update", "$set").Document(), &set))
		assert.Contains(mt, set, "notes")
		assert.Contains(mt, set, "updatedAt")
		assert.NotContains(mt, set, "_id")
		assert.NotContains(mt, set, "createdAt")
		assert.NotContains(mt, set, "companyName")
	})

	mt.Run("invalid enum in patch rejected", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)

		_, err := svc.UpdateClient(context.Background(), primitive.NewObjectID(),
			json.RawMessage(`{"status": "dormant"}`))
		assert.ErrorIs(mt, err, ErrValidation)
	})
}

func TestClientService_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deletes by id", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, svc.DeleteClient(context.Background(), primitive.NewObjectID()))
	})

	mt.Run("missing document is NotFound", func(mt *mtest.T) {
		svc := NewClientService(mt.Coll, mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := svc.DeleteClient(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

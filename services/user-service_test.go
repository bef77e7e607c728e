package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

func TestUserService_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty patch reads back the account instead of writing", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll)

		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ana"},
			{Key: "email", Value: "ana@smithsagency.com"},
			{Key: "role", Value: "user"},
		}))

		user, err := svc.UpdateUser(context.Background(), id, UserPatch{})
		require.NoError(mt, err)
		assert.Equal(mt, "ana@smithsagency.com", user.Email)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
	})

	mt.Run("short password rejected before any write", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll)

		_, err := svc.UpdateUser(context.Background(), primitive.NewObjectID(), UserPatch{Password: "123"})
		assert.ErrorIs(mt, err, ErrValidation)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("email lowercased in the patch", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll)

		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "ana@smithsagency.com"},
		}}))

		_, err := svc.UpdateUser(context.Background(), id, UserPatch{Email: "Ana@SmithsAgency.com"})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		require.Equal(mt, "findAndModify", evt.CommandName)

		var set bson.M
		require.NoError(mt, bson.Unmarshal(evt.Command.Lookup("update", "$set").Document(), &set))
		assert.Equal(mt, "ana@smithsagency.com", set["email"])
	})
}

func TestUserService_Authenticate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("wrong password", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll)

		hash, err := bcrypt.GenerateFromPassword([]byte("right-one"), bcrypt.MinCost)
		require.NoError(mt, err)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "ana@smithsagency.com"},
			{Key: "password", Value: string(hash)},
		}))

		_, err = svc.Authenticate(context.Background(), "ana@smithsagency.com", "wrong-one")
		assert.ErrorIs(mt, err, ErrInvalidCredentials)
	})

	mt.Run("unknown email", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch))

		_, err := svc.Authenticate(context.Background(), "nobody@smithsagency.com", "whatever")
		assert.ErrorIs(mt, err, ErrInvalidCredentials)
	})

	mt.Run("matching credentials", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll)

		hash, err := bcrypt.GenerateFromPassword([]byte("right-one"), bcrypt.MinCost)
		require.NoError(mt, err)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "ana@smithsagency.com"},
			{Key: "password", Value: string(hash)},
			{Key: "role", Value: "admin"},
		}))

		user, err := svc.Authenticate(context.Background(), "Ana@SmithsAgency.com", "right-one")
		require.NoError(mt, err)
		assert.Equal(mt, models.RoleAdmin, user.Role)
	})
}

func TestUserService_CreateValidation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("short password", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll)

		_, err := svc.CreateUser(context.Background(), "Ana", "ana@smithsagency.com", "12345", models.RoleUser)
		assert.ErrorIs(mt, err, ErrValidation)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		svc := NewUserService(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, collNS(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "ana@smithsagency.com"},
		}))

		_, err := svc.CreateUser(context.Background(), "Ana", "ana@smithsagency.com", "secret1", models.RoleUser)
		assert.ErrorIs(mt, err, ErrValidation)
	})
}

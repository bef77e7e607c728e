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

type ContactService struct {
	contactsCollection *mongo.Collection
	clientsCollection  *mongo.Collection
}

func NewContactService(contacts, clients *mongo.Collection) *ContactService {
	return &ContactService{
		contactsCollection: contacts,
		clientsCollection:  clients,
	}
}

func (s *ContactService) GetAllContacts(ctx context.Context) ([]models.ContactView, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.contactsCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve contacts: %v", err)
	}
	defer cursor.Close(ctx)

	views := []models.ContactView{}
	for cursor.Next(ctx) {
		var contact models.Contact
		if err := cursor.Decode(&contact); err != nil {
			return nil, fmt.Errorf("failed to decode contact: %v", err)
		}
		views = append(views, models.ContactView{
			Contact: contact,
			Client:  lookupClient(ctx, s.clientsCollection, contact.Client),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return views, nil
}

func (s *ContactService) GetContactByID(ctx context.Context, id primitive.ObjectID) (*models.ContactView, error) {
	var contact models.Contact
	err := s.contactsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&contact)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve contact: %v", err)
	}

	return &models.ContactView{
		Contact: contact,
		Client:  lookupClient(ctx, s.clientsCollection, contact.Client),
	}, nil
}

func (s *ContactService) CreateContact(ctx context.Context, contact models.Contact) (*models.Contact, error) {
	if contact.FirstName == "" || contact.LastName == "" || contact.Email == "" || contact.Client == nil {
		return nil, fmt.Errorf("%w: firstName, lastName, email and client are required", ErrValidation)
	}
	if contact.PreferredContact == "" {
		contact.PreferredContact = models.ContactByEmail
	}
	if !contact.PreferredContact.Valid() {
		return nil, fmt.Errorf("%w: invalid preferredContact %q", ErrValidation, contact.PreferredContact)
	}

	now := time.Now()
	contact.ID = primitive.NewObjectID()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	if _, err := s.contactsCollection.InsertOne(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %v", err)
	}

	return &contact, nil
}

func (s *ContactService) UpdateContact(ctx context.Context, id primitive.ObjectID, data json.RawMessage) (*models.Contact, error) {
	var patch models.Contact
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
		case "firstName":
			if patch.FirstName == "" {
				return nil, fmt.Errorf("%w: firstName cannot be empty", ErrValidation)
			}
			set["firstName"] = patch.FirstName
		case "lastName":
			if patch.LastName == "" {
				return nil, fmt.Errorf("%w: lastName cannot be empty", ErrValidation)
			}
			set["lastName"] = patch.LastName
		case "email":
			if patch.Email == "" {
				return nil, fmt.Errorf("%w: email cannot be empty", ErrValidation)
			}
			set["email"] = patch.Email
		case "phone":
			set["phone"] = patch.Phone
		case "jobTitle":
			set["jobTitle"] = patch.JobTitle
		case "client":
			set["client"] = patch.Client
		case "isPrimary":
			set["isPrimary"] = patch.IsPrimary
		case "linkedInUrl":
			set["linkedInUrl"] = patch.LinkedInURL
		case "preferredContact":
			if !patch.PreferredContact.Valid() {
				return nil, fmt.Errorf("%w: invalid preferredContact %q", ErrValidation, patch.PreferredContact)
			}
			set["preferredContact"] = patch.PreferredContact
		}
	}
	set["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Contact
	err := s.contactsCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update contact: %v", err)
	}

	return &updated, nil
}

func (s *ContactService) DeleteContact(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.contactsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete contact: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

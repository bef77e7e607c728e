package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/models"
)

// ErrInvalidCredentials is returned by Authenticate when the email or
// password does not match; handlers map it to 401 without leaking which
// of the two was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	usersCollection *mongo.Collection
}

func NewUserService(users *mongo.Collection) *UserService {
	return &UserService{usersCollection: users}
}

// UserPatch carries the optional fields of a user update. Empty strings
// leave the stored value untouched; a non-empty password is re-hashed.
type UserPatch struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.usersCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %v", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return users, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.usersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}
	return &user, nil
}

func (s *UserService) CreateUser(ctx context.Context, name, email, password string, role models.UserRole) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}

	email = strings.ToLower(email)

	var existing models.User
	if err := s.usersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: time.Now(),
	}

	if _, err := s.usersCollection.InsertOne(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %v", err)
	}

	return &user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id primitive.ObjectID, patch UserPatch) (*models.User, error) {
	set := bson.M{}
	if patch.Name != "" {
		set["name"] = patch.Name
	}
	if patch.Email != "" {
		set["email"] = strings.ToLower(patch.Email)
	}
	if patch.Role != "" {
		if !patch.Role.Valid() {
			return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, patch.Role)
		}
		set["role"] = patch.Role
	}
	if strings.TrimSpace(patch.Password) != "" {
		if len(patch.Password) < 6 {
			return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %v", err)
		}
		set["password"] = string(hashedPassword)
	}

	// MongoDB rejects an empty $set; a patch with nothing to change reads
	// back the current account instead.
	if len(set) == 0 {
		return s.GetUserByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.User
	err := s.usersCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %v", err)
	}

	return &updated, nil
}

// DeleteUser removes an account. Administrators cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, id, requesterID primitive.ObjectID) error {
	if id == requesterID {
		return fmt.Errorf("%w: you cannot delete your own account", ErrValidation)
	}

	result, err := s.usersCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.usersCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/answerhub/forum-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists user credentials and profiles.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID            string `bson:"_id"`
	Username      string `bson:"username"`
	Email         string `bson:"email"`
	PasswordHash  string `bson:"password_hash"`
	Role          string `bson:"role"`
	FirstName     string `bson:"first_name,omitempty"`
	LastName      string `bson:"last_name,omitempty"`
	Country       string `bson:"country,omitempty"`
	AboutMe       string `bson:"about_me,omitempty"`
	DOB           string `bson:"dob,omitempty"`
	ContactNumber string `bson:"contact_number,omitempty"`
	CreatedAt     int64  `bson:"created_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Role:          string(u.Role),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Country:       u.Country,
		AboutMe:       u.AboutMe,
		DOB:           u.DOB,
		ContactNumber: u.ContactNumber,
		CreatedAt:     u.CreatedAt.Unix(),
	}
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:            mu.ID,
		Username:      mu.Username,
		Email:         mu.Email,
		PasswordHash:  mu.PasswordHash,
		Role:          domain.ParseRole(mu.Role),
		FirstName:     mu.FirstName,
		LastName:      mu.LastName,
		Country:       mu.Country,
		AboutMe:       mu.AboutMe,
		DOB:           mu.DOB,
		ContactNumber: mu.ContactNumber,
		CreatedAt:     unixToTime(mu.CreatedAt),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// The server names the violated index (username_1 or email_1).
			if strings.Contains(err.Error(), "email") {
				return domain.ErrEmailTaken
			}
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoUser
	}
	return nil
}

// EnsureIndexes creates the unique constraints behind registration.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: uniqueIndex()},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/answerhub/forum-api/internal/core/domain"
)

const answersCollection = "answers"

// AnswerRepository persists answers.
type AnswerRepository struct {
	coll *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{coll: db.Collection(answersCollection)}
}

type mongoAnswer struct {
	ID         string    `bson:"_id"`
	QuestionID string    `bson:"question_id"`
	AuthorID   string    `bson:"author_id"`
	Content    string    `bson:"content"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func (ma *mongoAnswer) toDomain() *domain.Answer {
	return &domain.Answer{
		ID:         ma.ID,
		QuestionID: ma.QuestionID,
		AuthorID:   ma.AuthorID,
		Content:    ma.Content,
		CreatedAt:  ma.CreatedAt.UTC(),
		UpdatedAt:  ma.UpdatedAt.UTC(),
	}
}

func (r *AnswerRepository) Create(ctx context.Context, a *domain.Answer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAnswer{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		AuthorID:   a.AuthorID,
		Content:    a.Content,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

func (r *AnswerRepository) FindByID(ctx context.Context, id string) (*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAnswer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoAnswer
		}
		return nil, fmt.Errorf("find answer: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AnswerRepository) FindByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"question_id": questionID})
	if err != nil {
		return nil, fmt.Errorf("find answers: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Answer
	for cursor.Next(ctx) {
		var ma mongoAnswer
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode answer: %w", err)
		}
		out = append(out, ma.toDomain())
	}
	return out, cursor.Err()
}

func (r *AnswerRepository) Update(ctx context.Context, a *domain.Answer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"content": a.Content, "updated_at": a.UpdatedAt}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": a.ID}, update)
	if err != nil {
		return fmt.Errorf("update answer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoAnswer
	}
	return nil
}

func (r *AnswerRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete answer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoAnswer
	}
	return nil
}

func (r *AnswerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "question_id", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

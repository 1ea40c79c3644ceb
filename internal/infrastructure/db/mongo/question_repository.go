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

const questionsCollection = "questions"

// QuestionRepository persists questions.
type QuestionRepository struct {
	coll *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{coll: db.Collection(questionsCollection)}
}

type mongoQuestion struct {
	ID        string    `bson:"_id"`
	AuthorID  string    `bson:"author_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (mq *mongoQuestion) toDomain() *domain.Question {
	return &domain.Question{
		ID:        mq.ID,
		AuthorID:  mq.AuthorID,
		Content:   mq.Content,
		CreatedAt: mq.CreatedAt.UTC(),
		UpdatedAt: mq.UpdatedAt.UTC(),
	}
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoQuestion{
		ID:        q.ID,
		AuthorID:  q.AuthorID,
		Content:   q.Content,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mq mongoQuestion
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mq); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoQuestion
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return mq.toDomain(), nil
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]*domain.Question, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *QuestionRepository) FindByAuthor(ctx context.Context, authorID string) ([]*domain.Question, error) {
	return r.findMany(ctx, bson.M{"author_id": authorID})
}

func (r *QuestionRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Question
	for cursor.Next(ctx) {
		var mq mongoQuestion
		if err := cursor.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		out = append(out, mq.toDomain())
	}
	return out, cursor.Err()
}

// Update replaces the mutable fields. The author reference is immutable and
// deliberately absent from the update document.
func (r *QuestionRepository) Update(ctx context.Context, q *domain.Question) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"content": q.Content, "updated_at": q.UpdatedAt}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": q.ID}, update)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoQuestion
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoQuestion
	}
	return nil
}

func (r *QuestionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

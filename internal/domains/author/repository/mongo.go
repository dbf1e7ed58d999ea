package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/author/model"
)

const collectionName = "authors"

type authorRepository struct {
	collection *mongo.Collection
}

func NewAuthorRepository(db *mongo.Database) author.Repository {
	return &authorRepository{
		collection: db.Collection(collectionName),
	}
}

func (r *authorRepository) FindByCode(ctx context.Context, code string) (*model.Author, error) {
	var a model.Author
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, author.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find author %s: %w", code, err)
	}
	return &a, nil
}

func (r *authorRepository) Save(ctx context.Context, a *model.Author) error {
	if a.Code == "" {
		a.Code = uuid.NewString()
	}

	_, err := r.collection.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return author.ErrDuplicateAuthor
	}
	if err != nil {
		return fmt.Errorf("failed to save author %s: %w", a.Code, err)
	}
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, code string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": code})
	if err != nil {
		return fmt.Errorf("failed to delete author %s: %w", code, err)
	}
	return nil
}

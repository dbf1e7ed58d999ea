package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxFunc là function type được execute trong transaction
type TxFunc func(ctx context.Context) error

// Transactor abstract transactional scope khỏi storage engine cụ thể.
// Service layer chỉ biết interface này, không biết mongo session.
type Transactor interface {
	// WithinTx executes fn trong một transaction: commit nếu fn return nil,
	// rollback toàn bộ writes và propagate error nếu fn fail.
	WithinTx(ctx context.Context, fn TxFunc) error
}

// MongoTransactor implements Transactor trên mongo sessions.
// Multi-document transactions yêu cầu replica set hoặc sharded cluster.
type MongoTransactor struct {
	client *mongo.Client
}

func NewMongoTransactor(client *mongo.Client) *MongoTransactor {
	return &MongoTransactor{client: client}
}

// WithinTx wraps fn trong mongo session transaction.
// Auto rollback nếu có error, auto commit nếu success.
func (t *MongoTransactor) WithinTx(ctx context.Context, fn TxFunc) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	// Repository calls bên trong fn nhận session-bound context,
	// nên mọi read/write đều thuộc về transaction này.
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

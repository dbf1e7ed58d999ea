package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DBConfig chứa tất cả các thông tin cấu hình để kết nối MongoDB
type DBConfig struct {
	URI      string // Connection string (vd: mongodb://localhost:27017/?replicaSet=rs0)
	Database string // Tên database cần kết nối

	// Retry Configuration
	MaxRetries     int           // Số lần retry tối đa khi kết nối thất bại
	RetryDelay     time.Duration // Delay ban đầu giữa các lần retry
	ConnectTimeout time.Duration // Timeout cho mỗi lần thử kết nối
}

// MongoDB là wrapper quản lý client và lifecycle của database
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   *DBConfig
}

func NewMongoDB(config *DBConfig) *MongoDB {
	return &MongoDB{
		Config: config,
	}
}

// connectWithRetry thực hiện retry logic với exponential backoff
func (db *MongoDB) connectWithRetry(ctx context.Context) (*mongo.Client, error) {
	var client *mongo.Client
	var lastErr error

	opts := options.Client().
		ApplyURI(db.Config.URI).
		SetConnectTimeout(db.Config.ConnectTimeout)

	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		log.Printf("[DATABASE] Connection attempt %d/%d", attempt, db.Config.MaxRetries)

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		client, lastErr = mongo.Connect(connectCtx, opts)
		cancel()

		if lastErr == nil {
			// Success - verify bằng ping
			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				_ = client.Disconnect(ctx)
				lastErr = err
				log.Printf("[DATABASE] Ping failed: %v", err)
			} else {
				log.Printf("[DATABASE] Successfully connected on attempt %d", attempt)
				return client, nil
			}
		}

		log.Printf("[DATABASE] Attempt %d failed: %v", attempt, lastErr)

		if attempt < db.Config.MaxRetries {
			// delay = base_delay * (2 ^ (attempt - 1))
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))

			log.Printf("[DATABASE] Retrying in %v...", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w",
		db.Config.MaxRetries, lastErr)
}

// Connect là entry point chính để establish database connection
func (db *MongoDB) Connect(ctx context.Context) error {
	log.Println("[DATABASE] Initializing MongoDB connection...")

	client, err := db.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	db.Client = client
	db.Database = client.Database(db.Config.Database)

	if err := db.ensureIndexes(ctx); err != nil {
		return fmt.Errorf("index creation failed: %w", err)
	}

	log.Println("[DATABASE] MongoDB connection established")
	return nil
}

// ensureIndexes tạo các index cần thiết khi startup.
// Text index trên body phục vụ full-text search.
func (db *MongoDB) ensureIndexes(ctx context.Context) error {
	articles := db.Database.Collection("articles")

	_, err := articles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "body", Value: "text"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create text index on articles.body: %w", err)
	}

	return nil
}

// HealthCheck verify database connection còn sống
func (db *MongoDB) HealthCheck(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("database not connected")
	}
	return db.Client.Ping(ctx, readpref.Primary())
}

// Collection trả về handle tới một collection trong database đã cấu hình
func (db *MongoDB) Collection(name string) *mongo.Collection {
	return db.Database.Collection(name)
}

// Close đóng client connection
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	log.Println("[DATABASE] Closing MongoDB connection...")
	return db.Client.Disconnect(ctx)
}

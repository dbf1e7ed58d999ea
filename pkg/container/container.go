package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"blog-backend/internal/config"
	"blog-backend/internal/infrastructure/database"
	pkgdatabase "blog-backend/pkg/database"

	"blog-backend/internal/domains/article"
	articleHandler "blog-backend/internal/domains/article/handler"
	articleRepo "blog-backend/internal/domains/article/repository"
	articleService "blog-backend/internal/domains/article/service"
	"blog-backend/internal/domains/author"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"
)

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// Infrastructure layer - singleton, shared across domains
	Config *config.Config
	DB     *database.MongoDB
	Tx     pkgdatabase.Transactor

	// Repository layer
	ArticleRepo article.Repository
	AuthorRepo  author.Repository

	// Service layer
	ArticleService article.Service
	AuthorService  author.Service

	// Handler layer
	ArticleHandler *articleHandler.ArticleHandler
	AuthorHandler  *authorHandler.AuthorHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph.
// Thứ tự initialization: Config -> Infrastructure -> Repositories ->
// Services -> Handlers. Nếu có lỗi thì application không start.
func NewContainer() (*Container, error) {
	log.Println("Initializing DI Container...")

	c := &Container{}

	// Step 1: load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: connect database
	db := database.NewMongoDB(&database.DBConfig{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		MaxRetries:     cfg.Mongo.MaxRetries,
		RetryDelay:     cfg.Mongo.RetryDelay,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	c.Tx = pkgdatabase.NewMongoTransactor(db.Client)
	log.Println("Database connected")

	// Step 3: repositories
	c.ArticleRepo = articleRepo.NewArticleRepository(db.Database)
	c.AuthorRepo = authorRepo.NewAuthorRepository(db.Database)

	// Step 4: services
	c.ArticleService = articleService.NewArticleService(c.ArticleRepo, c.AuthorRepo, c.Tx)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)

	// Step 5: handlers
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)

	log.Println("DI Container ready")
	return c, nil
}

// Cleanup đóng các connections khi shutdown
func (c *Container) Cleanup() {
	if c.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.DB.Close(ctx); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}
}

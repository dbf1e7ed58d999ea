package service

import (
	"context"
	"strings"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/author/model"
)

// authorService implements author.Service
type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{
		repo: repo,
	}
}

func (s *authorService) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	a.Name = strings.TrimSpace(a.Name)
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *authorService) GetByCode(ctx context.Context, code string) (*model.Author, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, author.ErrAuthorNotFound
	}
	return s.repo.FindByCode(ctx, code)
}

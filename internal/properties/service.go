package properties

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/hoanvu/atelier/model"
	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("property not found")
	ErrInvalidInput = errors.New("invalid property input")
	ErrSlugConflict = errors.New("property slug already in use")
)

var slugStripRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: lowercase, non-alphanumerics
// collapsed into single hyphens.
func Slugify(title string) string {
	slug := slugStripRegex.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

type Service struct {
	repo PropertyRepository
}

func (s *Service) List(ctx context.Context, publishedOnly bool) ([]model.Property, error) {
	return s.repo.List(ctx, publishedOnly)
}

func (s *Service) Latest(ctx context.Context, limit int) ([]model.Property, error) {
	return s.repo.Latest(ctx, limit)
}

// GetPublished returns a published property by slug; unpublished listings are
// indistinguishable from missing ones to public callers.
func (s *Service) GetPublished(ctx context.Context, slug string) (*model.Property, error) {
	prop, err := s.repo.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !prop.Published {
		return nil, ErrNotFound
	}
	return prop, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Property, error) {
	prop, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return prop, err
}

func (s *Service) Create(ctx context.Context, prop *model.Property) error {
	if strings.TrimSpace(prop.Title) == "" || strings.TrimSpace(prop.Summary) == "" {
		return ErrInvalidInput
	}
	if prop.Slug == "" {
		prop.Slug = Slugify(prop.Title)
	}
	if prop.Slug == "" {
		return ErrInvalidInput
	}
	if _, err := s.repo.GetBySlug(ctx, prop.Slug); err == nil {
		return ErrSlugConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.repo.Create(ctx, prop)
}

func (s *Service) Update(ctx context.Context, prop *model.Property) error {
	if strings.TrimSpace(prop.Title) == "" {
		return ErrInvalidInput
	}
	existing, err := s.repo.GetByID(ctx, prop.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if prop.Slug == "" {
		prop.Slug = existing.Slug
	}
	return s.repo.Update(ctx, prop)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func NewService(repo PropertyRepository) *Service {
	return &Service{repo: repo}
}

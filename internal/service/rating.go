package service

import (
	"context"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RatingService handles rating operations.
type RatingService struct {
	ratingRepo repository.RatingRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository) *RatingService {
	return &RatingService{ratingRepo: ratingRepo}
}

// Create persists a new rating.
func (s *RatingService) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// GetByID retrieves a rating.
func (s *RatingService) GetByID(ctx context.Context, id int64) (*domain.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Rating", id)
	}
	return rating, nil
}

// List retrieves a page of ratings.
func (s *RatingService) List(ctx context.Context, page repository.PageQuery) (repository.Page[*domain.Rating], error) {
	return s.ratingRepo.List(ctx, page)
}

// Update fills in the score fields and comment of a rating.
func (s *RatingService) Update(ctx context.Context, id int64, rating *domain.Rating) (*domain.Rating, error) {
	existing, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "Rating", id)
	}

	existing.DriverRating = rating.DriverRating
	existing.PassengerRating = rating.PassengerRating
	existing.Comment = rating.Comment

	if err := s.ratingRepo.Update(ctx, existing); err != nil {
		return nil, mapNotFound(err, "Rating", id)
	}
	return existing, nil
}

// Delete removes a rating.
func (s *RatingService) Delete(ctx context.Context, id int64) error {
	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "Rating", id)
	}
	return nil
}

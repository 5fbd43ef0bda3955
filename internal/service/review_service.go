package service

import (
	"fmt"
	"time"

	"github.com/KelvinnC/cosc310project-sub000/internal/models"
	"github.com/KelvinnC/cosc310project-sub000/internal/repository"
)

// ReviewService 리뷰 카탈로그
// 배틀 코어 입장에서는 votes를 제외하면 읽기 전용 협력자다
type ReviewService struct {
	reviewRepo *repository.ReviewRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo}
}

// List 노출 가능한 리뷰 전체 목록
func (s *ReviewService) List() ([]models.Review, error) {
	reviews, err := s.reviewRepo.LoadAll(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetByID ID로 리뷰 조회
func (s *ReviewService) GetByID(id int) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// ListByAuthor 작성자의 리뷰 목록
func (s *ReviewService) ListByAuthor(authorID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByAuthor(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by author: %w", err)
	}
	return reviews, nil
}

// Create 새 리뷰 생성. 작성자와 날짜는 서버가 지정한다
func (s *ReviewService) Create(req models.CreateReviewRequest, authorID string) (*models.Review, error) {
	if req.MovieID == "" || req.ReviewTitle == "" || req.ReviewBody == "" {
		return nil, ErrInvalidInput
	}

	review := models.Review{
		MovieID:     req.MovieID,
		AuthorID:    authorID,
		Rating:      req.Rating,
		ReviewTitle: req.ReviewTitle,
		ReviewBody:  req.ReviewBody,
		Flagged:     false,
		Votes:       0,
		Date:        time.Now(),
		Visible:     true,
	}

	created, err := s.reviewRepo.Create(review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return created, nil
}

// Update 기존 리뷰의 내용 수정 (작성자, 득표수 등은 유지)
func (s *ReviewService) Update(id int, req models.UpdateReviewRequest) (*models.Review, error) {
	existing, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if existing == nil {
		return nil, ErrReviewNotFound
	}

	existing.Rating = req.Rating
	existing.ReviewTitle = req.ReviewTitle
	existing.ReviewBody = req.ReviewBody

	ok, err := s.reviewRepo.Update(*existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	if !ok {
		return nil, ErrReviewNotFound
	}

	return existing, nil
}

// Delete 리뷰 삭제
func (s *ReviewService) Delete(id int) error {
	ok, err := s.reviewRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if !ok {
		return ErrReviewNotFound
	}
	return nil
}

// IncrementVote 리뷰 득표수 1 증가 (배틀 승리 시 호출)
func (s *ReviewService) IncrementVote(id int) error {
	ok, err := s.reviewRepo.IncrementVote(id)
	if err != nil {
		return fmt.Errorf("failed to increment vote count: %w", err)
	}
	if !ok {
		return ErrReviewNotFound
	}
	return nil
}

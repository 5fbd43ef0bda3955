package repository

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/KelvinnC/cosc310project-sub000/internal/models"
)

// ReviewRepository reviews.json 기반 리뷰 저장소
type ReviewRepository struct {
	mu   sync.Mutex
	path string
}

func NewReviewRepository(dataDir string) *ReviewRepository {
	return &ReviewRepository{
		path: filepath.Join(dataDir, "reviews.json"),
	}
}

// LoadAll 리뷰 목록 조회
// includeHidden이 false면 숨김 처리된 리뷰는 제외한다
// (이후 saveAll 호출이 있는 경로에서는 반드시 includeHidden=true로 읽어
// 숨김 리뷰가 덮어써져 사라지는 일을 막는다)
func (r *ReviewRepository) LoadAll(includeHidden bool) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadAll(includeHidden)
}

func (r *ReviewRepository) loadAll(includeHidden bool) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := readJSONFile(r.path, &reviews); err != nil {
		return nil, err
	}

	if includeHidden {
		return reviews, nil
	}

	visible := []models.Review{}
	for _, rv := range reviews {
		if rv.Visible {
			visible = append(visible, rv)
		}
	}
	return visible, nil
}

func (r *ReviewRepository) saveAll(reviews []models.Review) error {
	return writeJSONFile(r.path, reviews)
}

// FindByID ID로 리뷰 찾기 (없으면 nil)
func (r *ReviewRepository) FindByID(id int) (*models.Review, error) {
	reviews, err := r.LoadAll(false)
	if err != nil {
		return nil, err
	}

	for i := range reviews {
		if reviews[i].ID == id {
			rv := reviews[i]
			return &rv, nil
		}
	}

	return nil, nil
}

// ListByAuthor 특정 작성자의 리뷰 목록
func (r *ReviewRepository) ListByAuthor(authorID string) ([]models.Review, error) {
	reviews, err := r.LoadAll(false)
	if err != nil {
		return nil, err
	}

	var result []models.Review
	for _, rv := range reviews {
		if rv.AuthorID == authorID {
			result = append(result, rv)
		}
	}

	return result, nil
}

// Create 새 리뷰 추가. ID는 기존 최대값 + 1
func (r *ReviewRepository) Create(review models.Review) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews, err := r.loadAll(true)
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, rv := range reviews {
		if rv.ID > maxID {
			maxID = rv.ID
		}
	}
	review.ID = maxID + 1

	reviews = append(reviews, review)

	if err := r.saveAll(reviews); err != nil {
		return nil, fmt.Errorf("failed to save reviews: %w", err)
	}

	return &review, nil
}

// Update ID가 일치하는 리뷰 교체. 없으면 false 반환
func (r *ReviewRepository) Update(review models.Review) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews, err := r.loadAll(true)
	if err != nil {
		return false, err
	}

	for i := range reviews {
		if reviews[i].ID == review.ID {
			reviews[i] = review
			if err := r.saveAll(reviews); err != nil {
				return false, fmt.Errorf("failed to save reviews: %w", err)
			}
			return true, nil
		}
	}

	return false, nil
}

// Delete ID로 리뷰 삭제. 없으면 false 반환
func (r *ReviewRepository) Delete(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews, err := r.loadAll(true)
	if err != nil {
		return false, err
	}

	for i := range reviews {
		if reviews[i].ID == id {
			reviews = append(reviews[:i], reviews[i+1:]...)
			if err := r.saveAll(reviews); err != nil {
				return false, fmt.Errorf("failed to save reviews: %w", err)
			}
			return true, nil
		}
	}

	return false, nil
}

// IncrementVote 리뷰의 득표수 1 증가. 없으면 false 반환
func (r *ReviewRepository) IncrementVote(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews, err := r.loadAll(true)
	if err != nil {
		return false, err
	}

	for i := range reviews {
		if reviews[i].ID == id {
			reviews[i].Votes++
			if err := r.saveAll(reviews); err != nil {
				return false, fmt.Errorf("failed to save reviews: %w", err)
			}
			return true, nil
		}
	}

	return false, nil
}

package service

import (
	"math/rand"

	"github.com/KelvinnC/cosc310project-sub000/internal/models"
	"github.com/KelvinnC/cosc310project-sub000/internal/repository"
)

// Picker N개 중 하나의 인덱스를 고르는 난수 공급자
// 전역 난수 상태 대신 주입해서 테스트에서 결정적으로 대체할 수 있다
type Picker interface {
	Intn(n int) int
}

type randPicker struct {
	rng *rand.Rand
}

func (p *randPicker) Intn(n int) int {
	return p.rng.Intn(n)
}

// NewRandPicker math/rand 기반 기본 Picker
func NewRandPicker(seed int64) Picker {
	return &randPicker{rng: rand.New(rand.NewSource(seed))}
}

// PairSelector 유저가 아직 투표하지 않았고 본인 리뷰가 아닌
// 리뷰 쌍을 무작위로 고르는 선택기
type PairSelector struct {
	battleRepo *repository.BattleRepository
	reviewRepo *repository.ReviewRepository
	picker     Picker
}

func NewPairSelector(
	battleRepo *repository.BattleRepository,
	reviewRepo *repository.ReviewRepository,
	picker Picker,
) *PairSelector {
	return &PairSelector{
		battleRepo: battleRepo,
		reviewRepo: reviewRepo,
		picker:     picker,
	}
}

// VotedPairs 유저가 이미 투표한 (승자가 결정된) 리뷰 쌍 집합
func (s *PairSelector) VotedPairs(userID string) (map[models.ReviewPair]struct{}, error) {
	battles, err := s.battleRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	voted := make(map[models.ReviewPair]struct{})
	for _, b := range battles {
		if b.IsDecided() {
			voted[b.Pair()] = struct{}{}
		}
	}

	return voted, nil
}

// FilterEligibleReviews 유저 본인이 작성한 리뷰 제외
func FilterEligibleReviews(userID string, reviews []models.Review) []models.Review {
	var eligible []models.Review
	for _, r := range reviews {
		if r.AuthorID != userID {
			eligible = append(eligible, r)
		}
	}
	return eligible
}

// GenerateEligiblePairs 샘플 내 C(n,2)개 쌍 중 이미 투표한 쌍 제외
func GenerateEligiblePairs(reviews []models.Review, votedPairs map[models.ReviewPair]struct{}) []models.ReviewPair {
	var pairs []models.ReviewPair
	for i := 0; i < len(reviews); i++ {
		for j := i + 1; j < len(reviews); j++ {
			pair := models.NewReviewPair(reviews[i].ID, reviews[j].ID)
			if _, seen := votedPairs[pair]; !seen {
				pairs = append(pairs, pair)
			}
		}
	}
	return pairs
}

// SampleReviews 전체 코퍼스에서 본인 리뷰를 제외하고 최대 poolSize개 샘플링
// 코퍼스가 커도 쌍 전수 조사는 O(n²)이므로 샘플 안에서만 쌍을 만든다.
// 일부 쌍은 이번 호출에서 제안되지 않을 수 있지만 지연 시간이 유한하게 유지된다
func (s *PairSelector) SampleReviews(userID string, poolSize int) ([]models.Review, error) {
	reviews, err := s.reviewRepo.LoadAll(false)
	if err != nil {
		return nil, err
	}

	eligible := FilterEligibleReviews(userID, reviews)
	if len(eligible) <= poolSize {
		return eligible, nil
	}

	// 부분 Fisher-Yates로 poolSize개 비복원 추출
	for i := 0; i < poolSize; i++ {
		j := i + s.picker.Intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}

	return eligible[:poolSize], nil
}

// SelectPair 적격 쌍 중 하나를 균등 확률로 선택
// 적격 쌍이 없으면 ErrNoEligiblePairs
func (s *PairSelector) SelectPair(userID string, reviews []models.Review) (models.ReviewPair, error) {
	votedPairs, err := s.VotedPairs(userID)
	if err != nil {
		return models.ReviewPair{}, err
	}

	eligibleReviews := FilterEligibleReviews(userID, reviews)
	eligiblePairs := GenerateEligiblePairs(eligibleReviews, votedPairs)

	if len(eligiblePairs) == 0 {
		return models.ReviewPair{}, ErrNoEligiblePairs
	}

	return eligiblePairs[s.picker.Intn(len(eligiblePairs))], nil
}

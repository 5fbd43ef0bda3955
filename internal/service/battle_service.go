package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/KelvinnC/cosc310project-sub000/internal/models"
	"github.com/KelvinnC/cosc310project-sub000/internal/repository"
	"github.com/KelvinnC/cosc310project-sub000/pkg/logger"
)

// DefaultPoolSize 배틀 후보 샘플 크기 기본값
const DefaultPoolSize = 200

// BattleService 배틀 생성과 투표의 상태 머신을 소유한다
// OPEN → (유효한 승자로 투표) → DECIDED, DECIDED는 종단 상태
type BattleService struct {
	battleRepo    *repository.BattleRepository
	reviewService *ReviewService
	selector      *PairSelector
	poolSize      int
}

func NewBattleService(
	battleRepo *repository.BattleRepository,
	reviewService *ReviewService,
	selector *PairSelector,
	poolSize int,
) *BattleService {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &BattleService{
		battleRepo:    battleRepo,
		reviewService: reviewService,
		selector:      selector,
		poolSize:      poolSize,
	}
}

// CreateBattle 유저를 위한 새 배틀 생성 후 즉시 영속화
// 적격 쌍이 없으면 ErrNoEligiblePairs를 그대로 전파한다
func (s *BattleService) CreateBattle(userID string) (*models.Battle, error) {
	reviews, err := s.selector.SampleReviews(userID, s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample reviews: %w", err)
	}

	pair, err := s.selector.SelectPair(userID, reviews)
	if err != nil {
		return nil, err
	}

	battle := models.Battle{
		ID:        uuid.New().String(),
		Review1ID: pair.Low,
		Review2ID: pair.High,
		WinnerID:  nil,
		UserID:    userID,
		StartedAt: time.Now(),
		EndedAt:   nil,
	}

	if err := s.battleRepo.Append(battle); err != nil {
		return nil, fmt.Errorf("failed to persist created battle: %w", err)
	}

	logger.Info("Battle created",
		"battleId", battle.ID,
		"userId", userID,
		"review1Id", battle.Review1ID,
		"review2Id", battle.Review2ID,
	)

	return &battle, nil
}

// SubmitResult 배틀에 투표 결과 기록
// 검증 순서: 배틀 존재 → 이미 결정됨 → 승자 유효성 → 쌍 중복
// 성공 시 배틀을 DECIDED로 저장한 뒤 승리 리뷰의 득표수를 증가시킨다.
// 득표수 증가는 별도 저장소에 대한 비트랜잭션 쓰기이므로
// 실패하면 VoteCountError로 구분해 보고한다
func (s *BattleService) SubmitResult(battleID string, winnerID int, userID string) error {
	battle, err := s.battleRepo.FindByID(battleID)
	if err != nil {
		return fmt.Errorf("failed to load battle: %w", err)
	}
	if battle == nil {
		return ErrBattleNotFound
	}

	// 이미 결정된 배틀에 재투표하면 득표수가 중복 반영되므로 거부
	if battle.IsDecided() {
		return ErrDuplicateVote
	}

	if !battle.Pair().Contains(winnerID) {
		return ErrInvalidWinner
	}

	// 다른 배틀 ID를 통해서라도 같은 쌍에 두 번 투표할 수 없다
	votedPairs, err := s.selector.VotedPairs(userID)
	if err != nil {
		return fmt.Errorf("failed to load voted pairs: %w", err)
	}
	if _, voted := votedPairs[battle.Pair()]; voted {
		return ErrDuplicateVote
	}

	battle.Decide(winnerID, time.Now())
	battle.UserID = userID

	if err := s.battleRepo.Update(*battle); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	// 배틀 쓰기는 이미 커밋됨. 여기서 실패하면 부분 실패로 보고한다
	if err := s.reviewService.IncrementVote(winnerID); err != nil {
		vcErr := &VoteCountError{BattleID: battle.ID, WinnerID: winnerID, Err: err}
		logger.Error("Vote count increment failed after battle commit",
			"battleId", battle.ID,
			"winnerId", winnerID,
			"error", err,
		)
		return vcErr
	}

	logger.Info("Battle decided",
		"battleId", battle.ID,
		"userId", userID,
		"winnerId", winnerID,
	)

	return nil
}

// GetByID ID로 배틀 조회
func (s *BattleService) GetByID(id string) (*models.Battle, error) {
	battle, err := s.battleRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get battle: %w", err)
	}
	if battle == nil {
		return nil, ErrBattleNotFound
	}

	return battle, nil
}

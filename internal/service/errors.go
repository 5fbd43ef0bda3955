package service

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
)

// User service specific errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Review service specific errors
var (
	ErrReviewNotFound = errors.New("review not found")
)

// Battle service specific errors
var (
	ErrBattleNotFound  = errors.New("battle not found")
	ErrNoEligiblePairs = errors.New("no eligible review pairs available for this user")
	ErrInvalidWinner   = errors.New("winner is not one of the battle's reviews")
	ErrDuplicateVote   = errors.New("user has already voted on this review pair")
)

// VoteCountError 배틀 기록은 저장됐지만 승리 리뷰의 득표수 반영에 실패한 경우
// 배틀과 득표수가 어긋난 상태이므로 운영자가 수동으로 보정해야 한다
type VoteCountError struct {
	BattleID string
	WinnerID int
	Err      error
}

func (e *VoteCountError) Error() string {
	return fmt.Sprintf(
		"battle %s was decided but vote count for review %d was not incremented (manual reconciliation required): %v",
		e.BattleID, e.WinnerID, e.Err,
	)
}

func (e *VoteCountError) Unwrap() error {
	return e.Err
}

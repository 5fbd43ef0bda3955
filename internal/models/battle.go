package models

import "time"

// Battle 두 리뷰 간의 1:1 대결
// winnerId와 endedAt은 투표 전까지 null이며, 항상 함께 설정된다
type Battle struct {
	ID        string     `json:"id"`
	Review1ID int        `json:"review1Id"`
	Review2ID int        `json:"review2Id"`
	WinnerID  *int       `json:"winnerId"`
	UserID    string     `json:"userId"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
}

// IsOpen 아직 투표되지 않은 배틀인지 확인
func (b *Battle) IsOpen() bool {
	return b.WinnerID == nil && b.EndedAt == nil
}

// IsDecided 투표가 완료된 배틀인지 확인
func (b *Battle) IsDecided() bool {
	return !b.IsOpen()
}

// Pair 배틀의 순서 무관 리뷰 쌍
func (b *Battle) Pair() ReviewPair {
	return NewReviewPair(b.Review1ID, b.Review2ID)
}

// Decide 승자와 종료 시각을 함께 기록 (둘 중 하나만 설정되는 일 없음)
func (b *Battle) Decide(winnerID int, endedAt time.Time) {
	b.WinnerID = &winnerID
	b.EndedAt = &endedAt
}

// ReviewPair 순서와 무관한 리뷰 ID 쌍 (정규화: Low <= High)
// map 키로 사용 가능하므로 중복 투표 검사에 쓰인다
type ReviewPair struct {
	Low  int
	High int
}

// NewReviewPair 정규화된 리뷰 쌍 생성
func NewReviewPair(a, b int) ReviewPair {
	if a > b {
		a, b = b, a
	}
	return ReviewPair{Low: a, High: b}
}

// Contains 쌍에 해당 리뷰가 포함되는지 확인
func (p ReviewPair) Contains(reviewID int) bool {
	return p.Low == reviewID || p.High == reviewID
}

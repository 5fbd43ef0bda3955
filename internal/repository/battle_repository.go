package repository

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/KelvinnC/cosc310project-sub000/internal/models"
)

// BattleRepository battles.json 기반 배틀 저장소
// save는 원자적이지만 load-수정-save 구간은 아니므로
// 모든 변경은 mu로 직렬화한다 (lost update 방지)
type BattleRepository struct {
	mu   sync.Mutex
	path string
}

func NewBattleRepository(dataDir string) *BattleRepository {
	return &BattleRepository{
		path: filepath.Join(dataDir, "battles.json"),
	}
}

// LoadAll 전체 배틀 목록 조회 (파일이 없으면 빈 목록)
func (r *BattleRepository) LoadAll() ([]models.Battle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadAll()
}

func (r *BattleRepository) loadAll() ([]models.Battle, error) {
	battles := []models.Battle{}
	if err := readJSONFile(r.path, &battles); err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *BattleRepository) saveAll(battles []models.Battle) error {
	return writeJSONFile(r.path, battles)
}

// FindByID ID로 배틀 찾기 (없으면 nil)
func (r *BattleRepository) FindByID(id string) (*models.Battle, error) {
	battles, err := r.LoadAll()
	if err != nil {
		return nil, err
	}

	for i := range battles {
		if battles[i].ID == id {
			b := battles[i]
			return &b, nil
		}
	}

	return nil, nil
}

// ListByUser 특정 유저의 배틀 목록
func (r *BattleRepository) ListByUser(userID string) ([]models.Battle, error) {
	battles, err := r.LoadAll()
	if err != nil {
		return nil, err
	}

	var result []models.Battle
	for _, b := range battles {
		if b.UserID == userID {
			result = append(result, b)
		}
	}

	return result, nil
}

// Append 새 배틀 추가 (전체 목록 read-modify-write, mu로 직렬화)
func (r *BattleRepository) Append(battle models.Battle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	battles, err := r.loadAll()
	if err != nil {
		return err
	}

	battles = append(battles, battle)

	if err := r.saveAll(battles); err != nil {
		return fmt.Errorf("failed to save battles: %w", err)
	}

	return nil
}

// Update ID가 일치하는 배틀을 교체. 없으면 추가 (방어적 fallback)
func (r *BattleRepository) Update(battle models.Battle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	battles, err := r.loadAll()
	if err != nil {
		return err
	}

	found := false
	for i := range battles {
		if battles[i].ID == battle.ID {
			battles[i] = battle
			found = true
			break
		}
	}
	if !found {
		battles = append(battles, battle)
	}

	if err := r.saveAll(battles); err != nil {
		return fmt.Errorf("failed to save battles: %w", err)
	}

	return nil
}

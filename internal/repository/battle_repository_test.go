package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KelvinnC/cosc310project-sub000/internal/models"
)

func newBattle(id, userID string, r1, r2 int) models.Battle {
	return models.Battle{
		ID:        id,
		Review1ID: r1,
		Review2ID: r2,
		UserID:    userID,
		StartedAt: time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestBattleRepository_LoadAll_MissingFile(t *testing.T) {
	repo := NewBattleRepository(t.TempDir())

	battles, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, battles)
}

func TestBattleRepository_RoundTrip(t *testing.T) {
	repo := NewBattleRepository(t.TempDir())

	// N개 저장 후 다시 읽으면 필드가 그대로 보존되어야 한다
	var saved []models.Battle
	for i := 0; i < 5; i++ {
		b := newBattle(fmt.Sprintf("battle-%d", i), "user-1", i*2+1, i*2+2)
		if i%2 == 0 {
			b.Decide(i*2+1, time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC))
		}
		require.NoError(t, repo.Append(b))
		saved = append(saved, b)
	}

	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 5)

	for i, b := range loaded {
		assert.Equal(t, saved[i].ID, b.ID)
		assert.Equal(t, saved[i].Review1ID, b.Review1ID)
		assert.Equal(t, saved[i].Review2ID, b.Review2ID)
		assert.Equal(t, saved[i].UserID, b.UserID)
		assert.True(t, saved[i].StartedAt.Equal(b.StartedAt))
		if saved[i].WinnerID == nil {
			assert.Nil(t, b.WinnerID)
			assert.Nil(t, b.EndedAt)
		} else {
			require.NotNil(t, b.WinnerID)
			require.NotNil(t, b.EndedAt)
			assert.Equal(t, *saved[i].WinnerID, *b.WinnerID)
			assert.True(t, saved[i].EndedAt.Equal(*b.EndedAt))
		}
	}
}

func TestBattleRepository_FindByID(t *testing.T) {
	repo := NewBattleRepository(t.TempDir())

	require.NoError(t, repo.Append(newBattle("b1", "user-1", 1, 2)))
	require.NoError(t, repo.Append(newBattle("b2", "user-2", 3, 4)))

	found, err := repo.FindByID("b2")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "user-2", found.UserID)

	missing, err := repo.FindByID("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBattleRepository_ListByUser(t *testing.T) {
	repo := NewBattleRepository(t.TempDir())

	require.NoError(t, repo.Append(newBattle("b1", "user-1", 1, 2)))
	require.NoError(t, repo.Append(newBattle("b2", "user-2", 3, 4)))
	require.NoError(t, repo.Append(newBattle("b3", "user-1", 5, 6)))

	battles, err := repo.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, battles, 2)
	assert.Equal(t, "b1", battles[0].ID)
	assert.Equal(t, "b3", battles[1].ID)
}

func TestBattleRepository_Update_ReplacesByID(t *testing.T) {
	repo := NewBattleRepository(t.TempDir())

	b := newBattle("b1", "user-1", 1, 2)
	require.NoError(t, repo.Append(b))

	b.Decide(2, time.Now())
	require.NoError(t, repo.Update(b))

	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.NotNil(t, loaded[0].WinnerID)
	assert.Equal(t, 2, *loaded[0].WinnerID)
}

func TestBattleRepository_Update_AppendsWhenAbsent(t *testing.T) {
	repo := NewBattleRepository(t.TempDir())

	// 저장된 적 없는 배틀도 update 시 추가된다 (방어적 fallback)
	b := newBattle("ghost", "user-1", 1, 2)
	require.NoError(t, repo.Update(b))

	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "ghost", loaded[0].ID)
}

func TestBattleRepository_AtomicWrite_NoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	repo := NewBattleRepository(dir)

	require.NoError(t, repo.Append(newBattle("b1", "user-1", 1, 2)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	// 임시 파일은 rename으로 교체된 뒤 남아있으면 안 된다
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
	_, err = os.Stat(filepath.Join(dir, "battles.json"))
	assert.NoError(t, err)
}

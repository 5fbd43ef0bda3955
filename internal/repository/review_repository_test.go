package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KelvinnC/cosc310project-sub000/internal/models"
)

func seedReview(t *testing.T, repo *ReviewRepository, authorID string, visible bool) models.Review {
	t.Helper()

	created, err := repo.Create(models.Review{
		MovieID:     "movie-1",
		AuthorID:    authorID,
		Rating:      4.5,
		ReviewTitle: "Title",
		ReviewBody:  "Body",
		Votes:       0,
		Date:        time.Now(),
		Visible:     visible,
	})
	require.NoError(t, err)
	return *created
}

func TestReviewRepository_Create_AssignsNextID(t *testing.T) {
	repo := NewReviewRepository(t.TempDir())

	r1 := seedReview(t, repo, "author-1", true)
	r2 := seedReview(t, repo, "author-2", true)

	assert.Equal(t, 1, r1.ID)
	assert.Equal(t, 2, r2.ID)
}

func TestReviewRepository_LoadAll_FiltersHidden(t *testing.T) {
	repo := NewReviewRepository(t.TempDir())

	seedReview(t, repo, "author-1", true)
	hidden := seedReview(t, repo, "author-2", false)

	visible, err := repo.LoadAll(false)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := repo.LoadAll(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// 저장 경로는 항상 전체를 읽으므로 숨김 리뷰가 사라지지 않는다
	_, err = repo.IncrementVote(1)
	require.NoError(t, err)

	all, err = repo.LoadAll(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := repo.FindByID(hidden.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "hidden review should not be user-facing")
}

func TestReviewRepository_IncrementVote(t *testing.T) {
	repo := NewReviewRepository(t.TempDir())

	review := seedReview(t, repo, "author-1", true)

	for i := 0; i < 3; i++ {
		ok, err := repo.IncrementVote(review.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	found, err := repo.FindByID(review.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 3, found.Votes)
}

func TestReviewRepository_IncrementVote_Missing(t *testing.T) {
	repo := NewReviewRepository(t.TempDir())

	ok, err := repo.IncrementVote(42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReviewRepository_UpdateAndDelete(t *testing.T) {
	repo := NewReviewRepository(t.TempDir())

	review := seedReview(t, repo, "author-1", true)

	review.ReviewTitle = "Updated"
	ok, err := repo.Update(review)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.FindByID(review.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Updated", found.ReviewTitle)

	ok, err = repo.Delete(review.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err = repo.FindByID(review.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

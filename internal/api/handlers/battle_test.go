package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KelvinnC/cosc310project-sub000/internal/api"
	"github.com/KelvinnC/cosc310project-sub000/internal/config"
	"github.com/KelvinnC/cosc310project-sub000/internal/models"
	"github.com/KelvinnC/cosc310project-sub000/internal/repository"
	jwtutil "github.com/KelvinnC/cosc310project-sub000/pkg/jwt"
)

type testEnv struct {
	router *gin.Engine
	cfg    *config.Config
	token  string
	userID string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:           "8080",
		Env:            "test",
		LogLevel:       "error",
		DataDir:        t.TempDir(),
		JWTSecret:      "test-secret",
		JWTExpiration:  time.Hour,
		BattlePoolSize: 50,
	}

	userRepo := repository.NewUserRepository(cfg.DataDir)
	user, err := userRepo.Create("voter", "voter@example.com", "not-a-real-hash")
	require.NoError(t, err)

	jwtManager := jwtutil.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	token, err := jwtManager.Generate(user.ID, user.Username, user.Email)
	require.NoError(t, err)

	return &testEnv{
		router: api.SetupRouter(cfg),
		cfg:    cfg,
		token:  token,
		userID: user.ID,
	}
}

func (e *testEnv) seedReviews(t *testing.T, authors ...string) []models.Review {
	t.Helper()
	reviewRepo := repository.NewReviewRepository(e.cfg.DataDir)

	var reviews []models.Review
	for i, author := range authors {
		created, err := reviewRepo.Create(models.Review{
			MovieID:     "movie-1",
			AuthorID:    author,
			Rating:      4.0,
			ReviewTitle: fmt.Sprintf("Title %d", i+1),
			ReviewBody:  fmt.Sprintf("Body %d", i+1),
			Date:        time.Now(),
			Visible:     true,
		})
		require.NoError(t, err)
		reviews = append(reviews, *created)
	}
	return reviews
}

func (e *testEnv) do(method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCreateBattle_Returns201WithLocation(t *testing.T) {
	env := newTestEnv(t)
	env.seedReviews(t, "author-1", "author-2", "author-3")

	w := env.do(http.MethodPost, "/api/v1/battles", nil, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var battle models.Battle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &battle))
	assert.NotEmpty(t, battle.ID)
	assert.Equal(t, env.userID, battle.UserID)
	assert.Nil(t, battle.WinnerID)
	assert.Nil(t, battle.EndedAt)
	assert.Equal(t, "/api/v1/battles/"+battle.ID, w.Header().Get("Location"))
}

func TestCreateBattle_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	env.seedReviews(t, "author-1", "author-2")

	w := env.do(http.MethodPost, "/api/v1/battles", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateBattle_NoEligiblePairs404(t *testing.T) {
	env := newTestEnv(t)
	// 리뷰가 하나뿐이면 쌍을 만들 수 없다
	env.seedReviews(t, "author-1")

	w := env.do(http.MethodPost, "/api/v1/battles", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBattle(t *testing.T) {
	env := newTestEnv(t)
	env.seedReviews(t, "author-1", "author-2")

	w := env.do(http.MethodPost, "/api/v1/battles", nil, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var battle models.Battle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &battle))

	w = env.do(http.MethodGet, "/api/v1/battles/"+battle.ID, nil, false)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/battles/no-such-battle", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitVote_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedReviews(t, "author-1", "author-2")

	w := env.do(http.MethodPost, "/api/v1/battles", nil, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var battle models.Battle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &battle))

	votePath := fmt.Sprintf("/api/v1/battles/%s/votes", battle.ID)

	// 잘못된 승자 → 400, 배틀은 열려 있어야 한다
	w = env.do(http.MethodPost, votePath, gin.H{"winnerId": 999}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 정상 투표 → 204
	w = env.do(http.MethodPost, votePath, gin.H{"winnerId": battle.Review1ID}, true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// 승리 리뷰의 득표수 반영 확인
	reviewRepo := repository.NewReviewRepository(env.cfg.DataDir)
	winner, err := reviewRepo.FindByID(battle.Review1ID)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.Votes)

	// 이미 결정된 배틀에 재투표 → 409
	w = env.do(http.MethodPost, votePath, gin.H{"winnerId": battle.Review1ID}, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 득표수는 그대로
	winner, err = reviewRepo.FindByID(battle.Review1ID)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.Votes)
}

func TestSubmitVote_UnknownBattle404(t *testing.T) {
	env := newTestEnv(t)
	env.seedReviews(t, "author-1", "author-2")

	w := env.do(http.MethodPost, "/api/v1/battles/ghost/votes", gin.H{"winnerId": 1}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitVote_MissingBody400(t *testing.T) {
	env := newTestEnv(t)
	env.seedReviews(t, "author-1", "author-2")

	w := env.do(http.MethodPost, "/api/v1/battles", nil, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var battle models.Battle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &battle))

	w = env.do(http.MethodPost, fmt.Sprintf("/api/v1/battles/%s/votes", battle.ID), gin.H{}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KelvinnC/cosc310project-sub000/internal/api/middleware"
	"github.com/KelvinnC/cosc310project-sub000/internal/service"
	"github.com/KelvinnC/cosc310project-sub000/pkg/logger"
)

type BattleHandler struct {
	battleService *service.BattleService
}

func NewBattleHandler(battleService *service.BattleService) *BattleHandler {
	return &BattleHandler{battleService: battleService}
}

type VoteRequest struct {
	WinnerID *int `json:"winnerId" binding:"required"`
}

// CreateBattle 새 배틀 생성
// 201 + Location 헤더, 적격 쌍이 없으면 404, 저장 실패는 500
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	battle, err := h.battleService.CreateBattle(userID)
	if err != nil {
		// 정상 운영 중 기대되는 결과이므로 에러 로그를 남기지 않는다
		if errors.Is(err, service.ErrNoEligiblePairs) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No eligible review pairs available",
			})
			return
		}

		logger.Error("Failed to create battle", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create battle",
		})
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/battles/%s", battle.ID))
	c.JSON(http.StatusCreated, battle)
}

// SubmitVote 배틀에 투표 제출
// 204 성공, 400 잘못된 승자, 409 중복 투표, 404 없는 배틀,
// 500 배틀 커밋 후 득표수 반영 실패 (메시지로 구분)
func (h *BattleHandler) SubmitVote(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	battleID := c.Param("battleId")

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.battleService.SubmitResult(battleID, *req.WinnerID, userID)
	if err != nil {
		var vcErr *service.VoteCountError
		switch {
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Battle not found"})
		case errors.Is(err, service.ErrInvalidWinner):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Winner must be one of the battle's reviews"})
		case errors.Is(err, service.ErrDuplicateVote):
			c.JSON(http.StatusConflict, gin.H{"error": "Already voted on this review pair"})
		case errors.As(err, &vcErr):
			// 배틀은 이미 결정 상태로 커밋됨. 일반적인 500과 구분해서 보고
			c.JSON(http.StatusInternalServerError, gin.H{"error": vcErr.Error()})
		default:
			logger.Error("Failed to submit vote",
				"battleId", battleID,
				"userId", userID,
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit vote"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBattle 배틀 단건 조회
func (h *BattleHandler) GetBattle(c *gin.Context) {
	battle, err := h.battleService.GetByID(c.Param("battleId"))
	if err != nil {
		if errors.Is(err, service.ErrBattleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Battle not found"})
			return
		}

		logger.Error("Failed to get battle", "battleId", c.Param("battleId"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get battle"})
		return
	}

	c.JSON(http.StatusOK, battle)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/atelierhq/atelier/internal/domain/errors"
	"github.com/atelierhq/atelier/internal/domain/model"
	"github.com/atelierhq/atelier/internal/server/http/dto"
)

// RewardHandler manages reward ledger endpoints.
type RewardHandler struct {
	facade RewardFacade
}

// NewRewardHandler constructs RewardHandler.
func NewRewardHandler(facade RewardFacade) *RewardHandler {
	return &RewardHandler{facade: facade}
}

// List handles GET /api/user/rewards.
func (h *RewardHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	rewards, err := h.facade.Rewards(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	if len(rewards) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		response = append(response, toRewardResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// Redeem handles POST /api/user/rewards/redeem.
func (h *RewardHandler) Redeem(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	reward, err := h.facade.RedeemReward(c.Request.Context(), userID, model.RewardType(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidRewardType):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrInsufficientPoints):
			c.Status(http.StatusPaymentRequired)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toRewardResponse(*reward))
}

// BirthdayGift handles POST /api/user/rewards/birthday.
func (h *RewardHandler) BirthdayGift(c *gin.Context) {
	userID := CurrentUserID(c)
	reward, err := h.facade.GrantBirthdayGift(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotBirthdayMonth), errors.Is(err, domainErrors.ErrGiftAlreadyGranted):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toRewardResponse(*reward))
}

// Transition handles PATCH /api/admin/rewards/:id/status.
func (h *RewardHandler) Transition(c *gin.Context) {
	rewardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	reward, err := h.facade.TransitionReward(c.Request.Context(), rewardID, model.RewardStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidRewardStatus):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrRewardExpired):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toRewardResponse(*reward))
}

func toRewardResponse(reward model.Reward) dto.RewardResponse {
	return dto.RewardResponse{
		ID:         reward.ID,
		Type:       string(reward.Type),
		PointCost:  reward.PointCost,
		AmountOff:  reward.AmountOff,
		Status:     string(reward.Status),
		RedeemedAt: reward.RedeemedAt,
		UsedAt:     reward.UsedAt,
		ExpiresAt:  reward.ExpiresAt,
	}
}

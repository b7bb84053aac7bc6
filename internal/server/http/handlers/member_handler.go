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

// MemberHandler manages loyalty membership endpoints.
type MemberHandler struct {
	facade MemberFacade
}

// NewMemberHandler constructs MemberHandler.
func NewMemberHandler(facade MemberFacade) *MemberHandler {
	return &MemberHandler{facade: facade}
}

// Profile handles GET /api/user/membership.
func (h *MemberHandler) Profile(c *gin.Context) {
	userID := CurrentUserID(c)
	member, err := h.facade.Membership(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Accrue handles POST /api/admin/members/:id/accrue, the entry point for
// external spend triggers (fulfilment, POS import).
func (h *MemberHandler) Accrue(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AccrueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	member, err := h.facade.AccrueSpend(c.Request.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toMemberResponse(member))
}

func toMemberResponse(member *model.Member) dto.MemberResponse {
	return dto.MemberResponse{
		Tier:          string(member.Tier),
		Points:        member.Points,
		LifetimeSpend: member.LifetimeSpend,
		JoinedAt:      member.JoinedAt,
	}
}

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

// ContractHandler manages designer contract endpoints.
type ContractHandler struct {
	facade ContractFacade
}

// NewContractHandler constructs ContractHandler.
func NewContractHandler(facade ContractFacade) *ContractHandler {
	return &ContractHandler{facade: facade}
}

// Create handles POST /api/admin/contracts.
func (h *ContractHandler) Create(c *gin.Context) {
	var req dto.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	contract, err := h.facade.CreateAndSendContract(c.Request.Context(), req.DesignerName, req.DesignerEmail)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials), errors.Is(err, domainErrors.ErrInvalidEmail):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toContractResponse(contract))
}

// Get handles GET /api/admin/contracts/:id.
func (h *ContractHandler) Get(c *gin.Context) {
	contractID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	contract, err := h.facade.Contract(c.Request.Context(), contractID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toContractResponse(contract))
}

func toContractResponse(contract *model.Contract) dto.ContractResponse {
	return dto.ContractResponse{
		ID:            contract.ID,
		DesignerName:  contract.DesignerName,
		DesignerEmail: contract.DesignerEmail,
		Status:        string(contract.Status),
		EnvelopeID:    contract.EnvelopeID,
		SentAt:        contract.SentAt,
		CompletedAt:   contract.CompletedAt,
	}
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/internal/services"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
)

type SellerHandler struct {
	sellerService *services.SellerService
}

func NewSellerHandler(sellerService *services.SellerService) *SellerHandler {
	return &SellerHandler{sellerService: sellerService}
}

func (h *SellerHandler) BecomeSeller(c *gin.Context) {
	var req models.BecomeSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	seller, err := h.sellerService.BecomeSeller(c.Request.Context(), callerFrom(c).UserID, req.ShopName)
	if err != nil {
		respondError(c, "Failed to create seller profile", err)
		return
	}
	utils.SendCreated(c, "Seller profile submitted for approval", seller)
}

func (h *SellerHandler) GetMySeller(c *gin.Context) {
	seller, err := h.sellerService.GetSellerByUser(c.Request.Context(), callerFrom(c).UserID)
	if err != nil {
		respondError(c, "Failed to retrieve seller profile", err)
		return
	}
	utils.SendSuccess(c, "Seller profile retrieved successfully", seller)
}

func (h *SellerHandler) ListSellers(c *gin.Context) {
	var approved *bool
	if raw := c.Query("approved"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			utils.SendValidationError(c, "Invalid approved flag")
			return
		}
		approved = &value
	}

	sellers, err := h.sellerService.ListSellers(c.Request.Context(), approved)
	if err != nil {
		respondError(c, "Failed to retrieve sellers", err)
		return
	}
	utils.SendSuccess(c, "Sellers retrieved successfully", sellers)
}

func (h *SellerHandler) ApproveSeller(c *gin.Context) {
	sellerID, err := parseIDParam(c, "seller_id")
	if err != nil {
		respondError(c, "Invalid seller ID", err)
		return
	}

	seller, err := h.sellerService.ApproveSeller(c.Request.Context(), sellerID)
	if err != nil {
		respondError(c, "Failed to approve seller", err)
		return
	}
	utils.SendSuccess(c, "Seller approved", seller)
}

func (h *SellerHandler) RejectSeller(c *gin.Context) {
	sellerID, err := parseIDParam(c, "seller_id")
	if err != nil {
		respondError(c, "Invalid seller ID", err)
		return
	}

	if err := h.sellerService.RejectSeller(c.Request.Context(), sellerID); err != nil {
		respondError(c, "Failed to reject seller", err)
		return
	}
	utils.SendSuccess(c, "Seller rejected", nil)
}

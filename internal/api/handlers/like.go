package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/princeprakhar/gold-marketplace/internal/services"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
)

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

func (h *LikeHandler) LikeProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, "Invalid product ID", err)
		return
	}

	state, err := h.likeService.Like(c.Request.Context(), productID, callerFrom(c).UserID)
	if err != nil {
		respondError(c, "Failed to like product", err)
		return
	}
	utils.SendSuccess(c, "Product liked", state)
}

func (h *LikeHandler) UnlikeProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, "Invalid product ID", err)
		return
	}

	state, err := h.likeService.Unlike(c.Request.Context(), productID, callerFrom(c).UserID)
	if err != nil {
		respondError(c, "Failed to unlike product", err)
		return
	}
	utils.SendSuccess(c, "Product unliked", state)
}

func (h *LikeHandler) GetProductLikes(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		respondError(c, "Invalid product ID", err)
		return
	}

	state, err := h.likeService.GetLikes(c.Request.Context(), productID, callerFrom(c).UserID)
	if err != nil {
		respondError(c, "Failed to retrieve likes", err)
		return
	}
	utils.SendSuccess(c, "Likes retrieved successfully", state)
}

func (h *LikeHandler) GetMyLikes(c *gin.Context) {
	page, limit, err := parsePaging(c)
	if err != nil {
		respondError(c, "Invalid paging parameters", err)
		return
	}

	result, err := h.likeService.LikedProducts(c.Request.Context(), callerFrom(c).UserID, page, limit)
	if err != nil {
		respondError(c, "Failed to retrieve liked products", err)
		return
	}
	utils.SendSuccess(c, "Liked products retrieved successfully", result)
}

func (h *LikeHandler) ReconcileLikes(c *gin.Context) {
	report, err := h.likeService.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to reconcile like counts", err)
		return
	}
	utils.SendSuccess(c, "Like counts reconciled", report)
}

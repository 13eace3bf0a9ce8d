package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/princeprakhar/gold-marketplace/internal/models"
	"github.com/princeprakhar/gold-marketplace/internal/services"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// ListActive is the public feed; ListAll includes inactive entries for admins.
func (h *AnnouncementHandler) ListActive(c *gin.Context) {
	h.list(c, true)
}

func (h *AnnouncementHandler) ListAll(c *gin.Context) {
	h.list(c, false)
}

func (h *AnnouncementHandler) list(c *gin.Context, activeOnly bool) {
	announcements, err := h.announcementService.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, "Failed to retrieve announcements", err)
		return
	}
	utils.SendSuccess(c, "Announcements retrieved successfully", announcements)
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req models.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	announcement, err := h.announcementService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create announcement", err)
		return
	}
	utils.SendCreated(c, "Announcement created successfully", announcement)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "announcement_id")
	if err != nil {
		respondError(c, "Invalid announcement ID", err)
		return
	}

	var req models.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	announcement, err := h.announcementService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "Failed to update announcement", err)
		return
	}
	utils.SendSuccess(c, "Announcement updated successfully", announcement)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "announcement_id")
	if err != nil {
		respondError(c, "Invalid announcement ID", err)
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to delete announcement", err)
		return
	}
	utils.SendSuccess(c, "Announcement deleted successfully", nil)
}

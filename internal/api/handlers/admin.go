package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/princeprakhar/gold-marketplace/internal/services"
	"github.com/princeprakhar/gold-marketplace/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to retrieve dashboard stats", err)
		return
	}
	utils.SendSuccess(c, "Dashboard stats retrieved successfully", stats)
}

// internal/api/handlers/dashboard_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// parseFilter reads the global filter selections from the query string.
// An unknown range preset is a client error; unknown group/region values are
// allowed and simply match nothing.
func (h *DashboardHandler) parseFilter(c *gin.Context) (domain.FilterParams, bool) {
	params := domain.FilterParams{
		Range:  strings.TrimSpace(c.Query("range")),
		Group:  strings.TrimSpace(c.Query("group")),
		Region: strings.TrimSpace(c.Query("region")),
	}
	if params.Range != "" && !domain.ValidRange(params.Range) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown range preset: " + params.Range})
		return params, false
	}
	return params.Normalized(), true
}

func (h *DashboardHandler) GetOverview(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	bundle, err := h.service.Overview(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *DashboardHandler) GetDealers(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	bundle, err := h.service.Dealers(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *DashboardHandler) GetDemographics(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	bundle, err := h.service.Demographics(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *DashboardHandler) GetFinance(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	bundle, err := h.service.Finance(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *DashboardHandler) GetMTD(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	bundle, err := h.service.MTD(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *DashboardHandler) GetProspects(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	bundle, err := h.service.Funnel(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *DashboardHandler) GetSalespeople(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	bundle, err := h.service.Salespeople(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (h *DashboardHandler) GetAlerts(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	alerts, err := h.service.Alerts(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *DashboardHandler) GetInsights(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	insights, err := h.service.Insights(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

func (h *DashboardHandler) GetSalespersonProfile(c *gin.Context) {
	params, ok := h.parseFilter(c)
	if !ok {
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "salesperson name is required"})
		return
	}

	profile, found, err := h.service.Profile(c.Request.Context(), params, name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "salesperson not found: " + name})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *DashboardHandler) GetFilterOptions(c *gin.Context) {
	options, err := h.service.FilterOptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, options)
}

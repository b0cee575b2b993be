package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"waitfor/services"
)

type APIController struct {
	server *services.Server
}

/**
 * Create new API controller instance
 * @param {*services.Server} server - Server runtime state
 * @returns {*APIController} New API controller instance
 */
func NewAPIController(server *services.Server) *APIController {
	return &APIController{
		server: server,
	}
}

/**
 * Register all API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - /healthz liveness with version, uptime and metrics
 * - /readyz readiness, 503 until the database session is established
 * - /metrics Prometheus scrape endpoint
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", a.Healthz)
	r.GET("/readyz", a.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// @Summary 存活探针
// @Description 返回服务版本、启动时间、依赖连接状态和关键指标统计结果
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, a.server.GetHealthz())
}

// @Summary 业务就绪探针
// @Description 数据库会话建立后返回200，此前返回503
// @Tags System
// @Produce json
// @Router /readyz [get]
func (a *APIController) Readyz(c *gin.Context) {
	if !a.server.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "connecting",
			"state":  a.server.State(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"state":  a.server.State(),
	})
}

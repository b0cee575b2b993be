package services

import (
	"context"
	"sync"
	"time"

	"waitfor/internal/config"
	"waitfor/internal/env"
	"waitfor/internal/logger"
	"waitfor/internal/models"
	"waitfor/internal/retrier"
)

/**
 * Server 依赖应用的运行时状态
 * @property {*config.AppConfig} cfg - 应用配置
 * @property {time.Time} startTime - 启动时间
 * @property {models.ConnState} state - 依赖连接状态机的当前状态
 * @description
 * - 启动门放行后进程才会走到这里，初始状态即TransportReady
 * - 数据访问层的连接由后台重试器建立，HTTP面先行可用
 */
type Server struct {
	cfg       *config.AppConfig
	startTime time.Time

	mu      sync.RWMutex
	state   models.ConnState
	session retrier.Session
	ret     *retrier.Retrier
}

func NewServer(cfg *config.AppConfig) *Server {
	return &Server{
		cfg:       cfg,
		startTime: time.Now(),
		state:     models.StateTransportReady,
	}
}

/**
 * StartConnecting launches the background connection retrier
 * @param {context.Context} ctx - Server lifetime context; cancellation stops retrying
 * @param {retrier.Dialer} dialer - Session dialer for the dependency
 * @param {models.RetryPolicy} policy - Fixed-interval retry policy
 * @description
 * - State moves TransportReady -> Connecting immediately
 * - On success the session is stored and state becomes Connected
 * - A finite policy running out is logged as terminal but does not kill the server
 */
func (s *Server) StartConnecting(ctx context.Context, dialer retrier.Dialer, policy models.RetryPolicy) {
	s.mu.Lock()
	s.state = models.StateConnecting
	s.ret = retrier.New(dialer, policy)
	s.mu.Unlock()

	go func() {
		res := <-s.ret.Go(ctx)
		if res.Err != nil {
			logger.Errorf("Database connection not established: %v", res.Err)
			return
		}
		s.mu.Lock()
		s.session = res.Session
		s.state = models.StateConnected
		s.mu.Unlock()
	}()
}

// State 返回当前连接状态
func (s *Server) State() models.ConnState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready 业务就绪：已建立认证会话
func (s *Server) Ready() bool {
	return s.State() == models.StateConnected
}

// Attempts 返回已发起的连接尝试次数
func (s *Server) Attempts() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ret == nil {
		return 0
	}
	return s.ret.Attempts()
}

/**
 * GetHealthz assembles the liveness response
 * @returns {models.HealthResponse} Version, uptime, connection state and request metrics
 */
func (s *Server) GetHealthz() models.HealthResponse {
	return models.HealthResponse{
		Version:   env.Version,
		StartTime: s.startTime.Format(time.RFC3339),
		Status:    "UP",
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Database: models.DatabaseStatus{
			State:    s.State(),
			Attempts: s.Attempts(),
		},
		Metrics: models.Metrics{
			TotalRequests: GetTotalRequestCount(),
			ErrorRequests: GetTotalErrorCount(),
		},
	}
}

// Shutdown 断开数据库会话
func (s *Server) Shutdown(ctx context.Context) {
	s.mu.Lock()
	sess := s.session
	s.session = nil
	s.mu.Unlock()

	if sess != nil {
		if err := sess.Disconnect(ctx); err != nil {
			logger.Warnf("Failed to disconnect database session: %v", err)
		}
	}
}

package probe

import (
	"context"
	"errors"
	"net"
	"time"

	"waitfor/internal/logger"
	"waitfor/internal/models"
)

// ErrTimedOut 等待预算耗尽，端点始终不可达
var ErrTimedOut = errors.New("endpoint did not become reachable in time")

// 单次连接尝试的拨号上限，与一秒一次的节拍保持一致
const dialTimeout = time.Second

// tickInterval 两次尝试之间的固定间隔
const tickInterval = time.Second

/**
 * Check whether the endpoint accepts a bare TCP connection right now
 * @param {models.Endpoint} ep - Target endpoint
 * @returns {bool} Returns true if the connection attempt succeeded
 * @description
 * - No payload is exchanged, the connection is closed immediately
 * - A success only proves transport reachability, not service readiness
 */
func CheckReachable(ep models.Endpoint) bool {
	conn, err := net.DialTimeout("tcp", ep.Addr(), dialTimeout)
	if err != nil {
		return false
	}
	if conn != nil {
		conn.Close()
		return true
	}
	return false
}

/**
 * Block until the endpoint becomes transport-reachable or the budget elapses
 * @param {context.Context} ctx - Interrupts the wait between ticks
 * @param {models.Endpoint} ep - Target endpoint
 * @param {int} timeoutSeconds - Number of one-second ticks to spend; 0 means no budget (poll indefinitely)
 * @returns {error} nil when ready, ErrTimedOut when the budget elapsed, ctx.Err() when cancelled
 * @description
 * - One attempt per one-second tick, each attempt independent of the last
 * - The first successful attempt wins
 */
func WaitReachable(ctx context.Context, ep models.Endpoint, timeoutSeconds int) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for tick := 0; ; tick++ {
		if timeoutSeconds > 0 && tick >= timeoutSeconds {
			return ErrTimedOut
		}
		attemptCount.WithLabelValues(ep.Addr()).Inc()
		if CheckReachable(ep) {
			logger.Debugf("Endpoint %s is reachable after %d attempt(s)", ep.Addr(), tick+1)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

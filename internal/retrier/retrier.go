package retrier

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"waitfor/internal/logger"
	"waitfor/internal/models"
)

// Session 一次成功连接产生的已认证会话
type Session interface {
	Disconnect(ctx context.Context) error
}

// Dialer 单次连接尝试的实现，由具体存储后端提供
type Dialer interface {
	// Dial 在ctx限定的截止时间内建立并验证一个会话
	Dial(ctx context.Context) (Session, error)
	// Target 返回目标地址，用于日志与指标
	Target() string
}

// ExhaustedError 有限策略的尝试预算耗尽后返回的终态错误
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("connection attempts exhausted after %d tries: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

/**
 * Retrier 依赖连接的固定间隔重试器
 * @property {Dialer} dialer - 连接尝试的实现
 * @property {models.RetryPolicy} policy - 尝试预算、间隔与单次截止时间
 * @description
 * - 同一时刻只有一个尝试在途
 * - 不区分网络拒绝和认证拒绝，预算内一律重试
 * - 网关放行后残余的竞态（端口可达但服务层未就绪）由它吸收
 */
type Retrier struct {
	dialer   Dialer
	policy   models.RetryPolicy
	attempts atomic.Int64
}

// Result Go变体通过通道送出的最终结果，恰好一条
type Result struct {
	Session Session
	Err     error
}

func New(dialer Dialer, policy models.RetryPolicy) *Retrier {
	// 间隔必须为正，避免空转
	if policy.Interval <= 0 {
		policy.Interval = models.DefaultRetryPolicy().Interval
	}
	if policy.ConnectTimeout <= 0 {
		policy.ConnectTimeout = models.DefaultRetryPolicy().ConnectTimeout
	}
	return &Retrier{
		dialer: dialer,
		policy: policy,
	}
}

// Attempts 返回已发起的尝试次数
func (r *Retrier) Attempts() int64 {
	return r.attempts.Load()
}

/**
 * Connect blocks until a session is established or the policy is exhausted
 * @param {context.Context} ctx - Cancellation is honored between attempts
 * @returns {Session} Established session on success
 * @returns {error} ctx.Err() on cancellation, *ExhaustedError when a finite budget runs out
 * @description
 * - Per-attempt deadline is the policy's connect timeout
 * - A fixed interval is waited after each failed attempt
 * - Transient failures are logged, never fatal while budget remains
 */
func (r *Retrier) Connect(ctx context.Context) (Session, error) {
	target := r.dialer.Target()
	for attempt := 1; ; attempt++ {
		r.attempts.Store(int64(attempt))
		attemptCount.WithLabelValues(target).Inc()

		actx, cancel := context.WithTimeout(ctx, r.policy.ConnectTimeout)
		sess, err := r.dialer.Dial(actx)
		cancel()
		if err == nil {
			connectedGauge.WithLabelValues(target).Set(1)
			logger.Infof("Connected to %s after %d attempt(s)", target, attempt)
			return sess, nil
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if r.policy.MaxAttempts != models.Unbounded && attempt >= r.policy.MaxAttempts {
			logger.Errorf("Giving up connecting to %s after %d attempt(s): %v", target, attempt, err)
			return nil, &ExhaustedError{Attempts: attempt, Last: err}
		}
		logger.Warnf("Connection attempt %d to %s failed: %v (retrying in %s)",
			attempt, target, err, r.policy.Interval)

		timer := time.NewTimer(r.policy.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

/**
 * Go runs Connect in the background and resolves asynchronously
 * @param {context.Context} ctx - Cancellation is honored between attempts
 * @returns {<-chan Result} Receives exactly one final result
 */
func (r *Retrier) Go(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		sess, err := r.Connect(ctx)
		ch <- Result{Session: sess, Err: err}
	}()
	return ch
}

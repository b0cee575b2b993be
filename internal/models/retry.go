package models

import "time"

/**
 * Fixed-interval retry policy owned by the dependent application's connection initializer
 * @property {int} maxAttempts - Attempt budget; 0 means retry without bound
 * @property {time.Duration} interval - Constant wait between failed attempts, always > 0
 * @property {time.Duration} connectTimeout - Per-attempt deadline, always > 0
 */
type RetryPolicy struct {
	MaxAttempts    int
	Interval       time.Duration
	ConnectTimeout time.Duration
}

// Unbounded 无限重试的哨兵值
const Unbounded = 0

// DefaultRetryPolicy 数据访问层初始化时的缺省策略
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    Unbounded,
		Interval:       5 * time.Second,
		ConnectTimeout: 10 * time.Second,
	}
}

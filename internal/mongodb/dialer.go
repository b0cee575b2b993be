package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"waitfor/internal/config"
	"waitfor/internal/retrier"
)

/**
 * Dialer MongoDB会话拨号器，实现retrier.Dialer
 * @property {*config.DatabaseConfig} cfg - 启动时从环境构造的连接配置
 * @description
 * - 每次Dial建立一个客户端并用ping验证认证会话可用
 * - 端口可达但服务层未就绪时ping会失败，交由重试器处理
 */
type Dialer struct {
	cfg *config.DatabaseConfig
}

func NewDialer(cfg *config.DatabaseConfig) *Dialer {
	return &Dialer{cfg: cfg}
}

func (d *Dialer) Target() string {
	return d.cfg.Endpoint().Addr()
}

/**
 * Dial establishes and verifies one authenticated session
 * @param {context.Context} ctx - Per-attempt deadline set by the retry policy
 * @returns {retrier.Session} The connected client; *mongo.Client satisfies the Session contract
 * @returns {error} Connection or authentication failure, both retryable upstream
 */
func (d *Dialer) Dial(ctx context.Context) (retrier.Session, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(d.cfg.URI()))
	if err != nil {
		return nil, fmt.Errorf("connect to %s failed: %w", d.Target(), err)
	}
	// mongo.Connect不实际建链，用ping确认服务层真正就绪
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping %s failed: %w", d.Target(), err)
	}
	return client, nil
}

package serve

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"waitfor/cmd/root"
	"waitfor/controllers"
	"waitfor/internal/config"
	"waitfor/internal/logger"
	"waitfor/internal/middleware"
	"waitfor/internal/mongodb"
	"waitfor/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dependent application server",
	Long: `Starts the HTTP surface immediately and establishes the database session
in the background with fixed-interval retries. /readyz turns 200 once the
session is up.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer()
	},
}

/**
 * Start the dependent application's HTTP server
 * @returns {error} Configuration or listener failure
 * @description
 * - 数据库配置在启动时从约定环境变量一次性构造
 * - 连接重试器在后台运行，瞬时失败只记日志不终止进程
 * - SIGINT/SIGTERM触发优雅退出并断开数据库会话
 */
func startServer() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return err
	}

	gin.SetMode(config.Config.Server.Mode)
	router := gin.Default()
	router.Use(middleware.MetricsMiddleware())

	server := services.NewServer(&config.Config)
	server.StartConnecting(ctx, mongodb.NewDialer(dbCfg), config.Config.Retry.Policy())

	apiController := controllers.NewAPIController(server)
	apiController.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    config.Config.Server.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Serving on %s (database: %s)", config.Config.Server.Address, dbCfg.Endpoint().Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// 优雅退出
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("HTTP server shutdown: %v", err)
	}
	server.Shutdown(shutdownCtx)
	logger.Info("Server stopped")
	return nil
}

func init() {
	root.RootCmd.AddCommand(serveCmd)
}

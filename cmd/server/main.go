package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/internal/logger"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model"
	"github.com/par4d15e/blogbackendserver-sub001/internal/route"
	"github.com/par4d15e/blogbackendserver-sub001/internal/storage"
	"github.com/par4d15e/blogbackendserver-sub001/internal/task"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/email"
)

// @title Blog Backend Server API
// @version 1.0
// @description 博客后端服务
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")

	// 2. 初始化日志
	logger.Init(config.Conf.Log)

	// 3. 初始化数据库和对象存储
	database.InitDatabase()
	storage.InitStorage()

	if err := model.InitTable(database.MySQLDB); err != nil {
		logrus.WithError(err).Fatal("初始化数据表失败")
	}

	// 4. 启动后台 worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	mailer := email.NewClient(&config.Conf.Smtp)
	task.NewEmailWorker(mailer).Start(ctx, &wg)
	task.NewCleanupWorker(database.MySQLDB).Start(ctx, &wg)

	// 5. 启动 HTTP 服务
	serverConf := config.Conf.Server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", serverConf.Host, serverConf.Port),
		Handler:      route.SetupRouter(),
		ReadTimeout:  serverConf.ReadTimeout,
		WriteTimeout: serverConf.WriteTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("服务启动")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("服务启动失败")
		}
	}()

	// 6. 优雅关闭: 等在途请求和后台 worker 退出
	<-ctx.Done()
	logrus.Info("收到退出信号, 开始关闭")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP 服务关闭异常")
	}

	wg.Wait()
	logrus.Info("服务已退出")
}

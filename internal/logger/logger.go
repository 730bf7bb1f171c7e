// Package logger 全局日志初始化
package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/config"
)

// Init 根据配置初始化全局 logrus
func Init(conf config.LogConfig) {
	switch conf.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
			TimestampFormat: time.RFC3339Nano,
		})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(conf.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if conf.Output == "file" && conf.Path != "" {
		f, err := os.OpenFile(conf.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logrus.WithError(err).Warn("打开日志文件失败, 回退到标准输出")
			return
		}
		logrus.SetOutput(f)
		return
	}

	logrus.SetOutput(os.Stdout)
}

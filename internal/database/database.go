package database

import (
	"time"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/database"

	"gorm.io/gorm"
)

var (
	MySQLDB *gorm.DB
	RedisDB *database.RedisClient
)

func InitDatabase() {
	databaseConf := config.Conf.Database
	redisConf := config.Conf.Redis

	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "silent"
	}

	var err error
	MySQLDB, err = database.InitMySQL(
		&database.MySQLConfig{
			ServiceName:     "blog-backend",
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			Charset:         databaseConf.Charset,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)

	if err != nil {
		panic(err)
	}

	// 初始化 Redis
	RedisDB, err = database.InitRedis(
		&database.RedisConfig{
			ServiceName: "blog-backend",
			Host:        redisConf.Host,
			Port:        redisConf.Port,
			Password:    redisConf.Password,
			DB:          redisConf.DB,
			PoolSize:    redisConf.PoolSize,
		},
	)

	if err != nil {
		panic(err)
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return MySQLDB
}

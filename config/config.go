// Package config 配置加载, yaml 文件打底, 环境变量覆盖
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Conf 全局配置, MustLoad 之后只读
var (
	Conf *AppConfig
	once sync.Once
)

// Load 加载配置, 重复调用只生效一次
// 优先级: 环境变量 > config.yaml, 环境变量按下划线映射到配置路径
// 例如 DATABASE_PASSWORD 覆盖 database.password
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// .env 仅本地开发使用, 缺失不算错误
		if dotErr := godotenv.Load(); dotErr != nil {
			log.Printf("未加载 .env 文件: %v", dotErr)
		}

		k := koanf.New(".")

		if err = k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			err = fmt.Errorf("加载配置文件失败: %w", err)
			return
		}

		if envErr := k.Load(env.Provider("", ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(s), "_", ".")
		}), nil); envErr != nil {
			log.Printf("加载环境变量失败: %v", envErr)
		}

		Conf = &AppConfig{}
		if err = k.Unmarshal("", Conf); err != nil {
			err = fmt.Errorf("解析配置失败: %w", err)
		}
	})

	return err
}

// MustLoad 加载配置, 失败直接退出
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
}

package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config 保存进程级配置（仅使用配置文件或内置默认值）。
// 字段提供开发友好的默认值；生产环境请在 config.yaml 中覆盖。
type Config struct {
	Env        string
	HTTPAddr   string
	Screenshot ScreenshotConfig
	Scrape     ScrapeConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Limits     LimitConfig
	Security   SecurityConfig
}

// ScreenshotConfig 描述截图上游（ScreenshotOne）相关参数。
type ScreenshotConfig struct {
	// 截图服务端点；测试时可指向本地 httptest 服务
	Endpoint string
	// 单次截图请求超时
	Timeout time.Duration
}

// ScrapeConfig 描述网页抓取相关参数。
type ScrapeConfig struct {
	// 单次抓取请求超时
	Timeout time.Duration
	// 抓取时使用的 User-Agent；为空则使用内置的浏览器 UA
	UserAgent string
}

type RedisConfig struct {
	// 为空表示不启用 Redis（限流中间件随之关闭，服务保持无状态）
	Addr     string
	DB       int
	Password string
}

type CORSConfig struct {
	// 是否为 /api/* 启用 CORS（跨域）；默认关闭
	EnableAPI bool
	// 允许的来源，仅在 EnableAPI=true 时生效；为空表示回显任意 Origin
	AllowedOrigins []string
}

type LimitConfig struct {
	ScreenshotPerMinute int
	ScrapePerMinute     int
	// 时间窗口（默认 1m）
	Window time.Duration
}

type SecurityConfig struct {
	HSTS struct {
		Enabled           bool
		MaxAgeSeconds     int
		IncludeSubdomains bool
	}
}

// Load 生成配置：先使用内置默认值，再用同目录的配置文件（config.yaml/yml/json）覆盖。
// 默认：监听 :8080，截图超时 60s，抓取超时 30s，Redis 不启用。
func Load() Config {
	// 1) 默认值（本地开发可直接运行）
	cfg := Config{
		Env:        "dev",
		HTTPAddr:   ":8080",
		Screenshot: ScreenshotConfig{Endpoint: "https://api.screenshotone.com/take", Timeout: 60 * time.Second},
		Scrape:     ScrapeConfig{Timeout: 30 * time.Second},
		Redis:      RedisConfig{Addr: "", DB: 0, Password: ""},
		CORS:       CORSConfig{EnableAPI: false},
		Limits:     LimitConfig{ScreenshotPerMinute: 10, ScrapePerMinute: 30, Window: time.Minute},
		Security: func() SecurityConfig {
			var s SecurityConfig
			s.HSTS.Enabled = true
			s.HSTS.MaxAgeSeconds = 31536000
			s.HSTS.IncludeSubdomains = true
			return s
		}(),
	}

	// 2) 配置文件覆盖（若存在）
	if path := FirstExisting("config.yaml", "config.yml", "config.json"); path != "" {
		_ = loadFromFile(path, &cfg)
	}
	return cfg
}

// 配置文件格式：YAML 或 JSON。仅非零值会覆盖现有字段。
func loadFromFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var fm fileModel
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else if ext == ".json" || ext == "" {
		if err := json.Unmarshal(b, &fm); err != nil {
			return err
		}
	} else {
		return errors.New("unsupported config file format")
	}
	fm.apply(cfg)
	return nil
}

// --- 配置文件模型与合并逻辑 ---

type fileModel struct {
	Env        string          `yaml:"env" json:"env"`
	HTTPAddr   string          `yaml:"http_addr" json:"http_addr"`
	Screenshot *fileScreenshot `yaml:"screenshot" json:"screenshot"`
	Scrape     *fileScrape     `yaml:"scrape" json:"scrape"`
	Redis      *fileRedis      `yaml:"redis" json:"redis"`
	CORS       *fileCORS       `yaml:"cors" json:"cors"`
	Limits     *fileLimits     `yaml:"limits" json:"limits"`
	Security   *fileSecurity   `yaml:"security" json:"security"`
}

type fileScreenshot struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	Timeout  string `yaml:"timeout" json:"timeout"`
}
type fileScrape struct {
	Timeout   string `yaml:"timeout" json:"timeout"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}
type fileRedis struct {
	Addr     string `yaml:"addr" json:"addr"`
	DB       int    `yaml:"db" json:"db"`
	Password string `yaml:"password" json:"password"`
}
type fileCORS struct {
	EnableAPI      *bool    `yaml:"enable_api" json:"enable_api"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
}
type fileLimits struct {
	ScreenshotPerMinute int    `yaml:"screenshot_per_minute" json:"screenshot_per_minute"`
	ScrapePerMinute     int    `yaml:"scrape_per_minute" json:"scrape_per_minute"`
	Window              string `yaml:"window" json:"window"`
}
type fileSecurity struct {
	HSTS struct {
		Enabled           *bool `yaml:"enabled" json:"enabled"`
		MaxAge            int   `yaml:"max_age" json:"max_age"`
		IncludeSubdomains *bool `yaml:"include_subdomains" json:"include_subdomains"`
	} `yaml:"hsts" json:"hsts"`
}

func (fm *fileModel) apply(cfg *Config) {
	if fm.Env != "" {
		cfg.Env = fm.Env
	}
	if fm.HTTPAddr != "" {
		cfg.HTTPAddr = fm.HTTPAddr
	}
	if fm.Screenshot != nil {
		if fm.Screenshot.Endpoint != "" {
			cfg.Screenshot.Endpoint = fm.Screenshot.Endpoint
		}
		if fm.Screenshot.Timeout != "" {
			if d, err := time.ParseDuration(fm.Screenshot.Timeout); err == nil {
				cfg.Screenshot.Timeout = d
			}
		}
	}
	if fm.Scrape != nil {
		if fm.Scrape.Timeout != "" {
			if d, err := time.ParseDuration(fm.Scrape.Timeout); err == nil {
				cfg.Scrape.Timeout = d
			}
		}
		if fm.Scrape.UserAgent != "" {
			cfg.Scrape.UserAgent = fm.Scrape.UserAgent
		}
	}
	if fm.Redis != nil {
		if fm.Redis.Addr != "" {
			cfg.Redis.Addr = fm.Redis.Addr
		}
		if fm.Redis.DB != 0 {
			cfg.Redis.DB = fm.Redis.DB
		}
		if fm.Redis.Password != "" {
			cfg.Redis.Password = fm.Redis.Password
		}
	}
	if fm.CORS != nil {
		if fm.CORS.EnableAPI != nil {
			cfg.CORS.EnableAPI = *fm.CORS.EnableAPI
		}
		if len(fm.CORS.AllowedOrigins) > 0 {
			cfg.CORS.AllowedOrigins = fm.CORS.AllowedOrigins
		}
	}
	if fm.Limits != nil {
		if fm.Limits.ScreenshotPerMinute != 0 {
			cfg.Limits.ScreenshotPerMinute = fm.Limits.ScreenshotPerMinute
		}
		if fm.Limits.ScrapePerMinute != 0 {
			cfg.Limits.ScrapePerMinute = fm.Limits.ScrapePerMinute
		}
		if fm.Limits.Window != "" {
			if d, err := time.ParseDuration(fm.Limits.Window); err == nil {
				cfg.Limits.Window = d
			}
		}
	}
	if fm.Security != nil {
		if fm.Security.HSTS.Enabled != nil {
			cfg.Security.HSTS.Enabled = *fm.Security.HSTS.Enabled
		}
		if fm.Security.HSTS.MaxAge != 0 {
			cfg.Security.HSTS.MaxAgeSeconds = fm.Security.HSTS.MaxAge
		}
		if fm.Security.HSTS.IncludeSubdomains != nil {
			cfg.Security.HSTS.IncludeSubdomains = *fm.Security.HSTS.IncludeSubdomains
		}
	}
}

// FirstExisting 按顺序返回第一个存在的文件路径；若都不存在则返回空字符串。
// 注意：该函数用于在多路径间进行容错查找，如配置文件位置。
func FirstExisting(paths ...string) string {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

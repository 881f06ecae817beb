// Package storage 负责外部存储连接的初始化与健康检查（当前仅 Redis）。
package storage

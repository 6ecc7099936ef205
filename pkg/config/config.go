// Package config 提供游戏的配置常量和 YAML 配置加载
package config

// 应用标识常量
// 标题画面和窗口标题使用这些值
const (
	// AppName 应用名称
	AppName = "Magus"

	// Version 应用版本号
	Version = "0.9.0"
)

// 窗口逻辑尺寸常量
// 逻辑尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
const (
	// GameWindowWidth 游戏窗口逻辑宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 游戏窗口逻辑高度（像素）
	GameWindowHeight = 600
)

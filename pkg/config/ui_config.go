package config

import (
	"fmt"
	"log"

	"github.com/decker502/magus/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// UIConfigPath UI 配置文件的嵌入路径
const UIConfigPath = "assets/config/ui.yaml"

// MessageConfig 消息缓冲区的节奏与布局配置
//
// letterReadDuration 和 minReadDuration 共同决定一条文本的预计阅读时长：
//
//	duration = max(minReadDuration, 字符数 * letterReadDuration)
type MessageConfig struct {
	// LetterReadDuration 每个字符的预计阅读时长（秒）
	LetterReadDuration float64 `yaml:"letterReadDuration"`

	// MinReadDuration 单条消息的最短显示时长（秒）
	// 即使是空字符串也至少占据这么久，保证每条消息至少被绘制一次
	MinReadDuration float64 `yaml:"minReadDuration"`

	// AnchorX, AnchorY 滚动日志的锚点（屏幕坐标，最新一行所在位置）
	AnchorX float64 `yaml:"anchorX"`
	AnchorY float64 `yaml:"anchorY"`

	// LineHeight 日志行高（像素），0 表示使用字体行高
	LineHeight float64 `yaml:"lineHeight"`

	// CaptionX, CaptionY 大字幕的中心位置（屏幕坐标）
	CaptionX float64 `yaml:"captionX"`
	CaptionY float64 `yaml:"captionY"`
}

// FontConfig 字体尺寸配置
type FontConfig struct {
	// MessageSize 日志消息字号
	MessageSize float64 `yaml:"messageSize"`

	// CaptionSize 字幕字号
	CaptionSize float64 `yaml:"captionSize"`

	// TitleSize 标题画面字号（绘制时再做 4 倍矩阵缩放）
	TitleSize float64 `yaml:"titleSize"`
}

// ButtonConfig 标题画面按钮的尺寸配置
type ButtonConfig struct {
	// Width 按钮宽度（像素）
	Width float64 `yaml:"width"`

	// Height 按钮高度（像素）
	Height float64 `yaml:"height"`

	// Spacing 相邻按钮的纵向间距（像素）
	Spacing float64 `yaml:"spacing"`

	// FirstY 第一个按钮的 Y 坐标
	FirstY float64 `yaml:"firstY"`
}

// UIConfig UI 配置根结构
// 从 assets/config/ui.yaml 加载，缺失的字段保留默认值
type UIConfig struct {
	Messages MessageConfig `yaml:"messages"`
	Fonts    FontConfig    `yaml:"fonts"`
	Buttons  ButtonConfig  `yaml:"buttons"`
}

// DefaultUIConfig 返回默认 UI 配置
// 配置文件缺失或解析失败时使用
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Messages: MessageConfig{
			LetterReadDuration: 0.05,
			MinReadDuration:    1.0,
			AnchorX:            16,
			AnchorY:            560,
			LineHeight:         0,
			CaptionX:           GameWindowWidth / 2,
			CaptionY:           200,
		},
		Fonts: FontConfig{
			MessageSize: 16,
			CaptionSize: 32,
			TitleSize:   12,
		},
		Buttons: ButtonConfig{
			Width:   192,
			Height:  32,
			Spacing: 48,
			FirstY:  240,
		},
	}
}

// ParseUIConfig 解析 YAML 数据为 UIConfig
// 在默认配置之上反序列化，未出现的字段保留默认值
func ParseUIConfig(data []byte) (*UIConfig, error) {
	cfg := DefaultUIConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ui config: %w", err)
	}
	return cfg, nil
}

// LoadUIConfig 从嵌入资源加载 UI 配置
//
// 配置文件缺失或损坏不是致命错误：记录警告并回退到默认配置
func LoadUIConfig() *UIConfig {
	data, err := embedded.ReadFile(UIConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: failed to read %s: %v (using defaults)", UIConfigPath, err)
		return DefaultUIConfig()
	}

	cfg, err := ParseUIConfig(data)
	if err != nil {
		log.Printf("[Config] Warning: failed to parse %s: %v (using defaults)", UIConfigPath, err)
		return DefaultUIConfig()
	}

	log.Printf("[Config] Loaded UI config from %s", UIConfigPath)
	return cfg
}

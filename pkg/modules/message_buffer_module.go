// Package modules 提供自包含的 UI 模块
//
// 模块是场景的组成部分：持有自己的状态，由所属场景每帧
// 先调用一次 Update 再调用 Draw。
package modules

import (
	"fmt"
	"image/color"

	"github.com/decker502/magus/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// TextRenderer 文本绘制接口
//
// 消息缓冲区不拥有也不创建文本绘制器，只在 Draw 阶段调用它。
// 由 pkg/game 的 FontRenderer 实现。
type TextRenderer interface {
	// DrawText 在 screen 上绘制一行文本，(x, y) 为文本左上角
	DrawText(screen *ebiten.Image, x, y float64, str string, clr, edge color.Color)

	// LineHeight 返回字体行高（像素）
	LineHeight() float64

	// Measure 返回文本的像素宽度
	Measure(str string) float64
}

// messageEntry 一条已排期的文本
// 创建后不可变，到期后从队列头部移除
type messageEntry struct {
	// text 显示的文本
	text string

	// clearTime 预计阅读完成时刻（缓冲区时钟，秒）
	// 时钟到达该时刻后条目在下一次 Update 中被清除
	clearTime float64
}

// MessageBufferModule 定时消息缓冲区
//
// 管理两条独立的文本流：
//  1. 滚动日志：角落堆叠显示的聊天/日志消息，按插入顺序滚动
//  2. 字幕队列：屏幕中央一次只显示一条的大字幕，严格 FIFO
//
// 每条文本根据长度估算阅读时长，到期后自动清除。新文本在已有
// 文本的"阅读完成时刻"（horizon）之后排期，模拟玩家顺序阅读：
// 积压期间到达的消息不会与旧消息同时计时。
//
// 缓冲区只通过 Update(interval) 推进自己的时钟，从不读取真实
// 时间，因此行为完全确定，便于测试。
//
// 调用约定（与场景一致）：每个逻辑帧先 Update 一次，之后可以
// 任意次 Draw。Draw 是只读的，不会触发清除或时钟推进。
type MessageBufferModule struct {
	// TextColor 文字颜色，应用于所有绘制的文本
	TextColor color.Color

	// EdgeColor 描边颜色，nil 表示不描边
	EdgeColor color.Color

	// 注入的文本绘制器（非拥有引用）
	msgFont     TextRenderer
	captionFont TextRenderer

	// clock 缓冲区本地时钟（秒），只通过 Update 推进
	clock float64

	// readNewTextTime 当前所有文本的预计阅读完成时刻
	// 不变式：readNewTextTime >= clock
	readNewTextTime float64

	// 阅读节奏参数
	letterReadDuration float64 // 每个字符的阅读时长（秒）
	minReadDuration    float64 // 单条文本的最短时长（秒）

	// messages 滚动日志：尾部追加，头部清除（FIFO）
	// 条目按 clearTime 单调递增排列，清除时只需从头部扫描
	messages []messageEntry

	// captions 字幕队列：只有队首处于激活状态
	captions []messageEntry

	// 布局参数（来自 UI 配置）
	anchorX    float64
	anchorY    float64
	lineHeight float64 // 0 表示使用 msgFont 的行高
	captionX   float64
	captionY   float64
}

// NewMessageBufferModule 创建消息缓冲区
//
// 参数：
//   - msgFont: 日志消息的文本绘制器
//   - captionFont: 字幕的文本绘制器
//   - cfg: UI 配置（节奏和布局参数取自 cfg.Messages）
//
// 默认白字黑边，可通过 TextColor / EdgeColor 字段调整。
func NewMessageBufferModule(msgFont, captionFont TextRenderer, cfg *config.UIConfig) *MessageBufferModule {
	mc := cfg.Messages
	return &MessageBufferModule{
		TextColor:          color.White,
		EdgeColor:          color.Black,
		msgFont:            msgFont,
		captionFont:        captionFont,
		letterReadDuration: mc.LetterReadDuration,
		minReadDuration:    mc.MinReadDuration,
		anchorX:            mc.AnchorX,
		anchorY:            mc.AnchorY,
		lineHeight:         mc.LineHeight,
		captionX:           mc.CaptionX,
		captionY:           mc.CaptionY,
	}
}

// SetTextSpeed 应用文本阅读速度倍率（来自全局设置）
//
// 倍率作用于单字符阅读时长：speed = 2.0 时消息以两倍速度消失。
// 最短时长不受影响，保证短消息仍然可见。
func (m *MessageBufferModule) SetTextSpeed(speed float64) {
	if speed <= 0 {
		return
	}
	m.letterReadDuration = m.letterReadDuration / speed
}

// timeRead 为新文本排期，返回其预计阅读完成时刻
//
// 排期策略：若 horizon（readNewTextTime）仍在未来，说明玩家还在
// 消化之前的文本，新文本的阅读时段排在 horizon 之后而不是从当前
// 时钟开始。随后 horizon 前移到新文本的完成时刻。
func (m *MessageBufferModule) timeRead(addedText string) float64 {
	// 按字符数估算阅读时长（使用 rune 数，CJK 文本按字计）
	duration := float64(len([]rune(addedText))) * m.letterReadDuration
	if duration < m.minReadDuration {
		duration = m.minReadDuration
	}

	start := m.clock
	if m.readNewTextTime > start {
		start = m.readNewTextTime
	}

	clearTime := start + duration
	m.readNewTextTime = clearTime
	return clearTime
}

// AddMessage 向滚动日志追加一条消息
// 永不失败；日志大小没有上限，条目随阅读进度自然清除
func (m *MessageBufferModule) AddMessage(str string) {
	m.messages = append(m.messages, messageEntry{
		text:      str,
		clearTime: m.timeRead(str),
	})
}

// AddCaption 向字幕队列追加一条字幕
// 字幕一次只显示一条，后来的字幕等待前面的到期后才激活
func (m *MessageBufferModule) AddCaption(str string) {
	m.captions = append(m.captions, messageEntry{
		text:      str,
		clearTime: m.timeRead(str),
	})
}

// Update 推进缓冲区时钟并清除到期的条目
//
// interval 必须非负，0 是合法的空操作。负值违反时钟单调性前置
// 条件：返回错误且不修改任何状态。
//
// 清除规则：
//   - 滚动日志从头部清除所有已到期的条目（条目按到期时刻递增，
//     遇到未到期条目即可停止）
//   - 字幕队列每次 tick 最多清除队首一条（字幕逐条激活，不会
//     像日志那样成批到期）
//
// 很大的 interval（比如暂停后的恢复）不做特殊处理：所有已过期
// 的日志条目一次清除。
func (m *MessageBufferModule) Update(intervalSeconds float64) error {
	if intervalSeconds < 0 {
		return fmt.Errorf("negative update interval: %v", intervalSeconds)
	}

	m.clock += intervalSeconds

	// 日志：从最旧的条目（头部）开始清除
	for len(m.messages) > 0 && m.messages[0].clearTime <= m.clock {
		m.messages = m.messages[1:]
	}

	// 字幕：每次 tick 只让队首一条到期
	if len(m.captions) > 0 && m.captions[0].clearTime <= m.clock {
		m.captions = m.captions[1:]
	}

	// 保持不变式 readNewTextTime >= clock
	if m.readNewTextTime < m.clock {
		m.readNewTextTime = m.clock
	}

	return nil
}

// Draw 绘制当前可见的文本，只读，不推进时钟也不清除条目
//
// 日志行以锚点为基准向上堆叠：最新一行在锚点，较早的行依次向上。
// 字幕只绘制队首一条，在配置的中心位置水平居中。
func (m *MessageBufferModule) Draw(screen *ebiten.Image) {
	lineHeight := m.lineHeight
	if lineHeight == 0 && m.msgFont != nil {
		lineHeight = m.msgFont.LineHeight()
	}

	if m.msgFont != nil {
		count := len(m.messages)
		for i, entry := range m.messages {
			y := m.anchorY - float64(count-1-i)*lineHeight
			m.msgFont.DrawText(screen, m.anchorX, y, entry.text, m.TextColor, m.EdgeColor)
		}
	}

	if m.captionFont != nil && len(m.captions) > 0 {
		front := m.captions[0]
		width := m.captionFont.Measure(front.text)
		m.captionFont.DrawText(screen, m.captionX-width/2, m.captionY, front.text, m.TextColor, m.EdgeColor)
	}
}

// Clock 返回缓冲区当前时钟（秒）
func (m *MessageBufferModule) Clock() float64 {
	return m.clock
}

// ReadHorizon 返回当前所有文本的预计阅读完成时刻
// 恒有 ReadHorizon() >= Clock()
func (m *MessageBufferModule) ReadHorizon() float64 {
	return m.readNewTextTime
}

// VisibleMessages 返回当前可见的日志消息（从最旧到最新）
func (m *MessageBufferModule) VisibleMessages() []string {
	result := make([]string, len(m.messages))
	for i, entry := range m.messages {
		result[i] = entry.text
	}
	return result
}

// ActiveCaption 返回当前激活的字幕（队首）
// 第二个返回值表示是否有激活的字幕
func (m *MessageBufferModule) ActiveCaption() (string, bool) {
	if len(m.captions) == 0 {
		return "", false
	}
	return m.captions[0].text, true
}

// PendingCaptions 返回字幕队列长度（包括激活中的队首）
func (m *MessageBufferModule) PendingCaptions() int {
	return len(m.captions)
}

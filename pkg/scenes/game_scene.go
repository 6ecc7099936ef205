package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/magus/pkg/config"
	"github.com/decker502/magus/pkg/game"
	"github.com/decker502/magus/pkg/modules"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 游戏画面配色
var (
	gameBackgroundColor = color.RGBA{R: 8, G: 8, B: 12, A: 255}
	hintTextColor       = color.RGBA{R: 96, G: 112, B: 96, A: 255}
)

// 演示用的日志消息，按 M 键循环发送
var sampleMessages = []string{
	"You hear a distant rumble.",
	"The torch flickers in the draft.",
	"A rat scurries past your feet.",
	"Something moves in the shadows.",
	"Your footsteps echo in the hall.",
}

// GameScene 游戏画面
//
// 持有消息缓冲区并驱动它的每帧节拍：先 Update 一次再 Draw。
// 进入时发布开场字幕和欢迎消息。
//
// 按键：
//   - Escape 返回标题画面
//   - M 发送一条演示日志消息
//   - C 发送一条演示字幕
type GameScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	uiConfig        *config.UIConfig

	messageBuffer *modules.MessageBufferModule
	hintFace      *text.GoTextFace

	// sampleIndex 下一条演示消息的下标
	sampleIndex int

	// captionCount 已发送的演示字幕数
	captionCount int
}

// NewGameScene creates and returns a new GameScene instance.
// It wires the message buffer to the font renderers and posts the
// opening caption and welcome messages.
func NewGameScene(rm *game.ResourceManager, sm *game.SceneManager, settings *game.SettingsManager, cfg *config.UIConfig) *GameScene {
	msgFont := game.NewFontRenderer(rm.NewFace(cfg.Fonts.MessageSize))
	captionFont := game.NewFontRenderer(rm.NewFace(cfg.Fonts.CaptionSize))

	buffer := modules.NewMessageBufferModule(msgFont, captionFont, cfg)
	buffer.SetTextSpeed(settings.GetSettings().TextSpeed)

	scene := &GameScene{
		resourceManager: rm,
		sceneManager:    sm,
		settingsManager: settings,
		uiConfig:        cfg,
		messageBuffer:   buffer,
		hintFace:        rm.NewFace(cfg.Fonts.MessageSize),
	}

	// 开场字幕和欢迎消息
	buffer.AddCaption("Chapter One")
	buffer.AddMessage("Welcome to the tower.")
	buffer.AddMessage("Press M to hear the dungeon, C for a caption.")

	log.Printf("[GameScene] Initialized")
	return scene
}

// Update 更新游戏画面
// deltaTime 是自上一帧以来经过的时间（秒）
func (s *GameScene) Update(deltaTime float64) {
	// Escape 返回标题画面
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[GameScene] Returning to intro screen")
		intro := NewIntroScene(s.resourceManager, s.sceneManager, s.settingsManager, s.uiConfig)
		s.sceneManager.SwitchTo(intro)
		return
	}

	// 演示按键：M 发消息，C 发字幕
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.messageBuffer.AddMessage(sampleMessages[s.sampleIndex])
		s.sampleIndex = (s.sampleIndex + 1) % len(sampleMessages)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.captionCount++
		s.messageBuffer.AddCaption(fmt.Sprintf("Caption %d", s.captionCount))
	}

	// 每个逻辑帧推进一次缓冲区时钟
	// deltaTime 恒为非负，这里的错误只可能来自编程失误
	if err := s.messageBuffer.Update(deltaTime); err != nil {
		log.Printf("[GameScene] Warning: message buffer update failed: %v", err)
	}
}

// Draw 绘制游戏画面
// 缓冲区的 Draw 是只读的，多 pass 渲染时可以安全地重复调用
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(gameBackgroundColor)

	// 操作提示
	hintOp := &text.DrawOptions{}
	hintOp.GeoM.Translate(8, 8)
	hintOp.ColorScale.ScaleWithColor(hintTextColor)
	text.Draw(screen, "[M] message  [C] caption  [Esc] menu", s.hintFace, hintOp)

	s.messageBuffer.Draw(screen)
}

// MessageBuffer 返回场景持有的消息缓冲区
func (s *GameScene) MessageBuffer() *modules.MessageBufferModule {
	return s.messageBuffer
}

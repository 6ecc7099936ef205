package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/magus/pkg/components"
	"github.com/decker502/magus/pkg/config"
	"github.com/decker502/magus/pkg/game"
	"github.com/decker502/magus/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 标题画面配色
var (
	introBackgroundColor = color.RGBA{R: 16, G: 24, B: 16, A: 255}
	introTitleColor      = color.RGBA{R: 196, G: 255, B: 196, A: 255}
	buttonFillColor      = color.RGBA{R: 40, G: 56, B: 40, A: 255}
	buttonHoverColor     = color.RGBA{R: 64, G: 96, B: 64, A: 255}
	buttonBorderColor    = color.RGBA{R: 196, G: 255, B: 196, A: 255}
	buttonLabelColor     = color.RGBA{R: 220, G: 255, B: 220, A: 255}
)

// IntroScene 标题画面
//
// 显示应用名和版本号，提供"New Game"和"Exit"两个按钮。
// 键盘快捷键：N 开始新游戏，Escape 退出。
type IntroScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	uiConfig        *config.UIConfig

	titleFace  *text.GoTextFace
	buttonFace *text.GoTextFace
	buttons    []components.Button
}

// NewIntroScene creates and returns a new IntroScene instance.
//
// Parameters:
//   - rm: The ResourceManager instance used to create font faces.
//   - sm: The SceneManager instance used to switch between scenes.
//   - settings: The SettingsManager holding global game settings.
//   - cfg: The UI configuration (button metrics, font sizes).
func NewIntroScene(rm *game.ResourceManager, sm *game.SceneManager, settings *game.SettingsManager, cfg *config.UIConfig) *IntroScene {
	scene := &IntroScene{
		resourceManager: rm,
		sceneManager:    sm,
		settingsManager: settings,
		uiConfig:        cfg,
		titleFace:       rm.NewFace(cfg.Fonts.TitleSize),
		buttonFace:      rm.NewFace(cfg.Fonts.MessageSize),
	}

	scene.initButtons()
	log.Printf("[IntroScene] Initialized with %d buttons", len(scene.buttons))
	return scene
}

// initButtons 创建标题画面按钮
// 按钮水平居中，从配置的 FirstY 开始向下排列
func (s *IntroScene) initButtons() {
	bc := s.uiConfig.Buttons
	centerX := float64(config.GameWindowWidth)/2 - bc.Width/2

	s.buttons = []components.Button{
		{
			X:       centerX,
			Y:       bc.FirstY,
			Width:   bc.Width,
			Height:  bc.Height,
			Label:   "New Game",
			OnClick: s.onNewGameClicked,
		},
		{
			X:       centerX,
			Y:       bc.FirstY + bc.Spacing,
			Width:   bc.Width,
			Height:  bc.Height,
			Label:   "Exit",
			OnClick: s.onExitClicked,
		},
	}
}

// Update 处理标题画面的输入
func (s *IntroScene) Update(deltaTime float64) {
	// Escape 弹出标题画面（栈空即退出游戏）
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.sceneManager.Pop()
		return
	}

	// N 直接开始新游戏
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.onNewGameClicked()
		return
	}

	// 指针悬停高亮
	px, py := utils.GetPointerPosition()
	s.updateHover(float64(px), float64(py))

	// 点击检测
	if pressed, cx, cy := utils.IsPointerJustPressed(); pressed {
		s.handleClick(float64(cx), float64(cy))
	}
}

// updateHover 根据指针位置更新按钮的悬停状态
func (s *IntroScene) updateHover(px, py float64) {
	for i := range s.buttons {
		button := &s.buttons[i]
		if button.State == components.UIDisabled {
			continue
		}
		if button.Contains(px, py) {
			button.State = components.UIHovered
		} else {
			button.State = components.UINormal
		}
	}
}

// handleClick 将一次点击分发给命中的按钮
func (s *IntroScene) handleClick(px, py float64) {
	for i := range s.buttons {
		button := &s.buttons[i]
		if button.State == components.UIDisabled {
			continue
		}
		if button.Contains(px, py) {
			log.Printf("[IntroScene] Button clicked: %s", button.Label)
			if button.OnClick != nil {
				button.OnClick()
			}
			return
		}
	}
}

// onNewGameClicked 开始新游戏
// 用游戏画面替换栈顶，避免栈短暂弹空触发退出
func (s *IntroScene) onNewGameClicked() {
	log.Printf("[IntroScene] Starting new game")
	gameScene := NewGameScene(s.resourceManager, s.sceneManager, s.settingsManager, s.uiConfig)
	s.sceneManager.SwitchTo(gameScene)
}

// onExitClicked 退出游戏
func (s *IntroScene) onExitClicked() {
	log.Printf("[IntroScene] Exit requested")
	s.sceneManager.Quit()
}

// Draw 绘制标题画面
func (s *IntroScene) Draw(screen *ebiten.Image) {
	screen.Fill(introBackgroundColor)

	// 标题以 4 倍矩阵缩放绘制在左上角
	titleOp := &text.DrawOptions{}
	titleOp.GeoM.Scale(4, 4)
	titleOp.GeoM.Translate(8, 8)
	titleOp.ColorScale.ScaleWithColor(introTitleColor)
	text.Draw(screen, fmt.Sprintf("%s v%s", config.AppName, config.Version), s.titleFace, titleOp)

	for i := range s.buttons {
		s.drawButton(screen, &s.buttons[i])
	}
}

// drawButton 绘制单个按钮（填充矩形 + 描边 + 居中文字）
func (s *IntroScene) drawButton(screen *ebiten.Image, button *components.Button) {
	fill := buttonFillColor
	if button.State == components.UIHovered {
		fill = buttonHoverColor
	}

	vector.DrawFilledRect(screen,
		float32(button.X), float32(button.Y),
		float32(button.Width), float32(button.Height),
		fill, true)
	vector.StrokeRect(screen,
		float32(button.X), float32(button.Y),
		float32(button.Width), float32(button.Height),
		1, buttonBorderColor, true)

	// 文字居中
	labelWidth, labelHeight := text.Measure(button.Label, s.buttonFace, 0)
	labelOp := &text.DrawOptions{}
	labelOp.GeoM.Translate(
		button.X+(button.Width-labelWidth)/2,
		button.Y+(button.Height-labelHeight)/2,
	)
	labelOp.ColorScale.ScaleWithColor(buttonLabelColor)
	text.Draw(screen, button.Label, s.buttonFace, labelOp)
}

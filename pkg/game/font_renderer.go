package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FontRenderer 基于 text/v2 的文本绘制器
//
// 支持描边绘制：先以描边色在四个方向各偏移 1 像素绘制一遍，
// 再以文字色绘制正文，使文本在任何背景上都清晰可读。
// 传入的坐标是文本的左上角（屏幕坐标）。
type FontRenderer struct {
	face *text.GoTextFace
}

// NewFontRenderer 创建文本绘制器
//
// 参数：
//   - face: 绘制使用的字体面（由 ResourceManager.NewFace 创建）
func NewFontRenderer(face *text.GoTextFace) *FontRenderer {
	return &FontRenderer{face: face}
}

// edgeOffsets 描边的四方向偏移（像素）
var edgeOffsets = [4][2]float64{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// DrawText 在 screen 上绘制一行文本
//
// 参数：
//   - screen: 目标画面
//   - x, y: 文本左上角坐标
//   - str: 要绘制的文本
//   - clr: 文字颜色
//   - edge: 描边颜色，nil 表示不描边
func (fr *FontRenderer) DrawText(screen *ebiten.Image, x, y float64, str string, clr, edge color.Color) {
	if screen == nil || str == "" {
		return
	}

	// 描边：四个方向各偏移 1 像素绘制一遍
	if edge != nil {
		for _, offset := range edgeOffsets {
			edgeOp := &text.DrawOptions{}
			edgeOp.GeoM.Translate(x+offset[0], y+offset[1])
			edgeOp.ColorScale.ScaleWithColor(edge)
			text.Draw(screen, str, fr.face, edgeOp)
		}
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, fr.face, op)
}

// LineHeight 返回字体的行高（像素）
func (fr *FontRenderer) LineHeight() float64 {
	m := fr.face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// Measure 返回文本的像素宽度
func (fr *FontRenderer) Measure(str string) float64 {
	width, _ := text.Measure(str, fr.face, 0)
	return width
}

// Package components 提供场景使用的 UI 数据结构
package components

// UIState represents the current state of a UI element (e.g., button).
type UIState int

const (
	// UINormal indicates the UI element is in its default state.
	UINormal UIState = iota
	// UIHovered indicates the mouse cursor is hovering over the UI element.
	UIHovered
	// UIClicked indicates the UI element is being clicked.
	UIClicked
	// UIDisabled indicates the UI element is disabled and cannot be interacted with.
	UIDisabled
)

// Button 标题画面使用的矢量按钮
//
// 没有贴图资源：绘制时用填充矩形加描边表现，悬停时改变填充色。
// 点击判定和绘制由所属场景负责，这里只存数据。
type Button struct {
	// X, Y 按钮左上角的屏幕坐标
	X float64
	Y float64

	// Width, Height 按钮尺寸（像素）
	Width  float64
	Height float64

	// Label 按钮上显示的文字
	Label string

	// State 当前交互状态
	State UIState

	// OnClick 点击时触发的回调
	OnClick func()
}

// Contains 判断点 (px, py) 是否落在按钮区域内
func (b *Button) Contains(px, py float64) bool {
	return px >= b.X && px < b.X+b.Width && py >= b.Y && py < b.Y+b.Height
}

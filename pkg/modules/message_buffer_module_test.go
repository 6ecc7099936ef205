package modules

import (
	"image/color"
	"testing"

	"github.com/decker502/magus/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// drawCall 记录一次 DrawText 调用的全部参数
type drawCall struct {
	x, y float64
	str  string
}

// recordingRenderer 记录绘制调用的测试桩
// 不触碰 screen，可以在无图形环境下运行
type recordingRenderer struct {
	calls []drawCall
}

func (r *recordingRenderer) DrawText(screen *ebiten.Image, x, y float64, str string, clr, edge color.Color) {
	r.calls = append(r.calls, drawCall{x: x, y: y, str: str})
}

func (r *recordingRenderer) LineHeight() float64 {
	return 18
}

func (r *recordingRenderer) Measure(str string) float64 {
	return float64(len([]rune(str))) * 8
}

// newTestBuffer 创建测试用缓冲区
// letterReadDuration = 0.05 秒/字符，minReadDuration = 1.0 秒
func newTestBuffer() (*MessageBufferModule, *recordingRenderer, *recordingRenderer) {
	cfg := config.DefaultUIConfig()
	cfg.Messages.LetterReadDuration = 0.05
	cfg.Messages.MinReadDuration = 1.0

	msgFont := &recordingRenderer{}
	captionFont := &recordingRenderer{}
	return NewMessageBufferModule(msgFont, captionFont, cfg), msgFont, captionFont
}

// TestMessageBuffer_ShortMessageLifecycle 测试短消息的完整生命周期
//
// 场景：clock=0 时 AddMessage("hi")
// "hi" 两个字符：duration = max(1.0, 2*0.05) = 1.0，到期时刻 1.0
func TestMessageBuffer_ShortMessageLifecycle(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddMessage("hi")

	if horizon := buffer.ReadHorizon(); horizon != 1.0 {
		t.Errorf("Expected ReadHorizon = 1.0, got %v", horizon)
	}

	// update(0.5) -> clock=0.5，条目仍在
	if err := buffer.Update(0.5); err != nil {
		t.Fatalf("Update(0.5) error: %v", err)
	}
	if visible := buffer.VisibleMessages(); len(visible) != 1 {
		t.Errorf("Expected 1 visible message at clock=0.5, got %d", len(visible))
	}

	// update(0.6) -> clock=1.1，条目到期被清除
	if err := buffer.Update(0.6); err != nil {
		t.Fatalf("Update(0.6) error: %v", err)
	}
	if visible := buffer.VisibleMessages(); len(visible) != 0 {
		t.Errorf("Expected empty message log at clock=1.1, got %d messages", len(visible))
	}
}

// TestMessageBuffer_SequentialScheduling 测验连续消息的顺序排期
//
// 场景：clock=0 时依次 AddMessage("a")、AddMessage("b")
// 第一条到期时刻 1.0，第二条从 max(0, 1.0)=1.0 起算，到期时刻 2.0
func TestMessageBuffer_SequentialScheduling(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddMessage("a")
	if horizon := buffer.ReadHorizon(); horizon != 1.0 {
		t.Errorf("Expected ReadHorizon = 1.0 after first message, got %v", horizon)
	}

	buffer.AddMessage("b")
	if horizon := buffer.ReadHorizon(); horizon != 2.0 {
		t.Errorf("Expected ReadHorizon = 2.0 after second message, got %v", horizon)
	}

	// update(1.5)：第一条到期，第二条仍在
	if err := buffer.Update(1.5); err != nil {
		t.Fatalf("Update(1.5) error: %v", err)
	}

	visible := buffer.VisibleMessages()
	if len(visible) != 1 {
		t.Fatalf("Expected 1 visible message at clock=1.5, got %d", len(visible))
	}
	if visible[0] != "b" {
		t.Errorf("Expected remaining message = %q, got %q", "b", visible[0])
	}
}

// TestMessageBuffer_MonotonicHorizon 测试 horizon 单调不减
func TestMessageBuffer_MonotonicHorizon(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	previous := buffer.ReadHorizon()
	operations := []func(){
		func() { buffer.AddMessage("first message") },
		func() { buffer.AddCaption("a caption") },
		func() { buffer.Update(0.3) },
		func() { buffer.AddMessage("") },
		func() { buffer.Update(5.0) },
		func() { buffer.AddMessage("after the pause") },
		func() { buffer.Update(0) },
		func() { buffer.AddCaption("another caption") },
	}

	for i, op := range operations {
		op()

		horizon := buffer.ReadHorizon()
		if horizon < previous {
			t.Errorf("Operation %d: horizon decreased from %v to %v", i, previous, horizon)
		}
		if horizon < buffer.Clock() {
			t.Errorf("Operation %d: horizon %v < clock %v", i, horizon, buffer.Clock())
		}
		previous = horizon
	}
}

// TestMessageBuffer_EmptyStringFloor 测试空字符串的最短显示时长
// 空字符串也要占据 minReadDuration，否则永远没有被绘制的机会
func TestMessageBuffer_EmptyStringFloor(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddMessage("")

	if err := buffer.Update(0.5); err != nil {
		t.Fatalf("Update(0.5) error: %v", err)
	}
	if visible := buffer.VisibleMessages(); len(visible) != 1 {
		t.Errorf("Expected empty-string entry still visible at clock=0.5, got %d messages", len(visible))
	}

	if err := buffer.Update(0.6); err != nil {
		t.Fatalf("Update(0.6) error: %v", err)
	}
	if visible := buffer.VisibleMessages(); len(visible) != 0 {
		t.Errorf("Expected empty-string entry evicted at clock=1.1, got %d messages", len(visible))
	}
}

// TestMessageBuffer_RuneBasedPacing 测试按字符（rune）而非字节计算阅读时长
func TestMessageBuffer_RuneBasedPacing(t *testing.T) {
	cfg := config.DefaultUIConfig()
	cfg.Messages.LetterReadDuration = 0.5
	cfg.Messages.MinReadDuration = 1.0
	buffer := NewMessageBufferModule(&recordingRenderer{}, &recordingRenderer{}, cfg)

	// 四个汉字 = 12 字节但只有 4 个字符：duration = 4*0.5 = 2.0
	buffer.AddMessage("你好世界")

	if horizon := buffer.ReadHorizon(); horizon != 2.0 {
		t.Errorf("Expected ReadHorizon = 2.0 for 4 runes, got %v", horizon)
	}
}

// TestMessageBuffer_NoPrematureEviction 测试条目不会被提前清除
func TestMessageBuffer_NoPrematureEviction(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddMessage("hold")

	// 多次小步推进，到期前条目必须一直可见
	for i := 0; i < 9; i++ {
		if err := buffer.Update(0.1); err != nil {
			t.Fatalf("Update error: %v", err)
		}
		if visible := buffer.VisibleMessages(); len(visible) != 1 {
			t.Fatalf("Entry evicted prematurely at clock=%v", buffer.Clock())
		}
	}

	// 越过到期时刻（浮点累加不保证恰好落在 1.0 上，用 0.2 稳妥越过）
	if err := buffer.Update(0.2); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if visible := buffer.VisibleMessages(); len(visible) != 0 {
		t.Errorf("Expected entry evicted at clock=%v", buffer.Clock())
	}
}

// TestMessageBuffer_LargeIntervalEvictsBacklog 测试大时间跳变一次清除全部积压
// 暂停后恢复等场景会产生很大的 interval，不做特殊处理
func TestMessageBuffer_LargeIntervalEvictsBacklog(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	for i := 0; i < 5; i++ {
		buffer.AddMessage("backlog line")
	}
	if visible := buffer.VisibleMessages(); len(visible) != 5 {
		t.Fatalf("Expected 5 queued messages, got %d", len(visible))
	}

	// 5 条消息的 horizon = 5.0，一次跳过全部
	if err := buffer.Update(60.0); err != nil {
		t.Fatalf("Update(60) error: %v", err)
	}
	if visible := buffer.VisibleMessages(); len(visible) != 0 {
		t.Errorf("Expected all messages evicted after large interval, got %d", len(visible))
	}
	if horizon := buffer.ReadHorizon(); horizon < buffer.Clock() {
		t.Errorf("Horizon %v fell behind clock %v", horizon, buffer.Clock())
	}
}

// TestMessageBuffer_NegativeInterval 测试负的时间间隔被拒绝
// 时钟回退会破坏 horizon 单调不变式，必须报错且不改变任何状态
func TestMessageBuffer_NegativeInterval(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddMessage("still here")
	if err := buffer.Update(0.5); err != nil {
		t.Fatalf("Update(0.5) error: %v", err)
	}

	clockBefore := buffer.Clock()
	horizonBefore := buffer.ReadHorizon()

	err := buffer.Update(-0.1)
	if err == nil {
		t.Fatal("Expected error for negative interval, got nil")
	}

	if buffer.Clock() != clockBefore {
		t.Errorf("Expected clock unchanged after rejected update, got %v (was %v)", buffer.Clock(), clockBefore)
	}
	if buffer.ReadHorizon() != horizonBefore {
		t.Errorf("Expected horizon unchanged after rejected update, got %v (was %v)", buffer.ReadHorizon(), horizonBefore)
	}
	if visible := buffer.VisibleMessages(); len(visible) != 1 {
		t.Errorf("Expected message log unchanged after rejected update, got %d messages", len(visible))
	}
}

// TestMessageBuffer_ZeroIntervalIsNoop 测试 interval=0 是合法的空操作
func TestMessageBuffer_ZeroIntervalIsNoop(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddMessage("tick")
	if err := buffer.Update(0); err != nil {
		t.Fatalf("Update(0) error: %v", err)
	}

	if buffer.Clock() != 0 {
		t.Errorf("Expected clock = 0 after zero tick, got %v", buffer.Clock())
	}
	if visible := buffer.VisibleMessages(); len(visible) != 1 {
		t.Errorf("Expected message untouched by zero tick, got %d messages", len(visible))
	}
}

// TestMessageBuffer_CaptionFIFO 测试字幕严格按插入顺序激活
//
// 场景：AddCaption("X")、AddCaption("Y")
// "X" 到期前只有 "X" 激活，"Y" 在 "X" 清除后才激活
func TestMessageBuffer_CaptionFIFO(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddCaption("X")
	buffer.AddCaption("Y")

	active, ok := buffer.ActiveCaption()
	if !ok || active != "X" {
		t.Fatalf("Expected active caption = X, got %q (ok=%v)", active, ok)
	}

	// X 的到期时刻 1.0，Y 的到期时刻 2.0
	if err := buffer.Update(0.9); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if active, _ := buffer.ActiveCaption(); active != "X" {
		t.Errorf("Expected X still active at clock=0.9, got %q", active)
	}

	if err := buffer.Update(0.2); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	active, ok = buffer.ActiveCaption()
	if !ok || active != "Y" {
		t.Errorf("Expected Y active after X expired, got %q (ok=%v)", active, ok)
	}

	if err := buffer.Update(1.0); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if _, ok := buffer.ActiveCaption(); ok {
		t.Error("Expected no active caption after both expired")
	}
}

// TestMessageBuffer_CaptionOnePerTick 测试字幕每次 tick 最多清除一条
// 大时间跳变不会让整个字幕队列一次清空
func TestMessageBuffer_CaptionOnePerTick(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddCaption("one")
	buffer.AddCaption("two")
	buffer.AddCaption("three")

	// 跳过所有字幕的到期时刻，但每次 tick 只清除队首
	if err := buffer.Update(10.0); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if buffer.PendingCaptions() != 2 {
		t.Errorf("Expected 2 captions after first tick, got %d", buffer.PendingCaptions())
	}

	if err := buffer.Update(0); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if buffer.PendingCaptions() != 1 {
		t.Errorf("Expected 1 caption after second tick, got %d", buffer.PendingCaptions())
	}

	if err := buffer.Update(0); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if buffer.PendingCaptions() != 0 {
		t.Errorf("Expected empty caption queue after third tick, got %d", buffer.PendingCaptions())
	}
}

// TestMessageBuffer_IdempotentDraw 测试 Draw 的幂等性
// 连续两次 Draw 产生完全相同的绘制序列，且不改变任何状态
// （调用方可能在一个逻辑帧里多次绘制，比如多 pass 渲染）
func TestMessageBuffer_IdempotentDraw(t *testing.T) {
	buffer, msgFont, captionFont := newTestBuffer()

	buffer.AddMessage("line one")
	buffer.AddMessage("line two")
	buffer.AddCaption("THE CAPTION")
	if err := buffer.Update(0.1); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	buffer.Draw(nil)
	firstMsgCalls := len(msgFont.calls)
	firstCaptionCalls := len(captionFont.calls)

	clockBefore := buffer.Clock()
	horizonBefore := buffer.ReadHorizon()

	buffer.Draw(nil)

	// 第二次 Draw 追加的调用序列必须与第一次完全一致
	secondMsgCalls := msgFont.calls[firstMsgCalls:]
	if len(secondMsgCalls) != firstMsgCalls {
		t.Fatalf("Expected %d message draw calls on second draw, got %d", firstMsgCalls, len(secondMsgCalls))
	}
	for i, call := range secondMsgCalls {
		if call != msgFont.calls[i] {
			t.Errorf("Draw call %d differs between draws: %+v vs %+v", i, msgFont.calls[i], call)
		}
	}

	secondCaptionCalls := captionFont.calls[firstCaptionCalls:]
	if len(secondCaptionCalls) != firstCaptionCalls {
		t.Fatalf("Expected %d caption draw calls on second draw, got %d", firstCaptionCalls, len(secondCaptionCalls))
	}
	for i, call := range secondCaptionCalls {
		if call != captionFont.calls[i] {
			t.Errorf("Caption call %d differs between draws: %+v vs %+v", i, captionFont.calls[i], call)
		}
	}

	// Draw 不得改变时钟或日志内容
	if buffer.Clock() != clockBefore {
		t.Errorf("Draw changed clock: %v -> %v", clockBefore, buffer.Clock())
	}
	if buffer.ReadHorizon() != horizonBefore {
		t.Errorf("Draw changed horizon: %v -> %v", horizonBefore, buffer.ReadHorizon())
	}
	if visible := buffer.VisibleMessages(); len(visible) != 2 {
		t.Errorf("Draw changed message log, got %d messages", len(visible))
	}
}

// TestMessageBuffer_DrawLayout 测试日志行的堆叠布局
// 最新一行在锚点，较早的行依次向上偏移一个行高
func TestMessageBuffer_DrawLayout(t *testing.T) {
	cfg := config.DefaultUIConfig()
	cfg.Messages.AnchorX = 16
	cfg.Messages.AnchorY = 560
	cfg.Messages.LineHeight = 20

	msgFont := &recordingRenderer{}
	buffer := NewMessageBufferModule(msgFont, &recordingRenderer{}, cfg)

	buffer.AddMessage("oldest")
	buffer.AddMessage("middle")
	buffer.AddMessage("newest")

	buffer.Draw(nil)

	if len(msgFont.calls) != 3 {
		t.Fatalf("Expected 3 draw calls, got %d", len(msgFont.calls))
	}

	expected := []drawCall{
		{x: 16, y: 520, str: "oldest"},
		{x: 16, y: 540, str: "middle"},
		{x: 16, y: 560, str: "newest"},
	}
	for i, want := range expected {
		if msgFont.calls[i] != want {
			t.Errorf("Draw call %d: expected %+v, got %+v", i, want, msgFont.calls[i])
		}
	}
}

// TestMessageBuffer_CaptionCentered 测试字幕水平居中绘制
func TestMessageBuffer_CaptionCentered(t *testing.T) {
	cfg := config.DefaultUIConfig()
	cfg.Messages.CaptionX = 400
	cfg.Messages.CaptionY = 200

	captionFont := &recordingRenderer{}
	buffer := NewMessageBufferModule(&recordingRenderer{}, captionFont, cfg)

	// recordingRenderer.Measure: 10 字符 * 8 = 80 像素宽
	buffer.AddCaption("TEN RUNES!")

	buffer.Draw(nil)

	if len(captionFont.calls) != 1 {
		t.Fatalf("Expected 1 caption draw call, got %d", len(captionFont.calls))
	}
	call := captionFont.calls[0]
	if call.x != 360 || call.y != 200 {
		t.Errorf("Expected caption at (360, 200), got (%v, %v)", call.x, call.y)
	}
}

// TestMessageBuffer_EventualEviction 测试任何条目最终都会被清除
func TestMessageBuffer_EventualEviction(t *testing.T) {
	buffer, _, _ := newTestBuffer()

	buffer.AddMessage("a very long message that takes a while to read through")
	buffer.AddCaption("a caption with some length to it")
	buffer.AddMessage("short")

	// 有限次 tick 后一切都应清除
	for i := 0; i < 200; i++ {
		if err := buffer.Update(0.25); err != nil {
			t.Fatalf("Update error: %v", err)
		}
	}

	if visible := buffer.VisibleMessages(); len(visible) != 0 {
		t.Errorf("Expected all messages evicted eventually, got %d", len(visible))
	}
	if buffer.PendingCaptions() != 0 {
		t.Errorf("Expected all captions evicted eventually, got %d", buffer.PendingCaptions())
	}
}

// TestMessageBuffer_SetTextSpeed 测试文本速度倍率的作用
func TestMessageBuffer_SetTextSpeed(t *testing.T) {
	cfg := config.DefaultUIConfig()
	cfg.Messages.LetterReadDuration = 0.1
	cfg.Messages.MinReadDuration = 0.5
	buffer := NewMessageBufferModule(&recordingRenderer{}, &recordingRenderer{}, cfg)

	// 2 倍速：每字符 0.05 秒，20 字符 = 1.0 秒
	buffer.SetTextSpeed(2.0)
	buffer.AddMessage("12345678901234567890")

	if horizon := buffer.ReadHorizon(); horizon != 1.0 {
		t.Errorf("Expected ReadHorizon = 1.0 at double speed, got %v", horizon)
	}

	// 非法倍率被忽略
	buffer.SetTextSpeed(0)
	buffer.SetTextSpeed(-1)
	buffer.AddMessage("12345678901234567890")
	if horizon := buffer.ReadHorizon(); horizon != 2.0 {
		t.Errorf("Expected ReadHorizon = 2.0 after ignored speed changes, got %v", horizon)
	}
}

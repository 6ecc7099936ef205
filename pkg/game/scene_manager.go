package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 管理游戏的场景栈
//
// 场景以栈的形式组织：标题画面压入游戏画面、游戏画面弹出返回标题。
// 任何时刻只有栈顶场景接收 Update 和 Draw 调用。
// 栈被弹空或调用 Quit() 后，游戏主循环应当终止。
type SceneManager struct {
	stack    []Scene
	quitting bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with an empty stack; use Push to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// Push 将场景压入栈顶，使其成为活动场景
func (sm *SceneManager) Push(scene Scene) {
	sm.stack = append(sm.stack, scene)
	log.Printf("[SceneManager] Pushed scene, stack depth = %d", len(sm.stack))
}

// Pop 弹出栈顶场景
// 弹出最后一个场景等价于退出游戏
func (sm *SceneManager) Pop() {
	if len(sm.stack) == 0 {
		return
	}
	sm.stack = sm.stack[:len(sm.stack)-1]
	log.Printf("[SceneManager] Popped scene, stack depth = %d", len(sm.stack))

	if len(sm.stack) == 0 {
		sm.quitting = true
	}
}

// SwitchTo 用新场景替换栈顶场景
// 栈为空时等价于 Push
func (sm *SceneManager) SwitchTo(scene Scene) {
	if len(sm.stack) == 0 {
		sm.Push(scene)
		return
	}
	sm.stack[len(sm.stack)-1] = scene
}

// Current 返回当前活动的场景（栈顶），栈为空时返回 nil
func (sm *SceneManager) Current() Scene {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// Depth 返回场景栈深度
func (sm *SceneManager) Depth() int {
	return len(sm.stack)
}

// Quit 请求退出游戏主循环
func (sm *SceneManager) Quit() {
	sm.quitting = true
}

// IsQuitting 返回是否已请求退出
func (sm *SceneManager) IsQuitting() bool {
	return sm.quitting
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if current := sm.Current(); current != nil {
		current.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if current := sm.Current(); current != nil {
		current.Draw(screen)
	}
}

package game

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager 管理游戏资源的加载和缓存
//
// 当前版本只承载字体资源：内置的 Go Regular TTF 解析为
// GoTextFaceSource，按字号缓存派生的 GoTextFace。
// 字体面是只读的，缓存后可以被多个场景共享。
type ResourceManager struct {
	fontSource    *text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace
}

// NewResourceManager 创建资源管理器并解析内置字体
//
// 返回：
//   - *ResourceManager: 资源管理器实例
//   - error: 字体数据解析失败时返回错误
func NewResourceManager() (*ResourceManager, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in font: %w", err)
	}

	log.Printf("[ResourceManager] Built-in font loaded")
	return &ResourceManager{
		fontSource:    source,
		fontFaceCache: make(map[string]*text.GoTextFace),
	}, nil
}

// NewFace 返回指定字号的字体面，同一字号的字体面会被缓存复用
func (rm *ResourceManager) NewFace(size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("goregular:%.1f", size)

	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face
}

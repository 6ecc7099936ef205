package game

import "testing"

// TestFontRenderer_Metrics 测试行高与宽度测量
// 只做布局计算，不触碰图形环境
func TestFontRenderer_Metrics(t *testing.T) {
	rm, err := NewResourceManager()
	if err != nil {
		t.Fatalf("NewResourceManager() error: %v", err)
	}

	fr := NewFontRenderer(rm.NewFace(16))

	if lh := fr.LineHeight(); lh <= 0 {
		t.Errorf("Expected positive line height, got %v", lh)
	}

	if w := fr.Measure(""); w != 0 {
		t.Errorf("Expected zero width for empty string, got %v", w)
	}

	short := fr.Measure("hi")
	long := fr.Measure("a considerably longer line")
	if short <= 0 {
		t.Errorf("Expected positive width for non-empty string, got %v", short)
	}
	if long <= short {
		t.Errorf("Expected longer string to measure wider: %v vs %v", long, short)
	}
}

// TestResourceManager_FaceCache 测试同一字号的字体面被缓存复用
func TestResourceManager_FaceCache(t *testing.T) {
	rm, err := NewResourceManager()
	if err != nil {
		t.Fatalf("NewResourceManager() error: %v", err)
	}

	first := rm.NewFace(16)
	second := rm.NewFace(16)
	if first != second {
		t.Error("Expected the same face instance for the same size")
	}

	other := rm.NewFace(32)
	if other == first {
		t.Error("Expected a distinct face for a different size")
	}
}

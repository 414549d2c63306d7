package systems

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func newTestRenderer(t *testing.T, buttons ButtonSource) *PanelRenderSystem {
	t.Helper()
	face, err := LoadFontFace("", 24)
	if err != nil {
		t.Fatalf("LoadFontFace() error = %v", err)
	}
	return NewPanelRenderSystem(buttons, face, color.RGBA{255, 255, 255, 255})
}

// TestLoadFontFace_MissingFile 测试字体文件不存在时报错
func TestLoadFontFace_MissingFile(t *testing.T) {
	if _, err := LoadFontFace("/nonexistent/font.ttf", 24); err == nil {
		t.Error("LoadFontFace() with a missing file succeeded")
	}
}

// TestMeasure_RoundsUp 测试测量结果向上取整
func TestMeasure_RoundsUp(t *testing.T) {
	sys := newTestRenderer(t, stackedButtons("a"))

	for _, label := range []string{"Open Terminal", "i", "Wide WWW label"} {
		w, h := text.Measure(label, sys.face, sys.face.Size)
		want := labelExtent{width: int(math.Ceil(w)), height: int(math.Ceil(h))}

		got := sys.measure(label)
		if got != want {
			t.Errorf("measure(%q) = %+v, want %+v", label, got, want)
		}
		if float64(got.width) < w || float64(got.height) < h {
			t.Errorf("measure(%q) = %+v smaller than (%v, %v)", label, got, w, h)
		}
	}
}

// TestMeasure_Cache 测试同一文字只测量一次
func TestMeasure_Cache(t *testing.T) {
	sys := newTestRenderer(t, stackedButtons("a"))

	// 预置的缓存值不会被重新测量覆盖
	seeded := labelExtent{width: 7, height: 3}
	sys.extents["cached"] = seeded
	if got := sys.measure("cached"); got != seeded {
		t.Errorf("measure() = %+v, want cached %+v", got, seeded)
	}

	first := sys.measure("Open Terminal")
	if cached, ok := sys.extents["Open Terminal"]; !ok || cached != first {
		t.Errorf("extents[%q] = %+v, %v; want %+v", "Open Terminal", cached, ok, first)
	}
	if len(sys.extents) != 2 {
		t.Errorf("cache size = %d, want 2", len(sys.extents))
	}
}

// TestRenderStates 测试每帧按钮状态的计算流程
func TestRenderStates(t *testing.T) {
	buttons := stackedButtons("a", "b")
	for i := range buttons {
		buttons[i].HoverFillColor = color.RGBA{255, 0, 0, 32}
	}
	sys := newTestRenderer(t, buttons)
	sys.extents["a"] = labelExtent{width: 10, height: 20}
	sys.extents["b"] = labelExtent{width: 30, height: 40}

	// 指针位于第二个按钮内部
	states := sys.renderStates(100, 175)
	if len(states) != 2 {
		t.Fatalf("got %d states, want 2", len(states))
	}

	wantA := ComputeRenderState(&buttons[0], false, 10, 20)
	wantB := ComputeRenderState(&buttons[1], true, 30, 40)
	if states[0] != wantA {
		t.Errorf("state a = %+v, want %+v", states[0], wantA)
	}
	if states[1] != wantB {
		t.Errorf("state b = %+v, want %+v", states[1], wantB)
	}
	if states[0].Hovered || !states[1].Hovered {
		t.Errorf("hovered = %v/%v, want false/true", states[0].Hovered, states[1].Hovered)
	}
}

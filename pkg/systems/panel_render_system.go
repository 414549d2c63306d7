package systems

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/decker502/launchpanel/pkg/components"
)

// LoadFontFace 加载按钮文字字体
//
// 参数：
//   - path: TTF/OTF 字体文件路径，为空时使用内嵌的 Go Bold 字体
//   - size: 字号（像素）
func LoadFontFace(path string, size float64) (*text.GoTextFace, error) {
	fontData := gobold.TTF
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		fontData = data
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}

	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}

// labelExtent 文字测量结果（像素，向上取整）
type labelExtent struct {
	width, height int
}

// PanelRenderSystem 面板渲染系统
// 负责每帧绘制所有按钮
//
// 职责：
//   - 清屏（背景色）
//   - 对每个按钮计算悬停状态和 RenderState
//   - 依次绘制边框、填充和居中文字
type PanelRenderSystem struct {
	buttons    ButtonSource
	face       *text.GoTextFace
	background color.RGBA

	// 按钮文字不会变化，测量结果可以缓存
	extents map[string]labelExtent
}

// NewPanelRenderSystem 创建面板渲染系统
func NewPanelRenderSystem(buttons ButtonSource, face *text.GoTextFace, background color.RGBA) *PanelRenderSystem {
	return &PanelRenderSystem{
		buttons:    buttons,
		face:       face,
		background: background,
		extents:    make(map[string]labelExtent),
	}
}

// Draw 绘制一帧
// mouseX, mouseY 为当前指针位置，用于悬停判定
func (s *PanelRenderSystem) Draw(screen *ebiten.Image, mouseX, mouseY int) {
	screen.Fill(s.background)

	for _, state := range s.renderStates(mouseX, mouseY) {
		s.drawButton(screen, state)
	}
}

// renderStates 按注册顺序计算每个按钮本帧的 RenderState
func (s *PanelRenderSystem) renderStates(mouseX, mouseY int) []RenderState {
	var states []RenderState
	for _, button := range s.buttons.All() {
		hovered := IsButtonHovered(&button, mouseX, mouseY)
		extent := s.measure(button.Label)
		states = append(states, ComputeRenderState(&button, hovered, extent.width, extent.height))
	}
	return states
}

func (s *PanelRenderSystem) drawButton(screen *ebiten.Image, state RenderState) {
	// 边框
	fillRect(screen, state.Border, state.BorderColor)

	// 按钮
	fillRect(screen, state.Fill, state.FillColor)

	// 文字（左上角对齐到计算好的位置）
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(state.LabelX), float64(state.LabelY))
	op.ColorScale.ScaleWithColor(state.LabelColor)
	text.Draw(screen, state.Label, s.face, op)
}

func (s *PanelRenderSystem) measure(label string) labelExtent {
	if e, ok := s.extents[label]; ok {
		return e
	}
	w, h := text.Measure(label, s.face, s.face.Size)
	e := labelExtent{width: int(math.Ceil(w)), height: int(math.Ceil(h))}
	s.extents[label] = e
	return e
}

func fillRect(screen *ebiten.Image, r components.Rect, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

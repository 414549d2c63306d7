package systems

import (
	"image/color"

	"github.com/decker502/launchpanel/pkg/components"
	"github.com/decker502/launchpanel/pkg/config"
)

// BorderColor 按钮边框颜色（不透明黑色）
var BorderColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// RenderState 单个按钮在一帧中的绘制参数
// 与渲染器无关，由渲染系统按顺序消费：边框 -> 填充 -> 文字
type RenderState struct {
	// Border 边框矩形（按钮矩形向外扩展 ButtonBorderPx）
	Border      components.Rect
	BorderColor color.RGBA

	// Fill 按钮填充矩形
	Fill      components.Rect
	FillColor color.RGBA

	// Label 文字内容与颜色
	Label      string
	LabelColor color.RGBA
	// LabelX, LabelY 文字左上角坐标（在按钮内居中）
	LabelX int
	LabelY int

	// Hovered 是否处于悬停状态
	Hovered bool
}

// ComputeRenderState 计算按钮的绘制参数
//
// 参数：
//   - button: 按钮
//   - hovered: 是否悬停（由 IsButtonHovered 计算）
//   - textWidth, textHeight: 渲染器测量得到的文字尺寸
//
// 文字居中使用整数除法，差值为奇数时可能偏差 1 像素
func ComputeRenderState(button *components.LauncherButton, hovered bool, textWidth, textHeight int) RenderState {
	r := button.Rect

	fill := button.FillColor
	if hovered {
		fill = button.HoverFillColor
	}

	return RenderState{
		Border:      r.Inset(config.ButtonBorderPx),
		BorderColor: BorderColor,
		Fill:        r,
		FillColor:   fill,
		Label:       button.Label,
		LabelColor:  button.TextColor,
		LabelX:      r.X + (r.Width-textWidth)/2,
		LabelY:      r.Y + (r.Height-textHeight)/2,
		Hovered:     hovered,
	}
}

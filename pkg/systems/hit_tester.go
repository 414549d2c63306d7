package systems

import "github.com/decker502/launchpanel/pkg/components"

// IsButtonHovered 检测点 (x, y) 是否位于按钮内部
//
// 严格内部判定：边界上的像素不算悬停，与边框占据边界像素的绘制约定一致。
// 悬停高亮和点击分发使用同一个判定，没有单独的"可点击区域"。
// 按钮矩形重叠时，同一坐标可能同时命中多个按钮。
func IsButtonHovered(button *components.LauncherButton, x, y int) bool {
	r := button.Rect
	return x > r.X && x < r.X+r.Width &&
		y > r.Y && y < r.Y+r.Height
}

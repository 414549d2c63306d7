package components

import "image/color"

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Inset returns the rectangle grown by d pixels on every side.
// A negative d shrinks it.
func (r Rect) Inset(d int) Rect {
	return Rect{
		X:      r.X - d,
		Y:      r.Y - d,
		Width:  r.Width + 2*d,
		Height: r.Height + 2*d,
	}
}

// LauncherButton 启动器按钮（纯数据）
// 一个按钮对应配置文件中的一个 button_N 配置节
//
// 设计原则：
//   - 构建完成后不再修改
//   - Rect 由布局计算得出，不来自配置文件
//   - Command 原样交给 shell 执行，不做任何解析
type LauncherButton struct {
	// Label 按钮上显示的文字（非空）
	Label string
	// Command 点击后执行的 shell 命令（非空）
	Command string

	// Rect 按钮矩形区域（像素，自动计算）
	Rect Rect

	// FillColor 正常状态的背景色
	FillColor color.RGBA
	// HoverFillColor 鼠标悬停时的背景色
	HoverFillColor color.RGBA
	// TextColor 文字颜色
	TextColor color.RGBA

	// Section 按钮来源的配置节序号（button_N 中的 N，从 1 开始）
	Section int
}

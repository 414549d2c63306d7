package config

// 布局配置常量
// 面板布局固定为等间距的竖直按钮栈，几何参数不从配置文件读取

const (
	// MaxButtons 是面板最多显示的按钮数量
	// 对应配置节 button_1 ~ button_5
	MaxButtons = 5

	// ButtonBorderPx 是按钮外边框的宽度（像素）
	// 边框绘制在按钮矩形之外，不与按钮本身重叠
	ButtonBorderPx = 2

	// ButtonPadding 是按钮左右两侧与窗口边缘的距离（像素）
	ButtonPadding = 50

	// ButtonHeight 是每个按钮的高度（像素）
	// 按钮之间的间隔同样为一个按钮高度
	ButtonHeight = 50

	// WindowWidth 是面板窗口的逻辑宽度（像素）
	WindowWidth = 1360

	// WindowHeight 是面板窗口的逻辑高度（像素）
	WindowHeight = 768
)

// ButtonRect 返回第 index 个按钮（从 0 开始）的矩形区域
// 返回值：x, y, width, height
//
// 计算方式：
//   - x = ButtonPadding
//   - y = (2*index + 1) * ButtonHeight
//   - width = WindowWidth - 2*ButtonPadding
//   - height = ButtonHeight
func ButtonRect(index int) (int, int, int, int) {
	x := ButtonPadding
	y := (2*index + 1) * ButtonHeight
	width := WindowWidth - 2*ButtonPadding
	return x, y, width, ButtonHeight
}

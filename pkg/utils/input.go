// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入状态
// 用于统一处理鼠标和触摸输入
type InputState struct {
	// 指针位置（鼠标或第一个触点），用于悬停判定
	X, Y int
	// 是否有鼠标点击（任意按键）/触摸刚刚发生
	JustPressed bool
	// 点击/触摸位置
	PressX, PressY int
	// 点击时是否按住 Ctrl（macOS 上为 Cmd），此时点击复制命令而不是启动
	CopyModifier bool
	// 是否有活动的触摸
	IsTouching bool
}

// point 一个设备坐标
type point struct {
	x, y int
}

// rawInput 从 ebiten 采集的原始输入
type rawInput struct {
	// 本帧新按下的触点位置
	touchesJustPressed []point
	// 所有活动触点位置
	touches []point
	// 鼠标位置
	cursor point
	// 鼠标按键
	leftJustPressed   bool
	middleJustPressed bool
	rightJustPressed  bool
	// Ctrl 或 Meta 是否按住
	copyModifier bool
}

// PollInput 获取当前帧的输入状态
// 同时支持鼠标点击和触摸输入，优先检测触摸
// 必须在 ebiten 的 Update 中调用
func PollInput() InputState {
	raw := rawInput{
		leftJustPressed:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		middleJustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle),
		rightJustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		copyModifier:      ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
	}
	raw.cursor.x, raw.cursor.y = ebiten.CursorPosition()

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		raw.touchesJustPressed = append(raw.touchesJustPressed, point{x, y})
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		raw.touches = append(raw.touches, point{x, y})
	}

	return mergeInput(raw)
}

// mergeInput 把原始输入合并为 InputState
//
// 规则：
//   - 新触摸视为点击，位置取第一个新触点
//   - 左键、中键、右键都视为点击
//   - 有活动触摸时指针位置取第一个触点，否则取鼠标位置
func mergeInput(raw rawInput) InputState {
	state := InputState{
		X: raw.cursor.x,
		Y: raw.cursor.y,
	}

	// 首先检查触摸输入（触摸屏）
	if len(raw.touches) > 0 {
		state.X, state.Y = raw.touches[0].x, raw.touches[0].y
		state.IsTouching = true
	}
	if len(raw.touchesJustPressed) > 0 {
		p := raw.touchesJustPressed[0]
		state.JustPressed = true
		state.PressX, state.PressY = p.x, p.y
		state.X, state.Y = p.x, p.y
		state.IsTouching = true
	} else if raw.leftJustPressed || raw.middleJustPressed || raw.rightJustPressed {
		// 其次检查鼠标按键
		state.JustPressed = true
		state.PressX, state.PressY = raw.cursor.x, raw.cursor.y
	}

	if state.JustPressed {
		state.CopyModifier = raw.copyModifier
	}

	return state
}

package systems

import (
	"iter"

	"github.com/rs/zerolog"

	"github.com/decker502/launchpanel/pkg/components"
	"github.com/decker502/launchpanel/pkg/game"
)

// ButtonSource 按钮来源（通常是 *game.ButtonRegistry）
type ButtonSource interface {
	All() iter.Seq2[int, components.LauncherButton]
}

// LaunchRecorder 记录成功的启动（通常是 *game.LaunchHistory）
type LaunchRecorder interface {
	Record(label, command string)
}

// DispatchResult 一次点击的分发结果
type DispatchResult struct {
	// Matched 命中的按钮数量
	Matched int
	// Launched 成功启动的命令数量
	Launched int
	// Failures 启动失败的按钮
	Failures []*game.LaunchError
}

// LaunchDispatchSystem 点击分发系统
// 负责把一次点击映射为零个或多个进程启动
//
// 职责：
//   - 按注册顺序遍历所有按钮
//   - 对每个命中的按钮启动命令（命中一个后不停止，重叠按钮会各自启动）
//   - 启动失败只记录日志，不中断面板
type LaunchDispatchSystem struct {
	buttons  ButtonSource
	launcher game.Launcher
	history  LaunchRecorder
	log      zerolog.Logger
}

// NewLaunchDispatchSystem 创建点击分发系统
// history 可为 nil（不记录启动历史）
func NewLaunchDispatchSystem(buttons ButtonSource, launcher game.Launcher, history LaunchRecorder, logger zerolog.Logger) *LaunchDispatchSystem {
	return &LaunchDispatchSystem{
		buttons:  buttons,
		launcher: launcher,
		history:  history,
		log:      logger.With().Str("component", "LaunchDispatcher").Logger(),
	}
}

// Dispatch 处理一次点击
// x, y 为点击时的设备坐标
func (s *LaunchDispatchSystem) Dispatch(x, y int) DispatchResult {
	var result DispatchResult

	for _, button := range s.buttons.All() {
		if !IsButtonHovered(&button, x, y) {
			continue
		}
		result.Matched++

		s.log.Info().Str("label", button.Label).Int("x", x).Int("y", y).Msg("attempting to launch")

		if err := s.launcher.Launch(button.Command); err != nil {
			launchErr := &game.LaunchError{Label: button.Label, Command: button.Command, Err: err}
			result.Failures = append(result.Failures, launchErr)
			s.log.Error().Err(err).Str("label", button.Label).Str("command", button.Command).Msg("error launching program")
			continue
		}

		result.Launched++
		if s.history != nil {
			s.history.Record(button.Label, button.Command)
		}
	}

	if result.Matched == 0 {
		s.log.Debug().Int("x", x).Int("y", y).Msg("click outside every button")
	}
	return result
}

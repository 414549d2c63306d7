// Package app 提供面板应用的核心包装器
//
// 该包把按钮注册表、点击分发、剪贴板复制和渲染系统组装成一个 ebiten.Game，
// 并负责主循环的启动和关闭。命令行入口通过 Run() 调用。
package app

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"

	"github.com/decker502/launchpanel/pkg/components"
	"github.com/decker502/launchpanel/pkg/config"
	"github.com/decker502/launchpanel/pkg/game"
	"github.com/decker502/launchpanel/pkg/logger"
	"github.com/decker502/launchpanel/pkg/systems"
	"github.com/decker502/launchpanel/pkg/utils"
)

// AppName 用作 gdata 存储目录名
const AppName = "launchpanel"

// PanelState 主循环状态
type PanelState int

const (
	// StateRunning 主循环运行中
	StateRunning PanelState = iota
	// StateTerminated 收到退出请求，主循环结束（不可逆）
	StateTerminated
)

// String 返回状态名
func (s PanelState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("PanelState(%d)", int(s))
	}
}

// commandCopier 把命中按钮的命令复制到剪贴板
type commandCopier interface {
	CopyAt(x, y int) (components.LauncherButton, bool)
}

// App 是面板应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	ctx   context.Context
	state PanelState
	panel config.PanelConfig

	registry   *game.ButtonRegistry
	history    *game.LaunchHistory
	dispatcher *systems.LaunchDispatchSystem
	clipboard  commandCopier
	renderer   *systems.PanelRenderSystem

	// 上一次轮询到的指针位置，Draw 用它做悬停判定
	mouseX, mouseY int

	// 以下依赖在测试中替换
	pollInput     func() utils.InputState
	windowClosing func() bool

	log zerolog.Logger
}

// NewApp 创建并初始化面板应用
//
// ctx 取消时（例如收到 SIGINT/SIGTERM）主循环在下一个 tick 退出
func NewApp(ctx context.Context, cfg *config.LauncherConfig, log zerolog.Logger) (*App, error) {
	face, err := systems.LoadFontFace(cfg.Panel.FontPath, cfg.Panel.FontSize)
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	history := game.NewLaunchHistory(game.OpenStorage(AppName, log), log)

	return newApp(ctx, cfg, game.NewShellLauncher(), history, face, log)
}

func newApp(ctx context.Context, cfg *config.LauncherConfig, launcher game.Launcher, history *game.LaunchHistory, face *text.GoTextFace, log zerolog.Logger) (*App, error) {
	registry, err := game.NewButtonRegistry(cfg.Buttons)
	if err != nil {
		return nil, fmt.Errorf("按钮注册失败: %w", err)
	}

	a := &App{
		ctx:           ctx,
		state:         StateRunning,
		panel:         cfg.Panel,
		registry:      registry,
		history:       history,
		clipboard:     systems.NewClipboardSystem(registry, log),
		renderer:      systems.NewPanelRenderSystem(registry, face, cfg.Panel.Background),
		pollInput:     utils.PollInput,
		windowClosing: ebiten.IsWindowBeingClosed,
		log:           logger.Component(log, "App"),
	}

	// nil 指针不能直接赋给接口
	var recorder systems.LaunchRecorder
	if history != nil {
		recorder = history
	}
	a.dispatcher = systems.NewLaunchDispatchSystem(registry, launcher, recorder, log)

	a.log.Debug().Int("buttons", registry.Len()).Msg("panel initialized")
	return a, nil
}

// State 返回当前主循环状态
func (a *App) State() PanelState {
	return a.state
}

// Registry 返回按钮注册表
func (a *App) Registry() *game.ButtonRegistry {
	return a.registry
}

// Update 处理输入并检查退出请求
// 每个 tick 调用一次
func (a *App) Update() error {
	if a.state == StateTerminated {
		return ebiten.Termination
	}

	a.handleInput(a.pollInput())

	if reason, ok := a.quitRequested(); ok {
		a.terminate(reason)
		return ebiten.Termination
	}
	return nil
}

// handleInput 处理一帧的输入
func (a *App) handleInput(in utils.InputState) {
	a.mouseX, a.mouseY = in.X, in.Y

	if !in.JustPressed {
		return
	}
	// Ctrl+点击只复制命令
	if in.CopyModifier {
		a.clipboard.CopyAt(in.PressX, in.PressY)
		return
	}
	a.dispatcher.Dispatch(in.PressX, in.PressY)
}

// quitRequested 检查是否收到退出请求
func (a *App) quitRequested() (string, bool) {
	select {
	case <-a.ctx.Done():
		return "signal", true
	default:
	}

	if a.windowClosing() {
		return "window closed", true
	}
	return "", false
}

// terminate 切换到 StateTerminated
func (a *App) terminate(reason string) {
	if a.state == StateTerminated {
		return
	}
	a.state = StateTerminated
	a.log.Info().Str("reason", reason).Msg("quit requested")
}

// Draw 绘制面板
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.mouseX, a.mouseY)
}

// Layout 返回面板的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// Close 释放按钮注册表并保存启动历史
// 可重复调用
func (a *App) Close() {
	a.registry.Release()

	if a.history == nil {
		return
	}
	if err := a.history.Save(); err != nil {
		a.log.Warn().Err(err).Msg("failed to save launch history")
	}
}

// applyWindowSettings 设置窗口和帧率
func applyWindowSettings(panel config.PanelConfig) {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(panel.Title)

	// 关闭窗口由 Update 处理，保证退出前保存历史
	ebiten.SetWindowClosingHandled(true)

	tps, vsync := tickSettings(panel.TPS)
	ebiten.SetTPS(tps)
	ebiten.SetVsyncEnabled(vsync)
}

// tickSettings 把配置中的 tps 映射为 ebiten 的 TPS 和 vsync 设置
// 0 表示不限速：每帧更新一次，关闭垂直同步
func tickSettings(tps int) (int, bool) {
	if tps == 0 {
		return ebiten.SyncWithFPS, false
	}
	return tps, true
}

// Run 创建面板并运行主循环，直到窗口关闭或 ctx 取消
func Run(ctx context.Context, cfg *config.LauncherConfig, log zerolog.Logger) error {
	a, err := NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	applyWindowSettings(cfg.Panel)

	a.log.Info().
		Str("title", cfg.Panel.Title).
		Int("tps", cfg.Panel.TPS).
		Int("buttons", a.registry.Len()).
		Msg("starting panel")

	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("主循环异常退出: %w", err)
	}

	a.log.Info().Msg("panel closed")
	return nil
}

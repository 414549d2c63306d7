package game

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher 进程启动接口
// 启动后立即返回，不等待子进程结束，也不捕获输出
type Launcher interface {
	Launch(command string) error
}

// LaunchError 进程启动失败
// 可恢复错误：记录日志后面板继续运行
type LaunchError struct {
	Label   string
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %q (%s): %v", e.Label, e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ShellLauncher 通过宿主 shell 执行命令
//
// 命令字符串原样交给 shell，不做转义或校验：配置文件被视为可信的命令列表。
type ShellLauncher struct {
	// Shell 为空时使用平台默认值（/bin/sh 或 cmd）
	Shell string
}

// NewShellLauncher 创建使用平台默认 shell 的启动器
func NewShellLauncher() *ShellLauncher {
	return &ShellLauncher{}
}

// Launch 启动命令并立即返回
// 仅当进程无法启动时返回错误；命令本身的退出码不会被跟踪
func (l *ShellLauncher) Launch(command string) error {
	cmd := l.command(command)
	if err := cmd.Start(); err != nil {
		return err
	}

	// 回收子进程，避免僵尸进程；退出状态被丢弃
	go func() { _ = cmd.Wait() }()
	return nil
}

func (l *ShellLauncher) command(command string) *exec.Cmd {
	shell := l.Shell
	if runtime.GOOS == "windows" {
		if shell == "" {
			shell = "cmd"
		}
		return exec.Command(shell, "/C", command)
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return exec.Command(shell, "-c", command)
}

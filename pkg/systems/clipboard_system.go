package systems

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/decker502/launchpanel/pkg/components"
)

// ClipboardSystem 命令复制系统
// Ctrl+点击按钮时把按钮的命令复制到系统剪贴板
//
// 与点击分发不同，只复制注册顺序中第一个命中的按钮
type ClipboardSystem struct {
	buttons     ButtonSource
	write       func(string) error
	unsupported bool
	log         zerolog.Logger
}

// NewClipboardSystem 创建命令复制系统，使用系统剪贴板
func NewClipboardSystem(buttons ButtonSource, logger zerolog.Logger) *ClipboardSystem {
	return &ClipboardSystem{
		buttons:     buttons,
		write:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
		log:         logger.With().Str("component", "Clipboard").Logger(),
	}
}

// CopyAt 复制 (x, y) 处按钮的命令
// 返回被复制的按钮；没有命中或复制失败时 ok 为 false
func (s *ClipboardSystem) CopyAt(x, y int) (button components.LauncherButton, ok bool) {
	for _, b := range s.buttons.All() {
		if !IsButtonHovered(&b, x, y) {
			continue
		}

		if s.unsupported {
			s.log.Warn().Str("label", b.Label).Msg("clipboard not supported on this system")
			return b, false
		}
		if err := s.write(b.Command); err != nil {
			s.log.Error().Err(err).Str("label", b.Label).Msg("failed to copy command")
			return b, false
		}
		s.log.Info().Str("label", b.Label).Msg("command copied to clipboard")
		return b, true
	}
	return components.LauncherButton{}, false
}

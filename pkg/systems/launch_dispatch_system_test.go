package systems

import (
	"errors"
	"image/color"
	"iter"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/decker502/launchpanel/pkg/components"
	"github.com/decker502/launchpanel/pkg/config"
)

// sliceSource 测试用按钮来源
type sliceSource []components.LauncherButton

func (s sliceSource) All() iter.Seq2[int, components.LauncherButton] {
	return slices.All([]components.LauncherButton(s))
}

// fakeLauncher 记录启动过的命令，可对指定命令返回错误
type fakeLauncher struct {
	launched []string
	fail     map[string]error
}

func (f *fakeLauncher) Launch(command string) error {
	if err := f.fail[command]; err != nil {
		return err
	}
	f.launched = append(f.launched, command)
	return nil
}

// fakeRecorder 记录写入历史的按钮
type fakeRecorder struct {
	labels []string
}

func (f *fakeRecorder) Record(label, command string) {
	f.labels = append(f.labels, label)
}

func stackedButtons(labels ...string) sliceSource {
	var buttons sliceSource
	for i, label := range labels {
		x, y, w, h := config.ButtonRect(i)
		buttons = append(buttons, components.LauncherButton{
			Label:     label,
			Command:   "cmd-" + label,
			Rect:      components.Rect{X: x, Y: y, Width: w, Height: h},
			FillColor: color.RGBA{0, 0, 255, 255},
			Section:   i + 1,
		})
	}
	return buttons
}

// TestDispatch_SingleHit 测试命中一个按钮时启动一次
func TestDispatch_SingleHit(t *testing.T) {
	buttons := stackedButtons("a", "b", "c")
	launcher := &fakeLauncher{}
	recorder := &fakeRecorder{}
	sys := NewLaunchDispatchSystem(buttons, launcher, recorder, zerolog.Nop())

	// 第二个按钮位于 y ∈ (150, 200)
	result := sys.Dispatch(100, 175)

	if result.Matched != 1 || result.Launched != 1 {
		t.Fatalf("result = %+v, want 1 matched and 1 launched", result)
	}
	if !slices.Equal(launcher.launched, []string{"cmd-b"}) {
		t.Errorf("launched = %v, want [cmd-b]", launcher.launched)
	}
	if !slices.Equal(recorder.labels, []string{"b"}) {
		t.Errorf("recorded = %v, want [b]", recorder.labels)
	}
}

// TestDispatch_Miss 测试点击按钮之外不启动任何命令
func TestDispatch_Miss(t *testing.T) {
	buttons := stackedButtons("a", "b")
	launcher := &fakeLauncher{}
	sys := NewLaunchDispatchSystem(buttons, launcher, nil, zerolog.Nop())

	points := [][2]int{
		{10, 10},   // 左上角空白
		{100, 125}, // 两个按钮之间
		{50, 75},   // 左边界
		{100, 100}, // 下边界
		{1350, 75}, // 右侧空白
	}
	for _, p := range points {
		result := sys.Dispatch(p[0], p[1])
		if result.Matched != 0 || result.Launched != 0 {
			t.Errorf("Dispatch(%d, %d) = %+v, want no match", p[0], p[1], result)
		}
	}
	if len(launcher.launched) != 0 {
		t.Errorf("launched = %v, want none", launcher.launched)
	}
}

// TestDispatch_Overlapping 测试重叠按钮各自启动
func TestDispatch_Overlapping(t *testing.T) {
	buttons := sliceSource{
		{Label: "first", Command: "one", Rect: components.Rect{X: 0, Y: 0, Width: 200, Height: 200}},
		{Label: "second", Command: "two", Rect: components.Rect{X: 100, Y: 100, Width: 200, Height: 200}},
		{Label: "third", Command: "three", Rect: components.Rect{X: 500, Y: 500, Width: 10, Height: 10}},
	}
	launcher := &fakeLauncher{}
	recorder := &fakeRecorder{}
	sys := NewLaunchDispatchSystem(buttons, launcher, recorder, zerolog.Nop())

	result := sys.Dispatch(150, 150)

	if result.Matched != 2 || result.Launched != 2 {
		t.Fatalf("result = %+v, want 2 matched and 2 launched", result)
	}
	// 按注册顺序启动
	if !slices.Equal(launcher.launched, []string{"one", "two"}) {
		t.Errorf("launched = %v, want [one two]", launcher.launched)
	}
	if !slices.Equal(recorder.labels, []string{"first", "second"}) {
		t.Errorf("recorded = %v, want [first second]", recorder.labels)
	}
}

// TestDispatch_FailureContinues 测试启动失败不影响其余按钮
func TestDispatch_FailureContinues(t *testing.T) {
	buttons := sliceSource{
		{Label: "broken", Command: "missing", Rect: components.Rect{X: 0, Y: 0, Width: 200, Height: 200}},
		{Label: "working", Command: "ok", Rect: components.Rect{X: 0, Y: 0, Width: 200, Height: 200}},
	}
	startErr := errors.New("exec: not found")
	launcher := &fakeLauncher{fail: map[string]error{"missing": startErr}}
	recorder := &fakeRecorder{}
	sys := NewLaunchDispatchSystem(buttons, launcher, recorder, zerolog.Nop())

	result := sys.Dispatch(10, 10)

	if result.Matched != 2 || result.Launched != 1 {
		t.Fatalf("result = %+v, want 2 matched and 1 launched", result)
	}
	if len(result.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(result.Failures))
	}
	failure := result.Failures[0]
	if failure.Label != "broken" || failure.Command != "missing" {
		t.Errorf("failure = %+v, want broken/missing", failure)
	}
	if !errors.Is(failure, startErr) {
		t.Error("failure does not wrap the launcher error")
	}
	// 失败的启动不写入历史
	if !slices.Equal(recorder.labels, []string{"working"}) {
		t.Errorf("recorded = %v, want [working]", recorder.labels)
	}
}

// TestDispatch_EndToEnd 测试从配置加载到点击启动的完整流程
func TestDispatch_EndToEnd(t *testing.T) {
	data := []byte(`button_1:
  label: Open Terminal
  command: gnome-terminal
  red: 0
  green: 0
  blue: 255
  alpha: 255
  hover_red: 255
  hover_green: 0
  hover_blue: 0
  hover_alpha: 32
  text_red: 255
  text_green: 255
  text_blue: 255
  text_alpha: 255
`)
	cfg, err := config.LoadBytes("panel.yaml", config.FormatYAML, data, config.LoadOptions{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadBytes() error = %v", err)
	}

	launcher := &fakeLauncher{}
	sys := NewLaunchDispatchSystem(sliceSource(cfg.Buttons), launcher, nil, zerolog.Nop())

	result := sys.Dispatch(100, 75)

	if result.Launched != 1 {
		t.Fatalf("Launched = %d, want 1", result.Launched)
	}
	if !slices.Equal(launcher.launched, []string{"gnome-terminal"}) {
		t.Errorf("launched = %v, want [gnome-terminal]", launcher.launched)
	}
}

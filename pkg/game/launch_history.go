package game

import (
	"fmt"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// LaunchRecord 单个按钮的启动记录
type LaunchRecord struct {
	Label          string    `yaml:"label"`          // 按钮文字
	Command        string    `yaml:"command"`        // 最近一次启动的命令
	Count          int       `yaml:"count"`          // 累计启动次数
	LastLaunchedAt time.Time `yaml:"lastLaunchedAt"` // 最近一次启动时间
}

// launchHistoryData 持久化格式
type launchHistoryData struct {
	Records []LaunchRecord `yaml:"records"`
}

// 存储路径常量
const (
	historyObject   = "history"
	historyProperty = "launches"
)

// LaunchHistory 启动历史管理器
// 负责启动记录的加载、保存和内存管理
//
// 持久化失败不是致命错误：记录保留在内存中，面板继续运行
type LaunchHistory struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	records      map[string]*LaunchRecord
	now          func() time.Time
	log          zerolog.Logger
}

// NewLaunchHistory 创建启动历史管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存记录）
//   - logger: 日志记录器
//
// 加载失败时记录警告并从空历史开始
func NewLaunchHistory(gdataManager *gdata.Manager, logger zerolog.Logger) *LaunchHistory {
	h := &LaunchHistory{
		gdataManager: gdataManager,
		records:      make(map[string]*LaunchRecord),
		now:          time.Now,
		log:          logger.With().Str("component", "LaunchHistory").Logger(),
	}

	if err := h.Load(); err != nil {
		h.log.Warn().Err(err).Msg("failed to load launch history, starting empty")
	}
	return h
}

// OpenStorage 打开面板的 gdata 存储
// 失败时返回 nil，调用方以降级模式运行
func OpenStorage(appName string, logger zerolog.Logger) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn().Err(err).Str("app", appName).Msg("gdata storage unavailable, history kept in memory")
		return nil
	}
	return manager
}

// Load 从 gdata 加载启动历史
//
// 如果 gdataManager 为 nil 或数据不存在，历史为空
func (h *LaunchHistory) Load() error {
	h.records = make(map[string]*LaunchRecord)

	// 降级模式：无法持久化
	if h.gdataManager == nil {
		return nil
	}

	if !h.gdataManager.ObjectPropExists(historyObject, historyProperty) {
		return nil
	}

	data, err := h.gdataManager.LoadObjectProp(historyObject, historyProperty)
	if err != nil {
		return fmt.Errorf("failed to load launch history: %w", err)
	}

	var loaded launchHistoryData
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal launch history: %w", err)
	}

	for i := range loaded.Records {
		rec := loaded.Records[i]
		h.records[rec.Label] = &rec
	}
	h.log.Debug().Int("records", len(h.records)).Msg("launch history loaded")
	return nil
}

// Save 保存启动历史到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (h *LaunchHistory) Save() error {
	if h.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(launchHistoryData{Records: h.Records()})
	if err != nil {
		return fmt.Errorf("failed to marshal launch history: %w", err)
	}

	if err := h.gdataManager.SaveObjectProp(historyObject, historyProperty, data); err != nil {
		return fmt.Errorf("failed to save launch history: %w", err)
	}
	return nil
}

// Record 记录一次成功的启动并立即持久化
// 保存失败只记录警告
func (h *LaunchHistory) Record(label, command string) {
	rec, ok := h.records[label]
	if !ok {
		rec = &LaunchRecord{Label: label}
		h.records[label] = rec
	}
	rec.Command = command
	rec.Count++
	rec.LastLaunchedAt = h.now()

	if err := h.Save(); err != nil {
		h.log.Warn().Err(err).Str("label", label).Msg("launch recorded in memory only")
	}
}

// Records 返回所有启动记录，按最近启动时间倒序排列
func (h *LaunchHistory) Records() []LaunchRecord {
	out := make([]LaunchRecord, 0, len(h.records))
	for _, rec := range h.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastLaunchedAt.Equal(out[j].LastLaunchedAt) {
			return out[i].LastLaunchedAt.After(out[j].LastLaunchedAt)
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Get 返回指定按钮的启动记录
func (h *LaunchHistory) Get(label string) (LaunchRecord, bool) {
	rec, ok := h.records[label]
	if !ok {
		return LaunchRecord{}, false
	}
	return *rec, true
}

// Clear 清空启动历史并持久化
func (h *LaunchHistory) Clear() error {
	h.records = make(map[string]*LaunchRecord)
	return h.Save()
}

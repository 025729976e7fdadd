package timex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingxi-ai/retrieva/core"
)

func TestExtractTimeInfo(t *testing.T) {
	m := NewManager()

	t.Run("explicit day date", func(t *testing.T) {
		info := m.ExtractTimeInfo("会议于2023年5月1日召开")
		assert.True(t, info.Dates.Has("2023年5月1日"))
	})

	t.Run("all granularities extracted", func(t *testing.T) {
		info := m.ExtractTimeInfo("2022年3月发布，2023年生效")
		assert.True(t, info.Dates.Has("2022年3月"))
		assert.True(t, info.Dates.Has("2023年"))
	})

	t.Run("current keywords", func(t *testing.T) {
		info := m.ExtractTimeInfo("王明现在的职位是什么")
		assert.Equal(t, core.TimeTypeCurrent, info.Type)
		assert.True(t, info.RelativeTime.Has("现在"))
	})

	t.Run("past keywords", func(t *testing.T) {
		info := m.ExtractTimeInfo("他之前担任站长")
		assert.Equal(t, core.TimeTypePast, info.Type)
	})

	t.Run("future keywords", func(t *testing.T) {
		info := m.ExtractTimeInfo("未来的规划")
		assert.Equal(t, core.TimeTypeFuture, info.Type)
	})

	t.Run("last matching category wins", func(t *testing.T) {
		// Both current and future keywords present; future is evaluated last.
		info := m.ExtractTimeInfo("现在规划未来的工作")
		assert.Equal(t, core.TimeTypeFuture, info.Type)
		assert.True(t, info.RelativeTime.Has("现在"))
		assert.True(t, info.RelativeTime.Has("未来"))
	})

	t.Run("no temporal cues", func(t *testing.T) {
		info := m.ExtractTimeInfo("铁路线路建筑限界")
		assert.Equal(t, core.TimeTypeNone, info.Type)
		assert.Empty(t, info.Dates)
	})
}

func TestNormalize(t *testing.T) {
	m := NewManager()

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"full date", "2023年5月1日", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"month defaults day to 1", "2023年5月", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), true},
		{"year defaults month and day to 1", "2023年", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"two-digit month and day", "2022年12月31日", time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"unparseable text", "第三季度", time.Time{}, false},
		{"invalid month", "2023年13月", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Normalize(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	m := NewManager()

	assert.Equal(t, -1, m.Compare("2022年5月5日", "2023年1月1日"))
	assert.Equal(t, 1, m.Compare("2023年1月1日", "2022年5月5日"))
	assert.Equal(t, 0, m.Compare("2023年1月1日", "2023年1月1日"))

	// Unnormalizable inputs compare as equal.
	assert.Equal(t, 0, m.Compare("不是日期", "2023年1月1日"))
	assert.Equal(t, 0, m.Compare("2023年1月1日", "不是日期"))
}

func TestLatest(t *testing.T) {
	m := NewManager()

	t.Run("picks maximum", func(t *testing.T) {
		latest, ok := m.Latest(core.NewStringSet("2022年5月5日", "2023年1月1日"))
		require.True(t, ok)
		assert.Equal(t, "2023年1月1日", latest)
	})

	t.Run("mixed granularity", func(t *testing.T) {
		latest, ok := m.Latest(core.NewStringSet("2023年", "2023年6月", "2022年12月31日"))
		require.True(t, ok)
		assert.Equal(t, "2023年6月", latest)
	})

	t.Run("empty set", func(t *testing.T) {
		_, ok := m.Latest(core.NewStringSet())
		assert.False(t, ok)
	})
}

func TestRelevance(t *testing.T) {
	m := NewManager()

	t.Run("type match", func(t *testing.T) {
		q := core.TimeInfo{Dates: core.NewStringSet(), RelativeTime: core.NewStringSet(), Type: core.TimeTypePast}
		c := core.TimeInfo{Dates: core.NewStringSet(), RelativeTime: core.NewStringSet(), Type: core.TimeTypePast}
		assert.InDelta(t, 0.3, m.Relevance(q, c), 1e-9)
	})

	t.Run("none types do not count as a match", func(t *testing.T) {
		q := core.NewTimeInfo()
		c := core.NewTimeInfo()
		assert.Zero(t, m.Relevance(q, c))
	})

	t.Run("date overlap", func(t *testing.T) {
		q := core.TimeInfo{Dates: core.NewStringSet("2023年5月1日"), RelativeTime: core.NewStringSet(), Type: core.TimeTypeNone}
		c := core.TimeInfo{Dates: core.NewStringSet("2023年5月1日", "2022年"), RelativeTime: core.NewStringSet(), Type: core.TimeTypeNone}
		assert.InDelta(t, 0.4, m.Relevance(q, c), 1e-9)
	})

	t.Run("relative overlap", func(t *testing.T) {
		q := core.TimeInfo{Dates: core.NewStringSet(), RelativeTime: core.NewStringSet("现在"), Type: core.TimeTypeNone}
		c := core.TimeInfo{Dates: core.NewStringSet(), RelativeTime: core.NewStringSet("现在"), Type: core.TimeTypeNone}
		assert.InDelta(t, 0.3, m.Relevance(q, c), 1e-9)
	})

	t.Run("freshness bonus for current queries", func(t *testing.T) {
		q := core.TimeInfo{Dates: core.NewStringSet(), RelativeTime: core.NewStringSet(), Type: core.TimeTypeCurrent}
		c := core.TimeInfo{Dates: core.NewStringSet("2023年5月1日"), RelativeTime: core.NewStringSet(), Type: core.TimeTypeNone}
		assert.InDelta(t, 0.2, m.Relevance(q, c), 1e-9)
	})

	t.Run("no bonus without normalizable date", func(t *testing.T) {
		q := core.TimeInfo{Dates: core.NewStringSet(), RelativeTime: core.NewStringSet(), Type: core.TimeTypeCurrent}
		c := core.NewTimeInfo()
		assert.Zero(t, m.Relevance(q, c))
	})

	t.Run("capped at one", func(t *testing.T) {
		q := core.TimeInfo{
			Dates:        core.NewStringSet("2023年5月1日"),
			RelativeTime: core.NewStringSet("现在"),
			Type:         core.TimeTypeCurrent,
		}
		c := core.TimeInfo{
			Dates:        core.NewStringSet("2023年5月1日"),
			RelativeTime: core.NewStringSet("现在"),
			Type:         core.TimeTypeCurrent,
		}
		assert.InDelta(t, 1.0, m.Relevance(q, c), 1e-9)
	})
}

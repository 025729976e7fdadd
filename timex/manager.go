package timex

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lingxi-ai/retrieva/core"
)

// Date extraction patterns, from day to year granularity.
var (
	dayPattern   = regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`)
	monthPattern = regexp.MustCompile(`\d{4}年\d{1,2}月`)
	yearPattern  = regexp.MustCompile(`\d{4}年`)

	datePatterns = []*regexp.Regexp{dayPattern, monthPattern, yearPattern}

	dayCapture   = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日$`)
	monthCapture = regexp.MustCompile(`^(\d{4})年(\d{1,2})月$`)
	yearCapture  = regexp.MustCompile(`^(\d{4})年$`)
)

// Relative-time keyword sets per temporal orientation. Categories are
// evaluated in this fixed order and the last matching category wins the
// Type classification; a deterministic, deliberately simple tie-break.
var timeKeywords = []struct {
	Type     core.TimeType
	Keywords []string
}{
	{core.TimeTypeCurrent, []string{"现在", "目前", "当前", "如今", "此时", "眼下"}},
	{core.TimeTypePast, []string{"之前", "以前", "过去", "曾经", "原先", "此前"}},
	{core.TimeTypeFuture, []string{"之后", "以后", "未来", "将来", "即将"}},
}

// Relevance score weights. Additive, capped at 1.0.
const (
	typeMatchWeight   = 0.3
	dateOverlapWeight = 0.4
	relativeWeight    = 0.3
	freshnessBonus    = 0.2
)

// Manager extracts, normalizes, and compares temporal expressions.
// It holds no mutable state and is safe for concurrent use.
type Manager struct{}

// NewManager creates a time expression manager.
func NewManager() *Manager {
	return &Manager{}
}

// ExtractTimeInfo scans text for explicit dates and relative-time
// keywords. Dates keep their surface form; Type is the orientation of
// the last keyword category with a hit, or none.
func (m *Manager) ExtractTimeInfo(text string) core.TimeInfo {
	info := core.NewTimeInfo()

	for _, pattern := range datePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			info.Dates.Add(match)
		}
	}

	for _, category := range timeKeywords {
		hit := false
		for _, kw := range category.Keywords {
			if strings.Contains(text, kw) {
				info.RelativeTime.Add(kw)
				hit = true
			}
		}
		if hit {
			info.Type = category.Type
		}
	}

	return info
}

// Normalize parses a day-, month-, or year-granularity date string into a
// calendar date. Missing month and day default to 1. The second return is
// false for unparseable input; malformed dates are not an error.
func (m *Manager) Normalize(dateStr string) (time.Time, bool) {
	var year, month, day string
	switch {
	case dayCapture.MatchString(dateStr):
		parts := dayCapture.FindStringSubmatch(dateStr)
		year, month, day = parts[1], parts[2], parts[3]
	case monthCapture.MatchString(dateStr):
		parts := monthCapture.FindStringSubmatch(dateStr)
		year, month, day = parts[1], parts[2], "1"
	case yearCapture.MatchString(dateStr):
		parts := yearCapture.FindStringSubmatch(dateStr)
		year, month, day = parts[1], "1", "1"
	default:
		return time.Time{}, false
	}

	parsed, err := time.Parse("2006-1-2", fmt.Sprintf("%s-%s-%s", year, month, day))
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Compare orders two date strings by their normalized calendar dates,
// returning -1, 0, or 1. Inputs that fail to normalize compare as equal;
// a documented limitation rather than an error.
func (m *Manager) Compare(dateA, dateB string) int {
	a, okA := m.Normalize(dateA)
	b, okB := m.Normalize(dateB)
	if !okA || !okB {
		return 0
	}
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Latest returns the maximum date in the set per Compare ordering.
// The second return is false for an empty set.
func (m *Manager) Latest(dates core.StringSet) (string, bool) {
	latest := ""
	for _, date := range dates.Values() {
		if latest == "" {
			latest = date
			continue
		}
		if m.Compare(latest, date) < 0 {
			latest = date
		}
	}
	return latest, latest != ""
}

// Relevance scores how well the content's temporal profile matches the
// query's, in [0,1]. Matching orientation, overlapping explicit dates,
// and overlapping relative-time keywords each contribute; queries about
// the current state get a freshness bonus when the content carries at
// least one normalizable date.
func (m *Manager) Relevance(query, content core.TimeInfo) float64 {
	score := 0.0

	if query.Type != core.TimeTypeNone && query.Type == content.Type {
		score += typeMatchWeight
	}
	if query.Dates.Intersects(content.Dates) {
		score += dateOverlapWeight
	}
	if query.RelativeTime.Intersects(content.RelativeTime) {
		score += relativeWeight
	}
	if query.Type == core.TimeTypeCurrent && m.hasNormalizableDate(content.Dates) {
		score += freshnessBonus
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (m *Manager) hasNormalizableDate(dates core.StringSet) bool {
	for date := range dates {
		if _, ok := m.Normalize(date); ok {
			return true
		}
	}
	return false
}

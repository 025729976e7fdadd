package nlp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lingxi-ai/retrieva/core"
)

// Lexicon is the process-wide, read-only dictionary configuration.
// Build it once at startup with DefaultLexicon or LoadLexicon and pass
// it by reference into each component; it must never be mutated afterwards.
type Lexicon struct {
	// Synonyms maps each canonical term to its synonym group.
	// Groups are transitive sets configured in advance, not chained
	// through multiple lookups.
	Synonyms map[string][]string

	// Stopwords are filtered out of keyword-level comparisons.
	Stopwords core.StringSet

	// PositionTitles is the fixed vocabulary of position titles matched
	// into the position entity type.
	PositionTitles core.StringSet

	// PersonRelated is the appointment/removal vocabulary used to classify
	// person-related queries.
	PersonRelated core.StringSet

	// CustomWords are domain terms registered with the segmenter so they
	// survive tokenization as single tokens.
	CustomWords []string

	// groupOf resolves any group member (or canonical term) to its
	// canonical term. Built once during finalization.
	groupOf map[string]string
}

// lexiconFile is the YAML shape of a lexicon configuration file.
type lexiconFile struct {
	Synonyms       map[string][]string `yaml:"synonyms"`
	Stopwords      []string            `yaml:"stopwords"`
	PositionTitles []string            `yaml:"position_titles"`
	PersonRelated  []string            `yaml:"person_related"`
	CustomWords    []string            `yaml:"custom_words"`
}

// DefaultLexicon returns the built-in lexicon covering the
// appointment/removal domain vocabulary.
func DefaultLexicon() *Lexicon {
	lex := &Lexicon{
		Synonyms: map[string][]string{
			// Positions and appointments
			"任命": {"任职", "委任", "担任", "就任", "上任", "履职", "入职"},
			"免职": {"撤职", "解职", "离任", "卸任", "去职", "辞职", "辞任"},
			"主管": {"负责人", "管理者", "领导", "主任", "经理", "处长"},
			"任职": {"任命", "担任", "就任", "履新", "上任", "到任"},
			"离职": {"离任", "免职", "辞职", "退休", "调离", "卸任"},
			"领导": {"负责人", "主管", "领导人", "管理者", "主要负责人"},

			// Time
			"现在": {"目前", "当前", "如今", "此时", "眼下"},
			"以前": {"之前", "从前", "原先", "先前", "过去"},

			// Places
			"地区": {"区域", "地带", "片区", "区段", "辖区"},
			"周边": {"附近", "邻近", "四周", "周围"},

			// Actions
			"实施": {"执行", "开展", "进行", "展开", "推行"},
			"管理": {"监管", "治理", "规范", "控制", "督导"},
		},
		Stopwords: core.NewStringSet(
			"的", "了", "和", "与", "或", "而", "及", "等", "地", "得", "之",
			"着", "往", "在", "上", "下", "里", "中", "对", "到", "从", "向",
			"是", "有", "个", "些", "来", "去", "说", "要", "把", "那",
			"你", "我", "他", "它", "她", "这", "哪", "什么", "怎么",
			"为", "以", "能", "会", "可以", "可能", "应该", "没有", "看",
		),
		PositionTitles: core.NewStringSet(
			"主任", "段长", "站长", "负责人", "局长", "处长", "科长",
		),
		PersonRelated: core.NewStringSet(
			"任命", "担任", "履职", "就任", "主持", "负责", "分管",
			"调任", "升任", "兼任", "离任", "免职", "辞职", "退休",
			"同志", "先生", "女士", "主任", "局长", "站长", "段长",
		),
		CustomWords: []string{
			// Organizations
			"铁路局", "运输企业", "公安机关", "铁路公安机关",
			// Positions
			"段长", "站长", "主任", "负责人",
			// Domain terms
			"建筑限界", "线路", "轨道", "道岔",
			// Facilities
			"杆塔", "广告牌", "烟囱", "风机",
		},
	}
	lex.finalize()
	return lex
}

// LoadLexicon reads a lexicon from a YAML file. Sections absent from the
// file fall back to the built-in defaults, so a file may override only
// the synonym groups, for example.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLexiconLoad, err)
	}

	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLexiconLoad, err)
	}

	lex := DefaultLexicon()
	if file.Synonyms != nil {
		lex.Synonyms = file.Synonyms
	}
	if file.Stopwords != nil {
		lex.Stopwords = core.NewStringSet(file.Stopwords...)
	}
	if file.PositionTitles != nil {
		lex.PositionTitles = core.NewStringSet(file.PositionTitles...)
	}
	if file.PersonRelated != nil {
		lex.PersonRelated = core.NewStringSet(file.PersonRelated...)
	}
	if file.CustomWords != nil {
		lex.CustomWords = file.CustomWords
	}
	lex.finalize()
	return lex, nil
}

// finalize rebuilds the member-to-canonical lookup.
func (l *Lexicon) finalize() {
	l.groupOf = make(map[string]string, len(l.Synonyms)*4)
	for canonical, members := range l.Synonyms {
		l.groupOf[canonical] = canonical
		for _, m := range members {
			// First registration wins when a term appears in two groups.
			if _, ok := l.groupOf[m]; !ok {
				l.groupOf[m] = canonical
			}
		}
	}
}

// SynonymGroup resolves a term to its canonical term and full synonym
// group. The second return is false when the term belongs to no group.
func (l *Lexicon) SynonymGroup(term string) (string, []string, bool) {
	canonical, ok := l.groupOf[term]
	if !ok {
		return "", nil, false
	}
	return canonical, l.Synonyms[canonical], true
}

// IsStopword reports whether the token carries no retrieval signal.
func (l *Lexicon) IsStopword(token string) bool {
	return l.Stopwords.Has(token)
}

// IsPositionTitle reports whether the token is a known position title.
func (l *Lexicon) IsPositionTitle(token string) bool {
	return l.PositionTitles.Has(token)
}

// IsPersonRelated reports whether the token belongs to the
// appointment/removal vocabulary.
func (l *Lexicon) IsPersonRelated(token string) bool {
	return l.PersonRelated.Has(token)
}

// File: services/nlu/temporal.go
package nlu

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"roomly/models"
)

// Confidence contributions per resolved component. Success requires the sum
// to clear successThreshold.
const (
	dateConfidence     = 0.3
	timeConfidence     = 0.4
	durationConfidence = 0.2
	endTimeConfidence  = 0.1
	successThreshold   = 0.3
)

// chineseNumerals maps numeral literals to their values. Replacement runs
// longest-literal-first so 二十一 never decays into 2十一.
var chineseNumerals = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
	"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
	"十一": 11, "十二": 12, "十三": 13, "十四": 14, "十五": 15,
	"十六": 16, "十七": 17, "十八": 18, "十九": 19, "二十": 20,
	"二十一": 21, "二十二": 22, "二十三": 23, "二十四": 24,
	"二十五": 25, "二十六": 26, "二十七": 27, "二十八": 28,
	"二十九": 29, "三十": 30, "三十一": 31,
}

type relativeKeyword struct {
	literal string
	offset  int
	unit    rune // 'd', 'w' or 'm'
}

// Day-level keywords resolve before week/month offsets so that 大后天 is not
// shadowed by 后天 (longest literals listed first within each tier).
var dayKeywords = []relativeKeyword{
	{"大后天", 3, 'd'},
	{"今天", 0, 'd'}, {"今日", 0, 'd'}, {"当天", 0, 'd'},
	{"明天", 1, 'd'}, {"明日", 1, 'd'},
	{"后天", 2, 'd'},
	{"昨天", -1, 'd'}, {"昨日", -1, 'd'},
	{"前天", -2, 'd'},
}

var weekMonthKeywords = []relativeKeyword{
	{"下个星期", 1, 'w'}, {"上个星期", -1, 'w'},
	{"这周", 0, 'w'}, {"本周", 0, 'w'},
	{"下周", 1, 'w'}, {"上周", -1, 'w'},
	{"这个月", 0, 'm'}, {"本月", 0, 'm'},
	{"下个月", 1, 'm'}, {"下月", 1, 'm'},
	{"上个月", -1, 'm'}, {"上月", -1, 'm'},
}

type namedPeriod struct {
	literal string
	hour    int
	minute  int
	bumpPM  bool // explicit hours below 12 shift into the afternoon/evening
}

var namedPeriods = []namedPeriod{
	{"早上", 8, 0, false}, {"早晨", 8, 0, false},
	{"上午", 9, 0, false},
	{"中午", 12, 0, false}, {"午间", 12, 0, false},
	{"下午", 14, 0, true}, {"午后", 14, 0, true},
	{"晚上", 19, 0, true}, {"傍晚", 18, 0, true},
	{"夜里", 20, 0, true}, {"夜间", 20, 0, true},
}

type durationUnit struct {
	literal string
	minutes float64
}

// Longest literals first: 分钟 must win over 分, 个小时 over 小时.
var durationUnits = []durationUnit{
	{"个小时", 60}, {"分钟", 1}, {"刻钟", 15},
	{"小时", 60}, {"时", 60}, {"分", 1},
}

// Idioms checked against the numeral-normalized text, hence 两小时 (两 is not
// a counting numeral) and the whole-period phrases.
var durationIdioms = []struct {
	literal string
	minutes int
}{
	{"半个小时", 30}, {"半小时", 30},
	{"两个小时", 120}, {"两小时", 120},
	{"整个上午", 240}, {"整个下午", 240},
	{"一整天", 480}, {"整天", 480}, {"全天", 480},
}

var (
	fullDateRe  = regexp.MustCompile(`(\d{4})[-/年](\d{1,2})[-/月](\d{1,2})[日号]?`)
	monthDayRe  = regexp.MustCompile(`(\d{1,2})[-/月](\d{1,2})[日号]`)
	weekdayRe   = regexp.MustCompile(`(下个|上个|这个|下|上|这|本)?(?:周|星期|礼拜)([1-7]|日|天)`)
	clockRe     = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	hourMinRe   = regexp.MustCompile(`(\d{1,2})[点时](\d{1,2})分?`)
	hourOnlyRe  = regexp.MustCompile(`(\d{1,2})[点时]`)
	rangeRe     = regexp.MustCompile(`从?\s*(\d{1,2})[点时:](\d{0,2})分?\s*[到至-]\s*(\d{1,2})[点时:](\d{0,2})分?`)
	numberRe    = `(\d+(?:\.\d+)?)`
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// TemporalParser converts natural-language date/time/duration phrases into
// concrete values relative to a base time. Parsing is deterministic: the
// same text and base always yield the same TimeInfo.
type TemporalParser struct {
	numeralLiterals []string // keys of chineseNumerals, longest first
	unitPatterns    []*regexp.Regexp
}

// NewTemporalParser builds a parser with its pattern tables precompiled.
func NewTemporalParser() *TemporalParser {
	literals := make([]string, 0, len(chineseNumerals))
	for lit := range chineseNumerals {
		literals = append(literals, lit)
	}
	sort.Slice(literals, func(i, j int) bool {
		if len(literals[i]) != len(literals[j]) {
			return len(literals[i]) > len(literals[j])
		}
		return literals[i] < literals[j]
	})

	units := make([]*regexp.Regexp, len(durationUnits))
	for i, u := range durationUnits {
		units[i] = regexp.MustCompile(numberRe + u.literal)
	}

	return &TemporalParser{numeralLiterals: literals, unitPatterns: units}
}

// Parse resolves the temporal expressions in text against base. A result
// with Success=false still carries whatever components did resolve.
func (p *TemporalParser) Parse(text string, base time.Time) models.TimeInfo {
	info := models.TimeInfo{}
	text = p.preprocess(text)

	if date, expr, ok := p.parseDate(text, base); ok {
		info.Date = date.Format("2006-01-02")
		info.Expressions = append(info.Expressions, expr)
		info.Confidence += dateConfidence
	}

	if hour, minute, expr, ok := p.parseClock(text, base); ok {
		info.Time = fmt.Sprintf("%02d:%02d", hour, minute)
		info.Expressions = append(info.Expressions, expr)
		info.Confidence += timeConfidence
	}

	if minutes, expr, ok := p.parseDuration(text); ok {
		info.DurationMin = minutes
		info.Expressions = append(info.Expressions, expr)
		info.Confidence += durationConfidence
	}

	// Derive the end time when both the start and the duration resolved.
	if info.Time != "" && info.DurationMin > 0 {
		day := base
		if info.Date != "" {
			if d, err := time.ParseInLocation("2006-01-02", info.Date, base.Location()); err == nil {
				day = d
			}
		}
		if start, err := time.ParseInLocation("2006-01-02 15:04", day.Format("2006-01-02")+" "+info.Time, base.Location()); err == nil {
			end := start.Add(time.Duration(info.DurationMin) * time.Minute)
			info.EndTime = end.Format("15:04")
			info.Confidence += endTimeConfidence
		}
	}

	info.Success = info.Confidence > successThreshold
	return info
}

// preprocess collapses whitespace and rewrites Chinese numerals into digits.
func (p *TemporalParser) preprocess(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	for _, lit := range p.numeralLiterals {
		text = strings.ReplaceAll(text, lit, strconv.Itoa(chineseNumerals[lit]))
	}
	return text
}

func (p *TemporalParser) parseDate(text string, base time.Time) (time.Time, string, bool) {
	baseDay := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())

	// 1. Absolute dates with an explicit year.
	if m := fullDateRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if d, ok := makeDate(year, month, day, base.Location()); ok {
			return d, m[0], true
		}
	}

	// 2. Month-day dates default to the current year; a date already in the
	// past rolls forward one year.
	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if d, ok := makeDate(base.Year(), month, day, base.Location()); ok {
			if d.Before(baseDay) {
				if rolled, ok := makeDate(base.Year()+1, month, day, base.Location()); ok {
					d = rolled
				}
			}
			return d, m[0], true
		}
	}

	// 3. Day-level relative keywords.
	for _, kw := range dayKeywords {
		if strings.Contains(text, kw.literal) {
			return baseDay.AddDate(0, 0, kw.offset), kw.literal, true
		}
	}

	// 4. Weekday expressions, optionally prefixed with a week qualifier.
	// Checked before bare week offsets so 下周3 resolves to next Wednesday
	// rather than just "one week out".
	if m := weekdayRe.FindStringSubmatch(text); m != nil {
		target := weekdayIndex(m[2])
		weekOffset := 0
		switch m[1] {
		case "下", "下个":
			weekOffset = 1
		case "上", "上个":
			weekOffset = -1
		}
		// Monday-based index of the base day.
		current := (int(base.Weekday()) + 6) % 7
		daysAhead := target - current
		if weekOffset == 0 && daysAhead <= 0 {
			daysAhead += 7 // this week's instance already passed
		}
		return baseDay.AddDate(0, 0, daysAhead+weekOffset*7), m[0], true
	}

	// 5. Bare week/month offsets.
	for _, kw := range weekMonthKeywords {
		if strings.Contains(text, kw.literal) {
			if kw.unit == 'w' {
				return baseDay.AddDate(0, 0, kw.offset*7), kw.literal, true
			}
			return baseDay.AddDate(0, kw.offset, 0), kw.literal, true
		}
	}

	// 6. Free-form fallback for machine-style dates.
	for _, layout := range []string{"2006-01-02", "2006/01/02"} {
		if d, err := time.ParseInLocation(layout, strings.TrimSpace(text), base.Location()); err == nil {
			return d, text, true
		}
	}

	return time.Time{}, "", false
}

// makeDate validates that year/month/day denote a real calendar date; Go's
// time.Date silently normalizes out-of-range components.
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if int(d.Month()) != month || d.Day() != day || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

// weekdayIndex maps a weekday token to its Monday-based index.
func weekdayIndex(token string) int {
	switch token {
	case "日", "天", "7":
		return 6
	default:
		n, _ := strconv.Atoi(token)
		return n - 1
	}
}

func (p *TemporalParser) parseClock(text string, base time.Time) (int, int, string, bool) {
	// 1. Explicit HH:MM.
	if m := clockRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if validClock(hour, minute) {
			return hour, minute, m[0], true
		}
	}

	// 2. Named periods, refined by an explicit hour immediately following
	// the period word. Afternoon/evening bump hours below 12 by +12.
	for _, period := range namedPeriods {
		if !strings.Contains(text, period.literal) {
			continue
		}
		refined := regexp.MustCompile(period.literal + `(\d{1,2})[点时]?(\d{1,2})?分?`)
		if m := refined.FindStringSubmatch(text); m != nil {
			hour, _ := strconv.Atoi(m[1])
			minute := 0
			if m[2] != "" {
				minute, _ = strconv.Atoi(m[2])
			}
			if period.bumpPM && hour < 12 {
				hour += 12
			} else if !period.bumpPM && period.hour < 12 && hour == 12 {
				hour = 0 // 上午12点 means midnight
			}
			if validClock(hour, minute) {
				return hour, minute, m[0], true
			}
		}
		return period.hour, period.minute, period.literal, true
	}

	// 3. Bare hour expressions.
	if m := hourMinRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if validClock(hour, minute) {
			return hour, minute, m[0], true
		}
	}
	if m := hourOnlyRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if validClock(hour, 0) {
			return hour, 0, m[0], true
		}
	}

	// 4. Fixed idioms.
	for _, idiom := range []struct {
		literal      string
		hour, minute int
	}{
		{"正午", 12, 0}, {"午夜", 0, 0}, {"半夜", 0, 0},
	} {
		if strings.Contains(text, idiom.literal) {
			return idiom.hour, idiom.minute, idiom.literal, true
		}
	}
	for _, now := range []string{"现在", "此时", "马上", "立即"} {
		if strings.Contains(text, now) {
			return base.Hour(), base.Minute(), now, true
		}
	}

	return 0, 0, "", false
}

func validClock(hour, minute int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

func (p *TemporalParser) parseDuration(text string) (int, string, bool) {
	// 1. Numeric value plus unit.
	for i, re := range p.unitPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			value, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			return int(value * durationUnits[i].minutes), m[0], true
		}
	}

	// 2. Named idioms.
	for _, idiom := range durationIdioms {
		if strings.Contains(text, idiom.literal) {
			return idiom.minutes, idiom.literal, true
		}
	}

	// 3. An explicit start–end range; the difference is the duration, valid
	// only when the end lies after the start.
	if m := rangeRe.FindStringSubmatch(text); m != nil {
		startHour, _ := strconv.Atoi(m[1])
		startMin := 0
		if m[2] != "" {
			startMin, _ = strconv.Atoi(m[2])
		}
		endHour, _ := strconv.Atoi(m[3])
		endMin := 0
		if m[4] != "" {
			endMin, _ = strconv.Atoi(m[4])
		}
		startTotal := startHour*60 + startMin
		endTotal := endHour*60 + endMin
		if endTotal > startTotal {
			return endTotal - startTotal, m[0], true
		}
	}

	return 0, "", false
}

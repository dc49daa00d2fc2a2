// File: services/nlu/entities.go
package nlu

import (
	"regexp"
	"sort"
	"strings"

	"roomly/models"
)

// Equipment mentions are normalized through a synonym table so that 投影,
// 投影仪 and "projector" all collapse into one canonical token.
var equipmentSynonyms = []struct {
	pattern   *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(?i)投影仪|投影|projector`), "投影仪"},
	{regexp.MustCompile(`(?i)电视|tv|屏幕`), "电视"},
	{regexp.MustCompile(`(?i)白板|whiteboard`), "白板"},
	{regexp.MustCompile(`(?i)音响|音箱|sound`), "音响"},
	{regexp.MustCompile(`(?i)视频会议|video|conference`), "视频会议"},
	{regexp.MustCompile(`(?i)空调|air`), "空调"},
	{regexp.MustCompile(`(?i)wifi|网络`), "WiFi"},
	{regexp.MustCompile(`(?i)麦克风|microphone|mic`), "麦克风"},
}

var (
	timeEntityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}点(?:\d{1,2}分?)?`),
		regexp.MustCompile(`\d{1,2}:\d{2}`),
		regexp.MustCompile(`明天|今天|后天|大后天|下周[一二三四五六日天1-7]?|下个?月`),
		regexp.MustCompile(`上午|下午|晚上|中午|早上|傍晚`),
		regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
		regexp.MustCompile(`\d{1,2}月\d{1,2}日?`),
	}

	durationEntityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+(?:\.\d+)?个?小时`),
		regexp.MustCompile(`\d+分钟`),
		regexp.MustCompile(`半个?小时|一小时|两个?小时|三小时|全天|整天`),
	}

	attendeePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*人`),
		regexp.MustCompile(`(\d+)\s*个人`),
		regexp.MustCompile(`(\d+)\s*位`),
		regexp.MustCompile(`我们\s*(\d+)\s*个`),
		regexp.MustCompile(`共\s*(\d+)\s*人`),
		regexp.MustCompile(`(一|二|三|四|五|六|七|八|九|十|十一|十二|十三|十四|十五|十六|十七|十八|十九|二十)人`),
	}

	roomTypePatterns = []*regexp.Regexp{
		regexp.MustCompile(`[大中小]会议室`),
		regexp.MustCompile(`(?:多媒体|投影|视频)会议室`),
		regexp.MustCompile(`培训室|讨论室|会议室`),
	}
)

// RuleExtractor applies independent pattern families per entity category.
// Categories with no matches are absent from the result set.
type RuleExtractor struct{}

// NewRuleExtractor returns the pattern-based Extractor.
func NewRuleExtractor() *RuleExtractor { return &RuleExtractor{} }

func (e *RuleExtractor) Extract(text string) models.EntitySet {
	set := models.EntitySet{}

	if matches := collect(timeEntityPatterns, text); len(matches) > 0 {
		set[models.EntityTime] = matches
	}
	if matches := collect(durationEntityPatterns, text); len(matches) > 0 {
		set[models.EntityDuration] = matches
	}

	var attendees []string
	for _, re := range attendeePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			attendees = append(attendees, m[1])
		}
	}
	if deduped := dedupe(attendees); len(deduped) > 0 {
		set[models.EntityAttendees] = deduped
	}

	var equipment []string
	for _, syn := range equipmentSynonyms {
		if syn.pattern.MatchString(text) {
			equipment = append(equipment, syn.canonical)
		}
	}
	if len(equipment) > 0 {
		set[models.EntityEquipment] = equipment
	}

	if matches := collect(roomTypePatterns, text); len(matches) > 0 {
		set[models.EntityRoomType] = matches
	}

	return set
}

func collect(patterns []*regexp.Regexp, text string) []string {
	var matches []string
	for _, re := range patterns {
		matches = append(matches, re.FindAllString(text, -1)...)
	}
	return dedupe(matches)
}

// dedupe removes repeats and sorts so the output never depends on map or
// pattern iteration order.
func dedupe(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0:0]
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

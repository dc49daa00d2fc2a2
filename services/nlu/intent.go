// File: services/nlu/intent.go
package nlu

import (
	"regexp"
	"strings"

	"roomly/models"
)

// Reservation evidence comes in three tiers. A strong indicator contributes
// 0.4 once; medium indicators stack at 0.2 each capped at 0.4; weak ones
// stack at 0.1 capped at 0.2. The total is clamped to 1.0.
var (
	strongReservationIndicators = compileAll(
		`预约|预定|订|约|申请.*会议室`,
		`会议室.*(?:预约|预定|订|约)`,
		`明天.*会议|今天.*会议|下周.*会议`,
		`\d+点.*会议室|\d+:\d+.*会议室`,
		`需要.*会议室|要.*会议室`,
		`安排.*会议|组织.*会议`,
	)

	mediumReservationIndicators = compileAll(
		`会议室|会议|开会`,
		`明天|今天|下周|下午|上午|晚上`,
		`\d+点|\d+:\d+|\d+小时`,
		`房间|场地|地方`,
	)

	weakReservationIndicators = compileAll(
		`时间|安排|计划`,
		`可以|能否|是否`,
		`空闲|有空|可用`,
	)

	strongChatIndicators = compileAll(
		`(?i)你好|您好|hi|hello`,
		`天气|温度|下雨|晴天|阴天`,
		`怎么样|如何|什么样`,
		`谢谢|感谢|再见|拜拜`,
		`你是谁|你叫什么|介绍.*自己`,
	)

	contextChatIndicators = compileAll(
		`.*吗\?$|.*呢\?$|.*啊\?$|.*吗？$|.*呢？$|.*啊？$`,
		`^为什么|^怎么|^什么时候`,
		`告诉我|说说|聊聊`,
	)

	actionIndicators = map[string][]*regexp.Regexp{
		models.IntentQuery: compileAll(
			`查询|查看|看看|显示`,
			`有哪些|什么.*预约|我的.*预约`,
			`状态|情况|列表`,
		),
		models.IntentCancel: compileAll(
			`取消|删除|撤销`,
			`不要了|不需要了|算了`,
		),
		models.IntentModify: compileAll(
			`修改|更改|调整|改成`,
			`换.*时间|改.*时间|延期`,
		),
		models.IntentHelp: compileAll(
			`(?i)帮助|help|怎么用|如何使用`,
			`功能|能做什么|可以.*什么`,
			`使用说明|操作指南`,
		),
	}
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// RuleClassifier scores an utterance with tiered keyword indicators. It is
// fully deterministic and needs no external service.
type RuleClassifier struct{}

// NewRuleClassifier returns the keyword-based Classifier.
func NewRuleClassifier() *RuleClassifier { return &RuleClassifier{} }

func (c *RuleClassifier) Classify(text string) models.IntentResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.IntentResult{
			Intent:     models.IntentChat,
			Confidence: 0.5,
			Scores:     map[string]float64{},
			ParseError: "empty input",
		}
	}

	reservation := reservationScore(text)
	chat := chatScore(text)

	scores := map[string]float64{
		models.IntentReservation: reservation,
		models.IntentChat:        chat,
	}
	for intent, indicators := range actionIndicators {
		scores[intent] = actionScore(text, indicators)
	}

	intent, confidence := primaryIntent(reservation, chat, scores)
	return models.IntentResult{
		Intent:     intent,
		Confidence: confidence,
		Scores:     scores,
	}
}

func reservationScore(text string) float64 {
	score := 0.0
	for _, re := range strongReservationIndicators {
		if re.MatchString(text) {
			score += 0.4
			break
		}
	}

	medium := 0.0
	for _, re := range mediumReservationIndicators {
		if re.MatchString(text) {
			medium += 0.2
		}
	}
	if medium > 0.4 {
		medium = 0.4
	}
	score += medium

	weak := 0.0
	for _, re := range weakReservationIndicators {
		if re.MatchString(text) {
			weak += 0.1
		}
	}
	if weak > 0.2 {
		weak = 0.2
	}
	score += weak

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func chatScore(text string) float64 {
	score := 0.0
	for _, re := range strongChatIndicators {
		if re.MatchString(text) {
			score += 0.6
			break
		}
	}
	for _, re := range contextChatIndicators {
		if re.MatchString(text) {
			score += 0.4
			break
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// actionScore is binary: any indicator match yields the flat action weight.
func actionScore(text string, indicators []*regexp.Regexp) float64 {
	for _, re := range indicators {
		if re.MatchString(text) {
			return 0.8
		}
	}
	return 0.0
}

// primaryIntent arbitrates between the score families. Action intents with a
// score above 0.7 preempt everything; among equal action scores the winner is
// chosen in a fixed order so ties never flap between requests.
func primaryIntent(reservation, chat float64, scores map[string]float64) (string, float64) {
	bestAction, bestScore := "", 0.0
	for _, intent := range []string{models.IntentQuery, models.IntentCancel, models.IntentModify, models.IntentHelp} {
		if s := scores[intent]; s > bestScore {
			bestAction, bestScore = intent, s
		}
	}
	if bestScore > 0.7 {
		return bestAction, bestScore
	}

	switch {
	case reservation > chat && reservation > 0.3:
		return models.IntentReservation, reservation
	case chat > reservation && chat > 0.3:
		return models.IntentChat, chat
	case reservation > 0.1:
		return models.IntentReservation, reservation
	default:
		if chat < 0.5 {
			chat = 0.5
		}
		return models.IntentChat, chat
	}
}

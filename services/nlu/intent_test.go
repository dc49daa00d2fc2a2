// File: services/nlu/intent_test.go
package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/models"
)

func TestRuleClassifierReservation(t *testing.T) {
	c := NewRuleClassifier()

	tests := []string{
		"我想预约会议室",
		"明天下午2点需要会议室",
		"帮我订个房间开会",
		"安排一个会议",
	}
	for _, text := range tests {
		result := c.Classify(text)
		assert.Equal(t, models.IntentReservation, result.Intent, text)
		assert.Greater(t, result.Confidence, 0.3, text)
	}
}

func TestRuleClassifierWeakReservationSignal(t *testing.T) {
	c := NewRuleClassifier()

	// Only a medium indicator fires; the score stays low but the reservation
	// lean still wins over a zero chat score.
	result := c.Classify("明天下午开会")
	assert.Equal(t, models.IntentReservation, result.Intent)
	assert.InDelta(t, 0.4, result.Confidence, 0.001)
}

func TestRuleClassifierActions(t *testing.T) {
	c := NewRuleClassifier()

	tests := []struct {
		text   string
		intent string
	}{
		{"查看我的预约", models.IntentQuery},
		{"我的预约有哪些", models.IntentQuery},
		{"取消预约", models.IntentCancel},
		{"不要了，算了", models.IntentCancel},
		{"修改预约时间", models.IntentModify},
		{"怎么用这个系统", models.IntentHelp},
	}
	for _, tt := range tests {
		result := c.Classify(tt.text)
		assert.Equal(t, tt.intent, result.Intent, tt.text)
		assert.InDelta(t, 0.8, result.Confidence, 0.001, tt.text)
	}
}

func TestRuleClassifierChat(t *testing.T) {
	c := NewRuleClassifier()

	tests := []string{
		"你好",
		"今天天气怎么样",
		"谢谢你",
	}
	for _, text := range tests {
		result := c.Classify(text)
		assert.Equal(t, models.IntentChat, result.Intent, text)
		assert.GreaterOrEqual(t, result.Confidence, 0.5, text)
	}
}

func TestRuleClassifierEmptyInput(t *testing.T) {
	c := NewRuleClassifier()

	result := c.Classify("   ")
	assert.Equal(t, models.IntentChat, result.Intent)
	assert.InDelta(t, 0.5, result.Confidence, 0.001)
	assert.NotEmpty(t, result.ParseError)
}

func TestRuleClassifierDefaultsToChat(t *testing.T) {
	c := NewRuleClassifier()

	result := c.Classify("嗯嗯")
	assert.Equal(t, models.IntentChat, result.Intent)
	assert.GreaterOrEqual(t, result.Confidence, 0.5)
}

func TestRuleClassifierScoresExposed(t *testing.T) {
	c := NewRuleClassifier()

	result := c.Classify("我想预约会议室")
	require.Contains(t, result.Scores, models.IntentReservation)
	require.Contains(t, result.Scores, models.IntentChat)
	assert.Greater(t, result.Scores[models.IntentReservation], result.Scores[models.IntentChat])
}

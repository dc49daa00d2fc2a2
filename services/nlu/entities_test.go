// File: services/nlu/entities_test.go
package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/models"
)

func TestRuleExtractorCategories(t *testing.T) {
	e := NewRuleExtractor()

	set := e.Extract("预约明天下午2点的大会议室，需要投影仪和白板，我们5个")

	require.Contains(t, set, models.EntityTime)
	assert.Contains(t, set[models.EntityTime], "明天")
	assert.Contains(t, set[models.EntityTime], "下午")

	require.Contains(t, set, models.EntityAttendees)
	assert.Equal(t, []string{"5"}, set[models.EntityAttendees])

	require.Contains(t, set, models.EntityEquipment)
	assert.ElementsMatch(t, []string{"投影仪", "白板"}, set[models.EntityEquipment])

	require.Contains(t, set, models.EntityRoomType)
	assert.Contains(t, set[models.EntityRoomType], "大会议室")
}

func TestRuleExtractorEquipmentSynonyms(t *testing.T) {
	e := NewRuleExtractor()

	tests := []struct {
		text      string
		canonical string
	}{
		{"需要投影", "投影仪"},
		{"有projector吗", "投影仪"},
		{"要能开视频会议", "视频会议"},
		{"需要whiteboard", "白板"},
		{"WiFi要快", "WiFi"},
	}

	for _, tt := range tests {
		set := e.Extract(tt.text)
		require.Contains(t, set, models.EntityEquipment, tt.text)
		assert.Contains(t, set[models.EntityEquipment], tt.canonical)
	}
}

func TestRuleExtractorAbsentCategories(t *testing.T) {
	e := NewRuleExtractor()

	set := e.Extract("你好")
	assert.Empty(t, set)

	set = e.Extract("10人的会")
	assert.Contains(t, set, models.EntityAttendees)
	assert.NotContains(t, set, models.EntityEquipment)
	assert.NotContains(t, set, models.EntityTime)
}

func TestRuleExtractorDeduplicates(t *testing.T) {
	e := NewRuleExtractor()

	set := e.Extract("投影仪，一定要投影仪")
	assert.Equal(t, []string{"投影仪"}, set[models.EntityEquipment])
}

func TestRuleExtractorIdempotent(t *testing.T) {
	e := NewRuleExtractor()
	text := "明天3人开会，要白板"
	assert.Equal(t, e.Extract(text), e.Extract(text))
}

func TestRuleExtractorChineseNumeralAttendees(t *testing.T) {
	e := NewRuleExtractor()

	set := e.Extract("十五人参加")
	require.Contains(t, set, models.EntityAttendees)
	assert.Equal(t, []string{"十五"}, set[models.EntityAttendees])
}

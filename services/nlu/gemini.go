// File: services/nlu/gemini.go
package nlu

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"roomly/models"
	"roomly/utils"
)

// GeminiClient wraps a generative model behind a plain text-in/text-out call.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient connects to the Gemini API. Callers that have no API key
// configured should not construct one and stay on the rule classifier.
func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{model: client.GenerativeModel("models/gemini-1.5-pro")}, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

const intentPrompt = `你是会议室预约系统的意图分类器。将用户消息分类为以下意图之一，只回答意图名称，不要解释：
reservation（预约会议室）、query（查询预约）、cancel（取消预约）、modify（修改预约）、help（使用帮助）、chat（闲聊）。
用户消息：%s`

// HybridClassifier runs the rule classifier first and consults Gemini only
// when the rule score is inconclusive. Any model failure falls back to the
// rule result, so classification never errors out.
type HybridClassifier struct {
	rules     Classifier
	gemini    *GeminiClient
	threshold float64
}

// NewHybridClassifier layers a Gemini fallback over rules. A nil gemini
// client degrades to pure rule classification.
func NewHybridClassifier(rules Classifier, gemini *GeminiClient, threshold float64) *HybridClassifier {
	if threshold <= 0 {
		threshold = 0.6
	}
	return &HybridClassifier{rules: rules, gemini: gemini, threshold: threshold}
}

func (c *HybridClassifier) Classify(text string) models.IntentResult {
	result := c.rules.Classify(text)
	if c.gemini == nil || result.Confidence >= c.threshold {
		return result
	}

	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	answer, err := c.gemini.GenerateContent(ctx, fmt.Sprintf(intentPrompt, text))
	if err != nil {
		utils.GetLogger().Sugar().Warnf("gemini intent fallback failed: %v", err)
		return result
	}

	intent := strings.ToLower(strings.TrimSpace(answer))
	switch intent {
	case models.IntentReservation, models.IntentQuery, models.IntentCancel,
		models.IntentModify, models.IntentHelp, models.IntentChat:
		result.Intent = intent
		if result.Confidence < c.threshold {
			result.Confidence = c.threshold
		}
	default:
		utils.GetLogger().Sugar().Debugf("gemini returned unknown intent %q, keeping rule result", intent)
	}
	return result
}

package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiTextModel   = "gemini-1.5-pro"
	geminiVisionModel = "gemini-1.5-pro-vision"

	geminiTemperature     = 0.7
	geminiMaxOutputTokens = 2048
)

// ChatTurn is one prior message handed to the model as conversation history.
type ChatTurn struct {
	Role string // "user" | "assistant"
	Text string
}

// GeminiClient wraps the generative model behind the three call shapes the
// services need: JSON-shaped text generation, image analysis, and chat.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing Google AI API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) textModel() *genai.GenerativeModel {
	m := c.client.GenerativeModel(geminiTextModel)
	m.SetTemperature(geminiTemperature)
	m.SetMaxOutputTokens(geminiMaxOutputTokens)
	return m
}

// GenerateJSON sends a prompt expected to yield a JSON-shaped reply and
// returns the reply with code-fence markers stripped. Parsing is left to the
// caller, which knows the schema.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resp, err := c.textModel().GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	content, err := firstCandidateText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONResponse(content), nil
}

// AnalyzeImage runs the vision model over an image plus an instruction.
func (c *GeminiClient) AnalyzeImage(ctx context.Context, mimeType string, data []byte, prompt string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image data cannot be empty")
	}

	format := strings.TrimPrefix(mimeType, "image/")
	m := c.client.GenerativeModel(geminiVisionModel)
	m.SetTemperature(geminiTemperature)
	m.SetMaxOutputTokens(geminiMaxOutputTokens)

	resp, err := m.GenerateContent(ctx, genai.ImageData(format, data), genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini vision: %w", err)
	}
	content, err := firstCandidateText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONResponse(content), nil
}

// Chat sends a message with a system persona and prior turns as history.
func (c *GeminiClient) Chat(ctx context.Context, systemInstruction string, history []ChatTurn, message string) (string, error) {
	m := c.textModel()
	if systemInstruction != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	}

	cs := m.StartChat()
	for _, turn := range history {
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini chat: %w", err)
	}
	return firstCandidateText(resp)
}

func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// CleanJSONResponse strips markdown code-fence markers the model sometimes
// wraps around JSON replies.
func CleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

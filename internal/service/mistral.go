package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ChatMessage is one role-tagged turn of the completion transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompleter produces an assistant reply for a transcript. The real
// implementation proxies Mistral; without an API key it falls back to
// deterministic keyword-matched responses and never touches the network.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

type mistralRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type mistralResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type mistralClient struct {
	url    string
	apiKey string
	client *http.Client
}

func NewMistralClient(url, apiKey string) ChatCompleter {
	return &mistralClient{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{},
	}
}

func (c *mistralClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if c.apiKey == "" {
		last := ""
		if len(messages) > 0 {
			last = messages[len(messages)-1].Content
		}
		return FallbackResponse(last), nil
	}

	body := mistralRequest{
		Model:       "mistral-large-latest",
		Messages:    messages,
		MaxTokens:   1000,
		Temperature: 0.7,
		TopP:        0.9,
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to communicate with AI service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to get response from AI: %d %s", resp.StatusCode, respBody)
	}

	var parsed mistralResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "I'm sorry, I couldn't generate a response at the moment.", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

// FallbackResponse classifies the message by keyword groups, tried in
// order, and returns the matching canned paragraph. It always returns a
// non-empty string.
func FallbackResponse(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "cyst"):
		return "Ovarian cysts are fluid-filled sacs that develop in or on your ovaries. " +
			"There are several types: functional cysts (most common), dermoid cysts, cystadenomas, and endometriomas. " +
			"Most functional cysts resolve on their own within 1-3 months. Symptoms include pelvic pain, bloating, " +
			"irregular periods, and pain during intercourse. If you experience severe pain, fever, or rapid breathing, " +
			"seek immediate medical care. For diagnosis, your doctor will likely order an ultrasound and possibly blood tests. " +
			"Treatment depends on cyst type and symptoms - options include watchful waiting, birth control pills, or surgery."
	case strings.Contains(lower, "menstrual"), strings.Contains(lower, "period"), strings.Contains(lower, "cycle"):
		return "Normal menstrual cycles range from 21-35 days, with periods lasting 2-7 days. " +
			"Irregular periods can result from stress, hormonal imbalances, PCOS, thyroid issues, or other conditions. " +
			"Tracking your cycle helps identify patterns. If you have persistent irregular periods or severe symptoms, " +
			"consult a healthcare provider for evaluation."
	case strings.Contains(lower, "pain"), strings.Contains(lower, "hurt"):
		return "Pelvic pain can have various causes including ovarian cysts, endometriosis, fibroids, or infections. " +
			"The location, intensity, and timing of pain help determine the cause. Severe, sudden pain requires immediate " +
			"medical attention. For persistent pain, schedule an appointment with your gynecologist for proper evaluation."
	case strings.Contains(lower, "symptom"):
		return "Common ovarian cyst symptoms include pelvic pain (especially on one side), bloating, irregular periods, " +
			"pain during intercourse, and urinary urgency. Other symptoms may include nausea, breast tenderness, and lower " +
			"back pain. Track your symptoms and discuss them with your healthcare provider for proper diagnosis."
	default:
		return "I'm Crystal, your women's health assistant. I can provide information about ovarian cysts, " +
			"menstrual health, reproductive conditions, and general gynecological topics. What specific health question do you have?"
	}
}

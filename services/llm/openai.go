package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/pedagogyradar/radar/core"
)

const openAIAPIBase = "https://api.openai.com/v1"

// OpenAI calls the chat completions API.
type OpenAI struct {
	baseURL    string
	key        string
	model      string
	conf       *core.Config
	httpClient *http.Client
}

func NewOpenAI(conf *core.Config, httpClient *http.Client) *OpenAI {
	return &OpenAI{
		baseURL:    openAIAPIBase,
		key:        conf.LLM.OpenAIAPIKey,
		model:      conf.LLM.OpenAIModel,
		conf:       conf,
		httpClient: httpClient,
	}
}

type (
	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatRequest struct {
		Model       string        `json:"model"`
		Messages    []chatMessage `json:"messages"`
		MaxTokens   int           `json:"max_tokens"`
		Temperature float64       `json:"temperature"`
		N           int           `json:"n"`
	}

	chatResponse struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
)

func (o *OpenAI) Name() string { return "openai:" + o.model }

func (o *OpenAI) Generate(ctx context.Context, req core.GenerateRequest) (string, error) {
	var msgs []chatMessage
	if system := systemPrompt(req, o.conf); system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       o.model,
		Messages:    msgs,
		MaxTokens:   maxTokens(req),
		Temperature: temperature,
		N:           1,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.key)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "calling openai")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading openai response")
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", errors.Wrapf(err, "decoding openai response (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		if cr.Error != nil {
			return "", errors.Errorf("openai: status %d: %s", resp.StatusCode, cr.Error.Message)
		}
		return "", errors.Errorf("openai: status %d", resp.StatusCode)
	}
	if len(cr.Choices) == 0 {
		return "", nil
	}
	return cr.Choices[0].Message.Content, nil
}

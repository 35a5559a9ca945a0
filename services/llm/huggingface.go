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

const hfAPIBase = "https://api-inference.huggingface.co/models"

// HuggingFace calls the hosted Inference API of a text-generation model.
type HuggingFace struct {
	baseURL    string
	token      string
	model      string
	conf       *core.Config
	httpClient *http.Client
}

func NewHuggingFace(conf *core.Config, httpClient *http.Client) *HuggingFace {
	return &HuggingFace{
		baseURL:    hfAPIBase,
		token:      conf.LLM.HFAPIToken,
		model:      conf.LLM.HFModel,
		conf:       conf,
		httpClient: httpClient,
	}
}

type (
	hfRequest struct {
		Inputs     string       `json:"inputs"`
		Parameters hfParameters `json:"parameters"`
	}

	hfParameters struct {
		MaxNewTokens   int     `json:"max_new_tokens"`
		Temperature    float64 `json:"temperature"`
		ReturnFullText bool    `json:"return_full_text"`
	}

	hfGeneration struct {
		GeneratedText string `json:"generated_text"`
	}

	hfError struct {
		Error string `json:"error"`
	}
)

func (hf *HuggingFace) Name() string { return "huggingface:" + hf.model }

// instruct wraps the prompt in the [INST] format instruction-tuned models expect.
func (hf *HuggingFace) instruct(req core.GenerateRequest) string {
	prompt := req.Prompt
	if system := systemPrompt(req, hf.conf); system != "" {
		prompt = system + "\n\n" + prompt
	}
	return "<s>[INST] " + prompt + " [/INST]"
}

func (hf *HuggingFace) Generate(ctx context.Context, req core.GenerateRequest) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: hf.instruct(req),
		Parameters: hfParameters{
			MaxNewTokens: maxTokens(req),
			Temperature:  temperature,
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, hf.baseURL+"/"+hf.model, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+hf.token)

	resp, err := hf.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "calling huggingface")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading huggingface response")
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr hfError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return "", errors.Errorf("huggingface: status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", errors.Errorf("huggingface: status %d: %s", resp.StatusCode, respBody)
	}

	var gens []hfGeneration
	if err := json.Unmarshal(respBody, &gens); err != nil {
		return "", errors.Wrap(err, "decoding huggingface response")
	}
	if len(gens) == 0 {
		return "", nil
	}
	return gens[0].GeneratedText, nil
}

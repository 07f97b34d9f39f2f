package model

import (
	"encoding/json"
	"fmt"
)

// Request and response formats per
// https://platform.stability.ai/docs/api-reference#tag/v1generation

type stableDiffusionRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	Seed        int64        `json:"seed"`
	CfgScale    int          `json:"cfg_scale"`
	Steps       int          `json:"steps"`
	StylePreset string       `json:"style_preset,omitempty"`
}

type textPrompt struct {
	Text string `json:"text"`
}

type stableDiffusionResponse struct {
	Artifacts []struct {
		Base64 string `json:"base64"`
	} `json:"artifacts"`
}

func stableDiffusionBody(req Request) ([]byte, error) {
	return json.Marshal(stableDiffusionRequest{
		TextPrompts: []textPrompt{{Text: req.Prompt}},
		Seed:        req.Seed,
		CfgScale:    10,
		Steps:       30,
		StylePreset: req.StylePreset,
	})
}

func stableDiffusionImage(envelope []byte) (string, error) {
	var resp stableDiffusionResponse
	if err := json.Unmarshal(envelope, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Artifacts) == 0 || resp.Artifacts[0].Base64 == "" {
		return "", fmt.Errorf("%w: no artifacts", ErrMalformedResponse)
	}
	return resp.Artifacts[0].Base64, nil
}

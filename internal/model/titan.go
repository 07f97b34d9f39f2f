package model

import (
	"encoding/json"
	"fmt"
)

// Request and response formats per
// https://docs.aws.amazon.com/bedrock/latest/userguide/model-parameters-titan-image.html

type titanImageRequest struct {
	TaskType          string                `json:"taskType"`
	TextToImageParams titanTextToImage      `json:"textToImageParams"`
	ImageGenConfig    titanGenerationConfig `json:"imageGenerationConfig"`
}

type titanTextToImage struct {
	Text string `json:"text"`
}

type titanGenerationConfig struct {
	NumberOfImages int     `json:"numberOfImages"`
	Quality        string  `json:"quality"`
	CfgScale       float64 `json:"cfgScale"`
	Height         int     `json:"height"`
	Width          int     `json:"width"`
	Seed           int64   `json:"seed"`
}

type titanImageResponse struct {
	Images []string `json:"images"`
}

// titanImageBody requests four images even though only the first is ever
// persisted; the request contract is kept as-is rather than tuned down.
// StylePreset has no Titan equivalent and is ignored.
func titanImageBody(req Request) ([]byte, error) {
	return json.Marshal(titanImageRequest{
		TaskType:          "TEXT_IMAGE",
		TextToImageParams: titanTextToImage{Text: req.Prompt},
		ImageGenConfig: titanGenerationConfig{
			NumberOfImages: 4,
			Quality:        "standard",
			CfgScale:       8.0,
			Height:         1024,
			Width:          1024,
			Seed:           req.Seed,
		},
	})
}

func titanImageImage(envelope []byte) (string, error) {
	var resp titanImageResponse
	if err := json.Unmarshal(envelope, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Images) == 0 || resp.Images[0] == "" {
		return "", fmt.Errorf("%w: no images", ErrMalformedResponse)
	}
	return resp.Images[0], nil
}

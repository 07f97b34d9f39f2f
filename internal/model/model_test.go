package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStableDiffusionBody(t *testing.T) {
	body, err := StableDiffusion.Body(Request{
		Prompt:      "a red fox in snow",
		Seed:        42,
		StylePreset: "photographic",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"text_prompts": [{"text": "a red fox in snow"}],
		"seed": 42,
		"cfg_scale": 10,
		"steps": 30,
		"style_preset": "photographic"
	}`, string(body))
}

func TestStableDiffusionBodyWithoutStyle(t *testing.T) {
	body, err := StableDiffusion.Body(Request{Prompt: "a red fox in snow", Seed: 42})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.NotContains(t, fields, "style_preset")
	assert.Equal(t, "a red fox in snow", fields["text_prompts"].([]any)[0].(map[string]any)["text"])
}

func TestTitanImageBody(t *testing.T) {
	for _, seed := range []int64{0, 42, math.MaxInt32} {
		body, err := TitanImage.Body(Request{Prompt: "a red fox in snow", Seed: seed})
		require.NoError(t, err)

		var req struct {
			TaskType string `json:"taskType"`
			TextToImageParams struct {
				Text string `json:"text"`
			} `json:"textToImageParams"`
			Config struct {
				NumberOfImages int     `json:"numberOfImages"`
				Quality        string  `json:"quality"`
				CfgScale       float64 `json:"cfgScale"`
				Height         int     `json:"height"`
				Width          int     `json:"width"`
				Seed           int64   `json:"seed"`
			} `json:"imageGenerationConfig"`
		}
		require.NoError(t, json.Unmarshal(body, &req))

		assert.Equal(t, "TEXT_IMAGE", req.TaskType)
		assert.Equal(t, "a red fox in snow", req.TextToImageParams.Text)
		assert.Equal(t, seed, req.Config.Seed)
		assert.Equal(t, 4, req.Config.NumberOfImages)
		assert.Equal(t, "standard", req.Config.Quality)
		assert.Equal(t, 8.0, req.Config.CfgScale)
		assert.Equal(t, 1024, req.Config.Height)
		assert.Equal(t, 1024, req.Config.Width)
	}
}

func TestTitanImageBodyIgnoresStyle(t *testing.T) {
	body, err := TitanImage.Body(Request{Prompt: "p", Seed: 1, StylePreset: "photographic"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "photographic")
}

func TestStableDiffusionImage(t *testing.T) {
	data, err := StableDiffusion.Image([]byte(`{"artifacts":[{"base64":"aGVsbG8="},{"base64":"ignored"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", data)
}

func TestStableDiffusionImageMalformed(t *testing.T) {
	for name, envelope := range map[string]string{
		"no artifacts":    `{"artifacts":[]}`,
		"missing field":   `{"result":"ok"}`,
		"empty base64":    `{"artifacts":[{"base64":""}]}`,
		"not json at all": `<html>throttled</html>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := StableDiffusion.Image([]byte(envelope))
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestTitanImageImage(t *testing.T) {
	data, err := TitanImage.Image([]byte(`{"images":["aGVsbG8=","ignored"]}`))
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", data)
}

func TestTitanImageImageMalformed(t *testing.T) {
	for name, envelope := range map[string]string{
		"no images":     `{"images":[]}`,
		"missing field": `{"result":"ok"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := TitanImage.Image([]byte(envelope))
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestProviderMetadata(t *testing.T) {
	assert.Equal(t, "stability.stable-diffusion-xl", StableDiffusion.ModelID())
	assert.Equal(t, "amazon.titan-image-generator-v1", TitanImage.ModelID())
	assert.Equal(t, "diffusion", StableDiffusion.Family())
	assert.Equal(t, "titan", TitanImage.Family())
	assert.Equal(t, int64(math.MaxUint32), StableDiffusion.MaxSeed())
	assert.Equal(t, int64(math.MaxInt32), TitanImage.MaxSeed())
}

func TestUnknownProvider(t *testing.T) {
	_, err := Provider(99).Body(Request{Prompt: "p"})
	require.Error(t, err)
	_, err = Provider(99).Image([]byte(`{}`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedResponse))
}

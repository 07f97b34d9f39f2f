package model

import (
	"errors"
	"fmt"
	"math"
)

// Provider identifies one of the supported image generation model families.
// Request and response formats differ per provider, so both directions of the
// wire mapping hang off this tag.
type Provider int

const (
	StableDiffusion Provider = iota
	TitanImage
)

// All lists the providers in the order the demo invokes them.
var All = []Provider{StableDiffusion, TitanImage}

// ErrMalformedResponse means the response envelope did not carry the expected
// image field.
var ErrMalformedResponse = errors.New("response envelope missing image data")

// Request carries the caller-supplied generation parameters. Seed must be
// within [0, MaxSeed] for the target provider; out-of-range values are
// rejected by the remote service, not here. StylePreset is only honored by
// Stable Diffusion.
type Request struct {
	Prompt      string
	Seed        int64
	StylePreset string
}

func (p Provider) String() string { return p.ModelID() }

// ModelID returns the Bedrock model identifier for this provider.
func (p Provider) ModelID() string {
	switch p {
	case StableDiffusion:
		return "stability.stable-diffusion-xl"
	case TitanImage:
		return "amazon.titan-image-generator-v1"
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// Family returns the short label used as the per-provider output directory.
func (p Provider) Family() string {
	switch p {
	case StableDiffusion:
		return "diffusion"
	case TitanImage:
		return "titan"
	}
	return "unknown"
}

// MaxSeed returns the largest valid seed for this provider, inclusive.
func (p Provider) MaxSeed() int64 {
	switch p {
	case StableDiffusion:
		return math.MaxUint32
	case TitanImage:
		return math.MaxInt32
	}
	return 0
}

// Body serializes req into the provider's request schema.
func (p Provider) Body(req Request) ([]byte, error) {
	switch p {
	case StableDiffusion:
		return stableDiffusionBody(req)
	case TitanImage:
		return titanImageBody(req)
	}
	return nil, fmt.Errorf("unknown provider %d", int(p))
}

// Image unwraps the provider's response envelope and returns the base64 image
// payload. Only the first image is used when the envelope carries several.
func (p Provider) Image(envelope []byte) (string, error) {
	switch p {
	case StableDiffusion:
		return stableDiffusionImage(envelope)
	case TitanImage:
		return titanImageImage(envelope)
	}
	return "", fmt.Errorf("unknown provider %d", int(p))
}

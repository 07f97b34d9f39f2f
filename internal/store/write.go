package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
)

// Params describe one generated image to persist. Base64 carries the payload
// exactly as returned by the model; Family is the per-model output label
// ("diffusion", "titan") that becomes the target subdirectory or key prefix.
type Params struct {
	Family string
	Base64 string
}

// Writer persists one image and returns the path it was written to.
type Writer interface {
	Write(context.Context, Params) (string, error)
}

// ErrDecode means the image payload was not valid standard base64.
var ErrDecode = errors.New("image payload is not valid base64")

func decode(data string) ([]byte, error) {
	img, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

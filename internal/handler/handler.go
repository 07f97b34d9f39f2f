package handler

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/trackzero/bedrock/internal/invoke"
	"github.com/trackzero/bedrock/internal/log"
	"github.com/trackzero/bedrock/internal/model"
	"github.com/trackzero/bedrock/internal/store"
)

// Input selects a provider and the generation parameters for one invocation.
// A nil Seed means "draw one at random from the provider's valid range".
type Input struct {
	Provider    model.Provider
	Prompt      string
	Seed        *int64
	StylePreset string
}

type Output struct {
	ModelID string
	Seed    int64
	Path    string
}

// Handler runs the build -> invoke -> unwrap -> persist pipeline for a single
// model invocation. Failures abort the pipeline and carry the model id; they
// are never retried here.
type Handler struct {
	invoker invoke.Invoker
	writer  store.Writer
	rnd     *rand.Rand
}

func New(invoker invoke.Invoker, writer store.Writer, rnd *rand.Rand) *Handler {
	return &Handler{invoker: invoker, writer: writer, rnd: rnd}
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return New(
		do.MustInvoke[invoke.Invoker](i),
		do.MustInvoke[store.Writer](i),
		rand.New(rand.NewSource(time.Now().UTC().UnixNano())),
	), nil
}

func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	modelID := input.Provider.ModelID()
	log := log.FromContextOrDiscard(ctx).WithGroup("handler").With("model", modelID)

	seed := lo.FromPtrOr(input.Seed, h.rnd.Int63n(input.Provider.MaxSeed()+1))
	log.Info("generating image", "prompt", input.Prompt, "seed", seed)

	body, err := input.Provider.Body(model.Request{
		Prompt:      input.Prompt,
		Seed:        seed,
		StylePreset: input.StylePreset,
	})
	if err != nil {
		return Output{}, err
	}

	envelope, err := h.invoker.Invoke(ctx, modelID, body)
	if err != nil {
		log.Error("model invocation failed", "err", err)
		return Output{}, fmt.Errorf("invoke %s: %w", modelID, err)
	}

	data, err := input.Provider.Image(envelope)
	if err != nil {
		log.Error("unexpected response envelope", "err", err)
		return Output{}, fmt.Errorf("%s: %w", modelID, err)
	}

	path, err := h.writer.Write(ctx, store.Params{Family: input.Provider.Family(), Base64: data})
	if err != nil {
		log.Error("could not persist image", "err", err)
		return Output{}, fmt.Errorf("%s: %w", modelID, err)
	}

	log.Info("image saved", "path", path)
	return Output{ModelID: modelID, Seed: seed, Path: path}, nil
}

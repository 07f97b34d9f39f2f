package invoke

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/samber/do"
	"github.com/trackzero/bedrock/internal/log"
)

type BedrockInvoker struct {
	client *bedrockruntime.Client
}

func NewBedrockInvoker(i *do.Injector) (Invoker, error) {
	return &BedrockInvoker{client: do.MustInvoke[*bedrockruntime.Client](i)}, nil
}

func (b *BedrockInvoker) Invoke(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("bedrock").With("model", modelID)
	log.Info("invoking model")

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		log.Error("model invocation failed", "err", err)
		return nil, err
	}

	log.Info("received model response", "bytes", len(out.Body))
	return out.Body, nil
}

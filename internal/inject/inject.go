package inject

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/trackzero/bedrock/internal/gallery"
	"github.com/trackzero/bedrock/internal/handler"
	"github.com/trackzero/bedrock/internal/invoke"
	"github.com/trackzero/bedrock/internal/log"
	"github.com/trackzero/bedrock/internal/param"
	"github.com/trackzero/bedrock/internal/store"
)

func Setup(ctx context.Context) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		},
	})

	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		if region := os.Getenv("BEDROCK_REGION"); region != "" {
			return config.LoadDefaultConfig(ctx, config.WithRegion(region))
		}
		return config.LoadDefaultConfig(ctx)
	})
	do.Provide[*bedrockruntime.Client](injector, func(i *do.Injector) (*bedrockruntime.Client, error) {
		return bedrockruntime.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*ssm.Client](injector, func(i *do.Injector) (*ssm.Client, error) {
		return ssm.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})

	do.Provide[param.Fetcher](injector, param.NewParameterStoreFetcher)
	do.Provide[invoke.Invoker](injector, invoke.NewBedrockInvoker)

	do.ProvideNamedValue[string](injector, "output_dir",
		lo.Ternary(os.Getenv("OUTPUT_DIR") != "", os.Getenv("OUTPUT_DIR"), "output"))
	do.ProvideNamedValue[string](injector, "bucket", os.Getenv("BUCKET"))
	do.ProvideNamed[string](injector, "style_preset", func(i *do.Injector) (string, error) {
		if path := os.Getenv("STYLE_PRESET_PARAM"); path != "" {
			return do.MustInvoke[param.Fetcher](i).Fetch(ctx, path)
		}
		return lo.Ternary(os.Getenv("STYLE_PRESET") != "", os.Getenv("STYLE_PRESET"), "photographic"), nil
	})

	// Images land in the local output tree unless a bucket is configured.
	do.Provide[store.Writer](injector, func(i *do.Injector) (store.Writer, error) {
		if do.MustInvokeNamed[string](i, "bucket") != "" {
			return store.NewS3Writer(i)
		}
		return store.NewDirWriter(i)
	})

	do.Provide[*gallery.Generator](injector, gallery.NewGenerator)
	do.Provide[*handler.Handler](injector, handler.NewHandler)

	return injector
}

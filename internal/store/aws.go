package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/samber/do"
	"github.com/trackzero/bedrock/internal/log"
)

// S3Writer mirrors DirWriter's naming scheme onto an S3 bucket: keys are
// <family>/image_<n>.png with n chosen by listing the family prefix.
type S3Writer struct {
	Client *s3.Client
	Bucket string
}

func NewS3Writer(i *do.Injector) (Writer, error) {
	return &S3Writer{
		Client: do.MustInvoke[*s3.Client](i),
		Bucket: do.MustInvokeNamed[string](i, "bucket"),
	}, nil
}

func (w *S3Writer) Write(ctx context.Context, params Params) (string, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("store").With(
		"family", params.Family,
		"bucket", w.Bucket,
	)

	img, err := decode(params.Base64)
	if err != nil {
		return "", err
	}

	key, err := w.nextKey(ctx, params.Family)
	if err != nil {
		return "", err
	}

	log.Info("uploading image", "key", key, "bytes", len(img))
	_, err = w.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(w.Bucket),
		Key:          aws.String(key),
		ContentType:  aws.String("image/png"),
		Body:         bytes.NewReader(img),
		StorageClass: s3types.StorageClassIntelligentTiering,
	})
	if err != nil {
		return "", err
	}
	return "s3://" + w.Bucket + "/" + key, nil
}

func (w *S3Writer) nextKey(ctx context.Context, family string) (string, error) {
	taken := make(map[string]struct{})
	pager := s3.NewListObjectsV2Paginator(w.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(w.Bucket),
		Prefix: aws.String(family + "/"),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", err
		}
		for _, obj := range page.Contents {
			taken[aws.ToString(obj.Key)] = struct{}{}
		}
	}

	for i := 1; ; i++ {
		key := fmt.Sprintf("%s/image_%d.png", family, i)
		if _, ok := taken[key]; !ok {
			return key, nil
		}
	}
}

package aws

import (
	"context"
	"errors"

	"github.com/amankumarsingh77/media-studio/internal/config"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewStorageClient builds an S3 client for the configured storage endpoint.
func NewStorageClient(c *config.Config) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(c.Storage.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				c.Storage.AccessKey,
				c.Storage.SecretKey,
				"",
			),
		),
		// The interoperability endpoint rejects the SDK's default trailing checksums.
		awsconfig.WithRequestChecksumCalculation(awssdk.RequestChecksumCalculationWhenRequired),
		awsconfig.WithResponseChecksumValidation(awssdk.ResponseChecksumValidationWhenRequired),
	)
	if err != nil {
		return nil, errors.New("failed to load configuration, " + err.Error())
	}
	endpoint := c.Storage.Endpoint
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if endpoint != "" {
			o.BaseEndpoint = &endpoint
		}
	})
	return client, nil
}

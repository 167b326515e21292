package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/amankumarsingh77/media-studio/internal/media"
	"github.com/amankumarsingh77/media-studio/internal/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type awsRepository struct {
	client *s3.Client
}

func NewAwsRepository(awsClient *s3.Client) media.AWSRepository {
	return &awsRepository{
		client: awsClient,
	}
}

func (a *awsRepository) PutObject(ctx context.Context, input *models.UploadInput) error {
	_, err := a.client.PutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket:        aws.String(input.BucketName),
			Key:           aws.String(input.Key),
			ContentType:   aws.String(input.ContentType),
			ContentLength: aws.Int64(input.Size),
			Body:          input.File,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload file %s: %w: %v", input.Key, models.ErrStorage, err)
	}
	return nil
}

func (a *awsRepository) GetObject(ctx context.Context, bucket, key string) (*models.BlobObject, error) {
	res, err := a.client.GetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		},
	)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("object %s/%s: %w", bucket, key, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to download file %s: %w: %v", key, models.ErrStorage, err)
	}
	return &models.BlobObject{
		Body:          res.Body,
		ContentType:   aws.ToString(res.ContentType),
		ContentLength: aws.ToInt64(res.ContentLength),
	}, nil
}

func (a *awsRepository) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := a.client.HeadObject(
		ctx,
		&s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		},
	)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file %s: %w: %v", key, models.ErrStorage, err)
	}
	return true, nil
}

func (a *awsRepository) ListObjects(ctx context.Context, bucket, prefix string) ([]*models.BlobInfo, error) {
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	var objects []*models.BlobInfo
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects : %w: %v", models.ErrStorage, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, &models.BlobInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	var respErr interface{ HTTPStatusCode() int }
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	return false
}

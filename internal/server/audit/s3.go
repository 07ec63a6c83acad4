package audit

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/ticketledger/internal/server/models"
)

type S3Options struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Prefix       string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Publisher stores each transaction as <prefix>/YYYY/MM/DD/<id>.json.
type S3Publisher struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Publisher(ctx context.Context, o S3Options) (*S3Publisher, error) {
	if o.Bucket == "" {
		return nil, fmt.Errorf("s3 sink needs a bucket")
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.AccessKey,
			o.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
			so.UsePathStyle = true
		}
	})

	return &S3Publisher{client: client, bucket: o.Bucket, prefix: o.Prefix}, nil
}

// ObjectKey is the key a transaction is stored under.
func (p *S3Publisher) ObjectKey(tx *models.Transaction) string {
	t := tx.CreatedAt.UTC()
	return path.Join(p.prefix, t.Format("2006"), t.Format("01"), t.Format("02"), tx.ID+".json")
}

func (p *S3Publisher) Publish(ctx context.Context, tx *models.Transaction) error {
	data, err := encode(tx)
	if err != nil {
		return err
	}

	_, err = putObject(p.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(p.ObjectKey(tx)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put: %w", err)
	}
	return nil
}

func (p *S3Publisher) Close() error { return nil }

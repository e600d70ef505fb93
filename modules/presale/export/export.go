package export

import (
	"bytes"
	"context"
	"math"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/datagateway"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/gaze-network/presale-ledger/pkg/parquetutils"
	"github.com/samber/lo"
)

type Config struct {
	// Path of the local parquet file. Skipped when empty.
	Path string   `mapstructure:"path"`
	S3   S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
	Key    string `mapstructure:"key"`
	Region string `mapstructure:"region"`
}

func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// PurchaseRow is the parquet layout of a purchase record.
type PurchaseRow struct {
	Buyer    string `parquet:"name=buyer, type=BYTE_ARRAY, convertedtype=UTF8"`
	Quantity int64  `parquet:"name=quantity, type=INT64"`
	Claimed  bool   `parquet:"name=claimed, type=BOOLEAN"`
}

func toRows(records []entity.PurchaseRecord) ([]PurchaseRow, error) {
	for _, record := range records {
		if record.Quantity > math.MaxInt64 {
			return nil, errors.Wrapf(errs.OverflowUint64, "quantity of %s", record.Buyer)
		}
	}
	return lo.Map(records, func(record entity.PurchaseRecord, _ int) PurchaseRow {
		return PurchaseRow{
			Buyer:    strings.ToLower(record.Buyer.Hex()),
			Quantity: int64(record.Quantity),
			Claimed:  record.Claimed,
		}
	}), nil
}

// Encode writes the purchase records as a parquet file.
func Encode(records []entity.PurchaseRecord) ([]byte, error) {
	rows, err := toRows(records)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	data, err := parquetutils.WriteAll(rows)
	if err != nil {
		return nil, errors.Wrap(err, "can't encode purchase records")
	}
	return data, nil
}

// Decode reads a parquet file written by Encode.
func Decode(data []byte) ([]PurchaseRow, error) {
	rows, err := parquetutils.ReadAll[PurchaseRow](parquetutils.NewBufferFile(data))
	if err != nil {
		return nil, errors.Wrap(err, "can't decode purchase records")
	}
	return rows, nil
}

// Run exports the journaled purchase records to the configured destinations and
// returns the number of exported records.
func Run(ctx context.Context, presaleDg datagateway.PresaleDataGateway, config Config) (int, error) {
	if config.Path == "" && !config.S3.Enabled() {
		return 0, errors.Wrap(errs.InvalidArgument, "no export destination configured")
	}

	records, err := presaleDg.GetPurchaseRecords(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "can't get purchase records")
	}
	data, err := Encode(records)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if config.Path != "" {
		if err := os.WriteFile(config.Path, data, 0o644); err != nil {
			return 0, errors.Wrapf(err, "can't write %s", config.Path)
		}
		logger.InfoContext(ctx, "Exported purchase records", slogx.String("path", config.Path), slogx.Int("records", len(records)))
	}
	if config.S3.Enabled() {
		if err := uploadS3(ctx, config.S3, data); err != nil {
			return 0, errors.WithStack(err)
		}
		logger.InfoContext(ctx, "Uploaded purchase records",
			slogx.String("bucket", config.S3.Bucket),
			slogx.String("key", config.S3.Key),
			slogx.Int("records", len(records)),
		)
	}
	return len(records), nil
}

func uploadS3(ctx context.Context, config S3Config, data []byte) error {
	if config.Key == "" {
		return errors.Wrap(errs.InvalidArgument, "s3 key is required")
	}
	opts := make([]func(*awsconfig.LoadOptions) error, 0, 1)
	if config.Region != "" {
		opts = append(opts, awsconfig.WithRegion(config.Region))
	}
	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return errors.Wrap(err, "can't load aws user config")
	}

	uploader := manager.NewUploader(s3.NewFromConfig(sdkConfig))
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(config.Bucket),
		Key:         aws.String(config.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/vnd.apache.parquet"),
	})
	if err != nil {
		return errors.Wrapf(err, "can't upload to s3://%s/%s", config.Bucket, config.Key)
	}
	return nil
}

package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/internal/config"
	"github.com/gaze-network/presale-ledger/internal/postgres"
	"github.com/gaze-network/presale-ledger/modules/presale/export"
	repository "github.com/gaze-network/presale-ledger/modules/presale/repository/postgres"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

func NewExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export journaled purchase records to parquet",
		Example: `presale export --path ./purchases.parquet
presale export --s3-bucket my-bucket --s3-key presale/purchases.parquet --s3-region us-east-2`,
		RunE: exportHandler,
	}

	flags := exportCmd.Flags()
	flags.String("path", "", "Write the parquet file to this path")
	flags.String("s3-bucket", "", "Upload the parquet file to this S3 bucket")
	flags.String("s3-key", "", "Object key of the uploaded parquet file")
	flags.String("s3-region", "", "AWS region of the S3 bucket")

	config.BindPFlag("export.path", flags.Lookup("path"))
	config.BindPFlag("export.s3.bucket", flags.Lookup("s3-bucket"))
	config.BindPFlag("export.s3.key", flags.Lookup("s3-key"))
	config.BindPFlag("export.s3.region", flags.Lookup("s3-region"))

	return exportCmd
}

func exportHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()
	ctx := logger.WithContext(cmd.Context(), slogx.String("command", "export"))

	pg, err := postgres.NewPool(ctx, conf.Presale.Postgres)
	if err != nil {
		return errors.Wrap(err, "can't create postgres connection pool")
	}
	defer pg.Close()

	n, err := export.Run(ctx, repository.NewRepository(pg), conf.Export)
	if err != nil {
		return errors.Wrap(err, "failed to export purchase records")
	}
	logger.InfoContext(ctx, "Export finished", slogx.Int("records", n))
	return nil
}

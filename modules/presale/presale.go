package presale

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/presale-ledger/common"
	"github.com/gaze-network/presale-ledger/internal/config"
	"github.com/gaze-network/presale-ledger/internal/postgres"
	"github.com/gaze-network/presale-ledger/modules/presale/api/httphandler"
	"github.com/gaze-network/presale-ledger/modules/presale/datagateway"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/metrics"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/sale"
	repository "github.com/gaze-network/presale-ledger/modules/presale/repository/postgres"
	"github.com/gaze-network/presale-ledger/modules/presale/usecase"
	"github.com/gaze-network/presale-ledger/pkg/logger"
	"github.com/gaze-network/presale-ledger/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
)

const Version = "v0.1.0"

// Module is a running presale: the usecase mounted on the HTTP server and the
// resources it owns.
type Module struct {
	Usecase *usecase.Usecase

	cleanupFuncs []func(context.Context) error
}

func New(injector do.Injector) (*Module, error) {
	ctx := logger.WithContext(do.MustInvoke[context.Context](injector), slogx.Stringer("module", common.ModulePresale))
	conf := do.MustInvoke[config.Config](injector)
	presaleConf := conf.Presale

	module := &Module{}

	var presaleDg datagateway.PresaleDataGateway
	switch presaleConf.Database {
	case "postgres", "postgresql":
		pg, err := postgres.NewPool(ctx, presaleConf.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "can't create postgres connection pool")
		}
		module.cleanupFuncs = append(module.cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		presaleDg = repository.NewRepository(pg)
	case "":
		logger.WarnContext(ctx, "Presale event journal is disabled, events are only logged")
	default:
		return nil, errors.Errorf("%q database for presale is not supported", presaleConf.Database)
	}

	ledgers, err := newLedgers(presaleConf)
	if err != nil {
		return nil, errors.Wrap(err, "can't bootstrap ledgers")
	}
	converter, err := newConverter(ctx, presaleConf)
	if err != nil {
		return nil, errors.Wrap(err, "can't create price converter")
	}
	addresses, err := parseAddresses(presaleConf)
	if err != nil {
		return nil, errors.Wrap(err, "invalid presale addresses")
	}

	uc, err := usecase.New(ctx, sale.Params{
		Self:       addresses.sale,
		Owner:      addresses.owner,
		Payout:     addresses.payout,
		Converter:  converter,
		SaleStart:  time.Unix(presaleConf.SaleStart, 0).UTC(),
		SaleEnd:    time.Unix(presaleConf.SaleEnd, 0).UTC(),
		Capacities: presaleConf.Capacities(),
		Prices:     presaleConf.Prices(),
	}, ledgers, presaleDg, metrics.Presale())
	if err != nil {
		return nil, errors.Wrap(err, "can't create presale")
	}
	module.Usecase = uc

	httpServer := do.MustInvoke[*fiber.App](injector)
	presaleHandler := httphandler.New(uc, presaleConf.OperatorAPIKey)
	if err := presaleHandler.Mount(httpServer); err != nil {
		return nil, errors.Wrap(err, "can't mount presale API")
	}
	logger.InfoContext(ctx, "Mounted presale HTTP handler",
		slogx.Stringer("sale", addresses.sale),
		slogx.Bool("journal", presaleDg != nil),
	)
	return module, nil
}

// Shutdown releases the module's resources. It is called by the injector.
func (m *Module) Shutdown(ctx context.Context) error {
	var errList []error
	for _, cleanup := range m.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}

package main

import (
	"context"
	"log/slog"
	"os"

	"medico/config"
	"medico/internal/delivery"
	"medico/internal/delivery/api"
	"medico/internal/delivery/api/middleware"
	"medico/internal/delivery/api/router/handler"
	"medico/internal/infra/auth"
	"medico/internal/infra/clock"
	logs "medico/internal/infra/log"
	"medico/internal/infra/persistence/postgres"
	"medico/internal/infra/pubsub"
	"medico/internal/infra/qrcode"
	"medico/internal/infra/report"
	"medico/internal/infra/storage"
	"medico/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		storage.New,
		pubsub.NewEventPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewRepositoryFactory,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			clock.NewSystemClock,
			auth.NewBcryptHasher,
			auth.NewOTPService,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
			report.NewStockExporter,
			report.NewInvoiceRenderer,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewRoleService,
			impl.NewProfileService,
			impl.NewLookupService,
			impl.NewInventoryService,
			impl.NewDiscountService,
			impl.NewCouponService,
			impl.NewOrderService,
			impl.NewPrescriptionService,
			impl.NewInvoiceService,
			impl.NewPaymentService,
			impl.NewIssueService,
			impl.NewFileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewRoleHandler,
			handler.NewProfileHandler,
			handler.NewLookupHandler,
			handler.NewInventoryHandler,
			handler.NewDiscountHandler,
			handler.NewCouponHandler,
			handler.NewOrderHandler,
			handler.NewPrescriptionHandler,
			handler.NewBillingHandler,
			handler.NewIssueHandler,
			handler.NewFileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

package main

import (
	"context"
	"log/slog"
	"os"

	"brewscout/config"
	"brewscout/internal/delivery"
	"brewscout/internal/delivery/http"
	"brewscout/internal/delivery/http/router/handler"
	"brewscout/internal/infra/cache"
	logs "brewscout/internal/infra/log"
	"brewscout/internal/infra/persistence/postgres"
	"brewscout/internal/infra/pubsub"
	"brewscout/internal/infra/runner"
	"brewscout/internal/infra/telegram"
	"brewscout/internal/usecase/impl"

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
		cache.NewPool,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewCityRepository,
			postgres.NewShopRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			cache.NewShopCache,
			telegram.NewClient,
			pubsub.NewEventPublisher,
			runner.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCityService,
			impl.NewShopService,
			impl.NewGeoService,
			impl.NewBusService,
			impl.NewHookService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHookHandler,
			handler.NewShopHandler,
			handler.NewCityHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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

package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/yokijpAcademic/Klik-Sewa-BE/config"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http/middleware"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http/router/handler"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/infra/auth"
	logs "github.com/yokijpAcademic/Klik-Sewa-BE/internal/infra/log"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/infra/notification"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/infra/persistence/postgres"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/usecase/impl"
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
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTSigner,
			auth.NewRandomTokenGenerator,
			notification.NewEmailNotifier,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
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

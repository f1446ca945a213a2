package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ilmi2809/tubeseai/internal/app"
	appshipment "github.com/ilmi2809/tubeseai/internal/application/shipment"
	"github.com/ilmi2809/tubeseai/internal/config"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/id"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/memory"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/propagation"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/rpc"
	"github.com/ilmi2809/tubeseai/internal/pkg/logging"
	"github.com/ilmi2809/tubeseai/internal/pkg/metrics"
	transporthttp "github.com/ilmi2809/tubeseai/internal/transport/http"
)

func main() {
	conf := config.New()
	if err := conf.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}

	logger := logging.MustNew("shipping-service", conf.Env)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	reg := prometheus.NewRegistry()
	rpcMetrics := metrics.NewRPC(reg)
	remoteMetrics := metrics.NewRemote(reg)
	propMetrics := metrics.NewPropagation(reg)

	orders := rpc.NewShipmentOrderClient(rpc.NewClient("order-service", conf.Peers.OrderURL,
		rpc.WithTimeout(conf.Peers.CallTimeout),
		rpc.WithMetrics(remoteMetrics),
	))

	queue := propagation.New(logger,
		propagation.WithMaxAttempts(conf.Propagation.MaxAttempts),
		propagation.WithBaseDelay(conf.Propagation.BaseDelay),
		propagation.WithMetrics(propMetrics),
	)

	svc := appshipment.NewService(memory.NewShipmentStore(), orders, id.NewUUIDGenerator(), queue, conf.Shipping.WarehouseZip)
	handler := transporthttp.NewShipmentHandler(svc, rpcMetrics)

	application := app.New(logger, conf, reg)
	application.SetRPCHandler(handler)
	application.SetWorkers(queue)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application.Start(ctx)
	<-ctx.Done()
	application.Stop()
}

func init() {
	godotenv.Load()
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ilmi2809/tubeseai/internal/app"
	apppayment "github.com/ilmi2809/tubeseai/internal/application/payment"
	"github.com/ilmi2809/tubeseai/internal/config"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/gateway"
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

	logger := logging.MustNew("payment-service", conf.Env)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	reg := prometheus.NewRegistry()
	rpcMetrics := metrics.NewRPC(reg)
	remoteMetrics := metrics.NewRemote(reg)
	propMetrics := metrics.NewPropagation(reg)

	orders := rpc.NewPaymentOrderClient(rpc.NewClient("order-service", conf.Peers.OrderURL,
		rpc.WithTimeout(conf.Peers.CallTimeout),
		rpc.WithMetrics(remoteMetrics),
	))

	queue := propagation.New(logger,
		propagation.WithMaxAttempts(conf.Propagation.MaxAttempts),
		propagation.WithBaseDelay(conf.Propagation.BaseDelay),
		propagation.WithMetrics(propMetrics),
	)

	card := gateway.NewCardGateway(conf.Gateway.CardSuccessRate, conf.Gateway.Latency)
	paypal := gateway.NewPayPalGateway(conf.Gateway.PayPalSuccessRate, conf.Gateway.Latency)

	svc := apppayment.NewService(memory.NewPaymentStore(), orders, card, paypal, id.NewUUIDGenerator(), queue)
	handler := transporthttp.NewPaymentHandler(svc, rpcMetrics)

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

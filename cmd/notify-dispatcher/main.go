package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/darkkaiser/notify-dispatcher/internal/config"
	"github.com/darkkaiser/notify-dispatcher/internal/pkg/tracing"
	"github.com/darkkaiser/notify-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/notify-dispatcher/internal/service"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/dispatcher"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/metrics"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/provider/slack"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/provider/telegram"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/resolver"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/trace"
)

const component = "main"

const tracingShutdownTimeout = 5 * time.Second

const banner = `
  _   _       _   _  __         ____  _                 _       _
 | \ | | ___ | |_(_)/ _|_   _  |  _ \(_)___ _ __   __ _| |_ ___| |__   ___ _ __
 |  \| |/ _ \| __| | |_| | | | | | | | / __| '_ \ / _' | __/ __| '_ \ / _ \ '__|
 | |\  | (_) | |_| |  _| |_| | | |_| | \__ \ |_) | (_| | || (__| | | |  __/ |
 |_| \_|\___/ \__|_|_|  \__, | |____/|_|___/ .__/ \__,_|\__\___|_| |_|\___|_|
                        |___/              |_|                        %s
--------------------------------------------------------------------------------
`

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	configFile := config.DefaultFilename
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields(component, applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(warning)
	}

	if err := run(appConfig, buildInfo); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error": err,
		}).Error("서버 실행 실패")

		appLogCloser.Close()
		os.Exit(1)
	}
}

// run 서비스를 구성하고 시작한 뒤 종료 시그널을 받을 때까지 대기합니다.
func run(appConfig *config.AppConfig, buildInfo version.Info) error {
	tp, shutdownTracing, err := tracing.Setup(context.Background(), tracing.Options{
		Enabled:     appConfig.Tracing.Enabled,
		ServiceName: appConfig.Tracing.ServiceName,
		Endpoint:    appConfig.Tracing.Endpoint,
		Insecure:    appConfig.Tracing.Insecure,
		SampleRatio: appConfig.Tracing.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		defer cancel()

		if err := shutdownTracing(ctx); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Warn("트레이스 내보내기 종료 중 오류가 발생하였습니다")
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services, err := newServices(appConfig, reg, tp, buildInfo)
	if err != nil {
		return err
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			cancel() // 이미 시작된 서비스들도 종료
			serviceStopWG.Wait()

			return err
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent(component).Info("서버 가동 완료")

	<-termC

	applog.WithComponent(component).Info("종료 시그널을 수신하였습니다")
	cancel()
	serviceStopWG.Wait()

	return nil
}

// newServices 설정으로부터 Provider와 서비스들을 구성합니다. 반환 순서가 시작 순서입니다.
func newServices(appConfig *config.AppConfig, reg *prometheus.Registry, tp trace.TracerProvider, buildInfo version.Info) ([]service.Service, error) {
	integrations := appConfig.ContractIntegrations()

	routes := make([]resolver.Route, 0, len(appConfig.Routes))
	for _, r := range appConfig.Routes {
		routes = append(routes, resolver.Route{
			OrganizationID: r.OrganizationID,
			Recipient:      r.Actor(),
			ChannelID:      r.ChannelID,
			IntegrationID:  r.IntegrationID,
		})
	}

	routeResolver, err := resolver.NewStaticResolver(integrations, routes)
	if err != nil {
		return nil, err
	}

	dispatchOpts := []dispatcher.Option{
		dispatcher.WithMetrics(metrics.NewRecorder(reg)),
		dispatcher.WithTracer(tracing.Tracer(tp)),
		dispatcher.WithMaxConcurrency(appConfig.Dispatch.MaxConcurrency),
	}

	var breakerCfg *delivery.BreakerConfig
	if cb := appConfig.CircuitBreaker; cb.Enabled {
		breakerCfg = &delivery.BreakerConfig{
			MaxRequests:      cb.MaxRequests,
			Interval:         cb.Interval,
			Timeout:          cb.Timeout,
			FailureThreshold: cb.FailureThreshold,
			MinRequests:      cb.MinRequests,
		}
	}

	registry := notification.NewRegistry()
	for _, p := range configuredProviders(integrations) {
		var provider notification.Provider
		switch p {
		case contract.ProviderSlack:
			provider = slack.New(routeResolver, slack.Config{
				Timeout: appConfig.Providers.Slack.Timeout,
				Breaker: breakerCfg,
			}, dispatchOpts...)
		case contract.ProviderTelegram:
			provider = telegram.New(routeResolver, telegram.Config{
				Timeout:   appConfig.Providers.Telegram.Timeout,
				RateLimit: appConfig.Providers.Telegram.RateLimit,
				RateBurst: appConfig.Providers.Telegram.RateBurst,
				Breaker:   breakerCfg,
				Debug:     appConfig.Debug,
			}, dispatchOpts...)
		default:
			continue
		}

		if err := registry.Register(p, provider); err != nil {
			return nil, err
		}
	}

	notificationService := notification.NewService(registry, integrations)
	apiService := api.NewService(appConfig, notificationService, reg, buildInfo)

	return []service.Service{notificationService, apiService}, nil
}

// configuredProviders Integration이 하나 이상 등록된 Provider를 등장 순서대로 반환합니다.
func configuredProviders(integrations []contract.Integration) []contract.ExternalProvider {
	var providers []contract.ExternalProvider
	seen := make(map[contract.ExternalProvider]bool)
	for _, integration := range integrations {
		if !seen[integration.Provider] {
			seen[integration.Provider] = true
			providers = append(providers, integration.Provider)
		}
	}
	return providers
}

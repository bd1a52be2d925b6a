// Package api 외부 애플리케이션이 알림을 요청하는 REST API 서버를 제공합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	_ "github.com/darkkaiser/notify-dispatcher/docs"
	"github.com/darkkaiser/notify-dispatcher/internal/config"
	"github.com/darkkaiser/notify-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/auth"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/notify-dispatcher/internal/service/api/v1"
	v1handler "github.com/darkkaiser/notify-dispatcher/internal/service/api/v1/handler"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// NotificationService API 서버가 사용하는 알림 서비스의 기능입니다.
type NotificationService interface {
	contract.NotificationSender
	contract.NotificationHealthChecker
}

// Service REST API 서버의 생명주기를 관리합니다.
type Service struct {
	appConfig *config.AppConfig

	notificationService NotificationService

	gatherer prometheus.Gatherer

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService API 서비스를 생성합니다. gatherer가 nil이면 prometheus.DefaultGatherer를 사용합니다.
//
// Panics:
//   - appConfig 또는 notificationService가 nil인 경우
func NewService(appConfig *config.AppConfig, notificationService NotificationService, gatherer prometheus.Gatherer, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("AppConfig는 필수입니다")
	}
	if notificationService == nil {
		panic("NotificationService는 필수입니다")
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return &Service{
		appConfig:           appConfig,
		notificationService: notificationService,
		gatherer:            gatherer,
		buildInfo:           buildInfo,
	}
}

// Start HTTP 서버를 백그라운드에서 시작합니다.
//
// serviceStopCtx가 취소되면 진행 중인 요청을 기다린 뒤 서버를 종료하고 serviceStopWG.Done()을 호출합니다.
// 호출자는 Start 전에 serviceStopWG.Add(1)을 호출해야 합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info("API 서비스 시작 진입")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn("API 서비스가 이미 시작됨!!!")
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info("API 서비스 시작됨")

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

func (s *Service) setupServer() *echo.Echo {
	e := NewHTTPServer(HTTPServerConfig{
		Debug:        s.appConfig.Debug,
		EnableHSTS:   s.appConfig.NotifyAPI.WS.TLSServer,
		AllowOrigins: s.appConfig.NotifyAPI.CORS.AllowOrigins,
	})

	RegisterRoutes(e, system.NewHandler(s.notificationService, s.buildInfo), s.gatherer)
	v1.RegisterRoutes(e, v1handler.NewHandler(s.notificationService), auth.NewAuthenticator(s.appConfig))

	return e
}

func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	ws := s.appConfig.NotifyAPI.WS
	address := fmt.Sprintf(":%d", ws.ListenPort)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": ws.ListenPort,
		"tls":  ws.TLSServer,
	}).Info("API 서비스 > HTTP 서버 시작")

	var err error
	if ws.TLSServer {
		err = e.StartTLS(address, ws.TLSCertFile, ws.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

func (s *Service) handleServerError(err error) {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info("API 서비스 > HTTP 서버 중지됨")
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.NotifyAPI.WS.ListenPort,
		"error": err.Error(),
	}).Error("API 서비스 > HTTP 서버를 구성하는 중에 치명적인 오류가 발생하였습니다")
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info("API 서비스 중지중...")
	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error("API 서비스 > HTTP 서버가 예기치 않게 종료되었습니다")
		s.cleanup()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err.Error(),
		}).Error("API 서비스 > HTTP 서버 종료 중 오류가 발생하였습니다")
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info("API 서비스 중지됨")
}

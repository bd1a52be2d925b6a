// Package notification 등록된 Provider로 알림을 라우팅하는 알림 서비스를 제공합니다.
package notification

import (
	"context"
	"strings"
	"sync"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
)

const component = "notification.service"

// Service API 등 외부 진입점의 요청을 Registry에 등록된 Provider로 전달합니다.
type Service struct {
	registry     *Registry
	integrations map[string]contract.Integration

	running   bool
	runningMu sync.RWMutex
}

var _ contract.NotificationSender = (*Service)(nil)
var _ contract.NotificationHealthChecker = (*Service)(nil)

// NewService Service를 생성합니다. integrations는 SendMessage에서 ID로 조회할 Integration 목록입니다.
func NewService(registry *Registry, integrations []contract.Integration) *Service {
	if registry == nil {
		panic("notification: Registry는 필수입니다")
	}

	byID := make(map[string]contract.Integration, len(integrations))
	for _, integration := range integrations {
		byID[integration.ID] = integration
	}

	return &Service{
		registry:     registry,
		integrations: byID,
	}
}

// Start 알림 서비스를 시작합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("Notification 서비스가 이미 시작됨!!!")
		return nil
	}

	providers := s.registry.Providers()
	if len(providers) == 0 {
		defer serviceStopWG.Done()
		return ErrNoProviders
	}

	go s.waitForShutdown(serviceStopCtx, serviceStopWG)

	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"providers":    providers,
		"integrations": len(s.integrations),
	}).Info("Notification 서비스 시작됨")

	return nil
}

func (s *Service) waitForShutdown(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("Notification 서비스 중지중...")

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(component).Info("Notification 서비스 중지됨")
}

// Notify 알림을 요청한 Provider로 디스패치합니다.
//
// 알림에 ID가 없으면 새로 발급합니다. 요청 검증 실패, Provider 조회 실패, 채널 조회 실패만 에러로 반환하며
// 개별 전송의 실패는 Report에만 기록됩니다.
func (s *Service) Notify(ctx context.Context, req contract.DispatchRequest) (*contract.Report, error) {
	if !s.isRunning() {
		return nil, ErrServiceNotRunning
	}

	if err := req.Notification.Validate(); err != nil {
		return nil, err
	}
	id := req.Notification.EnsureID()

	p, err := s.registry.Lookup(req.Provider)
	if err != nil {
		return nil, err
	}

	report, err := p.Dispatch(ctx, req.Notification, req.Recipients, req.Shared, req.ExtraByActor)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"provider":        req.Provider,
			"notification_id": id.String(),
			"organization_id": req.Notification.OrganizationID,
			"error":           err,
		}).Warn("알림 채널 조회에 실패하여 알림을 보내지 못했습니다")

		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"provider":        req.Provider,
		"notification_id": id.String(),
		"recipients":      report.Recipients,
		"delivered":       report.Count(contract.StatusDelivered),
		"suppressed":      report.Count(contract.StatusSuppressed),
		"failed":          report.Count(contract.StatusFailed) + report.Count(contract.StatusRenderFailed),
	}).Debug("알림 디스패치 완료")

	return report, nil
}

// SendMessage 텍스트를 하나의 채널로 그대로 보냅니다.
//
// 전송 실패는 Provider가 로그로 남기고 상태로만 알려줍니다. 에러는 요청 자체가 잘못된 경우에만 반환합니다.
func (s *Service) SendMessage(ctx context.Context, req contract.MessageRequest) (contract.DeliveryStatus, error) {
	if !s.isRunning() {
		return "", ErrServiceNotRunning
	}

	if strings.TrimSpace(req.ChannelID) == "" {
		return "", apperrors.New(apperrors.InvalidInput, "channel_id는 비워둘 수 없습니다")
	}

	p, err := s.registry.Lookup(req.Provider)
	if err != nil {
		return "", err
	}

	integration, ok := s.integrations[req.IntegrationID]
	if !ok {
		return "", NewErrIntegrationNotFound(req.IntegrationID)
	}
	if integration.Provider != req.Provider {
		return "", apperrors.Newf(apperrors.InvalidInput, "Integration '%s'은(는) %s Provider의 Integration이 아닙니다", integration.ID, req.Provider)
	}

	return p.SendRawMessage(ctx, integration, req.ChannelID, req.Text), nil
}

// Health 서비스가 요청을 처리할 수 있는 상태인지 확인합니다.
func (s *Service) Health() error {
	if !s.isRunning() {
		return ErrServiceNotRunning
	}
	if len(s.registry.Providers()) == 0 {
		return ErrNoProviders
	}
	return nil
}

func (s *Service) isRunning() bool {
	s.runningMu.RLock()
	defer s.runningMu.RUnlock()

	return s.running
}

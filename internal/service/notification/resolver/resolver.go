// Package resolver 설정 파일의 라우팅 테이블로 수신자별 채널/Integration을 조회합니다.
package resolver

import (
	"context"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
)

// Route 조직 내 하나의 수신자가 하나의 채널로 알림을 받는 규칙입니다.
type Route struct {
	OrganizationID string
	Recipient      contract.Actor
	ChannelID      string
	IntegrationID  string
}

type routeKey struct {
	organizationID string
	recipient      contract.Actor
}

// StaticResolver 시작 시점에 구성된 라우팅 테이블을 사용하는 Resolver입니다.
//
// 테이블은 생성 이후 변경되지 않으므로 동시에 호출해도 안전하며,
// Resolve는 호출마다 새로운 매핑을 만들어 반환합니다.
type StaticResolver struct {
	routes map[routeKey][]resolvedRoute
}

type resolvedRoute struct {
	channelID   string
	integration contract.Integration
}

// NewStaticResolver 라우팅 테이블을 구성합니다. 모든 Route는 integrations에 정의된 Integration을 참조해야 합니다.
func NewStaticResolver(integrations []contract.Integration, routes []Route) (*StaticResolver, error) {
	byID := make(map[string]contract.Integration, len(integrations))
	for _, integration := range integrations {
		if _, exists := byID[integration.ID]; exists {
			return nil, apperrors.Newf(apperrors.Conflict, "Integration ID가 중복되었습니다: '%s'", integration.ID)
		}
		byID[integration.ID] = integration
	}

	r := &StaticResolver{routes: make(map[routeKey][]resolvedRoute)}
	for _, route := range routes {
		integration, ok := byID[route.IntegrationID]
		if !ok {
			return nil, apperrors.Newf(apperrors.InvalidInput, "정의되지 않은 Integration을 참조하는 라우트입니다: '%s' (수신자: %s)", route.IntegrationID, route.Recipient)
		}
		if route.ChannelID == "" {
			return nil, apperrors.Newf(apperrors.InvalidInput, "라우트의 channel_id가 비어 있습니다 (수신자: %s)", route.Recipient)
		}

		key := routeKey{organizationID: route.OrganizationID, recipient: route.Recipient}
		r.routes[key] = append(r.routes[key], resolvedRoute{channelID: route.ChannelID, integration: integration})
	}

	return r, nil
}

// Resolve organizationID 조직의 recipients 중 provider 채널이 하나 이상 있는 수신자만 포함한 매핑을 반환합니다.
// recipients에 중복이 있어도 결과에는 한 번만 포함됩니다.
func (r *StaticResolver) Resolve(ctx context.Context, organizationID string, recipients []contract.Actor, provider contract.ExternalProvider) (contract.ChannelIntegrationMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.Timeout, "채널 조회가 취소되었습니다")
	}

	result := make(contract.ChannelIntegrationMap)
	for _, recipient := range recipients {
		if _, done := result[recipient]; done {
			continue
		}

		var channels contract.ChannelIntegrations
		for _, route := range r.routes[routeKey{organizationID: organizationID, recipient: recipient}] {
			if route.integration.Provider != provider {
				continue
			}
			if channels == nil {
				channels = make(contract.ChannelIntegrations)
			}
			channels[route.channelID] = route.integration
		}

		if len(channels) > 0 {
			result[recipient] = channels
		}
	}

	return result, nil
}

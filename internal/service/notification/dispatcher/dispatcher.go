// Package dispatcher 하나의 알림을 여러 수신자와 채널로 전달하는 디스패치 루프를 제공합니다.
//
// 디스패치는 다음 순서로 진행됩니다.
//  1. Resolver를 한 번 호출하여 수신자별 채널/Integration 매핑을 만듭니다.
//  2. 매핑에 채널이 있는 수신자마다 메시지를 한 번 렌더링합니다.
//  3. 해당 수신자의 채널마다 Client를 한 번 호출합니다.
//  4. 모든 작업이 끝나면 전송 카운터를 한 번 증가시킵니다.
//
// 각 (수신자, 채널) 작업의 결과는 contract.Outcome으로 수집되며, 하나의 실패가 다른 작업에 영향을 주지 않습니다.
package dispatcher

import (
	"context"
	"fmt"
	"sort"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/pkg/tracing"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const component = "notification.dispatcher"

// Dispatcher 하나의 Provider에 대한 디스패치 루프입니다. A는 Provider가 렌더링한 메시지 타입입니다.
//
// Dispatcher는 상태를 갖지 않으므로 여러 고루틴에서 동시에 Dispatch를 호출해도 안전합니다.
type Dispatcher[A any] struct {
	provider contract.ExternalProvider
	resolver Resolver
	renderer Renderer[A]
	client   Client[A]

	metrics        Metrics
	tracer         trace.Tracer
	maxConcurrency int
	errorLogKey    string
}

// New Dispatcher를 생성합니다. resolver, renderer, client는 필수입니다.
func New[A any](provider contract.ExternalProvider, resolver Resolver, renderer Renderer[A], client Client[A], opts ...Option) *Dispatcher[A] {
	if resolver == nil || renderer == nil || client == nil {
		panic(fmt.Sprintf("dispatcher: %s Provider의 Resolver, Renderer, Client는 필수입니다", provider))
	}

	o := options{
		metrics:        nopMetrics{},
		maxConcurrency: 1,
		errorLogKey:    defaultErrorLogKey,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tracer == nil {
		o.tracer = tracing.Tracer(nil)
	}

	return &Dispatcher[A]{
		provider:       provider,
		resolver:       resolver,
		renderer:       renderer,
		client:         client,
		metrics:        o.metrics,
		tracer:         o.tracer,
		maxConcurrency: o.maxConcurrency,
		errorLogKey:    o.errorLogKey,
	}
}

// Provider 디스패처가 담당하는 Provider를 반환합니다.
func (d *Dispatcher[A]) Provider() contract.ExternalProvider {
	return d.provider
}

// Dispatch 알림을 recipients에게 전달합니다.
//
// 채널 조회 실패만 에러로 반환합니다. 개별 전송 실패는 Report에 기록되며,
// 예상된 실패(만료된 URL, 삭제된 채널)는 로그 없이 무시하고 그 밖의 실패는 한 번 로그로 남깁니다.
// extraByActor는 nil일 수 있습니다.
func (d *Dispatcher[A]) Dispatch(ctx context.Context, n *contract.Notification, recipients []contract.Actor, shared contract.Context, extraByActor map[contract.Actor]contract.Context) (*contract.Report, error) {
	if n == nil {
		return nil, contract.ErrNotificationRequired
	}

	opAttr := tracing.AttrOperation.String(tracing.Operation(d.provider.String()))

	resolveCtx, span := d.tracer.Start(ctx, tracing.SpanResolve, trace.WithAttributes(opAttr))
	channelMap, err := d.resolver.Resolve(resolveCtx, n.OrganizationID, recipients, d.provider)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()

		return nil, apperrors.Wrapf(err, apperrors.ResolveFailed, "%s 알림 채널 조회에 실패하였습니다", d.provider)
	}
	span.End()

	actors := notifiableActors(channelMap)

	// 수신자마다 자신의 슬롯에만 기록하므로 병렬 처리에도 잠금이 필요하지 않습니다.
	results := make([][]contract.Outcome, len(actors))
	notify := func(i int) {
		actor := actors[i]
		results[i] = d.notifyRecipient(ctx, opAttr, n, actor, channelMap[actor], shared, extraByActor[actor])
	}

	if d.maxConcurrency > 1 && len(actors) > 1 {
		var g errgroup.Group
		g.SetLimit(d.maxConcurrency)
		for i := range actors {
			g.Go(func() error {
				notify(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range actors {
			notify(i)
		}
	}

	report := &contract.Report{
		Provider:   d.provider,
		Recipients: len(actors),
	}
	for _, outcomes := range results {
		for _, o := range outcomes {
			d.metrics.ObserveDelivery(d.provider, o.Status)
		}
		report.Outcomes = append(report.Outcomes, outcomes...)
	}

	d.metrics.IncSent(
		fmt.Sprintf("%s.notifications.sent", n.MetricsKey),
		fmt.Sprintf("%s.%s.notification", d.provider, n.MetricsKey),
	)

	return report, nil
}

// notifyRecipient 한 수신자의 메시지를 한 번 렌더링하고 모든 채널로 전송합니다.
func (d *Dispatcher[A]) notifyRecipient(ctx context.Context, opAttr attribute.KeyValue, n *contract.Notification, actor contract.Actor, channels contract.ChannelIntegrations, shared, extra contract.Context) []contract.Outcome {
	ctx, span := d.tracer.Start(ctx, tracing.SpanSend, trace.WithAttributes(opAttr, attribute.String("notification.recipient", actor.String())))
	defer span.End()

	renderCtx, renderSpan := d.tracer.Start(ctx, tracing.SpanRender, trace.WithAttributes(opAttr))
	attachments, err := d.render(renderCtx, n, actor, shared, extra)
	if err != nil {
		renderSpan.RecordError(err)
		renderSpan.SetStatus(codes.Error, err.Error())
		renderSpan.End()

		d.logFailure(n, actor, "", contract.Integration{}, err, "수신자의 알림 메시지를 생성하지 못했습니다")

		return []contract.Outcome{{
			Recipient: actor,
			Status:    contract.StatusRenderFailed,
			Err:       err,
		}}
	}
	renderSpan.End()

	channelIDs := make([]string, 0, len(channels))
	for channelID := range channels {
		channelIDs = append(channelIDs, channelID)
	}
	sort.Strings(channelIDs)

	outcomes := make([]contract.Outcome, 0, len(channelIDs))
	for _, channelID := range channelIDs {
		integration := channels[channelID]

		err := d.send(ctx, Delivery[A]{
			Notification: n,
			Recipient:    actor,
			ChannelID:    channelID,
			Integration:  integration,
			Attachments:  attachments,
			Shared:       shared,
		})

		status := delivery.Classify(err)
		if status == contract.StatusFailed {
			span.RecordError(err)
			d.logFailure(n, actor, channelID, integration, err, d.errorLogKey)
		}

		outcomes = append(outcomes, contract.Outcome{
			Recipient:     actor,
			ChannelID:     channelID,
			IntegrationID: integration.ID,
			Status:        status,
			Err:           err,
		})
	}

	return outcomes
}

func (d *Dispatcher[A]) render(ctx context.Context, n *contract.Notification, actor contract.Actor, shared, extra contract.Context) (attachments A, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Newf(apperrors.RenderFailed, "렌더링 중 panic이 발생하였습니다: %v", r)
		}
	}()

	attachments, err = d.renderer.GetAttachments(ctx, n, actor, shared, extra)
	if err != nil {
		err = apperrors.Wrap(err, apperrors.RenderFailed, "알림 메시지 렌더링에 실패하였습니다")
	}
	return attachments, err
}

// send Client를 호출합니다. Client에서 발생한 panic은 해당 작업의 실패로만 처리합니다.
func (d *Dispatcher[A]) send(ctx context.Context, req Delivery[A]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Newf(apperrors.DeliveryFailed, "전송 중 panic이 발생하였습니다: %v", r)
		}
	}()

	return d.client.NotifyRecipient(ctx, req)
}

func (d *Dispatcher[A]) logFailure(n *contract.Notification, actor contract.Actor, channelID string, integration contract.Integration, err error, message string) {
	fields := applog.Fields{
		"provider":          d.provider,
		"notification_id":   n.ID.String(),
		"notification_type": n.Type,
		"organization_id":   n.OrganizationID,
		"recipient":         actor.String(),
		"error":             err.Error(),
	}
	if channelID != "" {
		fields["channel_id"] = channelID
		fields["integration_id"] = integration.ID
	}

	applog.WithComponentAndFields(component, fields).Error(message)
}

// notifiableActors 채널이 하나 이상 조회된 수신자를 일정한 순서로 반환합니다.
func notifiableActors(m contract.ChannelIntegrationMap) []contract.Actor {
	actors := make([]contract.Actor, 0, len(m))
	for actor, channels := range m {
		if len(channels) == 0 {
			continue
		}
		actors = append(actors, actor)
	}

	sort.Slice(actors, func(i, j int) bool {
		return actors[i].String() < actors[j].String()
	})

	return actors
}

// Package metrics 알림 디스패치 카운터를 Prometheus로 노출합니다.
package metrics

import (
	"strings"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/iancoleman/strcase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notify"

// Recorder 디스패치 호출 수와 작업 단위별 전송 결과를 집계합니다.
type Recorder struct {
	sent       *prometheus.CounterVec
	deliveries *prometheus.CounterVec
}

// NewRecorder reg에 카운터를 등록한 Recorder를 생성합니다. reg가 nil이면 기본 레지스트리를 사용합니다.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		sent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "디스패치 호출 수 (실제 전달 여부와 무관)",
		}, []string{"metrics_key", "instance"}),
		deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_deliveries_total",
			Help:      "(수신자, 채널) 작업 단위별 전송 결과",
		}, []string{"provider", "status"}),
	}
}

// IncSent name("<metrics_key>.notifications.sent")과 instance 레이블로 디스패치 카운터를 증가시킵니다.
func (r *Recorder) IncSent(name, instance string) {
	key := strings.TrimSuffix(name, ".notifications.sent")
	r.sent.WithLabelValues(Normalize(key), instance).Inc()
}

// ObserveDelivery 작업 단위 하나의 결과를 집계합니다.
func (r *Recorder) ObserveDelivery(provider contract.ExternalProvider, status contract.DeliveryStatus) {
	r.deliveries.WithLabelValues(provider.String(), string(status)).Inc()
}

// Normalize 레이블 값을 snake_case로 통일합니다. ("AlertRule", "alert-rule" -> "alert_rule")
func Normalize(key string) string {
	return strcase.ToSnake(strings.TrimSpace(key))
}

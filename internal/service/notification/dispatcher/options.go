package dispatcher

import (
	"go.opentelemetry.io/otel/trace"
)

const defaultErrorLogKey = "notification.notify-recipient.error"

type options struct {
	metrics        Metrics
	tracer         trace.Tracer
	maxConcurrency int
	errorLogKey    string
}

// Option Dispatcher의 선택 설정입니다.
type Option func(*options)

// WithMetrics 디스패치 결과를 집계할 Metrics를 지정합니다.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithTracer 스팬을 기록할 Tracer를 지정합니다. 지정하지 않으면 전역 TracerProvider를 사용합니다.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithMaxConcurrency 동시에 처리할 수신자 수를 지정합니다. 1 이하이면 순차적으로 처리합니다.
func WithMaxConcurrency(n int) Option {
	return func(o *options) {
		o.maxConcurrency = n
	}
}

// WithErrorLogKey 예상하지 못한 전송 실패를 기록할 때 사용할 로그 메시지입니다.
func WithErrorLogKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.errorLogKey = key
		}
	}
}

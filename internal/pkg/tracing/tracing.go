// Package tracing OpenTelemetry TracerProvider 구성과 알림 디스패치 스팬 이름을 관리합니다.
package tracing

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName 디스패처가 사용하는 Tracer의 이름입니다.
const InstrumentationName = "github.com/darkkaiser/notify-dispatcher"

// 디스패치 과정의 스팬 이름입니다.
const (
	SpanResolve = "gen_channel_integration_map"
	SpanRender  = "gen_attachments"
	SpanSend    = "send_one"
)

// AttrOperation 스팬의 작업 종류를 나타내는 속성 키입니다. 값은 Operation으로 만듭니다.
const AttrOperation = attribute.Key("notification.op")

// Operation Provider별 스팬 작업 이름("notification.send_slack")을 반환합니다.
func Operation(provider string) string {
	return "notification.send_" + strings.ToLower(provider)
}

// Options TracerProvider 구성 옵션입니다.
type Options struct {
	Enabled     bool
	ServiceName string
	Endpoint    string  // OTLP/HTTP 수집기 주소 (예: "localhost:4318")
	Insecure    bool    // TLS 없이 전송
	SampleRatio float64 // 0.0 ~ 1.0
}

// Shutdown TracerProvider를 종료하고 남은 스팬을 내보냅니다.
type Shutdown func(ctx context.Context) error

// Setup 전역 TracerProvider를 구성합니다.
//
// Enabled가 false이면 아무것도 기록하지 않는 Tracer를 사용하며, 반환된 Shutdown은 아무 일도 하지 않습니다.
func Setup(ctx context.Context, opts Options) (trace.TracerProvider, Shutdown, error) {
	if !opts.Enabled {
		tp := noop.NewTracerProvider()
		return tp, func(context.Context) error { return nil }, nil
	}

	clientOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(opts.Endpoint)}
	if opts.Insecure {
		clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, clientOpts...)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.System, "OTLP 트레이스 익스포터를 생성할 수 없습니다")
	}

	tp := NewProvider(sdktrace.NewBatchSpanProcessor(exporter, sdktrace.WithBatchTimeout(5*time.Second)), opts.SampleRatio)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, tp.Shutdown, nil
}

// NewProvider 주어진 SpanProcessor로 스팬을 내보내는 TracerProvider를 생성합니다.
func NewProvider(processor sdktrace.SpanProcessor, sampleRatio float64) *sdktrace.TracerProvider {
	sampler := sdktrace.AlwaysSample()
	if sampleRatio > 0 && sampleRatio < 1 {
		sampler = sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithSampler(sampler),
	)
}

// Tracer tp에서 디스패처용 Tracer를 얻습니다. tp가 nil이면 전역 TracerProvider를 사용합니다.
func Tracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(InstrumentationName)
}

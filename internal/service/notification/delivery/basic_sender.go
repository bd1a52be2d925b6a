package delivery

import (
	"context"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
)

const (
	component = "notification.delivery"

	defaultBasicSendLogKey = "notification.basic-send.error"
)

// BasicSender 수신자 조회와 렌더링 없이 하나의 채널에 텍스트를 그대로 보냅니다.
// 슬래시 커맨드 응답처럼 요청한 채널로 바로 답하는 경로에서 사용합니다.
//
// 전송 실패는 호출자에게 전파하지 않습니다. 예상된 실패는 조용히 무시하고,
// 그 밖의 실패는 에러 문자열을 담아 한 번 로그로 남깁니다.
type BasicSender struct {
	provider contract.ExternalProvider
	factory  PosterFactory
}

// NewBasicSender BasicSender를 생성합니다.
func NewBasicSender(provider contract.ExternalProvider, factory PosterFactory) *BasicSender {
	if factory == nil {
		panic("delivery: PosterFactory는 필수입니다")
	}

	return &BasicSender{
		provider: provider,
		factory:  factory,
	}
}

// SendRawMessage text를 channelID로 보냅니다. 결과 상태만 반환하며 에러는 반환하지 않습니다.
func (s *BasicSender) SendRawMessage(ctx context.Context, integration contract.Integration, channelID, text string) contract.DeliveryStatus {
	fields := applog.Fields{
		"provider":       s.provider,
		"integration_id": integration.ID,
		"channel_id":     channelID,
	}

	poster, err := s.textPoster(integration)
	if err != nil {
		fields["error"] = err.Error()
		applog.WithComponentAndFields(component, fields).Error(defaultBasicSendLogKey)
		return contract.StatusFailed
	}

	err = s.post(ctx, poster, channelID, text)

	status := Classify(err)
	if status == contract.StatusFailed {
		logKey := defaultBasicSendLogKey
		if k, ok := poster.(LogKeyer); ok {
			logKey = k.LogKey()
		}

		fields["error"] = err.Error()
		applog.WithComponentAndFields(component, fields).Error(logKey)
	}

	return status
}

func (s *BasicSender) textPoster(integration contract.Integration) (poster TextPoster, err error) {
	defer func() {
		if r := recover(); r != nil {
			poster = nil
			err = apperrors.Newf(apperrors.DeliveryFailed, "전송 클라이언트 생성 중 panic이 발생하였습니다: %v", r)
		}
	}()

	return s.factory.TextPoster(integration)
}

// post PostText에서 발생한 panic은 전송 실패로만 처리합니다.
func (s *BasicSender) post(ctx context.Context, poster TextPoster, channelID, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Newf(apperrors.DeliveryFailed, "전송 중 panic이 발생하였습니다: %v", r)
		}
	}()

	return poster.PostText(ctx, channelID, text)
}

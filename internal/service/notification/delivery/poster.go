// Package delivery 메신저 API 클라이언트를 하나의 인터페이스로 통일하고,
// 전송 실패를 분류하는 공통 규칙을 제공합니다.
//
// Provider마다 클라이언트의 형태(SDK, 저수준 HTTP, 봇 API)와 에러 타입이 다르지만,
// 각 어댑터가 TextPoster를 구현하고 에러를 *Error로 정규화하므로
// 호출하는 쪽에서는 구체적인 클라이언트 종류에 따라 분기하지 않습니다.
package delivery

import (
	"context"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
)

// TextPoster 하나의 채널로 텍스트 메시지를 보내는 클라이언트입니다.
// 실패 시 가능한 한 *Error를 반환해야 합니다.
type TextPoster interface {
	PostText(ctx context.Context, channelID, text string) error
}

// PosterFactory Integration에 맞는 TextPoster를 생성합니다.
type PosterFactory interface {
	TextPoster(integration contract.Integration) (TextPoster, error)
}

// LogKeyer 클라이언트 형태별로 구분되는 에러 로그 메시지를 제공합니다.
// 구현하지 않은 클라이언트는 기본 메시지를 사용합니다.
type LogKeyer interface {
	LogKey() string
}

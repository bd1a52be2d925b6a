// Package response v1 API의 응답 본문 모델을 정의합니다.
package response

import commonresponse "github.com/darkkaiser/notify-dispatcher/internal/service/api/model/response"

// NotificationResponse 알림 디스패치 결과 요약
//
// 개별 전송 실패는 에러 응답이 아니라 failed/render_failed 건수로만 보고됩니다.
type NotificationResponse struct {
	ResultCode     int    `json:"result_code" example:"0"`
	NotificationID string `json:"notification_id" example:"3f2b8c4e-0f0a-4a4e-9a57-0d3c4a7e9b11"`
	Provider       string `json:"provider" example:"slack"`

	// 채널이 하나 이상 조회된 수신자 수
	Recipients int `json:"recipients" example:"2"`

	Delivered    int `json:"delivered" example:"3"`
	Suppressed   int `json:"suppressed" example:"0"`
	Failed       int `json:"failed" example:"0"`
	RenderFailed int `json:"render_failed" example:"0"`
}

// MessageResponse 단일 채널 메시지 전송 결과
type MessageResponse struct {
	ResultCode int `json:"result_code" example:"0"`

	// 전송 상태 (delivered, suppressed, failed)
	Status string `json:"status" example:"delivered"`
}

// ErrorResponse v1 API의 에러 응답 본문입니다. 서버 전역 에러 핸들러와 같은 형식을 사용합니다.
type ErrorResponse = commonresponse.ErrorResponse

// Package response API 응답의 공통 본문 형식을 정의합니다.
package response

// ErrorResponse API 에러 응답 구조체
type ErrorResponse struct {
	// 결과 코드 (HTTP 상태 코드와 동일)
	ResultCode int `json:"result_code" example:"400"`

	// 에러 메시지
	Message string `json:"message" example:"app_key가 유효하지 않습니다.(application_id:my-app)"`
}

// SuccessResponse API 성공 응답 구조체
type SuccessResponse struct {
	// 결과 코드 (0: 성공)
	ResultCode int `json:"result_code" example:"0"`

	// 결과 메시지
	Message string `json:"message,omitempty" example:"성공"`
}

package errors

//go:generate stringer -type=ErrorType

// ErrorType 에러의 성격을 분류하는 타입입니다.
// HTTP 응답 코드 결정과 로그 레벨 선택의 기준이 됩니다.
type ErrorType int

const (
	// Unknown 분류할 수 없는 에러입니다. (기본값)
	Unknown ErrorType = iota

	// Internal 애플리케이션 내부 로직 오류입니다. 버그로 간주합니다.
	Internal

	// System 파일 I/O, 네트워크 초기화 등 실행 환경 수준의 오류입니다.
	System

	// Unauthorized 인증 정보가 없거나 올바르지 않습니다.
	Unauthorized

	// Forbidden 인증은 되었지만 권한이 없습니다.
	Forbidden

	// InvalidInput 설정값이나 요청 데이터가 형식 또는 조건을 만족하지 않습니다.
	InvalidInput

	// Conflict 이미 존재하는 리소스와 충돌합니다. (예: 같은 Provider의 중복 등록)
	Conflict

	// NotFound 요청한 리소스(Provider, Integration 등)를 찾을 수 없습니다.
	NotFound

	// Timeout 외부 호출이 제한 시간 안에 끝나지 않았습니다.
	Timeout

	// Unavailable 서비스가 중지되었거나 일시적으로 사용할 수 없습니다.
	Unavailable

	// RateLimited 외부 API가 호출 빈도를 제한했습니다.
	RateLimited

	// DeliveryFailed 메신저 API로의 메시지 전송이 실패했습니다.
	DeliveryFailed

	// RenderFailed 알림 메시지(Attachments) 생성이 실패했습니다.
	RenderFailed

	// ResolveFailed 수신자별 채널/연동 정보 조회가 실패했습니다.
	ResolveFailed
)

// Package mark 알림 제목 앞에 붙이는 심각도 이모지를 관리합니다.
package mark

// Mark 이모지 상수를 위한 타입입니다.
type Mark string

const (
	// 정보
	Info Mark = "ℹ️"

	// 경고
	Warning Mark = "⚠️"

	// 오류
	Error Mark = "🔴"

	// 긴급/치명적 오류
	Alert Mark = "🚨"
)

var byLevel = map[string]Mark{
	"info":    Info,
	"warning": Warning,
	"error":   Error,
	"fatal":   Alert,
}

// ForLevel 알림 심각도(info, warning, error, fatal)에 해당하는 마크를 반환합니다.
// 알 수 없는 심각도이면 빈 마크를 반환합니다.
func ForLevel(level string) Mark {
	return byLevel[level]
}

// Prefix 마크 뒤에 구분용 공백을 붙여 반환합니다. 빈 마크이면 빈 문자열입니다.
func (m Mark) Prefix() string {
	if m == "" {
		return ""
	}
	return string(m) + " "
}

// String 마크의 순수 이모지 값을 문자열로 반환합니다.
func (m Mark) String() string {
	return string(m)
}

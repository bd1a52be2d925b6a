// Package log logrus 기반의 애플리케이션 공용 로거를 제공합니다.
//
// 모든 로그는 컴포넌트 이름("notification.dispatcher", "api.service" 등)을 component 필드로 기록하며,
// 파일 로테이션과 레벨별 분리 저장은 Setup에서 구성합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// WithComponent 컴포넌트 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields 컴포넌트 필드와 추가 필드가 설정된 로그 엔트리를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	return logrus.WithField("component", component).WithFields(fields)
}

// WithFields 추가 필드가 설정된 로그 엔트리를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// StandardLogger 전역 logrus 로거를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode 디버그 모드 여부에 따라 전역 로그 레벨을 조정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

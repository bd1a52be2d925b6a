// Package system 시스템 엔드포인트(/health, /version)의 응답 모델을 정의합니다.
package system

// HealthResponse 서버 헬스체크 응답
type HealthResponse struct {
	// 서버 전체 상태 (healthy, unhealthy)
	Status string `json:"status" example:"healthy"`

	// 서버 가동 시간 (초)
	Uptime int64 `json:"uptime" example:"3600"`

	// 의존성별 상태
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus 개별 의존성의 상태
type DependencyStatus struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty" example:"정상 작동 중"`
}

// VersionResponse 서버 빌드 정보 응답
type VersionResponse struct {
	Version     string `json:"version" example:"v1.0.0"`
	Commit      string `json:"commit" example:"f25b8bf"`
	BuildDate   string `json:"build_date" example:"2025-12-01T14:00:00Z"`
	BuildNumber string `json:"build_number" example:"100"`
	GoVersion   string `json:"go_version" example:"go1.24.0"`
}

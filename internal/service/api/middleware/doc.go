// Package middleware 알림 API 서버의 Echo 미들웨어를 제공합니다.
//
//   - PanicRecovery: 핸들러 panic 복구 및 로깅
//   - HTTPLogger: 요청/응답 구조화 로깅 (민감한 쿼리 파라미터 마스킹)
//   - RateLimiting: IP별 요청 속도 제한
//   - ValidateContentType: 요청 본문의 Content-Type 검증
//   - RequireAuthentication: App Key 기반 애플리케이션 인증
//   - Logger: Echo 내부 로그를 애플리케이션 로거로 연결하는 어댑터
package middleware

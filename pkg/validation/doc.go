// Package validation 설정 파일과 API 요청에 포함된 주소 값의 유효성을 검사합니다.
//
// 모든 함수는 유효하지 않은 입력에 대해 원인을 설명하는 error를 반환하며, 여러 고루틴에서 동시에 호출해도 안전합니다.
package validation

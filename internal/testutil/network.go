// Package testutil 서버를 실제 포트로 띄우는 테스트에서 공통으로 사용하는 도우미입니다.
package testutil

import (
	"net"
	"testing"
)

// FreePort 테스트용으로 사용 가능한 임의의 로컬 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("사용 가능한 포트를 찾지 못했습니다: %v", err)
	}
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// OccupiedPort 테스트가 끝날 때까지 점유된 포트를 반환합니다.
func OccupiedPort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("포트를 점유하지 못했습니다: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	return l.Addr().(*net.TCPAddr).Port
}

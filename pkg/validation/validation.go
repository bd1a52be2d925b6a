package validation

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ValidateCORSOrigin origin이 'Scheme://Host[:Port]' 형식의 CORS Origin인지 검사합니다. '*'는 유효합니다.
//
// 경로, 쿼리, 프래그먼트, 사용자 정보, 후행 슬래시('/')를 포함하면 유효하지 않습니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	switch {
	case origin == "*":
		return nil
	case origin == "":
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	case strings.HasSuffix(origin, "/"):
		return fmt.Errorf("CORS Origin 포맷 오류: 경로 구분자('/')로 끝날 수 없습니다 (input=%q)", origin)
	}

	u, err := parseHTTPURL(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin 형식 오류: %w", err)
	}

	switch {
	case u.Path != "":
		return fmt.Errorf("CORS Origin 포맷 오류: 경로(Path)를 포함할 수 없습니다 (input=%q)", origin)
	case u.RawQuery != "" || u.ForceQuery:
		return fmt.Errorf("CORS Origin 포맷 오류: 쿼리 파라미터를 포함할 수 없습니다 (input=%q)", origin)
	case u.Fragment != "":
		return fmt.Errorf("CORS Origin 포맷 오류: URL Fragment(#)를 포함할 수 없습니다 (input=%q)", origin)
	case u.User != nil:
		return fmt.Errorf("CORS Origin 포맷 오류: 사용자 자격 증명(UserInfo)을 포함할 수 없습니다 (input=%q)", origin)
	}

	return nil
}

// ValidateURL rawURL이 호스트를 가진 http(s) URL인지 검사합니다. 빈 문자열은 유효합니다.
//
// Integration의 api_url, 알림의 url 등 외부로 나가는 주소에 사용합니다.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}

	_, err := parseHTTPURL(rawURL)
	return err
}

// ValidateEndpoint endpoint가 'Host:Port' 형식인지 검사합니다. (예: OTLP 수집기 주소 localhost:4318)
func ValidateEndpoint(endpoint string) error {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return fmt.Errorf("주소는 'Host:Port' 형식이어야 합니다 (input=%q): %w", endpoint, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("포트 번호가 숫자가 아닙니다 (input=%q)", endpoint)
	}
	if err := ValidatePort(port); err != nil {
		return err
	}

	return ValidateHostname(host)
}

// ValidatePort 포트 번호가 유효한 범위(1-65535) 내에 있는지 검사합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname host가 localhost, IP 주소 또는 RFC 1123 호스트명인지 검사합니다.
func ValidateHostname(host string) error {
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}

	if host == "" {
		return fmt.Errorf("호스트명이 비어 있습니다")
	}
	if len(host) > 253 {
		return fmt.Errorf("호스트명 전체 길이는 253자를 초과할 수 없습니다 (len=%d)", len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if err := validateLabel(host, label); err != nil {
			return err
		}
	}

	// 최상위 도메인은 숫자로만 구성될 수 없습니다.
	if tld := labels[len(labels)-1]; strings.Trim(tld, "0123456789") == "" {
		return fmt.Errorf("최상위 도메인(TLD)은 숫자로만 구성될 수 없습니다 (tld=%q)", tld)
	}

	return nil
}

func validateLabel(host, label string) error {
	switch {
	case len(label) == 0:
		return fmt.Errorf("호스트명에 빈 레이블(연속된 점 등)이 포함되어 있습니다 (host=%q)", host)
	case len(label) > 63:
		return fmt.Errorf("각 레이블은 63자를 초과할 수 없습니다 (label=%q)", label)
	case label[0] == '-' || label[len(label)-1] == '-':
		return fmt.Errorf("레이블은 하이픈(-)으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
	}

	for _, r := range label {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
			return fmt.Errorf("호스트명은 영문, 숫자, 하이픈(-)으로만 구성되어야 합니다 (invalid_char=%q, host=%q)", r, host)
		}
	}
	return nil
}

// parseHTTPURL http(s) 스키마와 유효한 호스트를 가진 URL을 파싱합니다.
func parseHTTPURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("유효한 URL 형식이 아닙니다 (input=%q): %w", rawURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("'http' 또는 'https' 스키마만 허용됩니다 (input=%q)", rawURL)
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("포트 번호가 유효하지 않습니다 (input=%q, port=%s)", rawURL, p)
		}
		if err := ValidatePort(port); err != nil {
			return nil, err
		}
	}

	if err := ValidateHostname(u.Hostname()); err != nil {
		return nil, fmt.Errorf("호스트 유효성 검증 실패 (input=%q): %w", rawURL, err)
	}

	return u, nil
}

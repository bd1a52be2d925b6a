package contract

// DeliveryStatus 하나의 (수신자, 채널) 전송 시도의 결과입니다.
type DeliveryStatus string

const (
	// StatusDelivered 메신저 API가 메시지를 수락했습니다.
	StatusDelivered DeliveryStatus = "delivered"

	// StatusSuppressed 만료된 URL, 삭제된 채널처럼 예상된 실패로 분류되어 조용히 무시되었습니다.
	StatusSuppressed DeliveryStatus = "suppressed"

	// StatusFailed 예상하지 못한 실패입니다. 에러 로그가 한 번 기록됩니다.
	StatusFailed DeliveryStatus = "failed"

	// StatusRenderFailed 수신자의 메시지 생성에 실패하여 전송을 시도하지 않았습니다.
	StatusRenderFailed DeliveryStatus = "render_failed"
)

// Outcome 하나의 작업 단위(수신자, 채널)의 처리 결과입니다.
type Outcome struct {
	Recipient     Actor          `json:"recipient"`
	ChannelID     string         `json:"channel_id,omitempty"`
	IntegrationID string         `json:"integration_id,omitempty"`
	Status        DeliveryStatus `json:"status"`
	Err           error          `json:"-"`
}

// Report 한 번의 디스패치 호출에서 수집된 결과 목록입니다.
// 부분 실패는 여기에만 기록되며 호출자에게 에러로 전파되지 않습니다.
type Report struct {
	Provider   ExternalProvider `json:"provider"`
	Recipients int              `json:"recipients"`
	Outcomes   []Outcome        `json:"outcomes"`
}

// Count 지정한 상태의 결과 개수를 반환합니다.
func (r *Report) Count(status DeliveryStatus) int {
	if r == nil {
		return 0
	}

	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

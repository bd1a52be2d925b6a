package contract

// ExternalProvider 알림을 전달하는 외부 메신저 플랫폼입니다.
// Provider 레지스트리의 키로 사용됩니다.
type ExternalProvider string

const (
	ProviderSlack    ExternalProvider = "slack"
	ProviderTelegram ExternalProvider = "telegram"
)

func (p ExternalProvider) String() string {
	return string(p)
}

// ClientKind 메신저 API를 호출하는 클라이언트의 형태입니다.
type ClientKind string

const (
	// ClientKindSDK 플랫폼 SDK 클라이언트를 사용합니다.
	ClientKindSDK ClientKind = "sdk"

	// ClientKindHTTP SDK를 거치지 않고 HTTP로 API를 직접 호출합니다.
	ClientKindHTTP ClientKind = "http"
)

// Integration 하나의 워크스페이스(봇) 연결에 대해 메시지를 보내는 데 필요한 자격 정보입니다.
// 수신자/채널 쌍마다 다를 수 있습니다.
type Integration struct {
	ID         string           `json:"id"`
	Provider   ExternalProvider `json:"provider"`
	ClientKind ClientKind       `json:"client"`
	Token      string           `json:"-"`
	APIURL     string           `json:"api_url,omitempty"`
}

// ChannelIntegrations 채널 ID별 Integration 매핑입니다.
type ChannelIntegrations map[string]Integration

// ChannelIntegrationMap 수신자별 채널/Integration 매핑입니다.
// 디스패치 호출마다 새로 만들어지며 캐시되거나 저장되지 않습니다.
type ChannelIntegrationMap map[Actor]ChannelIntegrations

// Context 렌더러에 전달되는 읽기 전용 부가 정보입니다.
type Context map[string]any

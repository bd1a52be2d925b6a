package contract

import (
	"fmt"
	"strings"
)

// ActorType 수신자의 종류입니다.
type ActorType string

const (
	ActorTypeUser ActorType = "user"
	ActorTypeTeam ActorType = "team"
)

// Actor 알림을 받을 사용자 또는 팀입니다.
// 비교 가능한 값 타입이므로 map의 키로 사용할 수 있습니다.
type Actor struct {
	Type ActorType `json:"type" validate:"required,oneof=user team"`
	ID   string    `json:"id" validate:"required"`
}

func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.Type, a.ID)
}

// ParseActor "user:42" 형식의 문자열을 Actor로 변환합니다.
func ParseActor(s string) (Actor, error) {
	typ, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || id == "" {
		return Actor{}, fmt.Errorf("수신자 형식이 올바르지 않습니다: '%s' (형식: user:<id> 또는 team:<id>)", s)
	}

	actor := Actor{Type: ActorType(typ), ID: id}
	switch actor.Type {
	case ActorTypeUser, ActorTypeTeam:
		return actor, nil
	default:
		return Actor{}, fmt.Errorf("지원하지 않는 수신자 종류입니다: '%s'", typ)
	}
}

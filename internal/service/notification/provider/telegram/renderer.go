package telegram

import (
	"context"
	"html"
	"strings"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/pkg/mark"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/markup"
	"github.com/darkkaiser/notify-dispatcher/pkg/maputil"
	"github.com/tidwall/gjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message 한 수신자에게 보낼 Telegram HTML 메시지입니다.
type Message struct {
	HTML string
}

type renderContext struct {
	ProjectName string `json:"project_name"`
	Environment string `json:"environment"`
	SettingsURL string `json:"settings_url"`
}

// Renderer 알림을 Telegram HTML 메시지로 변환합니다.
type Renderer struct {
	printer *message.Printer
}

// NewRenderer Renderer를 생성합니다.
func NewRenderer() *Renderer {
	return &Renderer{printer: message.NewPrinter(language.Korean)}
}

// GetAttachments recipient에게 보낼 메시지를 생성합니다.
func (r *Renderer) GetAttachments(_ context.Context, n *contract.Notification, _ contract.Actor, shared, extra contract.Context) (Message, error) {
	if len(n.Data) > 0 && !gjson.ValidBytes(n.Data) {
		return Message{}, apperrors.Newf(apperrors.InvalidInput, "알림의 data가 올바른 JSON이 아닙니다 (id: %s)", n.ID)
	}

	rc, err := maputil.Decode[renderContext](maputil.Merge(shared, extra))
	if err != nil {
		return Message{}, err
	}

	body, err := markup.ToTelegramHTML(n.Message)
	if err != nil {
		return Message{}, apperrors.Wrap(err, apperrors.InvalidInput, "알림 본문을 해석할 수 없습니다")
	}

	var sections []string

	if title := strings.TrimSpace(n.Title); title != "" {
		title = mark.ForLevel(string(n.Level)).Prefix() + title
		sections = append(sections, "<b>"+html.EscapeString(title)+"</b>")
	}

	if body != "" {
		sections = append(sections, body)
	}

	var details []string
	gjson.GetBytes(n.Data, "fields").ForEach(func(_, field gjson.Result) bool {
		title, value := field.Get("title").String(), field.Get("value").String()
		if title != "" || value != "" {
			details = append(details, "• <b>"+html.EscapeString(title)+"</b>: "+html.EscapeString(value))
		}
		return true
	})
	if count := gjson.GetBytes(n.Data, "event_count").Int(); count > 0 {
		details = append(details, r.printer.Sprintf("발생 횟수: %d회", count))
	}
	if len(details) > 0 {
		sections = append(sections, strings.Join(details, "\n"))
	}

	if n.URL != "" {
		sections = append(sections, `<a href="`+html.EscapeString(n.URL)+`">자세히 보기</a>`)
	}

	// 푸터만 남은 메시지는 보내지 않음
	if len(sections) == 0 {
		return Message{}, apperrors.Newf(apperrors.RenderFailed, "렌더링 결과 보낼 내용이 없습니다 (id: %s)", n.ID)
	}

	if footer := footerHTML(rc); footer != "" {
		sections = append(sections, footer)
	}

	return Message{HTML: strings.Join(sections, "\n\n")}, nil
}

func footerHTML(rc *renderContext) string {
	var parts []string
	if rc.ProjectName != "" {
		parts = append(parts, "프로젝트: "+html.EscapeString(rc.ProjectName))
	}
	if rc.Environment != "" {
		parts = append(parts, "환경: "+html.EscapeString(rc.Environment))
	}

	var lines []string
	if len(parts) > 0 {
		lines = append(lines, "<i>"+strings.Join(parts, " | ")+"</i>")
	}
	if rc.SettingsURL != "" {
		lines = append(lines, `<a href="`+html.EscapeString(rc.SettingsURL)+`">알림 설정</a>`)
	}
	return strings.Join(lines, "\n")
}

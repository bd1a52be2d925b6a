package slack

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/markup"
	"github.com/darkkaiser/notify-dispatcher/pkg/maputil"
	"github.com/darkkaiser/notify-dispatcher/pkg/strutil"
	"github.com/slack-go/slack"
	"github.com/tidwall/gjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Block Kit 제한
const (
	maxHeaderRunes  = 150
	maxSectionRunes = 3000
	maxFields       = 10
	maxFieldRunes   = 2000
)

// Attachments 한 수신자에게 보낼 Slack 메시지입니다. 수신자의 모든 채널에서 재사용됩니다.
type Attachments struct {
	// Text 알림 미리보기와 Block을 표시할 수 없는 클라이언트에 사용되는 텍스트입니다.
	Text   string
	Blocks []slack.Block
}

// renderContext 공유 컨텍스트와 수신자별 컨텍스트를 합친 값입니다.
type renderContext struct {
	ProjectName string `json:"project_name"`
	Environment string `json:"environment"`
	SettingsURL string `json:"settings_url"`
}

var levelEmoji = map[contract.Level]string{
	contract.LevelInfo:    ":information_source:",
	contract.LevelWarning: ":warning:",
	contract.LevelError:   ":red_circle:",
	contract.LevelFatal:   ":rotating_light:",
}

// Renderer 알림을 Block Kit 메시지로 변환합니다.
type Renderer struct {
	printer *message.Printer
}

// NewRenderer Renderer를 생성합니다.
func NewRenderer() *Renderer {
	return &Renderer{printer: message.NewPrinter(language.Korean)}
}

// GetAttachments recipient에게 보낼 메시지를 생성합니다. extra가 shared보다 우선합니다.
func (r *Renderer) GetAttachments(_ context.Context, n *contract.Notification, _ contract.Actor, shared, extra contract.Context) (Attachments, error) {
	if len(n.Data) > 0 && !gjson.ValidBytes(n.Data) {
		return Attachments{}, apperrors.Newf(apperrors.InvalidInput, "알림의 data가 올바른 JSON이 아닙니다 (id: %s)", n.ID)
	}

	rc, err := maputil.Decode[renderContext](maputil.Merge(shared, extra))
	if err != nil {
		return Attachments{}, err
	}

	body, err := markup.ToSlackMrkdwn(n.Message)
	if err != nil {
		return Attachments{}, apperrors.Wrap(err, apperrors.InvalidInput, "알림 본문을 해석할 수 없습니다")
	}

	var blocks []slack.Block

	if title := strings.TrimSpace(n.Title); title != "" {
		if emoji, ok := levelEmoji[n.Level]; ok {
			title = emoji + " " + title
		}
		blocks = append(blocks, slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, strutil.Truncate(title, maxHeaderRunes), true, false),
		))
	}

	if body != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, strutil.Truncate(body, maxSectionRunes), false, false), nil, nil,
		))
	}

	if fields := r.fields(n); len(fields) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}

	if count := gjson.GetBytes(n.Data, "event_count").Int(); count > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, r.printer.Sprintf("발생 횟수: *%d*회", count), false, false),
		))
	}

	if n.URL != "" {
		button := slack.NewButtonBlockElement("open_notification", n.ID.String(),
			slack.NewTextBlockObject(slack.PlainTextType, "자세히 보기", false, false))
		button.URL = n.URL
		blocks = append(blocks, slack.NewActionBlock("", button))
	}

	if footer := footerText(rc); footer != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, footer, false, false),
		))
	}

	return Attachments{Text: fallbackText(n), Blocks: blocks}, nil
}

// fields data.fields[] 배열을 Section 필드로 변환합니다.
func (r *Renderer) fields(n *contract.Notification) []*slack.TextBlockObject {
	var fields []*slack.TextBlockObject

	gjson.GetBytes(n.Data, "fields").ForEach(func(_, field gjson.Result) bool {
		title := field.Get("title").String()
		value := field.Get("value").String()
		if title == "" && value == "" {
			return true
		}

		text := fmt.Sprintf("*%s*\n%s", markup.EscapeSlack(title), markup.EscapeSlack(value))
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, strutil.Truncate(text, maxFieldRunes), false, false))

		return len(fields) < maxFields
	})

	return fields
}

func footerText(rc *renderContext) string {
	var parts []string
	if rc.ProjectName != "" {
		parts = append(parts, "프로젝트: "+markup.EscapeSlack(rc.ProjectName))
	}
	if rc.Environment != "" {
		parts = append(parts, "환경: "+markup.EscapeSlack(rc.Environment))
	}
	if rc.SettingsURL != "" {
		parts = append(parts, markup.SlackLink(rc.SettingsURL, "알림 설정"))
	}
	return strings.Join(parts, " | ")
}

func fallbackText(n *contract.Notification) string {
	if title := strings.TrimSpace(n.Title); title != "" {
		return title
	}
	return strutil.Truncate(strutil.NormalizeSpaces(strutil.StripHTMLTags(n.Message)), maxHeaderRunes)
}

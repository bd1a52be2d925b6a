package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	"github.com/slack-go/slack"
)

// 클라이언트 형태별 에러 로그 메시지입니다.
const (
	logKeySDK  = "slack.slash-response.error"
	logKeyHTTP = "slack.slash-notify.response-error"
)

const maxResponseBodySize = 1 << 20

// Poster Slack 채널로 메시지를 보내는 클라이언트입니다. SDK와 저수준 HTTP 두 가지 형태가 있습니다.
type Poster interface {
	delivery.TextPoster
	delivery.LogKeyer
	PostAttachments(ctx context.Context, channelID string, a Attachments) error
}

// sdkPoster slack-go 클라이언트를 사용합니다.
type sdkPoster struct {
	client *slack.Client
}

func (p *sdkPoster) PostText(ctx context.Context, channelID, text string) error {
	_, _, err := p.client.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	return normalizeError(err)
}

func (p *sdkPoster) PostAttachments(ctx context.Context, channelID string, a Attachments) error {
	opts := []slack.MsgOption{slack.MsgOptionText(a.Text, false)}
	if len(a.Blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(a.Blocks...))
	}

	_, _, err := p.client.PostMessageContext(ctx, channelID, opts...)
	return normalizeError(err)
}

func (p *sdkPoster) LogKey() string { return logKeySDK }

// httpPoster SDK를 거치지 않고 chat.postMessage를 JSON으로 직접 호출합니다.
type httpPoster struct {
	client   *http.Client
	endpoint string
	token    string
}

type postMessageRequest struct {
	Channel string        `json:"channel"`
	Text    string        `json:"text"`
	Blocks  []slack.Block `json:"blocks,omitempty"`
}

func (p *httpPoster) PostText(ctx context.Context, channelID, text string) error {
	return p.post(ctx, postMessageRequest{Channel: channelID, Text: text})
}

func (p *httpPoster) PostAttachments(ctx context.Context, channelID string, a Attachments) error {
	return p.post(ctx, postMessageRequest{Channel: channelID, Text: a.Text, Blocks: a.Blocks})
}

func (p *httpPoster) LogKey() string { return logKeyHTTP }

func (p *httpPoster) post(ctx context.Context, payload postMessageRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &delivery.Error{Provider: contract.ProviderSlack, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return &delivery.Error{Provider: contract.ProviderSlack, Cause: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return &delivery.Error{Provider: contract.ProviderSlack, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return &delivery.Error{Provider: contract.ProviderSlack, StatusCode: resp.StatusCode, Cause: err}
	}

	return parseHTTPResponse(resp.StatusCode, resp.Header, raw)
}

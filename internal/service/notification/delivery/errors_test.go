package delivery

import (
	"errors"
	"fmt"
	"testing"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "Code only",
			err:  &Error{Provider: contract.ProviderSlack, Code: "channel_not_found"},
			want: "slack api error: channel_not_found",
		},
		{
			name: "Code with message",
			err:  &Error{Provider: contract.ProviderTelegram, Code: CodeChannelNotFound, Message: "Bad Request: chat not found"},
			want: "telegram api error: channel_not_found: Bad Request: chat not found",
		},
		{
			name: "Cause only",
			err:  &Error{Provider: contract.ProviderSlack, Cause: errors.New("dial tcp: timeout")},
			want: "slack api error: dial tcp: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsBenign(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"Structured channel_not_found", &Error{Code: CodeChannelNotFound}, true},
		{"Structured expired_url", &Error{Code: CodeExpiredURL}, true},
		{"Structured ratelimited", &Error{Code: CodeRateLimited}, false},
		{"Structured code wins over message", &Error{Code: "invalid_auth", Message: "channel_not_found"}, false},
		{"Wrapped structured", fmt.Errorf("post failed: %w", &Error{Code: CodeChannelNotFound}), true},
		{"Substring Expired url", errors.New("Expired url"), true},
		{"Substring channel_not_found", errors.New("slack: channel_not_found"), true},
		{"Structured without code falls back to substring", &Error{Message: "Expired url"}, true},
		{"Substring on second line only", errors.New("rate_limited\nchannel_not_found"), false},
		{"Unrelated", errors.New("rate_limited"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBenign(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, contract.StatusDelivered, Classify(nil))
	assert.Equal(t, contract.StatusSuppressed, Classify(errors.New("channel_not_found")))
	assert.Equal(t, contract.StatusFailed, Classify(errors.New("invalid_auth")))
}

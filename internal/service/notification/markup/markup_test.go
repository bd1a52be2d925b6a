package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSlackMrkdwn(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "CPU usage is high", "CPU usage is high"},
		{"Empty", "", ""},
		{"Bold and italic", "<b>CPU</b> is <em>high</em>", "*CPU* is _high_"},
		{"Link", `See <a href="https://example.com/i/1">issue &amp; details</a>`, "See <https://example.com/i/1|issue &amp; details>"},
		{"Link with pipe in url", `<a href="https://example.com/s?a=1|2&b=3">open</a>`, "<https://example.com/s?a=1%7C2&amp;b=3|open>"},
		{"Escapes text", "a < b && c > d", "a &lt; b &amp;&amp; c &gt; d"},
		{"Paragraphs", "<p>first</p><p>second</p>", "first\n\nsecond"},
		{"Line break", "one<br>two", "one\ntwo"},
		{"List", "<ul><li>a</li><li>b</li></ul>", "• a\n• b"},
		{"Code", "run <code>make</code>", "run `make`"},
		{"Pre", "<pre>x := a &lt; b</pre>", "```\nx := a &lt; b\n```"},
		{"Unknown tags keep text", "<span class='x'>kept</span><script>alert(1)</script>", "kept"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToSlackMrkdwn(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlackLink(t *testing.T) {
	assert.Equal(t, "<https://example.com/s|알림 설정>", SlackLink("https://example.com/s", "알림 설정"))
	assert.Equal(t, "<https://example.com/s?x=%7C%3E&amp;y|a &amp; b>", SlackLink("https://example.com/s?x=|>&y", "a & b"))
}

func TestToTelegramHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "disk full", "disk full"},
		{"Allowed tags", "<strong>disk</strong> <em>full</em> <del>old</del>", "<b>disk</b> <i>full</i> <s>old</s>"},
		{"Link", `<a href="https://example.com?a=1&b=2">open</a>`, `<a href="https://example.com?a=1&amp;b=2">open</a>`},
		{"Unsafe link dropped", `<a href="javascript:alert(1)">x</a>`, "x"},
		{"Unsupported tags stripped", `<span style="color:red">red</span> <img src="x">`, "red"},
		{"Escapes text", "1 < 2 & 3", "1 &lt; 2 &amp; 3"},
		{"Paragraphs", "<p>a</p><div>b</div>", "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToTelegramHTML(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package share

import (
	"fmt"
	"net/url"
	"strings"

	"quiz-progress-service/internal/domain"
)

const (
	DefaultTargetURL = "https://ethereum.org/quizzes"
	DefaultBaseURL   = "https://twitter.com/intent/tweet"
	// DefaultTemplate receives score, total and target URL in that order.
	DefaultTemplate = "I took Ethereum quizzes on ethereum.org and overall scored %d out of %d! Try it yourself at %s"
)

// DefaultHashtags are attached to every share message.
var DefaultHashtags = []string{"ethereumquiz", "ethereum", "quiz"}

// Payload is a share message ready to be placed in a query string.
type Payload struct {
	Message string   `json:"message"`
	Text    string   `json:"text"` // percent-encoded Message
	Tags    []string `json:"tags"`
}

// Builder turns a score pair into a share payload. It never does I/O.
type Builder struct {
	Template string
	Hashtags []string
}

func NewBuilder(template string, hashtags []string) *Builder {
	if template == "" {
		template = DefaultTemplate
	}
	if hashtags == nil {
		hashtags = DefaultHashtags
	}
	return &Builder{Template: template, Hashtags: append([]string(nil), hashtags...)}
}

// Build renders the message for stats and targetURL and percent-encodes it.
func (b *Builder) Build(stats domain.ShareStats, targetURL string) Payload {
	if targetURL == "" {
		targetURL = DefaultTargetURL
	}
	msg := fmt.Sprintf(b.Template, stats.Score, stats.Total, targetURL)
	return Payload{
		Message: msg,
		Text:    Escape(msg),
		Tags:    append([]string(nil), b.Hashtags...),
	}
}

// Escape percent-encodes s for a query parameter, spaces as %20.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

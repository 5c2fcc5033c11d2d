package share

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Opener opens a share-intent URL in a new browsing context.
type Opener interface {
	Open(url string) error
}

// Dispatcher turns payloads into intent URLs and hands them to an Opener.
type Dispatcher struct {
	baseURL string
	opener  Opener
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewDispatcher(baseURL string, opener Opener, logger *slog.Logger) *Dispatcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{baseURL: baseURL, opener: opener, logger: logger}
}

// IntentURL builds <base>?text=<encoded text>&hashtags=<a,b,c>.
func (d *Dispatcher) IntentURL(p Payload) string {
	tags := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		tags[i] = Escape(tag)
	}
	return d.baseURL + "?text=" + p.Text + "&hashtags=" + strings.Join(tags, ",")
}

// Dispatch opens the intent URL without waiting for the opener.
// It returns the URL so callers can show it as well.
func (d *Dispatcher) Dispatch(p Payload) string {
	intent := d.IntentURL(p)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.opener.Open(intent); err != nil {
			d.logger.Warn("share dispatch failed", "error", err)
		}
	}()
	return intent
}

// Wait blocks until every dispatched open has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// WriterOpener "opens" a URL by printing it, for terminals without a browser.
type WriterOpener struct {
	mu sync.Mutex
	W  io.Writer
}

func (o *WriterOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := fmt.Fprintln(o.W, url)
	return err
}

// RecorderOpener keeps every opened URL in memory.
type RecorderOpener struct {
	mu   sync.Mutex
	urls []string
}

func (o *RecorderOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return nil
}

func (o *RecorderOpener) URLs() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.urls...)
}

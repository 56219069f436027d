// Package narration converts a comparative report into spoken audio via an
// external text-to-speech collaborator. The report itself never depends on
// narration succeeding: a TTS failure is surfaced separately.
package narration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNarration marks narration-stage failures so callers can distinguish
// them from report-generation failures.
var ErrNarration = fmt.Errorf("narration failed")

// Config configures the narration client.
type Config struct {
	// Endpoint is the Translate-TTS-style HTTP endpoint. Requests are
	// GET {Endpoint}?q=<text>&tl=<lang>&client=tw-ob.
	Endpoint string
	// Language is the BCP 47 speech language code (default "hi").
	Language string
	// ChunkSize caps characters per TTS request (default 200).
	ChunkSize int
	// Timeout bounds a single TTS request.
	Timeout time.Duration
}

// DefaultConfig returns the stock narration configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint:  "https://translate.google.com/translate_tts",
		Language:  "hi",
		ChunkSize: 200,
		Timeout:   30 * time.Second,
	}
}

// Client speaks to the external TTS endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a narration client. Zero-valued config fields fall
// back to defaults.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Language returns the configured speech language code.
func (c *Client) Language() string { return c.cfg.Language }

// Narrate converts the script to audio. Long scripts are requested chunk
// by chunk and the MP3 segments concatenated; MPEG frames are
// self-delimiting, so players handle the joined stream.
func (c *Client) Narrate(ctx context.Context, script string) ([]byte, error) {
	chunks := ChunkScript(script, c.cfg.ChunkSize)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: empty script", ErrNarration)
	}

	var audio []byte
	for i, chunk := range chunks {
		segment, err := c.fetchAudio(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d/%d: %v", ErrNarration, i+1, len(chunks), err)
		}
		audio = append(audio, segment...)
	}
	return audio, nil
}

// fetchAudio requests the spoken form of one text chunk.
func (c *Client) fetchAudio(ctx context.Context, text string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", text)
	q.Set("tl", c.cfg.Language)
	q.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("TTS endpoint returned %s: %s", resp.Status, body)
	}

	return io.ReadAll(resp.Body)
}

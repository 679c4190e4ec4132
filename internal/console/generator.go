package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"passguard/internal/api"
)

// PasswordSource is the generation collaborator.
type PasswordSource interface {
	Generate(ctx context.Context) (*api.GenerateResponse, *api.RawResponse, error)
}

// Generator drives the remote password generation action. A successful
// generation sets the analyzer's password text, which re-arms its debounce
// cycle exactly as a keystroke would.
type Generator struct {
	source         PasswordSource
	log            *TerminalLog
	analyzer       *Analyzer
	requestTimeout time.Duration
	onChange       func()

	mu        sync.Mutex
	generated string
}

func NewGenerator(source PasswordSource, log *TerminalLog, analyzer *Analyzer) *Generator {
	return &Generator{
		source:         source,
		log:            log,
		analyzer:       analyzer,
		requestTimeout: defaultRequestTimeout,
	}
}

// SetOnChange registers a redraw hook, like the analyzer's.
func (g *Generator) SetOnChange(fn func()) {
	g.onChange = fn
}

// Generate runs one generation cycle. On any failure the generated text is
// left untouched and only a log line is appended.
func (g *Generator) Generate() {
	g.log.Append("Generating secure password...")

	ctx, cancel := context.WithTimeout(context.Background(), g.requestTimeout)
	resp, _, err := g.source.Generate(ctx)
	cancel()

	switch {
	case err != nil:
		if apiErr, ok := api.IsAPIError(err); ok {
			g.log.Append("Generation failed: " + apiErr.Message)
		} else {
			g.log.Append("Connection to scoring service failed: " + err.Error())
		}
	case resp.Error != "":
		g.log.Append("Generation failed: " + resp.Error)
	case resp.Password == "":
		g.log.Append("Generation failed: empty password returned")
	default:
		g.mu.Lock()
		g.generated = resp.Password
		g.mu.Unlock()
		g.analyzer.SetPassword(resp.Password)

		n := len(resp.Password)
		g.log.Append(fmt.Sprintf("Generated %d-character password", n))
		g.log.Append(fmt.Sprintf("Estimated entropy: %.1f bits", float64(n)*6.5))
	}
	if g.onChange != nil {
		g.onChange()
	}
}

// Generated returns the last successfully generated password.
func (g *Generator) Generated() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generated
}

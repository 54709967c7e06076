// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/textring/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// CommandName is the command the plugin registers.
const CommandName = "wc"

// WordCount reports line, word and character counts for the document.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the wc command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand(CommandName, p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register '%s' command: %w", CommandName, err)
	}
	return nil
}

func (p *WordCount) Shutdown() error {
	return nil
}

// Stats holds the counts for one document.
type Stats struct {
	Lines int // hard lines, a trailing newline opens one more
	Words int
	Chars int // user-perceived characters
}

// Count computes Stats for text.
func Count(text string) Stats {
	return Stats{
		Lines: strings.Count(text, "\n") + 1,
		Words: len(strings.Fields(text)),
		Chars: uniseg.GraphemeClusterCount(text),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d, Words: %d, Chars: %d", s.Lines, s.Words, s.Chars)
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	p.api.SetStatusMessage("%s", Count(p.api.GetText()))
	return nil
}

package command

import (
	"fmt"
	"strings"
)

// Registry maps command keywords to handlers, remembering registration order.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	handlers map[string]Handler
	keywords []string
	usage    map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		usage:    make(map[string]string),
	}
}

// Register adds a handler under keyword. Keywords are matched case-insensitively,
// so keyword is stored lowercased. Re-registering a keyword replaces its handler
// and keeps its position.
// Panics if keyword is empty or h is nil (programmer error).
func (r *Registry) Register(keyword, usage string, h Handler) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		panic("command: Register called with empty keyword")
	}
	if h == nil {
		panic("command: Register called with nil handler")
	}
	if _, ok := r.handlers[keyword]; !ok {
		r.keywords = append(r.keywords, keyword)
	}
	r.handlers[keyword] = h
	r.usage[keyword] = usage
}

// Lookup returns the handler registered under keyword.
func (r *Registry) Lookup(keyword string) (Handler, bool) {
	h, ok := r.handlers[strings.ToLower(keyword)]
	return h, ok
}

// Keywords returns the registered keywords in registration order.
func (r *Registry) Keywords() []string {
	return append([]string(nil), r.keywords...)
}

// Match returns the first keyword, in registration order, that line starts
// with (case-insensitively), and the text that follows it.
func (r *Registry) Match(line string) (keyword, rest string, ok bool) {
	for _, kw := range r.keywords {
		if len(line) >= len(kw) && strings.EqualFold(line[:len(kw)], kw) {
			return kw, line[len(kw):], true
		}
	}
	return "", "", false
}

// Help renders one line per keyword with its usage text.
func (r *Registry) Help() string {
	width := 0
	for _, kw := range r.keywords {
		width = max(width, len(kw))
	}
	var b strings.Builder
	for i, kw := range r.keywords {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := fmt.Sprintf("%-*s  %s", width, kw, r.usage[kw])
		b.WriteString(strings.TrimRight(line, " "))
	}
	return b.String()
}

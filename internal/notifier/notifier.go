package notifier

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daymood/internal/logger"
)

// Kind classifies a notification.
type Kind string

const (
	KindToast          Kind = "toast"
	KindCelebration    Kind = "celebration"
	KindEveningSummary Kind = "evening-summary"
)

// Notification is a transient message for the presentation layer. Duration
// is how long it stays visible before it is dismissed.
type Notification struct {
	Kind     Kind
	Text     string
	Duration time.Duration
}

// Notifier delivers notifications. Delivery is best effort.
type Notifier interface {
	Notify(n Notification) error
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct{}

func (LogNotifier) Notify(n Notification) error {
	logger.Info("Notification", "kind", n.Kind, "text", n.Text, "duration", n.Duration)
	return nil
}

// ConsoleNotifier prints notifications to a terminal.
type ConsoleNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles map[Kind]lipgloss.Style
}

// New returns a console notifier that renders with the accent color.
func New(out io.Writer, accent lipgloss.Color) *ConsoleNotifier {
	base := lipgloss.NewStyle().Bold(true)
	return &ConsoleNotifier{
		out: out,
		styles: map[Kind]lipgloss.Style{
			KindToast:          base.Foreground(accent),
			KindCelebration:    base.Foreground(lipgloss.Color("#fbbf24")),
			KindEveningSummary: base.Foreground(accent).Italic(true),
		},
	}
}

func (c *ConsoleNotifier) Notify(n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	style, ok := c.styles[n.Kind]
	if !ok {
		style = lipgloss.NewStyle()
	}
	if _, err := fmt.Fprintln(c.out, style.Render(n.Text)); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}
	return nil
}

// Multi fans a notification out to every notifier, returning the first error.
type Multi []Notifier

func (m Multi) Notify(n Notification) error {
	var first error
	for _, notifier := range m {
		if err := notifier.Notify(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *Recorder) Notify(n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

// Sent returns a copy of everything recorded so far.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

// Texts returns the recorded texts of one kind.
func (r *Recorder) Texts(kind Kind) []string {
	var texts []string
	for _, n := range r.Sent() {
		if n.Kind == kind {
			texts = append(texts, n.Text)
		}
	}
	return texts
}

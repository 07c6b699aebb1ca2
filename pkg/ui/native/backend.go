// Package native renders the bridge as an immediate-mode terminal UI. Each frame the
// UI goroutine drains pending notifications, applies them to its render state, and
// redraws from that state.
package native

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
	"github.com/rescp17/yourcontrols/internal/config"
	"github.com/rescp17/yourcontrols/pkg/concurrency"
	"github.com/rescp17/yourcontrols/pkg/protocol"
)

// Backend is the application-side handle of the terminal UI.
type Backend struct {
	exited  concurrency.ExitFlag
	inbox   *concurrency.Mailbox[appevents.AppEvent]
	outbox  *concurrency.Mailbox[appevents.AppUIMessage]
	program *tea.Program

	done  chan struct{}
	final *model
}

// Setup creates the mailboxes, spawns the UI goroutine and returns immediately.
// Extra program options are appended after the defaults.
func Setup(title string, cfg config.UIConfig, opts ...tea.ProgramOption) *Backend {
	inbox := concurrency.NewMailbox[appevents.AppEvent](cfg.QueueSize)
	outbox := concurrency.NewMailbox[appevents.AppUIMessage](cfg.QueueSize)
	m := newModel(title, cfg, inbox, outbox)

	programOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	b := &Backend{
		inbox:   inbox,
		outbox:  outbox,
		program: tea.NewProgram(m, programOpts...),
		done:    make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Backend) run() {
	defer close(b.done)

	b.inbox.Send(appevents.StartupMsg{})
	final, err := b.program.Run()
	if err != nil {
		slog.Error("Terminal UI stopped", "error", err)
	}
	if fm, ok := final.(*model); ok {
		b.final = fm
	}
	slog.Info("Terminal UI closed")
	b.exited.Set()
	b.inbox.Close()
	b.outbox.Close()
}

func (b *Backend) Exited() bool {
	return b.exited.IsSet()
}

func (b *Backend) NextMessage() (appevents.AppEvent, error) {
	return b.inbox.TryRecv()
}

// Invoke translates the tag into a UI message and queues it for the next frame.
// Unknown tags and notifications sent after the window closed are dropped.
func (b *Backend) Invoke(tag protocol.MessageType, data *string) {
	ev, ok := protocol.ParseEvent(tag, data)
	if !ok {
		slog.Debug("Dropping notification", "type", tag)
		return
	}
	if !b.outbox.Send(ev) {
		slog.Debug("Notification not delivered", "type", tag)
	}
}

// Close asks the UI goroutine to quit and waits for it to finish.
func (b *Backend) Close() {
	b.program.Quit()
	<-b.done
}

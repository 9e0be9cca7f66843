package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kisanportal/kisan/internal/assistant"
	"github.com/kisanportal/kisan/internal/notify"
)

var errAssistantUnavailable = errors.New("assistant is not configured")

type askResultMsg struct {
	seq     int
	toastID string
	reply   assistant.Reply
	err     error
}

// ask records question in the transcript and sends it to the assistant.
func (m *Model) ask(question string) tea.Cmd {
	seq := m.nextSeq
	m.nextSeq++

	m.transcript = append(m.transcript, exchange{seq: seq, question: question, pending: true})
	if over := len(m.transcript) - TranscriptLimit; over > 0 {
		m.transcript = m.transcript[over:]
	}
	m.updateTranscriptViewport()

	if m.asker == nil {
		m.finishExchange(seq, assistant.Reply{}, errAssistantUnavailable)
		m.notifier.Error(errAssistantUnavailable.Error())
		return nil
	}

	toastID := m.notifier.Loading(T(m.lang, "assistant.thinking"))
	asker := m.asker
	parent := m.ctx
	lang := m.lang.String()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, AskTimeout)
		defer cancel()
		reply, err := asker.Ask(ctx, question, lang)
		return askResultMsg{seq: seq, toastID: toastID, reply: reply, err: err}
	}
}

// handleAskResult settles an exchange and its loading toast.
func (m *Model) handleAskResult(msg askResultMsg) {
	if msg.err != nil {
		m.logger.Warn("assistant request failed", zap.Error(msg.err))
		m.notifier.Update(msg.toastID, msg.err.Error(), notify.KindError)
	} else {
		m.notifier.Update(msg.toastID, T(m.lang, "assistant.answered"), notify.KindSuccess)
	}
	m.finishExchange(msg.seq, msg.reply, msg.err)
}

func (m *Model) finishExchange(seq int, reply assistant.Reply, err error) {
	for i := range m.transcript {
		if m.transcript[i].seq != seq {
			continue
		}
		m.transcript[i].reply = reply
		m.transcript[i].err = err
		m.transcript[i].pending = false
		break
	}
	m.updateTranscriptViewport()
}

// updateTranscriptViewport re-renders the transcript and scrolls to the end.
func (m *Model) updateTranscriptViewport() {
	if !m.ready {
		return
	}
	m.transcriptViewport.SetContent(m.renderTranscript())
	m.transcriptViewport.GotoBottom()
}

// redrawTranscript re-renders the transcript in place, keeping the scroll
// position.
func (m *Model) redrawTranscript() {
	if !m.ready {
		return
	}
	m.transcriptViewport.SetContent(m.renderTranscript())
}

func (m Model) hasPendingExchange() bool {
	for _, ex := range m.transcript {
		if ex.pending {
			return true
		}
	}
	return false
}

func (m Model) renderTranscript() string {
	styles := m.theme.Styles()
	if len(m.transcript) == 0 {
		return styles.MutedText.Render(T(m.lang, "assistant.empty"))
	}

	wrap := lipgloss.NewStyle().Width(max(m.width-2, 20))

	var b strings.Builder
	for i, ex := range m.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentText.Bold(true).Render(T(m.lang, "assistant.you") + ": "))
		b.WriteString(wrap.Inherit(styles.Text).Render(ex.question))
		b.WriteString("\n")

		switch {
		case ex.pending:
			b.WriteString(styles.MutedText.Render(m.spinner.View() + " " + T(m.lang, "assistant.thinking")))
		case ex.err != nil:
			b.WriteString(wrap.Inherit(styles.DangerText).Render(ex.err.Error()))
		default:
			b.WriteString(wrap.Inherit(styles.Text).Render(ex.reply.Answer))
			for _, s := range ex.reply.Suggestions {
				b.WriteString("\n")
				b.WriteString(styles.FaintText.Render("  • " + s))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

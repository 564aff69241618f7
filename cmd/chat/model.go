// Interactive terminal chat for the real-estate analysis service, built on
// bubbletea. The model drives the same orchestration core as the HTTP API;
// this file is only the input adapter and view.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"insight-chat/internal/attachment"
	"insight-chat/internal/chat"
	"insight-chat/internal/render"
	"insight-chat/internal/shared/storage/object"
	"insight-chat/internal/theme"
	"insight-chat/internal/transcript"
)

type (
	settledMsg           struct{ entry transcript.Entry }
	transcriptChangedMsg struct{}
	noticeMsg            string
	problemMsg           error
)

// watchTranscript forwards every append into the program loop, so the view
// picks up the pending user entry as soon as Submit stores it rather than
// waiting for settlement.
func watchTranscript(store transcript.Store, send func(tea.Msg)) {
	store.Subscribe(func(transcript.Entry) {
		send(transcriptChangedMsg{})
	})
}

type chatModel struct {
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    styles
	renderer  *glamour.TermRenderer

	svc      *chat.Service
	selector *attachment.Selector
	themes   *theme.Manager
	store    object.ObjectStore

	notice    string
	err       error
	isLoading bool
	width     int
	height    int
	ready     bool
}

func initChat(svc *chat.Service, selector *attachment.Selector, themes *theme.Manager, store object.ObjectStore) chatModel {
	st := newStyles(themes.Current())

	ti := textinput.New()
	ti.Placeholder = "Ask about Pune's micro-markets... (Enter to send, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	return chatModel{
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		styles:    st,
		renderer:  newMarkdownRenderer(themes.Current(), 80),
		svc:       svc,
		selector:  selector,
		themes:    themes,
		store:     store,
	}
}

func newMarkdownRenderer(t theme.Theme, wrap int) *glamour.TermRenderer {
	style := "dark"
	if t == theme.Light {
		style = "light"
	}
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wrap),
	)
	return r
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			// Submits are dropped while a request is in flight; the input
			// itself stays editable.
			if !m.isLoading {
				return m.handleSubmit()
			}
			return m, nil
		}

		m.textinput, tiCmd = m.textinput.Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 2
		inputHeight := 3

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - footerHeight - inputHeight
		}
		m.textinput.Width = msg.Width - 4
		m.renderer = newMarkdownRenderer(m.themes.Current(), msg.Width-8)
		m.viewport.SetContent(m.renderTranscript())

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case transcriptChangedMsg:
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()

	case settledMsg:
		m.isLoading = false
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()

	case noticeMsg:
		m.isLoading = false
		m.notice = string(msg)
		m.err = nil

	case problemMsg:
		m.isLoading = false
		m.err = msg
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		return m, nil
	}
	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	m.textinput.Reset()
	m.notice = ""
	m.err = nil
	m.isLoading = true

	return m, tea.Batch(
		m.spinner.Tick,
		m.dispatch(input),
	)
}

// dispatch runs the orchestrator off the UI loop. The user entry lands in the
// transcript synchronously inside Submit; the settled message just tells the
// view to refresh.
func (m chatModel) dispatch(query string) tea.Cmd {
	return func() tea.Msg {
		entry, err := m.svc.Submit(context.Background(), query)
		if err != nil {
			return problemMsg(err)
		}
		return settledMsg{entry: entry}
	}
}

func (m chatModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	m.textinput.Reset()
	m.notice = ""
	m.err = nil

	switch parts[0] {
	case "/quit", "/exit", "/q":
		return m, tea.Quit

	case "/attach":
		if len(parts) < 2 {
			m.err = errors.New("usage: /attach <path-to-xlsx>")
			return m, nil
		}
		return m, m.attachFile(strings.Join(parts[1:], " "))

	case "/detach":
		m.selector.Clear()
		m.notice = "Attachment cleared."
		return m, nil

	case "/export":
		return m, m.exportLatest()

	case "/theme":
		next := m.themes.Toggle()
		m.styles = newStyles(next)
		m.renderer = newMarkdownRenderer(next, m.width-8)
		m.viewport.SetContent(m.renderTranscript())
		m.notice = fmt.Sprintf("Theme switched to %s.", next)
		return m, nil

	case "/prompts":
		m.notice = "Try: " + strings.Join(chat.QuickPrompts, " | ")
		return m, nil

	default:
		m.err = fmt.Errorf("unknown command %s", parts[0])
		return m, nil
	}
}

func (m chatModel) attachFile(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return problemMsg(fmt.Errorf("open %s: %w", path, err))
		}
		defer f.Close()

		held, err := m.selector.Select(context.Background(), filepath.Base(path), f)
		if err != nil {
			return problemMsg(err)
		}
		return noticeMsg(fmt.Sprintf("Attached %s (%d bytes).", held.Name, held.SizeBytes))
	}
}

// exportLatest writes the CSV projection of the most recent payload to the
// local store under exports/.
func (m chatModel) exportLatest() tea.Cmd {
	return func() tea.Msg {
		entries := m.svc.Transcript.All()
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].Payload == nil {
				continue
			}
			csv := render.ExportCSV(entries[i].Payload.TableData)
			key := filepath.Join("exports", render.ExportFileName)
			if _, err := m.store.SaveWithKey(context.Background(), key, "text/csv", strings.NewReader(csv)); err != nil {
				return problemMsg(fmt.Errorf("write export: %w", err))
			}
			return noticeMsg(fmt.Sprintf("Exported %d rows to %s.", len(entries[i].Payload.TableData), key))
		}
		return problemMsg(errors.New("nothing to export yet"))
	}
}

func (m chatModel) renderTranscript() string {
	var sb strings.Builder

	entries := m.svc.Transcript.All()
	if len(entries) == 0 {
		sb.WriteString(m.styles.Muted.Render("⚡️ Kick off with a market question, e.g. \"Compare Wakad and Baner supply in 2024\"."))
		sb.WriteString("\n")
		for _, p := range chat.QuickPrompts {
			sb.WriteString(m.styles.Muted.Render("  • "+p) + "\n")
		}
		return sb.String()
	}

	for _, e := range entries {
		switch e.Role {
		case transcript.RoleUser:
			sb.WriteString(m.styles.UserLabel.Render("You") + "\n")
			sb.WriteString(m.styles.UserText.Render(e.Content))
			sb.WriteString("\n\n")
		default:
			sb.WriteString(m.styles.BotLabel.Render("✦ Insight") + "\n")
			sb.WriteString(m.safeRenderMarkdown(e.Content))
			sb.WriteString("\n")
			if e.Payload != nil {
				sb.WriteString(m.safeRenderMarkdown(render.Narrative(e.Payload)))
				sb.WriteString("\n")
				sb.WriteString(renderChartFacet(render.BuildChart(e.Payload)))
				sb.WriteString("\n")
				sb.WriteString(renderTableFacet(render.BuildTable(e.Payload.TableData, 0, "", render.Asc)))
				sb.WriteString(m.styles.Muted.Render("(/export writes " + render.ExportFileName + ")"))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func (m chatModel) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m chatModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	chatView := m.viewport.View()

	if m.isLoading {
		chatView += "\n" + m.styles.Spinner.Render(m.spinner.View()) + " Crunching the freshest Pune market intelligence…"
	}
	if m.notice != "" {
		chatView += "\n" + m.styles.Muted.Render(m.notice)
	}
	if m.err != nil {
		chatView += "\n" + m.styles.Error.Render("Error: "+m.err.Error())
	}

	inputArea := m.styles.Input.Render(m.textinput.View())
	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		chatView,
		inputArea,
		footer,
	)
}

func (m chatModel) renderHeader() string {
	title := m.styles.Header.Render(" ✦ Real Estate Insight Chat ")

	var status string
	if m.isLoading {
		status = m.styles.Error.Render("● Crunching numbers")
	} else {
		status = m.styles.Muted.Render("● Ready")
	}

	held := ""
	if h, ok := m.selector.Held(); ok {
		held = m.styles.Muted.Render("  📎 " + h.Name)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", status, held) + "\n"
}

func (m chatModel) renderFooter() string {
	return m.styles.Muted.Render("Enter: send • /attach <file.xlsx> • /export • /theme • /prompts • Ctrl+C: exit")
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	orchestration "github.com/koscakluka/docqa-core/core"
	"github.com/koscakluka/docqa-core/core/events"
	"github.com/muesli/reflow/wordwrap"
)

// messages sent from orchestrator callbacks into the bubbletea loop

type catalogMsg struct {
	llmModels       []string
	embeddingModels []string
}
type degradedMsg struct{ reason string }
type sessionMsg struct{ sessionID string }
type ingestingMsg bool
type queryingMsg bool
type answerMsg struct {
	answer   string
	snippets []string
}
type playbackMsg orchestration.PlaybackState
type notificationMsg orchestration.Notification

type focusArea int

const (
	focusSource focusArea = iota
	focusQuestion
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	answerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).PaddingLeft(2)
	snippetStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).PaddingLeft(4)
	warningStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	degradedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sessionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	noSessionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// app is the root model. It renders the orchestrator's observable state and
// forwards user intents; all business logic stays in the orchestrator.
type app struct {
	orchestrator *orchestration.Orchestrator

	sourceInput   textinput.Model
	questionInput textinput.Model
	spin          spinner.Model
	focus         focusArea

	llmModels       []string
	embeddingModels []string
	llmIndex        int
	embeddingIndex  int
	sourceType      orchestration.SourceType
	degraded        bool

	sessionID     string
	answer        string
	snippets      []string
	showSnippets  bool
	isIngesting   bool
	isQuerying    bool
	playbackState orchestration.PlaybackState

	notification *orchestration.Notification
	width        int
}

func newApp(orchestrator *orchestration.Orchestrator) app {
	sourceInput := textinput.New()
	sourceInput.Placeholder = "path to a PDF, DOCX, or TXT file"
	sourceInput.Focus()

	questionInput := textinput.New()
	questionInput.Placeholder = "ask a question about the ingested source"

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	state := orchestrator.StateV1()
	llmIndex := indexOf(state.LLMModels, state.LLMModel)
	embeddingIndex := indexOf(state.EmbeddingModels, state.EmbeddingModel)

	return app{
		orchestrator:    orchestrator,
		sourceInput:     sourceInput,
		questionInput:   questionInput,
		spin:            spin,
		focus:           focusSource,
		llmModels:       state.LLMModels,
		embeddingModels: state.EmbeddingModels,
		llmIndex:        llmIndex,
		embeddingIndex:  embeddingIndex,
		sourceType:      state.SourceType,
		playbackState:   state.PlaybackState,
		width:           80,
	}
}

func indexOf(items []string, item string) int {
	for i, candidate := range items {
		if candidate == item {
			return i
		}
	}
	return 0
}

func (a app) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spin.Tick)
}

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case catalogMsg:
		a.llmModels = msg.llmModels
		a.embeddingModels = msg.embeddingModels
		state := a.orchestrator.StateV1()
		a.llmIndex = indexOf(a.llmModels, state.LLMModel)
		a.embeddingIndex = indexOf(a.embeddingModels, state.EmbeddingModel)
		a.degraded = false
		return a, nil
	case degradedMsg:
		a.degraded = true
		return a, nil
	case sessionMsg:
		a.sessionID = msg.sessionID
		return a, nil
	case ingestingMsg:
		a.isIngesting = bool(msg)
		return a, nil
	case queryingMsg:
		a.isQuerying = bool(msg)
		return a, nil
	case answerMsg:
		a.answer = msg.answer
		a.snippets = msg.snippets
		return a, nil
	case playbackMsg:
		a.playbackState = orchestration.PlaybackState(msg)
		return a, nil
	case notificationMsg:
		notification := orchestration.Notification(msg)
		a.notification = &notification
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a app) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit

	case "tab":
		if a.focus == focusSource {
			a.focus = focusQuestion
			a.sourceInput.Blur()
			return a, a.questionInput.Focus()
		}
		a.focus = focusSource
		a.questionInput.Blur()
		return a, a.sourceInput.Focus()

	case "ctrl+t":
		if a.sourceType == orchestration.SourceTypeDocument {
			a.sourceType = orchestration.SourceTypeURL
			a.sourceInput.Placeholder = "http(s) url of a website to ingest"
		} else {
			a.sourceType = orchestration.SourceTypeDocument
			a.sourceInput.Placeholder = "path to a PDF, DOCX, or TXT file"
		}
		a.sourceInput.SetValue("")
		a.orchestrator.SetSourceType(a.sourceType)
		return a, nil

	case "ctrl+l":
		if len(a.llmModels) > 0 {
			a.llmIndex = (a.llmIndex + 1) % len(a.llmModels)
			a.orchestrator.SetLLMModel(a.llmModels[a.llmIndex])
		}
		return a, nil

	case "ctrl+e":
		if len(a.embeddingModels) > 0 {
			a.embeddingIndex = (a.embeddingIndex + 1) % len(a.embeddingModels)
			a.orchestrator.SetEmbeddingModel(a.embeddingModels[a.embeddingIndex])
		}
		return a, nil

	case "ctrl+r":
		go a.orchestrator.ReadAloud(context.Background())
		return a, nil

	case "ctrl+p":
		a.orchestrator.TogglePlaybackPause()
		return a, nil

	case "ctrl+s":
		a.showSnippets = !a.showSnippets
		return a, nil

	case "ctrl+x":
		go a.orchestrator.DeleteSession(context.Background())
		return a, nil

	case "enter":
		a.notification = nil
		if a.focus == focusSource {
			value := strings.TrimSpace(a.sourceInput.Value())
			if a.sourceType == orchestration.SourceTypeDocument {
				a.orchestrator.SetDocument(value)
			} else {
				a.orchestrator.SetURL(value)
			}
			go a.orchestrator.Ingest(context.Background())
			return a, nil
		}
		question := a.questionInput.Value()
		go a.orchestrator.Ask(context.Background(), question)
		return a, nil
	}

	var cmd tea.Cmd
	if a.focus == focusSource {
		a.sourceInput, cmd = a.sourceInput.Update(msg)
	} else {
		a.questionInput, cmd = a.questionInput.Update(msg)
	}
	return a, cmd
}

func (a app) View() string {
	var b strings.Builder

	title := titleStyle.Render("docqa")
	if a.degraded {
		title += "  " + degradedStyle.Render("(degraded: default models)")
	}
	b.WriteString(title + "\n\n")

	llmModel := ""
	if len(a.llmModels) > 0 {
		llmModel = a.llmModels[a.llmIndex]
	}
	embeddingModel := ""
	if len(a.embeddingModels) > 0 {
		embeddingModel = a.embeddingModels[a.embeddingIndex]
	}
	b.WriteString(labelStyle.Render("llm: ") + valueStyle.Render(llmModel) +
		labelStyle.Render("  embedding: ") + valueStyle.Render(embeddingModel) +
		labelStyle.Render("  source: ") + valueStyle.Render(string(a.sourceType)) + "\n")

	if a.sessionID != "" {
		b.WriteString(labelStyle.Render("session: ") + sessionStyle.Render(a.sessionID) + "\n\n")
	} else {
		b.WriteString(noSessionStyle.Render("no active session") + "\n\n")
	}

	sourceLabel := labelStyle
	questionLabel := labelStyle
	if a.focus == focusSource {
		sourceLabel = focusedLabelStyle
	} else {
		questionLabel = focusedLabelStyle
	}

	sourceLine := sourceLabel.Render("source   ") + a.sourceInput.View()
	if a.isIngesting {
		sourceLine += "  " + a.spin.View() + "ingesting"
	}
	b.WriteString(sourceLine + "\n")

	questionLine := questionLabel.Render("question ") + a.questionInput.View()
	if a.isQuerying {
		questionLine += "  " + a.spin.View() + "thinking"
	}
	b.WriteString(questionLine + "\n\n")

	if a.answer != "" {
		header := labelStyle.Render("answer")
		switch a.playbackState {
		case orchestration.PlaybackGenerating:
			header += "  " + a.spin.View() + "generating speech"
		case orchestration.PlaybackPlaying:
			header += "  " + valueStyle.Render("▶ playing")
		case orchestration.PlaybackPaused:
			header += "  " + valueStyle.Render("⏸ paused")
		}
		b.WriteString(header + "\n")
		b.WriteString(answerStyle.Render(wordwrap.String(a.answer, max(a.width-4, 20))) + "\n")

		if a.showSnippets && len(a.snippets) > 0 {
			b.WriteString("\n" + labelStyle.Render("context") + "\n")
			for i, snippet := range a.snippets {
				wrapped := wordwrap.String(snippet, max(a.width-8, 20))
				b.WriteString(snippetStyle.Render(fmt.Sprintf("%d. %s", i+1, wrapped)) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if a.notification != nil {
		style := errorStyle
		if a.notification.Severity == events.SeverityWarning {
			style = warningStyle
		} else if a.notification.Severity == events.SeverityInfo {
			style = valueStyle
		}
		b.WriteString(style.Render(a.notification.Title+": "+a.notification.Message) + "\n\n")
	}

	b.WriteString(helpStyle.Render(
		"tab focus · enter submit · ^t source type · ^l llm · ^e embedding · " +
			"^r read aloud · ^p pause · ^s snippets · ^x drop session · esc quit"))

	return b.String()
}

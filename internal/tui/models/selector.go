// SPDX-FileCopyrightText: 2025 The Pmgr Authors
// SPDX-License-Identifier: EUPL-1.2

// Package models contains the bubbletea state machines for the
// interactive screens.
package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pmgr/internal/config"
	"pmgr/internal/domain"
	"pmgr/internal/tui/styles"
)

// Layout constants.
const (
	minListWidth     = 24
	minPreviewHeight = 3
	chromeHeight     = 5 // title + search + blank + footer + spacing
)

// CandidateLoader produces the candidate snapshot for a session.
type CandidateLoader func(ctx context.Context) ([]domain.Package, error)

// InfoFetcher returns the backend detail text for one package.
type InfoFetcher func(ctx context.Context, name string, installed bool) (string, error)

// SelectorOptions configure one selector session.
type SelectorOptions struct {
	Title     string
	Multi     bool   // allow toggling a multi-select set
	Installed bool   // preview reads the local database
	Layout    string // initial orientation, from settings
}

// Messages produced by selector commands.
type (
	candidatesLoadedMsg struct {
		packages []domain.Package
		err      error
	}

	previewLoadedMsg struct {
		id   string
		text string
	}
)

// candidateSource adapts a candidate snapshot for the fuzzy matcher.
type candidateSource []domain.Package

func (s candidateSource) String(i int) string {
	return s[i].FilterValue()
}

func (s candidateSource) Len() int {
	return len(s)
}

// SelectorModel is the interactive selection state machine: search
// text, filtered ordering, cursor, multi-select set, preview, and
// layout. All mutation happens on the single bubbletea update
// goroutine; filtering is recomputed synchronously on every edit so
// the ordering stays deterministic.
//
//nolint:containedctx // commands need the session context for backend calls
type SelectorModel struct {
	ctx    context.Context
	styles *styles.Styles
	opts   SelectorOptions

	loader    CandidateLoader
	fetchInfo InfoFetcher

	candidates []domain.Package // read-only snapshot
	filtered   []int            // indices into candidates, scored order
	cursor     int              // position within filtered
	selected   map[string]bool  // Package.ID() membership only

	input        textinput.Model
	preview      viewport.Model
	previewCache map[string]string
	previewFor   string

	spin    spinner.Model
	loading bool
	loadErr error

	layout    string
	showHelp  bool
	helpText  string
	width     int
	height    int
	ready     bool
	cancelled bool
	confirmed bool
	result    []domain.Package
}

// NewSelector creates a selector session that loads its candidates
// asynchronously, showing a spinner until the listing arrives.
func NewSelector(ctx context.Context, styleSet *styles.Styles, opts SelectorOptions, loader CandidateLoader, fetchInfo InfoFetcher) *SelectorModel {
	input := textinput.New()
	input.Placeholder = "type to filter"
	input.Prompt = "/ "
	input.PromptStyle = styleSet.Prompt
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleSet.MutedText

	if opts.Layout != config.LayoutVertical {
		opts.Layout = config.LayoutHorizontal
	}

	return &SelectorModel{
		ctx:          ctx,
		styles:       styleSet,
		opts:         opts,
		loader:       loader,
		fetchInfo:    fetchInfo,
		selected:     make(map[string]bool),
		input:        input,
		preview:      viewport.New(0, 0),
		previewCache: make(map[string]string),
		spin:         spin,
		loading:      loader != nil,
		layout:       opts.Layout,
	}
}

// NewSelectorWithCandidates creates a session over an already-loaded
// snapshot. Used by flows that fetched the listing up front and by
// tests.
func NewSelectorWithCandidates(ctx context.Context, styleSet *styles.Styles, opts SelectorOptions, candidates []domain.Package, fetchInfo InfoFetcher) *SelectorModel {
	model := NewSelector(ctx, styleSet, opts, nil, fetchInfo)
	model.setCandidates(candidates)

	return model
}

// Init implements tea.Model.
func (m *SelectorModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if m.loading {
		cmds = append(cmds, m.spin.Tick, m.loadCandidates())
	}

	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizePanes()

		return m, nil

	case candidatesLoadedMsg:
		m.loading = false

		if msg.err != nil {
			m.loadErr = msg.err

			return m, tea.Quit
		}

		m.setCandidates(msg.packages)

		return m, m.previewCmd()

	case previewLoadedMsg:
		m.previewCache[msg.id] = msg.text
		// A stale response for a package the cursor already left is
		// cached but must not clobber the current preview.
		if msg.id == m.previewFor {
			m.preview.SetContent(msg.text)
			m.preview.GotoTop()
		}

		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *SelectorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key dismisses the help overlay.
		m.showHelp = false

		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true

		return m, tea.Quit

	case "enter":
		return m.confirm()

	case "up", "ctrl+p":
		m.moveCursor(-1)

		return m, m.previewCmd()

	case "down", "ctrl+n":
		m.moveCursor(1)

		return m, m.previewCmd()

	case "tab":
		m.toggleSelection()

		return m, nil

	case "ctrl+o":
		m.toggleLayout()

		return m, nil

	case "f1":
		m.showHelp = true

		return m, nil

	case "ctrl+u":
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.refilter()

			return m, m.previewCmd()
		}

		return m, nil
	}

	// Everything else edits the search text.
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.refilter()

		return m, tea.Batch(cmd, m.previewCmd())
	}

	return m, cmd
}

// confirm ends the session. The explicit selection wins; with no
// toggles the package at the cursor is an implicit selection. An empty
// candidate list always cancels, so backends are never invoked with
// zero arguments. An empty filtered view with no selection is a no-op:
// the user still has candidates to find.
func (m *SelectorModel) confirm() (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}

	if len(m.candidates) == 0 {
		m.cancelled = true

		return m, tea.Quit
	}

	chosen := m.selectedPackages()

	if len(chosen) == 0 {
		if len(m.filtered) == 0 {
			return m, nil
		}

		chosen = []domain.Package{m.candidates[m.filtered[m.cursor]]}
	}

	m.result = chosen
	m.confirmed = true

	return m, tea.Quit
}

// selectedPackages returns the explicit selection in candidate order.
// Membership only: filtering never removed anything from this set.
func (m *SelectorModel) selectedPackages() []domain.Package {
	if len(m.selected) == 0 {
		return nil
	}

	var chosen []domain.Package

	for _, pkg := range m.candidates {
		if m.selected[pkg.ID()] {
			chosen = append(chosen, pkg)
		}
	}

	return chosen
}

func (m *SelectorModel) toggleSelection() {
	if !m.opts.Multi || len(m.filtered) == 0 {
		return
	}

	id := m.candidates[m.filtered[m.cursor]].ID()
	if m.selected[id] {
		delete(m.selected, id)
	} else {
		m.selected[id] = true
	}
}

func (m *SelectorModel) toggleLayout() {
	if m.layout == config.LayoutHorizontal {
		m.layout = config.LayoutVertical
	} else {
		m.layout = config.LayoutHorizontal
	}

	m.resizePanes()
}

func (m *SelectorModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// clampCursor keeps 0 <= cursor < len(filtered), pinning to zero for
// an empty view. No wraparound.
func (m *SelectorModel) clampCursor() {
	if len(m.filtered) == 0 {
		m.cursor = 0

		return
	}

	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
}

func (m *SelectorModel) setCandidates(candidates []domain.Package) {
	m.candidates = candidates
	m.refilter()
}

// refilter recomputes the filtered-and-scored ordering for the current
// query. Runs synchronously on the update goroutine before the next
// frame: candidates with no subsequence match are excluded, survivors
// are ordered by descending score with ties kept in candidate order
// (the matcher sorts stably).
func (m *SelectorModel) refilter() {
	query := strings.TrimSpace(m.input.Value())

	if query == "" {
		m.filtered = make([]int, len(m.candidates))
		for i := range m.candidates {
			m.filtered[i] = i
		}

		m.clampCursor()
		m.syncPreviewTarget()

		return
	}

	matches := fuzzy.FindFrom(query, candidateSource(m.candidates))

	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}

	m.clampCursor()
	m.syncPreviewTarget()
}

// syncPreviewTarget points the preview at the cursor package, or
// nothing when the filtered view is empty.
func (m *SelectorModel) syncPreviewTarget() {
	if len(m.filtered) == 0 {
		m.previewFor = ""
		m.preview.SetContent("")

		return
	}

	pkg := m.candidates[m.filtered[m.cursor]]
	if pkg.ID() == m.previewFor {
		return
	}

	m.previewFor = pkg.ID()

	if text, ok := m.previewCache[pkg.ID()]; ok {
		m.preview.SetContent(text)
		m.preview.GotoTop()
	} else {
		m.preview.SetContent(m.styles.MutedText.Render("loading info..."))
	}
}

func (m *SelectorModel) loadCandidates() tea.Cmd {
	loader := m.loader

	return func() tea.Msg {
		packages, err := loader(m.ctx)

		return candidatesLoadedMsg{packages: packages, err: err}
	}
}

// previewCmd fetches info for the current preview target unless the
// cache already has it.
func (m *SelectorModel) previewCmd() tea.Cmd {
	m.syncPreviewTarget()

	if m.fetchInfo == nil || m.previewFor == "" {
		return nil
	}

	if _, ok := m.previewCache[m.previewFor]; ok {
		return nil
	}

	id := m.previewFor
	installed := m.opts.Installed
	fetch := m.fetchInfo

	return func() tea.Msg {
		text, err := fetch(m.ctx, id, installed)
		if err != nil {
			text = "no info available: " + err.Error()
		}

		return previewLoadedMsg{id: id, text: text}
	}
}

// Cancelled reports whether the session ended without a confirmation.
func (m *SelectorModel) Cancelled() bool {
	return m.cancelled || !m.confirmed
}

// Result returns the confirmed packages.
func (m *SelectorModel) Result() []domain.Package {
	return m.result
}

// LoadErr returns the listing failure that aborted the session, if any.
func (m *SelectorModel) LoadErr() error {
	return m.loadErr
}

// View implements tea.Model.
func (m *SelectorModel) View() string {
	if !m.ready {
		return ""
	}

	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder

	title := m.styles.Title.Render(m.opts.Title)
	counter := m.styles.MutedText.Render(fmt.Sprintf("  %d/%d  selected %d",
		len(m.filtered), len(m.candidates), len(m.selected)))
	b.WriteString(title + counter + "\n")
	b.WriteString(m.input.View() + "\n\n")

	if m.loading {
		b.WriteString(m.spin.View() + m.styles.MutedText.Render(" loading packages..."))
		b.WriteString("\n\n" + m.footerView())

		return b.String()
	}

	if len(m.candidates) == 0 {
		b.WriteString(m.styles.MutedText.Render("No packages found."))
		b.WriteString("\n\n" + m.footerView())

		return b.String()
	}

	list := m.listView()
	preview := m.styles.Border.Render(m.preview.View())

	if m.layout == config.LayoutHorizontal {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", preview))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, list, preview))
	}

	b.WriteString("\n" + m.footerView())

	return b.String()
}

// listView renders a window of the filtered ordering around the cursor.
func (m *SelectorModel) listView() string {
	listWidth, _, listHeight, _ := m.paneSizes()

	if len(m.filtered) == 0 {
		empty := m.styles.MutedText.Render(fmt.Sprintf("no matches for %q", m.input.Value()))

		return lipgloss.NewStyle().Width(listWidth).Height(listHeight).Render(empty)
	}

	top := 0
	if m.cursor >= listHeight {
		top = m.cursor - listHeight + 1
	}

	end := top + listHeight
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	titleCaser := cases.Title(language.English)

	var b strings.Builder

	for row := top; row < end; row++ {
		pkg := m.candidates[m.filtered[row]]

		markerText := "  "
		if m.opts.Multi {
			markerText = "[ ] "
		}

		tagText := titleCaser.String(string(pkg.Source))

		// Truncation works on plain text only. Styling afterwards keeps
		// escape sequences out of the width math and unsplit.
		entry := truncateEntry(pkg.ID()+" "+pkg.Version, markerText, tagText, listWidth)

		marker := markerText
		if m.opts.Multi && m.selected[pkg.ID()] {
			marker = m.styles.Checked.Render("[x]") + " "
		}

		line := fmt.Sprintf("%s%s %s", marker, entry, m.styles.Source.Render(tagText))

		if row == m.cursor {
			line = m.styles.Cursor.Render("▸ " + line)
		} else {
			line = m.styles.Unselected.Render("  " + line)
		}

		b.WriteString(line)

		if row < end-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Width(listWidth).Height(listHeight).Render(b.String())
}

// truncateEntry fits a row's identifier-and-version text into the
// width left over after the marker, the source tag, and the cursor
// gutter. Widths are display widths, so wide runes count as two cells.
func truncateEntry(entry, marker, tag string, listWidth int) string {
	avail := listWidth - 2 - runewidth.StringWidth(marker) - runewidth.StringWidth(tag) - 1
	if avail < 1 {
		avail = 1
	}

	return runewidth.Truncate(entry, avail, "…")
}

func (m *SelectorModel) footerView() string {
	hints := "enter confirm · esc cancel · ↑/↓ move · ctrl+o layout · f1 help"
	if m.opts.Multi {
		hints = "tab select · " + hints
	}

	return m.styles.Footer.Render(hints)
}

func (m *SelectorModel) helpView() string {
	if m.helpText == "" {
		m.helpText = renderHelp()
	}

	return m.helpText
}

// paneSizes splits the window between list and preview for the active
// orientation.
func (m *SelectorModel) paneSizes() (listWidth, previewWidth, listHeight, previewHeight int) {
	usableHeight := m.height - chromeHeight
	if usableHeight < minPreviewHeight {
		usableHeight = minPreviewHeight
	}

	if m.layout == config.LayoutHorizontal {
		listWidth = m.width / 2
		if listWidth < minListWidth {
			listWidth = minListWidth
		}

		previewWidth = m.width - listWidth - 3

		return listWidth, previewWidth, usableHeight, usableHeight
	}

	listHeight = usableHeight / 2
	previewHeight = usableHeight - listHeight - 2
	if previewHeight < minPreviewHeight {
		previewHeight = minPreviewHeight
	}

	return m.width, m.width - 2, listHeight, previewHeight
}

func (m *SelectorModel) resizePanes() {
	_, previewWidth, _, previewHeight := m.paneSizes()

	if previewWidth < minListWidth {
		previewWidth = minListWidth
	}

	m.preview.Width = previewWidth
	m.preview.Height = previewHeight
}

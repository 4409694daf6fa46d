// Package docview provides the document viewer view for the TUI.
//
// The view hosts a viewer.Session and feeds it the events the engine
// reacts to: page render completions (out of order), text-layer
// completions, navigation keys, offset edits and citation targets. It
// implements the session's Positioner and Marker collaborators, so
// scroll requests and fragment marks land back here.
package docview

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pagemark-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pagemark-cli/internal/viewer"
)

// inputMode identifies which inline input, if any, is active.
type inputMode int

const (
	inputNone inputMode = iota
	inputGoTo
	inputOffset
)

// View is the document viewer.
type View struct {
	styles        *styles.Styles
	keys          *keymap.KeyMap
	renderService driving.RenderService
	ctx           context.Context

	session *viewer.Session
	path    string
	// pages holds rendered page content keyed by physical page number.
	pages map[int]*domain.RenderedPage
	// marks holds highlighted fragment indices keyed by physical page number.
	marks map[int]map[int]bool
	// positioned is the last page a scroll was requested for.
	positioned int

	mode      inputMode
	gotoInput string

	pageWidth int
	width     int
	height    int
	ready     bool
	err       error
}

// Compile-time checks: the view is the session's scroll and mark target.
var (
	_ viewer.Positioner = (*View)(nil)
	_ viewer.Marker     = (*View)(nil)
)

// NewView creates a new document viewer view.
func NewView(s *styles.Styles, renderService driving.RenderService, pageWidth int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if pageWidth <= 0 {
		pageWidth = 80
	}

	return &View{
		styles:        s,
		keys:          keymap.DefaultKeyMap(),
		renderService: renderService,
		ctx:           context.Background(),
		pageWidth:     pageWidth,
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// BringIntoView implements viewer.Positioner. Navigation can land on a
// page whose text layer completed while another page was current; the
// matcher skipped those fragments, so the retained ones are replayed for
// the now-current page. Marking is idempotent, so replaying a page that
// was already matched changes nothing.
func (v *View) BringIntoView(page int) {
	v.positioned = page
	if content, ok := v.pages[page]; ok && v.session != nil {
		v.session.PageTextRendered(page, fragmentTexts(content))
	}
}

// fragmentTexts extracts the fragment strings of a rendered page.
func fragmentTexts(page *domain.RenderedPage) []string {
	texts := make([]string, len(page.Fragments))
	for i, frag := range page.Fragments {
		texts[i] = frag.Text
	}
	return texts
}

// MarkFragment implements viewer.Marker.
func (v *View) MarkFragment(page, fragment int) {
	if v.marks[page] == nil {
		v.marks[page] = make(map[int]bool)
	}
	v.marks[page][fragment] = true
}

// SetDocument opens a document, replacing any previous session. Events
// still in flight for the old session carry its ID and are ignored.
func (v *View) SetDocument(path string) tea.Cmd {
	v.path = path
	v.pages = make(map[int]*domain.RenderedPage)
	v.marks = make(map[int]map[int]bool)
	v.positioned = 0
	v.mode = inputNone
	v.err = nil
	v.session = viewer.NewSession(v, v)

	sessionID := v.session.ID()
	return func() tea.Msg {
		total, err := v.renderService.Load(v.ctx, path)
		return messages.DocumentOpened{
			Path:       path,
			SessionID:  sessionID,
			TotalPages: total,
			Err:        err,
		}
	}
}

// SetEvidence feeds citation entries into the session.
func (v *View) SetEvidence(entries []domain.EvidenceEntry) {
	if v.session != nil {
		v.session.SetEvidence(entries)
	}
}

// SetFragment feeds a deep-link fragment (e.g. "page-12") into the session.
func (v *View) SetFragment(fragment string) {
	if v.session != nil {
		v.session.SetFragment(fragment)
	}
}

// Session returns the active viewer session, if any.
func (v *View) Session() *viewer.Session {
	return v.session
}

// Path returns the open document path.
func (v *View) Path() string {
	return v.path
}

// Update handles messages for the document viewer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentOpened:
		return v.handleDocumentOpened(msg)

	case messages.PageRendered:
		return v.handlePageRendered(msg)

	case messages.PageTextRendered:
		if v.session != nil && msg.SessionID == v.session.ID() {
			v.session.PageTextRendered(msg.Page, msg.Fragments)
		}
		return v, nil

	case messages.CitationSelected:
		if v.session != nil {
			v.session.SetCitedPage(msg.PrintedPage)
		}
		return v, nil

	case messages.DocumentChanged:
		// The file changed on disk: discard the session and reload.
		if msg.Path == v.path && v.path != "" {
			return v, v.SetDocument(v.path)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleDocumentOpened processes a finished document load.
func (v *View) handleDocumentOpened(msg messages.DocumentOpened) (*View, tea.Cmd) {
	if v.session == nil || msg.SessionID != v.session.ID() {
		return v, nil
	}
	if msg.Err != nil {
		// Load failure: the session never learns its page count and
		// stays inert until the document is reopened.
		v.err = msg.Err
		return v, nil
	}

	v.session.SetTotalPages(msg.TotalPages)

	// Render every page concurrently; completions arrive in any order.
	cmds := make([]tea.Cmd, 0, msg.TotalPages)
	for page := 1; page <= msg.TotalPages; page++ {
		cmds = append(cmds, v.renderPage(msg.SessionID, page))
	}
	return v, tea.Batch(cmds...)
}

// renderPage returns a command that renders one physical page.
func (v *View) renderPage(sessionID string, page int) tea.Cmd {
	return func() tea.Msg {
		content, err := v.renderService.RenderPage(v.ctx, v.path, page, v.pageWidth)
		return messages.PageRendered{
			SessionID: sessionID,
			Page:      page,
			Content:   content,
			Err:       err,
		}
	}
}

// handlePageRendered records a render completion and schedules the
// text-layer event for the same page.
func (v *View) handlePageRendered(msg messages.PageRendered) (*View, tea.Cmd) {
	if v.session == nil || msg.SessionID != v.session.ID() {
		return v, nil
	}
	if msg.Err != nil {
		v.err = msg.Err
		return v, nil
	}
	if msg.Content == nil {
		return v, nil
	}

	v.pages[msg.Page] = msg.Content
	v.session.RecordRendered(msg.Page)

	fragments := fragmentTexts(msg.Content)
	sessionID := msg.SessionID
	page := msg.Page
	return v, func() tea.Msg {
		return messages.PageTextRendered{
			SessionID: sessionID,
			Page:      page,
			Fragments: fragments,
		}
	}
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.session == nil {
		if msg.Type == tea.KeyEsc {
			return v, backToFindings()
		}
		return v, nil
	}

	switch v.mode {
	case inputGoTo:
		return v.handleGoToKey(msg)
	case inputOffset:
		return v.handleOffsetKey(msg)
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keys.NextPage):
		v.session.Step(1)
	case keymap.Matches(keyStr, v.keys.PrevPage):
		v.session.Step(-1)
	case keymap.Matches(keyStr, v.keys.GoTo):
		v.mode = inputGoTo
		v.gotoInput = ""
	case keymap.Matches(keyStr, v.keys.Offset):
		v.mode = inputOffset
		v.session.StartOffsetEdit()
	case keymap.Matches(keyStr, v.keys.Back):
		return v, backToFindings()
	}

	return v, nil
}

// handleGoToKey handles keys while the go-to-page input is active.
func (v *View) handleGoToKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.session.GoToPrintedInput(v.gotoInput)
		v.mode = inputNone
	case tea.KeyEsc:
		v.mode = inputNone
	case tea.KeyBackspace:
		if len(v.gotoInput) > 0 {
			v.gotoInput = v.gotoInput[:len(v.gotoInput)-1]
		}
	case tea.KeyRunes:
		v.gotoInput += string(msg.Runes)
	}
	return v, nil
}

// handleOffsetKey handles keys while the offset editor is active.
func (v *View) handleOffsetKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.session.SaveOffsetEdit()
		v.mode = inputNone
	case tea.KeyEsc:
		v.session.CancelOffsetEdit()
		v.mode = inputNone
	case tea.KeyBackspace:
		buf := v.session.OffsetBuffer()
		if len(buf) > 0 {
			v.session.SetOffsetBuffer(buf[:len(buf)-1])
		}
	case tea.KeyRunes:
		v.session.SetOffsetBuffer(v.session.OffsetBuffer() + string(msg.Runes))
	}
	return v, nil
}

// backToFindings returns a command navigating back to the findings view.
func backToFindings() tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: messages.ViewFindings}
	}
}

// View renders the current page with marked fragments highlighted.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document"))
	if v.path != "" {
		b.WriteString(v.styles.Muted.Render("  " + v.path))
	}
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	if v.session == nil || v.session.TotalPages() == 0 {
		b.WriteString(v.styles.Muted.Render("Loading document..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	current := v.session.CurrentPage()
	page, ok := v.pages[current]
	if !ok {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Rendering page %d...", current)))
	} else {
		b.WriteString(v.renderPageContent(current, page))
	}
	b.WriteString("\n")

	b.WriteString(v.renderFooter(current))
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderPageContent renders one page line by line, highlighting marked
// fragments.
func (v *View) renderPageContent(pageNum int, page *domain.RenderedPage) string {
	marked := v.marks[pageNum]

	// Group fragment indices by line, preserving word order.
	maxLine := 0
	byLine := make(map[int][]int)
	for i, frag := range page.Fragments {
		byLine[frag.Line] = append(byLine[frag.Line], i)
		if frag.Line > maxLine {
			maxLine = frag.Line
		}
	}

	var b strings.Builder
	for line := 0; line <= maxLine; line++ {
		words := make([]string, 0, len(byLine[line]))
		for _, i := range byLine[line] {
			text := page.Fragments[i].Text
			if marked[i] {
				words = append(words, v.styles.Highlight.Render(text))
			} else {
				words = append(words, v.styles.Normal.Render(text))
			}
		}
		b.WriteString(strings.Join(words, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// renderFooter renders the page indicator and any active inline input.
func (v *View) renderFooter(current int) string {
	var b strings.Builder

	printed := v.session.ToPrinted(current)
	b.WriteString(v.styles.StatusBar.Render(fmt.Sprintf("page %d of %d (printed %d, offset %d)",
		current, v.session.TotalPages(), printed, v.session.Offset())))

	switch v.mode {
	case inputGoTo:
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render("go to printed page: " + v.gotoInput))
	case inputOffset:
		b.WriteString("\n")
		b.WriteString(v.styles.InputField.Render("page offset: " + v.session.OffsetBuffer()))
	}

	return b.String()
}

// renderHelp renders keybinding hints from the viewer bindings.
func (v *View) renderHelp() string {
	hints := make([]string, 0, len(v.keys.ViewerHelp()))
	for _, b := range v.keys.ViewerHelp() {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Positioned returns the last page a scroll was requested for.
func (v *View) Positioned() int {
	return v.positioned
}

// Marked reports whether a fragment index is marked on a page.
func (v *View) Marked(page, fragment int) bool {
	return v.marks[page][fragment]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

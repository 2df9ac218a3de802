package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"
	"github.com/warrick/screendesk/internal/domain"
	"github.com/warrick/screendesk/internal/ticket"
)

// Layout constants
const (
	maxInputWidth = 48
	detailHeight  = 3 // textarea rows for the "Other" elaboration
	chromeHeight  = 3 // title + notice + help line
	minBodyHeight = 6
	defaultWidth  = 80
	defaultHeight = 24
)

// fieldKind identifies what a focusable slot edits.
type fieldKind int

const (
	fieldStoreName fieldKind = iota
	fieldScreenLocation
	fieldScreenIssue
	fieldScreenDetail
	fieldScreenPhoto
	fieldContactName
	fieldContactNumber
	fieldContactEmail
	fieldSubmit
)

// fieldRef is one focusable slot in traversal order. screenID is set for
// screen fields only.
type fieldRef struct {
	kind     fieldKind
	screenID int
}

// screenInputs bundles the widgets for one screen report block.
type screenInputs struct {
	id        int
	location  textinput.Model
	detail    textarea.Model
	photoPath textinput.Model
	attached  string // description of the loaded photo, e.g. "door.jpg (84 KB)"
}

// FormModel is the ticket form. It owns the draft store, runs the
// submission pipeline through tea commands, and tracks the submission
// phase with a ticket.Machine so the form cannot reach a contradictory
// state.
type FormModel struct {
	// Dependencies
	store     *ticket.Store
	submitter *ticket.Submitter
	machine   *ticket.Machine
	ctx       context.Context
	boardURL  string // optional, enables opening the created ticket

	// UI components
	keymap  KeyMap
	help    help.Model
	spinner spinner.Model

	// Widgets
	storeName     textinput.Model
	contactName   textinput.Model
	contactNumber textinput.Model
	contactEmail  textinput.Model
	screens       []*screenInputs

	// Focus traversal
	fields []fieldRef
	focus  int

	// Submission state
	result   *domain.SubmissionResult
	pending  int // uploads not yet settled
	outcomes []domain.AttachmentOutcome

	// View state
	notice       string // toast under the title; error or info
	noticeIsErr  bool
	errDetail    string // diagnostic detail kept for support
	validateLive bool   // revalidate on every edit after first failed submit
	showHelp     bool
	width        int
	height       int
	scroll       int // first visible body line
}

// NewFormModel creates the ticket form. prefill, when non-empty, becomes
// the initial store name. boardURL, when non-empty, enables opening the
// created ticket in a browser from the success screen.
func NewFormModel(store *ticket.Store, submitter *ticket.Submitter, ctx context.Context, boardURL string) FormModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	hp := help.New()
	hp.ShowAll = true

	m := FormModel{
		store:     store,
		submitter: submitter,
		machine:   ticket.NewMachine(),
		ctx:       ctx,
		boardURL:  boardURL,
		keymap:    DefaultKeyMap(),
		help:      hp,
		spinner:   sp,
	}

	m.storeName = newInput("Store name")
	m.contactName = newInput("Your name")
	m.contactNumber = newInput("Contact number")
	m.contactEmail = newInput("Email address")
	m.storeName.SetValue(store.Draft().StoreName)

	for _, s := range store.Draft().Screens {
		m.screens = append(m.screens, newScreenInputs(s.ID))
	}

	m.rebuildFields()
	m.setFocus(0)
	return m
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Width = maxInputWidth
	return ti
}

func newScreenInputs(id int) *screenInputs {
	si := &screenInputs{id: id}
	si.location = newInput("Screen location")
	si.photoPath = newInput("Photo path (optional)")

	ta := textarea.New()
	ta.Placeholder = "Please explain the issue"
	ta.CharLimit = 2000
	ta.SetHeight(detailHeight)
	ta.SetWidth(maxInputWidth)
	ta.ShowLineNumbers = false
	si.detail = ta
	return si
}

// Init initializes the form model.
func (m FormModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.WindowSize(), textinput.Blink)
}

// rebuildFields recomputes the focus traversal order from the current
// screen list. Screen detail slots exist only while "Other" is selected.
func (m *FormModel) rebuildFields() {
	fields := []fieldRef{{kind: fieldStoreName}}
	for _, si := range m.screens {
		screen := m.store.Screen(si.id)
		fields = append(fields,
			fieldRef{kind: fieldScreenLocation, screenID: si.id},
			fieldRef{kind: fieldScreenIssue, screenID: si.id},
		)
		if screen != nil && screen.Issue == domain.IssueOther {
			fields = append(fields, fieldRef{kind: fieldScreenDetail, screenID: si.id})
		}
		fields = append(fields, fieldRef{kind: fieldScreenPhoto, screenID: si.id})
	}
	fields = append(fields,
		fieldRef{kind: fieldContactName},
		fieldRef{kind: fieldContactNumber},
		fieldRef{kind: fieldContactEmail},
		fieldRef{kind: fieldSubmit},
	)
	m.fields = fields
	if m.focus >= len(fields) {
		m.focus = len(fields) - 1
	}
}

func (m *FormModel) screenInputsByID(id int) *screenInputs {
	for _, si := range m.screens {
		if si.id == id {
			return si
		}
	}
	return nil
}

// setFocus blurs every widget and focuses the one at index i.
func (m *FormModel) setFocus(i int) tea.Cmd {
	if i < 0 {
		i = len(m.fields) - 1
	}
	if i >= len(m.fields) {
		i = 0
	}
	m.focus = i

	m.storeName.Blur()
	m.contactName.Blur()
	m.contactNumber.Blur()
	m.contactEmail.Blur()
	for _, si := range m.screens {
		si.location.Blur()
		si.detail.Blur()
		si.photoPath.Blur()
	}

	ref := m.fields[i]
	switch ref.kind {
	case fieldStoreName:
		return m.storeName.Focus()
	case fieldContactName:
		return m.contactName.Focus()
	case fieldContactNumber:
		return m.contactNumber.Focus()
	case fieldContactEmail:
		return m.contactEmail.Focus()
	case fieldScreenLocation:
		if si := m.screenInputsByID(ref.screenID); si != nil {
			return si.location.Focus()
		}
	case fieldScreenDetail:
		if si := m.screenInputsByID(ref.screenID); si != nil {
			return si.detail.Focus()
		}
	case fieldScreenPhoto:
		if si := m.screenInputsByID(ref.screenID); si != nil {
			return si.photoPath.Focus()
		}
	}
	return nil
}

// Update handles messages.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recordsCreatedMsg:
		return m.handleRecordsCreated(msg)

	case submitFailedMsg:
		m.machine.Fail()
		m.notice = "Ticket submission failed. Your draft is unchanged, fix and retry."
		m.noticeIsErr = true
		m.errDetail = msg.err.Error()
		return m, nil

	case uploadSettledMsg:
		return m.handleUploadSettled(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m *FormModel) resizeInputs() {
	w := m.width - 10
	if w > maxInputWidth {
		w = maxInputWidth
	}
	if w < 20 {
		w = 20
	}
	m.storeName.Width = w
	m.contactName.Width = w
	m.contactNumber.Width = w
	m.contactEmail.Width = w
	for _, si := range m.screens {
		si.location.Width = w
		si.photoPath.Width = w
		si.detail.SetWidth(w)
	}
}

// handleRecordsCreated runs when the sequential phase finishes: success
// is reported immediately, then every pending photo upload starts in
// parallel.
func (m FormModel) handleRecordsCreated(msg recordsCreatedMsg) (tea.Model, tea.Cmd) {
	if err := m.machine.RecordsCreated(len(msg.uploads) > 0); err != nil {
		// A stale message after a reset; ignore it.
		return m, nil
	}
	m.result = msg.result

	if len(msg.uploads) == 0 {
		return m, nil
	}

	m.pending = len(msg.uploads)
	m.outcomes = make([]domain.AttachmentOutcome, len(msg.uploads))
	cmds := make([]tea.Cmd, len(msg.uploads))
	for i, up := range msg.uploads {
		cmds[i] = m.uploadPhoto(i, up)
	}
	return m, tea.Batch(cmds...)
}

// handleUploadSettled collects one upload outcome; once all have
// settled, failure of any upload fails the whole submission even though
// the records persist on the board.
func (m FormModel) handleUploadSettled(msg uploadSettledMsg) (tea.Model, tea.Cmd) {
	if msg.index >= len(m.outcomes) || m.pending == 0 {
		return m, nil
	}
	m.outcomes[msg.index] = msg.outcome
	m.pending--
	if m.pending > 0 {
		return m, nil
	}

	m.result.Attachments = m.outcomes
	failures := m.result.UploadFailures()
	if err := m.machine.UploadsSettled(len(failures) == 0); err != nil {
		return m, nil
	}
	if len(failures) > 0 {
		msgs := make([]string, len(failures))
		for i, f := range failures {
			msgs[i] = f.Err.Error()
		}
		m.notice = fmt.Sprintf("Ticket submission failed: %d photo upload(s) did not complete.", len(failures))
		m.noticeIsErr = true
		m.errDetail = strings.Join(msgs, "; ")
		m.result = nil
	}
	return m, nil
}

// handleKeyPress processes keyboard input.
func (m FormModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if key.Matches(msg, m.keymap.Help) {
		m.showHelp = true
		return m, nil
	}

	// Success screen keys.
	if m.machine.Phase() == ticket.Submitted {
		switch {
		case key.Matches(msg, m.keymap.Reset):
			return m.resetForm()
		case key.Matches(msg, m.keymap.Open):
			if m.boardURL != "" && m.result != nil {
				_ = browser.OpenURL(m.boardURL + "/pulses/" + m.result.ItemID)
			}
			return m, nil
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	// While records are created or uploads settle, the form is locked.
	if m.machine.Locked() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.submit()
	case key.Matches(msg, m.keymap.Reset):
		return m.resetForm()
	case key.Matches(msg, m.keymap.AddScreen):
		return m.addScreen()
	case key.Matches(msg, m.keymap.RemoveScreen):
		return m.removeScreen()
	}

	ref := m.fields[m.focus]

	// Enter inside the detail textarea inserts a newline; everywhere
	// else it advances focus.
	if key.Matches(msg, m.keymap.Next) {
		if ref.kind != fieldScreenDetail || msg.String() == "tab" {
			if ref.kind == fieldSubmit && msg.String() == "enter" {
				return m.submit()
			}
			m.commitPhotoPath(ref)
			return m, m.setFocus(m.focus + 1)
		}
	}
	if key.Matches(msg, m.keymap.Prev) {
		m.commitPhotoPath(ref)
		return m, m.setFocus(m.focus - 1)
	}

	// Issue selection cycles through the catalog.
	if ref.kind == fieldScreenIssue {
		switch {
		case key.Matches(msg, m.keymap.CycleLeft):
			m.cycleIssue(ref.screenID, -1)
			return m, nil
		case key.Matches(msg, m.keymap.CycleRight):
			m.cycleIssue(ref.screenID, +1)
			return m, nil
		}
		return m, nil
	}

	// Everything else goes to the focused widget.
	cmd := m.updateFocusedWidget(msg)
	m.syncDraft()
	if m.validateLive {
		m.store.Validate()
	}
	return m, cmd
}

func (m *FormModel) updateFocusedWidget(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch ref := m.fields[m.focus]; ref.kind {
	case fieldStoreName:
		m.storeName, cmd = m.storeName.Update(msg)
	case fieldContactName:
		m.contactName, cmd = m.contactName.Update(msg)
	case fieldContactNumber:
		m.contactNumber, cmd = m.contactNumber.Update(msg)
	case fieldContactEmail:
		m.contactEmail, cmd = m.contactEmail.Update(msg)
	case fieldScreenLocation:
		if si := m.screenInputsByID(ref.screenID); si != nil {
			si.location, cmd = si.location.Update(msg)
		}
	case fieldScreenDetail:
		if si := m.screenInputsByID(ref.screenID); si != nil {
			si.detail, cmd = si.detail.Update(msg)
		}
	case fieldScreenPhoto:
		if si := m.screenInputsByID(ref.screenID); si != nil {
			si.photoPath, cmd = si.photoPath.Update(msg)
		}
	}
	return cmd
}

// syncDraft copies widget values into the draft store.
func (m *FormModel) syncDraft() {
	d := m.store.Draft()
	d.StoreName = m.storeName.Value()
	d.Contact.Name = m.contactName.Value()
	d.Contact.PhoneDigits = m.contactNumber.Value()
	d.Contact.Email = m.contactEmail.Value()
	for _, si := range m.screens {
		if screen := m.store.Screen(si.id); screen != nil {
			screen.Location = si.location.Value()
			if screen.Issue == domain.IssueOther {
				screen.Detail = si.detail.Value()
			}
		}
	}
}

// cycleIssue moves a screen's issue selection through the catalog.
// Leaving "Other" clears the elaboration, widget included.
func (m *FormModel) cycleIssue(screenID, dir int) {
	screen := m.store.Screen(screenID)
	if screen == nil {
		return
	}
	idx := -1
	for i, opt := range domain.Issues {
		if opt == screen.Issue {
			idx = i
			break
		}
	}
	idx += dir
	if idx < 0 {
		idx = len(domain.Issues) - 1
	}
	if idx >= len(domain.Issues) {
		idx = 0
	}
	m.store.SetIssue(screenID, domain.Issues[idx])
	if screen.Issue != domain.IssueOther {
		if si := m.screenInputsByID(screenID); si != nil {
			si.detail.SetValue("")
		}
	}
	m.rebuildFields()
	if m.validateLive {
		m.store.Validate()
	}
}

// commitPhotoPath loads the photo file when leaving a photo field. An
// empty path detaches; a read failure leaves the previous photo bound
// and surfaces a toast.
func (m *FormModel) commitPhotoPath(ref fieldRef) {
	if ref.kind != fieldScreenPhoto {
		return
	}
	si := m.screenInputsByID(ref.screenID)
	if si == nil {
		return
	}
	path := strings.TrimSpace(si.photoPath.Value())
	if path == "" {
		m.store.AttachPhoto(ref.screenID, nil)
		si.attached = ""
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		m.notice = fmt.Sprintf("Could not read photo: %v", err)
		m.noticeIsErr = true
		return
	}
	m.store.AttachPhoto(ref.screenID, &domain.Photo{Name: filepath.Base(path), Data: data})
	si.attached = fmt.Sprintf("%s (%d KB)", filepath.Base(path), (len(data)+1023)/1024)
}

// addScreen appends a screen block and focuses its location field.
func (m FormModel) addScreen() (tea.Model, tea.Cmd) {
	screen := m.store.AddScreen()
	m.screens = append(m.screens, newScreenInputs(screen.ID))
	m.resizeInputs()
	m.rebuildFields()
	for i, ref := range m.fields {
		if ref.kind == fieldScreenLocation && ref.screenID == screen.ID {
			return m, m.setFocus(i)
		}
	}
	return m, nil
}

// removeScreen removes the screen block holding focus (or the last one
// when focus is elsewhere).
func (m FormModel) removeScreen() (tea.Model, tea.Cmd) {
	id := m.fields[m.focus].screenID
	if id == 0 {
		id = m.screens[len(m.screens)-1].id
	}
	if err := m.store.RemoveScreen(id); err != nil {
		m.notice = "A ticket needs at least one screen."
		m.noticeIsErr = true
		return m, nil
	}
	for i, si := range m.screens {
		if si.id == id {
			m.screens = append(m.screens[:i], m.screens[i+1:]...)
			break
		}
	}
	m.rebuildFields()
	return m, m.setFocus(0)
}

// submit runs the validation gate and, if it passes, starts the
// sequential record-creation phase on a snapshot of the draft.
func (m FormModel) submit() (tea.Model, tea.Cmd) {
	m.syncDraft()
	m.commitPhotoPath(m.fields[m.focus])

	valid := m.store.Validate()
	if err := m.machine.Submit(valid); err != nil {
		return m, nil
	}
	if !valid {
		m.notice = "Fix the highlighted fields."
		m.noticeIsErr = true
		m.validateLive = true
		return m, nil
	}

	m.notice = ""
	m.errDetail = ""
	snapshot := m.store.Snapshot()
	return m, tea.Batch(m.spinner.Tick, m.createRecords(snapshot))
}

// createRecords creates a command running the sequential pipeline phase.
func (m FormModel) createRecords(draft *domain.TicketDraft) tea.Cmd {
	return func() tea.Msg {
		result, uploads, err := m.submitter.CreateRecords(m.ctx, draft)
		if err != nil {
			return submitFailedMsg{err: err}
		}
		return recordsCreatedMsg{result: result, uploads: uploads}
	}
}

// uploadPhoto creates a command running one photo upload.
func (m FormModel) uploadPhoto(index int, up ticket.Upload) tea.Cmd {
	return func() tea.Msg {
		return uploadSettledMsg{index: index, outcome: m.submitter.UploadOne(m.ctx, up)}
	}
}

// resetForm discards the draft and starts a fresh one.
func (m FormModel) resetForm() (tea.Model, tea.Cmd) {
	if err := m.machine.Reset(); err != nil {
		return m, nil
	}
	m.store.Reset()
	m.result = nil
	m.outcomes = nil
	m.pending = 0
	m.notice = ""
	m.errDetail = ""
	m.validateLive = false

	m.storeName.SetValue(m.store.Draft().StoreName)
	m.contactName.Reset()
	m.contactNumber.Reset()
	m.contactEmail.Reset()
	m.screens = nil
	for _, s := range m.store.Draft().Screens {
		m.screens = append(m.screens, newScreenInputs(s.ID))
	}
	m.resizeInputs()
	m.rebuildFields()
	return m, m.setFocus(0)
}

// View renders the form or, once records exist, the submitted screen.
func (m FormModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}

	switch m.machine.Phase() {
	case ticket.Submitted, ticket.SubmittedUploading:
		return m.renderSubmitted(width, height)
	}
	return m.renderForm(width, height)
}

// renderSubmitted renders the success screen. Success is shown as soon
// as all records exist, with upload progress underneath while photos
// are still settling.
func (m FormModel) renderSubmitted(width, height int) string {
	var b strings.Builder
	b.WriteString(SuccessStyle.Render("✓ Ticket Submitted!"))
	b.WriteString("\n\n")
	if m.result != nil {
		b.WriteString(DimStyle.Render(fmt.Sprintf("Ticket %s with %d screen(s) created.", m.result.ItemID, len(m.result.SubitemIDs))))
		b.WriteString("\n")
	}

	if m.machine.Phase() == ticket.SubmittedUploading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" Uploading %d photo(s)...", m.pending))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		hints := []string{"ctrl+r: submit another"}
		if m.boardURL != "" {
			hints = append(hints, "o: open on board")
		}
		hints = append(hints, "q: quit")
		b.WriteString(DimStyle.Render(strings.Join(hints, " • ")))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// renderForm renders the editing/submitting form, windowed vertically
// around the focused field.
func (m FormModel) renderForm(width, height int) string {
	var sections []string

	title := TitleStyle.Render("Support Ticket")
	if m.machine.Phase() == ticket.Submitting {
		title += "  " + m.spinner.View() + DimStyle.Render(" Submitting...")
	}
	sections = append(sections, title)

	if m.notice != "" {
		style := DimStyle
		if m.noticeIsErr {
			style = ErrorStyle
		}
		notice := style.Render(wordwrap.String(m.notice, width-2))
		if m.errDetail != "" {
			notice += "\n" + DimStyle.Render(wordwrap.String("Detail: "+m.errDetail, width-2))
		}
		sections = append(sections, notice)
	}

	if m.showHelp {
		m.help.Width = width - 6
		sections = append(sections, HelpOverlayStyle.Render(m.help.View(m.keymap)))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	body, focusLine := m.renderBody()
	bodyHeight := height - chromeHeight
	for _, s := range sections {
		bodyHeight -= lipgloss.Height(s)
	}
	if bodyHeight < minBodyHeight {
		bodyHeight = minBodyHeight
	}
	sections = append(sections, clipAround(body, focusLine, bodyHeight))

	sections = append(sections, HelpStyle.Render("tab: next • ctrl+n: add screen • ctrl+s: submit • ctrl+/: help"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody renders the full form body and returns the line number of
// the focused field so the caller can window around it.
func (m FormModel) renderBody() (string, int) {
	errs := m.store.Errors()
	var blocks []string
	focusBlock := 0

	track := func(ref fieldRef, block string) {
		if m.fields[m.focus] == ref {
			focusBlock = len(blocks)
		}
		blocks = append(blocks, block)
	}

	track(fieldRef{kind: fieldStoreName},
		m.renderField("Store Name", m.storeName.View(), errs[ticket.FieldStoreName], m.focusedRef(fieldStoreName, 0)))

	for i, si := range m.screens {
		block := m.renderScreen(i, si, errs)
		blocks = append(blocks, block)
		if m.fields[m.focus].screenID == si.id {
			focusBlock = len(blocks) - 1
		}
	}

	track(fieldRef{kind: fieldContactName},
		m.renderField("Your Name", m.contactName.View(), errs[ticket.FieldContactName], m.focusedRef(fieldContactName, 0)))
	track(fieldRef{kind: fieldContactNumber},
		m.renderField("Contact Number", m.contactNumber.View(), errs[ticket.FieldContactNumber], m.focusedRef(fieldContactNumber, 0)))
	track(fieldRef{kind: fieldContactEmail},
		m.renderField("Email Address", m.contactEmail.View(), errs[ticket.FieldContactEmail], m.focusedRef(fieldContactEmail, 0)))

	submit := "[ Submit Ticket ]"
	if m.focusedRef(fieldSubmit, 0) {
		submit = FocusedLabelStyle.Render("[ Submit Ticket ]") + DimStyle.Render("  press enter")
	} else {
		submit = LabelStyle.Render(submit)
	}
	track(fieldRef{kind: fieldSubmit}, submit)

	body := strings.Join(blocks, "\n")

	// Count the first line of the focused block.
	line := 0
	for i := 0; i < focusBlock; i++ {
		line += strings.Count(blocks[i], "\n") + 2 // block lines + joining newline
	}
	return body, line
}

// renderField renders one labeled input with its inline error.
func (m FormModel) renderField(label, input, errMsg string, focused bool) string {
	ls := LabelStyle
	if focused {
		ls = FocusedLabelStyle
	}
	out := ls.Render(label+":") + "\n" + input
	if errMsg != "" {
		out += "\n" + FieldErrorStyle.Render("  " + errMsg)
	}
	return out
}

// renderScreen renders one screen report block.
func (m FormModel) renderScreen(index int, si *screenInputs, errs ticket.Errors) string {
	screen := m.store.Screen(si.id)
	if screen == nil {
		return ""
	}

	var b strings.Builder
	header := fmt.Sprintf("Screen %d", index+1)
	if len(m.screens) > 1 {
		header += DimStyle.Render("  (ctrl+x to remove)")
	}
	b.WriteString(LabelStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(m.renderField("Location", si.location.View(),
		errs.Screen(ticket.FieldScreenName, si.id),
		m.focusedRef(fieldScreenLocation, si.id)))
	b.WriteString("\n\n")

	// Issue selector: the current catalog entry with cycle arrows.
	issue := screen.Issue
	if issue == "" {
		issue = DimStyle.Render("Select issue")
	}
	selector := "  " + issue
	if m.focusedRef(fieldScreenIssue, si.id) {
		selector = FocusedLabelStyle.Render("◀ ") + issue + FocusedLabelStyle.Render(" ▶")
	}
	b.WriteString(m.renderField("Issue", selector,
		errs.Screen(ticket.FieldScreenDescription, si.id),
		m.focusedRef(fieldScreenIssue, si.id)))

	if screen.Issue == domain.IssueOther {
		b.WriteString("\n\n")
		b.WriteString(m.renderField("Describe the Issue", si.detail.View(),
			errs.Screen(ticket.FieldScreenOtherDescription, si.id),
			m.focusedRef(fieldScreenDetail, si.id)))
	}

	b.WriteString("\n\n")
	photo := si.photoPath.View()
	if si.attached != "" {
		photo += "\n" + SuccessStyle.Render("  ✓ "+si.attached)
	}
	b.WriteString(m.renderField("Photo", photo, "", m.focusedRef(fieldScreenPhoto, si.id)))

	style := ScreenBoxStyle
	if m.fields[m.focus].screenID == si.id {
		style = FocusedScreenBoxStyle
	}
	return style.Render(b.String())
}

func (m FormModel) focusedRef(kind fieldKind, screenID int) bool {
	ref := m.fields[m.focus]
	return ref.kind == kind && ref.screenID == screenID
}

// clipAround windows content to height lines, keeping focusLine visible.
func clipAround(content string, focusLine, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= height {
		return content
	}

	start := focusLine - height/3
	if start > len(lines)-height {
		start = len(lines) - height
	}
	if start < 0 {
		start = 0
	}
	return strings.Join(lines[start:start+height], "\n")
}

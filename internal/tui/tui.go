package tui

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"
	"golang.org/x/text/language"

	"github.com/taskpad-dev/taskpad/internal/model"
	"github.com/taskpad-dev/taskpad/internal/notify"
	"github.com/taskpad-dev/taskpad/internal/store"
)

const (
	viewHeader  = "header"
	viewTasks   = "tasks"
	viewDetail  = "detail"
	viewNotices = "notices"
	viewFooter  = "footer"
	viewForm    = "form"
	viewSearch  = "search"
	viewConfirm = "confirm"
	viewHelp    = "help"
	viewLoading = "loading"
	viewError   = "error"
)

type UI struct {
	gui     *gocui.Gui
	store   *store.Store
	editor  *store.Editor
	notices *notify.Center

	// visible is the derived view snapshot the selection index points into.
	visible  []model.Task
	selected int

	form         *formState
	formEditor   *formEditor
	searchActive bool
	helpActive   bool
	confirm      *confirmState
	status       string
}

// confirmState is a pending destructive-confirmation modal. The store-side
// goroutine blocks on resp until a keypress on the main loop resolves it.
type confirmState struct {
	prompt string
	resp   chan bool
}

func Run(service store.Service, locale language.Tag) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	ui := &UI{gui: gui}
	ui.notices = notify.NewCenter(notify.DefaultTTL)
	ui.store = store.New(service, ui.notices, ui, locale)
	ui.editor = store.NewEditor(ui.store)
	ui.formEditor = &formEditor{ui: ui}
	gui.Mouse = true

	redraw := func() {
		gui.Update(func(*gocui.Gui) error { return nil })
	}
	ui.store.OnChange(redraw)
	ui.notices.OnChange(redraw)

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}

	go func() { _ = ui.store.Load(context.Background()) }()

	if err := gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}

	return nil
}

// Confirm implements store.Gate. It parks the calling goroutine until the
// user answers the modal; mutations run off the main loop, so rendering
// never stalls while the question is up.
func (u *UI) Confirm(ctx context.Context, prompt string) bool {
	resp := make(chan bool, 1)
	u.gui.Update(func(*gocui.Gui) error {
		if u.confirm != nil {
			// One modal at a time; a second question loses.
			resp <- false
			return nil
		}
		u.confirm = &confirmState{prompt: prompt, resp: resp}
		return nil
	})

	select {
	case answer := <-resp:
		return answer
	case <-ctx.Done():
		return false
	}
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	if err := gui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, u.quit); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'q', gocui.ModNone, u.quit); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'r', gocui.ModNone, u.reload); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'a', gocui.ModNone, u.addTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'e', gocui.ModNone, u.editTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'd', gocui.ModNone, u.deleteTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'x', gocui.ModNone, u.toggleTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", '/', gocui.ModNone, u.startSearch); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'f', gocui.ModNone, u.cycleStatus); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 's', gocui.ModNone, u.cycleSort); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", 'g', gocui.ModNone, u.clearFilters); err != nil {
		return err
	}
	if err := gui.SetKeybinding("", '?', gocui.ModNone, u.toggleHelp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeyArrowDown, gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, 'j', gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeyArrowUp, gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, 'k', gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.KeySpace, gocui.ModNone, u.toggleTask); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.MouseWheelUp, gocui.ModNone, u.moveUp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewTasks, gocui.MouseWheelDown, gocui.ModNone, u.moveDown); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewSearch, gocui.KeyEnter, gocui.ModNone, u.submitSearch); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewSearch, gocui.KeyEsc, gocui.ModNone, u.cancelSearch); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyEnter, gocui.ModNone, u.submitForm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyCtrlJ, gocui.ModNone, u.submitForm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyTab, gocui.ModNone, u.nextFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyBacktab, gocui.ModNone, u.prevFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyArrowDown, gocui.ModNone, u.nextFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyArrowUp, gocui.ModNone, u.prevFormField); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewForm, gocui.KeyEsc, gocui.ModNone, u.cancelForm); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewConfirm, 'y', gocui.ModNone, u.confirmYes); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewConfirm, gocui.KeyEnter, gocui.ModNone, u.confirmYes); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewConfirm, 'n', gocui.ModNone, u.confirmNo); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewConfirm, gocui.KeyEsc, gocui.ModNone, u.confirmNo); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, gocui.KeyEsc, gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, 'q', gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	if err := gui.SetKeybinding(viewHelp, '?', gocui.ModNone, u.closeHelp); err != nil {
		return err
	}
	if err := gui.SetViewClickBinding(&gocui.ViewMouseBinding{ViewName: viewTasks, Key: gocui.MouseLeft, Handler: func(opts gocui.ViewMouseBindingOpts) error {
		return u.onTasksClick(gui, opts)
	}}); err != nil {
		return err
	}
	return nil
}

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= 0 || maxY <= 0 {
		return nil
	}

	switch u.store.State() {
	case store.StateLoading:
		return u.layoutSplash(gui, viewLoading, "Loading tasks...", maxX, maxY)
	case store.StateErrored:
		message := "load failed"
		if err := u.store.LoadError(); err != nil {
			message = err.Error()
		}
		text := fmt.Sprintf("Error: %s\n\nPress r to reload, q to quit", message)
		return u.layoutSplash(gui, viewError, text, maxX, maxY)
	}
	_ = gui.DeleteView(viewLoading)
	_ = gui.DeleteView(viewError)

	u.visible = u.store.Tasks()
	if u.selected >= len(u.visible) {
		u.selected = max(len(u.visible)-1, 0)
	}

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.Wrap = false
	u.renderHeader(headerView)

	footerY1 := maxY - 1
	footerY0 := max(footerY1-3, 1)
	footerView, err := gui.SetView(viewFooter, 0, footerY0, maxX-1, footerY1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	footerView.Frame = false
	footerView.Wrap = true
	footerView.FgColor = gocui.ColorDefault | gocui.AttrDim
	u.renderFooter(footerView)

	bodyTop := 2
	bodyBottom := footerY0 - 1
	if bodyBottom <= bodyTop {
		return nil
	}

	leftX1 := max(maxX*3/5, 30)
	if leftX1 >= maxX-12 {
		leftX1 = maxX / 2
	}

	tasksView, err := gui.SetView(viewTasks, 0, bodyTop, leftX1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		tasksView.Title = "Tasks"
	}
	applyViewStyle(tasksView, !u.inputActive())
	u.renderTasks(tasksView, !u.inputActive())

	detailView, err := gui.SetView(viewDetail, leftX1+1, bodyTop, maxX-1, bodyBottom, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		detailView.Title = "Detail"
		detailView.Wrap = true
	}
	applyViewStyle(detailView, false)
	u.renderDetail(detailView)

	if err := u.layoutNotices(gui, maxX, footerY0); err != nil {
		return err
	}

	if u.searchActive {
		if err := u.showSearch(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewSearch)
	}

	if u.form != nil {
		if err := u.showForm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewForm)
	}

	if u.confirm != nil {
		if err := u.showConfirm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewConfirm)
	}

	if u.helpActive {
		if err := u.showHelp(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewHelp)
	}

	if gui.CurrentView() == nil {
		_, _ = gui.SetCurrentView(viewTasks)
	}

	gui.Cursor = u.searchActive || u.form != nil

	return nil
}

// layoutSplash replaces the whole screen with a single centered box, used
// for the initial-load spinner and the terminal load-error state.
func (u *UI) layoutSplash(gui *gocui.Gui, name, message string, maxX, maxY int) error {
	for _, stale := range []string{viewHeader, viewTasks, viewDetail, viewNotices, viewFooter, viewForm, viewSearch, viewConfirm, viewHelp} {
		_ = gui.DeleteView(stale)
	}
	other := viewError
	if name == viewError {
		other = viewLoading
	}
	_ = gui.DeleteView(other)

	width := min(max(44, maxX/2), maxX-2)
	height := 5
	x0 := max((maxX-width)/2, 0)
	y0 := max((maxY-height)/2, 0)
	x1 := min(x0+width, maxX-1)
	y1 := min(y0+height, maxY-1)
	if x1 <= x0 || y1 <= y0 {
		return nil
	}

	view, err := gui.SetView(name, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "taskpad"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, message)
	_, _ = gui.SetCurrentView(name)
	return nil
}

func (u *UI) layoutNotices(gui *gocui.Gui, maxX, footerY0 int) error {
	notices := u.notices.Visible()
	if len(notices) == 0 {
		_ = gui.DeleteView(viewNotices)
		return nil
	}

	width := min(48, maxX-2)
	height := len(notices) + 1
	x1 := maxX - 1
	x0 := max(x1-width, 0)
	y1 := footerY0 - 1
	y0 := max(y1-height, 1)
	if x1 <= x0 || y1 <= y0 {
		return nil
	}

	view, err := gui.SetView(viewNotices, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Frame = false
	view.Clear()
	for _, notice := range notices {
		fmt.Fprintln(view, formatNotice(notice))
	}
	_, _ = gui.SetViewOnTop(viewNotices)
	return nil
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	counts := u.store.Counts()
	filter := u.store.Filter()

	search := filter.Search
	if search == "" {
		search = "type / to search"
	}
	fmt.Fprintf(view, "Tasks: %d | Done: %d | Pending: %d || Search: %s | Filter: %s | Sort: %s",
		counts.Total, counts.Completed, counts.Pending, search, filter.Status, filter.Sort)
}

func (u *UI) renderFooter(view *gocui.View) {
	view.Clear()
	fmt.Fprintln(view, "a add | e edit | d delete | x/space toggle | enter save (form)")
	fmt.Fprintln(view, "/ search | f filter | s sort | g clear | r reload | ? help | q quit")
	if u.status != "" {
		fmt.Fprint(view, u.status)
	}
}

func (u *UI) renderTasks(view *gocui.View, focused bool) {
	view.Clear()
	if len(u.visible) == 0 {
		fmt.Fprint(view, " No tasks to show")
		return
	}
	for i, task := range u.visible {
		prefix := " "
		if i == u.selected {
			if focused {
				prefix = ">"
			} else {
				prefix = "*"
			}
		}
		fmt.Fprintf(view, "%s %s\n", prefix, formatTaskRow(task, u.editor.Editing(task.ID)))
	}
	if focused {
		view.SetCursor(0, min(u.selected, len(u.visible)-1))
	}
}

func (u *UI) renderDetail(view *gocui.View) {
	view.Clear()
	task := u.selectedTask()
	if task == nil {
		fmt.Fprint(view, "No task selected")
		return
	}

	state := "pending"
	if task.Completed {
		state = "completed"
	}

	lines := []string{
		task.Title,
		fmt.Sprintf("Status: %s", state),
		fmt.Sprintf("Created: %s", task.CreatedAt.Local().Format("2006-01-02 15:04")),
		fmt.Sprintf("Updated: %s", task.UpdatedAt.Local().Format("2006-01-02 15:04")),
	}
	if task.Description != "" {
		lines = append(lines, "", task.Description)
	}
	if draft, ok := u.editor.Draft(task.ID); ok {
		label := "editing"
		if draft.Saving {
			label = "saving"
		}
		lines = append(lines, "", fmt.Sprintf("(%s: %s)", label, draft.Title))
	}
	fmt.Fprint(view, strings.Join(lines, "\n"))
}

func (u *UI) selectedTask() *model.Task {
	if u.selected >= 0 && u.selected < len(u.visible) {
		task := u.visible[u.selected]
		return &task
	}
	return nil
}

func (u *UI) onTasksClick(gui *gocui.Gui, opts gocui.ViewMouseBindingOpts) error {
	if u.inputActive() {
		return nil
	}
	view, err := gui.View(viewTasks)
	if err != nil {
		return nil
	}

	_, y0, _, _ := view.Dimensions()
	_, oy := view.Origin()
	row := opts.Y - y0 - 1 + oy
	if row < 0 {
		row = 0
	}
	if len(u.visible) > 0 {
		u.selected = min(row, len(u.visible)-1)
	}
	_, _ = gui.SetCurrentView(viewTasks)
	return nil
}

func (u *UI) moveDown(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selected < len(u.visible)-1 {
		u.selected++
	}
	return nil
}

func (u *UI) moveUp(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selected > 0 {
		u.selected--
	}
	return nil
}

func (u *UI) reload(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.store.State() == store.StateLoading {
		return nil
	}
	u.status = ""
	go func() { _ = u.store.Load(context.Background()) }()
	return nil
}

func (u *UI) addTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.store.State() != store.StateReady {
		return nil
	}
	u.form = newCreateForm()
	u.status = ""
	return nil
}

func (u *UI) editTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.store.State() != store.StateReady {
		return nil
	}
	task := u.selectedTask()
	if task == nil {
		return nil
	}
	u.editor.Begin(*task)
	draft, _ := u.editor.Draft(task.ID)
	u.form = newEditForm(task.ID, draft)
	u.status = ""
	return nil
}

func (u *UI) deleteTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.store.State() != store.StateReady {
		return nil
	}
	task := u.selectedTask()
	if task == nil {
		return nil
	}
	id := task.ID
	go func() { _ = u.store.Remove(context.Background(), id) }()
	return nil
}

func (u *UI) toggleTask(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.store.State() != store.StateReady {
		return nil
	}
	task := u.selectedTask()
	if task == nil {
		return nil
	}
	id, next := task.ID, !task.Completed
	go func() { _ = u.store.Toggle(context.Background(), id, next) }()
	return nil
}

func (u *UI) startSearch(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.store.State() != store.StateReady {
		return nil
	}
	u.searchActive = true
	return nil
}

func (u *UI) submitSearch(gui *gocui.Gui, view *gocui.View) error {
	u.store.SetSearch(strings.TrimSpace(view.Buffer()))
	u.searchActive = false
	u.status = ""
	_ = gui.DeleteView(viewSearch)
	_, _ = gui.SetCurrentView(viewTasks)
	return nil
}

func (u *UI) cancelSearch(gui *gocui.Gui, _ *gocui.View) error {
	u.searchActive = false
	_ = gui.DeleteView(viewSearch)
	_, _ = gui.SetCurrentView(viewTasks)
	return nil
}

func (u *UI) cycleStatus(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.store.State() != store.StateReady {
		return nil
	}
	u.store.SetStatus(nextStatusFilter(u.store.Filter().Status))
	return nil
}

func (u *UI) cycleSort(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.store.State() != store.StateReady {
		return nil
	}
	u.store.SetSort(nextSortOrder(u.store.Filter().Sort))
	return nil
}

func (u *UI) clearFilters(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.store.SetSearch("")
	u.store.SetStatus(model.StatusAll)
	u.store.SetSort(model.SortDate)
	return nil
}

func (u *UI) showSearch(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(30, maxX/2)
	height := 3
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewSearch, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Search"
		view.Wrap = true
		view.Clear()
		fmt.Fprint(view, u.store.Filter().Search)
	}
	view.Editable = true
	view.Editor = gocui.DefaultEditor
	_, _ = gui.SetCurrentView(viewSearch)
	return nil
}

func (u *UI) showConfirm(gui *gocui.Gui) error {
	if u.confirm == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := max(40, maxX/3)
	height := 4
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewConfirm, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Confirm"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprintf(view, "%s\n\n[y]es / [n]o", u.confirm.prompt)
	_, _ = gui.SetViewOnTop(viewConfirm)
	_, _ = gui.SetCurrentView(viewConfirm)
	return nil
}

func (u *UI) confirmYes(gui *gocui.Gui, _ *gocui.View) error {
	return u.answerConfirm(gui, true)
}

func (u *UI) confirmNo(gui *gocui.Gui, _ *gocui.View) error {
	return u.answerConfirm(gui, false)
}

func (u *UI) answerConfirm(gui *gocui.Gui, answer bool) error {
	if u.confirm == nil {
		return nil
	}
	u.confirm.resp <- answer
	u.confirm = nil
	_ = gui.DeleteView(viewConfirm)
	_, _ = gui.SetCurrentView(viewTasks)
	return nil
}

func (u *UI) toggleHelp(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() && !u.helpActive {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

func (u *UI) closeHelp(gui *gocui.Gui, _ *gocui.View) error {
	u.helpActive = false
	_ = gui.DeleteView(viewHelp)
	_, _ = gui.SetCurrentView(viewTasks)
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := max(56, maxX/2)
	height := 14
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewHelp, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Title = "Help"
		view.Wrap = true
	}
	view.Clear()
	fmt.Fprint(view, helpText())
	_, _ = gui.SetCurrentView(viewHelp)
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	if u.form == nil {
		return nil
	}

	maxX, maxY := gui.Size()
	width := max(60, maxX/2)
	height := 5
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	x1 := x0 + width
	y1 := y0 + height

	view, err := gui.SetView(viewForm, x0, y0, x1, y1, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	if goerrors.Is(err, gocui.ErrUnknownView) {
		view.Wrap = true
	}
	view.Title = "New Task"
	if u.form.taskID != 0 {
		view.Title = "Edit Task"
		if draft, ok := u.editor.Draft(u.form.taskID); ok && draft.Saving {
			view.Title = "Edit Task (saving...)"
		}
	}
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	u.renderForm(view)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, field.Value)
	}
	label := u.form.fields[u.form.index].Label + ": "
	cursorX := len([]rune(label)) + len([]rune(u.form.fields[u.form.index].Value)) + 2
	view.SetCursor(cursorX, u.form.index)
}

func (u *UI) submitForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}
	title := strings.TrimSpace(u.form.fields[fieldTitle].Value)
	description := strings.TrimSpace(u.form.fields[fieldDescription].Value)

	if u.form.taskID == 0 {
		if title == "" {
			u.status = "title is required"
			return nil
		}
		go func() { _ = u.store.Create(context.Background(), title, description) }()
		u.closeForm(gui)
		return nil
	}

	id := u.form.taskID
	u.editor.SetDraft(id, title, description)
	if title == "" {
		// Blocked silently: the form stays open, no notification.
		u.status = "title is required"
		return nil
	}
	u.status = ""
	go func() {
		if err := u.editor.Save(context.Background(), id); err != nil {
			return
		}
		u.gui.Update(func(gui *gocui.Gui) error {
			if u.form != nil && u.form.taskID == id {
				u.closeForm(gui)
			}
			return nil
		})
	}()
	return nil
}

func (u *UI) nextFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index < len(u.form.fields)-1 {
		u.form.index++
	}
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index > 0 {
		u.form.index--
	}
	u.renderForm(view)
	return nil
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.taskID != 0 {
		u.editor.Cancel(u.form.taskID)
	}
	u.closeForm(gui)
	return nil
}

func (u *UI) closeForm(gui *gocui.Gui) {
	u.form = nil
	u.status = ""
	_ = gui.DeleteView(viewForm)
	_, _ = gui.SetCurrentView(viewTasks)
}

func (u *UI) inputActive() bool {
	return u.searchActive || u.form != nil || u.confirm != nil || u.helpActive
}

func (u *UI) quit(_ *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	return gocui.ErrQuit
}

func helpText() string {
	return strings.Join([]string{
		"Navigation:",
		"  j/k or arrows move selection",
		"  mouse click selects, wheel scrolls",
		"",
		"Actions:",
		"  a add task | e edit task | d delete task",
		"  x or space toggle completed",
		"  enter save (form) | esc cancel (form)",
		"  deletes and edit-saves ask for confirmation (y/n)",
		"",
		"View:",
		"  / search | f cycle filter | s cycle sort | g clear",
		"",
		"Other:",
		"  r reload | ? help | q quit",
	}, "\n")
}

func applyViewStyle(view *gocui.View, focused bool) {
	view.Frame = true
	view.Highlight = focused
	view.HighlightInactive = false
	view.SelBgColor = gocui.ColorBlue
	view.SelFgColor = gocui.ColorBlack
	view.InactiveViewSelBgColor = gocui.ColorDefault
	if focused {
		view.FrameColor = gocui.ColorCyan
		view.TitleColor = gocui.ColorCyan
	} else {
		view.FrameColor = gocui.ColorDefault
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ABOUTME: Root bubbletea model for the interactive console
// ABOUTME: Routes keyboard input and gates screen changes behind guards

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/tbenali/captrack/internal/alert"
	"github.com/tbenali/captrack/internal/client"
	"github.com/tbenali/captrack/internal/debuglog"
	"github.com/tbenali/captrack/internal/guard"
	"github.com/tbenali/captrack/internal/session"
	"github.com/tbenali/captrack/internal/tui/alerts"
	"github.com/tbenali/captrack/internal/tui/styles"
)

// Screen identifies the current console screen.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenDashboard
	ScreenSensors
	ScreenMachines
	ScreenCaps
	ScreenDetections
	ScreenUsers
	ScreenProfile
)

const requestTimeout = 30 * time.Second

// sessionExpiredMsg is sent when a request hit a 401/403 and the session
// was torn down.
type sessionExpiredMsg struct{}

// loginDoneMsg is sent when a login attempt completes.
type loginDoneMsg struct {
	user *session.User
	err  error
}

// registerDoneMsg is sent when an account creation completes.
type registerDoneMsg struct {
	err error
}

// profileSavedMsg is sent when a profile update completes.
type profileSavedMsg struct {
	err error
}

// dashboardLoadedMsg carries the three fleet summaries.
type dashboardLoadedMsg struct {
	sensors  *client.SensorSummary
	machines *client.MachineSummary
	caps     *client.CapSummary
	err      error
}

// sensorsLoadedMsg carries a sensors page.
type sensorsLoadedMsg struct {
	page *client.Page[client.Sensor]
	err  error
}

// machinesLoadedMsg carries the machine list.
type machinesLoadedMsg struct {
	machines []client.Machine
	err      error
}

// capsLoadedMsg carries a caps page.
type capsLoadedMsg struct {
	page *client.Page[client.Cap]
	err  error
}

// detectionsLoadedMsg carries a detection history page.
type detectionsLoadedMsg struct {
	page *client.Page[client.CapDetection]
	err  error
}

// usersLoadedMsg carries a users page.
type usersLoadedMsg struct {
	page *client.Page[client.Account]
	err  error
}

// App is the root model for the console.
type App struct {
	api    *client.Client
	sess   *session.Session
	bus    *alert.Bus
	alerts *alerts.Model

	screen  Screen
	width   int
	height  int
	expired chan struct{}
	busy    bool

	// Login/register form state
	form          *huh.Form
	email         string
	password      string
	fullName      string
	phone         string
	formSubmitted bool

	// Screen data
	sensorSummary  *client.SensorSummary
	machineSummary *client.MachineSummary
	capSummary     *client.CapSummary
	sensorTable    table.Model
	machineTable   table.Model
	capTable       table.Model
	detectionTable table.Model
	userTable      table.Model
}

// New creates the console app. The client's unauthorized hook is wired to
// force the login screen.
func New(api *client.Client, sess *session.Session, bus *alert.Bus) *App {
	a := &App{
		api:     api,
		sess:    sess,
		bus:     bus,
		alerts:  alerts.New(bus),
		expired: make(chan struct{}, 1),
	}

	api.OnUnauthorized(func() {
		select {
		case a.expired <- struct{}{}:
		default:
		}
	})

	if sess.IsAuthenticated() {
		a.screen = ScreenDashboard
	} else {
		a.screen = ScreenLogin
		a.resetLoginForm()
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.alerts.Listen(), a.listenExpired()}
	if a.screen == ScreenDashboard {
		cmds = append(cmds, a.loadDashboard())
	}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	return tea.Batch(cmds...)
}

// listenExpired waits for the unauthorized hook to fire.
func (a *App) listenExpired() tea.Cmd {
	return func() tea.Msg {
		<-a.expired
		return sessionExpiredMsg{}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case alerts.EventMsg:
		return a, a.alerts.Update(msg)

	case sessionExpiredMsg:
		a.bus.Warning("Session expired. Please log in again.")
		a.screen = ScreenLogin
		a.resetLoginForm()
		return a, tea.Batch(a.form.Init(), a.listenExpired())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.alerts.Close()
			return a, tea.Quit
		}
		if a.inForm() {
			return a.updateForm(msg)
		}
		return a.handleKey(msg)

	case loginDoneMsg:
		a.busy = false
		if msg.err != nil {
			debuglog.Error("login", msg.err)
			a.bus.Error(loginErrorText(msg.err))
			a.resetLoginForm()
			return a, a.form.Init()
		}
		a.bus.Success(fmt.Sprintf("Welcome back, %s.", msg.user.FullName))
		return a, a.navigate(ScreenDashboard)

	case registerDoneMsg:
		a.busy = false
		if msg.err != nil {
			debuglog.Error("register", msg.err)
			a.bus.Error(msg.err.Error())
			a.resetRegisterForm()
			return a, a.form.Init()
		}
		// The new account logs in separately.
		a.bus.Success("Account created. Please log in.")
		a.screen = ScreenLogin
		a.resetLoginForm()
		return a, a.form.Init()

	case profileSavedMsg:
		a.busy = false
		if msg.err != nil {
			a.bus.Error(msg.err.Error())
		} else {
			a.bus.Success("Profile updated.")
		}
		return a, a.navigate(ScreenDashboard)

	case dashboardLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.bus.Error(msg.err.Error())
			return a, nil
		}
		a.sensorSummary = msg.sensors
		a.machineSummary = msg.machines
		a.capSummary = msg.caps
		return a, nil

	case sensorsLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.bus.Error(msg.err.Error())
			return a, nil
		}
		a.sensorTable = sensorTable(msg.page.Content)
		return a, nil

	case machinesLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.bus.Error(msg.err.Error())
			return a, nil
		}
		a.machineTable = machineTable(msg.machines)
		return a, nil

	case capsLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.bus.Error(msg.err.Error())
			return a, nil
		}
		a.capTable = capTable(msg.page.Content)
		return a, nil

	case detectionsLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.bus.Error(msg.err.Error())
			return a, nil
		}
		a.detectionTable = detectionTable(msg.page.Content)
		return a, nil

	case usersLoadedMsg:
		a.busy = false
		if msg.err != nil {
			a.bus.Error(msg.err.Error())
			return a, nil
		}
		a.userTable = userTable(msg.page.Content)
		return a, nil
	}

	if a.inForm() {
		return a.updateForm(msg)
	}
	return a.updateTable(msg)
}

// inForm reports whether the current screen is form-driven.
func (a *App) inForm() bool {
	return a.form != nil && (a.screen == ScreenLogin || a.screen == ScreenRegister || a.screen == ScreenProfile)
}

// updateForm forwards a message to the active huh form and submits it when
// the form completes.
func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && a.screen == ScreenLogin && key.String() == "ctrl+n" {
		a.screen = ScreenRegister
		a.resetRegisterForm()
		return a, a.form.Init()
	}

	model, cmd := a.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted && !a.formSubmitted {
		a.formSubmitted = true
		a.busy = true
		switch a.screen {
		case ScreenLogin:
			return a, a.loginCmd()
		case ScreenRegister:
			return a, a.registerCmd()
		case ScreenProfile:
			return a, a.saveProfileCmd()
		}
	}
	if a.form.State == huh.StateAborted {
		switch a.screen {
		case ScreenRegister:
			a.screen = ScreenLogin
			a.resetLoginForm()
			return a, a.form.Init()
		case ScreenProfile:
			return a, a.navigate(ScreenDashboard)
		}
	}
	return a, cmd
}

// updateTable forwards messages to the visible table for scrolling.
func (a *App) updateTable(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenSensors:
		a.sensorTable, cmd = a.sensorTable.Update(msg)
	case ScreenMachines:
		a.machineTable, cmd = a.machineTable.Update(msg)
	case ScreenCaps:
		a.capTable, cmd = a.capTable.Update(msg)
	case ScreenDetections:
		a.detectionTable, cmd = a.detectionTable.Update(msg)
	case ScreenUsers:
		a.userTable, cmd = a.userTable.Update(msg)
	}
	return a, cmd
}

// handleKey processes global navigation keys outside forms.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		a.alerts.Close()
		return a, tea.Quit
	case "1":
		return a, a.navigate(ScreenDashboard)
	case "2":
		return a, a.navigate(ScreenSensors)
	case "3":
		return a, a.navigate(ScreenMachines)
	case "4":
		return a, a.navigate(ScreenCaps)
	case "5":
		return a, a.navigate(ScreenDetections)
	case "6":
		return a, a.navigate(ScreenUsers)
	case "p":
		return a, a.navigate(ScreenProfile)
	case "r":
		return a, a.loadCurrent()
	case "x":
		a.alerts.DismissNewest()
		return a, nil
	case "X":
		a.alerts.ClearAll()
		return a, nil
	case "l":
		if err := a.sess.Clear(); err != nil {
			a.bus.Error(err.Error())
			return a, nil
		}
		a.bus.Info("Logged out.")
		a.screen = ScreenLogin
		a.resetLoginForm()
		return a, a.form.Init()
	}
	return a, nil
}

// navigate gates a screen change behind the guards. A blocked navigation
// leaves the current screen alone except for the admin bounce to the
// dashboard.
func (a *App) navigate(target Screen) tea.Cmd {
	switch target {
	case ScreenLogin, ScreenRegister:
		a.screen = target
		return nil
	case ScreenUsers:
		if !guard.Authenticated(a.sess) {
			a.screen = ScreenLogin
			a.resetLoginForm()
			return a.form.Init()
		}
		if !guard.Admin(a.sess, a.bus) {
			// Denied: land on the default authenticated screen.
			a.screen = ScreenDashboard
			return a.loadDashboard()
		}
	default:
		if !guard.Authenticated(a.sess) {
			a.screen = ScreenLogin
			a.resetLoginForm()
			return a.form.Init()
		}
	}

	a.screen = target
	if target == ScreenProfile {
		a.resetProfileForm()
		return a.form.Init()
	}
	return a.loadCurrent()
}

// CurrentScreen returns the active screen.
func (a *App) CurrentScreen() Screen {
	return a.screen
}

// loadCurrent refreshes the data behind the active screen.
func (a *App) loadCurrent() tea.Cmd {
	a.busy = true
	switch a.screen {
	case ScreenDashboard:
		return a.loadDashboard()
	case ScreenSensors:
		return a.loadSensors()
	case ScreenMachines:
		return a.loadMachines()
	case ScreenCaps:
		return a.loadCaps()
	case ScreenDetections:
		return a.loadDetections()
	case ScreenUsers:
		return a.loadUsers()
	}
	a.busy = false
	return nil
}

func (a *App) loadDashboard() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		sensors, err := a.api.SensorsSummary(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		machines, err := a.api.MachinesSummary(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		caps, err := a.api.CapsSummary(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{sensors: sensors, machines: machines, caps: caps}
	}
}

func (a *App) loadSensors() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := a.api.ListSensors(ctx, client.DefaultListQuery())
		return sensorsLoadedMsg{page: page, err: err}
	}
}

func (a *App) loadMachines() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		machines, err := a.api.ListAllMachines(ctx, "", "")
		return machinesLoadedMsg{machines: machines, err: err}
	}
}

func (a *App) loadCaps() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := a.api.ListCaps(ctx, client.DefaultListQuery())
		return capsLoadedMsg{page: page, err: err}
	}
}

func (a *App) loadDetections() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := a.api.DetectionHistory(ctx, 0, 10)
		return detectionsLoadedMsg{page: page, err: err}
	}
}

func (a *App) loadUsers() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		page, err := a.api.ListUsers(ctx, client.DefaultListQuery())
		return usersLoadedMsg{page: page, err: err}
	}
}

func (a *App) loginCmd() tea.Cmd {
	email, password := a.email, a.password
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := a.api.Login(ctx, email, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (a *App) registerCmd() tea.Cmd {
	input := client.RegisterInput{
		Email:    a.email,
		FullName: a.fullName,
		Phone:    a.phone,
		Password: a.password,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := a.api.Register(ctx, input)
		return registerDoneMsg{err: err}
	}
}

func (a *App) saveProfileCmd() tea.Cmd {
	fullName := a.fullName
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := a.api.UpdateProfile(ctx, client.ProfileUpdate{FullName: fullName})
		return profileSavedMsg{err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	header := styles.Title.Render("CapTrack Console") + "\n"
	strip := a.alerts.View()

	var body string
	switch a.screen {
	case ScreenLogin:
		body = a.viewForm("Log in", "ctrl+n: create account  esc: quit")
	case ScreenRegister:
		body = a.viewForm("Create account", "esc: back to login")
	case ScreenProfile:
		body = a.viewForm("Edit profile", "esc: cancel")
	case ScreenDashboard:
		body = a.viewDashboard()
	case ScreenSensors:
		body = a.viewTable("Sensors", a.sensorTable)
	case ScreenMachines:
		body = a.viewTable("Machines", a.machineTable)
	case ScreenCaps:
		body = a.viewTable("Caps", a.capTable)
	case ScreenDetections:
		body = a.viewTable("Detection history", a.detectionTable)
	case ScreenUsers:
		body = a.viewTable("Users", a.userTable)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, strip, body)
}

func (a *App) viewForm(title, help string) string {
	if a.form == nil {
		return ""
	}
	return styles.Subtitle.Render(title) + "\n" + a.form.View() + "\n" + styles.Help.Render(help)
}

func (a *App) viewDashboard() string {
	if a.busy && a.sensorSummary == nil {
		return styles.Subtitle.Render("Loading…")
	}
	var who string
	if u := a.sess.User(); u != nil {
		who = fmt.Sprintf("%s (%s)", u.FullName, u.Role)
	}

	panels := []string{}
	if a.sensorSummary != nil {
		panels = append(panels, styles.Panel.Render(fmt.Sprintf(
			"Sensors\n\nTotal:       %d\nActive:      %d\nInactive:    %d\nMaintenance: %d",
			a.sensorSummary.Total, a.sensorSummary.Active, a.sensorSummary.Inactive, a.sensorSummary.Maintenance)))
	}
	if a.machineSummary != nil {
		panels = append(panels, styles.Panel.Render(fmt.Sprintf(
			"Machines\n\nTotal:       %d\nRunning:     %d\nStopped:     %d\nMaintenance: %d",
			a.machineSummary.Total, a.machineSummary.Running, a.machineSummary.Stopped, a.machineSummary.Maintenance)))
	}
	if a.capSummary != nil {
		panels = append(panels, styles.Panel.Render(fmt.Sprintf(
			"Caps\n\nInspected: %d\nDefective: %d\nRate:      %.1f%%",
			a.capSummary.Total, a.capSummary.Defective, a.capSummary.Rate*100)))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	help := styles.Help.Render("1 dashboard  2 sensors  3 machines  4 caps  5 detections  6 users  p profile  r refresh  l logout  q quit")
	return styles.Subtitle.Render(who) + "\n" + content + "\n" + help
}

func (a *App) viewTable(title string, t table.Model) string {
	if a.busy {
		return styles.Subtitle.Render("Loading…")
	}
	help := styles.Help.Render("↑/↓ scroll  r refresh  1 dashboard  x dismiss alert  q quit")
	return styles.Subtitle.Render(title) + "\n" + t.View() + "\n" + help
}

func (a *App) resetLoginForm() {
	a.email, a.password = "", ""
	a.formSubmitted = false
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&a.email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&a.password),
		),
	).WithTheme(huh.ThemeBase())
}

func (a *App) resetRegisterForm() {
	a.email, a.password, a.fullName, a.phone = "", "", "", ""
	a.formSubmitted = false
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&a.fullName),
			huh.NewInput().Title("Email").Value(&a.email),
			huh.NewInput().Title("Phone").Value(&a.phone),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&a.password),
		),
	).WithTheme(huh.ThemeBase())
}

func (a *App) resetProfileForm() {
	a.fullName = ""
	if u := a.sess.User(); u != nil {
		a.fullName = u.FullName
	}
	a.formSubmitted = false
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&a.fullName),
		),
	).WithTheme(huh.ThemeBase())
}

func loginErrorText(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, client.ErrInvalidCredentials) {
		return "Invalid email or password."
	}
	return err.Error()
}

package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	// OnToggle flips nudging and returns the new state.
	OnToggle  func() bool
	OnOpenLog func()
	OnQuit    func()
}

// Icons holds the tray images for each state.
type Icons struct {
	Active   fyne.Resource
	Inactive fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        App
	appName    string
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	active     bool
}

// New creates a tray manager, installs its menu and shows the icon for the initial state.
func New(app App, appName string, icons Icons, active bool, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		appName:   appName,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(fmt.Sprintf("%s On/Off", appName), manager.handleToggle)

	manager.SetActive(active)
	return manager
}

// SetActive updates the checkbox, status line and icon.
func (manager *Manager) SetActive(active bool) {
	manager.active = active
	manager.toggleItem.Checked = active
	manager.statusItem.Label = manager.Title()
	if icon := manager.icon(); icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
	manager.refreshMenu()
}

// Active reports the state currently shown.
func (manager *Manager) Active() bool {
	return manager.active
}

// Title returns the status text, e.g. "Hypernate (On)".
func (manager *Manager) Title() string {
	state := "Off"
	if manager.active {
		state = "On"
	}
	return fmt.Sprintf("%s (%s)", manager.appName, state)
}

func (manager *Manager) handleToggle() {
	if manager.callbacks.OnToggle == nil {
		return
	}
	manager.SetActive(manager.callbacks.OnToggle())
}

func (manager *Manager) icon() fyne.Resource {
	if manager.active || manager.icons.Inactive == nil {
		return manager.icons.Active
	}
	return manager.icons.Inactive
}

func (manager *Manager) refreshMenu() {
	openLog := fyne.NewMenuItem("Open Log", func() {
		if manager.callbacks.OnOpenLog != nil {
			manager.callbacks.OnOpenLog()
		}
	})
	// IsQuit stops the driver from appending its own Quit entry.
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.appName,
		manager.statusItem,
		manager.toggleItem,
		fyne.NewMenuItemSeparator(),
		openLog,
		fyne.NewMenuItemSeparator(),
		quit,
	))
}

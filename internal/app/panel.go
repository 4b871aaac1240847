package app

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/pocket_instruments/internal/config"
	"github.com/relabs-tech/pocket_instruments/internal/heading"
	"github.com/relabs-tech/pocket_instruments/internal/lamp"
	"github.com/relabs-tech/pocket_instruments/internal/level"
	"github.com/relabs-tech/pocket_instruments/internal/morse"
	"github.com/relabs-tech/pocket_instruments/internal/prefs"
	"github.com/relabs-tech/pocket_instruments/internal/sensors"
	"github.com/relabs-tech/pocket_instruments/internal/transmitter"
	"github.com/relabs-tech/pocket_instruments/internal/ui"
)

const (
	tabCompass = iota
	tabLevel
	tabLamp
)

// panelRefresh is the display repaint cadence. Readings arrive much faster;
// throttling is strictly a presentation concern and stays out of the
// trackers.
const panelRefresh = 250 * time.Millisecond

// panelShared holds state shared between Bubble Tea model copies and the
// feed goroutines. Bubble Tea uses value receivers, so pointer fields make
// every copy see the same data.
type panelShared struct {
	tx    *transmitter.Transmitter
	mock  *lamp.Mock // non-nil in demo mode
	prefs *prefs.Store

	client mqtt.Client // nil in demo mode

	mu      sync.RWMutex
	hdg     heading.Reading
	haveHdg bool
	lvl     level.Reading
	haveLvl bool
}

func (s *panelShared) setHeading(r heading.Reading) {
	s.mu.Lock()
	s.hdg = r
	s.haveHdg = true
	s.mu.Unlock()
}

func (s *panelShared) setLevel(r level.Reading) {
	s.mu.Lock()
	s.lvl = r
	s.haveLvl = true
	s.mu.Unlock()
}

// PanelModel is the root Bubble Tea model for the instrument panel.
type PanelModel struct {
	width  int
	height int

	tab    int
	dark   bool
	theme  ui.Theme
	typing bool
	input  string
	status string

	hdg     heading.Reading
	haveHdg bool
	lvl     level.Reading
	haveLvl bool

	shared *panelShared
}

func newPanelModel(shared *panelShared) PanelModel {
	dark := shared.prefs.GetBool(prefs.KeyDarkMode)
	return PanelModel{
		dark:   dark,
		theme:  ui.NewTheme(dark),
		shared: shared,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(panelRefresh, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m PanelModel) Init() tea.Cmd {
	return tickCmd()
}

func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.shared.mu.RLock()
		m.hdg, m.haveHdg = m.shared.hdg, m.shared.haveHdg
		m.lvl, m.haveLvl = m.shared.lvl, m.shared.haveLvl
		m.shared.mu.RUnlock()
		return m, tickCmd()
	}

	return m, nil
}

func (m PanelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.typing {
		return m.handleTypingKey(msg)
	}

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.shutdown()
		return m, tea.Quit

	case "tab", "right":
		m.tab = (m.tab + 1) % len(ui.TabNames)
		m.status = ""

	case "shift+tab", "left":
		m.tab = (m.tab + len(ui.TabNames) - 1) % len(ui.TabNames)
		m.status = ""

	case "1":
		m.tab = tabCompass
	case "2":
		m.tab = tabLevel
	case "3":
		m.tab = tabLamp

	case "d", "D":
		m.dark = !m.dark
		m.theme = ui.NewTheme(m.dark)
		if err := m.shared.prefs.SetBool(prefs.KeyDarkMode, m.dark); err != nil {
			m.status = "could not save preference"
		}

	case "o", "O":
		if m.tab == tabLamp {
			if err := m.shared.tx.Toggle(); err != nil {
				m.status = "stop the transmission first"
			} else {
				m.status = ""
			}
		}

	case "s", "S":
		if m.tab == tabLamp {
			m.shared.tx.StartSOS()
			m.status = ""
		}

	case "m", "M":
		if m.tab == tabLamp {
			m.typing = true
			m.input = ""
			m.status = ""
		}

	case "x", "X":
		if m.tab == tabLamp {
			m.shared.tx.Stop()
			m.status = ""
		}
	}

	return m, nil
}

func (m PanelModel) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.typing = false
		m.input = ""

	case tea.KeyEnter:
		if err := m.shared.tx.StartMorse(m.input); err != nil {
			if err == morse.ErrEmptyMessage {
				m.status = "nothing to transmit"
			} else {
				m.status = err.Error()
			}
		} else {
			m.status = ""
		}
		m.typing = false
		m.input = ""

	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}

	case tea.KeySpace:
		m.input += " "

	case tea.KeyRunes:
		m.input += string(msg.Runes)

	case tea.KeyCtrlC:
		m.shutdown()
		return m, tea.Quit
	}

	return m, nil
}

func (m PanelModel) shutdown() {
	if err := m.shared.tx.Close(); err != nil {
		log.Printf("panel: transmitter close: %v", err)
	}
	if m.shared.client != nil {
		m.shared.client.Disconnect(250)
	}
}

func (m PanelModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing instruments..."
	}

	bodyH := m.height - 2
	if bodyH < 5 {
		bodyH = 5
	}

	var body string
	switch m.tab {
	case tabCompass:
		body = ui.RenderCompass(m.width, bodyH, m.hdg, m.haveHdg, m.theme)
	case tabLevel:
		body = ui.RenderBubble(m.width, bodyH, m.lvl, m.haveLvl, m.theme)
	case tabLamp:
		lit := m.shared.tx.ManualOn()
		if m.shared.mock != nil {
			lit = m.shared.mock.On()
		}
		body = ui.RenderLamp(m.width, bodyH, ui.LampView{
			State:  m.shared.tx.State().String(),
			Lit:    lit,
			Typing: m.typing,
			Input:  m.input,
			Status: m.status,
		}, m.theme)
	}

	tabBar := ui.RenderTabBar(m.width, m.tab, m.theme)
	statusBar := ui.RenderStatusBar(m.width, "tab/1-3 switch  d theme  q quit", m.theme)

	return tabBar + "\n" + body + "\n" + statusBar
}

// RunPanel starts the tabbed instrument panel. In demo mode the readings
// come from mock sensors and the lamp is simulated; otherwise readings
// arrive over MQTT and the lamp drives the configured GPIO pin.
func RunPanel(cfg *config.Config, demo bool) error {
	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	shared := &panelShared{prefs: store}

	var device lamp.Lamp
	if demo {
		shared.mock = lamp.NewMock()
		device = shared.mock
	} else {
		gpioLamp, err := lamp.NewGPIO(cfg.LampGPIOPin, false)
		if err != nil {
			return fmt.Errorf("lamp: %w", err)
		}
		device = gpioLamp
	}

	shared.tx = transmitter.New(device, time.Duration(cfg.MorseUnitMS)*time.Millisecond)

	// The persisted launch preference goes through the same toggle path as
	// a key press, so lamp ownership rules apply from the first moment.
	if store.GetBool(prefs.KeyLampOnLaunch) {
		if err := shared.tx.Toggle(); err != nil {
			log.Printf("panel: launch toggle: %v", err)
		}
	}

	if demo {
		go runDemoFeed(shared)
	} else {
		if err := connectPanelFeed(cfg, shared); err != nil {
			return err
		}
	}

	p := tea.NewProgram(newPanelModel(shared), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// runDemoFeed drives the trackers from mock sensors at the real sample
// cadence.
func runDemoFeed(shared *panelShared) {
	magSrc := sensors.NewMockMagnetometer()
	accelSrc := sensors.NewMockAccelerometer()
	tracker := heading.New()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if mag, err := magSrc.Next(); err == nil {
			shared.setHeading(tracker.OnSample(mag.X, mag.Y))
		}
		if accel, err := accelSrc.Next(); err == nil {
			shared.setLevel(level.Compute(accel.X, accel.Y))
		}
	}
}

// connectPanelFeed subscribes to the reading topics and keeps the shared
// cache current.
func connectPanelFeed(cfg *config.Config, shared *panelShared) error {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDPanel)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect: %w", token.Error())
	}
	shared.client = client

	hdgToken := client.Subscribe(cfg.TopicHeading, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r heading.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("panel: heading unmarshal error: %v", err)
			return
		}
		shared.setHeading(r)
	})
	hdgToken.Wait()
	if hdgToken.Error() != nil {
		return hdgToken.Error()
	}

	lvlToken := client.Subscribe(cfg.TopicLevel, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r level.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("panel: level unmarshal error: %v", err)
			return
		}
		shared.setLevel(r)
	})
	lvlToken.Wait()
	return lvlToken.Error()
}

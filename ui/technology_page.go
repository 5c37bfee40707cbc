package ui

import (
	"context"
	"errors"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/connman-gtk/common"
	"github.com/yllada/connman-gtk/keyring"
	"github.com/yllada/connman-gtk/technology"
)

// TechnologyPage is the settings page of a technology.
type TechnologyPage struct {
	app  *Application
	tech *technology.Technology

	box          *gtk.Box
	icon         *gtk.Image
	title        *gtk.Label
	status       *gtk.Label
	powerSwitch  *gtk.Switch
	scanButton   *gtk.Button
	tetherBox    *gtk.Box
	tetherSwitch *gtk.Switch
	ssidEntry    *gtk.Entry
	passEntry    *gtk.PasswordEntry

	// updating suppresses switch handlers while Refresh sets their state.
	updating bool
	// passphraseRequested is set once the stored passphrase was asked for.
	passphraseRequested bool
}

// NewTechnologyPage builds the page for t.
func NewTechnologyPage(app *Application, t *technology.Technology) *TechnologyPage {
	p := &TechnologyPage{app: app, tech: t}

	p.box = gtk.NewBox(gtk.OrientationVertical, common.MarginLarge)
	p.box.SetMarginStart(common.MarginLarge)
	p.box.SetMarginEnd(common.MarginLarge)
	p.box.AddCSSClass("technology-page")

	p.box.Append(p.createHeader(t))
	p.box.Append(p.createPowerCard(t))
	p.box.Append(p.createTetheringCard(t))

	p.Refresh(t)
	return p
}

func (p *TechnologyPage) createHeader(t *technology.Technology) *gtk.Box {
	header := gtk.NewBox(gtk.OrientationHorizontal, common.MarginLarge)

	p.icon = gtk.NewImageFromIconName(t.Type().IconName())
	p.icon.SetPixelSize(48)
	header.Append(p.icon)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)
	textBox.SetVAlign(gtk.AlignCenter)

	p.title = gtk.NewLabel("")
	p.title.SetXAlign(0)
	p.title.AddCSSClass("title-2")
	textBox.Append(p.title)

	p.status = gtk.NewLabel("")
	p.status.SetXAlign(0)
	p.status.AddCSSClass("dim-label")
	textBox.Append(p.status)

	header.Append(textBox)
	return header
}

func (p *TechnologyPage) createPowerCard(t *technology.Technology) *gtk.Box {
	card := gtk.NewBox(gtk.OrientationVertical, 0)
	card.AddCSSClass("card")

	p.powerSwitch = gtk.NewSwitch()
	p.powerSwitch.SetVAlign(gtk.AlignCenter)
	p.powerSwitch.ConnectStateSet(func(state bool) bool {
		if p.updating {
			return false
		}
		tech := p.tech
		p.app.runAsync("Switching "+tech.Name(), func(ctx context.Context) error {
			return tech.SetPowered(ctx, state)
		}, p.refreshCurrent)
		return false
	})
	card.Append(settingRow("Enabled", "Turn the technology on or off", p.powerSwitch))

	if t.Type() == technology.TypeWireless {
		card.Append(cardSeparator())

		p.scanButton = gtk.NewButtonWithLabel("Scan")
		p.scanButton.SetVAlign(gtk.AlignCenter)
		p.scanButton.ConnectClicked(p.onScan)
		card.Append(settingRow("Networks", "Look for wireless networks in range", p.scanButton))
	}

	return card
}

func (p *TechnologyPage) createTetheringCard(t *technology.Technology) *gtk.Box {
	p.tetherBox = gtk.NewBox(gtk.OrientationVertical, 0)
	p.tetherBox.AddCSSClass("card")
	p.tetherBox.SetVisible(canTether(t.Type()))

	p.tetherSwitch = gtk.NewSwitch()
	p.tetherSwitch.SetVAlign(gtk.AlignCenter)
	p.tetherSwitch.ConnectStateSet(func(state bool) bool {
		if p.updating {
			return false
		}
		p.setTethering(state)
		return false
	})
	p.tetherBox.Append(settingRow("Tethering", "Share this connection with other devices", p.tetherSwitch))

	if t.Type() != technology.TypeWireless {
		return p.tetherBox
	}

	p.tetherBox.Append(cardSeparator())
	p.ssidEntry = gtk.NewEntry()
	p.ssidEntry.SetPlaceholderText("Network name")
	p.ssidEntry.SetVAlign(gtk.AlignCenter)
	p.tetherBox.Append(settingRow("Network name", "Name of the shared wireless network", p.ssidEntry))

	p.tetherBox.Append(cardSeparator())
	p.passEntry = gtk.NewPasswordEntry()
	p.passEntry.SetShowPeekIcon(true)
	p.passEntry.SetVAlign(gtk.AlignCenter)
	p.tetherBox.Append(settingRow("Passphrase", "At least 8 characters", p.passEntry))

	return p.tetherBox
}

func canTether(typ technology.Type) bool {
	switch typ {
	case technology.TypeEthernet, technology.TypeWireless, technology.TypeBluetooth, technology.TypeGadget:
		return true
	}
	return false
}

// loadPassphrase fills the passphrase entry from the secret store. The
// lookup is a bus call and runs off the main loop; only pages that reach
// the notebook ask for it.
func (p *TechnologyPage) loadPassphrase() {
	if p.passEntry == nil || p.passphraseRequested {
		return
	}
	p.passphraseRequested = true

	key := string(p.tech.Path())
	secrets := p.app.secrets
	go func() {
		secret, err := secrets.Get(key)
		if err != nil {
			if !errors.Is(err, keyring.ErrNotFound) {
				common.LogWarn("Reading passphrase for %s: %v", key, err)
			}
			return
		}
		dispatch(func() {
			if p.passEntry.Text() == "" {
				p.passEntry.SetText(secret)
			}
		})
	}()
}

func (p *TechnologyPage) onScan() {
	tech := p.tech
	p.scanButton.SetSensitive(false)
	go func() {
		ctx, cancel := context.WithTimeout(p.app.ctx, remoteCallTimeout)
		defer cancel()
		err := tech.Scan(ctx)
		dispatch(func() {
			p.scanButton.SetSensitive(true)
			if err != nil {
				common.LogError("Scan on %s failed: %v", tech.Path(), err)
				p.app.window.ShowToast("Scan failed")
				return
			}
			p.app.window.ShowToast("Scan finished")
		})
	}()
}

func (p *TechnologyPage) setTethering(enabled bool) {
	tech := p.tech
	var ssid, passphrase string
	if p.ssidEntry != nil {
		ssid = p.ssidEntry.Text()
		passphrase = p.passEntry.Text()
	}
	key := string(tech.Path())
	secrets := p.app.secrets

	p.app.runAsync("Tethering on "+tech.Name(), func(ctx context.Context) error {
		if enabled && tech.Type() == technology.TypeWireless && passphrase == "" {
			stored, err := secrets.Get(key)
			if err != nil && !errors.Is(err, keyring.ErrNotFound) {
				common.LogWarn("Reading passphrase: %v", err)
			}
			passphrase = stored
		}
		if err := tech.SetTethering(ctx, enabled, ssid, passphrase); err != nil {
			return err
		}
		if enabled && passphrase != "" {
			if err := secrets.Store(key, passphrase); err != nil {
				common.LogWarn("Remembering passphrase: %v", err)
			}
		}
		return nil
	}, p.refreshCurrent)
}

func (p *TechnologyPage) refreshCurrent() {
	p.Refresh(p.tech)
}

// Refresh re-renders the page from t.
func (p *TechnologyPage) Refresh(t *technology.Technology) {
	p.tech = t
	props := t.Properties()

	p.updating = true
	defer func() { p.updating = false }()

	p.title.SetText(t.Name())
	p.status.SetText(statusText(t))
	p.powerSwitch.SetActive(props.Powered)
	if p.scanButton != nil {
		p.scanButton.SetSensitive(props.Powered)
	}

	p.tetherSwitch.SetActive(props.Tethering)
	p.tetherSwitch.SetSensitive(props.Powered)
	if p.ssidEntry != nil && props.TetheringIdentifier != "" && p.ssidEntry.Text() == "" {
		p.ssidEntry.SetText(props.TetheringIdentifier)
	}
}

// settingRow creates a row with title, description, and widget.
func settingRow(title, description string, widget gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, common.MarginLarge)
	row.SetMarginTop(14)
	row.SetMarginBottom(14)
	row.SetMarginStart(16)
	row.SetMarginEnd(16)

	textBox := gtk.NewBox(gtk.OrientationVertical, 4)
	textBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.SetXAlign(0)
	titleLabel.AddCSSClass("settings-title")
	textBox.Append(titleLabel)

	descLabel := gtk.NewLabel(description)
	descLabel.SetXAlign(0)
	descLabel.AddCSSClass("dim-label")
	descLabel.AddCSSClass("caption")
	descLabel.SetWrap(true)
	textBox.Append(descLabel)

	row.Append(textBox)
	row.Append(widget)

	return row
}

// cardSeparator creates a styled separator for cards.
func cardSeparator() *gtk.Separator {
	sep := gtk.NewSeparator(gtk.OrientationHorizontal)
	sep.SetMarginStart(16)
	sep.SetMarginEnd(16)
	return sep
}

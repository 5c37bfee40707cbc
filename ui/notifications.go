// Package ui provides the graphical user interface for Network Settings.
// This file contains the notification system for technology events.
package ui

import (
	"os/exec"

	"github.com/yllada/connman-gtk/common"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationWarning
	NotificationError
)

// Notification represents a system notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

// Notifier sends desktop notifications through notify-send.
type Notifier struct {
	appName string
}

var _ common.Notifier = (*Notifier)(nil)

// NewNotifier returns a Notifier that labels notifications with appName.
func NewNotifier(appName string) *Notifier {
	return &Notifier{appName: appName}
}

// Notify implements common.Notifier.
func (n *Notifier) Notify(title, message string) error {
	return n.Show(Notification{Title: title, Message: message})
}

// NotifyWithIcon implements common.Notifier.
func (n *Notifier) NotifyWithIcon(title, message, icon string) error {
	return n.Show(Notification{Title: title, Message: message, Icon: icon})
}

// Show displays a notification. It blocks until notify-send returns.
func (n *Notifier) Show(note Notification) error {
	icon := note.Icon
	if icon == "" {
		switch note.Type {
		case NotificationWarning:
			icon = "dialog-warning"
		case NotificationError:
			icon = "dialog-error"
		default:
			icon = "network-workgroup"
		}
	}

	urgency := "low"
	switch note.Type {
	case NotificationError:
		urgency = "critical"
	case NotificationWarning:
		urgency = "normal"
	}

	cmd := exec.Command("notify-send",
		"--app-name="+n.appName,
		"--icon="+icon,
		"--urgency="+urgency,
		note.Title,
		note.Message,
	)

	if err := cmd.Run(); err != nil {
		common.LogWarn("Error showing notification: %v", err)
		return err
	}
	return nil
}

// NotifyConnected shows a notification when a technology connects
func (n *Notifier) NotifyConnected(name string) {
	_ = n.Show(Notification{
		Title:   "Connected",
		Message: name + " is online",
		Type:    NotificationSuccess,
		Icon:    "network-transmit-receive",
	})
}

// NotifyDisconnected shows a notification when a technology disconnects
func (n *Notifier) NotifyDisconnected(name string) {
	_ = n.Show(Notification{
		Title:   "Disconnected",
		Message: name + " is offline",
		Type:    NotificationInfo,
		Icon:    "network-offline",
	})
}

// NotifyError shows a notification for errors
func (n *Notifier) NotifyError(title, message string) {
	_ = n.Show(Notification{
		Title:   title,
		Message: message,
		Type:    NotificationError,
	})
}

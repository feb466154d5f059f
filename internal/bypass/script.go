package bypass

import (
	"fmt"
	"log/slog"

	"github.com/frida/frida-go/frida"
)

// Script represents a Frida script loaded into a process.
type Script struct {
	session *frida.Session // The Frida process session.
	script  *frida.Script  // The loaded script.
}

// SpawnWithScript spawns the application in a suspended state, loads the given
// script into it, and resumes it. The script is active before any application
// code runs.
func (dev *Device) SpawnWithScript(identifier string, content string) (*Script, error) {
	// Spawn application suspended
	pid, err := dev.device.Spawn(identifier, nil)
	if err != nil {
		return nil, fmt.Errorf("spawn application [%s]: %w", identifier, err)
	}

	// Attach to spawned process
	session, err := dev.device.Attach(pid, nil)
	if err != nil {
		return nil, fmt.Errorf("attach to spawned process [%d]: %w", pid, err)
	}

	scr, err := loadScript(session, content)
	if err != nil {
		session.Detach() //nolint
		return nil, err
	}

	// Resume application
	if err := dev.device.Resume(pid); err != nil {
		scr.Close()
		return nil, fmt.Errorf("resume application [%d]: %w", pid, err)
	}

	return scr, nil
}

// LoadScriptIntoProcess loads a Frida script into a running process on the device.
func (dev *Device) LoadScriptIntoProcess(content string, pid int) (*Script, error) {
	// Attach to process
	session, err := dev.device.Attach(pid, nil)
	if err != nil {
		return nil, fmt.Errorf("attach to process [%d]: %w", pid, err)
	}

	scr, err := loadScript(session, content)
	if err != nil {
		session.Detach() //nolint
		return nil, err
	}

	return scr, nil
}

// loadScript creates and loads a script into the given session.
func loadScript(session *frida.Session, content string) (*Script, error) {
	session.On("detached", func(reason frida.SessionDetachReason, crash *frida.Crash) {
		slog.Warn("Session detached", slog.String("reason", reason.String()))

		if crash != nil {
			slog.Error("Process crashed", slog.String("summary", crash.Summary()))
		}
	})

	// Create script
	script, err := session.CreateScript(content)
	if err != nil {
		return nil, fmt.Errorf("create script: %w", err)
	}

	// Forward script messages to the log
	script.On("message", onScriptMessage)

	// Load script into process
	if err := script.Load(); err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}

	return &Script{session: session, script: script}, nil
}

// onScriptMessage routes a message emitted by the script to the log.
func onScriptMessage(data string) {
	msg, err := frida.ScriptMessageToMessage(data)
	if err != nil {
		slog.Error("Failed to parse script message", slog.Any("error", err))
		return
	}

	switch msg.Type {
	case frida.MessageTypeError:
		slog.Error("Script error",
			slog.String("description", msg.Description),
			slog.Int("line", msg.LineNumber),
		)

	case frida.MessageTypeLog:
		slog.Info("Script log", slog.Any("payload", msg.Payload))

	default:
		slog.Info("Script message", slog.Any("payload", msg.Payload))
	}
}

// Close cleans up script and session resources.
func (scr *Script) Close() {
	scr.script.Unload()  //nolint
	scr.session.Detach() //nolint
}

package alert

import (
	"os/exec"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
)

var messages = map[string]string{
	KeyWork45:  "45 minutes of work time remaining. Plan your break.",
	KeyWork30:  "30 minutes of work time remaining.",
	KeyWork5:   "5 minutes of work time remaining. Take a break now.",
	KeyDrive30: "30 minutes of driving time remaining.",
	KeyDrive15: "15 minutes of driving time remaining. Find a stop.",
	KeyDrive5:  "5 minutes of driving time remaining. Stop driving.",
}

// NotifySink shows a desktop notification for each alert.
type NotifySink struct {
	IconPath string
}

func (n NotifySink) Speak(key string) {
	msg, ok := messages[key]
	if !ok {
		return
	}

	err := beeep.Notify("dutylog", msg, n.IconPath)
	if err != nil {
		pterm.Error.Printfln("unable to display notification: %v", err)
	}
}

// CmdSink runs a user-configured command with the alert key as its final
// argument. Useful for hooking alerts into TTS engines or shell scripts.
type CmdSink struct {
	Command string
}

func (c CmdSink) Speak(key string) {
	cmdSlice, err := shellquote.Split(c.Command)
	if err != nil {
		pterm.Error.Printfln("unable to parse alert_cmd option: %v", err)
		return
	}

	if len(cmdSlice) == 0 {
		return
	}

	name := cmdSlice[0]
	args := append(cmdSlice[1:], key)

	cmd := exec.Command(name, args...)

	err = cmd.Run()
	if err != nil {
		pterm.Error.Printfln("alert command failed: %v", err)
	}
}

// MultiSink fans an alert out to several sinks.
type MultiSink []Sink

func (m MultiSink) Speak(key string) {
	for _, s := range m {
		s.Speak(key)
	}
}

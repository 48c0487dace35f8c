// Package autostart registers a command to run when the user logs in.
package autostart

import (
	"os"
	"strings"
	"text/template"
)

// Entry is a command started at login
type Entry struct {
	// Name identifies the entry (file name, registry value or agent label)
	Name string
	// Exec is the absolute path of the executable
	Exec string
	Args []string
}

// NewEntry creates an entry for the running executable.
func NewEntry(name string, args ...string) (Entry, error) {
	exe, err := os.Executable()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Exec: exe, Args: args}, nil
}

// CommandLine returns the executable and arguments, quoting where needed.
func (e Entry) CommandLine() string {
	parts := make([]string, 0, len(e.Args)+1)
	for _, p := range append([]string{e.Exec}, e.Args...) {
		if strings.ContainsAny(p, " \t\"") {
			p = `"` + strings.ReplaceAll(p, `"`, `\"`) + `"`
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

const macLaunchAgentPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>com.{{.Name}}.agent</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{.Exec}}</string>{{range .Args}}
        <string>{{.}}</string>{{end}}
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <false/>
</dict>
</plist>
`

const xdgDesktopEntry = `[Desktop Entry]
Type=Application
Name={{.Name}}
Exec={{.CommandLine}}
X-GNOME-Autostart-enabled=true
NoDisplay=true
`

var (
	plistTemplate   = template.Must(template.New("plist").Parse(macLaunchAgentPlist))
	desktopTemplate = template.Must(template.New("desktop").Parse(xdgDesktopEntry))
)

func render(t *template.Template, e Entry) ([]byte, error) {
	var b strings.Builder
	if err := t.Execute(&b, e); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

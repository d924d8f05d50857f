package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pstuifzand/policy-tracker/internal/api"
	"github.com/pstuifzand/policy-tracker/internal/export"
	"github.com/pstuifzand/policy-tracker/internal/model"
	"github.com/pstuifzand/policy-tracker/internal/view"
)

var commandHelp = []string{
	":q                  Quit",
	":company [name]     Filter by company, no name shows all",
	":size [bucket]      Filter by size: small, medium, large or all",
	":from [YYYY-MM-DD]  Only changes captured on or after a date",
	":to [YYYY-MM-DD]    Only changes captured on or before a date",
	":clear              Remove all filters",
	":open <id>          Show the full diff of a change",
	":export <file>      Save the open diff as Markdown",
	":reload             Fetch the list again",
	":set [key value]    Show settings or change one for this session",
	":set! key value     Change a setting and save the config file",
	":messages           Show recent status messages",
	":help               Show this help",
	":debug              Toggle key debugging",
}

// parseCommand splits a command line into words. Single or double quotes
// group words and a backslash escapes the next character.
func parseCommand(input string) []string {
	var parts []string
	var current strings.Builder
	inQuote := rune(0)
	hasPart := false
	escaped := false

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			hasPart = true
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
			hasPart = true
		case r == ' ' || r == '\t':
			if hasPart {
				parts = append(parts, current.String())
				current.Reset()
				hasPart = false
			}
		default:
			current.WriteRune(r)
			hasPart = true
		}
	}

	if hasPart {
		parts = append(parts, current.String())
	}
	return parts
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	if cmd == "" {
		return
	}

	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}
	args := parts[1:]
	a.log.WithField("command", parts[0]).Debug("Running command")

	switch parts[0] {
	case "q", "quit":
		a.quit = true
	case "company":
		a.filterCompany(strings.Join(args, " "))
	case "size":
		a.commandSize(args)
	case "from", "to":
		a.commandDate(parts[0], args)
	case "clear":
		a.dispatch(a.list.SetFilters(view.Filters{}))
		a.SetStatus("Filters cleared")
	case "open":
		if len(args) != 1 {
			a.SetError("Usage: :open <id>")
			return
		}
		a.openDiff(args[0])
	case "export":
		a.commandExport(args)
	case "reload":
		if a.diffView.IsVisible() {
			a.dispatch(a.detail.Reload())
			a.diffView.Refresh()
		} else {
			a.dispatch(a.list.Reload())
		}
	case "set", "set!":
		a.commandSet(parts[0] == "set!", args)
	case "messages":
		a.help.Show(" Messages (q to close) ", a.messages.Lines())
	case "help":
		a.help.Toggle()
	case "debug":
		a.SetDebugMode(!a.debugMode)
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetError("Unknown command: " + parts[0])
	}
}

func (a *App) commandSize(args []string) {
	size, err := model.ParseSizeBucket(strings.Join(args, " "))
	if err != nil {
		a.SetError(err.Error())
		return
	}
	a.dispatch(a.list.SetChangeSize(size))
	a.SetStatus("Size: " + size.Label())
}

func (a *App) commandDate(which string, args []string) {
	date := strings.Join(args, " ")
	if err := api.ValidateDate(date); err != nil {
		a.SetError(err.Error())
		return
	}

	f := a.list.Filters()
	if which == "from" {
		f.FromDate = date
	} else {
		f.ToDate = date
	}
	if f.FromDate != "" && f.ToDate != "" && f.FromDate > f.ToDate {
		a.SetError(fmt.Sprintf("Date range is empty: %s is after %s", f.FromDate, f.ToDate))
		return
	}
	a.dispatch(a.list.SetDateRange(f.FromDate, f.ToDate))
	a.SetStatus(fmt.Sprintf("Dates: %s to %s", orDash(f.FromDate), orDash(f.ToDate)))
}

func (a *App) commandExport(args []string) {
	if len(args) != 1 {
		a.SetError("Usage: :export <file>")
		return
	}
	if !a.diffView.IsVisible() || a.detail.State() != view.DetailReady {
		a.SetError("Open a diff to export it")
		return
	}
	if err := export.ExportToMarkdown(a.detail.Change(), args[0]); err != nil {
		a.log.WithError(err).WithField("file", args[0]).Error("Export failed")
		a.SetError(err.Error())
		return
	}
	a.SetStatus("Exported to " + args[0])
}

func (a *App) commandSet(persist bool, args []string) {
	if len(args) == 0 {
		a.help.Show(" Settings (q to close) ", a.settingLines())
		return
	}
	if len(args) < 2 {
		a.SetStatus(fmt.Sprintf("%s = %q", args[0], a.cfg.Get(args[0])))
		return
	}

	key, value := args[0], strings.Join(args[1:], " ")
	var pageSize int
	if key == "page_size" {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			a.SetError(fmt.Sprintf("page_size must be a positive number, got %q", value))
			return
		}
		pageSize = n
	}

	if persist {
		a.cfg.SetPersistent(key, value)
		if err := a.cfg.Save(); err != nil {
			a.log.WithError(err).Error("Saving config failed")
			a.SetError("Failed to save config: " + err.Error())
			return
		}
	} else {
		a.cfg.Set(key, value)
	}

	status := fmt.Sprintf("%s = %q", key, value)
	switch key {
	case "date_format":
		a.listView.SetDateFormat(value)
	case "page_size":
		a.dispatch(a.list.SetPageSize(pageSize))
	case "api_base_url", "theme", "log_file", "log_level":
		status += " (applies on restart)"
	}
	a.SetStatus(status)
}

func (a *App) settingLines() []string {
	all := a.cfg.GetAll()
	for _, key := range []string{"api_base_url", "page_size", "theme", "log_file", "log_level", "date_format"} {
		if _, ok := all[key]; !ok {
			all[key] = a.cfg.Get(key)
		}
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%-14s %s", k, all[k])
	}
	return lines
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const wordWrap = 100

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	tipStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ACC1"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBC02D"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E53935"))
)

func (cli *commandLine) tty() bool {
	return cli.fd >= 0 && isTerminalFunc(cli.fd)
}

// styled renders text with s on a terminal, as is otherwise.
func (cli *commandLine) styled(s lipgloss.Style, text string) string {
	if !cli.tty() {
		return text
	}
	return s.Render(text)
}

func (cli *commandLine) println(s lipgloss.Style, text string) {
	fmt.Fprintln(cli.out, cli.styled(s, text))
}

func (cli *commandLine) printWarnings(warnings []string) {
	for _, w := range warnings {
		cli.println(warnStyle, w)
	}
}

// printMarkdown renders md with glamour on a terminal, raw otherwise.
func (cli *commandLine) printMarkdown(md string, plain bool) error {
	if plain || !cli.tty() {
		_, err := fmt.Fprintln(cli.out, md)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cli.out, out)
	return err
}

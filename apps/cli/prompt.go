package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pedagogyradar/radar/core"
)

// prompt reads one answer, def when it is blank.
// io.EOF is returned only when the input ended before any answer.
func (cli *commandLine) prompt(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(cli.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(cli.out, "%s: ", label)
	}
	line, err := cli.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		fmt.Fprintln(cli.out)
		return "", err
	}
	if line = core.CleanString(line); line == "" {
		return def, nil
	}
	return line, nil
}

// promptRequired asks until the answer is not blank, showing example after the third try.
func (cli *commandLine) promptRequired(label, retry, example string) (string, error) {
	for attempts := 0; ; attempts++ {
		if attempts > 0 {
			cli.println(warnStyle, retry)
		}
		l := label
		if attempts >= 3 {
			fmt.Fprintf(cli.out, "%s '%s'\n", cli.styled(tipStyle, "Ejemplo:"), example)
			l += " (puedes copiar el ejemplo)"
		}
		answer, err := cli.prompt(l, "")
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
	}
}

func (cli *commandLine) confirm(label string, def bool) (bool, error) {
	choices := "s/N"
	if def {
		choices = "S/n"
	}
	for {
		answer, err := cli.prompt(label+" ("+choices+")", "")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "s", "si", "sí", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		cli.println(warnStyle, "Responde 's' o 'n'.")
	}
}

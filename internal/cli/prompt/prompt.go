// Package prompt asks the user for missing command input on a terminal
package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/salonbook/salon/internal/cli/client"
)

// ErrNonInteractive is returned when input is needed but stdin is not a terminal
var ErrNonInteractive = errors.New("input required in non-interactive mode")

// Prompter collects input the user left off the command line
type Prompter interface {
	Interactive() bool
	SelectService(services []client.Service) (client.Service, error)
	SelectDay(days []string) (string, error)
	Input(label, defaultValue string, validate func(string) error) (string, error)
	Password(label string) (string, error)
}

// Terminal prompts on the process's stdin/stderr
type Terminal struct{}

// Interactive reports whether stdin is a terminal
func (Terminal) Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// SelectService shows an interactive picker over the catalog
func (t Terminal) SelectService(services []client.Service) (client.Service, error) {
	if len(services) == 0 {
		return client.Service{}, fmt.Errorf("no services available")
	}
	if !t.Interactive() {
		return client.Service{}, fmt.Errorf("service id is required: %w", ErrNonInteractive)
	}

	type serviceOption struct {
		Label   string
		Service client.Service
	}

	options := make([]serviceOption, len(services))
	for i, s := range services {
		options[i] = serviceOption{
			Label:   fmt.Sprintf("%s ($%s)", s.Name, s.Price),
			Service: s,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select a service",
		Items:     options,
		Templates: templates,
		Size:      10,
		Stdout:    os.Stderr,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return client.Service{}, fmt.Errorf("service selection cancelled: %w", err)
	}

	return options[index].Service, nil
}

// SelectDay shows an interactive weekday picker
func (t Terminal) SelectDay(days []string) (string, error) {
	if !t.Interactive() {
		return "", fmt.Errorf("day is required: %w", ErrNonInteractive)
	}

	prompt := promptui.Select{
		Label:  "Select a day",
		Items:  days,
		Size:   7,
		Stdout: os.Stderr,
	}

	_, day, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("day selection cancelled: %w", err)
	}
	return day, nil
}

// Input asks for a single line of text
func (t Terminal) Input(label, defaultValue string, validate func(string) error) (string, error) {
	if !t.Interactive() {
		return "", fmt.Errorf("%s is required: %w", label, ErrNonInteractive)
	}

	prompt := promptui.Prompt{
		Label:    label,
		Default:  defaultValue,
		Validate: validate,
		Stdout:   os.Stderr,
	}

	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("%s prompt cancelled: %w", label, err)
	}
	return value, nil
}

// Password reads a secret without echoing it
func (t Terminal) Password(label string) (string, error) {
	if !t.Interactive() {
		return "", fmt.Errorf("%s is required: %w", label, ErrNonInteractive)
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}

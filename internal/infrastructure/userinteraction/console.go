package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

type ConsoleUserInteraction struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return NewConsole(os.Stdin, color.Output)
}

// NewConsole reads answers from in and prints to out.
func NewConsole(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// readLine returns early with ctx.Err() when ctx is cancelled; the pending
// read is abandoned.
func (u *ConsoleUserInteraction) readLine(ctx context.Context) (string, error) {
	type answer struct {
		text string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		text, err := u.reader.ReadString('\n')
		ch <- answer{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-ch:
		if a.err != nil && !(a.err == io.EOF && a.text != "") {
			return "", a.err
		}
		return strings.TrimSpace(a.text), nil
	}
}

func (u *ConsoleUserInteraction) WaitForUserAction(ctx context.Context, message string) error {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(u.out, "\n[USER ACTION REQUIRED] %s\n", message)
	fmt.Fprint(u.out, "Press Enter when done...")

	if _, err := u.readLine(ctx); err != nil {
		return fmt.Errorf("failed to wait for user: %w", err)
	}
	return nil
}

func (u *ConsoleUserInteraction) Confirm(ctx context.Context, question string) (bool, error) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(u.out, "\n%s [y/N] ", question)

	answer, err := u.readLine(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (u *ConsoleUserInteraction) ShowResult(ctx context.Context, label string, result entity.AutomationResult) {
	c, icon := statusStyle(result.Status)
	c.Fprintf(u.out, "%s %s: %s\n", icon, label, result.Status.Label())

	dim := color.New(color.Faint)
	if result.Message != "" {
		dim.Fprintf(u.out, "   %s\n", truncate(result.Message, 300))
	}
	if result.Screenshot != "" {
		dim.Fprintf(u.out, "   screenshot: %s\n", result.Screenshot)
	}
	for _, k := range sortedKeys(result.Data) {
		if k == "password" {
			continue
		}
		if _, nested := result.Data[k].(map[string]any); nested {
			continue
		}
		dim.Fprintf(u.out, "   %s: %v\n", k, result.Data[k])
	}
}

func (u *ConsoleUserInteraction) ShowServices(ctx context.Context, services []entity.ServiceInfo) {
	bold := color.New(color.Bold)
	bold.Fprintf(u.out, "Supported services (%d)\n", len(services))
	for _, s := range services {
		color.New(color.FgCyan).Fprintf(u.out, "  %-18s", s.Type)
		fmt.Fprintf(u.out, " %s\n", s.Name)
		dim := color.New(color.Faint)
		dim.Fprintf(u.out, "  %-18s register: %s\n", "", s.RegistrationURL)
		dim.Fprintf(u.out, "  %-18s login:    %s\n", "", s.LoginURL)
	}
}

func (u *ConsoleUserInteraction) ShowGenerated(ctx context.Context, accounts []entity.GeneratedAccount) {
	green := color.New(color.FgGreen)
	for i, a := range accounts {
		green.Fprintf(u.out, "%d. %s\n", i+1, a.Email)
		fmt.Fprintf(u.out, "   username: %s\n   password: %s\n", a.Username, a.Password)
		if a.PIN != "" {
			fmt.Fprintf(u.out, "   pin:      %s\n", a.PIN)
		}
	}
}

func statusStyle(s entity.AutomationStatus) (*color.Color, string) {
	switch {
	case s == entity.StatusSuccess:
		return color.New(color.FgGreen, color.Bold), "✓"
	case s.NeedsManualIntervention():
		return color.New(color.FgYellow, color.Bold), "⏸"
	case s == entity.StatusAccountExists || s == entity.StatusInvalidCredentials:
		return color.New(color.FgMagenta), "!"
	}
	return color.New(color.FgRed, color.Bold), "✗"
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

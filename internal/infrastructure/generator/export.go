package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"account-automator/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

type exportDoc struct {
	GeneratedAt time.Time                 `yaml:"generated_at"`
	Count       int                       `yaml:"count"`
	Accounts    []entity.GeneratedAccount `yaml:"accounts"`
}

// WriteText renders accounts in the plain-text export layout.
func WriteText(w io.Writer, accounts []entity.GeneratedAccount, now time.Time) error {
	var b strings.Builder
	b.WriteString("# Generated accounts\n")
	fmt.Fprintf(&b, "# Generated at: %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(&b, "# Count: %d\n\n", len(accounts))

	for i, acc := range accounts {
		fmt.Fprintf(&b, "Account %d:\n", i+1)
		fmt.Fprintf(&b, "  Username: %s\n", acc.Username)
		fmt.Fprintf(&b, "  Email: %s\n", acc.Email)
		fmt.Fprintf(&b, "  Password: %s\n", acc.Password)
		fmt.Fprintf(&b, "  Domain: %s\n", acc.Domain)
		if acc.PIN != "" {
			fmt.Fprintf(&b, "  PIN: %s\n", acc.PIN)
		}
		fmt.Fprintf(&b, "  Generated at: %s\n\n", acc.GeneratedAt.Format(time.RFC3339))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func WriteYAML(w io.Writer, accounts []entity.GeneratedAccount, now time.Time) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exportDoc{GeneratedAt: now, Count: len(accounts), Accounts: accounts}); err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	return enc.Close()
}

// Export writes accounts to path and returns the path used. An empty path
// becomes generated_accounts_<timestamp>.txt; a .yaml or .yml extension
// selects YAML output.
func (g *Generator) Export(accounts []entity.GeneratedAccount, path string) (string, error) {
	now := g.now()
	if path == "" {
		path = fmt.Sprintf("generated_accounts_%s.txt", now.Format("20060102_150405"))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = WriteYAML(f, accounts, now)
	default:
		err = WriteText(f, accounts, now)
	}
	if err != nil {
		return "", err
	}

	g.debug("Accounts exported", "path", path, "count", len(accounts))
	return path, nil
}

package entity

import (
	"fmt"
	"strings"
)

type AccountType string

const (
	AccountTypeCursor           AccountType = "cursor"
	AccountTypeWindsurf         AccountType = "windsurf"
	AccountTypeAugment          AccountType = "augment"
	AccountTypeGitHubCopilot    AccountType = "github_copilot"
	AccountTypeClaude           AccountType = "claude"
	AccountTypeChatGPT          AccountType = "chatgpt"
	AccountTypeOpenAIAPI        AccountType = "openai_api"
	AccountTypeAnthropicAPI     AccountType = "anthropic_api"
	AccountTypeGoogleGemini     AccountType = "google_gemini"
	AccountTypeMicrosoftCopilot AccountType = "microsoft_copilot"
	AccountTypeJetBrainsAI      AccountType = "jetbrains_ai"
	AccountTypeTabnine          AccountType = "tabnine"
	AccountTypeCodeium          AccountType = "codeium"
	AccountTypeReplitAI         AccountType = "replit_ai"
	AccountTypeOther            AccountType = "other"
)

var accountTypeNames = map[AccountType]string{
	AccountTypeCursor:           "Cursor",
	AccountTypeWindsurf:         "Windsurf",
	AccountTypeAugment:          "Augment",
	AccountTypeGitHubCopilot:    "GitHub Copilot",
	AccountTypeClaude:           "Claude",
	AccountTypeChatGPT:          "ChatGPT",
	AccountTypeOpenAIAPI:        "OpenAI API",
	AccountTypeAnthropicAPI:     "Anthropic API",
	AccountTypeGoogleGemini:     "Google Gemini",
	AccountTypeMicrosoftCopilot: "Microsoft Copilot",
	AccountTypeJetBrainsAI:      "JetBrains AI",
	AccountTypeTabnine:          "Tabnine",
	AccountTypeCodeium:          "Codeium",
	AccountTypeReplitAI:         "Replit AI",
	AccountTypeOther:            "Other",
}

func (t AccountType) String() string {
	return string(t)
}

// DisplayName is the product name, e.g. "GitHub Copilot".
func (t AccountType) DisplayName() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// ParseAccountType accepts either the identifier ("github_copilot") or the
// display name ("GitHub Copilot"), case-insensitively.
func ParseAccountType(s string) (AccountType, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for t, name := range accountTypeNames {
		if needle == string(t) || needle == strings.ToLower(name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

type ServiceInfo struct {
	Type            AccountType `json:"type"`
	Name            string      `json:"name"`
	RegistrationURL string      `json:"registration_url"`
	LoginURL        string      `json:"login_url"`
}

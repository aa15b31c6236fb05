package rod

import (
	"context"
	"testing"
	"time"

	"account-automator/internal/domain/entity"
	"account-automator/internal/infrastructure/logger"
	"account-automator/internal/usecase/automation"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func e2eOptions(t *testing.T) entity.Options {
	t.Helper()
	if testing.Short() {
		t.Skip("browser tests are skipped in -short mode")
	}
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("no local Chrome/Chromium found")
	}
	opts := entity.DefaultOptions()
	opts.Headless = true
	opts.Stealth = false
	opts.HumanDelays = false
	opts.BrowserBinaryPath = bin
	opts.Timeout = 10 * time.Second
	opts.AnchorTimeout = 3 * time.Second
	opts.ProbeTimeout = 300 * time.Millisecond
	opts.ScreenshotDir = t.TempDir()
	return opts
}

func TestDriver_RegisterAgainstLocalPage(t *testing.T) {
	opts := e2eOptions(t)
	url := serve(t, SignupHTML)
	desc := automation.NewGenericDescriptor(entity.AccountTypeOther, "Local", url, url)
	driver := automation.NewDriver(desc, NewSessionFactory(DefaultFactoryConfig(), logger.NewNop()), logger.NewNop())

	result := driver.Register(context.Background(), entity.RegistrationData{
		Email:     "dev@example.io",
		Password:  "s3cret!",
		FirstName: "Alex",
	}, opts)

	require.Equal(t, entity.StatusEmailVerificationRequired, result.Status, result.Message)
	assert.Equal(t, "dev@example.io", result.Data["email"])
}

func TestDriver_LoginAgainstLocalPage(t *testing.T) {
	opts := e2eOptions(t)
	url := serve(t, LoginHTML)
	desc := automation.NewGenericDescriptor(entity.AccountTypeOther, "Local", url, url)
	driver := automation.NewDriver(desc, NewSessionFactory(DefaultFactoryConfig(), logger.NewNop()), logger.NewNop())

	result := driver.Login(context.Background(), entity.LoginData{
		Email:      "dev@example.io",
		Password:   "wrong",
		RememberMe: true,
	}, opts)

	assert.Equal(t, entity.StatusInvalidCredentials, result.Status, result.Message)
	assert.Contains(t, result.Message, "Incorrect password")
	assert.NotEmpty(t, result.Screenshot)
}

func TestDriver_MissingAnchor(t *testing.T) {
	opts := e2eOptions(t)
	url := serve(t, BasicHTML)
	desc := automation.NewGenericDescriptor(entity.AccountTypeOther, "Local", url, url)
	driver := automation.NewDriver(desc, NewSessionFactory(DefaultFactoryConfig(), logger.NewNop()), logger.NewNop())

	result := driver.Login(context.Background(), entity.LoginData{Email: "dev@example.io", Password: "x"}, opts)

	assert.Equal(t, entity.StatusFailed, result.Status)
	assert.NotEmpty(t, result.Screenshot)
}

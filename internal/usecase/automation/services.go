package automation

import "account-automator/internal/domain/entity"

// CursorDescriptor describes authenticator.cursor.sh. Its signup form clears
// already typed inputs while the next one is edited, so registration runs
// with field re-verification.
func CursorDescriptor() Descriptor {
	return Descriptor{
		Type:            entity.AccountTypeCursor,
		Name:            "Cursor",
		RegistrationURL: "https://authenticator.cursor.sh/sign-up",
		LoginURL:        "https://www.cursor.com/api/auth/login",
		HomeURL:         "https://www.cursor.com/",
		VerifyRequired:  true,
		Register: FlowSpec{
			Anchor: []entity.Selector{entity.Attr("name", "first_name")},
			Required: []FieldSpec{
				{Key: entity.FieldFirstName, Candidates: []entity.Selector{entity.Attr("name", "first_name")}},
				{Key: entity.FieldLastName, Candidates: []entity.Selector{entity.Attr("name", "last_name")}},
				{Key: entity.FieldEmail, Candidates: []entity.Selector{entity.Attr("name", "email"), emailInput}},
			},
			Optional: []FieldSpec{
				{Key: entity.FieldPassword, Candidates: []entity.Selector{entity.Attr("name", "password"), passwordInput}},
			},
			Consent: termsCheckboxes,
			Submit: []entity.Selector{
				entity.CSS(`button[name="intent"][value="sign-up"]`),
				entity.CSS(`button[type="submit"]`),
				entity.Text("button", "Continue"),
				entity.Text("button", "Sign Up"),
				entity.Text("button", "Register"),
				entity.Text("button", "Create Account"),
				entity.CSS(`input[type="submit"]`),
			},
		},
		Login: FlowSpec{
			Anchor: []entity.Selector{emailInput},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{emailInput}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{passwordInput}},
			},
			Consent: rememberCheckboxes,
			Submit:  loginButtons,
		},
		SuccessURLIndicators: []string{"dashboard", "welcome", "app", "workspace", "settings"},
	}
}

func WindsurfDescriptor() Descriptor {
	return Descriptor{
		Type:            entity.AccountTypeWindsurf,
		Name:            "Windsurf",
		RegistrationURL: "https://windsurf.com/account/register",
		LoginURL:        "https://windsurf.com/account/login",
		HomeURL:         "https://windsurf.com/",
		Register: FlowSpec{
			Anchor: []entity.Selector{emailInput, entity.Attr("name", "email")},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{emailInput, entity.Attr("name", "email")}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{entity.Attr("name", "password"), passwordInput}},
			},
			Optional: []FieldSpec{
				{Key: entity.FieldFirstName, Candidates: []entity.Selector{
					entity.Attr("name", "firstName"),
					entity.Attr("name", "first_name"),
					entity.CSS(`input[placeholder*="First"]`),
				}},
				{Key: entity.FieldLastName, Candidates: []entity.Selector{
					entity.Attr("name", "lastName"),
					entity.Attr("name", "last_name"),
					entity.CSS(`input[placeholder*="Last"]`),
				}},
				{Key: entity.FieldConfirmPassword, Candidates: []entity.Selector{
					entity.Attr("name", "passwordConfirmation"),
					entity.Attr("name", "confirmPassword"),
					entity.CSS(`input[placeholder*="Confirm"]`),
				}},
			},
			Consent: termsCheckboxes,
			Submit: []entity.Selector{
				entity.Text("button", "Sign up"),
				entity.Text("button", "Continue"),
				entity.Text("button", "Create account"),
				entity.CSS(`button[type="submit"]`),
				entity.CSS(`input[type="submit"]`),
			},
		},
		Login: FlowSpec{
			Anchor: []entity.Selector{emailInput, entity.Attr("name", "email")},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{emailInput, entity.Attr("name", "email")}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{passwordInput}},
			},
			Consent: rememberCheckboxes,
			Submit: append([]entity.Selector{
				entity.Text("button", "Log in"),
			}, loginButtons...),
		},
		SuccessURLIndicators: []string{"profile", "dashboard", "welcome", "editor", "app"},
		ErrorSelectors: append([]entity.Selector{
			entity.CSS(`[data-testid="error-message"]`),
		}, defaultErrorSelectors...),
	}
}

func AugmentDescriptor() Descriptor {
	return Descriptor{
		Type:            entity.AccountTypeAugment,
		Name:            "Augment",
		RegistrationURL: "https://augmentcode.com/signup",
		LoginURL:        "https://augmentcode.com/login",
		HomeURL:         "https://augmentcode.com/",
		Register: FlowSpec{
			Anchor: []entity.Selector{emailInput},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{emailInput}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{passwordInput}},
			},
			Optional: []FieldSpec{
				{Key: entity.FieldConfirmPassword, Candidates: []entity.Selector{
					entity.Attr("name", "confirmPassword"),
					entity.Attr("name", "confirm_password"),
					entity.CSS(`input[placeholder*="Confirm"]`),
					entity.CSS(`input[placeholder*="confirm"]`),
				}},
				{Key: entity.FieldUsername, Candidates: []entity.Selector{
					entity.Attr("name", "username"),
					entity.Attr("name", "displayName"),
					entity.CSS(`input[placeholder*="username"]`),
					entity.CSS(`input[placeholder*="Username"]`),
				}},
				{Key: entity.FieldFirstName, Candidates: []entity.Selector{
					entity.Attr("name", "firstName"),
					entity.Attr("name", "first_name"),
					entity.CSS(`input[placeholder*="First"]`),
					entity.CSS(`input[placeholder*="Name"]`),
				}},
				{Key: entity.FieldLastName, Candidates: []entity.Selector{
					entity.Attr("name", "lastName"),
					entity.Attr("name", "last_name"),
					entity.CSS(`input[placeholder*="Last"]`),
				}},
				{Key: entity.FieldCompany, Candidates: []entity.Selector{
					entity.Attr("name", "company"),
					entity.Attr("name", "organization"),
					entity.CSS(`input[placeholder*="Company"]`),
					entity.CSS(`input[placeholder*="Organization"]`),
				}},
			},
			Consent: termsCheckboxes,
			Submit: []entity.Selector{
				entity.CSS(`button[type="submit"]`),
				entity.Text("button", "Sign Up"),
				entity.Text("button", "Register"),
				entity.Text("button", "Create Account"),
				entity.Text("button", "Get Started"),
				entity.Text("button", "Join"),
				entity.CSS(`input[type="submit"]`),
			},
		},
		Login: FlowSpec{
			Anchor: []entity.Selector{emailInput},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{emailInput}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{passwordInput}},
			},
			Consent: rememberCheckboxes,
			Submit:  loginButtons,
		},
		VerificationIndicators: append([]string{"activate"}, defaultVerificationIndicators...),
		ErrorSelectors: append(append([]entity.Selector{}, defaultErrorSelectors...),
			entity.CSS(".error-message"),
			entity.CSS(".alert-error"),
		),
	}
}

// NewGenericDescriptor is the template for adding a service: supply its URLs
// and, where the defaults miss, override selector lists on the result.
func NewGenericDescriptor(t entity.AccountType, name, registrationURL, loginURL string) Descriptor {
	return Descriptor{
		Type:            t,
		Name:            name,
		RegistrationURL: registrationURL,
		LoginURL:        loginURL,
		Register: FlowSpec{
			Anchor: []entity.Selector{emailInput, entity.Attr("name", "email")},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{emailInput, entity.Attr("name", "email")}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{passwordInput}},
			},
			Optional: []FieldSpec{
				{Key: entity.FieldUsername, Candidates: []entity.Selector{entity.Attr("name", "username")}},
				{Key: entity.FieldFirstName, Candidates: []entity.Selector{entity.Attr("name", "firstName"), entity.Attr("name", "first_name")}},
				{Key: entity.FieldLastName, Candidates: []entity.Selector{entity.Attr("name", "lastName"), entity.Attr("name", "last_name")}},
				{Key: entity.FieldPhone, Candidates: []entity.Selector{entity.CSS(`input[type="tel"]`), entity.Attr("name", "phone")}},
				{Key: entity.FieldCompany, Candidates: []entity.Selector{entity.Attr("name", "company")}},
			},
			Consent: termsCheckboxes,
			Submit: []entity.Selector{
				entity.Text("button", "Sign Up"),
				entity.Text("button", "Create Account"),
				entity.CSS(`button[type="submit"]`),
				entity.CSS(`input[type="submit"]`),
			},
		},
		Login: FlowSpec{
			Anchor: []entity.Selector{emailInput, entity.Attr("name", "email")},
			Required: []FieldSpec{
				{Key: entity.FieldEmail, Candidates: []entity.Selector{emailInput, entity.Attr("name", "email")}},
				{Key: entity.FieldPassword, Candidates: []entity.Selector{passwordInput}},
			},
			Consent: rememberCheckboxes,
			Submit:  loginButtons,
		},
	}
}

// BuiltinDescriptors lists the services wired by default.
func BuiltinDescriptors() []Descriptor {
	return []Descriptor{
		CursorDescriptor(),
		WindsurfDescriptor(),
		AugmentDescriptor(),
	}
}

package automation

import (
	"context"
	"testing"
	"time"

	"account-automator/internal/domain/entity"
	"account-automator/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
)

func nameFields() []VerifiedField {
	return []VerifiedField{
		{Name: "first_name", Selector: entity.Attr("name", "first_name"), Value: "Alex"},
		{Name: "last_name", Selector: entity.Attr("name", "last_name"), Value: "Smith"},
		{Name: "email", Selector: entity.Attr("name", "email"), Value: "alex@example.io"},
	}
}

func namePage() *fakePage {
	p := newFakePage()
	for _, f := range nameFields() {
		p.add(f.Selector, &fakeElement{})
	}
	return p
}

func TestFillWithVerification_AllHold(t *testing.T) {
	page := namePage()

	ok := FillWithVerification(context.Background(), page, nameFields(), time.Second)

	assert.True(t, ok)
	for _, f := range nameFields() {
		assert.Equal(t, f.Value, page.el(f.Selector).value)
	}
	assert.Len(t, page.filled, 3)
}

func TestFillWithVerification_RefillsClearedSibling(t *testing.T) {
	page := namePage()
	first := entity.Attr("name", "first_name")
	cleared := false
	page.el(entity.Attr("name", "last_name")).onFill = func(p *fakePage) {
		if !cleared {
			cleared = true
			p.el(first).value = ""
		}
	}

	ok := FillWithVerification(context.Background(), page, nameFields(), time.Second)

	assert.True(t, ok)
	assert.Equal(t, "Alex", page.el(first).value)
	assert.Equal(t, 2, countOf(page.filled, first.String()))
}

func TestFillWithVerification_StaleAfterRetry(t *testing.T) {
	page := namePage()
	first := entity.Attr("name", "first_name")
	page.el(entity.Attr("name", "last_name")).onFill = func(p *fakePage) {
		p.el(first).locked = true
		p.el(first).value = ""
	}

	ok := FillWithVerification(context.Background(), page, nameFields(), time.Second)

	assert.False(t, ok)
	assert.Equal(t, 2, countOf(page.filled, first.String()), "exactly one retry")
}

func TestFillWithVerification_MissingField(t *testing.T) {
	page := namePage()
	fields := append(nameFields(), VerifiedField{Name: "phone", Selector: entity.CSS("#phone"), Value: "1"})

	assert.False(t, FillWithVerification(context.Background(), page, fields, time.Second))
}

func TestFillWithVerification_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	page := namePage()

	assert.False(t, FillWithVerification(ctx, page, nameFields(), time.Second))
	assert.Empty(t, page.filled)
}

func TestFillWithVerification_Empty(t *testing.T) {
	assert.True(t, FillWithVerification(context.Background(), newFakePage(), nil, time.Second))
}

func TestRegister_VerifiedForm(t *testing.T) {
	desc := testDescriptor()
	desc.VerifyRequired = true
	desc.Register.Anchor = []entity.Selector{entity.Attr("name", "first_name")}
	desc.Register.Required = []FieldSpec{
		{Key: entity.FieldFirstName, Candidates: []entity.Selector{entity.Attr("name", "first_name")}},
		{Key: entity.FieldLastName, Candidates: []entity.Selector{entity.Attr("name", "last_name")}},
		{Key: entity.FieldEmail, Candidates: []entity.Selector{entity.CSS("#mail"), entity.Attr("name", "email")}},
	}

	page := namePage()
	page.add(selSubmit, &fakeElement{onClick: func(p *fakePage) { p.html = "Please verify your email address" }})

	d := NewDriver(desc, &fakeFactory{page: page}, logger.NewNop(), WithPacer(NoopPacer()))
	data := regData
	data.FirstName, data.LastName, data.Email = "Alex", "Smith", "alex@example.io"

	res := d.Register(context.Background(), data, testOptions())

	assert.Equal(t, entity.StatusEmailVerificationRequired, res.Status)
	assert.Equal(t, "alex@example.io", res.Data["email"])
	assert.Equal(t, "Alex", page.el(entity.Attr("name", "first_name")).value)
}

func TestRegister_VerifiedFormMissingField(t *testing.T) {
	desc := testDescriptor()
	desc.VerifyRequired = true
	desc.Register.Required = append(desc.Register.Required,
		FieldSpec{Key: entity.FieldUsername, Candidates: []entity.Selector{entity.CSS("#handle")}})

	page := signupPage(nil)
	data := regData
	data.Username = "neo"

	res := NewDriver(desc, &fakeFactory{page: page}, logger.NewNop(), WithPacer(NoopPacer())).
		Register(context.Background(), data, testOptions())

	assert.Equal(t, entity.StatusFailed, res.Status)
	assert.Equal(t, "field not found: username", res.Message)
	assert.Empty(t, page.filled, "nothing is typed before every field is located")
	assert.Equal(t, 1, page.closed)
}

func countOf(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}

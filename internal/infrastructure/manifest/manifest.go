package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"account-automator/internal/application/port/input"
	"account-automator/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

var ErrEmptyManifest = errors.New("manifest has no entries")

// Manifest is a batch file. Register and login entries run as two separate
// batches, registrations first.
//
//	register:
//	  - type: cursor
//	    email: dev@example.io
//	    password: s3cret!
//	    first_name: Alex
//	login:
//	  - type: augment
//	    email: dev@example.io
//	    password: s3cret!
type Manifest struct {
	Register []RegisterEntry `yaml:"register"`
	Login    []LoginEntry    `yaml:"login"`
}

type RegisterEntry struct {
	Type                    string `yaml:"type"`
	entity.RegistrationData `yaml:",inline"`
}

type LoginEntry struct {
	Type             string `yaml:"type"`
	entity.LoginData `yaml:",inline"`
}

func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyManifest
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(m.Register) == 0 && len(m.Login) == 0 {
		return nil, ErrEmptyManifest
	}
	return &m, nil
}

// RegistrationRequests resolves account types. Entries are not validated
// here; the manager reports invalid data per item.
func (m *Manifest) RegistrationRequests() ([]input.RegistrationRequest, error) {
	reqs := make([]input.RegistrationRequest, 0, len(m.Register))
	for i, e := range m.Register {
		t, err := entity.ParseAccountType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("register[%d]: %w", i, err)
		}
		reqs = append(reqs, input.RegistrationRequest{Type: t, Data: e.RegistrationData})
	}
	return reqs, nil
}

func (m *Manifest) LoginRequests() ([]input.LoginRequest, error) {
	reqs := make([]input.LoginRequest, 0, len(m.Login))
	for i, e := range m.Login {
		t, err := entity.ParseAccountType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("login[%d]: %w", i, err)
		}
		reqs = append(reqs, input.LoginRequest{Type: t, Data: e.LoginData})
	}
	return reqs, nil
}

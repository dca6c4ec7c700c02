// Package fixture runs a suite of named invocation cases against one
// contract and reports which passed.
package fixture

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/provenance-io/contract-kit-go/pkg/chain"
)

var ErrInvalidSuite = errors.New("invalid fixture suite")

// Suite is the YAML document describing the cases.
type Suite struct {
	Receiver chain.Name `yaml:"receiver"`
	Code     chain.Name `yaml:"code,omitempty"`
	Cases    []Case     `yaml:"cases"`
}

type Case struct {
	Name     string     `yaml:"name"`
	Receiver chain.Name `yaml:"receiver,omitempty"`
	Code     chain.Name `yaml:"code,omitempty"`
	Action   chain.Name `yaml:"action"`
	// Data is hex encoded action data.
	Data         string `yaml:"data,omitempty"`
	Repeat       int    `yaml:"repeat,omitempty"`
	ExpectOutput string `yaml:"expect_output"`
	ExpectError  string `yaml:"expect_error,omitempty"`

	data []byte
}

func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a suite, filling in defaults.
func Load(r io.Reader) (*Suite, error) {
	var s Suite
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuite, err)
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Suite) normalize() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: no cases", ErrInvalidSuite)
	}
	if s.Code.IsEmpty() {
		s.Code = s.Receiver
	}
	seen := make(map[string]bool, len(s.Cases))
	for i := range s.Cases {
		c := &s.Cases[i]
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: case %d has no name", ErrInvalidSuite, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate case %q", ErrInvalidSuite, c.Name)
		}
		seen[c.Name] = true
		if c.Action.IsEmpty() {
			return fmt.Errorf("%w: case %q has no action", ErrInvalidSuite, c.Name)
		}
		if c.Receiver.IsEmpty() {
			c.Receiver = s.Receiver
		}
		if c.Code.IsEmpty() {
			if c.Receiver == s.Receiver {
				c.Code = s.Code
			} else {
				c.Code = c.Receiver
			}
		}
		if c.Receiver.IsEmpty() {
			return fmt.Errorf("%w: case %q has no receiver", ErrInvalidSuite, c.Name)
		}
		if c.Repeat < 0 {
			return fmt.Errorf("%w: case %q has negative repeat", ErrInvalidSuite, c.Name)
		}
		if c.Repeat == 0 {
			c.Repeat = 1
		}
		data, err := hex.DecodeString(c.Data)
		if err != nil {
			return fmt.Errorf("%w: case %q data: %v", ErrInvalidSuite, c.Name, err)
		}
		c.data = data
	}
	return nil
}

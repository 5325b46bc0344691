//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag collects and reports semantic validation diagnostics
// (SPEC_FULL §4.5): the typed errors the Type Definition Model and Symbol
// Resolver raise, plus validation-specific findings (e.g. the @Query SQL
// literal check), gathered per compilation run rather than surfaced one
// at a time.
package diag

import (
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/turin-lang/turinc/internal/ast"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// Error marks a diagnostic that fails the compilation.
	Error Severity = iota
	// Warning marks an advisory diagnostic that does not fail it.
	Warning
)

// String renders a Severity for display/serialization.
func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// MarshalYAML renders the severity as its string form rather than its
// underlying int, for a readable diagnostics dump.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// Diagnostic is one reported finding, tied to a source position.
type Diagnostic struct {
	Severity Severity     `yaml:"severity"`
	Message  string       `yaml:"message"`
	Position ast.Position `yaml:"position"`
}

// String renders a Diagnostic as a single "line:col: severity: message" line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Position.Line, d.Position.Column, d.Severity, d.Message)
}

// Collector accumulates diagnostics across a validation walk without
// aborting it, unlike a returned error, which would stop at the first
// problem. Diagnostics are also available as one aggregated error via
// multierr, for callers that just want pass/fail.
type Collector struct {
	diagnostics []Diagnostic
}

// NewCollector builds an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// Add records a diagnostic at the given severity and position.
func (c *Collector) Add(severity Severity, pos ast.Position, format string, args ...interface{}) {
	c.diagnostics = append(c.diagnostics, Diagnostic{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	})
}

// Errorf records an Error-severity diagnostic.
func (c *Collector) Errorf(pos ast.Position, format string, args ...interface{}) {
	c.Add(Error, pos, format, args...)
}

// Warnf records a Warning-severity diagnostic.
func (c *Collector) Warnf(pos ast.Position, format string, args ...interface{}) {
	c.Add(Warning, pos, format, args...)
}

// Diagnostics returns every diagnostic recorded so far, in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	return c.diagnostics
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Err aggregates every Error-severity diagnostic into one multierr error,
// or nil if there are none, for callers that only care about pass/fail.
func (c *Collector) Err() error {
	var err error
	for _, d := range c.diagnostics {
		if d.Severity == Error {
			err = multierr.Append(err, fmt.Errorf("%s", d.String()))
		}
	}
	return err
}

// MarshalYAML renders every diagnostic, in report order, for a YAML report.
func (c *Collector) MarshalYAML() (interface{}, error) {
	return c.diagnostics, nil
}

var _ yaml.Marshaler = (*Collector)(nil)

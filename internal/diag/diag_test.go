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

package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/turin-lang/turinc/internal/ast"
)

func TestCollector_ErrAggregatesOnlyErrors(t *testing.T) {
	c := NewCollector()
	c.Warnf(ast.NewPosition(1, 1), "just a warning")
	require.NoError(t, c.Err())
	assert.False(t, c.HasErrors())

	c.Errorf(ast.NewPosition(2, 5), "unresolved constructor for %s", "Point")
	require.True(t, c.HasErrors())
	err := c.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved constructor for Point")
}

func TestCollector_DiagnosticsNeverDropsAnEntry(t *testing.T) {
	c := NewCollector()
	want := []Diagnostic{
		{Severity: Error, Message: "first", Position: ast.NewPosition(1, 1)},
		{Severity: Warning, Message: "second", Position: ast.NewPosition(2, 2)},
		{Severity: Error, Message: "third", Position: ast.NewPosition(3, 3)},
	}
	for _, d := range want {
		c.Add(d.Severity, d.Position, "%s", d.Message)
	}

	if diff := cmp.Diff(want, c.Diagnostics()); diff != "" {
		t.Fatalf("Diagnostics() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollector_MarshalYAML(t *testing.T) {
	c := NewCollector()
	c.Errorf(ast.NewPosition(3, 1), "boom")

	out, err := yaml.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), "severity: error")
	assert.Contains(t, string(out), "boom")
}

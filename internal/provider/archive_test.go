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

package provider

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildFooClass assembles the bytes for:
//
//	public class Foo extends java.lang.Object {
//	    public int x;
//	    public void bar() {}
//	}
//
// mirroring internal/classfile's own test fixture, since both exercise
// the same binary format from different layers.
func buildFooClass(t *testing.T) []byte {
	t.Helper()
	var b bytes.Buffer
	w := func(vs ...interface{}) {
		for _, v := range vs {
			require.NoError(t, binary.Write(&b, binary.BigEndian, v))
		}
	}
	utf8 := func(s string) {
		w(uint8(1), uint16(len(s)))
		b.WriteString(s)
	}

	w(uint32(0xCAFEBABE), uint16(0), uint16(52))
	w(uint16(9))
	utf8("Foo")
	w(uint8(7), uint16(1))
	utf8("java/lang/Object")
	w(uint8(7), uint16(3))
	utf8("x")
	utf8("I")
	utf8("bar")
	utf8("()V")

	w(uint16(0x0001)) // access_flags: public
	w(uint16(2))      // this_class
	w(uint16(4))      // super_class
	w(uint16(0))      // interfaces_count

	w(uint16(1)) // fields_count
	w(uint16(0x0001), uint16(5), uint16(6), uint16(0))

	w(uint16(1)) // methods_count
	w(uint16(0x0001), uint16(7), uint16(8), uint16(0))

	w(uint16(0)) // attributes_count
	return b.Bytes()
}

func TestArchiveProvider_IndexesClassFiles(t *testing.T) {
	dir := t.TempDir()
	jarPath := dir + "/test.jar"
	f, err := os.Create(jarPath)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	entry, err := zw.Create("Foo.class")
	require.NoError(t, err)
	_, err = entry.Write(buildFooClass(t))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	p, err := OpenArchiveProvider(jarPath)
	require.NoError(t, err)

	def, ok, err := p.FindTypeDefinition("Foo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Foo", def.QualifiedName())

	fieldType, ok, err := def.FieldType("x", false)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, fieldType)

	_, ok, err = def.FindMethod("bar", nil, false)
	require.NoError(t, err)
	require.True(t, ok)
}

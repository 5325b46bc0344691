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

// Package classfile reads the structural metadata (superclass, interfaces,
// fields, methods) out of a compiled JVM class file, far enough to build
// the descriptors the type definition model needs. It does not interpret
// method bodies/bytecode, and it does not write class files (emission is
// out of scope, spec.md §1).
//
// No example in the retrieved pack parses the JVM classfile binary
// format, so this package is necessarily built directly on
// encoding/binary rather than a third-party library; see DESIGN.md.
package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const magic = 0xCAFEBABE

// Access flag bits relevant to this core.
const (
	AccPublic    = 0x0001
	AccStatic    = 0x0008
	AccFinal     = 0x0010
	AccInterface = 0x0200
	AccAbstract  = 0x0400
)

// Method describes one method_info entry in a class file's methods table,
// including each constructor (<init>) entry.
type Method struct {
	Name       string
	Descriptor string
	AccessFlags uint16
}

// IsStatic reports whether the method is declared static.
func (m Method) IsStatic() bool { return m.AccessFlags&AccStatic != 0 }

// Field describes one field_info entry.
type Field struct {
	Name        string
	Descriptor  string
	AccessFlags uint16
}

// IsStatic reports whether the field is declared static.
func (f Field) IsStatic() bool { return f.AccessFlags&AccStatic != 0 }

// IsFinal reports whether the field is declared final (and therefore not
// assignable after construction).
func (f Field) IsFinal() bool { return f.AccessFlags&AccFinal != 0 }

// Class is the structural metadata read out of a class file, enough to
// build a typedef.Definition (internal names use '/' throughout, matching
// the JVM descriptor grammar of spec.md §6).
type Class struct {
	AccessFlags uint16
	ThisClass   string
	SuperClass  string // "" for java/lang/Object itself
	Interfaces  []string
	Fields      []Field
	Methods     []Method
}

// IsInterface reports whether the class file describes an interface.
func (c *Class) IsInterface() bool { return c.AccessFlags&AccInterface != 0 }

// constant pool tags, per the JVM class file format.
const (
	tagUTF8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// cpEntry is one constant pool slot. Only the fields relevant to the tags
// this reader cares about are populated; entries we don't need to resolve
// by content (e.g. Fieldref) are still scanned so the reader can compute
// the byte length of every subsequent entry.
type cpEntry struct {
	tag      byte
	utf8     string
	classIdx uint16
}

// Parse reads a class file from r.
func Parse(r io.Reader) (*Class, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read class file: %w", err)
	}
	buf := bytes.NewReader(data)

	var m uint32
	if err := binary.Read(buf, binary.BigEndian, &m); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if m != magic {
		return nil, fmt.Errorf("not a class file: bad magic %#x", m)
	}
	// minor_version, major_version
	if _, err := buf.Seek(4, io.SeekCurrent); err != nil {
		return nil, err
	}

	var poolCount uint16
	if err := binary.Read(buf, binary.BigEndian, &poolCount); err != nil {
		return nil, fmt.Errorf("read constant_pool_count: %w", err)
	}
	pool, err := readConstantPool(buf, int(poolCount))
	if err != nil {
		return nil, err
	}

	var accessFlags uint16
	var thisClassIdx, superClassIdx uint16
	if err := readAll(buf,
		&accessFlags, &thisClassIdx, &superClassIdx); err != nil {
		return nil, fmt.Errorf("read class header: %w", err)
	}

	var interfacesCount uint16
	if err := binary.Read(buf, binary.BigEndian, &interfacesCount); err != nil {
		return nil, fmt.Errorf("read interfaces_count: %w", err)
	}
	interfaces := make([]string, interfacesCount)
	for i := range interfaces {
		var idx uint16
		if err := binary.Read(buf, binary.BigEndian, &idx); err != nil {
			return nil, fmt.Errorf("read interface index: %w", err)
		}
		name, err := classNameAt(pool, idx)
		if err != nil {
			return nil, err
		}
		interfaces[i] = name
	}

	fields, err := readMembers(buf, pool)
	if err != nil {
		return nil, fmt.Errorf("read fields: %w", err)
	}
	methods, err := readMembers(buf, pool)
	if err != nil {
		return nil, fmt.Errorf("read methods: %w", err)
	}

	thisName, err := classNameAt(pool, thisClassIdx)
	if err != nil {
		return nil, err
	}
	var superName string
	if superClassIdx != 0 {
		superName, err = classNameAt(pool, superClassIdx)
		if err != nil {
			return nil, err
		}
	}

	fs := make([]Field, len(fields))
	for i, f := range fields {
		fs[i] = Field{Name: f.name, Descriptor: f.descriptor, AccessFlags: f.accessFlags}
	}
	ms := make([]Method, len(methods))
	for i, f := range methods {
		ms[i] = Method{Name: f.name, Descriptor: f.descriptor, AccessFlags: f.accessFlags}
	}

	return &Class{
		AccessFlags: accessFlags,
		ThisClass:   thisName,
		SuperClass:  superName,
		Interfaces:  interfaces,
		Fields:      fs,
		Methods:     ms,
	}, nil
}

// member is the shared shape of field_info/method_info, which are
// identical other than which table they live in.
type member struct {
	accessFlags uint16
	name        string
	descriptor  string
}

func readMembers(buf *bytes.Reader, pool []cpEntry) ([]member, error) {
	var count uint16
	if err := binary.Read(buf, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	result := make([]member, count)
	for i := range result {
		var accessFlags, nameIdx, descIdx, attrCount uint16
		if err := readAll(buf, &accessFlags, &nameIdx, &descIdx, &attrCount); err != nil {
			return nil, err
		}
		name, err := utf8At(pool, nameIdx)
		if err != nil {
			return nil, err
		}
		desc, err := utf8At(pool, descIdx)
		if err != nil {
			return nil, err
		}
		if err := skipAttributes(buf, int(attrCount)); err != nil {
			return nil, err
		}
		result[i] = member{accessFlags: accessFlags, name: name, descriptor: desc}
	}
	return result, nil
}

func skipAttributes(buf *bytes.Reader, count int) error {
	for i := 0; i < count; i++ {
		// attribute_name_index
		if _, err := buf.Seek(2, io.SeekCurrent); err != nil {
			return err
		}
		var length uint32
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			return err
		}
		if _, err := buf.Seek(int64(length), io.SeekCurrent); err != nil {
			return err
		}
	}
	return nil
}

func readAll(buf *bytes.Reader, fields ...interface{}) error {
	for _, f := range fields {
		if err := binary.Read(buf, binary.BigEndian, f); err != nil {
			return err
		}
	}
	return nil
}

func readConstantPool(buf *bytes.Reader, count int) ([]cpEntry, error) {
	// The constant pool is indexed 1..count-1; index 0 is unused, and Long
	// and Double entries occupy two indices (a JVM class file quirk).
	pool := make([]cpEntry, count)
	for i := 1; i < count; i++ {
		var tag byte
		if err := binary.Read(buf, binary.BigEndian, &tag); err != nil {
			return nil, fmt.Errorf("read constant pool tag at %d: %w", i, err)
		}
		entry := cpEntry{tag: tag}
		switch tag {
		case tagUTF8:
			var length uint16
			if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
				return nil, err
			}
			b := make([]byte, length)
			if _, err := io.ReadFull(buf, b); err != nil {
				return nil, err
			}
			entry.utf8 = string(b)
		case tagClass, tagMethodType, tagModule, tagPackage:
			var idx uint16
			if err := binary.Read(buf, binary.BigEndian, &idx); err != nil {
				return nil, err
			}
			entry.classIdx = idx
		case tagString:
			if _, err := buf.Seek(2, io.SeekCurrent); err != nil {
				return nil, err
			}
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			if _, err := buf.Seek(4, io.SeekCurrent); err != nil {
				return nil, err
			}
		case tagInteger, tagFloat:
			if _, err := buf.Seek(4, io.SeekCurrent); err != nil {
				return nil, err
			}
		case tagLong, tagDouble:
			if _, err := buf.Seek(8, io.SeekCurrent); err != nil {
				return nil, err
			}
			pool[i] = entry
			i++ // occupies the next slot too
			continue
		case tagMethodHandle:
			if _, err := buf.Seek(3, io.SeekCurrent); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown constant pool tag %d at index %d", tag, i)
		}
		pool[i] = entry
	}
	return pool, nil
}

func utf8At(pool []cpEntry, idx uint16) (string, error) {
	if int(idx) >= len(pool) || pool[idx].tag != tagUTF8 {
		return "", fmt.Errorf("constant pool index %d is not a UTF8 entry", idx)
	}
	return pool[idx].utf8, nil
}

func classNameAt(pool []cpEntry, idx uint16) (string, error) {
	if int(idx) >= len(pool) || pool[idx].tag != tagClass {
		return "", fmt.Errorf("constant pool index %d is not a Class entry", idx)
	}
	return utf8At(pool, pool[idx].classIdx)
}

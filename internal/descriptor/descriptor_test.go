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

package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInternalToCanonicalRoundTrip(t *testing.T) {
	names := []string{"java.lang.String", "com.example.Point", "Top"}
	for _, name := range names {
		assert.Equal(t, name, ToCanonical(ToInternal(name)))
	}
}

func TestMethodDescriptor(t *testing.T) {
	got := Method([]string{PrimitiveDescriptor(Int), Reference(descriptorStringInternal)}, PrimitiveDescriptor(Void))
	assert.Equal(t, "(ILjava/lang/String;)V", got)
}

const descriptorStringInternal = StringInternalName

func TestSplitMethodParams(t *testing.T) {
	params, ret, err := SplitMethodParams("(I[Ljava/lang/String;)Z")
	require.NoError(t, err)
	assert.Equal(t, []string{"I", "[Ljava/lang/String;"}, params)
	assert.Equal(t, "Z", ret)
}

func TestSplitMethodParamsNoArgs(t *testing.T) {
	params, ret, err := SplitMethodParams("()V")
	require.NoError(t, err)
	assert.Empty(t, params)
	assert.Equal(t, "V", ret)
}

func TestSplitMethodParamsMalformed(t *testing.T) {
	_, _, err := SplitMethodParams("ILjava/lang/String;)V")
	assert.Error(t, err)

	_, _, err = SplitMethodParams("(Ljava/lang/String)V")
	assert.Error(t, err)
}

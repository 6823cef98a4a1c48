package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string][]any{"a": {int8(1), nil}}))
	assert.JSONEq(t, `{"a": [1, null]}`, buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	tw := Table(&buf)
	_, _ = fmt.Fprintln(tw, "a\t1")
	_, _ = fmt.Fprintln(tw, "long\t2")
	require.NoError(t, tw.Flush())
	assert.Equal(t, "a     1\nlong  2\n", buf.String())
}

func TestValue(t *testing.T) {
	assert.Equal(t, "null", Value(nil))
	assert.Equal(t, "-3", Value(int16(-3)))
	assert.Equal(t, "가", Value("가"))
}

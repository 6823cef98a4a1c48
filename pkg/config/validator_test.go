package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

func f64(v float64) *float64 { return &v }

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name      string
		doc       Document
		wantField string
		wantMsg   string
	}{
		{
			name: "valid integer chain",
			doc: Document{Generators: []GeneratorDef{{Name: "n", Type: TypeInt16, Steps: []Step{
				{Op: OpPositive},
				{Op: OpRange, Min: i64(-50), Max: i64(-10)},
				{Op: OpFilter, Expr: "it < -20"},
				{Op: OpMap, Expr: "it * 2"},
				{Op: OpUnique},
				{Op: OpInjectNull, Probability: f64(0.5)},
			}}}},
		},
		{
			name: "valid string chain",
			doc: Document{Generators: []GeneratorDef{{Name: "s", Type: TypeString, Steps: []Step{
				{Op: OpLength, Min: i64(0), Max: i64(3)},
				{Op: OpFilterCharacter, Expr: "code < 128"},
				{Op: OpHangul},
			}}}},
		},
		{
			name:      "unsupported version",
			doc:       Document{Version: "2", Generators: []GeneratorDef{{Name: "a", Type: TypeInt}}},
			wantField: "version",
		},
		{
			name:      "empty",
			doc:       Document{},
			wantField: "generators",
		},
		{
			name:      "duplicate names",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt}, {Name: "a", Type: TypeInt8}}},
			wantField: "generators[1].name",
			wantMsg:   "first defined at generators[0]",
		},
		{
			name:      "unknown type",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: "float"}}},
			wantField: "generators[0].type",
		},
		{
			name:      "op not valid for type",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt8, Steps: []Step{{Op: OpHangul}}}}},
			wantField: "generators[0].steps[0].op",
		},
		{
			name: "shape after refinement",
			doc: Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt8, Steps: []Step{
				{Op: OpUnique},
				{Op: OpEven},
			}}}},
			wantField: "generators[0].steps[1].op",
			wantMsg:   "cannot follow a refinement",
		},
		{
			name:      "range missing max",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt8, Steps: []Step{{Op: OpRange, Min: i64(1)}}}}},
			wantField: "generators[0].steps[0]",
			wantMsg:   "both min and max",
		},
		{
			name:      "range min above max",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt8, Steps: []Step{{Op: OpRange, Min: i64(5), Max: i64(1)}}}}},
			wantField: "generators[0].steps[0]",
			wantMsg:   "min 5 > max 1",
		},
		{
			name:      "range exceeds width",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt8, Steps: []Step{{Op: OpRange, Min: i64(0), Max: i64(300)}}}}},
			wantField: "generators[0].steps[0]",
			wantMsg:   "exceeds int8 bounds",
		},
		{
			name:      "char range beyond max rune",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeChar, Steps: []Step{{Op: OpRange, Min: i64(0), Max: i64(0x110000)}}}}},
			wantField: "generators[0].steps[0]",
		},
		{
			name:      "negative length",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeString, Steps: []Step{{Op: OpLength, Min: i64(-1), Max: i64(2)}}}}},
			wantField: "generators[0].steps[0].min",
		},
		{
			name:      "gte out of width",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt16, Steps: []Step{{Op: OpGTE, Value: i64(40000)}}}}},
			wantField: "generators[0].steps[0].value",
		},
		{
			name:      "filter without expr",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt, Steps: []Step{{Op: OpFilter}}}}},
			wantField: "generators[0].steps[0]",
			wantMsg:   "filter requires expr",
		},
		{
			name:      "stray parameter",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt, Steps: []Step{{Op: OpUnique, Expr: "it"}}}}},
			wantField: "generators[0].steps[0]",
			wantMsg:   "unique does not take expr",
		},
		{
			name:      "probability out of range",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeInt, Steps: []Step{{Op: OpInjectNull, Probability: f64(1.5)}}}}},
			wantField: "generators[0].steps[0].probability",
			wantMsg:   "must be between 0.0 and 1.0, got 1.5",
		},
		{
			name:      "uuid has no shapes",
			doc:       Document{Generators: []GeneratorDef{{Name: "a", Type: TypeUUID, Steps: []Step{{Op: OpASCII}}}}},
			wantField: "generators[0].steps[0].op",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidDefinition)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
			if tt.wantMsg != "" {
				assert.Contains(t, verr.Message, tt.wantMsg)
			}
		})
	}
}

func TestShapeOps(t *testing.T) {
	assert.ElementsMatch(t, []string{"range", "positive", "negative", "even", "odd", "gte", "lte", "ascii"}, ShapeOps(TypeInt64))
	assert.Empty(t, ShapeOps(TypeUUID))
	assert.Nil(t, ShapeOps("float"))
	assert.True(t, IsRefinement(OpInjectNull))
	assert.False(t, IsRefinement(OpLength))
	assert.True(t, TypeInt.IsInteger())
	assert.False(t, TypeChar.IsInteger())
}

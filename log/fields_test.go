package log

import (
	"errors"
	"testing"
	"time"
)

func TestZFieldValue(t *testing.T) {
	tests := []struct {
		field ZField
		want  string
	}{
		{ZField{Type: FieldTypeBool, Boolean: true}, "true"},
		{ZField{Type: FieldTypeString, String: "reg"}, "reg"},
		{ZField{Type: FieldTypeHex8, Integer: 0x5A}, "5a"},
		{ZField{Type: FieldTypeHex8, Integer: 0x3}, "03"},
		{ZField{Type: FieldTypeHex16, Integer: 0x3A}, "003a"},
		{ZField{Type: FieldTypeInt, Integer: 42}, "42"},
		{ZField{Type: FieldTypeUint, Integer: 500}, "500"},
		{ZField{Type: FieldTypeError, Error: errors.New("boom")}, "boom"},
		{ZField{Type: FieldTypeError}, "<nil>"},
		{ZField{Type: FieldTypeDuration, Duration: 100 * time.Millisecond}, "100ms"},
	}

	for _, tt := range tests {
		if got := tt.field.Value(); got != tt.want {
			t.Errorf("ZField type %d: %q, want %q", tt.field.Type, got, tt.want)
		}
	}
}

func TestEntryZFieldOverflowIgnored(t *testing.T) {
	e := NewEntryZ()
	for i := 0; i < 32; i++ {
		e.Int("k", i)
	}
	if e.zfidx != len(e.zfbuf) {
		t.Errorf("zfidx = %d, want %d", e.zfidx, len(e.zfbuf))
	}
}

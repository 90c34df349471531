package jsonx

import (
	"encoding/json"
	"testing"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want Text
	}{
		{`"conforme"`, "conforme"},
		{`"  spaced "`, "  spaced "},
		{`""`, ""},
		{`555`, "555"},
		{`-3.25`, "-3.25"},
		{`true`, "true"},
		{`false`, "false"},
		{`null`, ""},
		{`{"x":1}`, ""},
		{`[1,2]`, ""},
	}

	for _, tt := range tests {
		var v struct {
			Field Text `json:"field"`
		}
		if err := json.Unmarshal([]byte(`{"field":`+tt.raw+`}`), &v); err != nil {
			t.Errorf("%s: unexpected error: %v", tt.raw, err)
			continue
		}
		if v.Field != tt.want {
			t.Errorf("%s: got %q, want %q", tt.raw, v.Field, tt.want)
		}
	}
}

func TestText_AbsentField(t *testing.T) {
	var v struct {
		Field Text `json:"field"`
	}
	if err := json.Unmarshal([]byte(`{}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Field != "" {
		t.Errorf("expected empty for an absent field, got %q", v.Field)
	}
}

func TestText_MarshalsAsString(t *testing.T) {
	b, err := json.Marshal(struct {
		Field Text `json:"field"`
	}{Field: "555"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"field":"555"}` {
		t.Errorf("unexpected JSON %s", b)
	}
}

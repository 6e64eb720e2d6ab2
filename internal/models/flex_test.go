package models

import (
	"encoding/json"
	"testing"
)

func TestFlexUnmarshal_StringDecimals(t *testing.T) {
	input := `{"form": "5.5", "points_per_game": "4.2", "selected_by_percent": "12.30", "now_cost": "85"}`

	var out struct {
		Form    FlexFloat `json:"form"`
		PPG     FlexFloat `json:"points_per_game"`
		Sel     FlexFloat `json:"selected_by_percent"`
		NowCost FlexInt   `json:"now_cost"`
	}
	if err := json.Unmarshal([]byte(input), &out); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if out.Form != 5.5 {
		t.Errorf("Form = %f, want 5.5", out.Form)
	}
	if out.PPG != 4.2 {
		t.Errorf("PPG = %f, want 4.2", out.PPG)
	}
	if out.Sel != 12.3 {
		t.Errorf("Sel = %f, want 12.3", out.Sel)
	}
	if out.NowCost != 85 {
		t.Errorf("NowCost = %d, want 85", out.NowCost)
	}
}

func TestFlexUnmarshal_NativeTypes(t *testing.T) {
	input := `{"form": 3.25, "now_cost": 45}`

	var out struct {
		Form    FlexFloat `json:"form"`
		NowCost FlexInt   `json:"now_cost"`
	}
	if err := json.Unmarshal([]byte(input), &out); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if out.Form != 3.25 {
		t.Errorf("Form = %f, want 3.25", out.Form)
	}
	if out.NowCost != 45 {
		t.Errorf("NowCost = %d, want 45", out.NowCost)
	}
}

func TestFlexUnmarshal_GarbageFallsBackToZero(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", `{"v": ""}`},
		{"not a number", `{"v": "abc"}`},
		{"null", `{"v": null}`},
		{"bool", `{"v": true}`},
		{"nan", `{"v": "NaN"}`},
		{"infinity", `{"v": "Infinity"}`},
		{"negative inf", `{"v": "-Inf"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V FlexFloat `json:"v"`
			}
			if err := json.Unmarshal([]byte(tt.input), &out); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if out.V != 0 {
				t.Errorf("V = %f, want 0", out.V)
			}
		})
	}
}

func TestFlexInt_TruncatesFractions(t *testing.T) {
	var v FlexInt
	if err := json.Unmarshal([]byte(`"28.5"`), &v); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if v != 28 {
		t.Errorf("v = %d, want 28", v)
	}
}

func TestNonFiniteValuesAreRejected(t *testing.T) {
	var out struct {
		I FlexInt     `json:"i"`
		N NullableInt `json:"n"`
	}
	if err := json.Unmarshal([]byte(`{"i": "NaN", "n": "Inf"}`), &out); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if out.I != 0 {
		t.Errorf("I = %d, want 0", out.I)
	}
	if out.N.Valid {
		t.Errorf("N = %+v, want invalid", out.N)
	}
}

func TestNullableInt(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue int
	}{
		{"null", `null`, false, 0},
		{"zero", `0`, true, 0},
		{"seventy five", `75`, true, 75},
		{"string", `"25"`, true, 25},
		{"empty string", `""`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n NullableInt
			if err := json.Unmarshal([]byte(tt.input), &n); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if n.Valid != tt.wantValid || n.Value != tt.wantValue {
				t.Errorf("got {%d %v}, want {%d %v}", n.Value, n.Valid, tt.wantValue, tt.wantValid)
			}
			if !tt.wantValid && n.Ptr() != nil {
				t.Error("Ptr() should be nil for null values")
			}
		})
	}
}

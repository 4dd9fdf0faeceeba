package domain

import (
	"encoding/json"
	"testing"
)

func TestValue_JSONRoundTrip(t *testing.T) {
	payload, err := json.Marshal(CountryYearRecord{
		Country: "Chad", Year: 1800,
		LifeExpectancy: Some(40.5),
		GDPPerCapita:   Null(),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"country":"Chad","year":1800,"life_expectancy":40.5,"gdp_per_capita":null}`
	if string(payload) != want {
		t.Fatalf("json mismatch:\n got %s\nwant %s", payload, want)
	}
	var rec CountryYearRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := rec.LifeExpectancy.Float(); !ok || v != 40.5 {
		t.Fatalf("life expectancy lost: %#v", rec.LifeExpectancy)
	}
	if !rec.GDPPerCapita.IsNull() {
		t.Fatalf("null must survive the round trip")
	}
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Fatalf("zero value must be the missing value")
	}
	if _, ok := v.Float(); ok {
		t.Fatalf("missing value must not yield a float")
	}
	if got, ok := Some(0).Float(); !ok || got != 0 {
		t.Fatalf("present zero must stay distinguishable from null")
	}
}

package envelope

import (
	"encoding/json"
	"testing"
)

func TestDataPayload(t *testing.T) {
	raw, err := json.Marshal(Data([]int{1, 2}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"data":[1,2],"error":null,"loading":false}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}

func TestFailPayload(t *testing.T) {
	p := Fail("boom")
	if p.Data != nil || p.Error == nil || *p.Error != "boom" {
		t.Fatalf("unexpected fail payload: %+v", p)
	}
}

func TestResults(t *testing.T) {
	if r := OK(); !r.Success || r.Error != nil {
		t.Fatalf("unexpected ok result: %+v", r)
	}
	if r := FailResult("nope"); r.Success || *r.Error != "nope" {
		t.Fatalf("unexpected fail result: %+v", r)
	}
}

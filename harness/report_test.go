package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"regcheck/led"
)

type memPin struct {
	on bool
}

func (p *memPin) Set(on bool) error {
	p.on = on
	return nil
}

func testPanel() (*led.Panel, []*memPin) {
	pins := []*memPin{{}, {}, {}, {}}
	return led.NewPanel(pins[0], pins[1], pins[2], pins[3]), pins
}

func pinLevels(pins []*memPin) []bool {
	levels := make([]bool, len(pins))
	for i, p := range pins {
		levels[i] = p.on
	}
	return levels
}

func TestAnnounceFailureEncodesIndex(t *testing.T) {
	tests := []struct {
		out  Outcome
		want []bool
	}{
		{1, []bool{true, false, false, false}},
		{2, []bool{false, true, false, false}},
		{5, []bool{true, false, true, false}},
		{15, []bool{true, true, true, true}},
	}

	for _, tt := range tests {
		panel, pins := testPanel()
		rep := Reporter{Panel: panel}
		rep.Announce(tt.out)

		if diff := cmp.Diff(tt.want, pinLevels(pins)); diff != "" {
			t.Errorf("outcome %d: panel mismatch (-want +got):\n%s", tt.out, diff)
		}
	}
}

func TestAnnounceSuccessClearsPanel(t *testing.T) {
	panel, pins := testPanel()
	panel.Show(0x0F)

	rep := Reporter{Panel: panel}
	rep.Announce(Passed)

	for i, p := range pins {
		if p.on {
			t.Errorf("led %d still on after a passing run", i)
		}
	}
}

func TestHoldFailureClearsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	panel, pins := testPanel()
	rep := Reporter{Panel: panel}
	rep.Announce(Outcome(3))
	rep.Hold(ctx, Outcome(3))

	for i, p := range pins {
		if p.on {
			t.Errorf("led %d still on after hold ended", i)
		}
	}
}

type runReport struct {
	Passed        bool     `json:"passed"`
	FailedTest    int      `json:"failed_test"`
	Deterministic bool     `json:"deterministic"`
	Seed          uint64   `json:"seed"`
	Tests         []struct {
		Index  int    `json:"index"`
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"tests"`
}

func TestWriteReport(t *testing.T) {
	p := DefaultParams()
	p.Seed = 1234
	names, _ := Plan(p)

	var buf bytes.Buffer
	if err := WriteReport(&buf, names, Outcome(3), p); err != nil {
		t.Fatal(err)
	}

	var got runReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("report is not valid JSON: %v\n%s", err, buf.String())
	}

	if got.Passed || got.FailedTest != 3 || got.Seed != 1234 {
		t.Errorf("report header = %+v", got)
	}
	wantStatus := []string{"pass", "pass", "fail", "skipped", "skipped"}
	for i, tc := range got.Tests {
		if tc.Index != i+1 || tc.Name != names[i] || tc.Status != wantStatus[i] {
			t.Errorf("test %d entry = %+v, want status %s", i+1, tc, wantStatus[i])
		}
	}
}

func TestWriteReportSuccess(t *testing.T) {
	p := DefaultParams()
	names, _ := Plan(p)

	var buf bytes.Buffer
	if err := WriteReport(&buf, names, Passed, p); err != nil {
		t.Fatal(err)
	}

	var got runReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Passed || got.FailedTest != 0 {
		t.Errorf("report header = %+v", got)
	}
	for _, tc := range got.Tests {
		if tc.Status != "pass" {
			t.Errorf("test %d status = %s, want pass", tc.Index, tc.Status)
		}
	}
}

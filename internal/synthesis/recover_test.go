package synthesis

import "testing"

type probe struct {
	Summary string   `json:"summary"`
	Topics  []string `json:"topics"`
}

func TestRecoverJSONDirect(t *testing.T) {
	t.Parallel()

	var v probe
	if err := recoverJSON(`{"summary":"fine","topics":["service"]}`, &v); err != nil {
		t.Fatalf("direct parse failed: %v", err)
	}
	if v.Summary != "fine" || len(v.Topics) != 1 {
		t.Fatalf("unexpected parse result: %+v", v)
	}
}

func TestRecoverJSONCodeFences(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"summary\":\"fenced\"}\n```"
	var v probe
	if err := recoverJSON(raw, &v); err != nil {
		t.Fatalf("fenced parse failed: %v", err)
	}
	if v.Summary != "fenced" {
		t.Fatalf("unexpected summary: %q", v.Summary)
	}
}

func TestRecoverJSONFencesWithTrailingProse(t *testing.T) {
	t.Parallel()

	raw := "Here is the report you asked for:\n```json\n{\"summary\":\"prose\"}\n```\nLet me know if you need anything else!"
	var v probe
	if err := recoverJSON(raw, &v); err != nil {
		t.Fatalf("expected recovery to ignore the prose: %v", err)
	}
	if v.Summary != "prose" {
		t.Fatalf("unexpected summary: %q", v.Summary)
	}
}

func TestRecoverJSONBalancedObjectExtraction(t *testing.T) {
	t.Parallel()

	raw := `Sure! {"summary":"embedded {braces} in \"strings\" stay intact","topics":[]} hope that helps`
	var v probe
	if err := recoverJSON(raw, &v); err != nil {
		t.Fatalf("balanced extraction failed: %v", err)
	}
	if v.Summary == "" {
		t.Fatalf("summary lost during extraction")
	}
}

func TestRecoverJSONTrailingCommas(t *testing.T) {
	t.Parallel()

	raw := `{"summary":"commas","topics":["a","b",],}`
	var v probe
	if err := recoverJSON(raw, &v); err != nil {
		t.Fatalf("trailing-comma repair failed: %v", err)
	}
	if len(v.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(v.Topics))
	}
}

func TestRecoverJSONGivesUp(t *testing.T) {
	t.Parallel()

	var v probe
	if err := recoverJSON("I could not produce a report today.", &v); err == nil {
		t.Fatalf("expected an error for unrecoverable output")
	}
	if err := recoverJSON("", &v); err == nil {
		t.Fatalf("expected an error for empty output")
	}
}

func TestExtractBalancedObject(t *testing.T) {
	t.Parallel()

	got, ok := extractBalancedObject(`noise {"a":{"b":1}} trailing`)
	if !ok {
		t.Fatalf("expected extraction to succeed")
	}
	if got != `{"a":{"b":1}}` {
		t.Fatalf("expected exactly the balanced object, got %q", got)
	}

	if _, ok := extractBalancedObject(`{"a": 1`); ok {
		t.Fatalf("unbalanced input must not extract")
	}
}

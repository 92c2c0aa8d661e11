package plotlog

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	// Swap the base logger to capture output
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() { baseLogger = saved }()

	SetLevel("info")

	msg := "render ok series=3 size=900x320 (100.0% of frame) took=12ms"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100.0% of frame)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!o(MISSING)") || strings.Contains(out, "%!f(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestSetLevel_FiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	defer func() {
		baseLogger = saved
		SetLevel("info")
	}()

	SetLevel("error")
	Debugf("hidden")
	Warnf("also hidden")
	Errorf("shown %d", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("messages below threshold leaked: %s", out)
	}
	if !strings.Contains(out, "[ERROR] shown 1") {
		t.Fatalf("error message missing: %s", out)
	}
}

/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:testpackage // This is a white-box test file for an internal package. It needs to be in the same package to test unexported functions.
package jsonfmt

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_DefaultIsNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger returned nil")
	}
	if Logger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("The default logger should discard everything")
	}
}

func TestLogger_RecordsPasses(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	if _, err := Emit(make([]byte, 16), "[i]", Int(5)); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	complete := logs.FilterMessage("json pass complete").All()
	if len(complete) != 1 {
		t.Fatalf("Got %d completion entries; want 1", len(complete))
	}
	fields := complete[0].ContextMap()
	if fields["phase"] != "emitting" || fields["length"] != int64(3) {
		t.Errorf("Completion fields = %v", fields)
	}

	_, _ = Emit(nil, "[q]")
	failed := logs.FilterMessage("json pass failed").All()
	if len(failed) != 1 {
		t.Fatalf("Got %d failure entries; want 1", len(failed))
	}
	fields = failed[0].ContextMap()
	if fields["format"] != "[q]" || fields["phase"] != "measuring" || fields["length"] != int64(1) {
		t.Errorf("Failure fields = %v", fields)
	}
}

func TestSetLogger_NilRestoresNop(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	SetLogger(nil)

	_, _ = Emit(nil, "T")
	if logs.Len() != 0 {
		t.Errorf("Got %d entries after restoring the no-op logger", logs.Len())
	}
}

package main

import "testing"

func TestVersionIsSet(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd(nil, nil)
	for _, name := range []string{"verbose", "out"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist", name)
		}
	}
}

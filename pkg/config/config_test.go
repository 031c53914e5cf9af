package config

import "testing"

func TestParseDefaults(t *testing.T) {
	opts, err := Parse([]string{"-in", "envmap.png"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.InputPath != "envmap.png" {
		t.Errorf("InputPath = %q, want envmap.png", opts.InputPath)
	}
	if opts.OutputPath != "irradiance.png" {
		t.Errorf("OutputPath = %q, want irradiance.png", opts.OutputPath)
	}
	if opts.Backend != BackendSH {
		t.Errorf("Backend = %q, want %q", opts.Backend, BackendSH)
	}
	if opts.Parallel {
		t.Error("Parallel defaults to false")
	}
}

func TestParseRequiresInput(t *testing.T) {
	if _, err := Parse([]string{}); err == nil {
		t.Fatal("expected error when -in is missing")
	}
}

func TestParseRejectsUnknownBackend(t *testing.T) {
	_, err := Parse([]string{"-in", "x.png", "-backend", "quantum"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestParseAcceptsAllBackends(t *testing.T) {
	for _, b := range []Backend{BackendDirect, BackendSH, BackendGPU} {
		opts, err := Parse([]string{"-in", "x.png", "-backend", string(b)})
		if err != nil {
			t.Fatalf("backend %q: %v", b, err)
		}
		if opts.Backend != b {
			t.Errorf("Backend = %q, want %q", opts.Backend, b)
		}
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := Parse([]string{"-in", "a.png", "-out", "b.png", "-backend", "direct", "-parallel", "-quiet"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.OutputPath != "b.png" || opts.Backend != BackendDirect || !opts.Parallel || !opts.Quiet {
		t.Errorf("unexpected parsed options: %+v", opts)
	}
}

// Copyright 2026 The gocad Authors
// SPDX-License-Identifier: MIT

package kernel

import (
	"errors"
	"testing"
)

type stubKernel struct {
	Kernel
	name string
}

func (s *stubKernel) Name() string { return s.name }

func stubFactory(name string) Factory {
	return func() Kernel { return &stubKernel{name: name} }
}

func TestRegistryPrioritySelection(t *testing.T) {
	Register("test-low", 1, stubFactory("test-low"))
	Register("test-high", 99, stubFactory("test-high"))
	defer Unregister("test-low")
	defer Unregister("test-high")

	k, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if got := k.Name(); got != "test-high" {
		t.Errorf("Default = %q, want %q", got, "test-high")
	}

	names := Registered()
	hi, lo := -1, -1
	for i, n := range names {
		switch n {
		case "test-high":
			hi = i
		case "test-low":
			lo = i
		}
	}
	if hi < 0 || lo < 0 || hi > lo {
		t.Errorf("Registered() = %v, want test-high before test-low", names)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	_, err := Get("no-such-kernel")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Get = %v, want NotFoundError", err)
	}
	if nf.Name != "no-such-kernel" {
		t.Errorf("NotFoundError.Name = %q", nf.Name)
	}
}

func TestShapeKindString(t *testing.T) {
	if got := KindSolid.String(); got != "solid" {
		t.Errorf("KindSolid = %q, want %q", got, "solid")
	}
}

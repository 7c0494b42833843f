/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	fail "errors"
	"strings"
	"testing"
	"time"

	"github.com/suparena/retailstore/errors"
)

func TestUploadContract(t *testing.T) {
	env := newTestEnv()

	url, err := env.services.Contracts.Upload(context.Background(), "lease.pdf", []byte("contract body"), "application/pdf")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.Contains(url, contractDirectory+"/lease_") {
		t.Errorf("locator should point into the contract directory, got %q", url)
	}
	if env.blobs.Count(env.cfg.ContractContainer) != 1 {
		t.Error("expected exactly one stored contract")
	}
}

func TestUploadContractTwiceKeepsBoth(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.services.Contracts.Upload(ctx, "lease.pdf", []byte("v1"), "application/pdf")
	if err != nil {
		t.Fatal(err)
	}

	// The stored name carries a second-resolution timestamp.
	time.Sleep(1100 * time.Millisecond)

	second, err := env.services.Contracts.Upload(ctx, "lease.pdf", []byte("v2"), "application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("repeated uploads must not collide: %q", first)
	}
	if env.blobs.Count(env.cfg.ContractContainer) != 2 {
		t.Errorf("expected both versions stored, got %d", env.blobs.Count(env.cfg.ContractContainer))
	}
}

func TestUploadContractEmptyData(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Contracts.Upload(context.Background(), "lease.pdf", nil, "application/pdf")
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error for empty data, got %v", err)
	}
}

func TestUploadContractMissingName(t *testing.T) {
	env := newTestEnv()

	_, err := env.services.Contracts.Upload(context.Background(), "", []byte("body"), "application/pdf")
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error for missing name, got %v", err)
	}
}

func TestUploadContractBlobFailure(t *testing.T) {
	env := newTestEnv()
	env.blobs.WithPutError(fail.New("storage offline"))

	_, err := env.services.Contracts.Upload(context.Background(), "lease.pdf", []byte("body"), "application/pdf")
	if !errors.IsDependency(err) {
		t.Errorf("expected dependency error, got %v", err)
	}
}

func TestUploadContractUnavailable(t *testing.T) {
	env := newTestEnv()
	services := NewServices(env.cfg, env.customers, env.products, env.orders, nil, env.queue, testLogger())

	_, err := services.Contracts.Upload(context.Background(), "lease.pdf", []byte("body"), "application/pdf")
	if !errors.IsUnavailable(err) {
		t.Errorf("expected unavailable, got %v", err)
	}
}

func TestTimestampedName(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	cases := []struct {
		in   string
		want string
	}{
		{"lease.pdf", "lease_20250314092653.pdf"},
		{"scan", "scan_20250314092653"},
		{"dir/nested.report.txt", "nested.report_20250314092653.txt"},
	}
	for _, tc := range cases {
		if got := timestampedName(tc.in, at); got != tc.want {
			t.Errorf("timestampedName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainInterface = "spiguard/iface/v1"
	DomainReport    = "spiguard/report/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ReportHash computes a content-addressed hash for a report payload.
// The payload is serialized to canonical JSON first, so field order in the
// input map never changes the hash. Returns an error if the payload cannot
// be canonically marshaled (floats, nulls, unsupported types).
func ReportHash(payload map[string]any) (string, error) {
	canonical, err := MarshalCanonical(payload)
	if err != nil {
		return "", fmt.Errorf("ReportHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainReport, canonical), nil
}

// MustReportHash is like ReportHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustReportHash(payload map[string]any) string {
	h, err := ReportHash(payload)
	if err != nil {
		panic(err)
	}
	return h
}

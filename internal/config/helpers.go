package config

import "github.com/MyCarrier-DevOps/go-devkit/internal/semver"

func stringPtr(s string) *string        { return &s }
func intPtr(n int) *int                 { return &n }
func boolPtr(b bool) *bool              { return &b }
func strSlicePtr(ss []string) *[]string { return &ss }

func repeatPtr(p semver.RepeatPolicy) *semver.RepeatPolicy {
	return &p
}

func exhaustPtr(p semver.ExhaustPolicy) *semver.ExhaustPolicy {
	return &p
}

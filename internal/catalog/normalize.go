package catalog

import (
	"strings"

	"ekoshield/internal/results"
)

// NormalizeFunc reshapes a raw provider payload into the common response
// envelope. Each mapping is pure so it can be unit tested in isolation.
type NormalizeFunc func(raw map[string]any) results.Response

// normalizers maps service ID to its payload reshaping. Services without an
// entry fall through to the pass-through default: raw payload into Details,
// Verified left unset.
var normalizers = map[string]NormalizeFunc{
	"pan":          normalizePAN,
	"gstin":        normalizeGSTIN,
	"bank-account": normalizeBankAccount,
	"vehicle-rc":   normalizeVehicleRC,
	"name-match":   normalizeNameMatch,
}

// Normalize applies the service-specific mapping, or the default
// pass-through when none is registered.
func Normalize(serviceID string, raw map[string]any) results.Response {
	if fn, ok := normalizers[serviceID]; ok {
		return fn(raw)
	}
	return results.Response{Details: raw}
}

// normalizePAN maps the provider's pan_status code onto verified. Status "E"
// means the PAN exists on the income tax registry.
func normalizePAN(raw map[string]any) results.Response {
	resp := results.Response{Details: raw}
	status, ok := stringField(raw, "pan_status", "status")
	if !ok {
		return resp
	}
	verified := strings.EqualFold(status, "E")
	resp.Verified = &verified
	if conf, ok := numberField(raw, "name_match_score"); ok {
		resp.Confidence = &conf
	}
	return resp
}

// normalizeGSTIN treats an "Active" registration as verified.
func normalizeGSTIN(raw map[string]any) results.Response {
	resp := results.Response{Details: raw}
	status, ok := stringField(raw, "status", "gstin_status")
	if !ok {
		return resp
	}
	verified := strings.EqualFold(status, "active")
	resp.Verified = &verified
	return resp
}

func normalizeBankAccount(raw map[string]any) results.Response {
	resp := results.Response{Details: raw}
	switch v := raw["account_exists"].(type) {
	case bool:
		resp.Verified = &v
	case string:
		verified := strings.EqualFold(v, "yes") || strings.EqualFold(v, "true")
		resp.Verified = &verified
	}
	if conf, ok := numberField(raw, "name_match_score"); ok {
		resp.Confidence = &conf
	}
	return resp
}

func normalizeVehicleRC(raw map[string]any) results.Response {
	resp := results.Response{Details: raw}
	status, ok := stringField(raw, "rc_status", "status")
	if !ok {
		return resp
	}
	verified := strings.EqualFold(status, "active")
	resp.Verified = &verified
	return resp
}

// normalizeNameMatch reports the provider's match score as confidence and
// verifies at the provider's documented 80-point threshold.
func normalizeNameMatch(raw map[string]any) results.Response {
	resp := results.Response{Details: raw}
	score, ok := numberField(raw, "match_score", "score")
	if !ok {
		return resp
	}
	resp.Confidence = &score
	verified := score >= 80
	resp.Verified = &verified
	return resp
}

func stringField(raw map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func numberField(raw map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
	}
	return 0, false
}

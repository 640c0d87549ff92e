package models

import "errors"

// ErrNotFound reports that a key is absent from the registry. A missing
// registry file is reported the same way: the dataset may legitimately not be
// provisioned yet.
var ErrNotFound = errors.New("aircraft not found in registry")

// Record is one row of the master registry file, reduced to the columns a
// lookup needs. Ident is normalized; the other fields are trimmed but
// otherwise raw.
type Record struct {
	// Ident is the tail registration (N-number).
	Ident string
	// Year is the manufacture year as a string of digits, possibly empty.
	Year string
	// Code joins the record to the reference (type) file, possibly empty.
	Code string
	// KitMfr and KitModel describe amateur-built/kit aircraft inline, for
	// records whose Code has no reference entry.
	KitMfr   string
	KitModel string
}

// RefRecord is one row of the reference (aircraft type) file.
type RefRecord struct {
	Code         string
	Manufacturer string
	Model        string
	// Kind is the type-aircraft classifier (fixed wing, rotorcraft, ...).
	Kind string
}

// Aircraft is the resolved result of a registry lookup. It is derived per
// lookup and cached by tail number, never stored.
type Aircraft struct {
	Tail         string `json:"tail_number"`
	Year         string `json:"year,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	// Type is the human-readable "manufacturer model" composition; absent
	// when both sides are empty.
	Type string `json:"type,omitempty"`
	// Raw join/fallback fields retained for diagnostics.
	Code         string `json:"mfr_model_code,omitempty"`
	KitMfr       string `json:"kit_manufacturer,omitempty"`
	KitModel     string `json:"kit_model,omitempty"`
	TypeAircraft string `json:"type_aircraft,omitempty"`
}

package domain

import "strings"

// The upstream DMS exposes lifecycle state only as free-text status columns,
// so every classification below is a substring match. The matched vocabulary
// lives here as package data: when the DMS wording shifts, this file is the
// only place to edit.
var (
	// ConvertedMarkers mark a prospect status as a closed deal.
	ConvertedMarkers = []string{"DEAL", "SPK"}

	// DeliveredMarker marks a delivery status as completed.
	DeliveredMarker = "terkirim"

	// BPKBIssuedMarker marks an ownership document as issued.
	BPKBIssuedMarker = "sudah jadi"

	// CreditMarker marks a purchase method as financed.
	CreditMarker = "kredit"

	// MaleMarkers and FemaleMarkers cover the gender spellings seen across
	// exports.
	MaleMarkers   = []string{"pria", "laki-laki", "male"}
	FemaleMarkers = []string{"wanita", "perempuan", "female"}
)

// IsConverted reports whether a prospect status string indicates a closed
// deal, case-insensitively.
func IsConverted(status string) bool {
	upper := strings.ToUpper(status)
	for _, marker := range ConvertedMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// IsDelivered reports whether a delivery status indicates the unit reached the
// customer.
func IsDelivered(status string) bool {
	return strings.Contains(strings.ToLower(status), DeliveredMarker)
}

// IsBPKBIssued reports whether the ownership document has been issued.
func IsBPKBIssued(status string) bool {
	return strings.Contains(strings.ToLower(status), BPKBIssuedMarker)
}

// IsCredit reports whether a purchase method is a financed sale.
func IsCredit(method string) bool {
	return strings.Contains(strings.ToLower(method), CreditMarker)
}

// IsMale and IsFemale classify free-text gender values; both return false for
// anything outside the known vocabulary.
func IsMale(gender string) bool {
	return matchesAny(gender, MaleMarkers)
}

func IsFemale(gender string) bool {
	return matchesAny(gender, FemaleMarkers)
}

func matchesAny(value string, markers []string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, marker := range markers {
		if lower == marker {
			return true
		}
	}
	return false
}

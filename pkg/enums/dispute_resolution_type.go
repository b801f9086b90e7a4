package enums

import "fmt"

// DisputeResolutionType records how a resolved dispute settled the escrow.
type DisputeResolutionType string

const (
	DisputeResolutionRefundBuyer     DisputeResolutionType = "refund_buyer"
	DisputeResolutionReleaseToSeller DisputeResolutionType = "release_to_seller"
	DisputeResolutionPartialRefund   DisputeResolutionType = "partial_refund"
)

var validDisputeResolutionTypes = []DisputeResolutionType{
	DisputeResolutionRefundBuyer,
	DisputeResolutionReleaseToSeller,
	DisputeResolutionPartialRefund,
}

// String implements fmt.Stringer.
func (d DisputeResolutionType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DisputeResolutionType.
func (d DisputeResolutionType) IsValid() bool {
	for _, candidate := range validDisputeResolutionTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDisputeResolutionType converts raw input into a DisputeResolutionType.
func ParseDisputeResolutionType(value string) (DisputeResolutionType, error) {
	for _, candidate := range validDisputeResolutionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dispute resolution type %q", value)
}

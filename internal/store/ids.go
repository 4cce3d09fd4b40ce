package store

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier format: PREFIX-NNNNN with a 5-digit zero-padded sequence per
// prefix, derived by scanning existing ids for the max numeric suffix.
// Dealer codes use a (type, category) prefix table and a 4-digit suffix.

const idSequenceWidth = 5

// nextFromIDs computes the next id for prefix from the existing ids.
func nextFromIDs(ids []string, prefix string, width int) string {
	max := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix+"-") {
			continue
		}
		parts := strings.Split(id, "-")
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%0*d", prefix, width, max+1)
}

// dealerCodePrefixes maps (dealer type, category) to a 3-letter code prefix.
var dealerCodePrefixes = map[[2]string]string{
	{"BUY", "Material"}:  "MAT",
	{"BUY", "Making"}:    "MKG",
	{"BUY", "Finishing"}: "FIN",
	{"BUY", "Packing"}:   "PKG",
	{"SELL", "Customer"}: "CUS",
}

// DealerCodePrefix resolves the code prefix for a dealer type and category,
// falling back to DLR for unknown combinations.
func DealerCodePrefix(dealerType, category string) string {
	if p, ok := dealerCodePrefixes[[2]string{dealerType, category}]; ok {
		return p
	}
	return "DLR"
}

// GenerateDealerCode derives the next dealer code (PFX-0001 style) from the
// codes already in use.
func GenerateDealerCode(dealerType, category string, existing []string) string {
	prefix := DealerCodePrefix(dealerType, category)
	return nextFromIDs(existing, prefix, 4)
}

// invoiceTypePrefixes maps invoice types to display-number prefixes.
var invoiceTypePrefixes = map[string]string{
	"Material":  "MAT",
	"Making":    "MKG",
	"Finishing": "FIN",
	"Packing":   "PKG",
	"Sales":     "SAL",
}

// InvoiceNumber builds the human-facing invoice number TYPE-YYYY-NNNNN from
// the invoice type, year and the invoice id's numeric suffix.
func InvoiceNumber(invoiceType string, year int, invoiceID string) string {
	prefix, ok := invoiceTypePrefixes[invoiceType]
	if !ok {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%d-%s", prefix, year, SequenceSuffix(invoiceID))
}

// SequenceSuffix returns the trailing sequence portion of an id, or the id
// itself when it carries no dash.
func SequenceSuffix(id string) string {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return id
	}
	return id[idx+1:]
}

package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextFromIDsSkipsGaps(t *testing.T) {
	ids := []string{"PFX-00001", "PFX-00004"}
	require.Equal(t, "PFX-00005", nextFromIDs(ids, "PFX", 5))
}

func TestNextFromIDsEmpty(t *testing.T) {
	require.Equal(t, "PAY-00001", nextFromIDs(nil, "PAY", 5))
}

func TestNextFromIDsIgnoresOtherPrefixes(t *testing.T) {
	ids := []string{"INV-00009", "PAY-00002", "PAYX-00007"}
	require.Equal(t, "PAY-00003", nextFromIDs(ids, "PAY", 5))
}

func TestNextFromIDsIgnoresMalformedSuffix(t *testing.T) {
	ids := []string{"PRG-abc", "PRG-00002", "PRG-"}
	require.Equal(t, "PRG-00003", nextFromIDs(ids, "PRG", 5))
}

func TestGenerateDealerCode(t *testing.T) {
	existing := []string{"MAT-0001", "MAT-0003", "CUS-0001"}

	require.Equal(t, "MAT-0004", GenerateDealerCode("BUY", "Material", existing))
	require.Equal(t, "CUS-0002", GenerateDealerCode("SELL", "Customer", existing))
	// Unknown combination falls back to the generic prefix.
	require.Equal(t, "DLR-0001", GenerateDealerCode("BUY", "Customer", existing))
}

func TestInvoiceNumber(t *testing.T) {
	require.Equal(t, "SAL-2026-00012", InvoiceNumber("Sales", 2026, "INV-00012"))
	require.Equal(t, "MKG-2026-00001", InvoiceNumber("Making", 2026, "INV-00001"))
	require.Equal(t, "INV-2026-00007", InvoiceNumber("Consulting", 2026, "INV-00007"))
}

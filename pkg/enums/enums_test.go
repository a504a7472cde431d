package enums

import "testing"

func TestParseOperatorRole(t *testing.T) {
	role, err := ParseOperatorRole("stakeholder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != OperatorRoleStakeholder {
		t.Fatalf("unexpected role %s", role)
	}

	if _, err := ParseOperatorRole("superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestOperatorRoleIsValid(t *testing.T) {
	if !OperatorRoleViewer.IsValid() {
		t.Fatal("viewer should be valid")
	}
	if OperatorRole("guest").IsValid() {
		t.Fatal("guest should be invalid")
	}
}

func TestParseTransactionType(t *testing.T) {
	tt, err := ParseTransactionType("sale")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tt != TransactionTypeSale {
		t.Fatalf("unexpected type %s", tt)
	}

	if _, err := ParseTransactionType("refund"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

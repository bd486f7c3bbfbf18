package registration

// ValidateRequest runs the structural checks that need no database access.
// Existence checks (facility, nodal centre, catalog entries) and the
// cross-entity duplicate scan run inside the repository transaction.
func ValidateRequest(req *RegistrationRequest) error {
	if err := validateInvestigationIDs(req.InvestigationIDs); err != nil {
		return err
	}
	return validateBill(req.Bill)
}

// validateInvestigationIDs enforces the first-check rule: the request array
// itself must not repeat an investigation ID.
func validateInvestigationIDs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return ErrDuplicateInvestigationIDs
		}
		seen[id] = struct{}{}
	}
	return nil
}

// validateBill checks the single optional bill entry. A bill paid in
// "Multiple" mode must carry a non-empty payment breakdown.
func validateBill(bill []BillInput) error {
	if len(bill) == 0 {
		return nil
	}
	if bill[0].PaymentMode == "Multiple" && len(bill[0].PaymentDetails) == 0 {
		return ErrPaymentDetailsMissing
	}
	return nil
}

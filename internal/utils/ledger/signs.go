package ledger

import (
	"fmt"

	"github.com/propfolio/realty_ledger/internal/apperrors"
	"github.com/propfolio/realty_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Direction returns the fixed balance effect of a transaction type on a linked
// organization account: +1 for credit-like types, -1 for debit-like types.
// This table is the single source of truth for balance mutation signs.
func Direction(t domain.TransactionType) (int, error) {
	switch t {
	case domain.TxnIncome, domain.TxnTransferIn, domain.TxnAdjustmentCredit:
		return 1, nil
	case domain.TxnExpense, domain.TxnTransferOut, domain.TxnAdjustmentDebit:
		return -1, nil
	}
	return 0, fmt.Errorf("unknown transaction type %q", t)
}

// SignedAmount applies the type's direction to a positive amount, yielding the
// delta to apply to an organization account balance.
func SignedAmount(t domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	dir, err := Direction(t)
	if err != nil {
		return decimal.Zero, err
	}
	if dir < 0 {
		return amount.Neg(), nil
	}
	return amount, nil
}

// NextBalance adds a signed posting delta to an account balance, enforcing the
// overdraft invariant: a non-overdraft account can never go negative. An
// exact-zero result is allowed.
func NextBalance(balance, delta decimal.Decimal, allowOverdraft bool) (decimal.Decimal, error) {
	next := balance.Add(delta)
	if next.IsNegative() && !allowOverdraft {
		return decimal.Zero, fmt.Errorf("%w: balance %s cannot absorb delta %s",
			apperrors.ErrInsufficientFunds, balance.String(), delta.String())
	}
	return next, nil
}

// InverseType returns the transaction type that exactly offsets the given one.
// Transfer legs invert to the opposite leg; income and expense invert to
// adjustments so that reversals remain distinguishable from organic activity.
func InverseType(t domain.TransactionType) (domain.TransactionType, error) {
	switch t {
	case domain.TxnIncome:
		return domain.TxnAdjustmentDebit, nil
	case domain.TxnExpense:
		return domain.TxnAdjustmentCredit, nil
	case domain.TxnTransferIn:
		return domain.TxnTransferOut, nil
	case domain.TxnTransferOut:
		return domain.TxnTransferIn, nil
	case domain.TxnAdjustmentCredit:
		return domain.TxnAdjustmentDebit, nil
	case domain.TxnAdjustmentDebit:
		return domain.TxnAdjustmentCredit, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", t)
}

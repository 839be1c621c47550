package mathutil

import (
	"github.com/shopspring/decimal"
)

// TenThousands is the number of basis points in 100%.
const TenThousands = uint64(10000)

// BasisPointsOf returns floor(amount * basisPoints / 10000). The remainder of
// the division is always left to the amount, never to the fee.
func BasisPointsOf(amount, basisPoints uint64) (uint64, error) {
	return MulDiv(amount, basisPoints, TenThousands)
}

// LessFee splits an amount into the net part and the fee expressed in basis
// points (ie. 2.5% = 250). net + fee always equals amount.
func LessFee(amount, feeAsBasisPoints uint64) (net, fee uint64, err error) {
	fee, err = BasisPointsOf(amount, feeAsBasisPoints)
	if err != nil {
		return 0, 0, err
	}
	net, err = CheckedSub(amount, fee)
	if err != nil {
		return 0, 0, err
	}
	return net, fee, nil
}

// BasisPointsToPercentage converts basis points to a percentage, ie. 250
// becomes 2.5.
func BasisPointsToPercentage(basisPoints uint64) decimal.Decimal {
	return decimal.New(int64(basisPoints), -2)
}

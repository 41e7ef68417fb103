package vns

// Payments and call fees, in microunits, expected by the deployed
// contracts. A call fee is the anchor's own fee; the minimum fee of every
// other group member is added on top.
const (
	ApprovePayment         uint64 = 28500
	RegisterPayment        uint64 = 336700
	StakingRegisterPayment uint64 = 284000
	RenewPayment           uint64 = 100000

	RegisterFee         uint64 = 15000
	ReverseRegisterFee  uint64 = 3000
	SubRegistrarFee     uint64 = 2000
	ResolverWriteFee    uint64 = 2000
	RegistrarWriteFee   uint64 = 2000
	ReservationWriteFee uint64 = 2000

	secondsPerYear uint64 = 365 * 24 * 60 * 60
)

// Default ARC-200 allowances granted ahead of a registration.
const (
	RegisterAllowance        uint64 = 1000e6
	ReverseRegisterAllowance uint64 = 1e6
)

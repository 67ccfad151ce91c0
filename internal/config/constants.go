package config

const (
	// Payment methods offered in the payout menu
	MethodFaucetPay = "faucetpay"
	MethodPayeer    = "payeer"

	// Shortest address the payout flow accepts
	MinAddressLen = 5

	// Requests shown in the "my requests" view
	DisplayedRequests = 5
)

// PayoutMethods in menu order.
var PayoutMethods = []string{MethodFaucetPay, MethodPayeer}

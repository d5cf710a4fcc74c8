package application

import "expvar"

// Process-wide counters, published at /debug/vars when the debug module is on.
var (
	signupsTotal          = expvar.NewInt("signups")
	loginsTotal           = expvar.NewInt("logins")
	productUploadsTotal   = expvar.NewInt("product_uploads")
	checkoutSessionsTotal = expvar.NewInt("checkout_sessions")
)

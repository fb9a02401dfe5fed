// Package atlaspay is the Go client for the Atlaspay payment API: fiat
// (PIX/bank) and cryptocurrency deposits and withdrawals, customer
// management, and bearer-token authentication.
//
// A client is built from a Config and exposes one service per resource:
//
//	cfg, err := config.Load()
//	if err != nil {
//		// ...
//	}
//	client, err := atlaspay.New(cfg)
//	if err != nil {
//		// ...
//	}
//	deposit, err := client.Deposits.CreatePix(ctx, &atlaspay.DepositRequest{
//		Amount:     "150.00",
//		CustomerID: "cus_123",
//	})
//
// All operations go through the httpclient pipeline, which handles token
// injection, retries with exponential backoff, rate-limit cooperation, and
// typed error translation. Failed calls return one of the httpclient error
// kinds; use httpclient.IsErrorType and friends to branch on them.
package atlaspay

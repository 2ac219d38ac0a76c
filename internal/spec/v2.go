package spec

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// buildV2 assembles the current profile-centric document. Wallets are
// first-class resources carrying the primary-wallet designation,
// transfers replace the v1 wallet transaction action, and /cron/*
// endpoints are reserved for the internal scheduler and carry no
// security requirement.
func buildV2() *openapi3.T {
	r := newRegistry()
	registerShared(r)
	registerV2Schemas(r)

	r.addSecurityScheme("bearerAuth", bearerScheme("Paymesh-issued JWT access token."))

	paths := &openapi3.Paths{}
	v2ProfilePaths(r, paths)
	v2WalletPaths(r, paths)
	v2TransferPaths(r, paths)
	v2OrderPaths(r, paths)
	v2DepositPaths(r, paths)
	v2WithdrawalPaths(r, paths)
	v2DevicePaths(r, paths)
	v2ReportPaths(r, paths)
	v2CronPaths(r, paths)

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Paymesh Merchant API",
			Description: "Current merchant API surface. A single platform token issuer authenticates every call; wallet resources carry the primary designation per chain.",
			Version:     v2Version,
			Contact:     platformContact(),
		},
		Servers: openapi3.Servers{
			{URL: "https://api.paymesh.io/v2", Description: "Production"},
			{URL: "https://sandbox.paymesh.io/v2", Description: "Sandbox"},
		},
		Tags: openapi3.Tags{
			{Name: "profile", Description: "The authenticated merchant profile and balance."},
			{Name: "order", Description: "Payment orders presented to payers."},
			{Name: "deposit", Description: "On-chain deposits credited against orders."},
			{Name: "withdrawal", Description: "Payouts from the merchant balance to external addresses."},
			{Name: "wallet", Description: "Merchant wallet resources, one primary per chain."},
			{Name: "transfer", Description: "Wallet-to-address transfers."},
			{Name: "device", Description: "Devices registered for push notifications."},
			{Name: "report", Description: "Aggregated reporting."},
			{Name: "cron", Description: "Internal scheduler entry points. Not exposed publicly."},
		},
		Paths:      paths,
		Components: r.components(),
	}
}

func registerV2Schemas(r *registry) {
	profile := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("active", "suspended", "closed")).
		WithProperty("country", openapi3.NewStringSchema().WithMinLength(2).WithMaxLength(2)).
		WithProperty("webhookUrl", openapi3.NewStringSchema().WithFormat("uri")).
		WithProperty("twoFactorEnabled", openapi3.NewBoolSchema()).
		WithProperty("createdAt", timestampSchema("Account creation time.")).
		WithProperty("updatedAt", timestampSchema("Last profile change."))
	profile.Required = []string{"id", "email", "name", "status", "createdAt"}
	r.addSchema("Profile", profile)

	updateProfile := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("country", openapi3.NewStringSchema().WithMinLength(2).WithMaxLength(2)).
		WithProperty("webhookUrl", openapi3.NewStringSchema().WithFormat("uri"))
	r.addSchema("UpdateProfileRequest", updateProfile)

	wallet := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("chain", chainSchema()).
		WithProperty("address", openapi3.NewStringSchema()).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("primary", openapi3.NewBoolSchema()).
		WithProperty("createdAt", timestampSchema("Wallet registration time."))
	wallet.Required = []string{"id", "chain", "address", "primary", "createdAt"}
	wallet.Description = "A merchant wallet resource. Exactly one wallet per chain is primary; the wallet service enforces that rule, this document only describes it."
	r.addSchema("Wallet", wallet)

	createWallet := openapi3.NewObjectSchema().
		WithProperty("chain", chainSchema()).
		WithProperty("address", openapi3.NewStringSchema()).
		WithProperty("label", openapi3.NewStringSchema())
	createWallet.Required = []string{"chain", "address"}
	createWallet.Description = "The first wallet registered for a chain is implicitly marked primary."
	r.addSchema("CreateWalletRequest", createWallet)

	transfer := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("walletId", openapi3.NewUUIDSchema()).
		WithProperty("toAddress", openapi3.NewStringSchema()).
		WithProperty("amount", amountSchema("Amount transferred.")).
		WithProperty("currency", currencySchema()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("queued", "broadcast", "confirmed", "failed")).
		WithProperty("txHash", openapi3.NewStringSchema()).
		WithProperty("createdAt", timestampSchema("Moment the transfer was accepted."))
	transfer.Required = []string{"id", "walletId", "toAddress", "amount", "status", "createdAt"}
	r.addSchema("Transfer", transfer)

	createTransfer := openapi3.NewObjectSchema().
		WithProperty("walletId", openapi3.NewUUIDSchema()).
		WithProperty("toAddress", openapi3.NewStringSchema()).
		WithProperty("amount", amountSchema("Amount to transfer.")).
		WithProperty("currency", currencySchema()).
		WithProperty("memo", openapi3.NewStringSchema())
	createTransfer.Required = []string{"walletId", "toAddress", "amount"}
	r.addSchema("CreateTransferRequest", createTransfer)

	summary := openapi3.NewObjectSchema().
		WithProperty("from", openapi3.NewStringSchema().WithFormat("date")).
		WithProperty("to", openapi3.NewStringSchema().WithFormat("date")).
		WithProperty("currency", currencySchema()).
		WithProperty("orderCount", openapi3.NewInt64Schema().WithMin(0)).
		WithProperty("depositVolume", amountSchema("Deposits credited in the window.")).
		WithProperty("withdrawalVolume", amountSchema("Withdrawals settled in the window.")).
		WithProperty("transferVolume", amountSchema("Transfers confirmed in the window.")).
		WithProperty("feeTotal", amountSchema("Fees charged in the window."))
	summary.Required = []string{"from", "to"}
	r.addSchema("ReportSummary", summary)

	cronResult := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("job", openapi3.NewStringSchema()).
		WithProperty("processed", openapi3.NewInt64Schema().WithMin(0)).
		WithProperty("durationMs", openapi3.NewInt64Schema().WithMin(0))
	cronResult.Required = []string{"success", "job", "processed"}
	r.addSchema("CronResult", cronResult)

	r.addSchema("Balance", balanceSchema())
	r.addSchema("Order", orderSchema())
	r.addSchema("CreateOrderRequest", createOrderSchema())
	r.addSchema("Deposit", depositSchema())
	r.addSchema("Withdrawal", withdrawalSchema())
	r.addSchema("CreateWithdrawalRequest", createWithdrawalSchema())
	r.addSchema("Device", deviceSchema())
	r.addSchema("RegisterDeviceRequest", registerDeviceSchema())

	r.addSchema("WalletList", listSchema(r, "Wallet"))
	r.addSchema("TransferList", listSchema(r, "Transfer"))
	r.addSchema("OrderList", listSchema(r, "Order"))
	r.addSchema("DepositList", listSchema(r, "Deposit"))
	r.addSchema("WithdrawalList", listSchema(r, "Withdrawal"))
	r.addSchema("DeviceList", listSchema(r, "Device"))
}

func v2ProfilePaths(r *registry, paths *openapi3.Paths) {
	get := operation("profile", "getProfile", "Fetch the merchant profile")
	get.Responses.Set("200", r.jsonResponse("The authenticated merchant profile.", "Profile"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Security = platformBearer()

	update := operation("profile", "updateProfile", "Update the merchant profile")
	update.RequestBody = r.jsonBody("Fields to change.", "UpdateProfileRequest")
	update.Responses.Set("200", r.jsonResponse("The updated profile.", "Profile"))
	update.Responses.Set("400", r.responseRef("BadRequest"))
	update.Responses.Set("401", r.responseRef("Unauthorized"))
	update.Security = platformBearer()

	paths.Set("/profile", &openapi3.PathItem{Get: get, Put: update})

	balance := operation("profile", "getBalance", "Fetch the merchant balance")
	balance.Responses.Set("200", r.jsonResponse("Current balance snapshot.", "Balance"))
	balance.Responses.Set("401", r.responseRef("Unauthorized"))
	balance.Security = platformBearer()

	paths.Set("/profile/balance", &openapi3.PathItem{Get: balance})
}

func v2WalletPaths(r *registry, paths *openapi3.Paths) {
	list := operation("wallet", "listWallets", "List wallets")
	list.Parameters = openapi3.Parameters{
		r.paramRef("Limit"),
		r.paramRef("Offset"),
		queryParameter("chain", "Restrict to wallets on one chain.", chainSchema()),
	}
	list.Responses.Set("200", r.jsonResponse("A page of wallets.", "WalletList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = platformBearer()

	create := operation("wallet", "createWallet", "Add a wallet")
	create.Description = "Registers a wallet for the merchant. The first wallet added for a chain implicitly becomes that chain's primary wallet."
	create.RequestBody = r.jsonBody("Wallet to register.", "CreateWalletRequest")
	create.Responses.Set("201", r.jsonResponse("The registered wallet.", "Wallet"))
	create.Responses.Set("400", r.responseRef("BadRequest"))
	create.Responses.Set("401", r.responseRef("Unauthorized"))
	create.Responses.Set("409", r.responseRef("Conflict"))
	create.Security = platformBearer()

	paths.Set("/wallets", &openapi3.PathItem{Get: list, Post: create})

	get := operation("wallet", "getWallet", "Fetch a wallet")
	get.Parameters = openapi3.Parameters{pathParameter("walletId", "Wallet identifier.")}
	get.Responses.Set("200", r.jsonResponse("The wallet.", "Wallet"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = platformBearer()

	remove := operation("wallet", "deleteWallet", "Delete a wallet")
	remove.Description = "Removes a wallet. Deleting the sole primary wallet of a chain is disallowed; promote another wallet first."
	remove.Parameters = openapi3.Parameters{pathParameter("walletId", "Wallet identifier.")}
	remove.Responses.Set("204", emptyResponse("Wallet deleted."))
	remove.Responses.Set("401", r.responseRef("Unauthorized"))
	remove.Responses.Set("404", r.responseRef("NotFound"))
	remove.Responses.Set("409", r.responseRef("Conflict"))
	remove.Security = platformBearer()

	paths.Set("/wallets/{walletId}", &openapi3.PathItem{Get: get, Delete: remove})

	primary := operation("wallet", "setPrimaryWallet", "Mark a wallet primary")
	primary.Description = "Promotes the wallet to primary for its chain, demoting exactly one previous primary on the same chain."
	primary.Parameters = openapi3.Parameters{pathParameter("walletId", "Wallet identifier.")}
	primary.Responses.Set("200", r.jsonResponse("The promoted wallet.", "Wallet"))
	primary.Responses.Set("401", r.responseRef("Unauthorized"))
	primary.Responses.Set("404", r.responseRef("NotFound"))
	primary.Security = platformBearer()

	paths.Set("/wallets/{walletId}/primary", &openapi3.PathItem{Put: primary})
}

func v2TransferPaths(r *registry, paths *openapi3.Paths) {
	list := operation("transfer", "listTransfers", "List transfers")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of transfers.", "TransferList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = platformBearer()

	create := operation("transfer", "createTransfer", "Create a transfer")
	create.Description = "Queues a transfer from one of the merchant's wallets. Requires the security PIN."
	create.Parameters = openapi3.Parameters{r.paramRef("PinCode")}
	create.RequestBody = r.jsonBody("Transfer to queue.", "CreateTransferRequest")
	create.Responses.Set("201", r.jsonResponse("The queued transfer.", "Transfer"))
	create.Responses.Set("400", r.responseRef("BadRequest"))
	create.Responses.Set("401", r.responseRef("Unauthorized"))
	create.Responses.Set("403", r.responseRef("Forbidden"))
	create.Security = platformBearer()

	paths.Set("/transfers", &openapi3.PathItem{Get: list, Post: create})

	get := operation("transfer", "getTransfer", "Fetch a transfer")
	get.Parameters = openapi3.Parameters{pathParameter("transferId", "Transfer identifier.")}
	get.Responses.Set("200", r.jsonResponse("The transfer.", "Transfer"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = platformBearer()

	paths.Set("/transfers/{transferId}", &openapi3.PathItem{Get: get})
}

func v2OrderPaths(r *registry, paths *openapi3.Paths) {
	list := operation("order", "listOrders", "List orders")
	list.Parameters = openapi3.Parameters{
		r.paramRef("Limit"),
		r.paramRef("Offset"),
		queryParameter("status", "Restrict to orders in one state.",
			openapi3.NewStringSchema().WithEnum("pending", "paid", "expired", "cancelled")),
	}
	list.Responses.Set("200", r.jsonResponse("A page of orders.", "OrderList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = platformBearer()

	create := operation("order", "createOrder", "Create a payment order")
	create.RequestBody = r.jsonBody("Order to present to the payer.", "CreateOrderRequest")
	create.Responses.Set("201", r.jsonResponse("The created order.", "Order"))
	create.Responses.Set("400", r.responseRef("BadRequest"))
	create.Responses.Set("401", r.responseRef("Unauthorized"))
	create.Security = platformBearer()

	paths.Set("/orders", &openapi3.PathItem{Get: list, Post: create})

	get := operation("order", "getOrder", "Fetch an order")
	get.Parameters = openapi3.Parameters{pathParameter("orderId", "Order identifier.")}
	get.Responses.Set("200", r.jsonResponse("The order.", "Order"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = platformBearer()

	paths.Set("/orders/{orderId}", &openapi3.PathItem{Get: get})
}

func v2DepositPaths(r *registry, paths *openapi3.Paths) {
	list := operation("deposit", "listDeposits", "List deposits")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of deposits.", "DepositList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = platformBearer()

	paths.Set("/deposits", &openapi3.PathItem{Get: list})

	get := operation("deposit", "getDeposit", "Fetch a deposit")
	get.Parameters = openapi3.Parameters{pathParameter("depositId", "Deposit identifier.")}
	get.Responses.Set("200", r.jsonResponse("The deposit.", "Deposit"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = platformBearer()

	paths.Set("/deposits/{depositId}", &openapi3.PathItem{Get: get})
}

func v2WithdrawalPaths(r *registry, paths *openapi3.Paths) {
	list := operation("withdrawal", "listWithdrawals", "List withdrawals")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of withdrawals.", "WithdrawalList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = platformBearer()

	create := operation("withdrawal", "createWithdrawal", "Request a withdrawal")
	create.Description = "Queues a payout to an external address. Requires the security PIN."
	create.Parameters = openapi3.Parameters{r.paramRef("PinCode")}
	create.RequestBody = r.jsonBody("Withdrawal to queue.", "CreateWithdrawalRequest")
	create.Responses.Set("201", r.jsonResponse("The queued withdrawal.", "Withdrawal"))
	create.Responses.Set("400", r.responseRef("BadRequest"))
	create.Responses.Set("401", r.responseRef("Unauthorized"))
	create.Responses.Set("403", r.responseRef("Forbidden"))
	create.Security = platformBearer()

	paths.Set("/withdrawals", &openapi3.PathItem{Get: list, Post: create})

	get := operation("withdrawal", "getWithdrawal", "Fetch a withdrawal")
	get.Parameters = openapi3.Parameters{pathParameter("withdrawalId", "Withdrawal identifier.")}
	get.Responses.Set("200", r.jsonResponse("The withdrawal.", "Withdrawal"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = platformBearer()

	paths.Set("/withdrawals/{withdrawalId}", &openapi3.PathItem{Get: get})
}

func v2DevicePaths(r *registry, paths *openapi3.Paths) {
	list := operation("device", "listDevices", "List registered devices")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of devices.", "DeviceList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = platformBearer()

	register := operation("device", "registerDevice", "Register a device")
	register.RequestBody = r.jsonBody("Device to register.", "RegisterDeviceRequest")
	register.Responses.Set("201", r.jsonResponse("The registered device.", "Device"))
	register.Responses.Set("400", r.responseRef("BadRequest"))
	register.Responses.Set("401", r.responseRef("Unauthorized"))
	register.Security = platformBearer()

	paths.Set("/devices", &openapi3.PathItem{Get: list, Post: register})

	remove := operation("device", "removeDevice", "Remove a device")
	remove.Parameters = openapi3.Parameters{pathParameter("deviceId", "Device identifier.")}
	remove.Responses.Set("204", emptyResponse("Device removed."))
	remove.Responses.Set("401", r.responseRef("Unauthorized"))
	remove.Responses.Set("404", r.responseRef("NotFound"))
	remove.Security = platformBearer()

	paths.Set("/devices/{deviceId}", &openapi3.PathItem{Delete: remove})
}

func v2ReportPaths(r *registry, paths *openapi3.Paths) {
	summary := operation("report", "getReportSummary", "Aggregated activity summary")
	summary.Parameters = openapi3.Parameters{
		queryParameter("from", "First day covered by the summary.", openapi3.NewStringSchema().WithFormat("date")),
		queryParameter("to", "Last day covered by the summary.", openapi3.NewStringSchema().WithFormat("date")),
	}
	summary.Responses.Set("200", r.jsonResponse("Aggregates for the requested window.", "ReportSummary"))
	summary.Responses.Set("400", r.responseRef("BadRequest"))
	summary.Responses.Set("401", r.responseRef("Unauthorized"))
	summary.Security = platformBearer()

	paths.Set("/reports/summary", &openapi3.PathItem{Get: summary})
}

func v2CronPaths(r *registry, paths *openapi3.Paths) {
	// Scheduler entry points are reachable only from the internal network
	// and deliberately declare no security requirement.
	expire := operation("cron", "cronExpireOrders", "Expire overdue orders")
	expire.Responses.Set("200", r.jsonResponse("Job outcome.", "CronResult"))
	expire.Responses.Set("500", r.responseRef("InternalError"))

	settle := operation("cron", "cronSettleDeposits", "Settle confirmed deposits")
	settle.Responses.Set("200", r.jsonResponse("Job outcome.", "CronResult"))
	settle.Responses.Set("500", r.responseRef("InternalError"))

	retry := operation("cron", "cronRetryWithdrawals", "Retry failed withdrawals")
	retry.Responses.Set("200", r.jsonResponse("Job outcome.", "CronResult"))
	retry.Responses.Set("500", r.responseRef("InternalError"))

	paths.Set("/cron/expire-orders", &openapi3.PathItem{Post: expire})
	paths.Set("/cron/settle-deposits", &openapi3.PathItem{Post: settle})
	paths.Set("/cron/retry-withdrawals", &openapi3.PathItem{Post: retry})
}

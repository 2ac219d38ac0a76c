package spec

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// buildV1 assembles the legacy merchant-centric document. Wallets are
// transfer targets (POST /wallets/{walletId} sends a transaction) and a
// call authenticates with either of two token issuers.
func buildV1() *openapi3.T {
	r := newRegistry()
	registerShared(r)
	registerV1Schemas(r)

	r.addSecurityScheme("bearerAuth", bearerScheme("Paymesh-issued JWT access token."))
	r.addSecurityScheme("firebaseAuth", bearerScheme("Firebase ID token, accepted alongside platform tokens during the auth migration."))

	paths := &openapi3.Paths{}
	v1MerchantPaths(r, paths)
	v1OrderPaths(r, paths)
	v1DepositPaths(r, paths)
	v1WithdrawalPaths(r, paths)
	v1WalletPaths(r, paths)
	v1DevicePaths(r, paths)
	v1ReportPaths(r, paths)

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Paymesh Merchant Gateway API",
			Description: "Legacy merchant gateway surface. Superseded by the v2 profile API; retained for deployments that have not migrated off the dual token issuers.",
			Version:     v1Version,
			Contact:     platformContact(),
		},
		Servers: openapi3.Servers{
			{URL: "https://gateway.paymesh.io/v1", Description: "Production"},
			{URL: "https://sandbox.paymesh.io/v1", Description: "Sandbox"},
		},
		Tags: openapi3.Tags{
			{Name: "merchant", Description: "Merchant accounts, balances and PIN management."},
			{Name: "order", Description: "Payment orders presented to payers."},
			{Name: "deposit", Description: "On-chain deposits credited against orders."},
			{Name: "withdrawal", Description: "Payouts from merchant balances to external addresses."},
			{Name: "wallet", Description: "Registered destination wallets and outbound transactions."},
			{Name: "device", Description: "Devices registered for push notifications."},
			{Name: "report", Description: "Aggregated transaction reporting."},
		},
		Paths:      paths,
		Components: r.components(),
	}
}

func registerV1Schemas(r *registry) {
	merchant := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("active", "suspended", "closed")).
		WithProperty("country", openapi3.NewStringSchema().WithMinLength(2).WithMaxLength(2)).
		WithProperty("webhookUrl", openapi3.NewStringSchema().WithFormat("uri")).
		WithProperty("createdAt", timestampSchema("Account creation time.")).
		WithProperty("updatedAt", timestampSchema("Last profile change."))
	merchant.Required = []string{"id", "email", "name", "status", "createdAt"}
	r.addSchema("Merchant", merchant)

	createMerchant := openapi3.NewObjectSchema().
		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("country", openapi3.NewStringSchema().WithMinLength(2).WithMaxLength(2)).
		WithProperty("pin", openapi3.NewStringSchema().WithPattern(PinCodePattern)).
		WithProperty("webhookUrl", openapi3.NewStringSchema().WithFormat("uri"))
	createMerchant.Required = []string{"email", "name", "pin"}
	r.addSchema("CreateMerchantRequest", createMerchant)

	updateMerchant := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("country", openapi3.NewStringSchema().WithMinLength(2).WithMaxLength(2)).
		WithProperty("webhookUrl", openapi3.NewStringSchema().WithFormat("uri"))
	r.addSchema("UpdateMerchantRequest", updateMerchant)

	changePin := openapi3.NewObjectSchema().
		WithProperty("newPin", openapi3.NewStringSchema().WithPattern(PinCodePattern))
	changePin.Required = []string{"newPin"}
	r.addSchema("ChangePinRequest", changePin)

	wallet := openapi3.NewObjectSchema().
		WithProperty("address", openapi3.NewStringSchema()).
		WithProperty("chain", chainSchema()).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("balance", amountSchema("Last known balance of the wallet."))
	wallet.Required = []string{"address", "chain"}
	wallet.Description = "A destination wallet registered as a transfer target."
	r.addSchema("Wallet", wallet)

	sendTransaction := openapi3.NewObjectSchema().
		WithProperty("toAddress", openapi3.NewStringSchema()).
		WithProperty("amount", amountSchema("Amount to send from the wallet.")).
		WithProperty("currency", currencySchema()).
		WithProperty("memo", openapi3.NewStringSchema())
	sendTransaction.Required = []string{"toAddress", "amount"}
	r.addSchema("SendTransactionRequest", sendTransaction)

	transaction := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("walletId", openapi3.NewUUIDSchema()).
		WithProperty("toAddress", openapi3.NewStringSchema()).
		WithProperty("amount", amountSchema("Amount sent.")).
		WithProperty("currency", currencySchema()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("queued", "broadcast", "confirmed", "failed")).
		WithProperty("txHash", openapi3.NewStringSchema()).
		WithProperty("createdAt", timestampSchema("Moment the transaction was accepted."))
	transaction.Required = []string{"id", "walletId", "toAddress", "amount", "status"}
	r.addSchema("Transaction", transaction)

	reportEntry := openapi3.NewObjectSchema().
		WithProperty("date", openapi3.NewStringSchema().WithFormat("date")).
		WithProperty("orderCount", openapi3.NewInt64Schema().WithMin(0)).
		WithProperty("depositVolume", amountSchema("Deposits credited on the day.")).
		WithProperty("withdrawalVolume", amountSchema("Withdrawals settled on the day.")).
		WithProperty("currency", currencySchema())
	reportEntry.Required = []string{"date"}
	r.addSchema("TransactionReportEntry", reportEntry)

	reportItems := openapi3.NewArraySchema()
	reportItems.Items = r.schemaRef("TransactionReportEntry")
	report := openapi3.NewObjectSchema().
		WithPropertyRef("entries", openapi3.NewSchemaRef("", reportItems)).
		WithProperty("from", openapi3.NewStringSchema().WithFormat("date")).
		WithProperty("to", openapi3.NewStringSchema().WithFormat("date"))
	report.Required = []string{"entries"}
	r.addSchema("TransactionReport", report)

	r.addSchema("Balance", balanceSchema())
	r.addSchema("Order", orderSchema())
	r.addSchema("CreateOrderRequest", createOrderSchema())
	r.addSchema("Deposit", depositSchema())
	r.addSchema("Withdrawal", withdrawalSchema())
	r.addSchema("CreateWithdrawalRequest", createWithdrawalSchema())
	r.addSchema("Device", deviceSchema())
	r.addSchema("RegisterDeviceRequest", registerDeviceSchema())

	r.addSchema("MerchantList", listSchema(r, "Merchant"))
	r.addSchema("OrderList", listSchema(r, "Order"))
	r.addSchema("DepositList", listSchema(r, "Deposit"))
	r.addSchema("WithdrawalList", listSchema(r, "Withdrawal"))
	r.addSchema("WalletList", listSchema(r, "Wallet"))
	r.addSchema("DeviceList", listSchema(r, "Device"))
}

func v1MerchantPaths(r *registry, paths *openapi3.Paths) {
	list := operation("merchant", "listMerchants", "List merchants")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of merchants.", "MerchantList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Responses.Set("500", r.responseRef("InternalError"))
	list.Security = eitherProvider()

	create := operation("merchant", "createMerchant", "Create a merchant account")
	create.RequestBody = r.jsonBody("Merchant account to create.", "CreateMerchantRequest")
	create.Responses.Set("201", r.jsonResponse("The created merchant.", "Merchant"))
	create.Responses.Set("400", r.responseRef("BadRequest"))
	create.Responses.Set("401", r.responseRef("Unauthorized"))
	create.Responses.Set("409", r.responseRef("Conflict"))
	create.Security = eitherProvider()

	paths.Set("/merchants", &openapi3.PathItem{Get: list, Post: create})

	get := operation("merchant", "getMerchant", "Fetch a merchant")
	get.Parameters = openapi3.Parameters{pathParameter("merchantId", "Merchant identifier.")}
	get.Responses.Set("200", r.jsonResponse("The merchant.", "Merchant"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = eitherProvider()

	update := operation("merchant", "updateMerchant", "Update a merchant")
	update.Parameters = openapi3.Parameters{pathParameter("merchantId", "Merchant identifier.")}
	update.RequestBody = r.jsonBody("Fields to change.", "UpdateMerchantRequest")
	update.Responses.Set("200", r.jsonResponse("The updated merchant.", "Merchant"))
	update.Responses.Set("400", r.responseRef("BadRequest"))
	update.Responses.Set("401", r.responseRef("Unauthorized"))
	update.Responses.Set("404", r.responseRef("NotFound"))
	update.Security = eitherProvider()

	paths.Set("/merchants/{merchantId}", &openapi3.PathItem{Get: get, Put: update})

	balance := operation("merchant", "getMerchantBalance", "Fetch a merchant balance")
	balance.Parameters = openapi3.Parameters{pathParameter("merchantId", "Merchant identifier.")}
	balance.Responses.Set("200", r.jsonResponse("Current balance snapshot.", "Balance"))
	balance.Responses.Set("401", r.responseRef("Unauthorized"))
	balance.Responses.Set("404", r.responseRef("NotFound"))
	balance.Security = eitherProvider()

	paths.Set("/merchants/{merchantId}/balance", &openapi3.PathItem{Get: balance})

	pin := operation("merchant", "changeMerchantPin", "Change the merchant PIN")
	pin.Description = "Replaces the security PIN. The current PIN travels in the X-Pin-Code header and authorizes the change."
	pin.Parameters = openapi3.Parameters{
		pathParameter("merchantId", "Merchant identifier."),
		r.paramRef("PinCode"),
	}
	pin.RequestBody = r.jsonBody("The replacement PIN.", "ChangePinRequest")
	pin.Responses.Set("200", r.jsonResponse("PIN updated.", "StatusMessage"))
	pin.Responses.Set("400", r.responseRef("BadRequest"))
	pin.Responses.Set("401", r.responseRef("Unauthorized"))
	pin.Responses.Set("403", r.responseRef("Forbidden"))
	pin.Security = eitherProvider()

	paths.Set("/merchants/{merchantId}/pin", &openapi3.PathItem{Put: pin})
}

func v1OrderPaths(r *registry, paths *openapi3.Paths) {
	list := operation("order", "listOrders", "List orders")
	list.Parameters = openapi3.Parameters{
		r.paramRef("Limit"),
		r.paramRef("Offset"),
		queryParameter("status", "Restrict to orders in one state.",
			openapi3.NewStringSchema().WithEnum("pending", "paid", "expired", "cancelled")),
	}
	list.Responses.Set("200", r.jsonResponse("A page of orders.", "OrderList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = eitherProvider()

	create := operation("order", "createOrder", "Create a payment order")
	create.RequestBody = r.jsonBody("Order to present to the payer.", "CreateOrderRequest")
	create.Responses.Set("201", r.jsonResponse("The created order.", "Order"))
	create.Responses.Set("400", r.responseRef("BadRequest"))
	create.Responses.Set("401", r.responseRef("Unauthorized"))
	create.Security = eitherProvider()

	paths.Set("/orders", &openapi3.PathItem{Get: list, Post: create})

	get := operation("order", "getOrder", "Fetch an order")
	get.Parameters = openapi3.Parameters{pathParameter("orderId", "Order identifier.")}
	get.Responses.Set("200", r.jsonResponse("The order.", "Order"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = eitherProvider()

	paths.Set("/orders/{orderId}", &openapi3.PathItem{Get: get})
}

func v1DepositPaths(r *registry, paths *openapi3.Paths) {
	list := operation("deposit", "listDeposits", "List deposits")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of deposits.", "DepositList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = eitherProvider()

	paths.Set("/deposits", &openapi3.PathItem{Get: list})

	get := operation("deposit", "getDeposit", "Fetch a deposit")
	get.Parameters = openapi3.Parameters{pathParameter("depositId", "Deposit identifier.")}
	get.Responses.Set("200", r.jsonResponse("The deposit.", "Deposit"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = eitherProvider()

	paths.Set("/deposits/{depositId}", &openapi3.PathItem{Get: get})
}

func v1WithdrawalPaths(r *registry, paths *openapi3.Paths) {
	list := operation("withdrawal", "listWithdrawals", "List withdrawals")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of withdrawals.", "WithdrawalList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = eitherProvider()

	create := operation("withdrawal", "createWithdrawal", "Request a withdrawal")
	create.Description = "Queues a payout to an external address. Requires the security PIN."
	create.Parameters = openapi3.Parameters{r.paramRef("PinCode")}
	create.RequestBody = r.jsonBody("Withdrawal to queue.", "CreateWithdrawalRequest")
	create.Responses.Set("201", r.jsonResponse("The queued withdrawal.", "Withdrawal"))
	create.Responses.Set("400", r.responseRef("BadRequest"))
	create.Responses.Set("401", r.responseRef("Unauthorized"))
	create.Responses.Set("403", r.responseRef("Forbidden"))
	create.Security = eitherProvider()

	paths.Set("/withdrawals", &openapi3.PathItem{Get: list, Post: create})

	get := operation("withdrawal", "getWithdrawal", "Fetch a withdrawal")
	get.Parameters = openapi3.Parameters{pathParameter("withdrawalId", "Withdrawal identifier.")}
	get.Responses.Set("200", r.jsonResponse("The withdrawal.", "Withdrawal"))
	get.Responses.Set("401", r.responseRef("Unauthorized"))
	get.Responses.Set("404", r.responseRef("NotFound"))
	get.Security = eitherProvider()

	paths.Set("/withdrawals/{withdrawalId}", &openapi3.PathItem{Get: get})
}

func v1WalletPaths(r *registry, paths *openapi3.Paths) {
	list := operation("wallet", "listWallets", "List registered wallets")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of wallets.", "WalletList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = eitherProvider()

	paths.Set("/wallets", &openapi3.PathItem{Get: list})

	send := operation("wallet", "sendWalletTransaction", "Send a transaction from a wallet")
	send.Description = "Queues an outbound transaction from the identified wallet. Requires the security PIN."
	send.Parameters = openapi3.Parameters{
		pathParameter("walletId", "Source wallet identifier."),
		r.paramRef("PinCode"),
	}
	send.RequestBody = r.jsonBody("Transaction to send.", "SendTransactionRequest")
	send.Responses.Set("202", r.jsonResponse("The accepted transaction.", "Transaction"))
	send.Responses.Set("400", r.responseRef("BadRequest"))
	send.Responses.Set("401", r.responseRef("Unauthorized"))
	send.Responses.Set("403", r.responseRef("Forbidden"))
	send.Responses.Set("404", r.responseRef("NotFound"))
	send.Security = eitherProvider()

	paths.Set("/wallets/{walletId}", &openapi3.PathItem{Post: send})
}

func v1DevicePaths(r *registry, paths *openapi3.Paths) {
	list := operation("device", "listDevices", "List registered devices")
	list.Parameters = openapi3.Parameters{r.paramRef("Limit"), r.paramRef("Offset")}
	list.Responses.Set("200", r.jsonResponse("A page of devices.", "DeviceList"))
	list.Responses.Set("401", r.responseRef("Unauthorized"))
	list.Security = eitherProvider()

	register := operation("device", "registerDevice", "Register a device")
	register.RequestBody = r.jsonBody("Device to register.", "RegisterDeviceRequest")
	register.Responses.Set("201", r.jsonResponse("The registered device.", "Device"))
	register.Responses.Set("400", r.responseRef("BadRequest"))
	register.Responses.Set("401", r.responseRef("Unauthorized"))
	register.Security = eitherProvider()

	paths.Set("/devices", &openapi3.PathItem{Get: list, Post: register})

	remove := operation("device", "removeDevice", "Remove a device")
	remove.Parameters = openapi3.Parameters{pathParameter("deviceId", "Device identifier.")}
	remove.Responses.Set("204", emptyResponse("Device removed."))
	remove.Responses.Set("401", r.responseRef("Unauthorized"))
	remove.Responses.Set("404", r.responseRef("NotFound"))
	remove.Security = eitherProvider()

	paths.Set("/devices/{deviceId}", &openapi3.PathItem{Delete: remove})
}

func v1ReportPaths(r *registry, paths *openapi3.Paths) {
	report := operation("report", "getTransactionReport", "Daily transaction report")
	report.Parameters = openapi3.Parameters{
		queryParameter("from", "First day covered by the report.", openapi3.NewStringSchema().WithFormat("date")),
		queryParameter("to", "Last day covered by the report.", openapi3.NewStringSchema().WithFormat("date")),
	}
	report.Responses.Set("200", r.jsonResponse("Per-day aggregates for the requested window.", "TransactionReport"))
	report.Responses.Set("400", r.responseRef("BadRequest"))
	report.Responses.Set("401", r.responseRef("Unauthorized"))
	report.Security = eitherProvider()

	paths.Set("/reports/transactions", &openapi3.PathItem{Get: report})
}

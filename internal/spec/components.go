package spec

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// PinCodeHeader names the header carrying the six digit security PIN on
// sensitive operations.
const PinCodeHeader = "X-Pin-Code"

// PinCodePattern is the constraint every PinCodeHeader parameter carries.
const PinCodePattern = `^[0-9]{6}$`

const (
	schemaRefPrefix    = "#/components/schemas/"
	parameterRefPrefix = "#/components/parameters/"
	responseRefPrefix  = "#/components/responses/"
)

// registry collects the reusable components of one document and hands out
// $ref pointers into them. Requesting a name that was never registered
// yields an unresolved ref, which fails document validation at build time.
type registry struct {
	schemas    openapi3.Schemas
	parameters openapi3.ParametersMap
	responses  openapi3.ResponseBodies
	security   openapi3.SecuritySchemes
}

func newRegistry() *registry {
	return &registry{
		schemas:    openapi3.Schemas{},
		parameters: openapi3.ParametersMap{},
		responses:  openapi3.ResponseBodies{},
		security:   openapi3.SecuritySchemes{},
	}
}

func (r *registry) addSchema(name string, schema *openapi3.Schema) {
	r.schemas[name] = openapi3.NewSchemaRef("", schema)
}

func (r *registry) addParameter(name string, parameter *openapi3.Parameter) {
	r.parameters[name] = &openapi3.ParameterRef{Value: parameter}
}

func (r *registry) addResponse(name string, response *openapi3.Response) {
	r.responses[name] = &openapi3.ResponseRef{Value: response}
}

func (r *registry) addSecurityScheme(name string, scheme *openapi3.SecurityScheme) {
	r.security[name] = &openapi3.SecuritySchemeRef{Value: scheme}
}

// schemaRef points an operation at a registered schema.
func (r *registry) schemaRef(name string) *openapi3.SchemaRef {
	if registered, ok := r.schemas[name]; ok {
		return openapi3.NewSchemaRef(schemaRefPrefix+name, registered.Value)
	}
	return openapi3.NewSchemaRef(schemaRefPrefix+name, nil)
}

func (r *registry) paramRef(name string) *openapi3.ParameterRef {
	if registered, ok := r.parameters[name]; ok {
		return &openapi3.ParameterRef{Ref: parameterRefPrefix + name, Value: registered.Value}
	}
	return &openapi3.ParameterRef{Ref: parameterRefPrefix + name}
}

func (r *registry) responseRef(name string) *openapi3.ResponseRef {
	if registered, ok := r.responses[name]; ok {
		return &openapi3.ResponseRef{Ref: responseRefPrefix + name, Value: registered.Value}
	}
	return &openapi3.ResponseRef{Ref: responseRefPrefix + name}
}

func (r *registry) components() *openapi3.Components {
	return &openapi3.Components{
		Schemas:         r.schemas,
		Parameters:      r.parameters,
		Responses:       r.responses,
		SecuritySchemes: r.security,
	}
}

// jsonResponse builds an inline response whose body references a
// registered schema.
func (r *registry) jsonResponse(description, schemaName string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(r.schemaRef(schemaName))}
}

// jsonBody builds a required JSON request body referencing a registered
// schema.
func (r *registry) jsonBody(description, schemaName string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithDescription(description).
		WithRequired(true).
		WithJSONSchemaRef(r.schemaRef(schemaName))}
}

// registerShared installs the building blocks common to both generations:
// the canonical error shape, the reusable error responses, pagination
// metadata and the shared query/header parameters.
func registerShared(r *registry) {
	errorSchema := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema().WithEnum(false)).
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("code", openapi3.NewStringSchema())
	errorSchema.Required = []string{"success", "error"}
	errorSchema.Description = "Canonical error shape shared by every Paymesh service."
	r.addSchema("ErrorResponse", errorSchema)

	pagination := openapi3.NewObjectSchema().
		WithProperty("total", openapi3.NewInt64Schema().WithMin(0)).
		WithProperty("limit", openapi3.NewIntegerSchema()).
		WithProperty("offset", openapi3.NewIntegerSchema())
	pagination.Required = []string{"total", "limit", "offset"}
	r.addSchema("PaginationMeta", pagination)

	r.addSchema("StatusMessage", statusMessageSchema())

	r.addParameter("Limit", openapi3.NewQueryParameter("limit").
		WithDescription("Maximum number of items to return.").
		WithSchema(openapi3.NewIntegerSchema().WithMin(1).WithMax(100).WithDefault(20)))
	r.addParameter("Offset", openapi3.NewQueryParameter("offset").
		WithDescription("Number of items to skip before collecting the result set.").
		WithSchema(openapi3.NewIntegerSchema().WithMin(0).WithDefault(0)))
	r.addParameter("PinCode", openapi3.NewHeaderParameter(PinCodeHeader).
		WithDescription("Six digit security PIN confirming a sensitive action.").
		WithRequired(true).
		WithSchema(openapi3.NewStringSchema().WithPattern(PinCodePattern)))

	r.addErrorResponse("BadRequest", "The request is malformed or fails validation.")
	r.addErrorResponse("Unauthorized", "Authentication is missing or invalid.")
	r.addErrorResponse("Forbidden", "The authenticated subject may not perform this action.")
	r.addErrorResponse("NotFound", "The requested resource does not exist.")
	r.addErrorResponse("Conflict", "The request conflicts with the current resource state.")
	r.addErrorResponse("InternalError", "An unexpected server side failure.")
}

func (r *registry) addErrorResponse(name, description string) {
	r.addResponse(name, openapi3.NewResponse().
		WithDescription(description).
		WithJSONSchemaRef(r.schemaRef("ErrorResponse")))
}

// listSchema composes PaginationMeta with a typed data page via allOf.
func listSchema(r *registry, itemName string) *openapi3.Schema {
	items := openapi3.NewArraySchema()
	items.Items = r.schemaRef(itemName)

	page := openapi3.NewObjectSchema().
		WithPropertyRef("data", openapi3.NewSchemaRef("", items))
	page.Required = []string{"data"}

	return &openapi3.Schema{
		AllOf: openapi3.SchemaRefs{
			r.schemaRef("PaginationMeta"),
			openapi3.NewSchemaRef("", page),
		},
	}
}

// operation starts a descriptor with the fields every operation carries.
func operation(tag, operationID, summary string) *openapi3.Operation {
	return &openapi3.Operation{
		Tags:        []string{tag},
		OperationID: operationID,
		Summary:     summary,
		Responses:   &openapi3.Responses{},
	}
}

func emptyResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description)}
}

func pathParameter(name, description string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: openapi3.NewPathParameter(name).
		WithDescription(description).
		WithSchema(openapi3.NewUUIDSchema())}
}

func queryParameter(name, description string, schema *openapi3.Schema) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: openapi3.NewQueryParameter(name).
		WithDescription(description).
		WithSchema(schema)}
}

// platformBearer is the requirement shared by every protected operation:
// a Paymesh-issued JWT presented as a bearer token.
func platformBearer() *openapi3.SecurityRequirements {
	return openapi3.NewSecurityRequirements().
		With(openapi3.NewSecurityRequirement().Authenticate("bearerAuth"))
}

// eitherProvider lists the two v1 token issuers as alternatives.
func eitherProvider() *openapi3.SecurityRequirements {
	return openapi3.NewSecurityRequirements().
		With(openapi3.NewSecurityRequirement().Authenticate("bearerAuth")).
		With(openapi3.NewSecurityRequirement().Authenticate("firebaseAuth"))
}

func bearerScheme(description string) *openapi3.SecurityScheme {
	scheme := openapi3.NewJWTSecurityScheme()
	scheme.Description = description
	return scheme
}

func platformContact() *openapi3.Contact {
	return &openapi3.Contact{
		Name:  "Paymesh Platform Team",
		URL:   "https://developers.paymesh.io",
		Email: "platform@paymesh.io",
	}
}

// Field schema helpers shared by both catalogs.

func amountSchema(description string) *openapi3.Schema {
	s := openapi3.NewStringSchema().WithPattern(`^[0-9]+(\.[0-9]+)?$`)
	s.Description = description
	return s
}

func currencySchema() *openapi3.Schema {
	s := openapi3.NewStringSchema().WithMinLength(3).WithMaxLength(5)
	s.Description = "Currency code, fiat ISO 4217 or platform asset symbol."
	return s
}

func chainSchema() *openapi3.Schema {
	s := openapi3.NewStringSchema().WithEnum("bitcoin", "ethereum", "tron", "polygon")
	s.Description = "Settlement network the address belongs to."
	return s
}

func timestampSchema(description string) *openapi3.Schema {
	s := openapi3.NewDateTimeSchema()
	s.Description = description
	return s
}

func statusMessageSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema())
	s.Required = []string{"success", "message"}
	return s
}

// Entity schemas present in both generations. Each call returns a fresh
// value so the two catalogs never share mutable structures.

func balanceSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("available", amountSchema("Funds available for withdrawal.")).
		WithProperty("pending", amountSchema("Funds awaiting settlement.")).
		WithProperty("currency", currencySchema()).
		WithProperty("updatedAt", timestampSchema("Moment the balance snapshot was taken."))
	s.Required = []string{"available", "pending", "currency"}
	return s
}

func orderSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("merchantId", openapi3.NewUUIDSchema()).
		WithProperty("amount", amountSchema("Amount charged to the payer.")).
		WithProperty("currency", currencySchema()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("pending", "paid", "expired", "cancelled")).
		WithProperty("payAddress", openapi3.NewStringSchema()).
		WithProperty("reference", openapi3.NewStringSchema()).
		WithProperty("createdAt", timestampSchema("Order creation time.")).
		WithProperty("expiresAt", timestampSchema("Deadline after which the order expires."))
	s.Required = []string{"id", "merchantId", "amount", "currency", "status", "createdAt"}
	return s
}

func createOrderSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("amount", amountSchema("Amount to charge.")).
		WithProperty("currency", currencySchema()).
		WithProperty("reference", openapi3.NewStringSchema()).
		WithProperty("callbackUrl", openapi3.NewStringSchema().WithFormat("uri"))
	s.Required = []string{"amount", "currency"}
	return s
}

func depositSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("orderId", openapi3.NewUUIDSchema()).
		WithProperty("amount", amountSchema("Amount received on chain.")).
		WithProperty("currency", currencySchema()).
		WithProperty("chain", chainSchema()).
		WithProperty("txHash", openapi3.NewStringSchema()).
		WithProperty("confirmations", openapi3.NewIntegerSchema().WithMin(0)).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("detected", "confirmed", "credited", "orphaned")).
		WithProperty("createdAt", timestampSchema("Moment the deposit was first observed."))
	s.Required = []string{"id", "amount", "currency", "chain", "status"}
	return s
}

func withdrawalSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("amount", amountSchema("Amount sent to the destination address.")).
		WithProperty("fee", amountSchema("Network and platform fee charged.")).
		WithProperty("currency", currencySchema()).
		WithProperty("chain", chainSchema()).
		WithProperty("address", openapi3.NewStringSchema()).
		WithProperty("status", openapi3.NewStringSchema().WithEnum("pending", "approved", "broadcast", "settled", "rejected")).
		WithProperty("txHash", openapi3.NewStringSchema()).
		WithProperty("createdAt", timestampSchema("Withdrawal request time."))
	s.Required = []string{"id", "amount", "fee", "currency", "address", "status", "createdAt"}
	return s
}

func createWithdrawalSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("amount", amountSchema("Amount to withdraw.")).
		WithProperty("currency", currencySchema()).
		WithProperty("chain", chainSchema()).
		WithProperty("address", openapi3.NewStringSchema())
	s.Required = []string{"amount", "currency", "chain", "address"}
	return s
}

func deviceSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewUUIDSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("platform", openapi3.NewStringSchema().WithEnum("ios", "android", "web")).
		WithProperty("pushToken", openapi3.NewStringSchema()).
		WithProperty("lastSeenAt", timestampSchema("Last time the device contacted the platform.")).
		WithProperty("createdAt", timestampSchema("Device registration time."))
	s.Required = []string{"id", "name", "platform"}
	return s
}

func registerDeviceSchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("platform", openapi3.NewStringSchema().WithEnum("ios", "android", "web")).
		WithProperty("pushToken", openapi3.NewStringSchema())
	s.Required = []string{"name", "platform"}
	return s
}

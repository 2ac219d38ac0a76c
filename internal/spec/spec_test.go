package spec

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

func mustBuild(t *testing.T, gen Generation) *Document {
	t.Helper()
	doc, err := Build(gen)
	if err != nil {
		t.Fatalf("Build(%s) failed: %v", gen, err)
	}
	return doc
}

func findOperation(t *testing.T, doc *Document, method, path string) *openapi3.Operation {
	t.Helper()
	item := doc.OAS.Paths.Value(path)
	if item == nil {
		t.Fatalf("Path %s missing from the %s document", path, doc.Generation)
	}
	op := item.GetOperation(method)
	if op == nil {
		t.Fatalf("Operation %s %s missing from the %s document", method, path, doc.Generation)
	}
	return op
}

func findParameter(op *openapi3.Operation, name string) *openapi3.Parameter {
	for _, ref := range op.Parameters {
		if ref.Value != nil && ref.Value.Name == name {
			return ref.Value
		}
	}
	return nil
}

func TestBuildBothGenerations(t *testing.T) {
	versions := map[Generation]string{
		GenerationV1: v1Version,
		GenerationV2: v2Version,
	}
	counts := map[Generation]int{
		GenerationV1: 15,
		GenerationV2: 19,
	}
	for _, gen := range Generations() {
		doc := mustBuild(t, gen)
		if doc.Generation != gen {
			t.Errorf("Expected generation %s, got %s", gen, doc.Generation)
		}
		if doc.Version() != versions[gen] {
			t.Errorf("Expected %s version %s, got %s", gen, versions[gen], doc.Version())
		}
		if doc.PathCount() != counts[gen] {
			t.Errorf("Expected %d paths in the %s document, got %d", counts[gen], gen, doc.PathCount())
		}
		if len(doc.JSON) == 0 {
			t.Errorf("Expected rendered JSON for %s", gen)
		}
		if got := gjson.GetBytes(doc.JSON, "info.version").String(); got != versions[gen] {
			t.Errorf("Expected rendered info.version %s, got %s", versions[gen], got)
		}
	}
}

func TestBuildUnknownGeneration(t *testing.T) {
	if _, err := Build(Generation("v3")); err == nil {
		t.Fatal("Expected an error for an unknown generation")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first := mustBuild(t, GenerationV2)
	second := mustBuild(t, GenerationV2)
	if !bytes.Equal(first.JSON, second.JSON) {
		t.Error("Expected repeated builds to render identical JSON")
	}
}

func TestParseGeneration(t *testing.T) {
	if gen, err := ParseGeneration("v1"); err != nil || gen != GenerationV1 {
		t.Errorf("Expected v1, got %q (err %v)", gen, err)
	}
	if gen, err := ParseGeneration("v2"); err != nil || gen != GenerationV2 {
		t.Errorf("Expected v2, got %q (err %v)", gen, err)
	}
	if _, err := ParseGeneration("latest"); err == nil {
		t.Error("Expected an error for an unknown generation value")
	}
}

func TestSecurityDeclarations(t *testing.T) {
	v1 := mustBuild(t, GenerationV1)
	for path, item := range v1.OAS.Paths.Map() {
		for method, op := range item.Operations() {
			if op.Security == nil || len(*op.Security) != 2 {
				t.Errorf("Expected two alternative token issuers on v1 %s %s", method, path)
			}
		}
	}

	v2 := mustBuild(t, GenerationV2)
	for path, item := range v2.OAS.Paths.Map() {
		for method, op := range item.Operations() {
			if strings.HasPrefix(path, "/cron/") {
				if op.Security != nil {
					t.Errorf("Expected no security requirement on %s %s", method, path)
				}
				continue
			}
			if op.Security == nil || len(*op.Security) != 1 {
				t.Errorf("Expected a single bearer requirement on v2 %s %s", method, path)
				continue
			}
			if _, ok := (*op.Security)[0]["bearerAuth"]; !ok {
				t.Errorf("Expected bearerAuth on v2 %s %s", method, path)
			}
		}
	}
}

func TestPinHeaderPlacement(t *testing.T) {
	docs := map[Generation]*Document{
		GenerationV1: mustBuild(t, GenerationV1),
		GenerationV2: mustBuild(t, GenerationV2),
	}
	cases := []struct {
		gen    Generation
		method string
		path   string
	}{
		{GenerationV1, "PUT", "/merchants/{merchantId}/pin"},
		{GenerationV1, "POST", "/withdrawals"},
		{GenerationV1, "POST", "/wallets/{walletId}"},
		{GenerationV2, "POST", "/withdrawals"},
		{GenerationV2, "POST", "/transfers"},
	}
	for _, tc := range cases {
		op := findOperation(t, docs[tc.gen], tc.method, tc.path)
		param := findParameter(op, PinCodeHeader)
		if param == nil {
			t.Errorf("Expected %s on %s %s %s", PinCodeHeader, tc.gen, tc.method, tc.path)
			continue
		}
		if !param.Required {
			t.Errorf("Expected %s to be required on %s %s %s", PinCodeHeader, tc.gen, tc.method, tc.path)
		}
		if param.Schema == nil || param.Schema.Value == nil || param.Schema.Value.Pattern != PinCodePattern {
			t.Errorf("Expected pattern %s on %s %s %s", PinCodePattern, tc.gen, tc.method, tc.path)
		}
	}
}

func TestPaginationParameters(t *testing.T) {
	paginated := map[Generation][]string{
		GenerationV1: {"/merchants", "/orders", "/deposits", "/withdrawals", "/wallets", "/devices"},
		GenerationV2: {"/wallets", "/transfers", "/orders", "/deposits", "/withdrawals", "/devices"},
	}
	for gen, listPaths := range paginated {
		doc := mustBuild(t, gen)
		for _, path := range listPaths {
			op := findOperation(t, doc, "GET", path)
			limit := findParameter(op, "limit")
			offset := findParameter(op, "offset")
			if limit == nil || offset == nil {
				t.Errorf("Expected limit and offset on %s GET %s", gen, path)
				continue
			}
			ls := limit.Schema.Value
			if ls.Max == nil || *ls.Max != 100 || ls.Default != 20 {
				t.Errorf("Expected limit max 100 default 20 on %s GET %s", gen, path)
			}
			os := offset.Schema.Value
			if os.Min == nil || *os.Min != 0 || os.Default != 0 {
				t.Errorf("Expected offset floor 0 default 0 on %s GET %s", gen, path)
			}
		}
	}
}

func TestGenerationsDiverge(t *testing.T) {
	v1 := mustBuild(t, GenerationV1)
	v2 := mustBuild(t, GenerationV2)

	if v1.OAS.Paths.Value("/merchants") == nil {
		t.Error("Expected /merchants in the v1 document")
	}
	if v1.OAS.Paths.Value("/profile") != nil {
		t.Error("Expected no /profile in the v1 document")
	}
	if v2.OAS.Paths.Value("/profile") == nil {
		t.Error("Expected /profile in the v2 document")
	}
	if v2.OAS.Paths.Value("/merchants") != nil {
		t.Error("Expected no /merchants in the v2 document")
	}

	v1Wallet := v1.OAS.Paths.Value("/wallets/{walletId}")
	if v1Wallet == nil || v1Wallet.Post == nil || v1Wallet.Get != nil || v1Wallet.Delete != nil {
		t.Error("Expected v1 /wallets/{walletId} to be a transfer action with POST only")
	}
	v2Wallet := v2.OAS.Paths.Value("/wallets/{walletId}")
	if v2Wallet == nil || v2Wallet.Get == nil || v2Wallet.Delete == nil || v2Wallet.Post != nil {
		t.Error("Expected v2 /wallets/{walletId} to be a wallet resource with GET and DELETE")
	}
}

func TestWalletLifecycleResponses(t *testing.T) {
	v2 := mustBuild(t, GenerationV2)

	create := findOperation(t, v2, "POST", "/wallets")
	if create.Responses.Value("409") == nil {
		t.Error("Expected 409 on wallet creation for conflicting addresses")
	}
	if !strings.Contains(create.Description, "primary") {
		t.Error("Expected wallet creation to document the implicit primary rule")
	}

	remove := findOperation(t, v2, "DELETE", "/wallets/{walletId}")
	if remove.Responses.Value("204") == nil {
		t.Error("Expected 204 on wallet deletion")
	}
	if remove.Responses.Value("409") == nil {
		t.Error("Expected 409 on deleting the sole primary wallet")
	}

	promote := findOperation(t, v2, "PUT", "/wallets/{walletId}/primary")
	if promote.Responses.Value("200") == nil {
		t.Error("Expected 200 on promoting a wallet to primary")
	}
}

func TestRenderedReferencesResolve(t *testing.T) {
	for _, gen := range Generations() {
		doc := mustBuild(t, gen)
		var tree any
		if err := json.Unmarshal(doc.JSON, &tree); err != nil {
			t.Fatalf("Rendered %s document is not valid JSON: %v", gen, err)
		}
		refs := collectRefs(tree)
		if len(refs) == 0 {
			t.Fatalf("Expected component references in the %s document", gen)
		}
		for _, ref := range refs {
			if !componentExists(doc.OAS, ref) {
				t.Errorf("Dangling reference %s in the %s document", ref, gen)
			}
		}
	}
}

func collectRefs(node any) []string {
	var refs []string
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			if key == "$ref" {
				if s, ok := child.(string); ok {
					refs = append(refs, s)
				}
				continue
			}
			refs = append(refs, collectRefs(child)...)
		}
	case []any:
		for _, child := range v {
			refs = append(refs, collectRefs(child)...)
		}
	}
	return refs
}

func componentExists(doc *openapi3.T, ref string) bool {
	switch {
	case strings.HasPrefix(ref, schemaRefPrefix):
		_, ok := doc.Components.Schemas[strings.TrimPrefix(ref, schemaRefPrefix)]
		return ok
	case strings.HasPrefix(ref, parameterRefPrefix):
		_, ok := doc.Components.Parameters[strings.TrimPrefix(ref, parameterRefPrefix)]
		return ok
	case strings.HasPrefix(ref, responseRefPrefix):
		_, ok := doc.Components.Responses[strings.TrimPrefix(ref, responseRefPrefix)]
		return ok
	}
	return false
}

func TestRenderedComponents(t *testing.T) {
	v1 := mustBuild(t, GenerationV1)
	if got := gjson.GetBytes(v1.JSON, "components.securitySchemes.firebaseAuth.scheme").String(); got != "bearer" {
		t.Errorf("Expected firebaseAuth to render as a bearer scheme, got %q", got)
	}
	ref := gjson.GetBytes(v1.JSON, `paths./withdrawals.post.responses.201.content.application/json.schema.$ref`).String()
	if ref != "#/components/schemas/Withdrawal" {
		t.Errorf("Expected the created withdrawal to reference its schema, got %q", ref)
	}
	errRef := gjson.GetBytes(v1.JSON, `paths./withdrawals.post.responses.400.$ref`).String()
	if errRef != "#/components/responses/BadRequest" {
		t.Errorf("Expected a shared BadRequest response reference, got %q", errRef)
	}

	v2 := mustBuild(t, GenerationV2)
	if gjson.GetBytes(v2.JSON, "components.securitySchemes.firebaseAuth").Exists() {
		t.Error("Expected the v2 document to define a single token issuer")
	}
	if got := gjson.GetBytes(v2.JSON, "components.securitySchemes.bearerAuth.bearerFormat").String(); got != "JWT" {
		t.Errorf("Expected bearerAuth to carry the JWT bearer format, got %q", got)
	}
}

func TestUnresolvedReferenceFailsValidation(t *testing.T) {
	r := newRegistry()
	op := operation("thing", "getThing", "Fetch a thing")
	op.Responses.Set("200", r.jsonResponse("The thing.", "Thing"))

	doc := minimalDoc(op)
	doc.Components.Schemas = r.schemas
	if err := doc.Validate(context.Background()); err == nil {
		t.Fatal("Expected validation to fail for a reference to an unregistered schema")
	}
}

func TestYAMLExport(t *testing.T) {
	doc := mustBuild(t, GenerationV2)
	out, err := doc.YAML()
	if err != nil {
		t.Fatalf("YAML export failed: %v", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(out, &tree); err != nil {
		t.Fatalf("YAML export is not parseable: %v", err)
	}
	if tree["openapi"] != "3.0.3" {
		t.Errorf("Expected openapi 3.0.3 in the YAML export, got %v", tree["openapi"])
	}
	info, ok := tree["info"].(map[string]any)
	if !ok || info["version"] != v2Version {
		t.Errorf("Expected info.version %s in the YAML export", v2Version)
	}
}

func minimalDoc(op *openapi3.Operation) *openapi3.T {
	paths := &openapi3.Paths{}
	paths.Set("/things", &openapi3.PathItem{Get: op})
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: "Test", Version: "0.0.1"},
		Tags:    openapi3.Tags{{Name: "thing"}},
		Paths:   paths,
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				"bearerAuth": &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		},
	}
}

func testOperation() *openapi3.Operation {
	op := operation("thing", "listThings", "List things")
	op.Responses.Set("200", emptyResponse("OK."))
	return op
}

func TestVerifyRejectsDefects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(op *openapi3.Operation)
		wants  string
	}{
		{
			name:   "no tag",
			mutate: func(op *openapi3.Operation) { op.Tags = nil },
			wants:  "declares no tag",
		},
		{
			name:   "undeclared tag",
			mutate: func(op *openapi3.Operation) { op.Tags = []string{"ghost"} },
			wants:  "undeclared tag",
		},
		{
			name:   "no responses",
			mutate: func(op *openapi3.Operation) { op.Responses = &openapi3.Responses{} },
			wants:  "declares no response",
		},
		{
			name: "undefined security scheme",
			mutate: func(op *openapi3.Operation) {
				op.Security = openapi3.NewSecurityRequirements().
					With(openapi3.NewSecurityRequirement().Authenticate("apiKey"))
			},
			wants: "undefined security scheme",
		},
		{
			name: "optional pin header",
			mutate: func(op *openapi3.Operation) {
				op.Parameters = openapi3.Parameters{{Value: openapi3.NewHeaderParameter(PinCodeHeader).
					WithSchema(openapi3.NewStringSchema().WithPattern(PinCodePattern))}}
			},
			wants: "must be required",
		},
		{
			name: "wrong pin pattern",
			mutate: func(op *openapi3.Operation) {
				op.Parameters = openapi3.Parameters{{Value: openapi3.NewHeaderParameter(PinCodeHeader).
					WithRequired(true).
					WithSchema(openapi3.NewStringSchema().WithPattern(`^[0-9]{4}$`))}}
			},
			wants: "must constrain",
		},
		{
			name: "limit without offset",
			mutate: func(op *openapi3.Operation) {
				op.Parameters = openapi3.Parameters{
					queryParameter("limit", "Page size.", openapi3.NewIntegerSchema().WithMax(100).WithDefault(20)),
				}
			},
			wants: "without an offset",
		},
		{
			name: "unbounded limit",
			mutate: func(op *openapi3.Operation) {
				op.Parameters = openapi3.Parameters{
					queryParameter("limit", "Page size.", openapi3.NewIntegerSchema().WithDefault(20)),
					queryParameter("offset", "Page start.", openapi3.NewIntegerSchema().WithMin(0).WithDefault(0)),
				}
			},
			wants: "unbounded limit",
		},
		{
			name: "offset without floor",
			mutate: func(op *openapi3.Operation) {
				op.Parameters = openapi3.Parameters{
					queryParameter("limit", "Page size.", openapi3.NewIntegerSchema().WithMax(100).WithDefault(20)),
					queryParameter("offset", "Page start.", openapi3.NewIntegerSchema().WithMin(1).WithDefault(1)),
				}
			},
			wants: "zero floor",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op := testOperation()
			tc.mutate(op)
			err := verify(minimalDoc(op))
			if err == nil {
				t.Fatal("Expected verification to fail")
			}
			if !strings.Contains(err.Error(), tc.wants) {
				t.Errorf("Expected error mentioning %q, got %q", tc.wants, err)
			}
		})
	}
}

func TestVerifyAcceptsBuiltDocuments(t *testing.T) {
	for _, gen := range Generations() {
		doc := mustBuild(t, gen)
		if err := verify(doc.OAS); err != nil {
			t.Errorf("Expected the %s document to verify cleanly: %v", gen, err)
		}
	}
}

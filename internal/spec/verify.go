package spec

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// verify applies the platform's documentation rules on top of plain
// openapi3 validation. It expects a document that already validated,
// so every reference carries a resolved value.
func verify(doc *openapi3.T) error {
	if err := verifyComponentParameters(doc); err != nil {
		return err
	}
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			if err := verifyOperation(doc, path, method, op); err != nil {
				return err
			}
		}
	}
	return nil
}

func verifyOperation(doc *openapi3.T, path, method string, op *openapi3.Operation) error {
	if len(op.Tags) == 0 {
		return fmt.Errorf("operation %s %s declares no tag", method, path)
	}
	for _, tag := range op.Tags {
		if doc.Tags.Get(tag) == nil {
			return fmt.Errorf("operation %s %s uses undeclared tag %q", method, path, tag)
		}
	}
	if op.Responses == nil || op.Responses.Len() == 0 {
		return fmt.Errorf("operation %s %s declares no response", method, path)
	}
	if err := verifySecurity(doc, path, method, op); err != nil {
		return err
	}
	return verifyParameters(path, method, op)
}

// verifySecurity checks that every named requirement points at a scheme
// the document actually defines. openapi3 validation does not resolve
// requirement names against components.
func verifySecurity(doc *openapi3.T, path, method string, op *openapi3.Operation) error {
	if op.Security == nil {
		return nil
	}
	var schemes openapi3.SecuritySchemes
	if doc.Components != nil {
		schemes = doc.Components.SecuritySchemes
	}
	for _, requirement := range *op.Security {
		for name := range requirement {
			if _, ok := schemes[name]; !ok {
				return fmt.Errorf("operation %s %s requires undefined security scheme %q", method, path, name)
			}
		}
	}
	return nil
}

// verifyParameters enforces the PIN header contract and the pagination
// pairing rule on one operation.
func verifyParameters(path, method string, op *openapi3.Operation) error {
	var limit, offset *openapi3.Parameter
	for _, ref := range op.Parameters {
		param := ref.Value
		if param == nil {
			return fmt.Errorf("operation %s %s carries an unresolved parameter reference", method, path)
		}
		if param.In == openapi3.ParameterInHeader && param.Name == PinCodeHeader {
			if err := verifyPinParameter(param); err != nil {
				return fmt.Errorf("operation %s %s: %w", method, path, err)
			}
		}
		if param.In == openapi3.ParameterInQuery {
			switch param.Name {
			case "limit":
				limit = param
			case "offset":
				offset = param
			}
		}
	}
	if limit == nil {
		return nil
	}
	if offset == nil {
		return fmt.Errorf("operation %s %s paginates without an offset parameter", method, path)
	}
	if limit.Schema == nil || limit.Schema.Value == nil ||
		limit.Schema.Value.Max == nil || limit.Schema.Value.Default == nil {
		return fmt.Errorf("operation %s %s declares an unbounded limit parameter", method, path)
	}
	floor := offset.Schema
	if floor == nil || floor.Value == nil || floor.Value.Min == nil ||
		*floor.Value.Min != 0 || floor.Value.Default == nil {
		return fmt.Errorf("operation %s %s declares an offset parameter without a zero floor", method, path)
	}
	return nil
}

func verifyPinParameter(param *openapi3.Parameter) error {
	if !param.Required {
		return fmt.Errorf("%s header must be required", PinCodeHeader)
	}
	if param.Schema == nil || param.Schema.Value == nil || param.Schema.Value.Pattern != PinCodePattern {
		return fmt.Errorf("%s header must constrain values to %s", PinCodeHeader, PinCodePattern)
	}
	return nil
}

func verifyComponentParameters(doc *openapi3.T) error {
	if doc.Components == nil {
		return nil
	}
	for name, ref := range doc.Components.Parameters {
		param := ref.Value
		if param == nil {
			continue
		}
		if param.In == openapi3.ParameterInHeader && param.Name == PinCodeHeader {
			if err := verifyPinParameter(param); err != nil {
				return fmt.Errorf("component parameter %q: %w", name, err)
			}
		}
	}
	return nil
}

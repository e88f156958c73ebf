package scaffold

import "fmt"

// PrimitivesTemplate generates a starter shared-vocabulary document.
func PrimitivesTemplate(project string) string {
	return fmt.Sprintf(`# %s Shared Vocabulary

Every contract imports its primitive types from this document.

`+"```typescript"+`
// Identifier aliases
type OrderId = string;
type CustomerId = string;

// Common enumerations
enum OrderStatus {
  Pending = "pending",
  Confirmed = "confirmed",
  Shipped = "shipped",
  Cancelled = "cancelled",
}

// Full entity shape
interface Customer {
  id: CustomerId;
  name: string;
  email: string;
}

// Lightweight reference shape
interface CustomerRef {
  id: CustomerId;
  name: string;
}

// Error-code catalog
const ErrorCodes = {
  NotFound: "ERR_NOT_FOUND",
  Invalid: "ERR_INVALID",
};
`+"```"+`
`, project)
}

// ContractTemplate generates a starter contract document.
func ContractTemplate(name string) string {
	return fmt.Sprintf(`# %s Contract

## Types

`+"```typescript"+`
import { OrderId, OrderStatus, CustomerRef } from "./primitives";

interface Order {
  id: OrderId;
  status: OrderStatus;
  customer: CustomerRef;
  createdAt: string;
}
`+"```"+`

## Notes

Describe the operations this contract covers and which services own
them.
`, name)
}

// ConfigTemplate generates a starter contractspec.yaml with the default
// rule set spelled out so teams can see what is tunable.
func ConfigTemplate() string {
	return `# contractspec configuration
extraction:
  fence_languages: [typescript, ts]

naming:
  similarity_threshold: 0.8
  cross_document_threshold: 0.85
  pair_rules:
    - { a: create, b: update }
    - { a: request, b: response }
    - { a: input, b: output }
    - { a: id, b: ref }
    - { a: identifier, b: reference }
    - { a: score, b: scores }
    - { a: service, b: repository }
  strip_suffixes:
    [id, identifier, ref, reference, input, output, request, response, type, status]

compare:
  equivalent_types:
    - { a: string, b: Date }
    - { a: string, b: DateTime }
    - { a: number, b: integer }
    - { a: number, b: float }
    - { a: boolean, b: bool }

imports:
  external_modules: [zod, io-ts, yup, date-fns, uuid]
`
}

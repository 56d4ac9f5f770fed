// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

// Observer receives loader and parser telemetry. The internal metrics
// collector implements it.
type Observer interface {
	// SpecLoaded records one freshly loaded spec by wire format.
	SpecLoaded(format string)

	// OperationParsed records one operation normalized into a descriptor.
	OperationParsed()

	// OperationSkipped records one operation dropped for a parse error.
	OperationSkipped()
}

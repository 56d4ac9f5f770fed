// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

/*
Package openapi parses OpenAPI 3.x specifications into a uniform operation
descriptor map that the tool package turns into callable tools.

# Core types

  - Document — the decoded OpenAPI document (paths, components, security)
  - Loader — loads a Document from a URL or local file (YAML or JSON),
    with a per-source cache
  - Parser — walks the path/method tree and emits map[operationId]*Operation
  - Operation / Param / Response — the normalized descriptors
  - TypeRef — tagged-union type descriptor (primitive, named, union,
    array, object)

# Main capabilities

  - Internal $ref de-referencing against #/components; unresolved
    references surface as opaque named types
  - Schema type extraction with anyOf/oneOf/allOf handling and an
    "object" fallback on ambiguity
  - Constraint extraction filtered by declared type (length, range,
    enum, item and property bounds)
  - Request-body flattening with _body collision suffixing
*/
package openapi

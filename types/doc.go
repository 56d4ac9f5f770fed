// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

/*
Package types provides the shared type definitions for openapi2callables.

types is the lowest-level public package and depends on nothing inside the
module, so that openapi, tool and cmd can all share one contract without
import cycles.

# Core types

  - Error / ErrorCode — structured error model with cause chaining,
    HTTP status and retryable marker
  - ToolSpec / ToolFunction / ToolParameters — the LLM tool-calling
    export format ({"type": "function", "function": {...}})
*/
package types

// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

/*
Package tool turns parsed operation descriptors into callable tools.

The Tool contract is a closed variant set:

  - LocalTool — wraps an in-process function; never requires auth
  - APITool — invokes a remote HTTP operation; builds the request from
    named arguments, injects auth tokens, retries with backoff and
    normalizes the response

Both variants share identity by operation id, tag-driven confirmation,
and export to the LLM tool-calling format via ToolSpec().

# Error policy

Per-call data errors (missing required argument, type mismatch) are
returned as Go errors. Remote-side failures (missing credential at call
time, transport failure after retries, upstream status >= 400) are
returned as structured error descriptor maps so that a calling agent can
inspect and react to them uniformly.
*/
package tool

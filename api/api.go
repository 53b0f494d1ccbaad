// Package api embeds the OpenAPI contract of the HTTP interface.
package api

import _ "embed"

//go:embed openapi.yaml
var Spec []byte

// Package docs registers the order API contract with swag so that
// echo-swagger can serve it under /swagger/.
package docs

import (
	"rental/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// SwaggerInfo holds the contract rendered as JSON.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "Rental Orders API",
	Description:      "Order lifecycle of the vehicle rental back office.",
	InfoInstanceName: "swagger",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	doc, err := openapi3.NewLoader().LoadFromData(api.Spec)
	if err != nil {
		panic("docs: load embedded openapi document: " + err.Error())
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		panic("docs: render openapi document: " + err.Error())
	}

	SwaggerInfo.SwaggerTemplate = string(raw)
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

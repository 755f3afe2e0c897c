package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/logger"
	"github.com/sdui-go/interpreter/internal/payload"
	"github.com/sdui-go/interpreter/internal/render"
	"github.com/sdui-go/interpreter/internal/result"
	_ "github.com/sdui-go/interpreter/internal/strategy" // register strategies
	"github.com/sdui-go/interpreter/internal/widget"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body     string `json:"body"` // component response JSON (raw or base64 if isBase64)
	IsBase64 bool   `json:"isBase64,omitempty"`
}

// LambdaResponse is returned to the client.
type LambdaResponse struct {
	StatusCode int              `json:"statusCode"`
	Success    bool             `json:"success"`
	PassID     string           `json:"passId,omitempty"`
	Errors     []result.Error   `json:"errors,omitempty"`
	Warnings   []result.Warning `json:"warnings,omitempty"`
	Widgets    []*widget.Widget `json:"widgets,omitempty"`
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration (body = JSON string).
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

var renderer = render.New(render.WithLogger(logger.Default))

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	out := LambdaResponse{StatusCode: 200}

	body := event.Body
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			out.StatusCode = 400
			out.Errors = []result.Error{{Type: "invalid_input", Severity: result.SeverityError, Message: "invalid base64 body: " + err.Error()}}
			return wrap(out), nil
		}
		body = string(dec)
	}

	resp, err := payload.Decode([]byte(body))
	if err != nil {
		out.StatusCode = 400
		e := result.Error{Type: "invalid_payload", Severity: result.SeverityError, Message: err.Error()}
		var de *payload.DecodeError
		if errors.As(err, &de) && de.Stage == payload.StageSchema {
			e.Suggestion = `Send {"components": [{"id": "...", "type": "...", "properties": {...}}]}`
		}
		out.Errors = []result.Error{e}
		return wrap(out), nil
	}

	// Images are resolved by the client; cards come back in the loading state.
	pass := renderer.RenderResponse(ctx, resp)
	out.Success = true
	out.PassID = pass.ID.String()
	out.Widgets = pass.Widgets
	out.Warnings = descriptor.Inspect(resp, renderer.Registry().Has)
	return wrap(out), nil
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	lambda.Start(handler)
}

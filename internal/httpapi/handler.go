package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/goliatone/go-offergen/pkg/filename"
	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/orchestrator"
	"github.com/goliatone/go-offergen/pkg/validation"
	"github.com/goliatone/go-offergen/pkg/xmlcheck"
)

const (
	contentJSON = "application/json"
	contentXML  = "application/xml; charset=utf-8"
)

// ErrorResponse is the body of every non-validation failure.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// SectionRequest is the body of POST /sections/validate.
type SectionRequest struct {
	Document *offer.Document `json:"document"`
	Data     json.RawMessage `json:"data"`
}

// Handler routes requests:
//
//	GET  /healthz
//	POST /validate?action=insert|update
//	POST /sections/validate?section=<name>&action=
//	POST /generate?action=&unique=true
//	POST /check
//	GET  /filename/parse?name=
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		path := string(ctx.Path())

		switch {
		case path == "/healthz" && ctx.IsGet():
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		case path == "/validate" && ctx.IsPost():
			s.handleValidate(ctx)
		case path == "/sections/validate" && ctx.IsPost():
			s.handleSection(ctx)
		case path == "/generate" && ctx.IsPost():
			s.handleGenerate(ctx)
		case path == "/check" && ctx.IsPost():
			writeJSON(ctx, fasthttp.StatusOK, xmlcheck.Validate(ctx.PostBody()))
		case path == "/filename/parse" && ctx.IsGet():
			handleParseName(ctx)
		default:
			writeError(ctx, fasthttp.StatusNotFound, "route not found")
		}

		s.logger.Debug("http request",
			"method", string(ctx.Method()),
			"path", path,
			"status", ctx.Response.StatusCode(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) handleValidate(ctx *fasthttp.RequestCtx) {
	action, doc, ok := decodeRequest(ctx)
	if !ok {
		return
	}
	rctx, cancel := s.requestContext()
	defer cancel()
	result, err := s.orch.Validate(rctx, doc, action)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleSection(ctx *fasthttp.RequestCtx) {
	action, ok := actionParam(ctx)
	if !ok {
		return
	}
	name := offer.SectionName(ctx.QueryArgs().Peek("section"))
	if !name.Known() {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("unknown section %q", name))
		return
	}

	var req SectionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	data, err := decodeSection(name, req.Data)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	doc := req.Document
	if doc == nil {
		doc = &offer.Document{}
	}

	rctx, cancel := s.requestContext()
	defer cancel()
	result, err := s.orch.Runner().ValidateSection(rctx, name, data, doc, action)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

type generateFailure struct {
	Message string            `json:"message"`
	Result  validation.Result `json:"result"`
}

func (s *Server) handleGenerate(ctx *fasthttp.RequestCtx) {
	action, doc, ok := decodeRequest(ctx)
	if !ok {
		return
	}
	rctx, cancel := s.requestContext()
	defer cancel()
	out, err := s.orch.Generate(rctx, orchestrator.Request{
		Document:    doc,
		Action:      action,
		Description: string(ctx.QueryArgs().Peek("description")),
		Unique:      ctx.QueryArgs().GetBool("unique"),
	})

	var invalid *orchestrator.InvalidDocumentError
	var selfCheck *orchestrator.SelfCheckError
	switch {
	case err == nil:
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetContentType(contentXML)
		ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.FileName))
		ctx.Response.Header.Set("X-Offer-Filename", out.FileName)
		ctx.SetBody(out.XML)
	case errors.As(err, &invalid):
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, generateFailure{Message: "document is invalid", Result: invalid.Result})
	case errors.As(err, &selfCheck):
		s.logger.Error("generated document failed self-check", "file", selfCheck.FileName, "errors", selfCheck.Result.Len())
		writeJSON(ctx, fasthttp.StatusInternalServerError, generateFailure{Message: "generated document failed self-check", Result: selfCheck.Result})
	default:
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	}
}

func handleParseName(ctx *fasthttp.RequestCtx) {
	parts, err := filename.Parse(string(ctx.QueryArgs().Peek("name")))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, parts)
}

func decodeRequest(ctx *fasthttp.RequestCtx) (offer.Action, *offer.Document, bool) {
	action, ok := actionParam(ctx)
	if !ok {
		return "", nil, false
	}
	body := ctx.PostBody()
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "request body is empty")
		return "", nil, false
	}
	var doc offer.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return "", nil, false
	}
	return action, &doc, true
}

func actionParam(ctx *fasthttp.RequestCtx) (offer.Action, bool) {
	raw := string(ctx.QueryArgs().Peek("action"))
	if raw == "" {
		return offer.ActionInsert, true
	}
	action, err := offer.ParseAction(raw)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return "", false
	}
	return action, true
}

// decodeSection decodes raw into the Go type backing section name by routing
// it through the document's own JSON shape.
func decodeSection(name offer.SectionName, raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	wrapped, err := json.Marshal(map[string]json.RawMessage{jsonKey(name): raw})
	if err != nil {
		return nil, err
	}
	var doc offer.Document
	if err := json.Unmarshal(wrapped, &doc); err != nil {
		return nil, fmt.Errorf("invalid %s data: %w", name, err)
	}
	data, _ := doc.Section(name)
	return data, nil
}

// jsonKey turns "payment-methods" into "paymentMethods".
func jsonKey(name offer.SectionName) string {
	parts := strings.Split(string(name), "-")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// requestContext bounds pipeline work by the server write timeout.
func (s *Server) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.writeTimeout)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.Error("encode response: "+err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType(contentJSON)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

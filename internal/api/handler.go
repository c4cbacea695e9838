package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/stackmeld/llmchain/chains"
	"github.com/stackmeld/llmchain/internal/api/middleware"
	"github.com/stackmeld/llmchain/internal/runner"
	"github.com/stackmeld/llmchain/prompt"
)

type Handler struct {
	runner *runner.Runner
	logger *zerolog.Logger
}

func NewHandler(run *runner.Runner, logger *zerolog.Logger) *Handler {
	return &Handler{
		runner: run,
		logger: logger,
	}
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{Status: "ok"})
}

// GET /api/v1/chains
func (h *Handler) ListChains(req *restful.Request, resp *restful.Response) {
	names := h.runner.Names()
	out := ChainListResponse{Chains: make([]ChainInfo, 0, len(names))}

	for _, name := range names {
		chain, err := h.runner.Chain(name)
		if err != nil {
			continue
		}
		out.Chains = append(out.Chains, ChainInfo{
			Name:       name,
			InputKeys:  chain.InputKeys(),
			OutputKeys: chain.OutputKeys(),
		})
	}

	resp.WriteHeaderAndEntity(http.StatusOK, out)
}

// POST /api/v1/chains/{chain_name}/call
// Returns the full generate result with the output parser applied.
func (h *Handler) Call(req *restful.Request, resp *restful.Response) {
	name, args, ok := h.readRequest(req, resp)
	if !ok {
		return
	}

	result, err := h.runner.Call(req.Request.Context(), name, args)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/chains/{chain_name}/invoke
// Returns only the raw generation text.
func (h *Handler) Invoke(req *restful.Request, resp *restful.Response) {
	name, args, ok := h.readRequest(req, resp)
	if !ok {
		return
	}

	output, err := h.runner.Invoke(req.Request.Context(), name, args)
	if err != nil {
		h.writeError(resp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, InvokeResponse{Output: output})
}

// POST /api/v1/chains/{chain_name}/stream
// Streams raw chunks as server-sent events, terminated by [DONE].
func (h *Handler) Stream(req *restful.Request, resp *restful.Response) {
	name, args, ok := h.readRequest(req, resp)
	if !ok {
		return
	}

	ctx := req.Request.Context()
	stream, err := h.runner.Stream(ctx, name, args)
	if err != nil {
		h.writeError(resp, err)
		return
	}
	defer stream.Close()

	w := resp.ResponseWriter
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, canFlush := w.(http.Flusher)
	flush := func() {
		if canFlush {
			flusher.Flush()
		}
	}

	for {
		chunk, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprint(w, "data: [DONE]\n\n")
				flush()
				return
			}
			h.logger.Error().Err(err).Str("chain", name).Msg("stream failed mid-flight")
			payload, _ := json.Marshal(middleware.ErrorResponse{Error: err.Error()})
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
			flush()
			return
		}

		payload, err := json.Marshal(chunk)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to encode chunk")
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flush()
	}
}

func (h *Handler) readRequest(req *restful.Request, resp *restful.Response) (string, prompt.Args, bool) {
	name := req.PathParameter("chain_name")

	var body GenerationRequest
	if err := req.ReadEntity(&body); err != nil {
		h.logger.Error().Err(err).Msg("failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return "", nil, false
	}

	return name, prompt.Args(body.Inputs), true
}

func (h *Handler) writeError(resp *restful.Response, err error) {
	if errors.Is(err, runner.ErrUnknownChain) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}

	if chainErr, ok := chains.AsError(err); ok {
		switch chainErr.Kind {
		case chains.ErrKindMissingInput, chains.ErrKindFormat:
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		case chains.ErrKindLLM:
			middleware.HandleError(resp, err, http.StatusBadGateway)
			return
		}
	}

	middleware.HandleError(resp, err, http.StatusInternalServerError)
}

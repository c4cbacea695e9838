package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/stackmeld/llmchain/internal/api/middleware"
	"github.com/stackmeld/llmchain/llms"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.GET("/chains").
			To(handler.ListChains).
			Doc("List registered chains").
			Metadata(restfulspec.KeyOpenAPITags, []string{"chains"}).
			Writes(ChainListResponse{}).
			Returns(200, "OK", ChainListResponse{}))

	ws.
		Route(ws.POST("/chains/{chain_name}/call").
			To(handler.Call).
			Doc("Run a chain and return the full generate result").
			Metadata(restfulspec.KeyOpenAPITags, []string{"chains"}).
			Param(ws.PathParameter("chain_name", "Registered chain name").DataType("string")).
			Reads(GenerationRequest{}).
			Writes(llms.GenerateResult{}).
			Returns(200, "OK", llms.GenerateResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Chain Not Found", middleware.ErrorResponse{}).
			Returns(502, "Model Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/chains/{chain_name}/invoke").
			To(handler.Invoke).
			Doc("Run a chain and return only the generated text").
			Metadata(restfulspec.KeyOpenAPITags, []string{"chains"}).
			Param(ws.PathParameter("chain_name", "Registered chain name").DataType("string")).
			Reads(GenerationRequest{}).
			Writes(InvokeResponse{}).
			Returns(200, "OK", InvokeResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Chain Not Found", middleware.ErrorResponse{}).
			Returns(502, "Model Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/chains/{chain_name}/stream").
			To(handler.Stream).
			Doc("Run a chain and stream raw chunks as server-sent events").
			Metadata(restfulspec.KeyOpenAPITags, []string{"chains"}).
			Param(ws.PathParameter("chain_name", "Registered chain name").DataType("string")).
			Reads(GenerationRequest{}).
			Produces("text/event-stream").
			Returns(200, "OK", nil).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Chain Not Found", middleware.ErrorResponse{}))

	container.Add(ws)
}

package openapi_server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
	validator    *requestValidator
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
		validator:    newRequestValidator(),
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"ComputeRoutes",
			strings.ToUpper("Post"),
			"/routes",
			c.ComputeRoutes,
		},
		{
			"ComputeAlternatives",
			strings.ToUpper("Post"),
			"/alternatives",
			c.ComputeAlternatives,
		},
		{
			"GetNetwork",
			strings.ToUpper("Get"),
			"/network",
			c.GetNetwork,
		},
		{
			"GetNearest",
			strings.ToUpper("Get"),
			"/nearest",
			c.GetNearest,
		},
	}
}

func (c *DefaultApiController) decode(r *http.Request, obj interface{}) error {
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(obj); err != nil {
		return &ParsingError{Err: err}
	}
	return c.validator.Struct(obj)
}

func (c *DefaultApiController) write(w http.ResponseWriter, r *http.Request, method string, result ImplResponse, err error) {
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ComputeRoutes - Compute the direct route of every vessel
func (c *DefaultApiController) ComputeRoutes(w http.ResponseWriter, r *http.Request) {
	routesRequestParam := RoutesRequest{}
	if err := c.decode(r, &routesRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeRoutes(r.Context(), routesRequestParam)
	c.write(w, r, "POST", result, err)
}

// ComputeAlternatives - Compute hazard avoiding routes
func (c *DefaultApiController) ComputeAlternatives(w http.ResponseWriter, r *http.Request) {
	alternativesRequestParam := AlternativesRequest{}
	if err := c.decode(r, &alternativesRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeAlternatives(r.Context(), alternativesRequestParam)
	c.write(w, r, "POST", result, err)
}

func (c *DefaultApiController) GetNetwork(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetNetwork(r.Context())
	c.write(w, r, "GET", result, err)
}

func (c *DefaultApiController) GetNearest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: domain.WrapErrorf(err, domain.ErrBadParamInput, "lat")}, nil)
		return
	}
	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: domain.WrapErrorf(err, domain.ErrBadParamInput, "lon")}, nil)
		return
	}
	p := Point{Lat: lat, Lon: lon}
	if err := c.validator.Struct(p); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.GetNearest(r.Context(), p)
	c.write(w, r, "GET", result, err)
}

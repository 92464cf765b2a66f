// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wneessen/placeutil/internal/geo"
	"github.com/wneessen/placeutil/internal/geocode"
	"github.com/wneessen/placeutil/internal/places"
)

var errMissingParam = errors.New("missing query parameter")

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type distanceResponse struct {
	From       geo.Coordinate `json:"from"`
	To         geo.Coordinate `json:"to"`
	DistanceKm float64        `json:"distance_km"`
}

type placeDistanceResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(s.logger), gin.Recovery())

	router.GET("/healthz", s.health)

	v1 := router.Group("/v1")
	v1.GET("/suggest", s.suggest)
	v1.GET("/distance", s.distance)
	v1.GET("/reverse", s.reverse)
	v1.GET("/places/:id", s.details)
	v1.GET("/places/:id/address", s.address)
	v1.GET("/places/:id/opening-hours", s.openingHours)
	v1.GET("/places/:id/categories", s.categories)
	v1.GET("/places/:id/distance", s.placeDistance)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": s.client.Name()})
}

func (s *Server) suggest(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		s.abort(c, http.StatusBadRequest, errMissingParam, "input")
		return
	}
	categories, err := places.ParseSuggestCategories(c.Query("types"))
	if err != nil {
		s.fail(c, err)
		return
	}

	predictions, err := s.client.Suggest(c.Request.Context(), input, categories...)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, predictions)
}

func (s *Server) details(c *gin.Context) {
	place, err := s.client.Details(c.Request.Context(), c.Param("id"), places.SplitList(c.Query("fields"))...)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

func (s *Server) address(c *gin.Context) {
	address, err := s.client.Address(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

func (s *Server) openingHours(c *gin.Context) {
	hours, err := s.client.OpeningHours(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (s *Server) categories(c *gin.Context) {
	labels, err := s.client.Categories(c.Request.Context(), c.Param("id"), s.typeMap)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (s *Server) distance(c *gin.Context) {
	fromValue, toValue := c.Query("from"), c.Query("to")
	if fromValue == "" || toValue == "" {
		s.abort(c, http.StatusBadRequest, errMissingParam, "from, to")
		return
	}
	from, err := s.client.Locate(c.Request.Context(), s.geocoder, fromValue)
	if err != nil {
		s.fail(c, err)
		return
	}
	to, err := s.client.Locate(c.Request.Context(), s.geocoder, toValue)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, distanceResponse{From: from, To: to, DistanceKm: geo.Distance(from, to)})
}

func (s *Server) placeDistance(c *gin.Context) {
	toID := c.Query("to")
	if toID == "" {
		s.abort(c, http.StatusBadRequest, errMissingParam, "to")
		return
	}
	distance, err := s.client.DistanceBetween(c.Request.Context(), c.Param("id"), toID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, placeDistanceResponse{From: c.Param("id"), To: toID, DistanceKm: distance})
}

func (s *Server) reverse(c *gin.Context) {
	at := c.Query("at")
	if at == "" {
		s.abort(c, http.StatusBadRequest, errMissingParam, "at")
		return
	}
	coords, err := geo.ParseCoordinate(at)
	if err != nil {
		s.fail(c, err)
		return
	}
	if s.geocoder == nil {
		s.fail(c, geocode.ErrNoGeocoder)
		return
	}
	address, err := s.geocoder.Reverse(c.Request.Context(), coords)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

// fail writes the error response for err.
func (s *Server) fail(c *gin.Context, err error) {
	s.abort(c, statusCode(err), err, "")
}

func (s *Server) abort(c *gin.Context, status int, err error, detail string) {
	_ = c.Error(err)
	message := err.Error()
	if detail != "" {
		message += ": " + detail
	}
	c.AbortWithStatusJSON(status, errorResponse{
		Error:     message,
		RequestID: RequestIDFromContext(c.Request.Context()),
	})
}

// statusCode maps lookup errors to HTTP status codes.
func statusCode(err error) int {
	var statusErr *places.StatusError
	switch {
	case errors.Is(err, places.ErrZeroResults), errors.Is(err, geocode.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, places.ErrInvalidCategory), errors.Is(err, places.ErrEmptyInput),
		errors.Is(err, places.ErrEmptyPlaceID), errors.Is(err, geo.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, places.ErrNoLocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, places.ErrNoProvider), errors.Is(err, geocode.ErrNoGeocoder):
		return http.StatusServiceUnavailable
	case errors.As(err, &statusErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

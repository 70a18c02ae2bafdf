package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/weapub/sj-calculadora/internal/apierror"
	"github.com/weapub/sj-calculadora/internal/dto"
	"github.com/weapub/sj-calculadora/internal/middleware"
	"github.com/weapub/sj-calculadora/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// "required" accepts "   " for strings; notblank does not.
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New("JSON invalido"))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindFiltro binds ?q= for the product list and its export. On failure it writes 400.
func bindFiltro(c *gin.Context) (dto.ProductoFilter, bool) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro invalido: "+err.Error()))
		return filter, false
	}
	return filter, true
}

// paramID parses a positive integer path parameter. On failure it writes 400.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.MsgIDInvalido))
		return 0, false
	}
	return id, true
}

// responderError maps repository errors to HTTP statuses. fallback is the
// client-facing message for storage failures; the cause is only logged.
func responderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(apierror.MsgNoEncontrado))
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, apierror.New(apierror.MsgCodigoDuplicado))
	case errors.Is(err, repository.ErrProveedorInexistente):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(apierror.MsgProveedorFaltante))
	case errors.Is(err, repository.ErrNombreRequerido):
		c.JSON(http.StatusUnprocessableEntity, apierror.Campo("nombre", "required"))
	case errors.Is(err, repository.ErrCodigoRequerido):
		c.JSON(http.StatusUnprocessableEntity, apierror.Campo("codigo", "required"))
	default:
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Err(err).
			Msg(fallback)
		c.JSON(http.StatusInternalServerError, apierror.New(fallback))
	}
}
